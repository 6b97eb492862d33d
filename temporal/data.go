//go:build !temporal_nodata

package temporal

import (
	_ "time/tzdata"
)

// calendarDataBundled enables non-ISO calendars and named time zones.
const calendarDataBundled = true
