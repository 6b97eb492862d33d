//go:build temporal_nodata

package temporal

// calendarDataBundled is off: only iso8601, UTC and fixed offsets resolve.
const calendarDataBundled = false
