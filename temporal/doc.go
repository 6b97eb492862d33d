// Package temporal implements the date-time engine behind the boundary.
//
// Values are plain Go structs carrying ISO 8601 slots plus a calendar tag:
//
//	Instant        exact time, seconds and nanoseconds since the Unix epoch
//	PlainDate      calendar date
//	PlainTime      wall-clock time
//	PlainDateTime  calendar date and wall-clock time
//	ZonedDateTime  exact time in a time zone and calendar
//	Duration       ten signed components sharing one sign
//
// All arithmetic is exact. Results past the supported range fail with
// errors.KindRangeOverflow; nothing saturates. Rounding covers all nine
// modes (ceil, floor, expand, trunc and the five half-modes).
//
// Calendars are a closed set dispatched by tag: iso8601, gregory, buddhist,
// roc, coptic and ethiopic. Named time zones resolve through Go's zoneinfo.
// Building with the temporal_nodata tag drops the bundled zone database;
// named zones and non-ISO calendars then fail with
// errors.KindInvalidIdentifier.
//
// Nothing in this package reads ambient state. Now takes an explicit Clock.
package temporal
