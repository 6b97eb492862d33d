package capi

// Wire enumerations. Each is a u8 at the boundary; values outside the
// listed constants are rejected on the way in.

// Calendar tags a date with its calendar system.
type Calendar uint8

const (
	CalendarISO8601 Calendar = iota
	CalendarGregorian
	CalendarBuddhist
	CalendarROC
	CalendarCoptic
	CalendarEthiopic
)

// Unit names a duration component; UnitAuto selects the operation default.
type Unit uint8

const (
	UnitAuto Unit = iota
	UnitYear
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
	UnitMillisecond
	UnitMicrosecond
	UnitNanosecond
)

// RoundingMode selects how ties and remainders are resolved.
type RoundingMode uint8

const (
	RoundDefault RoundingMode = iota
	RoundCeil
	RoundFloor
	RoundExpand
	RoundTrunc
	RoundHalfCeil
	RoundHalfFloor
	RoundHalfExpand
	RoundHalfTrunc
	RoundHalfEven
)

// Overflow selects constrain or reject for out-of-range arithmetic results.
type Overflow uint8

const (
	OverflowConstrain Overflow = iota
	OverflowReject
)

// Disambiguation resolves wall-clock values in a gap or overlap.
type Disambiguation uint8

const (
	DisambiguateReject Disambiguation = iota
	DisambiguateCompatible
	DisambiguateEarlier
	DisambiguateLater
)

// OffsetOption reconciles a parsed UTC offset with the time zone.
type OffsetOption uint8

const (
	OffsetReject OffsetOption = iota
	OffsetUse
	OffsetPrefer
	OffsetIgnore
)

// PrecisionKind selects how fractional seconds are printed.
type PrecisionKind uint8

const (
	PrecisionAuto PrecisionKind = iota
	PrecisionMinute
	PrecisionDigits
)

// CalendarDisplay controls the [u-ca=…] annotation.
type CalendarDisplay uint8

const (
	CalendarDisplayAuto CalendarDisplay = iota
	CalendarDisplayAlways
	CalendarDisplayNever
	CalendarDisplayCritical
)

// OffsetDisplay controls the numeric offset of zoned output.
type OffsetDisplay uint8

const (
	OffsetDisplayAuto OffsetDisplay = iota
	OffsetDisplayNever
)

// TimeZoneNameDisplay controls the [zone] annotation of zoned output.
type TimeZoneNameDisplay uint8

const (
	TimeZoneNameAuto TimeZoneNameDisplay = iota
	TimeZoneNameNever
	TimeZoneNameCritical
)
