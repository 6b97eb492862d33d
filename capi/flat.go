package capi

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/temporal-capi/capi/internal/layout"
)

// Flat records hold fixed-size fields only. Their memory layout is the
// canonical layout of the WIT record of the same name; adding a field is a
// breaking change and must be a new record.

// FlatInstant is an exact time: epoch seconds plus nanoseconds in [0, 1e9).
type FlatInstant struct {
	Seconds     int64
	Nanoseconds int32
}

// FlatPlainDate holds ISO year/month/day and the calendar tag.
type FlatPlainDate struct {
	Year     int32
	Month    uint8
	Day      uint8
	Calendar Calendar
}

// FlatPlainTime holds wall-clock slots.
type FlatPlainTime struct {
	Hour        uint8
	Minute      uint8
	Second      uint8
	Millisecond uint16
	Microsecond uint16
	Nanosecond  uint16
}

// FlatPlainDateTime nests a date and a time.
type FlatPlainDateTime struct {
	Date FlatPlainDate
	Time FlatPlainTime
}

// FlatDuration holds ten signed components sharing one sign.
type FlatDuration struct {
	Years        int64
	Months       int64
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

// FlatDateFields is the calendar view of a date. MonthCode packs the ASCII
// month code ("M01", "M05L") little-endian into four bytes.
type FlatDateFields struct {
	Year         int32
	Month        uint8
	Day          uint8
	DayOfWeek    uint8
	WeekOfYear   uint8
	DayOfYear    uint16
	DaysInYear   uint16
	YearOfWeek   int32
	DaysInWeek   uint8
	DaysInMonth  uint8
	MonthsInYear uint8
	InLeapYear   bool
	MonthCode    uint32
}

// FlatRoundingOptions configures round(). Increment 0 means 1.
type FlatRoundingOptions struct {
	SmallestUnit Unit
	Mode         RoundingMode
	Increment    uint32
}

// FlatDifferenceSettings configures until() and since(). Increment 0 means 1.
type FlatDifferenceSettings struct {
	LargestUnit  Unit
	SmallestUnit Unit
	Mode         RoundingMode
	Increment    uint32
}

// FlatDurationRoundOptions configures Duration round(). RelativeTo is read
// only when HasRelativeTo is set.
type FlatDurationRoundOptions struct {
	LargestUnit   Unit
	SmallestUnit  Unit
	Mode          RoundingMode
	HasRelativeTo bool
	Increment     uint32
	RelativeTo    FlatPlainDate
}

// FlatToStringOptions configures formatting. Digits is read only for
// PrecisionDigits. The zero value is the default form.
type FlatToStringOptions struct {
	Precision    PrecisionKind
	Digits       uint8
	Mode         RoundingMode
	Calendar     CalendarDisplay
	Offset       OffsetDisplay
	TimeZoneName TimeZoneNameDisplay
}

// FlatTransition is a change of UTC offset at an exact time.
type FlatTransition struct {
	At           FlatInstant
	OffsetBefore int64
	OffsetAfter  int64
}

// FlatStatus is the diagnostic record written through status pointers.
// Message is an owned text handle, or 0 when no message was requested.
type FlatStatus struct {
	Code        uint32
	ParseOffset int32
	Required    uint32
	Message     uint32
}

func record(name string, fields ...wit.Field) *wit.TypeDef {
	return &wit.TypeDef{Name: &name, Kind: &wit.Record{Fields: fields}}
}

func enum(name string, cases ...string) *wit.TypeDef {
	ec := make([]wit.EnumCase, len(cases))
	for i, c := range cases {
		ec[i] = wit.EnumCase{Name: c}
	}
	return &wit.TypeDef{Name: &name, Kind: &wit.Enum{Cases: ec}}
}

func field(name string, t wit.Type) wit.Field {
	return wit.Field{Name: name, Type: t}
}

var (
	witCalendar = enum("calendar", "iso8601", "gregory", "buddhist", "roc", "coptic", "ethiopic")

	witUnit = enum("unit", "auto", "year", "month", "week", "day", "hour", "minute", "second",
		"millisecond", "microsecond", "nanosecond")

	witRoundingMode = enum("rounding-mode", "default", "ceil", "floor", "expand", "trunc",
		"half-ceil", "half-floor", "half-expand", "half-trunc", "half-even")

	witPrecision       = enum("precision-kind", "auto", "minute", "digits")
	witCalendarDisplay = enum("calendar-display", "auto", "always", "never", "critical")
	witOffsetDisplay   = enum("offset-display", "auto", "never")
	witZoneDisplay     = enum("time-zone-name-display", "auto", "never", "critical")

	witInstant = record("instant",
		field("seconds", wit.S64{}),
		field("nanoseconds", wit.S32{}),
	)
	witPlainDate = record("plain-date",
		field("year", wit.S32{}),
		field("month", wit.U8{}),
		field("day", wit.U8{}),
		field("calendar", witCalendar),
	)
	witPlainTime = record("plain-time",
		field("hour", wit.U8{}),
		field("minute", wit.U8{}),
		field("second", wit.U8{}),
		field("millisecond", wit.U16{}),
		field("microsecond", wit.U16{}),
		field("nanosecond", wit.U16{}),
	)
	witPlainDateTime = record("plain-date-time",
		field("date", witPlainDate),
		field("time", witPlainTime),
	)
	witDuration = record("duration",
		field("years", wit.S64{}),
		field("months", wit.S64{}),
		field("weeks", wit.S64{}),
		field("days", wit.S64{}),
		field("hours", wit.S64{}),
		field("minutes", wit.S64{}),
		field("seconds", wit.S64{}),
		field("milliseconds", wit.S64{}),
		field("microseconds", wit.S64{}),
		field("nanoseconds", wit.S64{}),
	)
	witDateFields = record("date-fields",
		field("year", wit.S32{}),
		field("month", wit.U8{}),
		field("day", wit.U8{}),
		field("day-of-week", wit.U8{}),
		field("week-of-year", wit.U8{}),
		field("day-of-year", wit.U16{}),
		field("days-in-year", wit.U16{}),
		field("year-of-week", wit.S32{}),
		field("days-in-week", wit.U8{}),
		field("days-in-month", wit.U8{}),
		field("months-in-year", wit.U8{}),
		field("in-leap-year", wit.Bool{}),
		field("month-code", wit.U32{}),
	)
	witRoundingOptions = record("rounding-options",
		field("smallest-unit", witUnit),
		field("rounding-mode", witRoundingMode),
		field("increment", wit.U32{}),
	)
	witDifferenceSettings = record("difference-settings",
		field("largest-unit", witUnit),
		field("smallest-unit", witUnit),
		field("rounding-mode", witRoundingMode),
		field("increment", wit.U32{}),
	)
	witDurationRoundOptions = record("duration-round-options",
		field("largest-unit", witUnit),
		field("smallest-unit", witUnit),
		field("rounding-mode", witRoundingMode),
		field("has-relative-to", wit.Bool{}),
		field("increment", wit.U32{}),
		field("relative-to", witPlainDate),
	)
	witToStringOptions = record("to-string-options",
		field("precision", witPrecision),
		field("digits", wit.U8{}),
		field("rounding-mode", witRoundingMode),
		field("calendar-display", witCalendarDisplay),
		field("offset-display", witOffsetDisplay),
		field("time-zone-name-display", witZoneDisplay),
	)
	witTransition = record("transition",
		field("at", witInstant),
		field("offset-before", wit.S64{}),
		field("offset-after", wit.S64{}),
	)
	witStatus = record("status",
		field("code", wit.U32{}),
		field("parse-offset", wit.S32{}),
		field("required", wit.U32{}),
		field("message", wit.U32{}),
	)
)

// Records lists the WIT description of every flat record in interface order.
func Records() []*wit.TypeDef {
	return []*wit.TypeDef{
		witInstant, witPlainDate, witPlainTime, witPlainDateTime, witDuration,
		witDateFields, witRoundingOptions, witDifferenceSettings,
		witDurationRoundOptions, witToStringOptions, witTransition, witStatus,
	}
}

var calc = layout.NewCalculator()

// Layout is the memory layout of a flat record.
type Layout = layout.Info

// LayoutOf returns the layout of a WIT type.
func LayoutOf(t wit.Type) Layout {
	return calc.Calculate(t)
}

// WITTypeName spells a record field type the way WIT does.
func WITTypeName(t wit.Type) string {
	return layout.TypeName(t)
}

var (
	instantLayout       = calc.Calculate(witInstant)
	plainDateLayout     = calc.Calculate(witPlainDate)
	plainTimeLayout     = calc.Calculate(witPlainTime)
	plainDateTimeLayout = calc.Calculate(witPlainDateTime)
	durationLayout      = calc.Calculate(witDuration)
	dateFieldsLayout    = calc.Calculate(witDateFields)
	roundingLayout      = calc.Calculate(witRoundingOptions)
	differenceLayout    = calc.Calculate(witDifferenceSettings)
	durationRoundLayout = calc.Calculate(witDurationRoundOptions)
	toStringLayout      = calc.Calculate(witToStringOptions)
	transitionLayout    = calc.Calculate(witTransition)
	statusLayout        = calc.Calculate(witStatus)
)

func init() {
	for _, r := range Records() {
		if err := layout.Check(r); err != nil {
			panic("capi: record " + *r.Name + ": " + err.Error())
		}
	}
}
