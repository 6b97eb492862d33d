package capi

import (
	"github.com/wippyai/temporal-capi/errors"
	"github.com/wippyai/temporal-capi/temporal"
)

// ToFlat conversions are total and lossless. FromFlat conversions validate
// every field and reject values outside the engine's domain.

func ToFlatInstant(i temporal.Instant) FlatInstant {
	return FlatInstant{Seconds: i.EpochSeconds(), Nanoseconds: i.Nanoseconds()}
}

func FromFlatInstant(f FlatInstant) (temporal.Instant, error) {
	return temporal.NewInstant(f.Seconds, f.Nanoseconds)
}

func ToFlatPlainDate(d temporal.PlainDate) FlatPlainDate {
	iso := d.ISO()
	return FlatPlainDate{Year: iso.Year, Month: iso.Month, Day: iso.Day, Calendar: Calendar(d.Calendar())}
}

func FromFlatPlainDate(f FlatPlainDate) (temporal.PlainDate, error) {
	cal, err := FromCalendar(f.Calendar)
	if err != nil {
		return temporal.PlainDate{}, err
	}
	return temporal.NewPlainDateISO(temporal.IsoDate{Year: f.Year, Month: f.Month, Day: f.Day}, cal)
}

func ToFlatPlainTime(t temporal.PlainTime) FlatPlainTime {
	iso := t.ISO()
	return FlatPlainTime{
		Hour:        iso.Hour,
		Minute:      iso.Minute,
		Second:      iso.Second,
		Millisecond: iso.Millisecond,
		Microsecond: iso.Microsecond,
		Nanosecond:  iso.Nanosecond,
	}
}

func (f FlatPlainTime) iso() temporal.IsoTime {
	return temporal.IsoTime{
		Hour:        f.Hour,
		Minute:      f.Minute,
		Second:      f.Second,
		Millisecond: f.Millisecond,
		Microsecond: f.Microsecond,
		Nanosecond:  f.Nanosecond,
	}
}

func FromFlatPlainTime(f FlatPlainTime) (temporal.PlainTime, error) {
	return temporal.NewPlainTime(f.iso())
}

func ToFlatPlainDateTime(dt temporal.PlainDateTime) FlatPlainDateTime {
	return FlatPlainDateTime{
		Date: ToFlatPlainDate(dt.PlainDate()),
		Time: ToFlatPlainTime(dt.PlainTime()),
	}
}

func FromFlatPlainDateTime(f FlatPlainDateTime) (temporal.PlainDateTime, error) {
	cal, err := FromCalendar(f.Date.Calendar)
	if err != nil {
		return temporal.PlainDateTime{}, err
	}
	iso := temporal.IsoDateTime{
		Date: temporal.IsoDate{Year: f.Date.Year, Month: f.Date.Month, Day: f.Date.Day},
		Time: f.Time.iso(),
	}
	return temporal.NewPlainDateTime(iso, cal)
}

func ToFlatDuration(d temporal.Duration) FlatDuration {
	return FlatDuration(d)
}

func FromFlatDuration(f FlatDuration) (temporal.Duration, error) {
	return temporal.NewDuration(temporal.Duration(f))
}

// ToFlatDateFields packs the calendar view of a date.
func ToFlatDateFields(c temporal.CalendarFields) FlatDateFields {
	return FlatDateFields{
		Year:         c.Year,
		Month:        c.Month,
		Day:          c.Day,
		DayOfWeek:    c.DayOfWeek,
		WeekOfYear:   c.WeekOfYear,
		DayOfYear:    c.DayOfYear,
		DaysInYear:   c.DaysInYear,
		YearOfWeek:   c.YearOfWeek,
		DaysInWeek:   c.DaysInWeek,
		DaysInMonth:  c.DaysInMonth,
		MonthsInYear: c.MonthsInYear,
		InLeapYear:   c.InLeapYear,
		MonthCode:    packMonthCode(c.MonthCode),
	}
}

func packMonthCode(code string) uint32 {
	var v uint32
	for i := 0; i < len(code) && i < 4; i++ {
		v |= uint32(code[i]) << (8 * i)
	}
	return v
}

// MonthCodeString unpacks MonthCode.
func (f FlatDateFields) MonthCodeString() string {
	var b []byte
	for i := 0; i < 4; i++ {
		c := byte(f.MonthCode >> (8 * i))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}

func ToFlatTransition(t temporal.Transition) FlatTransition {
	return FlatTransition{At: ToFlatInstant(t.At), OffsetBefore: t.OffsetBefore, OffsetAfter: t.OffsetAfter}
}

// ToFlatStatus converts a Status; message is the text handle holding
// Status.Message, or 0.
func ToFlatStatus(s Status, message uint32) FlatStatus {
	return FlatStatus{Code: uint32(s.Code), ParseOffset: s.Offset, Required: s.Required, Message: message}
}

// ToCalendar returns the wire tag of an engine calendar.
func ToCalendar(c temporal.Calendar) Calendar {
	return Calendar(c)
}

// FromCalendar validates a wire calendar tag.
func FromCalendar(c Calendar) (temporal.Calendar, error) {
	cal := temporal.Calendar(c)
	if !cal.Valid() {
		return 0, errors.New(errors.PhaseMarshal, errors.KindInvalidIdentifier).
			Path("calendar").Value(uint8(c)).Detail("unknown calendar tag %d", uint8(c)).Build()
	}
	if !cal.Available() {
		return 0, errors.New(errors.PhaseMarshal, errors.KindInvalidIdentifier).
			Path("calendar").Value(cal.Identifier()).
			Detail("calendar %q requires bundled calendar data", cal.Identifier()).Build()
	}
	return cal, nil
}

func fromUnit(u Unit, path string) (temporal.Unit, error) {
	if u > UnitNanosecond {
		return 0, errors.New(errors.PhaseMarshal, errors.KindInvalidRounding).
			Path(path).Value(uint8(u)).Detail("unknown unit %d", uint8(u)).Build()
	}
	return temporal.Unit(u), nil
}

func fromMode(m RoundingMode) (temporal.RoundingMode, error) {
	if m > RoundHalfEven {
		return 0, errors.New(errors.PhaseMarshal, errors.KindInvalidRounding).
			Path("roundingMode").Value(uint8(m)).Detail("unknown rounding mode %d", uint8(m)).Build()
	}
	return temporal.RoundingMode(m), nil
}

// FromOverflow validates an overflow policy.
func FromOverflow(o Overflow) (temporal.Overflow, error) {
	switch o {
	case OverflowConstrain:
		return temporal.Constrain, nil
	case OverflowReject:
		return temporal.Reject, nil
	}
	return 0, errors.InvalidArgument(errors.PhaseMarshal, []string{"overflow"}, "unknown overflow policy")
}

// FromDisambiguation validates a disambiguation policy.
func FromDisambiguation(d Disambiguation) (temporal.Disambiguation, error) {
	if d > DisambiguateLater {
		return 0, errors.InvalidArgument(errors.PhaseMarshal, []string{"disambiguation"}, "unknown disambiguation policy")
	}
	return temporal.Disambiguation(d), nil
}

// FromOffsetOption validates an offset reconciliation policy.
func FromOffsetOption(o OffsetOption) (temporal.OffsetOption, error) {
	if o > OffsetIgnore {
		return 0, errors.InvalidArgument(errors.PhaseMarshal, []string{"offset"}, "unknown offset option")
	}
	return temporal.OffsetOption(o), nil
}

func FromFlatRoundingOptions(f FlatRoundingOptions) (temporal.RoundingOptions, error) {
	unit, err := fromUnit(f.SmallestUnit, "smallestUnit")
	if err != nil {
		return temporal.RoundingOptions{}, err
	}
	mode, err := fromMode(f.Mode)
	if err != nil {
		return temporal.RoundingOptions{}, err
	}
	return temporal.RoundingOptions{SmallestUnit: unit, Increment: int64(f.Increment), Mode: mode}, nil
}

func FromFlatDifferenceSettings(f FlatDifferenceSettings) (temporal.DifferenceSettings, error) {
	largest, err := fromUnit(f.LargestUnit, "largestUnit")
	if err != nil {
		return temporal.DifferenceSettings{}, err
	}
	smallest, err := fromUnit(f.SmallestUnit, "smallestUnit")
	if err != nil {
		return temporal.DifferenceSettings{}, err
	}
	mode, err := fromMode(f.Mode)
	if err != nil {
		return temporal.DifferenceSettings{}, err
	}
	return temporal.DifferenceSettings{
		LargestUnit:  largest,
		SmallestUnit: smallest,
		Increment:    int64(f.Increment),
		Mode:         mode,
	}, nil
}

func FromFlatDurationRoundOptions(f FlatDurationRoundOptions) (temporal.DurationRoundOptions, error) {
	s, err := FromFlatDifferenceSettings(FlatDifferenceSettings{
		LargestUnit:  f.LargestUnit,
		SmallestUnit: f.SmallestUnit,
		Mode:         f.Mode,
		Increment:    f.Increment,
	})
	if err != nil {
		return temporal.DurationRoundOptions{}, err
	}
	o := temporal.DurationRoundOptions{
		LargestUnit:  s.LargestUnit,
		SmallestUnit: s.SmallestUnit,
		Increment:    s.Increment,
		Mode:         s.Mode,
	}
	if f.HasRelativeTo {
		rel, err := FromFlatPlainDate(f.RelativeTo)
		if err != nil {
			return temporal.DurationRoundOptions{}, err
		}
		o.RelativeTo = &rel
	}
	return o, nil
}

func FromFlatToStringOptions(f FlatToStringOptions) (temporal.ToStringOptions, error) {
	var p temporal.Precision
	switch f.Precision {
	case PrecisionAuto:
		p = temporal.PrecisionAuto
	case PrecisionMinute:
		p = temporal.PrecisionMinute
	case PrecisionDigits:
		if f.Digits > 9 {
			return temporal.ToStringOptions{}, errors.New(errors.PhaseMarshal, errors.KindInvalidRounding).
				Path("digits").Value(f.Digits).Detail("fractional digits must be 0..9").Build()
		}
		p = temporal.FractionalDigits(int(f.Digits))
	default:
		return temporal.ToStringOptions{}, errors.New(errors.PhaseMarshal, errors.KindInvalidRounding).
			Path("precision").Value(uint8(f.Precision)).Detail("unknown precision kind").Build()
	}

	mode, err := fromMode(f.Mode)
	if err != nil {
		return temporal.ToStringOptions{}, err
	}
	if f.Calendar > CalendarDisplayCritical {
		return temporal.ToStringOptions{}, errors.InvalidArgument(errors.PhaseMarshal, []string{"calendarDisplay"}, "unknown calendar display")
	}
	if f.Offset > OffsetDisplayNever {
		return temporal.ToStringOptions{}, errors.InvalidArgument(errors.PhaseMarshal, []string{"offsetDisplay"}, "unknown offset display")
	}
	if f.TimeZoneName > TimeZoneNameCritical {
		return temporal.ToStringOptions{}, errors.InvalidArgument(errors.PhaseMarshal, []string{"timeZoneNameDisplay"}, "unknown time zone name display")
	}
	return temporal.ToStringOptions{
		Precision:    p,
		RoundingMode: mode,
		Calendar:     temporal.CalendarDisplay(f.Calendar),
		Offset:       temporal.OffsetDisplay(f.Offset),
		TimeZoneName: temporal.TimeZoneNameDisplay(f.TimeZoneName),
	}, nil
}
