package capi

import (
	"github.com/wippyai/temporal-capi/temporal"
)

// PlainDateTimeNew builds a date-time from calendar date fields and
// wall-clock fields.
func (s *Surface) PlainDateTimeNew(year int32, month, day, hour, minute, second uint8, ms, us, ns uint16, cal Calendar) (out FlatPlainDateTime, err error) {
	defer s.guard("plain_date_time_new", &err)
	c, err := FromCalendar(cal)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	d, err := temporal.NewPlainDate(int64(year), int64(month), int64(day), c)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	t, err := FromFlatPlainTime(FlatPlainTime{
		Hour: hour, Minute: minute, Second: second,
		Millisecond: ms, Microsecond: us, Nanosecond: ns,
	})
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	dt, err := d.ToPlainDateTime(t)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	return ToFlatPlainDateTime(dt), nil
}

// PlainDateTimeFields returns the calendar view of the date part.
func (s *Surface) PlainDateTimeFields(in FlatPlainDateTime) (out FlatDateFields, err error) {
	defer s.guard("plain_date_time_fields", &err)
	dt, err := FromFlatPlainDateTime(in)
	if err != nil {
		return FlatDateFields{}, err
	}
	return ToFlatDateFields(dt.Fields()), nil
}

func (s *Surface) PlainDateTimeAdd(in FlatPlainDateTime, d FlatDuration, overflow Overflow) (out FlatPlainDateTime, err error) {
	defer s.guard("plain_date_time_add", &err)
	return plainDateTimeArith(in, d, overflow, temporal.PlainDateTime.Add)
}

func (s *Surface) PlainDateTimeSubtract(in FlatPlainDateTime, d FlatDuration, overflow Overflow) (out FlatPlainDateTime, err error) {
	defer s.guard("plain_date_time_subtract", &err)
	return plainDateTimeArith(in, d, overflow, temporal.PlainDateTime.Subtract)
}

func plainDateTimeArith(in FlatPlainDateTime, d FlatDuration, overflow Overflow,
	op func(temporal.PlainDateTime, temporal.Duration, temporal.Overflow) (temporal.PlainDateTime, error)) (FlatPlainDateTime, error) {
	dt, err := FromFlatPlainDateTime(in)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	dur, err := FromFlatDuration(d)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	ov, err := FromOverflow(overflow)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	r, err := op(dt, dur, ov)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	return ToFlatPlainDateTime(r), nil
}

func (s *Surface) PlainDateTimeUntil(a, b FlatPlainDateTime, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("plain_date_time_until", &err)
	return plainDateTimeDiff(a, b, settings, temporal.PlainDateTime.Until)
}

func (s *Surface) PlainDateTimeSince(a, b FlatPlainDateTime, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("plain_date_time_since", &err)
	return plainDateTimeDiff(a, b, settings, temporal.PlainDateTime.Since)
}

func plainDateTimeDiff(a, b FlatPlainDateTime, settings FlatDifferenceSettings,
	op func(temporal.PlainDateTime, temporal.PlainDateTime, temporal.DifferenceSettings) (temporal.Duration, error)) (FlatDuration, error) {
	x, err := FromFlatPlainDateTime(a)
	if err != nil {
		return FlatDuration{}, err
	}
	y, err := FromFlatPlainDateTime(b)
	if err != nil {
		return FlatDuration{}, err
	}
	set, err := FromFlatDifferenceSettings(settings)
	if err != nil {
		return FlatDuration{}, err
	}
	d, err := op(x, y, set)
	if err != nil {
		return FlatDuration{}, err
	}
	return ToFlatDuration(d), nil
}

func (s *Surface) PlainDateTimeRound(in FlatPlainDateTime, o FlatRoundingOptions) (out FlatPlainDateTime, err error) {
	defer s.guard("plain_date_time_round", &err)
	dt, err := FromFlatPlainDateTime(in)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	opts, err := FromFlatRoundingOptions(o)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	r, err := dt.Round(opts)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	return ToFlatPlainDateTime(r), nil
}

// PlainDateTimeCompare orders two values of the same calendar.
func (s *Surface) PlainDateTimeCompare(a, b FlatPlainDateTime) (c int32, err error) {
	defer s.guard("plain_date_time_compare", &err)
	x, err := FromFlatPlainDateTime(a)
	if err != nil {
		return 0, err
	}
	y, err := FromFlatPlainDateTime(b)
	if err != nil {
		return 0, err
	}
	r, err := x.Compare(y)
	if err != nil {
		return 0, err
	}
	return int32(r), nil
}

func (s *Surface) PlainDateTimeWithCalendar(in FlatPlainDateTime, cal Calendar) (out FlatPlainDateTime, err error) {
	defer s.guard("plain_date_time_with_calendar", &err)
	dt, err := FromFlatPlainDateTime(in)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	c, err := FromCalendar(cal)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	r, err := dt.WithCalendar(c)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	return ToFlatPlainDateTime(r), nil
}

// PlainDateTimeToZonedDateTime resolves a wall-clock value in a zone. Values
// in a gap or overlap need an explicit disambiguation other than reject.
func (s *Surface) PlainDateTimeToZonedDateTime(in FlatPlainDateTime, tz Handle, dis Disambiguation) (h Handle, err error) {
	defer s.guard("plain_date_time_to_zoned_date_time", &err)
	return s.zonedFromPlain(in, tz, dis)
}

func (s *Surface) zonedFromPlain(in FlatPlainDateTime, tz Handle, dis Disambiguation) (Handle, error) {
	dt, err := FromFlatPlainDateTime(in)
	if err != nil {
		return 0, err
	}
	d, err := FromDisambiguation(dis)
	if err != nil {
		return 0, err
	}
	z, done, err := s.zone(tz)
	if err != nil {
		return 0, err
	}
	defer done()
	zdt, err := dt.ToZonedDateTime(z, d)
	if err != nil {
		return 0, err
	}
	return s.newZoned(zdt)
}

func (s *Surface) PlainDateTimeParse(text string) (out FlatPlainDateTime, err error) {
	defer s.guard("plain_date_time_parse", &err)
	if err := ValidateText(text); err != nil {
		return FlatPlainDateTime{}, err
	}
	dt, err := temporal.ParsePlainDateTime(text)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	return ToFlatPlainDateTime(dt), nil
}

func (s *Surface) PlainDateTimeFormat(in FlatPlainDateTime, o FlatToStringOptions) (text string, err error) {
	defer s.guard("plain_date_time_format", &err)
	dt, err := FromFlatPlainDateTime(in)
	if err != nil {
		return "", err
	}
	opts, err := FromFlatToStringOptions(o)
	if err != nil {
		return "", err
	}
	return dt.Format(opts)
}
