package capi

import (
	"github.com/wippyai/temporal-capi/temporal"
)

// PlainDateNew builds a date from year, month and day in the given
// calendar. Out-of-range fields fail with InvalidField; nothing is clamped.
func (s *Surface) PlainDateNew(year int32, month, day uint8, cal Calendar) (out FlatPlainDate, err error) {
	defer s.guard("plain_date_new", &err)
	c, err := FromCalendar(cal)
	if err != nil {
		return FlatPlainDate{}, err
	}
	d, err := temporal.NewPlainDate(int64(year), int64(month), int64(day), c)
	if err != nil {
		return FlatPlainDate{}, err
	}
	return ToFlatPlainDate(d), nil
}

// PlainDateFields returns the calendar view of a date.
func (s *Surface) PlainDateFields(in FlatPlainDate) (out FlatDateFields, err error) {
	defer s.guard("plain_date_fields", &err)
	d, err := FromFlatPlainDate(in)
	if err != nil {
		return FlatDateFields{}, err
	}
	return ToFlatDateFields(d.Fields()), nil
}

func (s *Surface) PlainDateAdd(in FlatPlainDate, dur FlatDuration, overflow Overflow) (out FlatPlainDate, err error) {
	defer s.guard("plain_date_add", &err)
	return plainDateArith(in, dur, overflow, temporal.PlainDate.Add)
}

func (s *Surface) PlainDateSubtract(in FlatPlainDate, dur FlatDuration, overflow Overflow) (out FlatPlainDate, err error) {
	defer s.guard("plain_date_subtract", &err)
	return plainDateArith(in, dur, overflow, temporal.PlainDate.Subtract)
}

func plainDateArith(in FlatPlainDate, dur FlatDuration, overflow Overflow,
	op func(temporal.PlainDate, temporal.Duration, temporal.Overflow) (temporal.PlainDate, error)) (FlatPlainDate, error) {
	d, err := FromFlatPlainDate(in)
	if err != nil {
		return FlatPlainDate{}, err
	}
	dd, err := FromFlatDuration(dur)
	if err != nil {
		return FlatPlainDate{}, err
	}
	ov, err := FromOverflow(overflow)
	if err != nil {
		return FlatPlainDate{}, err
	}
	r, err := op(d, dd, ov)
	if err != nil {
		return FlatPlainDate{}, err
	}
	return ToFlatPlainDate(r), nil
}

func (s *Surface) PlainDateUntil(a, b FlatPlainDate, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("plain_date_until", &err)
	return plainDateDiff(a, b, settings, temporal.PlainDate.Until)
}

func (s *Surface) PlainDateSince(a, b FlatPlainDate, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("plain_date_since", &err)
	return plainDateDiff(a, b, settings, temporal.PlainDate.Since)
}

func plainDateDiff(a, b FlatPlainDate, settings FlatDifferenceSettings,
	op func(temporal.PlainDate, temporal.PlainDate, temporal.DifferenceSettings) (temporal.Duration, error)) (FlatDuration, error) {
	x, err := FromFlatPlainDate(a)
	if err != nil {
		return FlatDuration{}, err
	}
	y, err := FromFlatPlainDate(b)
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

// PlainDateCompare orders two dates of the same calendar. Dates in
// different calendars fail with InvalidCalendarOrTimeZone.
func (s *Surface) PlainDateCompare(a, b FlatPlainDate) (c int32, err error) {
	defer s.guard("plain_date_compare", &err)
	x, err := FromFlatPlainDate(a)
	if err != nil {
		return 0, err
	}
	y, err := FromFlatPlainDate(b)
	if err != nil {
		return 0, err
	}
	r, err := x.Compare(y)
	if err != nil {
		return 0, err
	}
	return int32(r), nil
}

// PlainDateWithCalendar reinterprets the same day in another calendar.
func (s *Surface) PlainDateWithCalendar(in FlatPlainDate, cal Calendar) (out FlatPlainDate, err error) {
	defer s.guard("plain_date_with_calendar", &err)
	d, err := FromFlatPlainDate(in)
	if err != nil {
		return FlatPlainDate{}, err
	}
	c, err := FromCalendar(cal)
	if err != nil {
		return FlatPlainDate{}, err
	}
	r, err := d.WithCalendar(c)
	if err != nil {
		return FlatPlainDate{}, err
	}
	return ToFlatPlainDate(r), nil
}

func (s *Surface) PlainDateToPlainDateTime(in FlatPlainDate, t FlatPlainTime) (out FlatPlainDateTime, err error) {
	defer s.guard("plain_date_to_plain_date_time", &err)
	d, err := FromFlatPlainDate(in)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	pt, err := FromFlatPlainTime(t)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	dt, err := d.ToPlainDateTime(pt)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	return ToFlatPlainDateTime(dt), nil
}

// PlainDateToZonedDateTime places a date in a zone at time t, or at the
// start of the day when t is nil.
func (s *Surface) PlainDateToZonedDateTime(in FlatPlainDate, tz Handle, t *FlatPlainTime, dis Disambiguation) (h Handle, err error) {
	defer s.guard("plain_date_to_zoned_date_time", &err)
	d, err := FromFlatPlainDate(in)
	if err != nil {
		return 0, err
	}
	var pt *temporal.PlainTime
	if t != nil {
		v, err := FromFlatPlainTime(*t)
		if err != nil {
			return 0, err
		}
		pt = &v
	}
	dd, err := FromDisambiguation(dis)
	if err != nil {
		return 0, err
	}
	z, done, err := s.zone(tz)
	if err != nil {
		return 0, err
	}
	defer done()
	zdt, err := d.ToZonedDateTime(z, pt, dd)
	if err != nil {
		return 0, err
	}
	return s.newZoned(zdt)
}

func (s *Surface) PlainDateParse(text string) (out FlatPlainDate, err error) {
	defer s.guard("plain_date_parse", &err)
	if err := ValidateText(text); err != nil {
		return FlatPlainDate{}, err
	}
	d, err := temporal.ParsePlainDate(text)
	if err != nil {
		return FlatPlainDate{}, err
	}
	return ToFlatPlainDate(d), nil
}

func (s *Surface) PlainDateFormat(in FlatPlainDate, o FlatToStringOptions) (text string, err error) {
	defer s.guard("plain_date_format", &err)
	d, err := FromFlatPlainDate(in)
	if err != nil {
		return "", err
	}
	opts, err := FromFlatToStringOptions(o)
	if err != nil {
		return "", err
	}
	return d.Format(opts)
}
