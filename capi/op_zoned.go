package capi

import (
	"github.com/wippyai/temporal-capi/temporal"
)

// ZonedDateTimeFromPlainDateTime resolves a wall-clock value in a zone.
func (s *Surface) ZonedDateTimeFromPlainDateTime(in FlatPlainDateTime, tz Handle, dis Disambiguation) (h Handle, err error) {
	defer s.guard("zoned_date_time_from_plain_date_time", &err)
	return s.zonedFromPlain(in, tz, dis)
}

// ZonedDateTimeFromInstant pairs an instant with a zone and calendar.
func (s *Surface) ZonedDateTimeFromInstant(in FlatInstant, tz Handle, cal Calendar) (h Handle, err error) {
	defer s.guard("zoned_date_time_from_instant", &err)
	return s.InstantToZonedDateTime(in, tz, cal)
}

// ZonedDateTimeParse parses an RFC 9557 string with a [zone] annotation.
func (s *Surface) ZonedDateTimeParse(text string, dis Disambiguation, offset OffsetOption) (h Handle, err error) {
	defer s.guard("zoned_date_time_parse", &err)
	if err := ValidateText(text); err != nil {
		return 0, err
	}
	d, err := FromDisambiguation(dis)
	if err != nil {
		return 0, err
	}
	o, err := FromOffsetOption(offset)
	if err != nil {
		return 0, err
	}
	zdt, err := temporal.ParseZonedDateTime(text, d, o)
	if err != nil {
		return 0, err
	}
	return s.newZoned(zdt)
}

func (s *Surface) ZonedDateTimeInstant(h Handle) (out FlatInstant, err error) {
	defer s.guard("zoned_date_time_instant", &err)
	z, done, err := s.zdt(h)
	if err != nil {
		return FlatInstant{}, err
	}
	defer done()
	return ToFlatInstant(z.Instant()), nil
}

func (s *Surface) ZonedDateTimePlainDateTime(h Handle) (out FlatPlainDateTime, err error) {
	defer s.guard("zoned_date_time_plain_date_time", &err)
	z, done, err := s.zdt(h)
	if err != nil {
		return FlatPlainDateTime{}, err
	}
	defer done()
	return ToFlatPlainDateTime(z.PlainDateTime()), nil
}

func (s *Surface) ZonedDateTimeFields(h Handle) (out FlatDateFields, err error) {
	defer s.guard("zoned_date_time_fields", &err)
	z, done, err := s.zdt(h)
	if err != nil {
		return FlatDateFields{}, err
	}
	defer done()
	return ToFlatDateFields(z.Fields()), nil
}

func (s *Surface) ZonedDateTimeOffsetNanoseconds(h Handle) (ns int64, err error) {
	defer s.guard("zoned_date_time_offset_nanoseconds", &err)
	z, done, err := s.zdt(h)
	if err != nil {
		return 0, err
	}
	defer done()
	return z.OffsetNanoseconds(), nil
}

// ZonedDateTimeTimeZone returns a view of the zone identifier, valid while
// h is live.
func (s *Surface) ZonedDateTimeTimeZone(h Handle) (view Handle, err error) {
	defer s.guard("zoned_date_time_time_zone", &err)
	z, done, err := s.zdt(h)
	if err != nil {
		return 0, err
	}
	defer done()
	return s.views.InsertView(h, z.TimeZone().Identifier())
}

// ZonedDateTimeHoursInDay returns the length of the calendar day in hours.
func (s *Surface) ZonedDateTimeHoursInDay(h Handle) (hours float64, err error) {
	defer s.guard("zoned_date_time_hours_in_day", &err)
	z, done, err := s.zdt(h)
	if err != nil {
		return 0, err
	}
	defer done()
	return z.HoursInDay()
}

func (s *Surface) ZonedDateTimeStartOfDay(h Handle) (out Handle, err error) {
	defer s.guard("zoned_date_time_start_of_day", &err)
	return s.zonedMap(h, temporal.ZonedDateTime.StartOfDay)
}

func (s *Surface) ZonedDateTimeAdd(h Handle, d FlatDuration, overflow Overflow) (out Handle, err error) {
	defer s.guard("zoned_date_time_add", &err)
	return s.zonedArith(h, d, overflow, temporal.ZonedDateTime.Add)
}

func (s *Surface) ZonedDateTimeSubtract(h Handle, d FlatDuration, overflow Overflow) (out Handle, err error) {
	defer s.guard("zoned_date_time_subtract", &err)
	return s.zonedArith(h, d, overflow, temporal.ZonedDateTime.Subtract)
}

func (s *Surface) zonedArith(h Handle, d FlatDuration, overflow Overflow,
	op func(temporal.ZonedDateTime, temporal.Duration, temporal.Overflow) (temporal.ZonedDateTime, error)) (Handle, error) {
	dur, err := FromFlatDuration(d)
	if err != nil {
		return 0, err
	}
	ov, err := FromOverflow(overflow)
	if err != nil {
		return 0, err
	}
	return s.zonedMap(h, func(z temporal.ZonedDateTime) (temporal.ZonedDateTime, error) {
		return op(z, dur, ov)
	})
}

// zonedMap derives a new owned ZonedDateTime from h.
func (s *Surface) zonedMap(h Handle, fn func(temporal.ZonedDateTime) (temporal.ZonedDateTime, error)) (Handle, error) {
	z, done, err := s.zdt(h)
	if err != nil {
		return 0, err
	}
	defer done()
	r, err := fn(z)
	if err != nil {
		return 0, err
	}
	return s.newZoned(r)
}

func (s *Surface) ZonedDateTimeUntil(a, b Handle, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("zoned_date_time_until", &err)
	return s.zonedDiff(a, b, settings, temporal.ZonedDateTime.Until)
}

func (s *Surface) ZonedDateTimeSince(a, b Handle, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("zoned_date_time_since", &err)
	return s.zonedDiff(a, b, settings, temporal.ZonedDateTime.Since)
}

func (s *Surface) zonedDiff(a, b Handle, settings FlatDifferenceSettings,
	op func(temporal.ZonedDateTime, temporal.ZonedDateTime, temporal.DifferenceSettings) (temporal.Duration, error)) (FlatDuration, error) {
	set, err := FromFlatDifferenceSettings(settings)
	if err != nil {
		return FlatDuration{}, err
	}
	x, doneX, err := s.zdt(a)
	if err != nil {
		return FlatDuration{}, err
	}
	defer doneX()
	y, doneY, err := s.zdt(b)
	if err != nil {
		return FlatDuration{}, err
	}
	defer doneY()
	d, err := op(x, y, set)
	if err != nil {
		return FlatDuration{}, err
	}
	return ToFlatDuration(d), nil
}

func (s *Surface) ZonedDateTimeRound(h Handle, o FlatRoundingOptions) (out Handle, err error) {
	defer s.guard("zoned_date_time_round", &err)
	opts, err := FromFlatRoundingOptions(o)
	if err != nil {
		return 0, err
	}
	return s.zonedMap(h, func(z temporal.ZonedDateTime) (temporal.ZonedDateTime, error) {
		return z.Round(opts)
	})
}

// ZonedDateTimeCompare orders two values in the same zone by instant.
// Values in different zones fail with InvalidCalendarOrTimeZone.
func (s *Surface) ZonedDateTimeCompare(a, b Handle) (c int32, err error) {
	defer s.guard("zoned_date_time_compare", &err)
	x, doneX, err := s.zdt(a)
	if err != nil {
		return 0, err
	}
	defer doneX()
	y, doneY, err := s.zdt(b)
	if err != nil {
		return 0, err
	}
	defer doneY()
	r, err := x.Compare(y)
	if err != nil {
		return 0, err
	}
	return int32(r), nil
}

// ZonedDateTimeWithTimeZone returns the same instant seen from another zone.
func (s *Surface) ZonedDateTimeWithTimeZone(h Handle, tz Handle) (out Handle, err error) {
	defer s.guard("zoned_date_time_with_time_zone", &err)
	zone, done, err := s.zone(tz)
	if err != nil {
		return 0, err
	}
	defer done()
	return s.zonedMap(h, func(z temporal.ZonedDateTime) (temporal.ZonedDateTime, error) {
		return z.WithTimeZone(zone)
	})
}

func (s *Surface) ZonedDateTimeWithCalendar(h Handle, cal Calendar) (out Handle, err error) {
	defer s.guard("zoned_date_time_with_calendar", &err)
	c, err := FromCalendar(cal)
	if err != nil {
		return 0, err
	}
	return s.zonedMap(h, func(z temporal.ZonedDateTime) (temporal.ZonedDateTime, error) {
		return z.WithCalendar(c)
	})
}

func (s *Surface) ZonedDateTimeFormat(h Handle, o FlatToStringOptions) (text string, err error) {
	defer s.guard("zoned_date_time_format", &err)
	opts, err := FromFlatToStringOptions(o)
	if err != nil {
		return "", err
	}
	z, done, err := s.zdt(h)
	if err != nil {
		return "", err
	}
	defer done()
	return z.Format(opts)
}

// ZonedDateTimeRelease releases h and every view taken of it.
func (s *Surface) ZonedDateTimeRelease(h Handle) (err error) {
	defer s.guard("zoned_date_time_release", &err)
	return s.release(h, TypeZonedDateTime)
}
