package capi

import (
	"github.com/wippyai/temporal-capi/temporal"
)

// InstantFromEpochSeconds validates seconds and nanoseconds in [0, 1e9).
func (s *Surface) InstantFromEpochSeconds(sec int64, nsec int32) (out FlatInstant, err error) {
	defer s.guard("instant_from_epoch_seconds", &err)
	i, err := temporal.NewInstant(sec, nsec)
	if err != nil {
		return FlatInstant{}, err
	}
	return ToFlatInstant(i), nil
}

// InstantFromEpochMilliseconds builds an instant from epoch milliseconds.
func (s *Surface) InstantFromEpochMilliseconds(ms int64) (out FlatInstant, err error) {
	defer s.guard("instant_from_epoch_milliseconds", &err)
	i, err := temporal.InstantFromEpochMilliseconds(ms)
	if err != nil {
		return FlatInstant{}, err
	}
	return ToFlatInstant(i), nil
}

// InstantEpochMilliseconds returns epoch milliseconds, floored.
func (s *Surface) InstantEpochMilliseconds(in FlatInstant) (ms int64, err error) {
	defer s.guard("instant_epoch_milliseconds", &err)
	i, err := FromFlatInstant(in)
	if err != nil {
		return 0, err
	}
	return i.EpochMilliseconds(), nil
}

// InstantNow samples the Surface's clock.
func (s *Surface) InstantNow() (out FlatInstant, err error) {
	defer s.guard("instant_now", &err)
	i, err := temporal.Now(s.clock)
	if err != nil {
		return FlatInstant{}, err
	}
	return ToFlatInstant(i), nil
}

func (s *Surface) InstantAdd(in FlatInstant, d FlatDuration) (out FlatInstant, err error) {
	defer s.guard("instant_add", &err)
	return instantArith(in, d, temporal.Instant.Add)
}

func (s *Surface) InstantSubtract(in FlatInstant, d FlatDuration) (out FlatInstant, err error) {
	defer s.guard("instant_subtract", &err)
	return instantArith(in, d, temporal.Instant.Subtract)
}

func instantArith(in FlatInstant, d FlatDuration,
	op func(temporal.Instant, temporal.Duration) (temporal.Instant, error)) (FlatInstant, error) {
	i, err := FromFlatInstant(in)
	if err != nil {
		return FlatInstant{}, err
	}
	dur, err := FromFlatDuration(d)
	if err != nil {
		return FlatInstant{}, err
	}
	r, err := op(i, dur)
	if err != nil {
		return FlatInstant{}, err
	}
	return ToFlatInstant(r), nil
}

func (s *Surface) InstantUntil(a, b FlatInstant, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("instant_until", &err)
	return instantDiff(a, b, settings, temporal.Instant.Until)
}

func (s *Surface) InstantSince(a, b FlatInstant, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("instant_since", &err)
	return instantDiff(a, b, settings, temporal.Instant.Since)
}

func instantDiff(a, b FlatInstant, settings FlatDifferenceSettings,
	op func(temporal.Instant, temporal.Instant, temporal.DifferenceSettings) (temporal.Duration, error)) (FlatDuration, error) {
	x, err := FromFlatInstant(a)
	if err != nil {
		return FlatDuration{}, err
	}
	y, err := FromFlatInstant(b)
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

func (s *Surface) InstantRound(in FlatInstant, o FlatRoundingOptions) (out FlatInstant, err error) {
	defer s.guard("instant_round", &err)
	i, err := FromFlatInstant(in)
	if err != nil {
		return FlatInstant{}, err
	}
	opts, err := FromFlatRoundingOptions(o)
	if err != nil {
		return FlatInstant{}, err
	}
	r, err := i.Round(opts)
	if err != nil {
		return FlatInstant{}, err
	}
	return ToFlatInstant(r), nil
}

// InstantCompare returns -1, 0 or 1.
func (s *Surface) InstantCompare(a, b FlatInstant) (c int32, err error) {
	defer s.guard("instant_compare", &err)
	x, err := FromFlatInstant(a)
	if err != nil {
		return 0, err
	}
	y, err := FromFlatInstant(b)
	if err != nil {
		return 0, err
	}
	return int32(x.Compare(y)), nil
}

func (s *Surface) InstantParse(text string) (out FlatInstant, err error) {
	defer s.guard("instant_parse", &err)
	if err := ValidateText(text); err != nil {
		return FlatInstant{}, err
	}
	i, err := temporal.ParseInstant(text)
	if err != nil {
		return FlatInstant{}, err
	}
	return ToFlatInstant(i), nil
}

// InstantFormat prints an instant in UTC ("Z"), or with the offset of tz
// when tz is non-zero.
func (s *Surface) InstantFormat(in FlatInstant, tz Handle, o FlatToStringOptions) (text string, err error) {
	defer s.guard("instant_format", &err)
	i, err := FromFlatInstant(in)
	if err != nil {
		return "", err
	}
	opts, err := FromFlatToStringOptions(o)
	if err != nil {
		return "", err
	}
	z, done, err := s.optionalZone(tz)
	if err != nil {
		return "", err
	}
	defer done()
	return i.Format(z, opts)
}

// InstantToZonedDateTime pairs an instant with a zone and calendar.
func (s *Surface) InstantToZonedDateTime(in FlatInstant, tz Handle, cal Calendar) (h Handle, err error) {
	defer s.guard("instant_to_zoned_date_time", &err)
	i, err := FromFlatInstant(in)
	if err != nil {
		return 0, err
	}
	c, err := FromCalendar(cal)
	if err != nil {
		return 0, err
	}
	z, done, err := s.zone(tz)
	if err != nil {
		return 0, err
	}
	defer done()
	zdt, err := i.ToZonedDateTime(z, c)
	if err != nil {
		return 0, err
	}
	return s.newZoned(zdt)
}
