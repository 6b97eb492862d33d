package capi

import (
	"github.com/wippyai/temporal-capi/temporal"
)

// PlainTimeNew validates wall-clock fields.
func (s *Surface) PlainTimeNew(hour, minute, second uint8, ms, us, ns uint16) (out FlatPlainTime, err error) {
	defer s.guard("plain_time_new", &err)
	t, err := FromFlatPlainTime(FlatPlainTime{
		Hour: hour, Minute: minute, Second: second,
		Millisecond: ms, Microsecond: us, Nanosecond: ns,
	})
	if err != nil {
		return FlatPlainTime{}, err
	}
	return ToFlatPlainTime(t), nil
}

// PlainTimeAdd adds the clock part of a duration, wrapping past midnight.
func (s *Surface) PlainTimeAdd(in FlatPlainTime, d FlatDuration) (out FlatPlainTime, err error) {
	defer s.guard("plain_time_add", &err)
	return plainTimeArith(in, d, temporal.PlainTime.Add)
}

func (s *Surface) PlainTimeSubtract(in FlatPlainTime, d FlatDuration) (out FlatPlainTime, err error) {
	defer s.guard("plain_time_subtract", &err)
	return plainTimeArith(in, d, temporal.PlainTime.Subtract)
}

func plainTimeArith(in FlatPlainTime, d FlatDuration,
	op func(temporal.PlainTime, temporal.Duration) (temporal.PlainTime, error)) (FlatPlainTime, error) {
	t, err := FromFlatPlainTime(in)
	if err != nil {
		return FlatPlainTime{}, err
	}
	dur, err := FromFlatDuration(d)
	if err != nil {
		return FlatPlainTime{}, err
	}
	r, err := op(t, dur)
	if err != nil {
		return FlatPlainTime{}, err
	}
	return ToFlatPlainTime(r), nil
}

func (s *Surface) PlainTimeUntil(a, b FlatPlainTime, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("plain_time_until", &err)
	return plainTimeDiff(a, b, settings, temporal.PlainTime.Until)
}

func (s *Surface) PlainTimeSince(a, b FlatPlainTime, settings FlatDifferenceSettings) (out FlatDuration, err error) {
	defer s.guard("plain_time_since", &err)
	return plainTimeDiff(a, b, settings, temporal.PlainTime.Since)
}

func plainTimeDiff(a, b FlatPlainTime, settings FlatDifferenceSettings,
	op func(temporal.PlainTime, temporal.PlainTime, temporal.DifferenceSettings) (temporal.Duration, error)) (FlatDuration, error) {
	x, err := FromFlatPlainTime(a)
	if err != nil {
		return FlatDuration{}, err
	}
	y, err := FromFlatPlainTime(b)
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

func (s *Surface) PlainTimeRound(in FlatPlainTime, o FlatRoundingOptions) (out FlatPlainTime, err error) {
	defer s.guard("plain_time_round", &err)
	t, err := FromFlatPlainTime(in)
	if err != nil {
		return FlatPlainTime{}, err
	}
	opts, err := FromFlatRoundingOptions(o)
	if err != nil {
		return FlatPlainTime{}, err
	}
	r, err := t.Round(opts)
	if err != nil {
		return FlatPlainTime{}, err
	}
	return ToFlatPlainTime(r), nil
}

func (s *Surface) PlainTimeCompare(a, b FlatPlainTime) (c int32, err error) {
	defer s.guard("plain_time_compare", &err)
	x, err := FromFlatPlainTime(a)
	if err != nil {
		return 0, err
	}
	y, err := FromFlatPlainTime(b)
	if err != nil {
		return 0, err
	}
	return int32(x.Compare(y)), nil
}

func (s *Surface) PlainTimeParse(text string) (out FlatPlainTime, err error) {
	defer s.guard("plain_time_parse", &err)
	if err := ValidateText(text); err != nil {
		return FlatPlainTime{}, err
	}
	t, err := temporal.ParsePlainTime(text)
	if err != nil {
		return FlatPlainTime{}, err
	}
	return ToFlatPlainTime(t), nil
}

func (s *Surface) PlainTimeFormat(in FlatPlainTime, o FlatToStringOptions) (text string, err error) {
	defer s.guard("plain_time_format", &err)
	t, err := FromFlatPlainTime(in)
	if err != nil {
		return "", err
	}
	opts, err := FromFlatToStringOptions(o)
	if err != nil {
		return "", err
	}
	return t.Format(opts)
}
