package capi

import (
	"github.com/wippyai/temporal-capi/temporal"
)

// DurationNew validates component signs and magnitudes.
func (s *Surface) DurationNew(in FlatDuration) (out FlatDuration, err error) {
	defer s.guard("duration_new", &err)
	d, err := FromFlatDuration(in)
	if err != nil {
		return FlatDuration{}, err
	}
	return ToFlatDuration(d), nil
}

func (s *Surface) DurationSign(in FlatDuration) (sign int32, err error) {
	defer s.guard("duration_sign", &err)
	d, err := FromFlatDuration(in)
	if err != nil {
		return 0, err
	}
	return int32(d.Sign()), nil
}

func (s *Surface) DurationNegate(in FlatDuration) (out FlatDuration, err error) {
	defer s.guard("duration_negate", &err)
	return durationMap(in, temporal.Duration.Negated)
}

func (s *Surface) DurationAbs(in FlatDuration) (out FlatDuration, err error) {
	defer s.guard("duration_abs", &err)
	return durationMap(in, temporal.Duration.Abs)
}

func durationMap(in FlatDuration, fn func(temporal.Duration) temporal.Duration) (FlatDuration, error) {
	d, err := FromFlatDuration(in)
	if err != nil {
		return FlatDuration{}, err
	}
	return ToFlatDuration(fn(d)), nil
}

// DurationAdd sums two durations. Calendar units are rejected because no
// reference date is available.
func (s *Surface) DurationAdd(a, b FlatDuration) (out FlatDuration, err error) {
	defer s.guard("duration_add", &err)
	return durationArith(a, b, temporal.Duration.Add)
}

func (s *Surface) DurationSubtract(a, b FlatDuration) (out FlatDuration, err error) {
	defer s.guard("duration_subtract", &err)
	return durationArith(a, b, temporal.Duration.Subtract)
}

func durationArith(a, b FlatDuration, op func(temporal.Duration, temporal.Duration) (temporal.Duration, error)) (FlatDuration, error) {
	x, err := FromFlatDuration(a)
	if err != nil {
		return FlatDuration{}, err
	}
	y, err := FromFlatDuration(b)
	if err != nil {
		return FlatDuration{}, err
	}
	r, err := op(x, y)
	if err != nil {
		return FlatDuration{}, err
	}
	return ToFlatDuration(r), nil
}

// DurationRound rounds and rebalances. Calendar units need a reference date
// through HasRelativeTo.
func (s *Surface) DurationRound(in FlatDuration, o FlatDurationRoundOptions) (out FlatDuration, err error) {
	defer s.guard("duration_round", &err)
	d, err := FromFlatDuration(in)
	if err != nil {
		return FlatDuration{}, err
	}
	opts, err := FromFlatDurationRoundOptions(o)
	if err != nil {
		return FlatDuration{}, err
	}
	r, err := d.Round(opts)
	if err != nil {
		return FlatDuration{}, err
	}
	return ToFlatDuration(r), nil
}

// DurationTotal expresses the duration as a fractional count of unit.
// relativeTo may be nil.
func (s *Surface) DurationTotal(in FlatDuration, unit Unit, relativeTo *FlatPlainDate) (total float64, err error) {
	defer s.guard("duration_total", &err)
	d, err := FromFlatDuration(in)
	if err != nil {
		return 0, err
	}
	u, err := fromUnit(unit, "unit")
	if err != nil {
		return 0, err
	}
	rel, err := relativeDate(relativeTo)
	if err != nil {
		return 0, err
	}
	return d.Total(u, rel)
}

func (s *Surface) DurationCompare(a, b FlatDuration, relativeTo *FlatPlainDate) (c int32, err error) {
	defer s.guard("duration_compare", &err)
	x, err := FromFlatDuration(a)
	if err != nil {
		return 0, err
	}
	y, err := FromFlatDuration(b)
	if err != nil {
		return 0, err
	}
	rel, err := relativeDate(relativeTo)
	if err != nil {
		return 0, err
	}
	r, err := x.Compare(y, rel)
	if err != nil {
		return 0, err
	}
	return int32(r), nil
}

func relativeDate(f *FlatPlainDate) (*temporal.PlainDate, error) {
	if f == nil {
		return nil, nil
	}
	d, err := FromFlatPlainDate(*f)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Surface) DurationParse(text string) (out FlatDuration, err error) {
	defer s.guard("duration_parse", &err)
	if err := ValidateText(text); err != nil {
		return FlatDuration{}, err
	}
	d, err := temporal.ParseDuration(text)
	if err != nil {
		return FlatDuration{}, err
	}
	return ToFlatDuration(d), nil
}

func (s *Surface) DurationFormat(in FlatDuration, o FlatToStringOptions) (text string, err error) {
	defer s.guard("duration_format", &err)
	d, err := FromFlatDuration(in)
	if err != nil {
		return "", err
	}
	opts, err := FromFlatToStringOptions(o)
	if err != nil {
		return "", err
	}
	return d.Format(opts)
}
