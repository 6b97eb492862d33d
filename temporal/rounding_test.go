package temporal

import (
	"testing"

	"github.com/wippyai/temporal-capi/errors"
)

func TestRoundInt64Modes(t *testing.T) {
	tests := []struct {
		mode RoundingMode
		in   []int64
		want []int64
	}{
		{RoundCeil, []int64{15, -15, 14, -14}, []int64{20, -10, 20, -10}},
		{RoundFloor, []int64{15, -15, 14, -14}, []int64{10, -20, 10, -20}},
		{RoundExpand, []int64{15, -15, 11, -11}, []int64{20, -20, 20, -20}},
		{RoundTrunc, []int64{15, -15, 19, -19}, []int64{10, -10, 10, -10}},
		{RoundHalfCeil, []int64{15, -15, 14, -16}, []int64{20, -10, 10, -20}},
		{RoundHalfFloor, []int64{15, -15, 16, -14}, []int64{10, -20, 20, -10}},
		{RoundHalfExpand, []int64{15, -15, 14, -14}, []int64{20, -20, 10, -10}},
		{RoundHalfTrunc, []int64{15, -15, 16, -16}, []int64{10, -10, 20, -20}},
		{RoundHalfEven, []int64{15, 25, -15, -25}, []int64{20, 20, -20, -20}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			for i, v := range tt.in {
				if got := roundInt64(v, 10, tt.mode); got != tt.want[i] {
					t.Errorf("roundInt64(%d) = %d, want %d", v, got, tt.want[i])
				}
			}
		})
	}
}

func TestTimeDurationRoundMatchesInt64(t *testing.T) {
	modes := []RoundingMode{RoundCeil, RoundFloor, RoundExpand, RoundTrunc,
		RoundHalfCeil, RoundHalfFloor, RoundHalfExpand, RoundHalfTrunc, RoundHalfEven}
	values := []int64{0, 1, 499_999_999, 500_000_000, 1_500_000_000, 2_500_000_000, -1, -500_000_000, -1_500_000_000, -2_500_000_000}
	steps := []int64{1_000, 250_000_000, nsPerSecond, 3 * nsPerSecond}
	for _, mode := range modes {
		for _, step := range steps {
			for _, v := range values {
				got := timeDurationFromNanoseconds(v).round(makeIncrement(1, step), mode, false)
				want := timeDurationFromNanoseconds(roundInt64(v, step, mode))
				if got != want {
					t.Errorf("%s: round(%d, %d) = %+v, want %+v", mode, v, step, got, want)
				}
			}
		}
	}
}

func TestRoundAsIfPositive(t *testing.T) {
	d := timeDurationFromNanoseconds(-1_500_000_000)
	inc := makeIncrement(nsPerSecond, 1)
	if got := d.round(inc, RoundTrunc, true); got != (timeDuration{sec: -2}) {
		t.Errorf("trunc as if positive = %+v", got)
	}
	if got := d.round(inc, RoundHalfExpand, true); got != (timeDuration{sec: -1}) {
		t.Errorf("halfExpand as if positive = %+v", got)
	}
}

func TestLargeIncrementRounding(t *testing.T) {
	// 2^52 seconds plus a fraction, rounded to 7 nanoseconds
	d := timeDuration{sec: 1 << 52, nsec: 123_456_789}
	got := d.round(makeIncrement(1, 7), RoundFloor, false)
	r, _ := d.divmod(makeIncrement(1, 7))
	if want := d.sub(r); got != want {
		t.Errorf("floor = %+v, want %+v", got, want)
	}
	if got.cmp(d) > 0 || d.sub(got).cmp(timeDuration{nsec: 7}) >= 0 {
		t.Errorf("floor %+v not within one step below %+v", got, d)
	}
}

func TestValidateIncrement(t *testing.T) {
	tests := []struct {
		inc, max  int64
		inclusive bool
		ok        bool
	}{
		{1, 24, false, true},
		{12, 24, false, true},
		{24, 24, false, false},
		{24, 24, true, true},
		{7, 24, false, false},
		{0, 24, false, false},
		{1_000, 0, false, true},
	}
	for _, tt := range tests {
		err := validateIncrement(tt.inc, tt.max, tt.inclusive)
		if (err == nil) != tt.ok {
			t.Errorf("validateIncrement(%d, %d, %v) = %v", tt.inc, tt.max, tt.inclusive, err)
		}
		if err != nil && errors.KindOf(err) != errors.KindInvalidRounding {
			t.Errorf("kind = %s", errors.KindOf(err))
		}
	}
}

func TestResolveDifference(t *testing.T) {
	rs, err := resolveDifference(DifferenceSettings{}, UnitYear, UnitDay, UnitDay)
	if err != nil {
		t.Fatal(err)
	}
	if rs.largest != UnitDay || rs.smallest != UnitDay || rs.increment != 1 || rs.mode != RoundTrunc {
		t.Errorf("defaults = %+v", rs)
	}
	_, err = resolveDifference(DifferenceSettings{LargestUnit: UnitSecond, SmallestUnit: UnitHour}, UnitHour, UnitNanosecond, UnitSecond)
	if errors.KindOf(err) != errors.KindInvalidRounding {
		t.Errorf("largest < smallest: %v", err)
	}
	_, err = resolveDifference(DifferenceSettings{SmallestUnit: UnitYear}, UnitHour, UnitNanosecond, UnitSecond)
	if errors.KindOf(err) != errors.KindInvalidRounding {
		t.Errorf("year on instant: %v", err)
	}
}

func TestParseUnitAndMode(t *testing.T) {
	if u, ok := ParseUnit("hours"); !ok || u != UnitHour {
		t.Errorf("ParseUnit(hours) = %v, %v", u, ok)
	}
	if _, ok := ParseUnit("fortnight"); ok {
		t.Error("unexpected unit")
	}
	if m, ok := ParseRoundingMode("halfEven"); !ok || m != RoundHalfEven {
		t.Errorf("ParseRoundingMode(halfEven) = %v, %v", m, ok)
	}
}

func TestInstantRound(t *testing.T) {
	i, _ := NewInstant(1, 500_000_000)
	got, err := i.Round(RoundingOptions{SmallestUnit: UnitSecond})
	if err != nil {
		t.Fatal(err)
	}
	if got.EpochSeconds() != 2 || got.Nanoseconds() != 0 {
		t.Errorf("round = %v", got)
	}
	neg, _ := NewInstant(-1, 500_000_000)
	got, err = neg.Round(RoundingOptions{SmallestUnit: UnitSecond, Mode: RoundHalfExpand})
	if err != nil {
		t.Fatal(err)
	}
	if got.EpochSeconds() != 0 {
		t.Errorf("-0.5s halfExpand = %v", got)
	}
	_, err = i.Round(RoundingOptions{SmallestUnit: UnitMinute, Increment: 7})
	if errors.KindOf(err) != errors.KindInvalidRounding {
		t.Errorf("increment 7 minutes: %v", err)
	}
	if _, err := i.Round(RoundingOptions{SmallestUnit: UnitHour, Increment: 24}); err != nil {
		t.Errorf("24 hours divides a day: %v", err)
	}
}
