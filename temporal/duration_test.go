package temporal

import (
	"math"
	"testing"

	"github.com/wippyai/temporal-capi/errors"
)

func TestDurationValidate(t *testing.T) {
	tests := []struct {
		name string
		d    Duration
		kind errors.Kind
	}{
		{"zero", Duration{}, ""},
		{"mixed signs", Duration{Hours: 1, Minutes: -1}, errors.KindInvalidField},
		{"years at limit", Duration{Years: 1<<32 - 1}, ""},
		{"years over limit", Duration{Years: 1 << 32}, errors.KindRangeOverflow},
		{"seconds at limit", Duration{Seconds: 1<<53 - 1}, ""},
		{"seconds over limit", Duration{Seconds: 1 << 53}, errors.KindRangeOverflow},
		{"spread over limit", Duration{Days: 104_249_991_374, Hours: 24}, errors.KindRangeOverflow},
		{"negative", Duration{Days: -1, Nanoseconds: -1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.kind == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if errors.KindOf(err) != tt.kind {
				t.Fatalf("err = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestDurationSignAbsNegate(t *testing.T) {
	d := Duration{Days: -2, Hours: -3}
	if d.Sign() != -1 {
		t.Errorf("sign = %d", d.Sign())
	}
	if abs := d.Abs(); abs != (Duration{Days: 2, Hours: 3}) {
		t.Errorf("abs = %+v", abs)
	}
	if n := d.Negated().Negated(); n != d {
		t.Errorf("double negation = %+v", n)
	}
	if (Duration{}).Sign() != 0 || !(Duration{}).IsZero() {
		t.Error("zero duration")
	}
}

func TestDurationAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b Duration
		want Duration
		kind errors.Kind
	}{
		{"minutes carry", Duration{Hours: 1, Minutes: 30}, Duration{Minutes: 45}, Duration{Hours: 2, Minutes: 15}, ""},
		{"days", Duration{Days: 1}, Duration{Hours: 25}, Duration{Days: 2, Hours: 1}, ""},
		{"opposite signs", Duration{Hours: 1}, Duration{Minutes: -90}, Duration{Minutes: -30}, ""},
		{"months", Duration{Months: 1}, Duration{Days: 1}, Duration{}, errors.KindInvalidArgument},
		{"overflow", Duration{Seconds: 1<<53 - 1}, Duration{Seconds: 1}, Duration{}, errors.KindRangeOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)
			if tt.kind != "" {
				if errors.KindOf(err) != tt.kind {
					t.Fatalf("err = %v, want kind %s", err, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDurationRound(t *testing.T) {
	jan1, err := NewPlainDate(2024, 1, 1, ISO8601)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		d    Duration
		opts DurationRoundOptions
		want Duration
		kind errors.Kind
	}{
		{"to hour", Duration{Hours: 1, Minutes: 30}, DurationRoundOptions{SmallestUnit: UnitHour}, Duration{Hours: 2}, ""},
		{"balance up", Duration{Minutes: 90}, DurationRoundOptions{LargestUnit: UnitHour}, Duration{Hours: 1, Minutes: 30}, ""},
		{"increment", Duration{Minutes: 7}, DurationRoundOptions{SmallestUnit: UnitMinute, Increment: 5}, Duration{Minutes: 5}, ""},
		{"half even", Duration{Minutes: 150}, DurationRoundOptions{SmallestUnit: UnitHour, Mode: RoundHalfEven}, Duration{Hours: 2}, ""},
		{"relative months", Duration{Months: 1, Days: 15}, DurationRoundOptions{SmallestUnit: UnitMonth, RelativeTo: &jan1}, Duration{Months: 2}, ""},
		{"relative balance", Duration{Days: 40}, DurationRoundOptions{LargestUnit: UnitMonth, RelativeTo: &jan1}, Duration{Months: 1, Days: 9}, ""},
		{"months without reference", Duration{Months: 1}, DurationRoundOptions{SmallestUnit: UnitDay}, Duration{}, errors.KindInvalidArgument},
		{"no units", Duration{Hours: 1}, DurationRoundOptions{}, Duration{}, errors.KindInvalidRounding},
		{"bad increment", Duration{Hours: 1}, DurationRoundOptions{SmallestUnit: UnitMinute, Increment: 7}, Duration{}, errors.KindInvalidRounding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.d.Round(tt.opts)
			if tt.kind != "" {
				if errors.KindOf(err) != tt.kind {
					t.Fatalf("err = %v, want kind %s", err, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDurationTotal(t *testing.T) {
	got, err := Duration{Hours: 36}.Total(UnitDay, nil)
	if err != nil || got != 1.5 {
		t.Errorf("PT36H in days = %v, %v", got, err)
	}
	feb1, _ := NewPlainDate(2024, 2, 1, ISO8601)
	got, err = Duration{Months: 1}.Total(UnitDay, &feb1)
	if err != nil || got != 29 {
		t.Errorf("P1M from 2024-02-01 in days = %v, %v", got, err)
	}
	got, err = Duration{Days: 45}.Total(UnitMonth, &feb1)
	if err != nil || math.Abs(got-(1+16.0/31)) > 1e-12 {
		t.Errorf("P45D from 2024-02-01 in months = %v, %v", got, err)
	}
	if _, err := (Duration{Months: 1}).Total(UnitDay, nil); errors.KindOf(err) != errors.KindInvalidArgument {
		t.Errorf("months without reference: %v", err)
	}
}

func TestDurationCompare(t *testing.T) {
	c, err := Duration{Hours: 25}.Compare(Duration{Days: 1}, nil)
	if err != nil || c != 1 {
		t.Errorf("PT25H vs P1D = %d, %v", c, err)
	}
	feb1, _ := NewPlainDate(2024, 2, 1, ISO8601)
	c, err = Duration{Months: 1}.Compare(Duration{Days: 30}, &feb1)
	if err != nil || c != -1 {
		t.Errorf("P1M vs P30D from February = %d, %v", c, err)
	}
	if _, err := (Duration{Months: 1}).Compare(Duration{Days: 30}, nil); errors.KindOf(err) != errors.KindInvalidArgument {
		t.Errorf("months without reference: %v", err)
	}
}
