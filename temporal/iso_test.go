package temporal

import (
	"testing"

	"github.com/wippyai/temporal-capi/errors"
)

func TestEpochDaysRoundTrip(t *testing.T) {
	tests := []struct {
		y, m, d int64
		days    int64
	}{
		{1970, 1, 1, 0},
		{1969, 12, 31, -1},
		{2000, 3, 1, 11017},
		{2024, 2, 29, 19782},
		{-271821, 4, 20, -100_000_000},
		{275760, 9, 13, 100_000_000},
	}
	for _, tt := range tests {
		if got := epochDaysFromISO(tt.y, tt.m, tt.d); got != tt.days {
			t.Errorf("epochDaysFromISO(%d-%d-%d) = %d, want %d", tt.y, tt.m, tt.d, got, tt.days)
		}
		y, m, d := isoFromEpochDays(tt.days)
		if y != tt.y || m != tt.m || d != tt.d {
			t.Errorf("isoFromEpochDays(%d) = %d-%d-%d", tt.days, y, m, d)
		}
	}
}

func TestLeapYears(t *testing.T) {
	for y, want := range map[int64]bool{2000: true, 1900: false, 2024: true, 2023: false, 0: true, -4: true, -1: false} {
		if got := isLeapYear(y); got != want {
			t.Errorf("isLeapYear(%d) = %v", y, got)
		}
	}
}

func TestRegulateISODate(t *testing.T) {
	got, err := regulateISODate(2023, 2, 31, Constrain)
	if err != nil || got != (IsoDate{Year: 2023, Month: 2, Day: 28}) {
		t.Errorf("constrain: got %v, %v", got, err)
	}
	_, err = regulateISODate(2023, 13, 1, Reject)
	if errors.KindOf(err) != errors.KindInvalidField {
		t.Errorf("reject month 13: got %v", err)
	}
	_, err = regulateISODate(2023, 4, 31, Reject)
	if errors.KindOf(err) != errors.KindInvalidField {
		t.Errorf("reject April 31: got %v", err)
	}
}

func TestISODateLimits(t *testing.T) {
	tests := []struct {
		name string
		date IsoDate
		ok   bool
	}{
		{"min", IsoDate{Year: -271821, Month: 4, Day: 19}, true},
		{"below min", IsoDate{Year: -271821, Month: 4, Day: 18}, false},
		{"max", IsoDate{Year: 275760, Month: 9, Day: 13}, true},
		{"above max", IsoDate{Year: 275760, Month: 9, Day: 14}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isoDateWithinLimits(tt.date); got != tt.ok {
				t.Errorf("isoDateWithinLimits(%v) = %v", tt.date, got)
			}
		})
	}
}

func TestISODateTimeLimits(t *testing.T) {
	min := IsoDateTime{Date: IsoDate{Year: -271821, Month: 4, Day: 19}, Time: IsoTime{Nanosecond: 1}}
	if !isoDateTimeWithinLimits(min) {
		t.Error("one nanosecond into the first day should be representable")
	}
	if isoDateTimeWithinLimits(IsoDateTime{Date: IsoDate{Year: -271821, Month: 4, Day: 19}}) {
		t.Error("midnight of the first day lies a full day before the minimum instant")
	}
	max := IsoDateTime{Date: IsoDate{Year: 275760, Month: 9, Day: 13}, Time: IsoTime{Hour: 23, Minute: 59, Second: 59, Millisecond: 999, Microsecond: 999, Nanosecond: 999}}
	if !isoDateTimeWithinLimits(max) {
		t.Error("last nanosecond of the final day should be representable")
	}
}

func TestISOTime(t *testing.T) {
	tm := IsoTime{Hour: 13, Minute: 5, Second: 7, Millisecond: 1, Microsecond: 2, Nanosecond: 3}
	ns := tm.NanosecondOfDay()
	if back := isoTimeFromNanoseconds(ns); back != tm {
		t.Errorf("round trip = %v", back)
	}
	if _, err := regulateISOTime(24, 0, 0, 0, 0, 0, Reject); errors.KindOf(err) != errors.KindInvalidField {
		t.Errorf("hour 24 reject: %v", err)
	}
	got, err := regulateISOTime(25, 61, 61, 1000, 1000, 1000, Constrain)
	if err != nil {
		t.Fatal(err)
	}
	want := IsoTime{Hour: 23, Minute: 59, Second: 59, Millisecond: 999, Microsecond: 999, Nanosecond: 999}
	if got != want {
		t.Errorf("constrain = %v", got)
	}
}

func TestAddTimeCarriesDays(t *testing.T) {
	days, tm := addTime(IsoTime{Hour: 23}, timeDurationFromNanoseconds(2*nsPerHour))
	if days != 1 || tm != (IsoTime{Hour: 1}) {
		t.Errorf("addTime = %d, %v", days, tm)
	}
	days, tm = addTime(IsoTime{Hour: 1}, timeDurationFromNanoseconds(-2*nsPerHour))
	if days != -1 || tm != (IsoTime{Hour: 23}) {
		t.Errorf("addTime backwards = %d, %v", days, tm)
	}
}

func TestRoundISODateTime(t *testing.T) {
	dt := IsoDateTime{Date: IsoDate{Year: 2024, Month: 12, Day: 31}, Time: IsoTime{Hour: 23, Minute: 59, Second: 30}}
	got, err := roundISODateTime(dt, 1, UnitMinute, RoundHalfExpand)
	if err != nil {
		t.Fatal(err)
	}
	want := IsoDateTime{Date: IsoDate{Year: 2025, Month: 1, Day: 1}}
	if got != want {
		t.Errorf("round = %v, want %v", got, want)
	}
}
