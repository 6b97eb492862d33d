package capi

import (
	"bytes"
	"testing"

	temporalcapi "github.com/wippyai/temporal-capi"
)

func TestMemcodecRoundTrip(t *testing.T) {
	mem := temporalcapi.NewSliceMemory(1024)

	instant := FlatInstant{Seconds: -1, Nanoseconds: 999_999_999}
	if err := WriteInstant(mem, 16, instant); err != nil {
		t.Fatal(err)
	}
	if got, err := ReadInstant(mem, 16); err != nil || got != instant {
		t.Errorf("instant = %+v, %v", got, err)
	}

	dt := FlatPlainDateTime{
		Date: FlatPlainDate{Year: -271821, Month: 4, Day: 20, Calendar: CalendarCoptic},
		Time: FlatPlainTime{Hour: 23, Minute: 59, Second: 59, Millisecond: 999, Microsecond: 999, Nanosecond: 999},
	}
	if err := WritePlainDateTime(mem, 64, dt); err != nil {
		t.Fatal(err)
	}
	if got, err := ReadPlainDateTime(mem, 64); err != nil || got != dt {
		t.Errorf("date-time = %+v, %v", got, err)
	}

	dur := FlatDuration{Years: -1, Months: -2, Weeks: -3, Days: -4, Hours: -5, Minutes: -6,
		Seconds: -7, Milliseconds: -8, Microseconds: -9, Nanoseconds: -10}
	if err := WriteDuration(mem, 128, dur); err != nil {
		t.Fatal(err)
	}
	if got, err := ReadDuration(mem, 128); err != nil || got != dur {
		t.Errorf("duration = %+v, %v", got, err)
	}

	fields := FlatDateFields{Year: 2024, Month: 2, Day: 29, DayOfWeek: 4, WeekOfYear: 9, DayOfYear: 60,
		DaysInYear: 366, YearOfWeek: 2024, DaysInWeek: 7, DaysInMonth: 29, MonthsInYear: 12,
		InLeapYear: true, MonthCode: packMonthCode("M02")}
	if err := WriteDateFields(mem, 256, fields); err != nil {
		t.Fatal(err)
	}
	if got, err := ReadDateFields(mem, 256); err != nil || got != fields {
		t.Errorf("fields = %+v, %v", got, err)
	}

	opts := FlatDurationRoundOptions{LargestUnit: UnitMonth, SmallestUnit: UnitDay, Mode: RoundHalfEven,
		HasRelativeTo: true, Increment: 2, RelativeTo: FlatPlainDate{Year: 2024, Month: 1, Day: 31}}
	if err := WriteDurationRoundOptions(mem, 320, opts); err != nil {
		t.Fatal(err)
	}
	if got, err := ReadDurationRoundOptions(mem, 320); err != nil || got != opts {
		t.Errorf("duration round options = %+v, %v", got, err)
	}

	tr := FlatTransition{At: FlatInstant{Seconds: 1710054000}, OffsetBefore: -5 * 3600e9, OffsetAfter: -4 * 3600e9}
	if err := WriteTransition(mem, 384, tr); err != nil {
		t.Fatal(err)
	}
	if got, err := ReadTransition(mem, 384); err != nil || got != tr {
		t.Errorf("transition = %+v, %v", got, err)
	}

	st := FlatStatus{Code: uint32(ParseFailure), ParseOffset: 7, Message: 3}
	if err := WriteStatus(mem, 448, st); err != nil {
		t.Fatal(err)
	}
	if got, err := ReadStatus(mem, 448); err != nil || got != st {
		t.Errorf("status = %+v, %v", got, err)
	}

	ts := FlatToStringOptions{Precision: PrecisionDigits, Digits: 3, Mode: RoundTrunc,
		Calendar: CalendarDisplayAlways, Offset: OffsetDisplayNever, TimeZoneName: TimeZoneNameCritical}
	if err := WriteToStringOptions(mem, 471, ts); err != nil {
		t.Fatal(err)
	}
	if got, err := ReadToStringOptions(mem, 471); err != nil || got != ts {
		t.Errorf("to-string options = %+v, %v", got, err)
	}
}

func TestMemcodecWireBytes(t *testing.T) {
	mem := temporalcapi.NewSliceMemory(64)
	d := FlatPlainDate{Year: 2024, Month: 3, Day: 15, Calendar: CalendarBuddhist}
	if err := WritePlainDate(mem, 8, d); err != nil {
		t.Fatal(err)
	}
	want := []byte{0xe8, 0x07, 0x00, 0x00, 3, 15, 2, 0}
	if got := mem.Bytes()[8:16]; !bytes.Equal(got, want) {
		t.Errorf("bytes = % x, want % x", got, want)
	}
}

func TestMemcodecOptionalDefaults(t *testing.T) {
	mem := temporalcapi.NewSliceMemory(16)
	if o, err := ReadRoundingOptions(mem, 0); err != nil || o != (FlatRoundingOptions{}) {
		t.Errorf("rounding = %+v, %v", o, err)
	}
	if o, err := ReadDifferenceSettings(mem, 0); err != nil || o != (FlatDifferenceSettings{}) {
		t.Errorf("difference = %+v, %v", o, err)
	}
	if o, err := ReadToStringOptions(mem, 0); err != nil || o != (FlatToStringOptions{}) {
		t.Errorf("to-string = %+v, %v", o, err)
	}
}

func TestMemcodecRejects(t *testing.T) {
	mem := temporalcapi.NewSliceMemory(64)
	mem.Bytes()[40+19] = 2 // in-leap-year

	tests := []struct {
		name string
		fn   func() error
	}{
		{"null", func() error { _, err := ReadInstant(mem, 0); return err }},
		{"misaligned", func() error { _, err := ReadInstant(mem, 4); return err }},
		{"past end", func() error { _, err := ReadDuration(mem, 8); return err }},
		{"write past end", func() error { return WriteTransition(mem, 40, FlatTransition{}) }},
		{"bool byte", func() error { _, err := ReadDateFields(mem, 40); return err }},
		{"null scalar", func() error { return WriteU32(mem, 0, 1, "out") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.fn()); got != InvalidArgument {
				t.Errorf("code = %s, want invalid_argument", got)
			}
		})
	}
}

func TestMemcodecFailedWriteLeavesMemory(t *testing.T) {
	mem := temporalcapi.NewSliceMemory(40)
	for i := range mem.Bytes() {
		mem.Bytes()[i] = 0xaa
	}
	// The record starts in bounds but its tail does not fit.
	if err := WriteTransition(mem, 16, FlatTransition{OffsetAfter: 1}); err == nil {
		t.Fatal("write succeeded")
	}
	for i, b := range mem.Bytes() {
		if b != 0xaa {
			t.Fatalf("byte %d modified", i)
		}
	}
}
