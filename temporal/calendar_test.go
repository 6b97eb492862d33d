//go:build !temporal_nodata

package temporal

import (
	"testing"

	"github.com/wippyai/temporal-capi/errors"
)

func TestCalendarFromIdentifier(t *testing.T) {
	tests := []struct {
		id   string
		want Calendar
		kind errors.Kind
	}{
		{"iso8601", ISO8601, ""},
		{"ISO8601", ISO8601, ""},
		{"gregory", Gregorian, ""},
		{"gregorian", Gregorian, ""},
		{"coptic", Coptic, ""},
		{"hebrew", 0, errors.KindInvalidIdentifier},
		{"", 0, errors.KindInvalidIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := CalendarFromIdentifier(tt.id)
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
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCopticNewYear(t *testing.T) {
	d, err := NewPlainDate(1740, 1, 1, Coptic)
	if err != nil {
		t.Fatal(err)
	}
	want := IsoDate{Year: 2023, Month: 9, Day: 12}
	if d.ISO() != want {
		t.Errorf("coptic 1740-01-01 = %v, want %v", d.ISO(), want)
	}
	f := d.Fields()
	if f.MonthsInYear != 13 || f.DayOfYear != 1 || f.MonthCode != "M01" {
		t.Errorf("fields = %+v", f)
	}
}

func TestCopticEpagomenalDays(t *testing.T) {
	if _, err := NewPlainDate(1739, 13, 6, Coptic); err != nil {
		t.Errorf("1739 is a leap year: %v", err)
	}
	_, err := NewPlainDate(1740, 13, 6, Coptic)
	if errors.KindOf(err) != errors.KindInvalidField {
		t.Errorf("1740-13-06 should be rejected, got %v", err)
	}
	d, err := NewPlainDate(1739, 13, 6, Coptic)
	if err != nil {
		t.Fatal(err)
	}
	next, err := d.Add(Duration{Days: 1}, Constrain)
	if err != nil {
		t.Fatal(err)
	}
	if f := next.Fields(); f.Year != 1740 || f.Month != 1 || f.Day != 1 {
		t.Errorf("day after 1739-13-06 = %+v", f)
	}
}

func TestEthiopicMatchesCopticShape(t *testing.T) {
	d, err := NewPlainDate(2016, 1, 1, Ethiopic)
	if err != nil {
		t.Fatal(err)
	}
	if want := (IsoDate{Year: 2023, Month: 9, Day: 12}); d.ISO() != want {
		t.Errorf("ethiopic 2016-01-01 = %v, want %v", d.ISO(), want)
	}
}

func TestYearOffsetCalendars(t *testing.T) {
	iso := IsoDate{Year: 2024, Month: 2, Day: 29}
	tests := []struct {
		cal  Calendar
		year int32
	}{
		{ISO8601, 2024},
		{Gregorian, 2024},
		{Buddhist, 2567},
		{ROC, 113},
	}
	for _, tt := range tests {
		t.Run(tt.cal.Identifier(), func(t *testing.T) {
			d, err := NewPlainDateISO(iso, tt.cal)
			if err != nil {
				t.Fatal(err)
			}
			f := d.Fields()
			if f.Year != tt.year || f.Month != 2 || f.Day != 29 || !f.InLeapYear || f.DaysInMonth != 29 {
				t.Errorf("fields = %+v", f)
			}
		})
	}
}

func TestISOWeek(t *testing.T) {
	tests := []struct {
		date      IsoDate
		week      uint8
		weekYear  int32
		dayOfWeek uint8
	}{
		{IsoDate{Year: 2021, Month: 1, Day: 1}, 53, 2020, 5},
		{IsoDate{Year: 2024, Month: 12, Day: 30}, 1, 2025, 1},
		{IsoDate{Year: 2024, Month: 6, Day: 15}, 24, 2024, 6},
	}
	for _, tt := range tests {
		f := ISO8601.fields(tt.date)
		if f.WeekOfYear != tt.week || f.YearOfWeek != tt.weekYear || f.DayOfWeek != tt.dayOfWeek {
			t.Errorf("%v: week %d/%d dow %d", tt.date, f.WeekOfYear, f.YearOfWeek, f.DayOfWeek)
		}
	}
	if f := Gregorian.fields(IsoDate{Year: 2024, Month: 6, Day: 15}); f.WeekOfYear != 0 {
		t.Errorf("gregory should not number weeks, got %d", f.WeekOfYear)
	}
}

func TestDateAddConstrainAndReject(t *testing.T) {
	jan31 := IsoDate{Year: 2023, Month: 1, Day: 31}
	got, err := ISO8601.dateAdd(jan31, dateDuration{months: 1}, Constrain)
	if err != nil || got != (IsoDate{Year: 2023, Month: 2, Day: 28}) {
		t.Errorf("constrain = %v, %v", got, err)
	}
	_, err = ISO8601.dateAdd(jan31, dateDuration{months: 1}, Reject)
	if errors.KindOf(err) != errors.KindInvalidField {
		t.Errorf("reject = %v", err)
	}
}

func TestDateUntil(t *testing.T) {
	tests := []struct {
		name    string
		one     IsoDate
		two     IsoDate
		largest Unit
		want    dateDuration
	}{
		{"months clamp", IsoDate{2024, 1, 31}, IsoDate{2024, 3, 1}, UnitMonth, dateDuration{months: 1, days: 1}},
		{"years", IsoDate{2020, 2, 29}, IsoDate{2024, 2, 28}, UnitYear, dateDuration{years: 3, months: 11, days: 30}},
		{"negative", IsoDate{2024, 3, 15}, IsoDate{2023, 1, 10}, UnitYear, dateDuration{years: -1, months: -2, days: -5}},
		{"weeks", IsoDate{2024, 1, 1}, IsoDate{2024, 1, 20}, UnitWeek, dateDuration{weeks: 2, days: 5}},
		{"days", IsoDate{2024, 1, 1}, IsoDate{2025, 1, 1}, UnitDay, dateDuration{days: 366}},
		{"same", IsoDate{2024, 1, 1}, IsoDate{2024, 1, 1}, UnitYear, dateDuration{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISO8601.dateUntil(tt.one, tt.two, tt.largest); got != tt.want {
				t.Errorf("dateUntil = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlainDateCalendarMismatch(t *testing.T) {
	a := mustDate(t, 2024, 1, 1)
	b, err := a.WithCalendar(Buddhist)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Until(b, DifferenceSettings{}); errors.KindOf(err) != errors.KindInvalidIdentifier {
		t.Errorf("until: %v", err)
	}
	if _, err := a.Compare(b); errors.KindOf(err) != errors.KindInvalidIdentifier {
		t.Errorf("compare: %v", err)
	}
}

func TestParseCalendarAnnotation(t *testing.T) {
	d, err := ParsePlainDate("2024-03-15[u-ca=coptic]")
	if err != nil {
		t.Fatal(err)
	}
	if d.Calendar() != Coptic || d.ISO() != (IsoDate{Year: 2024, Month: 3, Day: 15}) {
		t.Errorf("got %v %v", d.ISO(), d.Calendar())
	}
	s, err := d.Format(ToStringOptions{})
	if err != nil || s != "2024-03-15[u-ca=coptic]" {
		t.Errorf("format = %q, %v", s, err)
	}
}
