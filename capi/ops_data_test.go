//go:build !temporal_nodata

package capi

import (
	"testing"
)

func newYork(t *testing.T, s *Surface) Handle {
	t.Helper()
	tz, err := s.TimeZoneFromIdentifier("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	return tz
}

func TestGapDisambiguation(t *testing.T) {
	s := newTestSurface(t)
	tz := newYork(t, s)
	gap := FlatPlainDateTime{Date: date(2024, 3, 10), Time: FlatPlainTime{Hour: 2, Minute: 30}}

	tests := []struct {
		name string
		dis  Disambiguation
		want int64
		code Code
	}{
		{"reject", DisambiguateReject, 0, AmbiguousOrImpossibleLocalTime},
		{"compatible", DisambiguateCompatible, 1_710_055_800, OK},
		{"earlier", DisambiguateEarlier, 1_710_052_200, OK},
		{"later", DisambiguateLater, 1_710_055_800, OK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := s.ZonedDateTimeFromPlainDateTime(gap, tz, tt.dis)
			if CodeOf(err) != tt.code {
				t.Fatalf("code = %s, want %s", CodeOf(err), tt.code)
			}
			if err != nil {
				return
			}
			defer s.ZonedDateTimeRelease(z)
			in, err := s.ZonedDateTimeInstant(z)
			if err != nil || in.Seconds != tt.want {
				t.Errorf("instant = %+v, %v", in, err)
			}
		})
	}
}

func TestPlainDateToZonedStartOfDay(t *testing.T) {
	s := newTestSurface(t)
	tz := newYork(t, s)
	z, err := s.PlainDateToZonedDateTime(date(2024, 3, 10), tz, nil, DisambiguateReject)
	if err != nil {
		t.Fatal(err)
	}
	if h, err := s.ZonedDateTimeHoursInDay(z); err != nil || h != 23 {
		t.Errorf("hours in spring-forward day = %v, %v", h, err)
	}
	fall, err := s.PlainDateToZonedDateTime(date(2024, 11, 3), tz, nil, DisambiguateReject)
	if err != nil {
		t.Fatal(err)
	}
	if h, err := s.ZonedDateTimeHoursInDay(fall); err != nil || h != 25 {
		t.Errorf("hours in fall-back day = %v, %v", h, err)
	}
	noon := FlatPlainTime{Hour: 12}
	if _, err := s.PlainDateToZonedDateTime(date(2024, 3, 10), tz, &noon, DisambiguateReject); err != nil {
		t.Errorf("with time: %v", err)
	}
}

func TestZonedParseOffsetOption(t *testing.T) {
	s := newTestSurface(t)
	// The offset is wrong for New York in summer.
	const text = "2024-07-01T12:00:00-05:00[America/New_York]"
	if _, err := s.ZonedDateTimeParse(text, DisambiguateCompatible, OffsetReject); CodeOf(err) != AmbiguousOrImpossibleLocalTime {
		t.Errorf("reject: %v", err)
	}
	z, err := s.ZonedDateTimeParse(text, DisambiguateCompatible, OffsetUse)
	if err != nil {
		t.Fatal(err)
	}
	in, _ := s.ZonedDateTimeInstant(z)
	if in.Seconds != 1_719_853_200 {
		t.Errorf("use offset instant = %d", in.Seconds)
	}
	z, err = s.ZonedDateTimeParse(text, DisambiguateCompatible, OffsetIgnore)
	if err != nil {
		t.Fatal(err)
	}
	in, _ = s.ZonedDateTimeInstant(z)
	if in.Seconds != 1_719_849_600 {
		t.Errorf("ignore offset instant = %d", in.Seconds)
	}
}

func TestTransitions(t *testing.T) {
	s := newTestSurface(t)
	tz := newYork(t, s)
	from := FlatInstant{Seconds: 1_704_067_200} // 2024-01-01
	to := FlatInstant{Seconds: 1_735_689_600}   // 2025-01-01

	list, err := s.TimeZoneTransitions(tz, from, to)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := s.TransitionListLen(list); err != nil || n != 2 {
		t.Fatalf("len = %d, %v", n, err)
	}
	spring, err := s.TransitionListAt(list, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := FlatTransition{At: FlatInstant{Seconds: 1_710_054_000}, OffsetBefore: -5 * 3600e9, OffsetAfter: -4 * 3600e9}
	if spring != want {
		t.Errorf("spring = %+v", spring)
	}
	fall, _ := s.TransitionListAt(list, 1)
	if fall.At.Seconds != 1_730_613_600 {
		t.Errorf("fall = %+v", fall)
	}
	if _, err := s.TransitionListAt(list, 2); CodeOf(err) != InvalidArgument {
		t.Errorf("past end: %v", err)
	}

	next, found, err := s.TimeZoneNextTransition(tz, from)
	if err != nil || !found || next != spring {
		t.Errorf("next = %+v, %v, %v", next, found, err)
	}
	prev, found, err := s.TimeZonePreviousTransition(tz, to)
	if err != nil || !found || prev != fall {
		t.Errorf("previous = %+v, %v, %v", prev, found, err)
	}

	if _, err := s.TimeZoneTransitions(tz, to, from); CodeOf(err) != InvalidArgument {
		t.Errorf("reversed range: %v", err)
	}

	// Releasing the zone leaves the list intact.
	if err := s.TimeZoneRelease(tz); err != nil {
		t.Fatal(err)
	}
	if n, err := s.TransitionListLen(list); err != nil || n != 2 {
		t.Errorf("list after zone release = %d, %v", n, err)
	}
	if err := s.TransitionListRelease(list); err != nil {
		t.Fatal(err)
	}
}

func TestOffsetAt(t *testing.T) {
	s := newTestSurface(t)
	tz := newYork(t, s)
	if ns, err := s.TimeZoneOffsetAt(tz, FlatInstant{Seconds: 1_710_054_000}); err != nil || ns != -4*3600e9 {
		t.Errorf("after spring = %d, %v", ns, err)
	}
	if ns, err := s.TimeZoneOffsetAt(tz, FlatInstant{Seconds: 1_710_053_999}); err != nil || ns != -5*3600e9 {
		t.Errorf("before spring = %d, %v", ns, err)
	}
	view, err := s.TimeZoneIdentifier(tz)
	if err != nil {
		t.Fatal(err)
	}
	if id, _ := s.TextString(view); id != "America/New_York" {
		t.Errorf("identifier = %q", id)
	}
	if _, err := s.TimeZoneFromIdentifier("Mars/Olympus_Mons"); CodeOf(err) != InvalidCalendarOrTimeZone {
		t.Errorf("unknown zone: %v", err)
	}
}

func TestNonISOCalendars(t *testing.T) {
	s := newTestSurface(t)

	coptic, err := s.PlainDateNew(1740, 1, 1, CalendarCoptic)
	if err != nil {
		t.Fatal(err)
	}
	if coptic != (FlatPlainDate{Year: 2023, Month: 9, Day: 12, Calendar: CalendarCoptic}) {
		t.Errorf("coptic new year = %+v", coptic)
	}
	f, err := s.PlainDateFields(coptic)
	if err != nil || f.MonthsInYear != 13 || f.MonthCodeString() != "M01" || f.Year != 1740 {
		t.Errorf("coptic fields = %+v, %v", f, err)
	}

	iso := date(2024, 2, 29)
	buddhist, err := s.PlainDateWithCalendar(iso, CalendarBuddhist)
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := s.PlainDateFields(buddhist); f.Year != 2567 {
		t.Errorf("buddhist year = %d", f.Year)
	}
	if _, err := s.PlainDateCompare(iso, buddhist); CodeOf(err) != InvalidCalendarOrTimeZone {
		t.Errorf("cross-calendar compare: %v", err)
	}
	if _, err := s.PlainDateUntil(iso, buddhist, FlatDifferenceSettings{}); CodeOf(err) != InvalidCalendarOrTimeZone {
		t.Errorf("cross-calendar until: %v", err)
	}

	text, err := s.PlainDateFormat(buddhist, FlatToStringOptions{})
	if err != nil || text != "2024-02-29[u-ca=buddhist]" {
		t.Errorf("format = %q, %v", text, err)
	}
	parsed, err := s.PlainDateParse(text)
	if err != nil || parsed != buddhist {
		t.Errorf("parse = %+v, %v", parsed, err)
	}
}

func TestCalendarFromLocale(t *testing.T) {
	s := newTestSurface(t)
	tests := []struct {
		locale string
		want   Calendar
		code   Code
	}{
		{"en-US", CalendarGregorian, OK},
		{"th-TH", CalendarBuddhist, OK},
		{"th", CalendarBuddhist, OK},
		{"ja-JP-u-ca-coptic", CalendarCoptic, OK},
		{"en-u-ca-iso8601", CalendarISO8601, OK},
		{"de-u-ca-hebrew", 0, InvalidCalendarOrTimeZone},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			c, err := s.CalendarFromLocale(tt.locale)
			if CodeOf(err) != tt.code {
				t.Fatalf("code = %s, want %s", CodeOf(err), tt.code)
			}
			if err == nil && c != tt.want {
				t.Errorf("calendar = %d, want %d", c, tt.want)
			}
		})
	}
}
