package main

import (
	"fmt"
	"io"

	"github.com/wippyai/temporal-capi/capi"
	"github.com/wippyai/temporal-capi/errors"
)

const (
	kindInstant  = "instant"
	kindDate     = "date"
	kindTime     = "time"
	kindDateTime = "datetime"
	kindZoned    = "zoned"
	kindDuration = "duration"
)

var kinds = []string{kindInstant, kindDate, kindTime, kindDateTime, kindZoned, kindDuration}

// value is one parsed operand. Zoned values own a handle until release.
type value struct {
	kind     string
	instant  capi.FlatInstant
	date     capi.FlatPlainDate
	time     capi.FlatPlainTime
	dateTime capi.FlatPlainDateTime
	zoned    capi.Handle
	duration capi.FlatDuration
}

func (a *app) parse(kind, text string) (v value, err error) {
	s := a.surface
	v.kind = kind
	switch kind {
	case kindInstant:
		v.instant, err = s.InstantParse(text)
	case kindDate:
		if v.date, err = s.PlainDateParse(text); err == nil && a.calendar != capi.CalendarISO8601 {
			v.date, err = s.PlainDateWithCalendar(v.date, a.calendar)
		}
	case kindTime:
		v.time, err = s.PlainTimeParse(text)
	case kindDateTime:
		if v.dateTime, err = s.PlainDateTimeParse(text); err == nil && a.calendar != capi.CalendarISO8601 {
			v.dateTime, err = s.PlainDateTimeWithCalendar(v.dateTime, a.calendar)
		}
	case kindZoned:
		v.zoned, err = s.ZonedDateTimeParse(text, a.disambiguation, a.offset)
	case kindDuration:
		v.duration, err = s.DurationParse(text)
	default:
		return value{}, errors.InvalidArgument(errors.PhaseParse, []string{"kind"},
			fmt.Sprintf("unknown kind %q (one of %v)", kind, kinds))
	}
	return v, err
}

func (a *app) format(v value) (string, error) {
	s := a.surface
	switch v.kind {
	case kindInstant:
		return s.InstantFormat(v.instant, 0, a.toString)
	case kindDate:
		return s.PlainDateFormat(v.date, a.toString)
	case kindTime:
		return s.PlainTimeFormat(v.time, a.toString)
	case kindDateTime:
		return s.PlainDateTimeFormat(v.dateTime, a.toString)
	case kindZoned:
		return s.ZonedDateTimeFormat(v.zoned, a.toString)
	case kindDuration:
		return s.DurationFormat(v.duration, a.toString)
	}
	return "", errors.InvalidArgument(errors.PhaseFormat, []string{"kind"}, fmt.Sprintf("unknown kind %q", v.kind))
}

func (a *app) release(v value) {
	if v.kind == kindZoned && v.zoned != 0 {
		_ = a.surface.ZonedDateTimeRelease(v.zoned)
	}
}

// fields returns the calendar fields of date-bearing values.
func (a *app) fields(v value) (capi.FlatDateFields, bool, error) {
	s := a.surface
	var f capi.FlatDateFields
	var err error
	switch v.kind {
	case kindDate:
		f, err = s.PlainDateFields(v.date)
	case kindDateTime:
		f, err = s.PlainDateTimeFields(v.dateTime)
	case kindZoned:
		f, err = s.ZonedDateTimeFields(v.zoned)
	default:
		return f, false, nil
	}
	return f, err == nil, err
}

func printFields(w io.Writer, f capi.FlatDateFields) {
	fmt.Fprintf(w, "  year          %d\n", f.Year)
	fmt.Fprintf(w, "  month         %d (%s)\n", f.Month, f.MonthCodeString())
	fmt.Fprintf(w, "  day           %d\n", f.Day)
	fmt.Fprintf(w, "  day of week   %d\n", f.DayOfWeek)
	fmt.Fprintf(w, "  day of year   %d / %d\n", f.DayOfYear, f.DaysInYear)
	fmt.Fprintf(w, "  week of year  %d (%d)\n", f.WeekOfYear, f.YearOfWeek)
	fmt.Fprintf(w, "  days in month %d\n", f.DaysInMonth)
	fmt.Fprintf(w, "  months        %d\n", f.MonthsInYear)
	fmt.Fprintf(w, "  leap year     %t\n", f.InLeapYear)
}
