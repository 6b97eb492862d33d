package capi

import (
	"golang.org/x/text/language"

	"github.com/wippyai/temporal-capi/errors"
	"github.com/wippyai/temporal-capi/temporal"
)

// CalendarFromIdentifier resolves a calendar identifier such as "gregory"
// or "coptic", case-insensitively.
func (s *Surface) CalendarFromIdentifier(id string) (c Calendar, err error) {
	defer s.guard("calendar_from_identifier", &err)
	if err := ValidateText(id); err != nil {
		return 0, err
	}
	cal, err := temporal.CalendarFromIdentifier(id)
	if err != nil {
		return 0, err
	}
	return ToCalendar(cal), nil
}

// regionCalendars lists regions whose preferred calendar is not Gregorian.
var regionCalendars = map[string]temporal.Calendar{
	"TH": temporal.Buddhist,
}

// CalendarFromLocale picks the calendar of a BCP 47 locale: the -u-ca-
// extension when present, otherwise the region's preferred calendar.
func (s *Surface) CalendarFromLocale(locale string) (c Calendar, err error) {
	defer s.guard("calendar_from_locale", &err)
	if err := ValidateText(locale); err != nil {
		return 0, err
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return 0, errors.New(errors.PhaseResolve, errors.KindInvalidIdentifier).
			Value(locale).Cause(err).Detail("malformed locale %q", locale).Build()
	}

	if ca := tag.TypeForKey("ca"); ca != "" {
		cal, err := temporal.CalendarFromIdentifier(ca)
		if err != nil {
			return 0, err
		}
		return ToCalendar(cal), nil
	}

	cal := temporal.Gregorian
	if region, conf := tag.Region(); conf != language.No {
		if pref, ok := regionCalendars[region.String()]; ok {
			cal = pref
		}
	}
	if _, err := FromCalendar(ToCalendar(cal)); err != nil {
		return 0, err
	}
	return ToCalendar(cal), nil
}

// CalendarIdentifier returns the canonical identifier of a calendar tag.
func (s *Surface) CalendarIdentifier(c Calendar) (id string, err error) {
	defer s.guard("calendar_identifier", &err)
	cal, err := FromCalendar(c)
	if err != nil {
		return "", err
	}
	return cal.Identifier(), nil
}
