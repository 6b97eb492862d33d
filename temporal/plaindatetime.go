package temporal

import (
	"github.com/wippyai/temporal-capi/errors"
)

// PlainDateTime is a calendar date and wall-clock time with no zone.
type PlainDateTime struct {
	iso IsoDateTime
	cal Calendar
}

// NewPlainDateTime validates ISO slots and tags them with cal.
func NewPlainDateTime(iso IsoDateTime, cal Calendar) (PlainDateTime, error) {
	if err := checkCalendar(cal); err != nil {
		return PlainDateTime{}, err
	}
	if _, err := regulateISODate(int64(iso.Date.Year), int64(iso.Date.Month), int64(iso.Date.Day), Reject); err != nil {
		return PlainDateTime{}, err
	}
	if _, err := NewPlainTime(iso.Time); err != nil {
		return PlainDateTime{}, err
	}
	return newPlainDateTime(iso, cal)
}

func newPlainDateTime(iso IsoDateTime, cal Calendar) (PlainDateTime, error) {
	if !isoDateTimeWithinLimits(iso) {
		return PlainDateTime{}, errors.RangeOverflow(errors.PhaseConstruct, "date-time outside supported range")
	}
	return PlainDateTime{iso: iso, cal: cal}, nil
}

// ISO returns the ISO slots.
func (dt PlainDateTime) ISO() IsoDateTime { return dt.iso }

// Calendar returns the calendar tag.
func (dt PlainDateTime) Calendar() Calendar { return dt.cal }

// Fields returns the calendar view of the date part.
func (dt PlainDateTime) Fields() CalendarFields { return dt.cal.fields(dt.iso.Date) }

// PlainDate returns the date part.
func (dt PlainDateTime) PlainDate() PlainDate { return PlainDate{iso: dt.iso.Date, cal: dt.cal} }

// PlainTime returns the time part.
func (dt PlainDateTime) PlainTime() PlainTime { return PlainTime{iso: dt.iso.Time} }

// WithCalendar reinterprets the value in another calendar.
func (dt PlainDateTime) WithCalendar(cal Calendar) (PlainDateTime, error) {
	if err := checkCalendar(cal); err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{iso: dt.iso, cal: cal}, nil
}

// Add adds a duration.
func (dt PlainDateTime) Add(d Duration, overflow Overflow) (PlainDateTime, error) {
	if err := d.Validate(); err != nil {
		return PlainDateTime{}, err
	}
	id, err := d.internal()
	if err != nil {
		return PlainDateTime{}, err
	}
	iso, err := addDateTime(dt.cal, dt.iso, id, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{iso: iso, cal: dt.cal}, nil
}

// Subtract subtracts a duration.
func (dt PlainDateTime) Subtract(d Duration, overflow Overflow) (PlainDateTime, error) {
	return dt.Add(d.Negated(), overflow)
}

// Until returns the duration from dt to o.
func (dt PlainDateTime) Until(o PlainDateTime, s DifferenceSettings) (Duration, error) {
	return differencePlainDateTime(dt, o, s, false)
}

// Since returns the duration from o to dt.
func (dt PlainDateTime) Since(o PlainDateTime, s DifferenceSettings) (Duration, error) {
	return differencePlainDateTime(dt, o, s, true)
}

func differencePlainDateTime(a, b PlainDateTime, s DifferenceSettings, since bool) (Duration, error) {
	if err := sameCalendar(a.cal, b.cal); err != nil {
		return Duration{}, err
	}
	rs, err := resolveDifference(s, UnitYear, UnitNanosecond, UnitDay)
	if err != nil {
		return Duration{}, err
	}
	if since {
		rs.mode = rs.mode.negate()
	}
	id, err := differencePlainDateTimeWithRounding(a.iso, b.iso, a.cal, rs)
	if err != nil {
		return Duration{}, err
	}
	out, err := fromInternal(id, rs.largest)
	if err != nil {
		return Duration{}, err
	}
	if since {
		out = out.Negated()
	}
	return out, nil
}

// Round rounds to a unit no larger than a day.
func (dt PlainDateTime) Round(o RoundingOptions) (PlainDateTime, error) {
	rs, err := resolveRound(o, UnitDay)
	if err != nil {
		return PlainDateTime{}, err
	}
	iso, err := roundISODateTime(dt.iso, rs.increment, rs.smallest, rs.mode)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{iso: iso, cal: dt.cal}, nil
}

// Compare orders two values of the same calendar.
func (dt PlainDateTime) Compare(o PlainDateTime) (int, error) {
	if err := sameCalendar(dt.cal, o.cal); err != nil {
		return 0, err
	}
	return compareISODateTime(dt.iso, o.iso), nil
}

// Equals reports whether both value and calendar match.
func (dt PlainDateTime) Equals(o PlainDateTime) bool {
	return dt == o
}

// ToZonedDateTime resolves the wall-clock value in tz.
func (dt PlainDateTime) ToZonedDateTime(tz *TimeZone, d Disambiguation) (ZonedDateTime, error) {
	inst, err := tz.instantFor(dt.iso, d)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(inst, tz, dt.cal)
}
