package temporal

import (
	"github.com/wippyai/temporal-capi/errors"
)

// PlainDate is a calendar date with no time or zone.
type PlainDate struct {
	iso IsoDate
	cal Calendar
}

// NewPlainDate builds a date from the calendar's own year, month and day.
// Out-of-range fields are rejected.
func NewPlainDate(year, month, day int64, cal Calendar) (PlainDate, error) {
	if err := checkCalendar(cal); err != nil {
		return PlainDate{}, err
	}
	iso, err := cal.dateFromFields(year, month, day, Reject)
	if err != nil {
		return PlainDate{}, err
	}
	return PlainDate{iso: iso, cal: cal}, nil
}

// NewPlainDateISO builds a date from ISO slots and tags it with cal.
func NewPlainDateISO(iso IsoDate, cal Calendar) (PlainDate, error) {
	if err := checkCalendar(cal); err != nil {
		return PlainDate{}, err
	}
	if _, err := regulateISODate(int64(iso.Year), int64(iso.Month), int64(iso.Day), Reject); err != nil {
		return PlainDate{}, err
	}
	if !isoDateWithinLimits(iso) {
		return PlainDate{}, errors.RangeOverflow(errors.PhaseConstruct, "date outside supported range")
	}
	return PlainDate{iso: iso, cal: cal}, nil
}

// ISO returns the ISO slots.
func (d PlainDate) ISO() IsoDate { return d.iso }

// Calendar returns the calendar tag.
func (d PlainDate) Calendar() Calendar { return d.cal }

// Fields returns the calendar view of the date.
func (d PlainDate) Fields() CalendarFields { return d.cal.fields(d.iso) }

// WithCalendar reinterprets the same day in another calendar.
func (d PlainDate) WithCalendar(cal Calendar) (PlainDate, error) {
	if err := checkCalendar(cal); err != nil {
		return PlainDate{}, err
	}
	return PlainDate{iso: d.iso, cal: cal}, nil
}

// Add adds a duration; the time part is balanced into days.
func (d PlainDate) Add(dur Duration, overflow Overflow) (PlainDate, error) {
	if err := dur.Validate(); err != nil {
		return PlainDate{}, err
	}
	id, err := dur.internal()
	if err != nil {
		return PlainDate{}, err
	}
	dd := id.date
	dd.days += id.time.wholeDays()
	iso, err := d.cal.dateAdd(d.iso, dd, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return PlainDate{iso: iso, cal: d.cal}, nil
}

// Subtract subtracts a duration.
func (d PlainDate) Subtract(dur Duration, overflow Overflow) (PlainDate, error) {
	return d.Add(dur.Negated(), overflow)
}

// Until returns the duration from d to o. Both must share a calendar.
func (d PlainDate) Until(o PlainDate, s DifferenceSettings) (Duration, error) {
	return differencePlainDate(d, o, s, false)
}

// Since returns the duration from o to d.
func (d PlainDate) Since(o PlainDate, s DifferenceSettings) (Duration, error) {
	return differencePlainDate(d, o, s, true)
}

func sameCalendar(a, b Calendar) error {
	if a != b {
		return errors.New(errors.PhaseArithmetic, errors.KindInvalidIdentifier).
			Detail("calendars %s and %s differ", a, b).Build()
	}
	return nil
}

func differencePlainDate(a, b PlainDate, s DifferenceSettings, since bool) (Duration, error) {
	if err := sameCalendar(a.cal, b.cal); err != nil {
		return Duration{}, err
	}
	rs, err := resolveDifference(s, UnitYear, UnitDay, UnitDay)
	if err != nil {
		return Duration{}, err
	}
	if since {
		rs.mode = rs.mode.negate()
	}
	if compareISODate(a.iso, b.iso) == 0 {
		return Duration{}, nil
	}
	dd := a.cal.dateUntil(a.iso, b.iso, rs.largest)
	id := internalDuration{date: dd}
	if rs.smallest != UnitDay || rs.increment != 1 {
		start := IsoDateTime{Date: a.iso}
		end := IsoDateTime{Date: b.iso}
		id, err = roundRelativeDuration(id, relativeOrigin{dt: start, epoch: utcTD(start)}, utcTD(end), nil, a.cal, rs)
		if err != nil {
			return Duration{}, err
		}
	}
	out, err := fromInternal(id, UnitDay)
	if err != nil {
		return Duration{}, err
	}
	if since {
		out = out.Negated()
	}
	return out, nil
}

// Compare orders two dates of the same calendar.
func (d PlainDate) Compare(o PlainDate) (int, error) {
	if err := sameCalendar(d.cal, o.cal); err != nil {
		return 0, err
	}
	return compareISODate(d.iso, o.iso), nil
}

// Equals reports whether both the date and calendar match.
func (d PlainDate) Equals(o PlainDate) bool {
	return d == o
}

// ToPlainDateTime combines the date with a time.
func (d PlainDate) ToPlainDateTime(t PlainTime) (PlainDateTime, error) {
	return newPlainDateTime(IsoDateTime{Date: d.iso, Time: t.iso}, d.cal)
}

// ToZonedDateTime places the date in a zone at the given time, or at the
// start of the day when t is nil.
func (d PlainDate) ToZonedDateTime(tz *TimeZone, t *PlainTime, dis Disambiguation) (ZonedDateTime, error) {
	var inst Instant
	var err error
	if t == nil {
		inst, err = tz.startOfDay(d.iso)
	} else {
		inst, err = tz.instantFor(IsoDateTime{Date: d.iso, Time: t.iso}, dis)
	}
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(inst, tz, d.cal)
}
