package temporal

import (
	"github.com/wippyai/temporal-capi/errors"
)

// ZonedDateTime is an instant observed from a time zone and calendar.
type ZonedDateTime struct {
	instant Instant
	tz      *TimeZone
	cal     Calendar
}

// NewZonedDateTime pairs an instant with a zone and calendar.
func NewZonedDateTime(i Instant, tz *TimeZone, cal Calendar) (ZonedDateTime, error) {
	if tz == nil {
		return ZonedDateTime{}, errors.InvalidArgument(errors.PhaseConstruct, []string{"timeZone"}, "time zone is required")
	}
	if err := checkCalendar(cal); err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{instant: i, tz: tz, cal: cal}, nil
}

// Instant returns the exact time.
func (z ZonedDateTime) Instant() Instant { return z.instant }

// TimeZone returns the zone.
func (z ZonedDateTime) TimeZone() *TimeZone { return z.tz }

// Calendar returns the calendar tag.
func (z ZonedDateTime) Calendar() Calendar { return z.cal }

// OffsetNanoseconds returns the UTC offset in effect.
func (z ZonedDateTime) OffsetNanoseconds() int64 {
	return z.tz.OffsetNanosecondsFor(z.instant)
}

// PlainDateTime returns the wall-clock reading.
func (z ZonedDateTime) PlainDateTime() PlainDateTime {
	return PlainDateTime{iso: z.tz.isoDateTimeFor(z.instant), cal: z.cal}
}

// Fields returns the calendar view of the local date.
func (z ZonedDateTime) Fields() CalendarFields {
	return z.cal.fields(z.tz.isoDateTimeFor(z.instant).Date)
}

// WithTimeZone observes the same instant from another zone.
func (z ZonedDateTime) WithTimeZone(tz *TimeZone) (ZonedDateTime, error) {
	return NewZonedDateTime(z.instant, tz, z.cal)
}

// WithCalendar observes the same instant through another calendar.
func (z ZonedDateTime) WithCalendar(cal Calendar) (ZonedDateTime, error) {
	return NewZonedDateTime(z.instant, z.tz, cal)
}

// StartOfDay returns the first instant of the local date.
func (z ZonedDateTime) StartOfDay() (ZonedDateTime, error) {
	date := z.tz.isoDateTimeFor(z.instant).Date
	inst, err := z.tz.startOfDay(date)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{instant: inst, tz: z.tz, cal: z.cal}, nil
}

// HoursInDay returns the length of the local day in hours.
func (z ZonedDateTime) HoursInDay() (float64, error) {
	date := z.tz.isoDateTimeFor(z.instant).Date
	tomorrow, err := date.addDays(1)
	if err != nil {
		return 0, err
	}
	start, err := z.tz.startOfDay(date)
	if err != nil {
		return 0, err
	}
	end, err := z.tz.startOfDay(tomorrow)
	if err != nil {
		return 0, err
	}
	return end.td().sub(start.td()).total(nsPerHour), nil
}

// Add adds a duration: calendar units on the wall clock, time units on
// the timeline.
func (z ZonedDateTime) Add(d Duration, overflow Overflow) (ZonedDateTime, error) {
	if err := d.Validate(); err != nil {
		return ZonedDateTime{}, err
	}
	id, err := d.internal()
	if err != nil {
		return ZonedDateTime{}, err
	}
	inst, err := addZonedDateTime(z.instant, z.tz, z.cal, id, overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{instant: inst, tz: z.tz, cal: z.cal}, nil
}

// Subtract subtracts a duration.
func (z ZonedDateTime) Subtract(d Duration, overflow Overflow) (ZonedDateTime, error) {
	return z.Add(d.Negated(), overflow)
}

func addZonedDateTime(i Instant, tz *TimeZone, cal Calendar, id internalDuration, overflow Overflow) (Instant, error) {
	if id.date.sign() == 0 {
		return i.addTD(id.time)
	}
	dt := tz.isoDateTimeFor(i)
	date, err := cal.dateAdd(dt.Date, id.date, overflow)
	if err != nil {
		return Instant{}, err
	}
	mid, err := tz.instantFor(IsoDateTime{Date: date, Time: dt.Time}, DisambiguateCompatible)
	if err != nil {
		return Instant{}, err
	}
	return mid.addTD(id.time)
}

func sameZone(a, b ZonedDateTime) error {
	if !a.tz.Equals(b.tz) {
		return errors.New(errors.PhaseArithmetic, errors.KindInvalidIdentifier).
			Detail("time zones %s and %s differ", a.tz.id, b.tz.id).Build()
	}
	return sameCalendar(a.cal, b.cal)
}

// Until returns the duration from z to o. Date units need both values in
// the same zone and calendar.
func (z ZonedDateTime) Until(o ZonedDateTime, s DifferenceSettings) (Duration, error) {
	return differenceZoned(z, o, s, false)
}

// Since returns the duration from o to z.
func (z ZonedDateTime) Since(o ZonedDateTime, s DifferenceSettings) (Duration, error) {
	return differenceZoned(z, o, s, true)
}

func differenceZoned(a, b ZonedDateTime, s DifferenceSettings, since bool) (Duration, error) {
	rs, err := resolveDifference(s, UnitYear, UnitNanosecond, UnitHour)
	if err != nil {
		return Duration{}, err
	}
	if rs.largest.IsDateUnit() {
		if err := sameZone(a, b); err != nil {
			return Duration{}, err
		}
	}
	if since {
		rs.mode = rs.mode.negate()
	}
	id, err := differenceZonedDateTimeWithRounding(a.instant, b.instant, a.tz, a.cal, rs)
	if err != nil {
		return Duration{}, err
	}
	largest := rs.largest
	if !largest.IsDateUnit() {
		id.date = dateDuration{}
	}
	out, err := fromInternal(id, largest)
	if err != nil {
		return Duration{}, err
	}
	if since {
		out = out.Negated()
	}
	return out, nil
}

// Round rounds the local time; day rounding uses the real day length.
func (z ZonedDateTime) Round(o RoundingOptions) (ZonedDateTime, error) {
	rs, err := resolveRound(o, UnitDay)
	if err != nil {
		return ZonedDateTime{}, err
	}
	dt := z.tz.isoDateTimeFor(z.instant)
	if rs.smallest == UnitDay {
		start, err := z.tz.startOfDay(dt.Date)
		if err != nil {
			return ZonedDateTime{}, err
		}
		next, err := dt.Date.addDays(1)
		if err != nil {
			return ZonedDateTime{}, err
		}
		end, err := z.tz.startOfDay(next)
		if err != nil {
			return ZonedDateTime{}, err
		}
		dayLen := end.td().sub(start.td())
		progress := z.instant.td().sub(start.td())
		inc := increment{sec: dayLen.sec}
		if dayLen.nsec != 0 {
			n, _ := dayLen.nanoseconds()
			inc = increment{ns: n}
		}
		rounded := progress.round(inc, rs.mode, false)
		inst, err := start.addTD(rounded)
		if err != nil {
			return ZonedDateTime{}, err
		}
		return ZonedDateTime{instant: inst, tz: z.tz, cal: z.cal}, nil
	}
	iso, err := roundISODateTime(dt, rs.increment, rs.smallest, rs.mode)
	if err != nil {
		return ZonedDateTime{}, err
	}
	inst, err := z.tz.instantForOffset(iso, z.OffsetNanoseconds(), OffsetPrefer, DisambiguateCompatible, true)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{instant: inst, tz: z.tz, cal: z.cal}, nil
}

// Compare orders two values in the same zone and calendar.
func (z ZonedDateTime) Compare(o ZonedDateTime) (int, error) {
	if err := sameZone(z, o); err != nil {
		return 0, err
	}
	return z.instant.Compare(o.instant), nil
}

// Equals reports whether instant, zone and calendar all match.
func (z ZonedDateTime) Equals(o ZonedDateTime) bool {
	return z.instant == o.instant && z.tz.Equals(o.tz) && z.cal == o.cal
}

// OffsetOption controls how an explicit UTC offset in input is reconciled
// with the time zone.
type OffsetOption uint8

const (
	OffsetReject OffsetOption = iota
	OffsetUse
	OffsetPrefer
	OffsetIgnore
)

// Valid reports whether o is a known option.
func (o OffsetOption) Valid() bool {
	return o <= OffsetIgnore
}

// instantForOffset resolves a wall-clock value that came with an offset.
// With matchExact unset an offset given to the minute matches any offset
// that rounds to it.
func (tz *TimeZone) instantForOffset(dt IsoDateTime, offsetNs int64, opt OffsetOption, d Disambiguation, matchExact bool) (Instant, error) {
	if !opt.Valid() {
		return Instant{}, errors.InvalidArgument(errors.PhaseResolve, []string{"offset"}, "unknown offset option")
	}
	switch opt {
	case OffsetIgnore:
		return tz.instantFor(dt, d)
	case OffsetUse:
		if !isoDateTimeWithinLimits(dt) {
			return Instant{}, errors.RangeOverflow(errors.PhaseArithmetic, "date-time outside supported range")
		}
		return instantFromTD(utcTD(dt).sub(timeDurationFromNanoseconds(offsetNs)))
	}
	possible, err := tz.possibleInstants(dt)
	if err != nil {
		return Instant{}, err
	}
	for _, p := range possible {
		cand := tz.OffsetNanosecondsFor(p)
		if cand == offsetNs || (!matchExact && roundInt64(cand, nsPerMinute, RoundHalfExpand) == offsetNs) {
			return p, nil
		}
	}
	if opt == OffsetReject {
		return Instant{}, errors.AmbiguousTime("offset %s is not valid for %s in %s",
			formatOffset(offsetNs, precisionAuto), formatISODateTime(dt, precisionAuto), tz.id)
	}
	return tz.instantFor(dt, d)
}
