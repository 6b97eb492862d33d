package temporal

import (
	"github.com/wippyai/temporal-capi/errors"
)

// addDateTime adds a duration to a wall-clock date-time: the time part is
// added first and its day carry joins the calendar part.
func addDateTime(cal Calendar, dt IsoDateTime, id internalDuration, overflow Overflow) (IsoDateTime, error) {
	carry, t := addTime(dt.Time, id.time)
	dd := id.date
	dd.days += carry
	date, err := cal.dateAdd(dt.Date, dd, overflow)
	if err != nil {
		return IsoDateTime{}, err
	}
	out := IsoDateTime{Date: date, Time: t}
	if !isoDateTimeWithinLimits(out) {
		return IsoDateTime{}, errors.RangeOverflow(errors.PhaseArithmetic, "date-time outside supported range")
	}
	return out, nil
}

// differenceISODateTime returns dt2 - dt1 with calendar units balanced
// up to largest. Days are only split off as 24-hour spans when largest is
// a time unit.
func differenceISODateTime(dt1, dt2 IsoDateTime, cal Calendar, largest Unit) (internalDuration, error) {
	td := differenceTime(dt1.Time, dt2.Time)
	timeSign := td.sign()
	dateSign := compareISODate(dt1.Date, dt2.Date)
	adjusted := dt2.Date
	if timeSign == dateSign && timeSign != 0 {
		var err error
		adjusted, err = adjusted.addDays(int64(timeSign))
		if err != nil {
			return internalDuration{}, err
		}
		td, err = td.addDays(int64(-timeSign))
		if err != nil {
			return internalDuration{}, err
		}
	}
	dateLargest := largerUnit(UnitDay, largest)
	dd := cal.dateUntil(dt1.Date, adjusted, dateLargest)
	if largest != dateLargest {
		var err error
		td, err = td.addDays(dd.days)
		if err != nil {
			return internalDuration{}, err
		}
		dd.days = 0
	}
	return internalDuration{date: dd, time: td}, nil
}

func utcTD(dt IsoDateTime) timeDuration {
	sec, nsec := dt.utcEpoch()
	return timeDuration{sec: sec, nsec: nsec}
}

func differencePlainDateTimeWithRounding(dt1, dt2 IsoDateTime, cal Calendar, rs resolvedSettings) (internalDuration, error) {
	if compareISODateTime(dt1, dt2) == 0 {
		return internalDuration{}, nil
	}
	if !isoDateTimeWithinLimits(dt1) || !isoDateTimeWithinLimits(dt2) {
		return internalDuration{}, errors.RangeOverflow(errors.PhaseArithmetic, "date-time outside supported range")
	}
	diff, err := differenceISODateTime(dt1, dt2, cal, rs.largest)
	if err != nil {
		return internalDuration{}, err
	}
	if rs.smallest == UnitNanosecond && rs.increment == 1 {
		return diff, nil
	}
	return roundRelativeDuration(diff, relativeOrigin{dt: dt1, epoch: utcTD(dt1)}, utcTD(dt2), nil, cal, rs)
}

func differencePlainDateTimeTotal(dt1, dt2 IsoDateTime, cal Calendar, unit Unit) (float64, error) {
	if compareISODateTime(dt1, dt2) == 0 {
		return 0, nil
	}
	diff, err := differenceISODateTime(dt1, dt2, cal, unit)
	if err != nil {
		return 0, err
	}
	if !unit.IsDateUnit() {
		td, err := diff.time.addDays(diff.date.days)
		if err != nil {
			return 0, err
		}
		return td.total(unitNanoseconds(unit)), nil
	}
	sign := 1
	if diff.sign() < 0 {
		sign = -1
	}
	origin := relativeOrigin{dt: dt1, epoch: utcTD(dt1)}
	_, total, err := nudgeToCalendarUnit(sign, diff, utcTD(dt2), origin, nil, cal, 1, unit, RoundTrunc)
	return total, err
}

// relativeOrigin anchors a relative rounding: the starting wall-clock
// reading and its epoch position.
type relativeOrigin struct {
	dt    IsoDateTime
	epoch timeDuration
}

type nudgeResult struct {
	duration  internalDuration
	nudged    timeDuration
	didExpand bool
}

func epochFor(tz *TimeZone, dt IsoDateTime) (timeDuration, error) {
	if tz == nil {
		if !isoDateTimeWithinLimits(dt) {
			return timeDuration{}, errors.RangeOverflow(errors.PhaseArithmetic, "date-time outside supported range")
		}
		return utcTD(dt), nil
	}
	i, err := tz.instantFor(dt, DisambiguateCompatible)
	if err != nil {
		return timeDuration{}, err
	}
	return i.td(), nil
}

func tdToFloat(d timeDuration) float64 {
	return float64(d.sec) + float64(d.nsec)/nsPerSecond
}

// nudgeToCalendarUnit rounds to a year, month, week or (zoned) day by
// locating dest between two candidate end points.
func nudgeToCalendarUnit(sign int, id internalDuration, dest timeDuration, origin relativeOrigin, tz *TimeZone,
	cal Calendar, inc int64, unit Unit, mode RoundingMode) (nudgeResult, float64, error) {
	s := int64(sign)
	var r1, r2 int64
	var startD, endD dateDuration
	d := id.date
	switch unit {
	case UnitYear:
		r1 = roundInt64(d.years, inc, RoundTrunc)
		r2 = r1 + inc*s
		startD = dateDuration{years: r1}
		endD = dateDuration{years: r2}
	case UnitMonth:
		r1 = roundInt64(d.months, inc, RoundTrunc)
		r2 = r1 + inc*s
		startD = dateDuration{years: d.years, months: r1}
		endD = dateDuration{years: d.years, months: r2}
	case UnitWeek:
		weeksStart, err := cal.dateAdd(origin.dt.Date, dateDuration{years: d.years, months: d.months}, Constrain)
		if err != nil {
			return nudgeResult{}, 0, err
		}
		weeksEnd, err := weeksStart.addDays(d.days)
		if err != nil {
			return nudgeResult{}, 0, err
		}
		untilWeeks := cal.dateUntil(weeksStart, weeksEnd, UnitWeek).weeks
		r1 = roundInt64(d.weeks+untilWeeks, inc, RoundTrunc)
		r2 = r1 + inc*s
		startD = dateDuration{years: d.years, months: d.months, weeks: r1}
		endD = dateDuration{years: d.years, months: d.months, weeks: r2}
	default:
		r1 = roundInt64(d.days, inc, RoundTrunc)
		r2 = r1 + inc*s
		startD = dateDuration{years: d.years, months: d.months, weeks: d.weeks, days: r1}
		endD = dateDuration{years: d.years, months: d.months, weeks: d.weeks, days: r2}
	}

	start, err := cal.dateAdd(origin.dt.Date, startD, Constrain)
	if err != nil {
		return nudgeResult{}, 0, err
	}
	end, err := cal.dateAdd(origin.dt.Date, endD, Constrain)
	if err != nil {
		return nudgeResult{}, 0, err
	}
	startEp, err := epochFor(tz, IsoDateTime{Date: start, Time: origin.dt.Time})
	if err != nil {
		return nudgeResult{}, 0, err
	}
	endEp, err := epochFor(tz, IsoDateTime{Date: end, Time: origin.dt.Time})
	if err != nil {
		return nudgeResult{}, 0, err
	}
	num := dest.sub(startEp)
	den := endEp.sub(startEp)
	if den.isZero() {
		return nudgeResult{}, 0, errors.RangeOverflow(errors.PhaseRound, "zero-length rounding interval")
	}
	total := float64(r1) + tdToFloat(num)/tdToFloat(den)*float64(inc*s)

	expand := applyUnsignedRounding(num.abs(), den.abs(), absInt64(r1)/inc, unsignedMode(mode, sign < 0))
	res := nudgeResult{duration: internalDuration{date: startD}, nudged: startEp}
	if expand {
		res = nudgeResult{duration: internalDuration{date: endD}, nudged: endEp, didExpand: true}
	}
	return res, total, nil
}

// nudgeToDayOrTime rounds with every day counted as 24 hours.
func nudgeToDayOrTime(id internalDuration, dest timeDuration, largest Unit, inc int64, smallest Unit, mode RoundingMode) (nudgeResult, error) {
	td, err := id.time.addDays(id.date.days)
	if err != nil {
		return nudgeResult{}, err
	}
	rounded, err := roundTimeDuration(td, inc, smallest, mode)
	if err != nil {
		return nudgeResult{}, err
	}
	diff := rounded.sub(td)
	wholeDays := td.wholeDays()
	roundedWholeDays := rounded.wholeDays()
	dayDeltaSign := cmpInt(roundedWholeDays-wholeDays, 0)
	didExpandDays := dayDeltaSign == td.sign()

	days := int64(0)
	remainder := rounded
	if largest.IsDateUnit() {
		days = roundedWholeDays
		remainder = rounded.sub(timeDuration{sec: days * secondsPerDay})
	}
	dd := id.date
	dd.days = days
	return nudgeResult{
		duration:  internalDuration{date: dd, time: remainder},
		nudged:    dest.add(diff),
		didExpand: didExpandDays,
	}, nil
}

// nudgeToZonedTime rounds the time part against the real length of the
// day it lands in.
func nudgeToZonedTime(sign int, id internalDuration, origin relativeOrigin, tz *TimeZone, cal Calendar,
	inc int64, unit Unit, mode RoundingMode) (nudgeResult, error) {
	start, err := cal.dateAdd(origin.dt.Date, id.date, Constrain)
	if err != nil {
		return nudgeResult{}, err
	}
	endDate, err := start.addDays(int64(sign))
	if err != nil {
		return nudgeResult{}, err
	}
	startEp, err := epochFor(tz, IsoDateTime{Date: start, Time: origin.dt.Time})
	if err != nil {
		return nudgeResult{}, err
	}
	endEp, err := epochFor(tz, IsoDateTime{Date: endDate, Time: origin.dt.Time})
	if err != nil {
		return nudgeResult{}, err
	}
	daySpan := endEp.sub(startEp)
	rounded, err := roundTimeDuration(id.time, inc, unit, mode)
	if err != nil {
		return nudgeResult{}, err
	}
	beyond := rounded.sub(daySpan)
	dd := id.date
	var nudged timeDuration
	didRoundBeyondDay := beyond.sign() != -sign
	if didRoundBeyondDay {
		dd.days += int64(sign)
		rounded, err = roundTimeDuration(beyond, inc, unit, mode)
		if err != nil {
			return nudgeResult{}, err
		}
		nudged = endEp.add(rounded)
	} else {
		nudged = startEp.add(rounded)
	}
	return nudgeResult{
		duration:  internalDuration{date: dd, time: rounded},
		nudged:    nudged,
		didExpand: didRoundBeyondDay,
	}, nil
}

// roundRelativeDuration rounds a difference whose start is origin and
// whose exact end is dest. When rounding carries into a larger unit the
// difference is recomputed up to the rounded end point.
func roundRelativeDuration(id internalDuration, origin relativeOrigin, dest timeDuration, tz *TimeZone,
	cal Calendar, rs resolvedSettings) (internalDuration, error) {
	sign := 1
	if id.sign() < 0 {
		sign = -1
	}
	var (
		n   nudgeResult
		err error
	)
	switch {
	case rs.smallest.IsCalendarUnit() || (tz != nil && rs.smallest == UnitDay):
		n, _, err = nudgeToCalendarUnit(sign, id, dest, origin, tz, cal, rs.increment, rs.smallest, rs.mode)
	case tz != nil:
		n, err = nudgeToZonedTime(sign, id, origin, tz, cal, rs.increment, rs.smallest, rs.mode)
	default:
		n, err = nudgeToDayOrTime(id, dest, rs.largest, rs.increment, rs.smallest, rs.mode)
	}
	if err != nil {
		return internalDuration{}, err
	}
	startUnit := largerUnit(rs.smallest, UnitDay)
	if !n.didExpand || rs.smallest == UnitWeek || rs.largest >= startUnit {
		return n.duration, nil
	}
	if tz != nil {
		a, err := instantFromTD(origin.epoch)
		if err != nil {
			return internalDuration{}, err
		}
		b, err := instantFromTD(n.nudged)
		if err != nil {
			return internalDuration{}, err
		}
		return differenceZonedDateTime(a, b, tz, cal, rs.largest)
	}
	end := isoDateTimeFromEpoch(n.nudged.sec, n.nudged.nsec)
	return differenceISODateTime(origin.dt, end, cal, rs.largest)
}

// differenceZonedDateTime returns the difference between two instants
// read as wall-clock values in tz, with date units balanced up to largest.
func differenceZonedDateTime(a, b Instant, tz *TimeZone, cal Calendar, largest Unit) (internalDuration, error) {
	if a == b {
		return internalDuration{}, nil
	}
	start := tz.isoDateTimeFor(a)
	end := tz.isoDateTimeFor(b)
	if compareISODate(start.Date, end.Date) == 0 {
		return internalDuration{time: b.td().sub(a.td())}, nil
	}
	sign := 1
	if b.Compare(a) < 0 {
		sign = -1
	}
	maxCorrection := 1
	if sign == 1 {
		maxCorrection = 2
	}
	correction := 0
	td := differenceTime(start.Time, end.Time)
	if td.sign() == -sign {
		correction++
	}
	var intermediate IsoDate
	success := false
	for ; correction <= maxCorrection && !success; correction++ {
		var err error
		intermediate, err = end.Date.addDays(int64(-correction * sign))
		if err != nil {
			return internalDuration{}, err
		}
		inst, err := tz.instantFor(IsoDateTime{Date: intermediate, Time: start.Time}, DisambiguateCompatible)
		if err != nil {
			return internalDuration{}, err
		}
		td = b.td().sub(inst.td())
		if td.sign() != -sign {
			success = true
		}
	}
	if !success {
		return internalDuration{}, errors.Internal(errors.RangeOverflow(errors.PhaseArithmetic, "zoned difference did not converge"))
	}
	dd := cal.dateUntil(start.Date, intermediate, largerUnit(largest, UnitDay))
	return internalDuration{date: dd, time: td}, nil
}

func differenceZonedDateTimeWithRounding(a, b Instant, tz *TimeZone, cal Calendar, rs resolvedSettings) (internalDuration, error) {
	if !rs.largest.IsDateUnit() {
		td, err := roundTimeDuration(b.td().sub(a.td()), rs.increment, rs.smallest, rs.mode)
		if err != nil {
			return internalDuration{}, err
		}
		return internalDuration{time: td}, nil
	}
	diff, err := differenceZonedDateTime(a, b, tz, cal, rs.largest)
	if err != nil {
		return internalDuration{}, err
	}
	if rs.smallest == UnitNanosecond && rs.increment == 1 {
		return diff, nil
	}
	origin := relativeOrigin{dt: tz.isoDateTimeFor(a), epoch: a.td()}
	return roundRelativeDuration(diff, origin, b.td(), tz, cal, rs)
}
