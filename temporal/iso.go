package temporal

import (
	"github.com/wippyai/temporal-capi/errors"
)

const (
	nsPerSecond = 1_000_000_000
	nsPerMinute = 60 * nsPerSecond
	nsPerHour   = 60 * nsPerMinute
	nsPerDay    = 24 * nsPerHour

	secondsPerDay = 86_400

	// maxEpochDays bounds every ISO date reachable from a valid instant
	// after applying the largest possible UTC offset.
	maxEpochDays = 100_000_001

	// maxInstantSeconds is 10^8 days on either side of the epoch.
	maxInstantSeconds = 8_640_000_000_000

	// unixEpochDays counts days from 0000-03-01 to 1970-01-01.
	unixEpochDays = 719_468
)

// IsoDate holds the ISO 8601 slots of a calendar date.
type IsoDate struct {
	Year  int32
	Month uint8
	Day   uint8
}

// IsoTime holds the wall-clock slots of a time of day.
type IsoTime struct {
	Hour        uint8
	Minute      uint8
	Second      uint8
	Millisecond uint16
	Microsecond uint16
	Nanosecond  uint16
}

// IsoDateTime combines an IsoDate and an IsoTime.
type IsoDateTime struct {
	Date IsoDate
	Time IsoTime
}

// Overflow selects how out-of-range fields are regulated.
type Overflow uint8

const (
	// Constrain clamps the field to the nearest valid value.
	Constrain Overflow = iota
	// Reject fails with an InvalidField error.
	Reject
)

func isLeapYear(y int64) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func isoDaysInMonth(y int64, m int64) int64 {
	switch m {
	case 2:
		if isLeapYear(y) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func isoDaysInYear(y int64) int64 {
	if isLeapYear(y) {
		return 366
	}
	return 365
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// epochDaysFromISO converts a proleptic Gregorian date to days since
// 1970-01-01. Fields need not be valid; month is taken as-is (1..12).
func epochDaysFromISO(y, m, d int64) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - unixEpochDays
}

// isoFromEpochDays is the inverse of epochDaysFromISO.
func isoFromEpochDays(days int64) (y, m, d int64) {
	z := days + unixEpochDays
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y = yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d = doy - (153*mp+2)/5 + 1
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return y, m, d
}

// balanceYearMonth normalizes a month ordinal that may lie outside 1..12.
func balanceYearMonth(y, m int64) (int64, int64) {
	m--
	return y + floorDiv(m, 12), floorMod(m, 12) + 1
}

func validISODate(y, m, d int64) bool {
	if m < 1 || m > 12 {
		return false
	}
	return d >= 1 && d <= isoDaysInMonth(y, m)
}

// regulateISODate validates or clamps year/month/day according to overflow.
func regulateISODate(y, m, d int64, overflow Overflow) (IsoDate, error) {
	if overflow == Reject {
		if m < 1 || m > 12 {
			return IsoDate{}, errors.InvalidField(errors.PhaseConstruct, []string{"month"}, m, "month must be in 1..12")
		}
		if d < 1 || d > isoDaysInMonth(y, m) {
			return IsoDate{}, errors.InvalidField(errors.PhaseConstruct, []string{"day"}, d, "day out of range for month")
		}
	} else {
		m = clamp(m, 1, 12)
		d = clamp(d, 1, isoDaysInMonth(y, m))
	}
	if y < -maxYear || y > maxYear {
		return IsoDate{}, errors.RangeOverflow(errors.PhaseConstruct, "year %d outside supported range", y)
	}
	return IsoDate{Year: int32(y), Month: uint8(m), Day: uint8(d)}, nil
}

// maxYear bounds ISO years well past the representable range so that
// intermediate values stay in int32 and range checks stay meaningful.
const maxYear = 300_000

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// balanceISODate normalizes an arbitrary day count relative to a year/month.
func balanceISODate(y, m, d int64) IsoDate {
	y, m = balanceYearMonth(y, m)
	days := epochDaysFromISO(y, m, 1) + d - 1
	return isoDateFromEpochDays(days)
}

func isoDateFromEpochDays(days int64) IsoDate {
	y, m, d := isoFromEpochDays(days)
	return IsoDate{Year: int32(y), Month: uint8(m), Day: uint8(d)}
}

// EpochDays returns days since 1970-01-01.
func (d IsoDate) EpochDays() int64 {
	return epochDaysFromISO(int64(d.Year), int64(d.Month), int64(d.Day))
}

// Valid reports whether the slots form a real ISO date.
func (d IsoDate) Valid() bool {
	return validISODate(int64(d.Year), int64(d.Month), int64(d.Day))
}

func (d IsoDate) addDays(n int64) (IsoDate, error) {
	days := d.EpochDays() + n
	if days < -maxEpochDays-1 || days > maxEpochDays+1 {
		return IsoDate{}, errors.RangeOverflow(errors.PhaseArithmetic, "date outside supported range")
	}
	return isoDateFromEpochDays(days), nil
}

// compareISODate orders two dates field by field.
func compareISODate(a, b IsoDate) int {
	switch {
	case a.Year != b.Year:
		return cmpInt(int64(a.Year), int64(b.Year))
	case a.Month != b.Month:
		return cmpInt(int64(a.Month), int64(b.Month))
	default:
		return cmpInt(int64(a.Day), int64(b.Day))
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// isoDateWithinLimits checks the date at noon against the instant range
// widened by one day.
func isoDateWithinLimits(d IsoDate) bool {
	return isoDateTimeWithinLimits(IsoDateTime{Date: d, Time: IsoTime{Hour: 12}})
}

// isoDateTimeWithinLimits reports whether the wall time read as UTC lies
// strictly within one day of the instant range.
func isoDateTimeWithinLimits(dt IsoDateTime) bool {
	days := dt.Date.EpochDays()
	if days < -maxEpochDays || days > maxEpochDays {
		return false
	}
	sec, nsec := dt.utcEpoch()
	lo := timeDuration{sec: -maxInstantSeconds - secondsPerDay}
	hi := timeDuration{sec: maxInstantSeconds + secondsPerDay}
	v := timeDuration{sec: sec, nsec: nsec}
	return v.cmp(lo) > 0 && v.cmp(hi) < 0
}

// NanosecondOfDay returns the time as nanoseconds since midnight.
func (t IsoTime) NanosecondOfDay() int64 {
	return int64(t.Hour)*nsPerHour +
		int64(t.Minute)*nsPerMinute +
		int64(t.Second)*nsPerSecond +
		int64(t.Millisecond)*1_000_000 +
		int64(t.Microsecond)*1_000 +
		int64(t.Nanosecond)
}

func (t IsoTime) secondOfDay() int64 {
	return int64(t.Hour)*3600 + int64(t.Minute)*60 + int64(t.Second)
}

func (t IsoTime) subsecond() int32 {
	return int32(t.Millisecond)*1_000_000 + int32(t.Microsecond)*1_000 + int32(t.Nanosecond)
}

// isoTimeFromNanoseconds builds a time from nanoseconds since midnight.
// The argument must be in [0, nsPerDay).
func isoTimeFromNanoseconds(ns int64) IsoTime {
	return IsoTime{
		Hour:        uint8(ns / nsPerHour),
		Minute:      uint8(ns / nsPerMinute % 60),
		Second:      uint8(ns / nsPerSecond % 60),
		Millisecond: uint16(ns / 1_000_000 % 1000),
		Microsecond: uint16(ns / 1_000 % 1000),
		Nanosecond:  uint16(ns % 1000),
	}
}

// Valid reports whether every slot is in range.
func (t IsoTime) Valid() bool {
	return t.Hour <= 23 && t.Minute <= 59 && t.Second <= 59 &&
		t.Millisecond <= 999 && t.Microsecond <= 999 && t.Nanosecond <= 999
}

// regulateISOTime validates or clamps each time field.
func regulateISOTime(h, mi, s, ms, us, ns int64, overflow Overflow) (IsoTime, error) {
	if overflow == Reject {
		fields := []struct {
			name string
			v    int64
			max  int64
		}{
			{"hour", h, 23}, {"minute", mi, 59}, {"second", s, 59},
			{"millisecond", ms, 999}, {"microsecond", us, 999}, {"nanosecond", ns, 999},
		}
		for _, f := range fields {
			if f.v < 0 || f.v > f.max {
				return IsoTime{}, errors.InvalidField(errors.PhaseConstruct, []string{f.name}, f.v, f.name+" out of range")
			}
		}
	}
	return IsoTime{
		Hour:        uint8(clamp(h, 0, 23)),
		Minute:      uint8(clamp(mi, 0, 59)),
		Second:      uint8(clamp(s, 0, 59)),
		Millisecond: uint16(clamp(ms, 0, 999)),
		Microsecond: uint16(clamp(us, 0, 999)),
		Nanosecond:  uint16(clamp(ns, 0, 999)),
	}, nil
}

func compareISOTime(a, b IsoTime) int {
	return cmpInt(a.NanosecondOfDay(), b.NanosecondOfDay())
}

// addTime adds a time duration to a wall-clock time and reports the number
// of whole days carried.
func addTime(t IsoTime, d timeDuration) (int64, IsoTime) {
	sum := timeDuration{sec: t.secondOfDay(), nsec: t.subsecond()}.add(d)
	days := floorDiv(sum.sec, secondsPerDay)
	rest := floorMod(sum.sec, secondsPerDay)
	return days, isoTimeFromNanoseconds(rest*nsPerSecond + int64(sum.nsec))
}

// differenceTime returns b - a as a time duration.
func differenceTime(a, b IsoTime) timeDuration {
	return timeDurationFromNanoseconds(b.NanosecondOfDay() - a.NanosecondOfDay())
}

// utcEpoch reads the wall time as UTC and returns epoch seconds and nanos.
func (dt IsoDateTime) utcEpoch() (int64, int32) {
	return dt.Date.EpochDays()*secondsPerDay + dt.Time.secondOfDay(), dt.Time.subsecond()
}

// isoDateTimeFromEpoch splits epoch seconds/nanos into UTC wall slots.
func isoDateTimeFromEpoch(sec int64, nsec int32) IsoDateTime {
	days := floorDiv(sec, secondsPerDay)
	rest := floorMod(sec, secondsPerDay)
	return IsoDateTime{
		Date: isoDateFromEpochDays(days),
		Time: isoTimeFromNanoseconds(rest*nsPerSecond + int64(nsec)),
	}
}

func compareISODateTime(a, b IsoDateTime) int {
	if c := compareISODate(a.Date, b.Date); c != 0 {
		return c
	}
	return compareISOTime(a.Time, b.Time)
}

// addTimeToDateTime adds a time duration to a date-time, carrying days.
func (dt IsoDateTime) addTime(d timeDuration) (IsoDateTime, error) {
	days, t := addTime(dt.Time, d)
	date, err := dt.Date.addDays(days)
	if err != nil {
		return IsoDateTime{}, err
	}
	return IsoDateTime{Date: date, Time: t}, nil
}

// roundISOTime rounds a time to unit*increment and reports carried days.
func roundISOTime(t IsoTime, inc int64, unit Unit, mode RoundingMode) (int64, IsoTime) {
	q := t.NanosecondOfDay()
	step := unitNanoseconds(unit) * inc
	r := roundInt64(q, step, mode)
	return floorDiv(r, nsPerDay), isoTimeFromNanoseconds(floorMod(r, nsPerDay))
}

// roundISODateTime rounds a date-time to unit*increment.
func roundISODateTime(dt IsoDateTime, inc int64, unit Unit, mode RoundingMode) (IsoDateTime, error) {
	days, t := roundISOTime(dt.Time, inc, unit, mode)
	date, err := dt.Date.addDays(days)
	if err != nil {
		return IsoDateTime{}, err
	}
	out := IsoDateTime{Date: date, Time: t}
	if !isoDateTimeWithinLimits(out) {
		return IsoDateTime{}, errors.RangeOverflow(errors.PhaseRound, "rounded date-time outside supported range")
	}
	return out, nil
}
