package temporal

import (
	"math/bits"

	"github.com/wippyai/temporal-capi/errors"
)

// maxTimeDurationSeconds bounds the day-and-time part of a duration.
const maxTimeDurationSeconds = 1 << 53

// timeDuration is an exact signed span of seconds plus nanoseconds.
// nsec is always in [0, 1e9); the value is sec + nsec/1e9.
type timeDuration struct {
	sec  int64
	nsec int32
}

func timeDurationFromNanoseconds(ns int64) timeDuration {
	return timeDuration{sec: floorDiv(ns, nsPerSecond), nsec: int32(floorMod(ns, nsPerSecond))}
}

func normalizeTD(sec int64, nsec int64) timeDuration {
	sec += floorDiv(nsec, nsPerSecond)
	return timeDuration{sec: sec, nsec: int32(floorMod(nsec, nsPerSecond))}
}

func (d timeDuration) add(o timeDuration) timeDuration {
	return normalizeTD(d.sec+o.sec, int64(d.nsec)+int64(o.nsec))
}

func (d timeDuration) sub(o timeDuration) timeDuration {
	return d.add(o.neg())
}

func (d timeDuration) neg() timeDuration {
	return normalizeTD(-d.sec, -int64(d.nsec))
}

func (d timeDuration) abs() timeDuration {
	if d.sign() < 0 {
		return d.neg()
	}
	return d
}

func (d timeDuration) sign() int {
	switch {
	case d.sec < 0:
		return -1
	case d.sec == 0 && d.nsec == 0:
		return 0
	}
	return 1
}

func (d timeDuration) isZero() bool {
	return d.sec == 0 && d.nsec == 0
}

func (d timeDuration) cmp(o timeDuration) int {
	if c := cmpInt(d.sec, o.sec); c != 0 {
		return c
	}
	return cmpInt(int64(d.nsec), int64(o.nsec))
}

// valid reports whether |d| < 2^53 seconds.
func (d timeDuration) valid() bool {
	if d.sec >= 0 {
		return d.sec < maxTimeDurationSeconds
	}
	return d.sec > -maxTimeDurationSeconds || (d.sec == -maxTimeDurationSeconds && d.nsec > 0)
}

// addDays adds n 24-hour days.
func (d timeDuration) addDays(n int64) (timeDuration, error) {
	if n > maxTimeDurationSeconds/secondsPerDay+1 || n < -maxTimeDurationSeconds/secondsPerDay-1 {
		return timeDuration{}, errors.RangeOverflow(errors.PhaseArithmetic, "duration too large")
	}
	out := timeDuration{sec: d.sec + n*secondsPerDay, nsec: d.nsec}
	if !out.valid() {
		return timeDuration{}, errors.RangeOverflow(errors.PhaseArithmetic, "duration too large")
	}
	return out, nil
}

// wholeDays returns the number of whole 24-hour days, truncated toward zero.
func (d timeDuration) wholeDays() int64 {
	a := d.abs()
	n := a.sec / secondsPerDay
	if d.sign() < 0 {
		return -n
	}
	return n
}

// total returns d expressed in units of unitNs as a float.
func (d timeDuration) total(unitNs int64) float64 {
	if unitNs%nsPerSecond == 0 {
		us := unitNs / nsPerSecond
		whole := floorDiv(d.sec, us)
		rem := floorMod(d.sec, us)*nsPerSecond + int64(d.nsec)
		return float64(whole) + float64(rem)/float64(unitNs)
	}
	perSec := nsPerSecond / unitNs
	whole := float64(d.sec) * float64(perSec)
	return whole + float64(d.nsec)/float64(unitNs)
}

// nanoseconds returns d as an int64 nanosecond count when it fits.
func (d timeDuration) nanoseconds() (int64, bool) {
	hi, lo := bits.Mul64(uint64(absInt64(d.sec)), nsPerSecond)
	if hi != 0 || lo > 1<<63-1 {
		return 0, false
	}
	if d.sec < 0 {
		return -int64(lo) + int64(d.nsec), true
	}
	return int64(lo) + int64(d.nsec), true
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// timeDurationFromComponents sums the day and time components of a
// duration whose non-zero fields all share one sign.
func timeDurationFromComponents(days, hours, minutes, seconds, ms, us, ns int64) (timeDuration, error) {
	limits := [...]struct {
		v   int64
		max int64
	}{
		{days, maxTimeDurationSeconds / secondsPerDay},
		{hours, maxTimeDurationSeconds / 3600},
		{minutes, maxTimeDurationSeconds / 60},
		{seconds, maxTimeDurationSeconds},
	}
	for _, l := range limits {
		if l.v > l.max || l.v < -l.max {
			return timeDuration{}, errors.RangeOverflow(errors.PhaseConstruct, "duration time part exceeds 2^53 seconds")
		}
	}
	sec := days*secondsPerDay + hours*3600 + minutes*60 + seconds +
		ms/1_000 + us/1_000_000 + ns/nsPerSecond
	sub := (ms%1_000)*1_000_000 + (us%1_000_000)*1_000 + ns%nsPerSecond
	d := normalizeTD(sec, sub)
	if !d.valid() {
		return timeDuration{}, errors.RangeOverflow(errors.PhaseConstruct, "duration time part exceeds 2^53 seconds")
	}
	return d, nil
}

// increment is a rounding step expressed either in whole seconds or, when
// it is not a whole number of seconds, in nanoseconds.
type increment struct {
	sec int64
	ns  int64
}

func makeIncrement(unitNs, n int64) increment {
	if unitNs%nsPerSecond == 0 {
		return increment{sec: unitNs / nsPerSecond * n}
	}
	total := unitNs * n
	if total%nsPerSecond == 0 {
		return increment{sec: total / nsPerSecond}
	}
	return increment{ns: total}
}

func (inc increment) duration() timeDuration {
	if inc.sec > 0 {
		return timeDuration{sec: inc.sec}
	}
	return timeDurationFromNanoseconds(inc.ns)
}

// divmod returns d mod inc for a non-negative d and whether the quotient is odd.
func (d timeDuration) divmod(inc increment) (timeDuration, bool) {
	if inc.sec > 0 {
		m2 := 2 * inc.sec
		rs := d.sec % m2
		odd := rs >= inc.sec
		return timeDuration{sec: rs % inc.sec, nsec: d.nsec}, odd
	}
	m2 := uint64(2 * inc.ns)
	r2 := mulmod(uint64(d.sec)%m2, nsPerSecond%m2, m2)
	r2 = (r2 + uint64(d.nsec)%m2) % m2
	odd := r2 >= uint64(inc.ns)
	return timeDurationFromNanoseconds(int64(r2 % uint64(inc.ns))), odd
}

func mulmod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// round rounds d to a multiple of inc under mode. With asIfPositive the
// mode treats d as non-negative, so floor and trunc both move toward
// negative infinity.
func (d timeDuration) round(inc increment, mode RoundingMode, asIfPositive bool) timeDuration {
	neg := d.sign() < 0
	rmag, oddMag := d.abs().divmod(inc)
	if rmag.isZero() {
		return d
	}
	step := inc.duration()

	// floor bound f <= d < f+step, r = d - f
	var r timeDuration
	var floorOdd bool
	if !neg {
		r, floorOdd = rmag, oddMag
	} else {
		r, floorOdd = step.sub(rmag), !oddMag
	}
	f := d.sub(r)
	c := f.add(step)

	signedNeg := neg && !asIfPositive
	zero, inf := f, c
	dz, di := r, step.sub(r)
	zeroOdd := floorOdd
	if signedNeg {
		zero, inf = c, f
		dz, di = di, dz
		zeroOdd = !floorOdd
	}
	if pickInfinity(unsignedMode(mode, signedNeg), dz.cmp(di), zeroOdd) {
		return inf
	}
	return zero
}

// roundTimeDuration rounds a signed duration to unit*inc.
func roundTimeDuration(d timeDuration, inc int64, unit Unit, mode RoundingMode) (timeDuration, error) {
	out := d.round(makeIncrement(unitNanoseconds(unit), inc), mode, false)
	if !out.valid() {
		return timeDuration{}, errors.RangeOverflow(errors.PhaseRound, "rounded duration too large")
	}
	return out, nil
}
