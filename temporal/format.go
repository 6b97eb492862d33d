package temporal

import (
	"strconv"
	"strings"

	"github.com/wippyai/temporal-capi/errors"
)

// Precision selects the fractional-second output. The zero value prints
// as many digits as needed.
type Precision int8

const (
	PrecisionAuto   Precision = 0
	PrecisionMinute Precision = -1
)

// FractionalDigits returns a precision printing exactly n digits, 0..9.
func FractionalDigits(n int) Precision { return Precision(n + 1) }

// Valid reports whether p is auto, minute or 0..9 digits.
func (p Precision) Valid() bool { return p >= PrecisionMinute && p <= 10 }

// Digits returns the fixed digit count, or -1 for auto and minute.
func (p Precision) Digits() int {
	if p <= 0 {
		return -1
	}
	return int(p) - 1
}

type precision struct {
	minute bool
	digits int // -1 auto
}

var precisionAuto = precision{digits: -1}

func (p Precision) resolve() precision {
	if p == PrecisionMinute {
		return precision{minute: true, digits: -1}
	}
	return precision{digits: p.Digits()}
}

// rounding returns the unit and increment output at p is rounded to.
func (p precision) rounding() (Unit, int64, bool) {
	switch {
	case p.minute:
		return UnitMinute, 1, true
	case p.digits < 0 || p.digits == 9:
		return UnitNanosecond, 1, false
	}
	inc := int64(1)
	for i := p.digits; i < 9; i++ {
		inc *= 10
	}
	return UnitNanosecond, inc, true
}

// CalendarDisplay controls the [u-ca=…] annotation.
type CalendarDisplay uint8

const (
	CalendarAuto CalendarDisplay = iota
	CalendarAlways
	CalendarNever
	CalendarCritical
)

// OffsetDisplay controls the numeric offset of zoned output.
type OffsetDisplay uint8

const (
	OffsetAuto OffsetDisplay = iota
	OffsetNever
)

// TimeZoneNameDisplay controls the [zone] annotation of zoned output.
type TimeZoneNameDisplay uint8

const (
	TimeZoneNameAuto TimeZoneNameDisplay = iota
	TimeZoneNameNever
	TimeZoneNameCritical
)

// ToStringOptions configures canonical formatting. The zero value is the
// default form.
type ToStringOptions struct {
	Precision    Precision
	RoundingMode RoundingMode
	Calendar     CalendarDisplay
	Offset       OffsetDisplay
	TimeZoneName TimeZoneNameDisplay
}

func (o ToStringOptions) validate() error {
	switch {
	case !o.Precision.Valid():
		return errors.InvalidRounding("precision %d out of range", o.Precision)
	case !o.RoundingMode.Valid():
		return errors.InvalidRounding("unknown rounding mode %d", o.RoundingMode)
	case o.Calendar > CalendarCritical:
		return errors.InvalidArgument(errors.PhaseFormat, []string{"calendar"}, "unknown calendar display")
	case o.Offset > OffsetNever:
		return errors.InvalidArgument(errors.PhaseFormat, []string{"offset"}, "unknown offset display")
	case o.TimeZoneName > TimeZoneNameCritical:
		return errors.InvalidArgument(errors.PhaseFormat, []string{"timeZoneName"}, "unknown time zone name display")
	}
	return nil
}

func (o ToStringOptions) mode() RoundingMode { return o.RoundingMode.or(RoundTrunc) }

func writeYear(b *strings.Builder, y int32) {
	if y >= 0 && y <= 9999 {
		writePadded(b, int64(y), 4)
		return
	}
	if y < 0 {
		b.WriteByte('-')
		writePadded(b, -int64(y), 6)
		return
	}
	b.WriteByte('+')
	writePadded(b, int64(y), 6)
}

func writePadded(b *strings.Builder, v int64, width int) {
	s := strconv.FormatInt(v, 10)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

func writeDate(b *strings.Builder, d IsoDate) {
	writeYear(b, d.Year)
	b.WriteByte('-')
	writePadded(b, int64(d.Month), 2)
	b.WriteByte('-')
	writePadded(b, int64(d.Day), 2)
}

// writeFraction prints the nanoseconds of a second at p, with a leading '.'.
func writeFraction(b *strings.Builder, ns int64, p precision) {
	if p.digits == 0 {
		return
	}
	s := strconv.FormatInt(ns, 10)
	s = strings.Repeat("0", 9-len(s)) + s
	if p.digits < 0 {
		s = strings.TrimRight(s, "0")
	} else {
		s = s[:p.digits]
	}
	if s != "" {
		b.WriteByte('.')
		b.WriteString(s)
	}
}

func writeTime(b *strings.Builder, t IsoTime, p precision) {
	writePadded(b, int64(t.Hour), 2)
	b.WriteByte(':')
	writePadded(b, int64(t.Minute), 2)
	if p.minute {
		return
	}
	b.WriteByte(':')
	writePadded(b, int64(t.Second), 2)
	writeFraction(b, int64(t.subsecond()), p)
}

func formatISODate(d IsoDate) string {
	var b strings.Builder
	writeDate(&b, d)
	return b.String()
}

func formatISODateTime(dt IsoDateTime, p precision) string {
	var b strings.Builder
	writeDate(&b, dt.Date)
	b.WriteByte('T')
	writeTime(&b, dt.Time, p)
	return b.String()
}

// formatOffset prints ±HH:MM, adding seconds and a fraction when present
// and p is auto.
func formatOffset(ns int64, p precision) string {
	var b strings.Builder
	if ns < 0 {
		b.WriteByte('-')
		ns = -ns
	} else {
		b.WriteByte('+')
	}
	writePadded(&b, ns/nsPerHour, 2)
	b.WriteByte(':')
	writePadded(&b, ns/nsPerMinute%60, 2)
	if rest := ns % nsPerMinute; rest != 0 && !p.minute {
		b.WriteByte(':')
		writePadded(&b, rest/nsPerSecond, 2)
		writeFraction(&b, rest%nsPerSecond, precisionAuto)
	}
	return b.String()
}

// formatOffsetRounded prints an offset rounded to the minute.
func formatOffsetRounded(ns int64) string {
	return formatOffset(roundInt64(ns, nsPerMinute, RoundHalfExpand), precision{minute: true})
}

func writeCalendar(b *strings.Builder, cal Calendar, d CalendarDisplay) {
	if d == CalendarNever || (d == CalendarAuto && cal == ISO8601) {
		return
	}
	b.WriteByte('[')
	if d == CalendarCritical {
		b.WriteByte('!')
	}
	b.WriteString("u-ca=")
	b.WriteString(cal.Identifier())
	b.WriteByte(']')
}

// String returns the canonical form, e.g. "2024-03-10".
func (d PlainDate) String() string {
	s, _ := d.Format(ToStringOptions{})
	return s
}

// Format prints the date with an optional calendar annotation.
func (d PlainDate) Format(o ToStringOptions) (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	writeDate(&b, d.iso)
	writeCalendar(&b, d.cal, o.Calendar)
	return b.String(), nil
}

// String returns the canonical form, e.g. "02:30:00".
func (t PlainTime) String() string {
	s, _ := t.Format(ToStringOptions{})
	return s
}

// Format prints the time rounded to the requested precision.
func (t PlainTime) Format(o ToStringOptions) (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}
	p := o.Precision.resolve()
	iso := t.iso
	if unit, inc, ok := p.rounding(); ok {
		_, iso = roundISOTime(iso, inc, unit, o.mode())
	}
	var b strings.Builder
	writeTime(&b, iso, p)
	return b.String(), nil
}

// String returns the canonical form.
func (dt PlainDateTime) String() string {
	s, _ := dt.Format(ToStringOptions{})
	return s
}

// Format prints the date-time rounded to the requested precision.
func (dt PlainDateTime) Format(o ToStringOptions) (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}
	p := o.Precision.resolve()
	iso := dt.iso
	if unit, inc, ok := p.rounding(); ok {
		var err error
		if iso, err = roundISODateTime(iso, inc, unit, o.mode()); err != nil {
			return "", err
		}
	}
	var b strings.Builder
	writeDate(&b, iso.Date)
	b.WriteByte('T')
	writeTime(&b, iso.Time, p)
	writeCalendar(&b, dt.cal, o.Calendar)
	return b.String(), nil
}

func roundInstantForOutput(i Instant, p precision, mode RoundingMode) (Instant, error) {
	unit, inc, ok := p.rounding()
	if !ok {
		return i, nil
	}
	return instantFromTD(i.td().round(makeIncrement(unitNanoseconds(unit), inc), mode, true))
}

// String returns the canonical UTC form, e.g. "1970-01-01T00:00:00Z".
func (i Instant) String() string {
	s, _ := i.Format(nil, ToStringOptions{})
	return s
}

// Format prints the instant in UTC with "Z", or as local time with the
// numeric offset of tz.
func (i Instant) Format(tz *TimeZone, o ToStringOptions) (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}
	p := o.Precision.resolve()
	r, err := roundInstantForOutput(i, p, o.mode())
	if err != nil {
		return "", err
	}
	zone := tz
	if zone == nil {
		zone = UTC
	}
	var b strings.Builder
	b.WriteString(formatISODateTime(zone.isoDateTimeFor(r), p))
	if tz == nil {
		b.WriteByte('Z')
	} else {
		b.WriteString(formatOffsetRounded(tz.OffsetNanosecondsFor(r)))
	}
	return b.String(), nil
}

// String returns the canonical form with offset and zone annotation.
func (z ZonedDateTime) String() string {
	s, _ := z.Format(ToStringOptions{})
	return s
}

// Format prints the local date-time, offset, zone and calendar.
func (z ZonedDateTime) Format(o ToStringOptions) (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}
	p := o.Precision.resolve()
	r, err := roundInstantForOutput(z.instant, p, o.mode())
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(formatISODateTime(z.tz.isoDateTimeFor(r), p))
	if o.Offset == OffsetAuto {
		b.WriteString(formatOffsetRounded(z.tz.OffsetNanosecondsFor(r)))
	}
	if o.TimeZoneName != TimeZoneNameNever {
		b.WriteByte('[')
		if o.TimeZoneName == TimeZoneNameCritical {
			b.WriteByte('!')
		}
		b.WriteString(z.tz.id)
		b.WriteByte(']')
	}
	writeCalendar(&b, z.cal, o.Calendar)
	return b.String(), nil
}

// String returns the ISO 8601 form, e.g. "P1DT2H" or "PT0S".
func (d Duration) String() string {
	s, _ := d.Format(ToStringOptions{})
	return s
}

// Format prints the duration. A fixed precision rounds the seconds part;
// minute precision is not allowed.
func (d Duration) Format(o ToStringOptions) (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}
	if o.Precision == PrecisionMinute {
		return "", errors.InvalidRounding("durations cannot be formatted to the minute")
	}
	if err := d.Validate(); err != nil {
		return "", err
	}
	p := o.Precision.resolve()
	if _, inc, ok := p.rounding(); ok {
		largest := largerUnit(d.defaultLargestUnit(), UnitSecond)
		id, err := d.internal24()
		if err != nil {
			return "", err
		}
		if id.time, err = roundTimeDuration(id.time, inc, UnitNanosecond, o.mode()); err != nil {
			return "", err
		}
		if d, err = fromInternal(id, largest); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	if d.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	for _, c := range []struct {
		v int64
		s byte
	}{{d.Years, 'Y'}, {d.Months, 'M'}, {d.Weeks, 'W'}, {d.Days, 'D'}} {
		if c.v != 0 {
			b.WriteString(strconv.FormatInt(absInt64(c.v), 10))
			b.WriteByte(c.s)
		}
	}

	secs, err := timeDurationFromComponents(0, 0, 0, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds)
	if err != nil {
		return "", err
	}
	secs = secs.abs()
	var t strings.Builder
	if d.Hours != 0 {
		t.WriteString(strconv.FormatInt(absInt64(d.Hours), 10))
		t.WriteByte('H')
	}
	if d.Minutes != 0 {
		t.WriteString(strconv.FormatInt(absInt64(d.Minutes), 10))
		t.WriteByte('M')
	}
	zeroAbove := d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0 && d.Hours == 0 && d.Minutes == 0
	if !secs.isZero() || zeroAbove || p.digits >= 0 {
		t.WriteString(strconv.FormatInt(secs.sec, 10))
		writeFraction(&t, int64(secs.nsec), p)
		t.WriteByte('S')
	}
	if t.Len() > 0 {
		b.WriteByte('T')
		b.WriteString(t.String())
	}
	return b.String(), nil
}
