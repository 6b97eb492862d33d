package temporal

import (
	"github.com/wippyai/temporal-capi/errors"
)

// parser scans RFC 9557 / ISO 8601 text and reports failures at a byte offset.
type parser struct {
	s   string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) eat(c byte) bool {
	if p.peek() == c && !p.done() {
		p.pos++
		return true
	}
	return false
}

func (p *parser) eatFold(c byte) bool {
	b := p.peek()
	if !p.done() && (b == c || b == c+('a'-'A')) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) fail(format string, args ...any) error {
	return errors.ParseFailure(p.pos, format, args...)
}

func (p *parser) failAt(pos int, format string, args ...any) error {
	return errors.ParseFailure(pos, format, args...)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// digits reads exactly n decimal digits.
func (p *parser) digits(n int) (int64, error) {
	var v int64
	for i := 0; i < n; i++ {
		c := p.peek()
		if p.done() || !isDigit(c) {
			return 0, p.fail("expected digit")
		}
		v = v*10 + int64(c-'0')
		p.pos++
	}
	return v, nil
}

// fraction reads 1 to 9 digits after '.' or ',' and scales them to nanoseconds.
func (p *parser) fraction() (int64, bool, error) {
	if p.peek() != '.' && p.peek() != ',' {
		return 0, false, nil
	}
	p.pos++
	start := p.pos
	var v int64
	n := 0
	for !p.done() && isDigit(p.peek()) {
		if n == 9 {
			return 0, false, p.fail("more than 9 fractional digits")
		}
		v = v*10 + int64(p.peek()-'0')
		n++
		p.pos++
	}
	if n == 0 {
		return 0, false, p.failAt(start, "expected fractional digits")
	}
	for ; n < 9; n++ {
		v *= 10
	}
	return v, true, nil
}

func (p *parser) date() (IsoDate, error) {
	start := p.pos
	var y int64
	var err error
	switch c := p.peek(); {
	case c == '+' || c == '-':
		p.pos++
		if y, err = p.digits(6); err != nil {
			return IsoDate{}, err
		}
		if c == '-' {
			if y == 0 {
				return IsoDate{}, p.failAt(start, "year -000000 is not allowed")
			}
			y = -y
		}
	default:
		if y, err = p.digits(4); err != nil {
			return IsoDate{}, err
		}
	}
	extended := p.eat('-')
	monthPos := p.pos
	m, err := p.digits(2)
	if err != nil {
		return IsoDate{}, err
	}
	if extended && !p.eat('-') {
		return IsoDate{}, p.fail("expected '-' after month")
	}
	dayPos := p.pos
	d, err := p.digits(2)
	if err != nil {
		return IsoDate{}, err
	}
	if m < 1 || m > 12 {
		return IsoDate{}, p.failAt(monthPos, "month %d out of range", m)
	}
	if d < 1 || d > isoDaysInMonth(y, m) {
		return IsoDate{}, p.failAt(dayPos, "day %d out of range", d)
	}
	return IsoDate{Year: int32(y), Month: uint8(m), Day: uint8(d)}, nil
}

// clock reads HH[:MM[:SS[.f]]] or HH[MM[SS[.f]]].
func (p *parser) clock() (IsoTime, bool, error) {
	hourPos := p.pos
	h, err := p.digits(2)
	if err != nil {
		return IsoTime{}, false, err
	}
	var mi, s, frac int64
	basic := false
	minPos, secPos := p.pos, p.pos
	readRest := func(sep bool) error {
		minPos = p.pos
		if mi, err = p.digits(2); err != nil {
			return err
		}
		if (sep && p.peek() == ':') || (!sep && isDigit(p.peek())) {
			if sep {
				p.pos++
			}
			secPos = p.pos
			if s, err = p.digits(2); err != nil {
				return err
			}
			frac, _, err = p.fraction()
			return err
		}
		return nil
	}
	switch {
	case p.peek() == ':':
		p.pos++
		err = readRest(true)
	case isDigit(p.peek()):
		basic = true
		err = readRest(false)
	}
	if err != nil {
		return IsoTime{}, false, err
	}
	switch {
	case h > 23:
		return IsoTime{}, false, p.failAt(hourPos, "hour %d out of range", h)
	case mi > 59:
		return IsoTime{}, false, p.failAt(minPos, "minute %d out of range", mi)
	case s > 60:
		return IsoTime{}, false, p.failAt(secPos, "second %d out of range", s)
	}
	if s == 60 {
		s = 59
	}
	return IsoTime{
		Hour:        uint8(h),
		Minute:      uint8(mi),
		Second:      uint8(s),
		Millisecond: uint16(frac / 1_000_000),
		Microsecond: uint16(frac / 1_000 % 1_000),
		Nanosecond:  uint16(frac % 1_000),
	}, basic, nil
}

// offset reads ±HH[:MM[:SS[.f]]] and reports whether it stopped at minutes.
func (p *parser) offset() (int64, bool, error) {
	sign := int64(1)
	switch p.peek() {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false, p.fail("expected offset sign")
	}
	p.pos++
	hourPos := p.pos
	h, err := p.digits(2)
	if err != nil {
		return 0, false, err
	}
	if h > 23 {
		return 0, false, p.failAt(hourPos, "offset hour %d out of range", h)
	}
	ns := h * nsPerHour
	minutesOnly := true
	sep := p.peek() == ':'
	if sep || isDigit(p.peek()) {
		if sep {
			p.pos++
		}
		minPos := p.pos
		m, err := p.digits(2)
		if err != nil {
			return 0, false, err
		}
		if m > 59 {
			return 0, false, p.failAt(minPos, "offset minute %d out of range", m)
		}
		ns += m * nsPerMinute
		if (sep && p.peek() == ':') || (!sep && isDigit(p.peek())) {
			if sep {
				p.pos++
			}
			secPos := p.pos
			s, err := p.digits(2)
			if err != nil {
				return 0, false, err
			}
			if s > 59 {
				return 0, false, p.failAt(secPos, "offset second %d out of range", s)
			}
			frac, _, err := p.fraction()
			if err != nil {
				return 0, false, err
			}
			ns += s*nsPerSecond + frac
			minutesOnly = false
		}
	}
	return sign * ns, minutesOnly, nil
}

// parsed is the raw result of scanning a date-time string.
type parsed struct {
	date        IsoDate
	time        IsoTime
	hasTime     bool
	z           bool
	hasOffset   bool
	offsetNs    int64
	minutesOnly bool
	tz          string
	tzPos       int
	calendar    string
	calPos      int
}

func isAnnotationKeyStart(c byte) bool { return (c >= 'a' && c <= 'z') || c == '_' }

func isAnnotationKeyChar(c byte) bool {
	return isAnnotationKeyStart(c) || isDigit(c) || c == '-'
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isZoneChar(c byte) bool {
	return isAlnum(c) || c == '.' || c == '_' || c == '-' || c == '+' || c == '/' || c == ':'
}

// annotations reads [tz][key=value]... suffixes.
func (p *parser) annotations(r *parsed) error {
	seenKey := false
	calCritical := false
	for p.peek() == '[' {
		open := p.pos
		p.pos++
		critical := p.eat('!')
		bodyPos := p.pos
		end := bodyPos
		for end < len(p.s) && p.s[end] != ']' {
			end++
		}
		if end == len(p.s) {
			return p.failAt(open, "unterminated annotation")
		}
		body := p.s[bodyPos:end]
		eq := -1
		for i := 0; i < len(body); i++ {
			if body[i] == '=' {
				eq = i
				break
			}
		}
		if eq < 0 {
			if seenKey || r.tz != "" {
				return p.failAt(open, "time zone annotation must come first")
			}
			if body == "" {
				return p.failAt(bodyPos, "empty time zone annotation")
			}
			for i := 0; i < len(body); i++ {
				if !isZoneChar(body[i]) {
					return p.failAt(bodyPos+i, "invalid character in time zone")
				}
			}
			r.tz, r.tzPos = body, bodyPos
			p.pos = end + 1
			continue
		}
		seenKey = true
		key, value := body[:eq], body[eq+1:]
		if key == "" || !isAnnotationKeyStart(key[0]) {
			return p.failAt(bodyPos, "invalid annotation key")
		}
		for i := 1; i < len(key); i++ {
			if !isAnnotationKeyChar(key[i]) {
				return p.failAt(bodyPos+i, "invalid annotation key")
			}
		}
		if value == "" || value[0] == '-' || value[len(value)-1] == '-' {
			return p.failAt(bodyPos+eq+1, "invalid annotation value")
		}
		for i := 0; i < len(value); i++ {
			if !isAlnum(value[i]) && value[i] != '-' {
				return p.failAt(bodyPos+eq+1+i, "invalid annotation value")
			}
		}
		switch {
		case key == "u-ca" && r.calendar == "":
			r.calendar, r.calPos = value, bodyPos+eq+1
			calCritical = critical
		case key == "u-ca":
			if critical || calCritical {
				return p.failAt(open, "conflicting calendar annotations")
			}
		case critical:
			return p.failAt(open, "unknown critical annotation %q", key)
		}
		p.pos = end + 1
	}
	return nil
}

// dateTime scans Date [sep Time [Z|offset]] annotations.
func parseDateTime(s string) (parsed, error) {
	p := &parser{s: s}
	var r parsed
	var err error
	if r.date, err = p.date(); err != nil {
		return parsed{}, err
	}
	if c := p.peek(); !p.done() && (c == 'T' || c == 't' || c == ' ') {
		p.pos++
		if r.time, _, err = p.clock(); err != nil {
			return parsed{}, err
		}
		r.hasTime = true
		if err := p.utcDesignator(&r); err != nil {
			return parsed{}, err
		}
	}
	if err := p.annotations(&r); err != nil {
		return parsed{}, err
	}
	if !p.done() {
		return parsed{}, p.fail("unexpected character %q", p.peek())
	}
	return r, nil
}

func (p *parser) utcDesignator(r *parsed) error {
	switch p.peek() {
	case 'Z', 'z':
		p.pos++
		r.z = true
	case '+', '-':
		off, minutes, err := p.offset()
		if err != nil {
			return err
		}
		r.hasOffset, r.offsetNs, r.minutesOnly = true, off, minutes
	}
	return nil
}

func (r parsed) resolveCalendar() (Calendar, error) {
	if r.calendar == "" {
		return ISO8601, nil
	}
	return CalendarFromIdentifier(r.calendar)
}

func rejectZ(r parsed, s string) error {
	if r.z {
		for i := 0; i < len(s); i++ {
			if s[i] == 'Z' || s[i] == 'z' {
				return errors.ParseFailure(i, "UTC designator not allowed for plain values")
			}
		}
	}
	return nil
}

// ParseInstant parses a date-time with a UTC offset or Z.
func ParseInstant(s string) (Instant, error) {
	r, err := parseDateTime(s)
	if err != nil {
		return Instant{}, err
	}
	if !r.hasTime || (!r.z && !r.hasOffset) {
		return Instant{}, errors.ParseFailure(len(s), "instant needs a time and a UTC offset")
	}
	dt := IsoDateTime{Date: r.date, Time: r.time}
	if !isoDateTimeWithinLimits(dt) {
		return Instant{}, errors.RangeOverflow(errors.PhaseParse, "date-time outside supported range")
	}
	return instantFromTD(utcTD(dt).sub(timeDurationFromNanoseconds(r.offsetNs)))
}

// ParsePlainDate parses a date, ignoring any time part.
func ParsePlainDate(s string) (PlainDate, error) {
	r, err := parseDateTime(s)
	if err != nil {
		return PlainDate{}, err
	}
	if err := rejectZ(r, s); err != nil {
		return PlainDate{}, err
	}
	cal, err := r.resolveCalendar()
	if err != nil {
		return PlainDate{}, err
	}
	return NewPlainDateISO(r.date, cal)
}

// ParsePlainDateTime parses a date with an optional time.
func ParsePlainDateTime(s string) (PlainDateTime, error) {
	r, err := parseDateTime(s)
	if err != nil {
		return PlainDateTime{}, err
	}
	if err := rejectZ(r, s); err != nil {
		return PlainDateTime{}, err
	}
	cal, err := r.resolveCalendar()
	if err != nil {
		return PlainDateTime{}, err
	}
	return NewPlainDateTime(IsoDateTime{Date: r.date, Time: r.time}, cal)
}

// ParsePlainTime parses a time, either alone (optionally prefixed by T) or
// as part of a date-time.
func ParsePlainTime(s string) (PlainTime, error) {
	r, dtErr := parseDateTime(s)
	if dtErr == nil {
		if !r.hasTime {
			return PlainTime{}, errors.ParseFailure(len(s), "expected a time")
		}
		if err := rejectZ(r, s); err != nil {
			return PlainTime{}, err
		}
		return PlainTime{iso: r.time}, nil
	}
	p := &parser{s: s}
	designated := p.eatFold('T')
	t, basic, err := p.clock()
	if err == nil {
		var tr parsed
		if err = p.utcDesignator(&tr); err == nil {
			if tr.z {
				err = p.failAt(p.pos-1, "UTC designator not allowed for plain values")
			} else if err = p.annotations(&tr); err == nil && !p.done() {
				err = p.fail("unexpected character %q", p.peek())
			}
		}
	}
	if err == nil && !designated && basic && len(s) == 4 {
		// HHMM that also reads as MMDD is ambiguous
		m, d := int64(t.Hour), int64(t.Minute)
		if m >= 1 && m <= 12 && d >= 1 && d <= isoDaysInMonth(2000, m) {
			err = errors.ParseFailure(0, "ambiguous time; prefix it with T")
		}
	}
	if err != nil {
		if pe, ok := errors.As(err); ok {
			if de, ok := errors.As(dtErr); ok && de.Offset > pe.Offset {
				return PlainTime{}, dtErr
			}
		}
		return PlainTime{}, err
	}
	return PlainTime{iso: t}, nil
}

// ParseZonedDateTime parses a date-time with a bracketed time zone.
func ParseZonedDateTime(s string, d Disambiguation, opt OffsetOption) (ZonedDateTime, error) {
	r, err := parseDateTime(s)
	if err != nil {
		return ZonedDateTime{}, err
	}
	if r.tz == "" {
		return ZonedDateTime{}, errors.ParseFailure(len(s), "expected a [time zone] annotation")
	}
	tz, err := TimeZoneFromIdentifier(r.tz)
	if err != nil {
		return ZonedDateTime{}, err
	}
	cal, err := r.resolveCalendar()
	if err != nil {
		return ZonedDateTime{}, err
	}
	dt := IsoDateTime{Date: r.date, Time: r.time}
	var inst Instant
	switch {
	case r.z:
		if !isoDateTimeWithinLimits(dt) {
			return ZonedDateTime{}, errors.RangeOverflow(errors.PhaseParse, "date-time outside supported range")
		}
		inst, err = instantFromTD(utcTD(dt))
	case !r.hasTime:
		inst, err = tz.startOfDay(r.date)
	case r.hasOffset:
		inst, err = tz.instantForOffset(dt, r.offsetNs, opt, d, !r.minutesOnly)
	default:
		inst, err = tz.instantFor(dt, d)
	}
	if err != nil {
		return ZonedDateTime{}, err
	}
	return NewZonedDateTime(inst, tz, cal)
}

// ParseDuration parses an ISO 8601 duration such as "P1Y2M3DT4H5M6.5S".
func ParseDuration(s string) (Duration, error) {
	p := &parser{s: s}
	sign := int64(1)
	if p.eat('-') {
		sign = -1
	} else {
		p.eat('+')
	}
	if !p.eatFold('P') {
		return Duration{}, p.fail("expected 'P'")
	}
	var d Duration
	found := false

	number := func() (int64, int64, bool, error) {
		start := p.pos
		var v int64
		for !p.done() && isDigit(p.peek()) {
			digit := int64(p.peek() - '0')
			if v > (1<<63-1-digit)/10 {
				return 0, 0, false, errors.New(errors.PhaseParse, errors.KindRangeOverflow).
					Offset(start).Detail("duration component too large").Build()
			}
			v = v*10 + digit
			p.pos++
		}
		if p.pos == start {
			return 0, 0, false, p.fail("expected digits")
		}
		frac, hasFrac, err := p.fraction()
		return v, frac, hasFrac, err
	}

	dateSlots := []struct {
		designator byte
		field      *int64
	}{{'Y', &d.Years}, {'M', &d.Months}, {'W', &d.Weeks}, {'D', &d.Days}}
	next := 0
	for !p.done() && isDigit(p.peek()) {
		pos := p.pos
		v, _, hasFrac, err := number()
		if err != nil {
			return Duration{}, err
		}
		if hasFrac {
			return Duration{}, p.failAt(pos, "fractions are only allowed on hours, minutes or seconds")
		}
		matched := false
		for ; next < len(dateSlots); next++ {
			if p.eatFold(dateSlots[next].designator) {
				*dateSlots[next].field = v
				next++
				matched = true
				break
			}
		}
		if !matched {
			return Duration{}, p.fail("expected a date designator")
		}
		found = true
	}

	if p.eatFold('T') {
		timeSlots := []struct {
			designator byte
			field      *int64
			unitNs     int64
		}{{'H', &d.Hours, nsPerHour}, {'M', &d.Minutes, nsPerMinute}, {'S', &d.Seconds, nsPerSecond}}
		next := 0
		seenTime := false
		fractionDone := false
		for !p.done() && isDigit(p.peek()) {
			if fractionDone {
				return Duration{}, p.fail("a fractional component must be last")
			}
			v, frac, hasFrac, err := number()
			if err != nil {
				return Duration{}, err
			}
			matched := false
			for ; next < len(timeSlots); next++ {
				slot := timeSlots[next]
				if p.eatFold(slot.designator) {
					*slot.field = v
					if hasFrac {
						spreadFraction(&d, frac*(slot.unitNs/nsPerSecond), slot.unitNs)
						fractionDone = true
					}
					next++
					matched = true
					break
				}
			}
			if !matched {
				return Duration{}, p.fail("expected a time designator")
			}
			seenTime = true
		}
		if !seenTime {
			return Duration{}, p.fail("expected a time component after 'T'")
		}
		found = true
	}
	if !p.done() {
		return Duration{}, p.fail("unexpected character %q", p.peek())
	}
	if !found {
		return Duration{}, p.fail("duration has no components")
	}
	if sign < 0 {
		d = d.Negated()
	}
	return NewDuration(d)
}

// spreadFraction distributes the fractional part of a time component,
// given in nanoseconds, over the smaller units.
func spreadFraction(d *Duration, fracNs int64, unitNs int64) {
	if unitNs == nsPerHour {
		d.Minutes = fracNs / nsPerMinute
		fracNs %= nsPerMinute
	}
	if unitNs >= nsPerMinute {
		d.Seconds = fracNs / nsPerSecond
		fracNs %= nsPerSecond
	}
	d.Milliseconds = fracNs / 1_000_000
	d.Microseconds = fracNs / 1_000 % 1_000
	d.Nanoseconds = fracNs % 1_000
}
