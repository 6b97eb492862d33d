package temporal

import (
	"fmt"
	"strings"

	"github.com/wippyai/temporal-capi/errors"
)

// Calendar selects a day-count and field-mapping algorithm. The set is
// closed; behavior dispatches on the tag.
type Calendar uint8

const (
	ISO8601 Calendar = iota
	Gregorian
	Buddhist
	ROC
	Coptic
	Ethiopic
)

var calendarIDs = [...]string{
	ISO8601:   "iso8601",
	Gregorian: "gregory",
	Buddhist:  "buddhist",
	ROC:       "roc",
	Coptic:    "coptic",
	Ethiopic:  "ethiopic",
}

// Calendars lists every calendar the engine knows, bundled data or not.
func Calendars() []Calendar {
	return []Calendar{ISO8601, Gregorian, Buddhist, ROC, Coptic, Ethiopic}
}

// Identifier returns the canonical calendar identifier.
func (c Calendar) Identifier() string {
	if c.Valid() {
		return calendarIDs[c]
	}
	return fmt.Sprintf("calendar(%d)", uint8(c))
}

func (c Calendar) String() string { return c.Identifier() }

// Valid reports whether c is a known tag.
func (c Calendar) Valid() bool {
	return int(c) < len(calendarIDs)
}

// Available reports whether c can be used in this build.
func (c Calendar) Available() bool {
	return c == ISO8601 || (c.Valid() && calendarDataBundled)
}

// CalendarFromIdentifier resolves an identifier case-insensitively.
func CalendarFromIdentifier(id string) (Calendar, error) {
	lower := strings.ToLower(id)
	if lower == "gregorian" {
		lower = "gregory"
	}
	for i, name := range calendarIDs {
		if lower == name {
			c := Calendar(i)
			if !c.Available() {
				return 0, errors.New(errors.PhaseResolve, errors.KindInvalidIdentifier).
					Value(id).Detail("calendar %q requires bundled calendar data", id).Build()
			}
			return c, nil
		}
	}
	return 0, errors.UnknownCalendar(id)
}

// checkCalendar validates a tag received from outside the engine.
func checkCalendar(c Calendar) error {
	if !c.Valid() {
		return errors.New(errors.PhaseResolve, errors.KindInvalidIdentifier).
			Value(uint8(c)).Detail("unknown calendar tag %d", uint8(c)).Build()
	}
	if !c.Available() {
		return errors.New(errors.PhaseResolve, errors.KindInvalidIdentifier).
			Value(c.Identifier()).Detail("calendar %q requires bundled calendar data", c.Identifier()).Build()
	}
	return nil
}

const (
	copticEpochRD   = 103_605
	ethiopicEpochRD = 2_796
	unixEpochRD     = 719_163
)

func (c Calendar) isoFamily() bool {
	return c <= ROC
}

func (c Calendar) yearOffset() int64 {
	switch c {
	case Buddhist:
		return 543
	case ROC:
		return -1911
	}
	return 0
}

func (c Calendar) epochRD() int64 {
	if c == Coptic {
		return copticEpochRD
	}
	return ethiopicEpochRD
}

// calendarDate is a date in the calendar's own year/month/day fields.
type calendarDate struct {
	year, month, day int64
}

func compareCalendarDate(a, b calendarDate) int {
	if a.year != b.year {
		return cmpInt(a.year, b.year)
	}
	if a.month != b.month {
		return cmpInt(a.month, b.month)
	}
	return cmpInt(a.day, b.day)
}

func (c Calendar) monthsPerYear() int64 {
	if c.isoFamily() {
		return 12
	}
	return 13
}

func (c Calendar) inLeapYear(y int64) bool {
	if c.isoFamily() {
		return isLeapYear(y - c.yearOffset())
	}
	return floorMod(y, 4) == 3
}

func (c Calendar) daysInMonth(y, m int64) int64 {
	if c.isoFamily() {
		return isoDaysInMonth(y-c.yearOffset(), m)
	}
	if m < 13 {
		return 30
	}
	if c.inLeapYear(y) {
		return 6
	}
	return 5
}

func (c Calendar) daysInYear(y int64) int64 {
	if c.inLeapYear(y) {
		return 366
	}
	return 365
}

func (c Calendar) epochDays(d calendarDate) int64 {
	if c.isoFamily() {
		return epochDaysFromISO(d.year-c.yearOffset(), d.month, d.day)
	}
	epoch := c.epochRD()
	rd := epoch - 1 + 365*(d.year-1) + floorDiv(d.year, 4) + 30*(d.month-1) + d.day
	return rd - unixEpochRD
}

func (c Calendar) fromEpochDays(days int64) calendarDate {
	if c.isoFamily() {
		y, m, d := isoFromEpochDays(days)
		return calendarDate{year: y + c.yearOffset(), month: m, day: d}
	}
	rd := days + unixEpochRD
	epoch := c.epochRD()
	y := floorDiv(4*(rd-epoch)+1463, 1461)
	start := c.epochDays(calendarDate{year: y, month: 1, day: 1}) + unixEpochRD
	m := floorDiv(rd-start, 30) + 1
	first := c.epochDays(calendarDate{year: y, month: m, day: 1}) + unixEpochRD
	return calendarDate{year: y, month: m, day: rd - first + 1}
}

func (c Calendar) fromISO(d IsoDate) calendarDate {
	if c.isoFamily() {
		return calendarDate{year: int64(d.Year) + c.yearOffset(), month: int64(d.Month), day: int64(d.Day)}
	}
	return c.fromEpochDays(d.EpochDays())
}

func (c Calendar) balanceYearMonth(y, m int64) (int64, int64) {
	n := c.monthsPerYear()
	m--
	return y + floorDiv(m, n), floorMod(m, n) + 1
}

// regulate validates or clamps calendar fields.
func (c Calendar) regulate(y, m, d int64, overflow Overflow) (calendarDate, error) {
	if y < -maxYear || y > maxYear {
		return calendarDate{}, errors.RangeOverflow(errors.PhaseConstruct, "year %d outside supported range", y)
	}
	n := c.monthsPerYear()
	if overflow == Reject {
		if m < 1 || m > n {
			return calendarDate{}, errors.InvalidField(errors.PhaseConstruct, []string{"month"}, m,
				fmt.Sprintf("month must be in 1..%d", n))
		}
		if d < 1 || d > c.daysInMonth(y, m) {
			return calendarDate{}, errors.InvalidField(errors.PhaseConstruct, []string{"day"}, d, "day out of range for month")
		}
		return calendarDate{year: y, month: m, day: d}, nil
	}
	m = clamp(m, 1, n)
	return calendarDate{year: y, month: m, day: clamp(d, 1, c.daysInMonth(y, m))}, nil
}

// dateFromFields converts calendar fields to ISO slots.
func (c Calendar) dateFromFields(y, m, d int64, overflow Overflow) (IsoDate, error) {
	cd, err := c.regulate(y, m, d, overflow)
	if err != nil {
		return IsoDate{}, err
	}
	days := c.epochDays(cd)
	if days < -maxEpochDays || days > maxEpochDays {
		return IsoDate{}, errors.RangeOverflow(errors.PhaseConstruct, "date outside supported range")
	}
	iso := isoDateFromEpochDays(days)
	if !isoDateWithinLimits(iso) {
		return IsoDate{}, errors.RangeOverflow(errors.PhaseConstruct, "date outside supported range")
	}
	return iso, nil
}

// dateDuration holds the calendar components of a duration.
type dateDuration struct {
	years, months, weeks, days int64
}

func (d dateDuration) sign() int {
	for _, v := range [...]int64{d.years, d.months, d.weeks, d.days} {
		if v != 0 {
			return cmpInt(v, 0)
		}
	}
	return 0
}

// dateAdd adds calendar components to an ISO date.
func (c Calendar) dateAdd(date IsoDate, dd dateDuration, overflow Overflow) (IsoDate, error) {
	cd := c.fromISO(date)
	y, m := c.balanceYearMonth(cd.year+dd.years, cd.month+dd.months)
	if y < -maxYear || y > maxYear {
		return IsoDate{}, errors.RangeOverflow(errors.PhaseArithmetic, "date outside supported range")
	}
	reg, err := c.regulate(y, m, cd.day, overflow)
	if err != nil {
		return IsoDate{}, err
	}
	days := c.epochDays(reg) + dd.weeks*7 + dd.days
	if days < -maxEpochDays || days > maxEpochDays {
		return IsoDate{}, errors.RangeOverflow(errors.PhaseArithmetic, "date outside supported range")
	}
	out := isoDateFromEpochDays(days)
	if !isoDateWithinLimits(out) {
		return IsoDate{}, errors.RangeOverflow(errors.PhaseArithmetic, "date outside supported range")
	}
	return out, nil
}

// dateUntil returns the calendar difference two - one, balanced up to largest.
func (c Calendar) dateUntil(one, two IsoDate, largest Unit) dateDuration {
	sign := int64(-compareISODate(one, two))
	if sign == 0 {
		return dateDuration{}
	}
	a, b := c.fromISO(one), c.fromISO(two)
	surpasses := func(y, m, d int64) bool {
		return sign*int64(compareCalendarDate(calendarDate{y, m, d}, b)) > 0
	}
	n := c.monthsPerYear()

	var years, months int64
	if largest == UnitYear {
		cand := b.year - a.year
		if cand != 0 {
			cand -= sign
		}
		for !surpasses(a.year+cand, a.month, a.day) {
			years = cand
			cand += sign
		}
	}
	if largest == UnitYear || largest == UnitMonth {
		cand := (b.year-a.year-years)*n + (b.month - a.month) - sign
		if sign*cand > 0 {
			months = cand
		}
		for {
			next := months + sign
			iy, im := c.balanceYearMonth(a.year+years, a.month+next)
			if surpasses(iy, im, a.day) {
				break
			}
			months = next
		}
	}

	iy, im := c.balanceYearMonth(a.year+years, a.month+months)
	constrained, _ := c.regulate(iy, im, a.day, Constrain)
	days := two.EpochDays() - c.epochDays(constrained)
	var weeks int64
	if largest == UnitWeek {
		weeks = days / 7
		days %= 7
	}
	return dateDuration{years: years, months: months, weeks: weeks, days: days}
}

// CalendarFields is the calendar view of a date.
type CalendarFields struct {
	Year         int32
	Month        uint8
	MonthCode    string
	Day          uint8
	DayOfWeek    uint8
	DayOfYear    uint16
	WeekOfYear   uint8 // 0 when the calendar defines no week numbering
	YearOfWeek   int32
	DaysInWeek   uint8
	DaysInMonth  uint8
	DaysInYear   uint16
	MonthsInYear uint8
	InLeapYear   bool
}

// fields computes the calendar view of an ISO date.
func (c Calendar) fields(date IsoDate) CalendarFields {
	cd := c.fromISO(date)
	days := date.EpochDays()
	first := c.epochDays(calendarDate{year: cd.year, month: 1, day: 1})
	f := CalendarFields{
		Year:         int32(cd.year),
		Month:        uint8(cd.month),
		MonthCode:    fmt.Sprintf("M%02d", cd.month),
		Day:          uint8(cd.day),
		DayOfWeek:    isoDayOfWeek(days),
		DayOfYear:    uint16(days - first + 1),
		DaysInWeek:   7,
		DaysInMonth:  uint8(c.daysInMonth(cd.year, cd.month)),
		DaysInYear:   uint16(c.daysInYear(cd.year)),
		MonthsInYear: uint8(c.monthsPerYear()),
		InLeapYear:   c.inLeapYear(cd.year),
	}
	if c == ISO8601 {
		w, y := isoWeek(date)
		f.WeekOfYear = uint8(w)
		f.YearOfWeek = int32(y)
	}
	return f
}

// isoDayOfWeek returns 1 for Monday through 7 for Sunday.
func isoDayOfWeek(epochDays int64) uint8 {
	return uint8(floorMod(epochDays+3, 7) + 1)
}

func isoWeeksInYear(y int64) int64 {
	p := func(y int64) int64 {
		return floorMod(y+floorDiv(y, 4)-floorDiv(y, 100)+floorDiv(y, 400), 7)
	}
	if p(y) == 4 || p(y-1) == 3 {
		return 53
	}
	return 52
}

// isoWeek returns the ISO 8601 week number and week-numbering year.
func isoWeek(date IsoDate) (int64, int64) {
	y := int64(date.Year)
	days := date.EpochDays()
	doy := days - epochDaysFromISO(y, 1, 1) + 1
	wday := int64(isoDayOfWeek(days))
	week := (doy - wday + 10) / 7
	if week < 1 {
		return isoWeeksInYear(y - 1), y - 1
	}
	if week > isoWeeksInYear(y) {
		return 1, y + 1
	}
	return week, y
}
