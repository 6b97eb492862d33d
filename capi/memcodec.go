package capi

import (
	temporalcapi "github.com/wippyai/temporal-capi"
	"github.com/wippyai/temporal-capi/errors"
)

// reader decodes one flat record from linear memory. The first failed
// access sticks; later reads return zero values.
type reader struct {
	mem  temporalcapi.Memory
	err  error
	info Layout
	base uint32
}

func newReader(mem temporalcapi.Memory, ptr uint32, info Layout, what string) *reader {
	r := &reader{mem: mem, base: ptr, info: info}
	r.err = checkSpan(mem, ptr, info, what)
	return r
}

func checkSpan(mem temporalcapi.Memory, ptr uint32, info Layout, what string) error {
	if ptr == 0 {
		return errors.InvalidArgument(errors.PhaseBoundary, []string{what}, "null pointer")
	}
	if info.Align > 1 && ptr%info.Align != 0 {
		return errors.New(errors.PhaseBoundary, errors.KindInvalidArgument).Path(what).Value(ptr).
			Detail("pointer %#x not aligned to %d", ptr, info.Align).Build()
	}
	if s, ok := mem.(temporalcapi.MemorySizer); ok {
		if uint64(ptr)+uint64(info.Size) > uint64(s.Size()) {
			return errors.New(errors.PhaseBoundary, errors.KindInvalidArgument).Path(what).Value(ptr).
				Detail("record of %d bytes at %#x exceeds memory of %d bytes", info.Size, ptr, s.Size()).Build()
		}
	}
	return nil
}

func (r *reader) at(name string) uint32 {
	return r.base + r.info.Offset(name)
}

func (r *reader) sub(name string, info Layout) *reader {
	return &reader{mem: r.mem, err: r.err, base: r.at(name), info: info}
}

func (r *reader) join(sub *reader) {
	if r.err == nil {
		r.err = sub.err
	}
}

func (r *reader) u8(name string) uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.mem.ReadU8(r.at(name))
	r.err = err
	return v
}

func (r *reader) u16(name string) uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.mem.ReadU16(r.at(name))
	r.err = err
	return v
}

func (r *reader) u32(name string) uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.mem.ReadU32(r.at(name))
	r.err = err
	return v
}

func (r *reader) u64(name string) uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.mem.ReadU64(r.at(name))
	r.err = err
	return v
}

func (r *reader) s32(name string) int32 { return int32(r.u32(name)) }
func (r *reader) s64(name string) int64 { return int64(r.u64(name)) }

// boolean rejects bytes other than 0 and 1.
func (r *reader) boolean(name string) bool {
	v := r.u8(name)
	if v > 1 && r.err == nil {
		r.err = errors.InvalidArgument(errors.PhaseMarshal, []string{name}, "bool byte must be 0 or 1")
	}
	return v == 1
}

// writer encodes one flat record into a scratch buffer so that a failed
// write leaves caller memory untouched.
type writer struct {
	buf  []byte
	info Layout
}

func newWriter(info Layout) *writer {
	return &writer{buf: make([]byte, info.Size), info: info}
}

func (w *writer) put(off uint32, v uint64, n int) {
	for i := 0; i < n; i++ {
		w.buf[int(off)+i] = byte(v >> (8 * i))
	}
}

func (w *writer) u8(name string, v uint8)   { w.put(w.info.Offset(name), uint64(v), 1) }
func (w *writer) u16(name string, v uint16) { w.put(w.info.Offset(name), uint64(v), 2) }
func (w *writer) u32(name string, v uint32) { w.put(w.info.Offset(name), uint64(v), 4) }
func (w *writer) u64(name string, v uint64) { w.put(w.info.Offset(name), v, 8) }
func (w *writer) s32(name string, v int32)  { w.u32(name, uint32(v)) }
func (w *writer) s64(name string, v int64)  { w.u64(name, uint64(v)) }

func (w *writer) boolean(name string, v bool) {
	var b uint8
	if v {
		b = 1
	}
	w.u8(name, b)
}

func (w *writer) sub(name string, info Layout, fill func(*writer)) {
	s := newWriter(info)
	fill(s)
	copy(w.buf[w.info.Offset(name):], s.buf)
}

func (w *writer) flush(mem temporalcapi.Memory, ptr uint32, what string) error {
	if err := checkSpan(mem, ptr, w.info, what); err != nil {
		return err
	}
	return mem.Write(ptr, w.buf)
}

func decodeInstant(r *reader) FlatInstant {
	return FlatInstant{Seconds: r.s64("seconds"), Nanoseconds: r.s32("nanoseconds")}
}

func encodeInstant(w *writer, f FlatInstant) {
	w.s64("seconds", f.Seconds)
	w.s32("nanoseconds", f.Nanoseconds)
}

func decodePlainDate(r *reader) FlatPlainDate {
	return FlatPlainDate{
		Year:     r.s32("year"),
		Month:    r.u8("month"),
		Day:      r.u8("day"),
		Calendar: Calendar(r.u8("calendar")),
	}
}

func encodePlainDate(w *writer, f FlatPlainDate) {
	w.s32("year", f.Year)
	w.u8("month", f.Month)
	w.u8("day", f.Day)
	w.u8("calendar", uint8(f.Calendar))
}

func decodePlainTime(r *reader) FlatPlainTime {
	return FlatPlainTime{
		Hour:        r.u8("hour"),
		Minute:      r.u8("minute"),
		Second:      r.u8("second"),
		Millisecond: r.u16("millisecond"),
		Microsecond: r.u16("microsecond"),
		Nanosecond:  r.u16("nanosecond"),
	}
}

func encodePlainTime(w *writer, f FlatPlainTime) {
	w.u8("hour", f.Hour)
	w.u8("minute", f.Minute)
	w.u8("second", f.Second)
	w.u16("millisecond", f.Millisecond)
	w.u16("microsecond", f.Microsecond)
	w.u16("nanosecond", f.Nanosecond)
}

var durationFields = [...]string{
	"years", "months", "weeks", "days", "hours", "minutes",
	"seconds", "milliseconds", "microseconds", "nanoseconds",
}

func durationSlots(f *FlatDuration) [10]*int64 {
	return [10]*int64{&f.Years, &f.Months, &f.Weeks, &f.Days, &f.Hours, &f.Minutes,
		&f.Seconds, &f.Milliseconds, &f.Microseconds, &f.Nanoseconds}
}

// ReadInstant decodes a FlatInstant at ptr.
func ReadInstant(mem temporalcapi.Memory, ptr uint32) (FlatInstant, error) {
	r := newReader(mem, ptr, instantLayout, "instant")
	f := decodeInstant(r)
	return f, r.err
}

// WriteInstant encodes f at ptr.
func WriteInstant(mem temporalcapi.Memory, ptr uint32, f FlatInstant) error {
	w := newWriter(instantLayout)
	encodeInstant(w, f)
	return w.flush(mem, ptr, "instant")
}

func ReadPlainDate(mem temporalcapi.Memory, ptr uint32) (FlatPlainDate, error) {
	r := newReader(mem, ptr, plainDateLayout, "plainDate")
	f := decodePlainDate(r)
	return f, r.err
}

func WritePlainDate(mem temporalcapi.Memory, ptr uint32, f FlatPlainDate) error {
	w := newWriter(plainDateLayout)
	encodePlainDate(w, f)
	return w.flush(mem, ptr, "plainDate")
}

func ReadPlainTime(mem temporalcapi.Memory, ptr uint32) (FlatPlainTime, error) {
	r := newReader(mem, ptr, plainTimeLayout, "plainTime")
	f := decodePlainTime(r)
	return f, r.err
}

func WritePlainTime(mem temporalcapi.Memory, ptr uint32, f FlatPlainTime) error {
	w := newWriter(plainTimeLayout)
	encodePlainTime(w, f)
	return w.flush(mem, ptr, "plainTime")
}

func ReadPlainDateTime(mem temporalcapi.Memory, ptr uint32) (FlatPlainDateTime, error) {
	r := newReader(mem, ptr, plainDateTimeLayout, "plainDateTime")
	d := r.sub("date", plainDateLayout)
	t := r.sub("time", plainTimeLayout)
	f := FlatPlainDateTime{Date: decodePlainDate(d), Time: decodePlainTime(t)}
	r.join(d)
	r.join(t)
	return f, r.err
}

func WritePlainDateTime(mem temporalcapi.Memory, ptr uint32, f FlatPlainDateTime) error {
	w := newWriter(plainDateTimeLayout)
	w.sub("date", plainDateLayout, func(s *writer) { encodePlainDate(s, f.Date) })
	w.sub("time", plainTimeLayout, func(s *writer) { encodePlainTime(s, f.Time) })
	return w.flush(mem, ptr, "plainDateTime")
}

func ReadDuration(mem temporalcapi.Memory, ptr uint32) (FlatDuration, error) {
	r := newReader(mem, ptr, durationLayout, "duration")
	var f FlatDuration
	for i, slot := range durationSlots(&f) {
		*slot = r.s64(durationFields[i])
	}
	return f, r.err
}

func WriteDuration(mem temporalcapi.Memory, ptr uint32, f FlatDuration) error {
	w := newWriter(durationLayout)
	for i, slot := range durationSlots(&f) {
		w.s64(durationFields[i], *slot)
	}
	return w.flush(mem, ptr, "duration")
}

func WriteDateFields(mem temporalcapi.Memory, ptr uint32, f FlatDateFields) error {
	w := newWriter(dateFieldsLayout)
	w.s32("year", f.Year)
	w.u8("month", f.Month)
	w.u8("day", f.Day)
	w.u8("day-of-week", f.DayOfWeek)
	w.u8("week-of-year", f.WeekOfYear)
	w.u16("day-of-year", f.DayOfYear)
	w.u16("days-in-year", f.DaysInYear)
	w.s32("year-of-week", f.YearOfWeek)
	w.u8("days-in-week", f.DaysInWeek)
	w.u8("days-in-month", f.DaysInMonth)
	w.u8("months-in-year", f.MonthsInYear)
	w.boolean("in-leap-year", f.InLeapYear)
	w.u32("month-code", f.MonthCode)
	return w.flush(mem, ptr, "dateFields")
}

func ReadDateFields(mem temporalcapi.Memory, ptr uint32) (FlatDateFields, error) {
	r := newReader(mem, ptr, dateFieldsLayout, "dateFields")
	f := FlatDateFields{
		Year:         r.s32("year"),
		Month:        r.u8("month"),
		Day:          r.u8("day"),
		DayOfWeek:    r.u8("day-of-week"),
		WeekOfYear:   r.u8("week-of-year"),
		DayOfYear:    r.u16("day-of-year"),
		DaysInYear:   r.u16("days-in-year"),
		YearOfWeek:   r.s32("year-of-week"),
		DaysInWeek:   r.u8("days-in-week"),
		DaysInMonth:  r.u8("days-in-month"),
		MonthsInYear: r.u8("months-in-year"),
		InLeapYear:   r.boolean("in-leap-year"),
		MonthCode:    r.u32("month-code"),
	}
	return f, r.err
}

// ReadRoundingOptions decodes options at ptr; ptr 0 yields the defaults.
func ReadRoundingOptions(mem temporalcapi.Memory, ptr uint32) (FlatRoundingOptions, error) {
	if ptr == 0 {
		return FlatRoundingOptions{}, nil
	}
	r := newReader(mem, ptr, roundingLayout, "roundingOptions")
	f := FlatRoundingOptions{
		SmallestUnit: Unit(r.u8("smallest-unit")),
		Mode:         RoundingMode(r.u8("rounding-mode")),
		Increment:    r.u32("increment"),
	}
	return f, r.err
}

func WriteRoundingOptions(mem temporalcapi.Memory, ptr uint32, f FlatRoundingOptions) error {
	w := newWriter(roundingLayout)
	w.u8("smallest-unit", uint8(f.SmallestUnit))
	w.u8("rounding-mode", uint8(f.Mode))
	w.u32("increment", f.Increment)
	return w.flush(mem, ptr, "roundingOptions")
}

// ReadDifferenceSettings decodes settings at ptr; ptr 0 yields the defaults.
func ReadDifferenceSettings(mem temporalcapi.Memory, ptr uint32) (FlatDifferenceSettings, error) {
	if ptr == 0 {
		return FlatDifferenceSettings{}, nil
	}
	r := newReader(mem, ptr, differenceLayout, "differenceSettings")
	f := FlatDifferenceSettings{
		LargestUnit:  Unit(r.u8("largest-unit")),
		SmallestUnit: Unit(r.u8("smallest-unit")),
		Mode:         RoundingMode(r.u8("rounding-mode")),
		Increment:    r.u32("increment"),
	}
	return f, r.err
}

func WriteDifferenceSettings(mem temporalcapi.Memory, ptr uint32, f FlatDifferenceSettings) error {
	w := newWriter(differenceLayout)
	w.u8("largest-unit", uint8(f.LargestUnit))
	w.u8("smallest-unit", uint8(f.SmallestUnit))
	w.u8("rounding-mode", uint8(f.Mode))
	w.u32("increment", f.Increment)
	return w.flush(mem, ptr, "differenceSettings")
}

func ReadDurationRoundOptions(mem temporalcapi.Memory, ptr uint32) (FlatDurationRoundOptions, error) {
	if ptr == 0 {
		return FlatDurationRoundOptions{}, nil
	}
	r := newReader(mem, ptr, durationRoundLayout, "durationRoundOptions")
	f := FlatDurationRoundOptions{
		LargestUnit:   Unit(r.u8("largest-unit")),
		SmallestUnit:  Unit(r.u8("smallest-unit")),
		Mode:          RoundingMode(r.u8("rounding-mode")),
		HasRelativeTo: r.boolean("has-relative-to"),
		Increment:     r.u32("increment"),
	}
	rel := r.sub("relative-to", plainDateLayout)
	f.RelativeTo = decodePlainDate(rel)
	r.join(rel)
	return f, r.err
}

func WriteDurationRoundOptions(mem temporalcapi.Memory, ptr uint32, f FlatDurationRoundOptions) error {
	w := newWriter(durationRoundLayout)
	w.u8("largest-unit", uint8(f.LargestUnit))
	w.u8("smallest-unit", uint8(f.SmallestUnit))
	w.u8("rounding-mode", uint8(f.Mode))
	w.boolean("has-relative-to", f.HasRelativeTo)
	w.u32("increment", f.Increment)
	w.sub("relative-to", plainDateLayout, func(s *writer) { encodePlainDate(s, f.RelativeTo) })
	return w.flush(mem, ptr, "durationRoundOptions")
}

// ReadToStringOptions decodes options at ptr; ptr 0 yields the defaults.
func ReadToStringOptions(mem temporalcapi.Memory, ptr uint32) (FlatToStringOptions, error) {
	if ptr == 0 {
		return FlatToStringOptions{}, nil
	}
	r := newReader(mem, ptr, toStringLayout, "toStringOptions")
	f := FlatToStringOptions{
		Precision:    PrecisionKind(r.u8("precision")),
		Digits:       r.u8("digits"),
		Mode:         RoundingMode(r.u8("rounding-mode")),
		Calendar:     CalendarDisplay(r.u8("calendar-display")),
		Offset:       OffsetDisplay(r.u8("offset-display")),
		TimeZoneName: TimeZoneNameDisplay(r.u8("time-zone-name-display")),
	}
	return f, r.err
}

func WriteToStringOptions(mem temporalcapi.Memory, ptr uint32, f FlatToStringOptions) error {
	w := newWriter(toStringLayout)
	w.u8("precision", uint8(f.Precision))
	w.u8("digits", f.Digits)
	w.u8("rounding-mode", uint8(f.Mode))
	w.u8("calendar-display", uint8(f.Calendar))
	w.u8("offset-display", uint8(f.Offset))
	w.u8("time-zone-name-display", uint8(f.TimeZoneName))
	return w.flush(mem, ptr, "toStringOptions")
}

func ReadTransition(mem temporalcapi.Memory, ptr uint32) (FlatTransition, error) {
	r := newReader(mem, ptr, transitionLayout, "transition")
	at := r.sub("at", instantLayout)
	f := FlatTransition{
		At:           decodeInstant(at),
		OffsetBefore: r.s64("offset-before"),
		OffsetAfter:  r.s64("offset-after"),
	}
	r.join(at)
	return f, r.err
}

func WriteTransition(mem temporalcapi.Memory, ptr uint32, f FlatTransition) error {
	w := newWriter(transitionLayout)
	w.sub("at", instantLayout, func(s *writer) { encodeInstant(s, f.At) })
	w.s64("offset-before", f.OffsetBefore)
	w.s64("offset-after", f.OffsetAfter)
	return w.flush(mem, ptr, "transition")
}

func ReadStatus(mem temporalcapi.Memory, ptr uint32) (FlatStatus, error) {
	r := newReader(mem, ptr, statusLayout, "status")
	f := FlatStatus{
		Code:        r.u32("code"),
		ParseOffset: r.s32("parse-offset"),
		Required:    r.u32("required"),
		Message:     r.u32("message"),
	}
	return f, r.err
}

func WriteStatus(mem temporalcapi.Memory, ptr uint32, f FlatStatus) error {
	w := newWriter(statusLayout)
	w.u32("code", f.Code)
	w.s32("parse-offset", f.ParseOffset)
	w.u32("required", f.Required)
	w.u32("message", f.Message)
	return w.flush(mem, ptr, "status")
}

// WriteU32 and friends store scalar results at out pointers.

func WriteU32(mem temporalcapi.Memory, ptr uint32, v uint32, what string) error {
	if ptr == 0 {
		return errors.InvalidArgument(errors.PhaseBoundary, []string{what}, "null pointer")
	}
	return mem.WriteU32(ptr, v)
}

func WriteU64(mem temporalcapi.Memory, ptr uint32, v uint64, what string) error {
	if ptr == 0 {
		return errors.InvalidArgument(errors.PhaseBoundary, []string{what}, "null pointer")
	}
	return mem.WriteU64(ptr, v)
}
