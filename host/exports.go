package host

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/temporal-capi/capi"
)

var (
	instantArg       = record(capi.ReadInstant)
	plainDateArg     = record(capi.ReadPlainDate)
	plainTimeArg     = record(capi.ReadPlainTime)
	plainDateTimeArg = record(capi.ReadPlainDateTime)
	durationArg      = record(capi.ReadDuration)
	roundingArg      = record(capi.ReadRoundingOptions)
	differenceArg    = record(capi.ReadDifferenceSettings)
	durationRoundArg = record(capi.ReadDurationRoundOptions)
	toStringArg      = record(capi.ReadToStringOptions)

	optionalPlainDate = optional(capi.ReadPlainDate)
	optionalPlainTime = optional(capi.ReadPlainTime)

	calendarArg       = enum[capi.Calendar]("calendar")
	unitArg           = enum[capi.Unit]("unit")
	overflowArg       = enum[capi.Overflow]("overflow")
	disambiguationArg = enum[capi.Disambiguation]("disambiguation")
	offsetOptionArg   = enum[capi.OffsetOption]("offset")

	instantOut       = recordOut(capi.WriteInstant)
	plainDateOut     = recordOut(capi.WritePlainDate)
	plainTimeOut     = recordOut(capi.WritePlainTime)
	plainDateTimeOut = recordOut(capi.WritePlainDateTime)
	durationOut      = recordOut(capi.WriteDuration)
	dateFieldsOut    = recordOut(capi.WriteDateFields)
	transitionOut    = recordOut(capi.WriteTransition)
	calendarOut      = enumOut[capi.Calendar]()
)

// formatted registers name with a caller buffer and name_text with an
// owned Text result.
func formatted(exports map[string]binding, name string, buffer, text binding) {
	exports[name] = buffer
	exports[name+"_text"] = text
}

// exports builds the export table over s.
func exports(s *capi.Surface) map[string]binding {
	e := map[string]binding{}

	// Calendar
	e["calendar_from_identifier"] = fn1(textArg, s.CalendarFromIdentifier, calendarOut)
	e["calendar_from_locale"] = fn1(textArg, s.CalendarFromLocale, calendarOut)
	formatted(e, "calendar_identifier",
		fn1(calendarArg, s.CalendarIdentifier, textOut),
		fn1(calendarArg, s.CalendarIdentifier, textHandleOut))

	// TimeZone
	zoneID := func(tz capi.Handle) (string, error) {
		v, err := s.TimeZoneIdentifier(tz)
		if err != nil {
			return "", err
		}
		defer s.TextRelease(v)
		return s.TextString(v)
	}
	e["time_zone_from_identifier"] = fn1(textArg, s.TimeZoneFromIdentifier, handleOut)
	e["time_zone_from_offset"] = fn1(s64Arg, s.TimeZoneFromOffset, handleOut)
	e["time_zone_identifier"] = fn1(handleArg, zoneID, textOut)
	e["time_zone_identifier_view"] = fn1(handleArg, s.TimeZoneIdentifier, handleOut)
	e["time_zone_offset_at"] = fn2(handleArg, instantArg, s.TimeZoneOffsetAt, s64Out)
	e["time_zone_next_transition"] = transitionSearch(s.TimeZoneNextTransition)
	e["time_zone_previous_transition"] = transitionSearch(s.TimeZonePreviousTransition)
	e["time_zone_transitions"] = fn3(handleArg, instantArg, instantArg, s.TimeZoneTransitions, handleOut)
	e["time_zone_release"] = do1(handleArg, s.TimeZoneRelease)
	e["transition_list_len"] = fn1(handleArg, s.TransitionListLen, u32Out)
	e["transition_list_at"] = fn2(handleArg, u32Arg, s.TransitionListAt, transitionOut)
	e["transition_list_release"] = do1(handleArg, s.TransitionListRelease)

	// Instant
	e["instant_from_epoch_seconds"] = fn2(s64Arg, s32Arg, s.InstantFromEpochSeconds, instantOut)
	e["instant_from_epoch_milliseconds"] = fn1(s64Arg, s.InstantFromEpochMilliseconds, instantOut)
	e["instant_epoch_milliseconds"] = fn1(instantArg, s.InstantEpochMilliseconds, s64Out)
	e["instant_now"] = fn0(s.InstantNow, instantOut)
	e["instant_add"] = fn2(instantArg, durationArg, s.InstantAdd, instantOut)
	e["instant_subtract"] = fn2(instantArg, durationArg, s.InstantSubtract, instantOut)
	e["instant_until"] = fn3(instantArg, instantArg, differenceArg, s.InstantUntil, durationOut)
	e["instant_since"] = fn3(instantArg, instantArg, differenceArg, s.InstantSince, durationOut)
	e["instant_round"] = fn2(instantArg, roundingArg, s.InstantRound, instantOut)
	e["instant_compare"] = fn2(instantArg, instantArg, s.InstantCompare, s32Out)
	e["instant_parse"] = fn1(textArg, s.InstantParse, instantOut)
	formatted(e, "instant_format",
		fn3(instantArg, handleArg, toStringArg, s.InstantFormat, textOut),
		fn3(instantArg, handleArg, toStringArg, s.InstantFormat, textHandleOut))
	e["instant_to_zoned_date_time"] = fn3(instantArg, handleArg, calendarArg, s.InstantToZonedDateTime, handleOut)

	// PlainDate
	e["plain_date_new"] = plainDateNew(s)
	e["plain_date_fields"] = fn1(plainDateArg, s.PlainDateFields, dateFieldsOut)
	e["plain_date_add"] = fn3(plainDateArg, durationArg, overflowArg, s.PlainDateAdd, plainDateOut)
	e["plain_date_subtract"] = fn3(plainDateArg, durationArg, overflowArg, s.PlainDateSubtract, plainDateOut)
	e["plain_date_until"] = fn3(plainDateArg, plainDateArg, differenceArg, s.PlainDateUntil, durationOut)
	e["plain_date_since"] = fn3(plainDateArg, plainDateArg, differenceArg, s.PlainDateSince, durationOut)
	e["plain_date_compare"] = fn2(plainDateArg, plainDateArg, s.PlainDateCompare, s32Out)
	e["plain_date_with_calendar"] = fn2(plainDateArg, calendarArg, s.PlainDateWithCalendar, plainDateOut)
	e["plain_date_to_plain_date_time"] = fn2(plainDateArg, plainTimeArg, s.PlainDateToPlainDateTime, plainDateTimeOut)
	e["plain_date_to_zoned_date_time"] = fn4(plainDateArg, handleArg, optionalPlainTime, disambiguationArg,
		s.PlainDateToZonedDateTime, handleOut)
	e["plain_date_parse"] = fn1(textArg, s.PlainDateParse, plainDateOut)
	formatted(e, "plain_date_format",
		fn2(plainDateArg, toStringArg, s.PlainDateFormat, textOut),
		fn2(plainDateArg, toStringArg, s.PlainDateFormat, textHandleOut))

	// PlainTime
	e["plain_time_new"] = plainTimeNew(s)
	e["plain_time_add"] = fn2(plainTimeArg, durationArg, s.PlainTimeAdd, plainTimeOut)
	e["plain_time_subtract"] = fn2(plainTimeArg, durationArg, s.PlainTimeSubtract, plainTimeOut)
	e["plain_time_until"] = fn3(plainTimeArg, plainTimeArg, differenceArg, s.PlainTimeUntil, durationOut)
	e["plain_time_since"] = fn3(plainTimeArg, plainTimeArg, differenceArg, s.PlainTimeSince, durationOut)
	e["plain_time_round"] = fn2(plainTimeArg, roundingArg, s.PlainTimeRound, plainTimeOut)
	e["plain_time_compare"] = fn2(plainTimeArg, plainTimeArg, s.PlainTimeCompare, s32Out)
	e["plain_time_parse"] = fn1(textArg, s.PlainTimeParse, plainTimeOut)
	formatted(e, "plain_time_format",
		fn2(plainTimeArg, toStringArg, s.PlainTimeFormat, textOut),
		fn2(plainTimeArg, toStringArg, s.PlainTimeFormat, textHandleOut))

	// PlainDateTime
	e["plain_date_time_new"] = plainDateTimeNew(s)
	e["plain_date_time_fields"] = fn1(plainDateTimeArg, s.PlainDateTimeFields, dateFieldsOut)
	e["plain_date_time_add"] = fn3(plainDateTimeArg, durationArg, overflowArg, s.PlainDateTimeAdd, plainDateTimeOut)
	e["plain_date_time_subtract"] = fn3(plainDateTimeArg, durationArg, overflowArg, s.PlainDateTimeSubtract, plainDateTimeOut)
	e["plain_date_time_until"] = fn3(plainDateTimeArg, plainDateTimeArg, differenceArg, s.PlainDateTimeUntil, durationOut)
	e["plain_date_time_since"] = fn3(plainDateTimeArg, plainDateTimeArg, differenceArg, s.PlainDateTimeSince, durationOut)
	e["plain_date_time_round"] = fn2(plainDateTimeArg, roundingArg, s.PlainDateTimeRound, plainDateTimeOut)
	e["plain_date_time_compare"] = fn2(plainDateTimeArg, plainDateTimeArg, s.PlainDateTimeCompare, s32Out)
	e["plain_date_time_with_calendar"] = fn2(plainDateTimeArg, calendarArg, s.PlainDateTimeWithCalendar, plainDateTimeOut)
	e["plain_date_time_to_zoned_date_time"] = fn3(plainDateTimeArg, handleArg, disambiguationArg,
		s.PlainDateTimeToZonedDateTime, handleOut)
	e["plain_date_time_parse"] = fn1(textArg, s.PlainDateTimeParse, plainDateTimeOut)
	formatted(e, "plain_date_time_format",
		fn2(plainDateTimeArg, toStringArg, s.PlainDateTimeFormat, textOut),
		fn2(plainDateTimeArg, toStringArg, s.PlainDateTimeFormat, textHandleOut))

	// ZonedDateTime
	e["zoned_date_time_from_plain_date_time"] = fn3(plainDateTimeArg, handleArg, disambiguationArg,
		s.ZonedDateTimeFromPlainDateTime, handleOut)
	e["zoned_date_time_from_instant"] = fn3(instantArg, handleArg, calendarArg, s.ZonedDateTimeFromInstant, handleOut)
	e["zoned_date_time_parse"] = fn3(textArg, disambiguationArg, offsetOptionArg, s.ZonedDateTimeParse, handleOut)
	e["zoned_date_time_instant"] = fn1(handleArg, s.ZonedDateTimeInstant, instantOut)
	e["zoned_date_time_plain_date_time"] = fn1(handleArg, s.ZonedDateTimePlainDateTime, plainDateTimeOut)
	e["zoned_date_time_fields"] = fn1(handleArg, s.ZonedDateTimeFields, dateFieldsOut)
	e["zoned_date_time_offset_nanoseconds"] = fn1(handleArg, s.ZonedDateTimeOffsetNanoseconds, s64Out)
	e["zoned_date_time_time_zone"] = fn1(handleArg, s.ZonedDateTimeTimeZone, handleOut)
	e["zoned_date_time_hours_in_day"] = fn1(handleArg, s.ZonedDateTimeHoursInDay, f64Out)
	e["zoned_date_time_start_of_day"] = fn1(handleArg, s.ZonedDateTimeStartOfDay, handleOut)
	e["zoned_date_time_add"] = fn3(handleArg, durationArg, overflowArg, s.ZonedDateTimeAdd, handleOut)
	e["zoned_date_time_subtract"] = fn3(handleArg, durationArg, overflowArg, s.ZonedDateTimeSubtract, handleOut)
	e["zoned_date_time_until"] = fn3(handleArg, handleArg, differenceArg, s.ZonedDateTimeUntil, durationOut)
	e["zoned_date_time_since"] = fn3(handleArg, handleArg, differenceArg, s.ZonedDateTimeSince, durationOut)
	e["zoned_date_time_round"] = fn2(handleArg, roundingArg, s.ZonedDateTimeRound, handleOut)
	e["zoned_date_time_compare"] = fn2(handleArg, handleArg, s.ZonedDateTimeCompare, s32Out)
	e["zoned_date_time_with_time_zone"] = fn2(handleArg, handleArg, s.ZonedDateTimeWithTimeZone, handleOut)
	e["zoned_date_time_with_calendar"] = fn2(handleArg, calendarArg, s.ZonedDateTimeWithCalendar, handleOut)
	formatted(e, "zoned_date_time_format",
		fn2(handleArg, toStringArg, s.ZonedDateTimeFormat, textOut),
		fn2(handleArg, toStringArg, s.ZonedDateTimeFormat, textHandleOut))
	e["zoned_date_time_release"] = do1(handleArg, s.ZonedDateTimeRelease)

	// Duration
	e["duration_new"] = fn1(durationArg, s.DurationNew, durationOut)
	e["duration_sign"] = fn1(durationArg, s.DurationSign, s32Out)
	e["duration_negate"] = fn1(durationArg, s.DurationNegate, durationOut)
	e["duration_abs"] = fn1(durationArg, s.DurationAbs, durationOut)
	e["duration_add"] = fn2(durationArg, durationArg, s.DurationAdd, durationOut)
	e["duration_subtract"] = fn2(durationArg, durationArg, s.DurationSubtract, durationOut)
	e["duration_round"] = fn2(durationArg, durationRoundArg, s.DurationRound, durationOut)
	e["duration_total"] = fn3(durationArg, unitArg, optionalPlainDate, s.DurationTotal, f64Out)
	e["duration_compare"] = fn3(durationArg, durationArg, optionalPlainDate, s.DurationCompare, s32Out)
	e["duration_parse"] = fn1(textArg, s.DurationParse, durationOut)
	formatted(e, "duration_format",
		fn2(durationArg, toStringArg, s.DurationFormat, textOut),
		fn2(durationArg, toStringArg, s.DurationFormat, textHandleOut))

	// Text
	e["text_len"] = fn1(handleArg, s.TextLen, u32Out)
	e["text_copy"] = fn1(handleArg, s.TextString, textOut)
	e["text_view"] = fn1(handleArg, s.TextView, handleOut)
	e["text_release"] = do1(handleArg, s.TextRelease)

	return e
}

// transitionSearch binds next/previous transition:
// (tz, at_ptr, out_ptr, found_ptr). out_ptr is written only when found.
func transitionSearch(op func(capi.Handle, capi.FlatInstant) (capi.FlatTransition, bool, error)) binding {
	return binding{
		params: []api.ValueType{i32, i32, i32, i32},
		fn: func(c *call) error {
			at, err := capi.ReadInstant(c.mem, c.u32(1))
			if err != nil {
				return err
			}
			t, found, err := op(capi.Handle(c.u32(0)), at)
			if err != nil {
				return err
			}
			if found {
				if err := capi.WriteTransition(c.mem, c.u32(2), t); err != nil {
					return err
				}
			}
			var flag uint32
			if found {
				flag = 1
			}
			return capi.WriteU32(c.mem, c.u32(3), flag, "found")
		},
	}
}

var (
	monthArg  = small[uint8]("month", 0xff)
	dayArg    = small[uint8]("day", 0xff)
	hourArg   = small[uint8]("hour", 0xff)
	minuteArg = small[uint8]("minute", 0xff)
	secondArg = small[uint8]("second", 0xff)
	subArg    = small[uint16]("subsecond", 0xffff)
)

// plainDateNew: (year, month, day, calendar, out_ptr).
func plainDateNew(s *capi.Surface) binding {
	return fn4(s32Arg, monthArg, dayArg, calendarArg, s.PlainDateNew, plainDateOut)
}

// plainTimeNew: (hour, minute, second, ms, us, ns, out_ptr).
func plainTimeNew(s *capi.Surface) binding {
	return binding{
		params: []api.ValueType{i32, i32, i32, i32, i32, i32, i32},
		fn: func(c *call) error {
			var v [6]uint32
			if err := gather(c, v[:], hourArg, minuteArg, secondArg); err != nil {
				return err
			}
			t, err := s.PlainTimeNew(uint8(v[0]), uint8(v[1]), uint8(v[2]), uint16(v[3]), uint16(v[4]), uint16(v[5]))
			if err != nil {
				return err
			}
			return plainTimeOut.put(c, 6, t)
		},
	}
}

// plainDateTimeNew: (year, month, day, hour, minute, second, ms, us, ns,
// calendar, out_ptr).
func plainDateTimeNew(s *capi.Surface) binding {
	return binding{
		params: []api.ValueType{i32, i32, i32, i32, i32, i32, i32, i32, i32, i32, i32},
		fn: func(c *call) error {
			year := c.s32(0)
			var v [8]uint32
			c2 := &call{ctx: c.ctx, mem: c.mem, s: c.s, stack: c.stack[1:]}
			if err := gather(c2, v[:], monthArg, dayArg, hourArg, minuteArg, secondArg); err != nil {
				return err
			}
			cal, err := calendarArg.get(c, 9)
			if err != nil {
				return err
			}
			dt, err := s.PlainDateTimeNew(year, uint8(v[0]), uint8(v[1]), uint8(v[2]), uint8(v[3]), uint8(v[4]),
				uint16(v[5]), uint16(v[6]), uint16(v[7]), cal)
			if err != nil {
				return err
			}
			return plainDateTimeOut.put(c, 10, dt)
		},
	}
}

// gather reads len(dst) small integer slots: the leading ones through the
// u8 args given, the rest as u16 subsecond fields.
func gather(c *call, dst []uint32, bytes ...arg[uint8]) error {
	for i := range dst {
		if i < len(bytes) {
			v, err := bytes[i].get(c, i)
			if err != nil {
				return err
			}
			dst[i] = uint32(v)
			continue
		}
		v, err := subArg.get(c, i)
		if err != nil {
			return err
		}
		dst[i] = uint32(v)
	}
	return nil
}
