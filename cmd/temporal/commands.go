package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/wippyai/temporal-capi/capi"
	"github.com/wippyai/temporal-capi/errors"
)

func newParseCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <kind> <text>",
		Short: "Parse a value and print its canonical form and fields",
		Long:  fmt.Sprintf("Parse a value of one of the kinds %v.", kinds),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.parse(args[0], args[1])
			if err != nil {
				return err
			}
			defer a.release(v)
			return a.describe(cmd.OutOrStdout(), v)
		},
	}
	positional(cmd)
	return cmd
}

// positional stops flag parsing at the first argument so values with a
// leading sign (-PT90M, -000001-01-01, -03:00) reach the command intact.
// Flags go before the kind.
func positional(cmd *cobra.Command) {
	cmd.Flags().SetInterspersed(false)
}

// describe prints the canonical form of v followed by its derived fields.
func (a *app) describe(out io.Writer, v value) error {
	text, err := a.format(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)

	f, ok, err := a.fields(v)
	if err != nil {
		return err
	}
	if ok {
		printFields(out, f)
	}
	switch v.kind {
	case kindZoned:
		return a.printZoned(out, v.zoned)
	case kindDuration:
		sign, err := a.surface.DurationSign(v.duration)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  sign          %d\n", sign)
	}
	return nil
}

func (a *app) printZoned(out io.Writer, z capi.Handle) error {
	s := a.surface

	ns, err := s.ZonedDateTimeOffsetNanoseconds(z)
	if err != nil {
		return err
	}
	view, err := s.ZonedDateTimeTimeZone(z)
	if err != nil {
		return err
	}
	id, err := s.TextString(view)
	_ = s.TextRelease(view)
	if err != nil {
		return err
	}
	hours, err := s.ZonedDateTimeHoursInDay(z)
	if err != nil {
		return err
	}
	in, err := s.ZonedDateTimeInstant(z)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  time zone     %s\n", id)
	fmt.Fprintf(out, "  offset        %s\n", time.Duration(ns))
	fmt.Fprintf(out, "  hours in day  %g\n", hours)
	fmt.Fprintf(out, "  epoch         %d.%09d\n", in.Seconds, in.Nanoseconds)
	return nil
}

func newAddCommand(a *app) *cobra.Command {
	var (
		subtract bool
		overflow string
	)
	cmd := &cobra.Command{
		Use:   "add <kind> <value> <duration>",
		Short: "Add a duration to a value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			of, err := lookup("overflow", overflows, overflow)
			if err != nil {
				return err
			}
			v, err := a.parse(args[0], args[1])
			if err != nil {
				return err
			}
			defer a.release(v)
			d, err := a.surface.DurationParse(args[2])
			if err != nil {
				return err
			}

			r, err := a.add(v, d, of, subtract)
			if err != nil {
				return err
			}
			defer a.release(r)
			text, err := a.format(r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&subtract, "subtract", false, "subtract instead of add")
	cmd.Flags().StringVar(&overflow, "overflow", "constrain", "constrain or reject")
	positional(cmd)
	return cmd
}

func (a *app) add(v value, d capi.FlatDuration, of capi.Overflow, subtract bool) (r value, err error) {
	s := a.surface
	r.kind = v.kind
	switch v.kind {
	case kindInstant:
		if subtract {
			r.instant, err = s.InstantSubtract(v.instant, d)
		} else {
			r.instant, err = s.InstantAdd(v.instant, d)
		}
	case kindDate:
		if subtract {
			r.date, err = s.PlainDateSubtract(v.date, d, of)
		} else {
			r.date, err = s.PlainDateAdd(v.date, d, of)
		}
	case kindTime:
		if subtract {
			r.time, err = s.PlainTimeSubtract(v.time, d)
		} else {
			r.time, err = s.PlainTimeAdd(v.time, d)
		}
	case kindDateTime:
		if subtract {
			r.dateTime, err = s.PlainDateTimeSubtract(v.dateTime, d, of)
		} else {
			r.dateTime, err = s.PlainDateTimeAdd(v.dateTime, d, of)
		}
	case kindZoned:
		if subtract {
			r.zoned, err = s.ZonedDateTimeSubtract(v.zoned, d, of)
		} else {
			r.zoned, err = s.ZonedDateTimeAdd(v.zoned, d, of)
		}
	case kindDuration:
		if subtract {
			r.duration, err = s.DurationSubtract(v.duration, d)
		} else {
			r.duration, err = s.DurationAdd(v.duration, d)
		}
	}
	return r, err
}

type roundingFlags struct {
	largest   string
	smallest  string
	mode      string
	increment uint32
}

func (f *roundingFlags) register(cmd *cobra.Command, largest bool) {
	if largest {
		cmd.Flags().StringVar(&f.largest, "largest", "auto", "largest unit")
	}
	cmd.Flags().StringVar(&f.smallest, "smallest", "auto", "smallest unit")
	cmd.Flags().StringVar(&f.mode, "mode", "default", "rounding mode")
	cmd.Flags().Uint32Var(&f.increment, "increment", 1, "rounding increment")
}

func (f *roundingFlags) resolve() (largest, smallest capi.Unit, mode capi.RoundingMode, err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(errors.PhaseRound, errors.KindInvalidRounding, err, "rounding flags")
		}
	}()
	if f.largest != "" {
		if largest, err = lookup("unit", units, f.largest); err != nil {
			return
		}
	}
	if smallest, err = lookup("unit", units, f.smallest); err != nil {
		return
	}
	mode, err = lookup("rounding mode", roundingModes, f.mode)
	return
}

func newUntilCommand(a *app) *cobra.Command {
	var (
		flags roundingFlags
		since bool
	)
	cmd := &cobra.Command{
		Use:   "until <kind> <from> <to>",
		Short: "Compute the duration between two values",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			largest, smallest, mode, err := flags.resolve()
			if err != nil {
				return err
			}
			settings := capi.FlatDifferenceSettings{
				LargestUnit:  largest,
				SmallestUnit: smallest,
				Mode:         mode,
				Increment:    flags.increment,
			}
			x, err := a.parse(args[0], args[1])
			if err != nil {
				return err
			}
			defer a.release(x)
			y, err := a.parse(args[0], args[2])
			if err != nil {
				return err
			}
			defer a.release(y)

			d, err := a.difference(x, y, settings, since)
			if err != nil {
				return err
			}
			text, err := a.surface.DurationFormat(d, a.toString)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().BoolVar(&since, "since", false, "compute from - to instead of to - from")
	positional(cmd)
	return cmd
}

func (a *app) difference(x, y value, settings capi.FlatDifferenceSettings, since bool) (capi.FlatDuration, error) {
	s := a.surface
	switch x.kind {
	case kindInstant:
		if since {
			return s.InstantSince(x.instant, y.instant, settings)
		}
		return s.InstantUntil(x.instant, y.instant, settings)
	case kindDate:
		if since {
			return s.PlainDateSince(x.date, y.date, settings)
		}
		return s.PlainDateUntil(x.date, y.date, settings)
	case kindTime:
		if since {
			return s.PlainTimeSince(x.time, y.time, settings)
		}
		return s.PlainTimeUntil(x.time, y.time, settings)
	case kindDateTime:
		if since {
			return s.PlainDateTimeSince(x.dateTime, y.dateTime, settings)
		}
		return s.PlainDateTimeUntil(x.dateTime, y.dateTime, settings)
	case kindZoned:
		if since {
			return s.ZonedDateTimeSince(x.zoned, y.zoned, settings)
		}
		return s.ZonedDateTimeUntil(x.zoned, y.zoned, settings)
	}
	return capi.FlatDuration{}, unsupported("until", x.kind, "have no difference")
}

func newRoundCommand(a *app) *cobra.Command {
	var (
		flags      roundingFlags
		relativeTo string
	)
	cmd := &cobra.Command{
		Use:   "round <kind> <value>",
		Short: "Round a value to a unit and increment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			largest, smallest, mode, err := flags.resolve()
			if err != nil {
				return err
			}
			v, err := a.parse(args[0], args[1])
			if err != nil {
				return err
			}
			defer a.release(v)

			s := a.surface
			o := capi.FlatRoundingOptions{SmallestUnit: smallest, Mode: mode, Increment: flags.increment}
			r := value{kind: v.kind}
			switch v.kind {
			case kindInstant:
				r.instant, err = s.InstantRound(v.instant, o)
			case kindTime:
				r.time, err = s.PlainTimeRound(v.time, o)
			case kindDateTime:
				r.dateTime, err = s.PlainDateTimeRound(v.dateTime, o)
			case kindZoned:
				r.zoned, err = s.ZonedDateTimeRound(v.zoned, o)
			case kindDuration:
				do := capi.FlatDurationRoundOptions{
					LargestUnit:  largest,
					SmallestUnit: smallest,
					Mode:         mode,
					Increment:    flags.increment,
				}
				if relativeTo != "" {
					if do.RelativeTo, err = s.PlainDateParse(relativeTo); err != nil {
						return err
					}
					do.HasRelativeTo = true
				}
				r.duration, err = s.DurationRound(v.duration, do)
			default:
				return unsupported("round", v.kind, "cannot be rounded")
			}
			if err != nil {
				return err
			}
			defer a.release(r)

			text, err := a.format(r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&relativeTo, "relative-to", "", "reference date for calendar units of durations")
	positional(cmd)
	return cmd
}

func newConvertCommand(a *app) *cobra.Command {
	var zone string
	cmd := &cobra.Command{
		Use:   "convert <kind> <value>",
		Short: "Place a value in a time zone",
		Long:  "Convert an instant, date, date-time or zoned value to a zoned date-time in --to.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if zone == "" {
				zone = a.cfg.TimeZone
			}
			v, err := a.parse(args[0], args[1])
			if err != nil {
				return err
			}
			defer a.release(v)

			s := a.surface
			tz, err := s.TimeZoneFromIdentifier(zone)
			if err != nil {
				return err
			}
			defer s.TimeZoneRelease(tz)

			var z capi.Handle
			switch v.kind {
			case kindInstant:
				z, err = s.InstantToZonedDateTime(v.instant, tz, a.calendar)
			case kindDate:
				z, err = s.PlainDateToZonedDateTime(v.date, tz, nil, a.disambiguation)
			case kindDateTime:
				z, err = s.PlainDateTimeToZonedDateTime(v.dateTime, tz, a.disambiguation)
			case kindZoned:
				z, err = s.ZonedDateTimeWithTimeZone(v.zoned, tz)
			default:
				return unsupported("convert", v.kind, "have no time zone form")
			}
			if err != nil {
				return err
			}
			defer s.ZonedDateTimeRelease(z)

			text, err := s.ZonedDateTimeFormat(z, a.toString)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return a.printZoned(cmd.OutOrStdout(), z)
		},
	}
	cmd.Flags().StringVar(&zone, "to", "", "target time zone (default from config)")
	positional(cmd)
	return cmd
}

func newTransitionsCommand(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "transitions [zone]",
		Short: "List UTC offset transitions of a time zone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.surface
			zone := a.cfg.TimeZone
			if len(args) == 1 {
				zone = args[0]
			}
			tz, err := s.TimeZoneFromIdentifier(zone)
			if err != nil {
				return err
			}
			defer s.TimeZoneRelease(tz)

			start, err := s.InstantNow()
			if err != nil {
				return err
			}
			if from != "" {
				if start, err = s.InstantParse(from); err != nil {
					return err
				}
			}
			end, err := s.InstantAdd(start, capi.FlatDuration{Hours: 366 * 24})
			if err != nil {
				return err
			}
			if to != "" {
				if end, err = s.InstantParse(to); err != nil {
					return err
				}
			}

			list, err := s.TimeZoneTransitions(tz, start, end)
			if err != nil {
				return err
			}
			defer s.TransitionListRelease(list)
			n, err := s.TransitionListLen(list)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if n == 0 {
				fmt.Fprintf(out, "%s: no transitions\n", zone)
				return nil
			}
			for i := uint32(0); i < n; i++ {
				t, err := s.TransitionListAt(list, i)
				if err != nil {
					return err
				}
				at, err := s.InstantFormat(t.At, tz, a.toString)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  %s -> %s\n", at, time.Duration(t.OffsetBefore), time.Duration(t.OffsetAfter))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start instant (default now)")
	cmd.Flags().StringVar(&to, "to", "", "end instant (default one year after start)")
	return cmd
}

// unsupported rejects a value kind the command has no operation for.
func unsupported(command, kind, what string) error {
	return errors.InvalidArgument(errors.PhaseBoundary, []string{command, "kind"},
		fmt.Sprintf("%s values %s", kind, what))
}
