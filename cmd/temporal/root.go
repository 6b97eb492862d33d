package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/temporal-capi/capi"
	"github.com/wippyai/temporal-capi/host"
)

// app is the state shared by every subcommand.
type app struct {
	cfg      config
	log      *zap.Logger
	surface  *capi.Surface
	registry *prometheus.Registry

	calendar       capi.Calendar
	toString       capi.FlatToStringOptions
	disambiguation capi.Disambiguation
	offset         capi.OffsetOption

	configPath     string
	metrics        bool
	disambiguateBy string
	offsetBy       string
}

func newRootCommand() *cobra.Command {
	a := &app{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "temporal",
		Short:         "Calendar-aware date-time values across a flat binary interface",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, v)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./temporal.yaml)")
	flags.String("calendar", "", "calendar for parsed dates")
	flags.String("time-zone", "", "default time zone")
	flags.String("precision", "", "fractional second digits: auto, minute or 0-9")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.disambiguateBy, "disambiguation", "compatible", "wall-clock resolution: compatible, earlier, later, reject")
	flags.StringVar(&a.offsetBy, "offset", "reject", "parsed offset handling: use, prefer, ignore, reject")
	flags.BoolVar(&a.metrics, "metrics", false, "print handle metrics after the command")

	_ = v.BindPFlag(cfgKeyCalendar, flags.Lookup("calendar"))
	_ = v.BindPFlag(cfgKeyTimeZone, flags.Lookup("time-zone"))
	_ = v.BindPFlag(cfgKeyPrecision, flags.Lookup("precision"))
	_ = v.BindPFlag(cfgKeyLogLevel, flags.Lookup("log-level"))

	cmd.AddCommand(
		newParseCommand(a),
		newAddCommand(a),
		newUntilCommand(a),
		newRoundCommand(a),
		newConvertCommand(a),
		newTransitionsCommand(a),
		newABICommand(a),
		newPlayCommand(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.log, err = newLogger(cfg.LogLevel); err != nil {
		return err
	}
	capi.SetLogger(a.log)
	host.SetLogger(a.log)

	opts := capi.Options{Logger: a.log}
	if a.metrics {
		a.registry = prometheus.NewRegistry()
		opts.Registerer = a.registry
	}
	if a.surface, err = capi.NewSurface(opts); err != nil {
		return err
	}

	if a.calendar, err = a.surface.CalendarFromIdentifier(cfg.Calendar); err != nil {
		return err
	}
	if a.toString, err = toStringOptions(cfg.Precision); err != nil {
		return err
	}
	if a.disambiguation, err = lookup("disambiguation", disambiguations, a.disambiguateBy); err != nil {
		return err
	}
	if a.offset, err = lookup("offset option", offsetOptions, a.offsetBy); err != nil {
		return err
	}

	a.log.Debug("configured",
		zap.String("command", cmd.Name()),
		zap.String("calendar", cfg.Calendar),
		zap.String("time_zone", cfg.TimeZone),
		zap.String("precision", cfg.Precision),
		zap.String("config", v.ConfigFileUsed()))
	return nil
}

func (a *app) teardown(cmd *cobra.Command) error {
	defer a.log.Sync()
	if a.registry != nil {
		if err := dumpMetrics(cmd.OutOrStdout(), a.registry); err != nil {
			return err
		}
	}
	if live := a.surface.Live(); live != 0 {
		a.log.Warn("handles still live at exit", zap.Int("live", live))
	}
	return a.surface.Close()
}
