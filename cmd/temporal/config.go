package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	configFileName = "temporal"
	configFileType = "yaml"

	cfgKeyCalendar  = "calendar"
	cfgKeyTimeZone  = "time_zone"
	cfgKeyPrecision = "precision"
	cfgKeyLogLevel  = "log_level"
)

// config is the resolved temporal.yaml, environment and flag settings.
type config struct {
	Calendar  string
	TimeZone  string
	Precision string
	LogLevel  string
}

// loadConfig reads temporal.yaml from the explicit path, or from the working
// directory and the user config directory. A missing file is not an error.
func loadConfig(v *viper.Viper, path string) (config, error) {
	v.SetDefault(cfgKeyCalendar, "iso8601")
	v.SetDefault(cfgKeyTimeZone, "UTC")
	v.SetDefault(cfgKeyPrecision, "auto")
	v.SetDefault(cfgKeyLogLevel, "warn")

	v.SetEnvPrefix("TEMPORAL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "temporal"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return config{
		Calendar:  v.GetString(cfgKeyCalendar),
		TimeZone:  v.GetString(cfgKeyTimeZone),
		Precision: v.GetString(cfgKeyPrecision),
		LogLevel:  v.GetString(cfgKeyLogLevel),
	}, nil
}

// newLogger builds a console logger on stderr at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
