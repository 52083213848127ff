// Package config loads the rolling configuration from defaults, an
// optional YAML file, DAYROLL_* environment variables and command line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/davidvella/dayroll/rolling"
	"github.com/davidvella/dayroll/window"
	"github.com/davidvella/dayroll/window/strategy/composite"
	"github.com/davidvella/dayroll/window/strategy/count"
	"github.com/davidvella/dayroll/window/strategy/duration"
	"github.com/davidvella/dayroll/window/strategy/startofday"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "DAYROLL"

const (
	StrategyStartOfDay = "startofday"
	StrategyDuration   = "duration"
	StrategyCount      = "count"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	// Strategy selects the indexer: startofday, duration or count.
	Strategy string `mapstructure:"strategy"`
	// Offset is how far back from each row the start of day is taken.
	Offset time.Duration `mapstructure:"offset"`
	// DayLength is the fixed length of a day.
	DayLength time.Duration `mapstructure:"dayLength"`
	// Window is the size of a duration window.
	Window time.Duration `mapstructure:"window"`
	// Size is the number of rows in a count window.
	Size int `mapstructure:"size"`
	// MaxRows additionally caps time based windows to this many rows when positive.
	MaxRows     int    `mapstructure:"maxRows"`
	Closure     string `mapstructure:"closure"`
	MinPeriods  int    `mapstructure:"minPeriods"`
	Center      bool   `mapstructure:"center"`
	Concurrency int    `mapstructure:"concurrency"`
}

// flagNames maps configuration keys to the flags that may override them.
var flagNames = map[string]string{
	"strategy":    "strategy",
	"offset":      "offset",
	"dayLength":   "day-length",
	"window":      "window",
	"size":        "size",
	"maxRows":     "max-rows",
	"closure":     "closure",
	"minPeriods":  "min-periods",
	"center":      "center",
	"concurrency": "concurrency",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("strategy", StrategyStartOfDay)
	v.SetDefault("offset", 24*time.Hour)
	v.SetDefault("dayLength", 24*time.Hour)
	v.SetDefault("window", 24*time.Hour)
	v.SetDefault("size", 1)
	v.SetDefault("maxRows", 0)
	v.SetDefault("closure", string(window.DefaultClosure))
	v.SetDefault("minPeriods", 0)
	v.SetDefault("center", false)
	v.SetDefault("concurrency", 8)
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		panic(fmt.Errorf("failed to unmarshal default configuration, %w", err))
	}
	return conf
}

// Load reads the configuration. path may be empty, flags may be nil; only
// flags that were set on the command line override other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load configuration file. %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagNames {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q. %w", name, err)
			}
		}
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("failed unmarshal configuration file. %w", err)
	}
	conf.Strategy = strings.ToLower(strings.TrimSpace(conf.Strategy))

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs error
	invalid := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	switch c.Strategy {
	case StrategyStartOfDay:
		if c.Offset < 0 {
			invalid("offset must not be negative, got %s", c.Offset)
		}
		if c.DayLength <= 0 {
			invalid("day length must be positive, got %s", c.DayLength)
		}
	case StrategyDuration:
		if c.Window <= 0 {
			invalid("window must be positive, got %s", c.Window)
		}
	case StrategyCount:
		if c.Size <= 0 {
			invalid("size must be positive, got %d", c.Size)
		}
	default:
		invalid("unknown strategy %q", c.Strategy)
	}

	if c.Center && c.Strategy != StrategyCount {
		invalid("center is only supported by the %s strategy", StrategyCount)
	}
	if _, err := window.ParseClosure(c.Closure); err != nil {
		invalid("unsupported closure %q", c.Closure)
	}
	if c.MaxRows < 0 {
		invalid("max rows must not be negative, got %d", c.MaxRows)
	}
	if c.MinPeriods < 0 {
		invalid("min periods must not be negative, got %d", c.MinPeriods)
	}
	if c.Concurrency <= 0 {
		invalid("concurrency must be positive, got %d", c.Concurrency)
	}

	return errs
}

// Indexer builds the window indexer described by the configuration.
func (c *Config) Indexer() (window.Indexer, error) {
	var idx window.Indexer
	switch c.Strategy {
	case StrategyStartOfDay:
		idx = startofday.New(c.Offset, startofday.WithDayLength(int64(c.DayLength)))
	case StrategyDuration:
		idx = duration.New(c.Window)
	case StrategyCount:
		return count.New(c.Size), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}
	if c.MaxRows > 0 {
		idx = composite.New(idx, count.New(c.MaxRows))
	}
	return idx, nil
}

// Rolling builds a rolling engine from the configuration.
func (c *Config) Rolling() (*rolling.Rolling, error) {
	idx, err := c.Indexer()
	if err != nil {
		return nil, err
	}
	closure, err := window.ParseClosure(c.Closure)
	if err != nil {
		return nil, err
	}
	return rolling.New(idx,
		rolling.WithClosure(closure),
		rolling.WithMinPeriods(c.MinPeriods),
		rolling.WithCenter(c.Center),
		rolling.WithConcurrency(c.Concurrency),
	)
}

// RegisterFlags adds a flag for every configuration key, using the
// defaults as flag defaults.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String("strategy", d.Strategy, "Window strategy: startofday, duration or count")
	flags.Duration("offset", d.Offset, "Look back this far before flooring to the start of a day")
	flags.Duration("day-length", d.DayLength, "Length of a day")
	flags.Duration("window", d.Window, "Window size for the duration strategy")
	flags.Int("size", d.Size, "Rows per window for the count strategy")
	flags.Int("max-rows", d.MaxRows, "Cap time based windows to this many rows, 0 for no cap")
	flags.String("closure", d.Closure, "Included window edges: left, right, both or neither")
	flags.Int("min-periods", d.MinPeriods, "Minimum observations for a window to produce a value")
	flags.Bool("center", d.Center, "Center count windows on each row")
	flags.Int("concurrency", d.Concurrency, "Groups computed at once")
}
