package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/smartcontractkit/measurement-framework/datastore/sqlstore"
	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/logger"
)

// EnvPrefix is the prefix of every environment variable read by the config loader.
const EnvPrefix = "MEASUREMENT"

// StoreConfig is the configuration of the measurement store.
//
// WARNING: The DSN may carry database credentials and should not be logged.
type StoreConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"` // postgres, ramsql or json
	DSN    string `mapstructure:"dsn" yaml:"dsn"`       // Secret: the data source name passed to the driver
	Table  string `mapstructure:"table" yaml:"table"`   // The table measurements are kept in
}

// Override registers Measure under Name, e.g. {name: Weight, measure: ShopWeight}. Overrides are a
// list rather than a map because viper folds map keys to lower case.
type Override struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Measure string `mapstructure:"measure" yaml:"measure"`
}

// Config wraps the configuration of the measurement registry, the logger and the store.
type Config struct {
	// The separator between the primary and reference unit labels of bidimensional choices.
	BidimensionalSeparator string `mapstructure:"bidimensional_separator" yaml:"bidimensional_separator"`
	// Definition files of custom measures, loaded in order. Relative paths are resolved against
	// the directory of the config file.
	Definitions []string `mapstructure:"definitions" yaml:"definitions"`
	// Overrides replace the measure registered under a name with another registered measure.
	Overrides []Override  `mapstructure:"overrides" yaml:"overrides"`
	LogLevel  string      `mapstructure:"log_level" yaml:"log_level"`
	Store     StoreConfig `mapstructure:"store" yaml:"store"`

	dir string
}

// Load loads the config from the file path, falling back to env vars if the file does not exist.
// If the file exists, any env vars that are set will override the values loaded from the file.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	dir := ""
	if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		dir = filepath.Dir(filePath)
	}

	return unmarshal(v, dir)
}

// LoadEnv loads the config from the environment variables.
func LoadEnv() (*Config, error) {
	v := viper.New()

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	return unmarshal(v, "")
}

// LoadFile loads the config from a file.
func LoadFile(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return unmarshal(v, filepath.Dir(filePath))
}

func unmarshal(v *viper.Viper, dir string) (*Config, error) {
	cfg := &Config{dir: dir}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var (
	// envBindings maps a config key to the environment variables that can provide its value. The
	// first set variable wins.
	envBindings = map[string][]string{
		"bidimensional_separator": {"MEASUREMENT_BIDIMENSIONAL_SEPARATOR"},
		"definitions":             {"MEASUREMENT_DEFINITIONS"},
		"log_level":               {"MEASUREMENT_LOG_LEVEL", "LOG_LEVEL"},
		"store.driver":            {"MEASUREMENT_STORE_DRIVER"},
		"store.dsn":               {"MEASUREMENT_STORE_DSN", "DATABASE_URL"},
		"store.table":             {"MEASUREMENT_STORE_TABLE"},
	}
)

// bindEnvs binds the environment variables to the viper instance. Overrides are only read from
// files.
func bindEnvs(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}

// Registry builds the measure registry described by the config: the built-in measures, then the
// definition files in order, then the overrides.
func (c *Config) Registry(lggr logger.Logger) (*measure.Registry, error) {
	if lggr == nil {
		lggr = logger.Nop()
	}

	reg := measure.Default()
	if c.BidimensionalSeparator != "" {
		reg.SetSeparator(c.BidimensionalSeparator)
	}

	for _, path := range c.Definitions {
		if !filepath.IsAbs(path) && c.dir != "" {
			path = filepath.Join(c.dir, path)
		}
		loaded, err := reg.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load definitions %s: %w", path, err)
		}
		lggr.Infow("Loaded measure definitions", "path", path, "measures", len(loaded))
	}

	for _, o := range c.Overrides {
		if o.Name == "" {
			return nil, errors.New("override without a name")
		}
		m, err := reg.Lookup(o.Measure)
		if err != nil {
			return nil, fmt.Errorf("override %s: %w", o.Name, err)
		}
		reg.Override(o.Name, m)
		lggr.Debugw("Overrode measure", "name", o.Name, "measure", o.Measure)
	}

	return reg, nil
}

// Logger returns a logger at the configured level.
func (c *Config) Logger() (logger.Logger, error) {
	lc, err := logger.ParseConfig(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}

	return lc.New()
}

// StoreConfig returns the sqlstore configuration resolving measures in reg.
func (c *Config) StoreConfig(reg *measure.Registry, lggr logger.Logger) sqlstore.Config {
	return sqlstore.Config{
		Driver:   c.Store.Driver,
		DSN:      c.Store.DSN,
		Table:    c.Store.Table,
		Registry: reg,
		Logger:   lggr,
	}
}
