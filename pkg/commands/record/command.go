package record

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/flags"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/text"
	"github.com/smartcontractkit/measurement-framework/pkg/logger"
)

var (
	recordShort = "Measurement record operations"

	recordLong = text.LongDesc(`
		Commands for storing and querying measurement records.

		A record is one measurement of a subject's field, e.g. the height of tower-7. Records
		are kept in a postgres or ramsql table, or in a JSON file with the json driver.
	`)
)

// Config holds the configuration for record commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Registry parses and resolves measurements. Required.
	Registry *measure.Registry

	// Store is the default store, overridable with the --driver, --dsn and --table flags.
	Store StoreConfig

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps Deps
}

// Validate checks that all required configuration fields are set.
func (c Config) Validate() error {
	var missing []string

	if c.Logger == nil {
		missing = append(missing, "Logger")
	}
	if c.Registry == nil {
		missing = append(missing, "Registry")
	}

	if len(missing) > 0 {
		return errors.New("record.Config: missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

// NewCommand creates a new record command with all subcommands.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.deps()

	cmd := &cobra.Command{
		Use:   "record",
		Short: recordShort,
		Long:  recordLong,
	}

	cmd.AddCommand(newAddCmd(cfg))
	cmd.AddCommand(newGetCmd(cfg))
	cmd.AddCommand(newListCmd(cfg))
	cmd.AddCommand(newDeleteCmd(cfg))

	flags.Store(cmd, cfg.Store.Driver, cfg.Store.DSN, cfg.Store.Table)

	return cmd, nil
}

// storeFlags reads the store flags shared by every subcommand.
func storeFlags(cmd *cobra.Command) StoreConfig {
	return StoreConfig{
		Driver: flags.MustString(cmd.Flags().GetString("driver")),
		DSN:    flags.MustString(cmd.Flags().GetString("dsn")),
		Table:  flags.MustString(cmd.Flags().GetString("table")),
	}
}
