// Package commands provides modular CLI command packages for measurement CLIs.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory (recommended for most use cases):
//
//	cmds := commands.New(lggr, registry)
//	unitCmds, err := cmds.Units()
//	recordCmd, err := cmds.Record(record.StoreConfig{Driver: "postgres", DSN: dsn})
//	app.AddCommand(append(unitCmds, recordCmd)...)
//
// 2. Via direct package imports (for advanced DI/testing):
//
//	import "github.com/smartcontractkit/measurement-framework/pkg/commands/record"
//
//	cmd, err := record.NewCommand(record.Config{
//	    Logger:   lggr,
//	    Registry: registry,
//	    Deps:     record.Deps{StoreOpener: myOpener}, // inject fakes for testing
//	})
package commands

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/record"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/units"
	"github.com/smartcontractkit/measurement-framework/pkg/logger"
)

// Commands provides a factory for creating CLI commands with shared configuration.
// The logger and the registry are set once and reused across all commands.
type Commands struct {
	lggr     logger.Logger
	registry *measure.Registry
}

// New creates a new Commands factory. A nil registry is replaced by measure.Default().
func New(lggr logger.Logger, registry *measure.Registry) *Commands {
	if registry == nil {
		registry = measure.Default()
	}

	return &Commands{lggr: lggr, registry: registry}
}

// Units creates the convert, parse and units commands.
func (c *Commands) Units() ([]*cobra.Command, error) {
	return units.NewCommands(units.Config{
		Logger:   c.lggr,
		Registry: c.registry,
	})
}

// Record creates the record command group. store is the default store of its subcommands.
//
// Usage:
//
//	cmds := commands.New(lggr, registry)
//	cmd, err := cmds.Record(record.StoreConfig{Driver: "json", DSN: "records.json"})
func (c *Commands) Record(store record.StoreConfig) (*cobra.Command, error) {
	return record.NewCommand(record.Config{
		Logger:   c.lggr,
		Registry: c.registry,
		Store:    store,
	})
}
