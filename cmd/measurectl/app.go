package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smartcontractkit/measurement-framework/pkg/commands"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/record"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/text"
	"github.com/smartcontractkit/measurement-framework/pkg/config"
)

const (
	defaultConfigPath = "measurement.yml"
	defaultRecordFile = "measurements.json"
)

var rootLong = text.LongDesc(`
	measurectl converts measurements between units and keeps measurement records.

	The measures, the logger and the default record store are read from the config
	file named by --config. Without the file the built-in measures are used and the
	MEASUREMENT_* environment variables are read instead.
`)

// newApp builds the root command. The config file is read before the commands are built because
// it supplies the registry and the store defaults.
func newApp(args []string) (*cobra.Command, error) {
	path := configPath(args)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	lggr, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry(lggr)
	if err != nil {
		return nil, err
	}

	store := record.StoreConfig{
		Driver: cfg.Store.Driver,
		DSN:    cfg.Store.DSN,
		Table:  cfg.Store.Table,
	}
	if store.Driver == "" {
		store.Driver = record.DriverJSON
		store.DSN = defaultRecordFile
	}

	cmds := commands.New(lggr, reg)
	unitCmds, err := cmds.Units()
	if err != nil {
		return nil, err
	}
	recordCmd, err := cmds.Record(store)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:          "measurectl",
		Short:        "Measurement conversion and records",
		Long:         rootLong,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", defaultConfigPath, "Path to the config file")
	root.AddCommand(unitCmds...)
	root.AddCommand(recordCmd)
	root.SetArgs(args)

	return root, nil
}

// configPath picks the --config flag out of args, ignoring every other flag.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", defaultConfigPath, "")
	fs.BoolP("help", "h", false, "")

	if err := fs.Parse(args); err != nil {
		return defaultConfigPath
	}

	return *path
}
