package record

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/datastore"
	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/flags"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/text"
)

var (
	getShort = "Show a measurement record"

	getExample = text.Examples(`
		# Show the height of a tower
		measurectl record get tower-7 height

		# Show it in feet
		measurectl record get tower-7 height --unit ft
	`)
)

type getFlags struct {
	key    datastore.MeasurementKey
	unit   string
	format string
}

func newGetCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "get <subject> <field>",
		Short:   getShort,
		Example: getExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := getFlags{
				key:    datastore.NewMeasurementKey(args[0], args[1]),
				unit:   flags.MustString(cmd.Flags().GetString("unit")),
				format: flags.MustString(cmd.Flags().GetString("format")),
			}

			return runGet(cmd, cfg, f)
		},
	}

	flags.Format(cmd)
	cmd.Flags().StringP("unit", "u", "", "Display the measurement in this unit")

	return cmd
}

func runGet(cmd *cobra.Command, cfg Config, f getFlags) error {
	var record datastore.MeasurementRecord
	err := withStore(cmd, cfg, func(ctx context.Context, store datastore.MutableMeasurementStoreV2) error {
		var err error
		record, err = store.Get(ctx, f.key)

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", f.key, err)
	}

	if f.unit != "" {
		v, ok := record.Value()
		if !ok {
			return fmt.Errorf("%s: %w", f.key, measure.ErrNotConvertible)
		}
		if record.Quantity, err = v.WithUnit(compound(f.unit)); err != nil {
			return err
		}
	}

	return printRecords(cmd, f.format, []datastore.MeasurementRecord{record})
}
