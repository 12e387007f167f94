package record

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/datastore"
	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/flags"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/text"
)

var (
	addShort = "Store a measurement record"

	addLong = text.LongDesc(`
		Stores the measurement of a subject's field. The measurement is written as
		"<number> <unit>" and its measure is guessed from the unit unless --measure names
		one. Without a measurement the field is stored with no value.

		Adding a record whose subject and field are already stored fails unless --upsert
		is given.
	`)

	addExample = text.Examples(`
		# Store the height of a tower
		measurectl record add tower-7 height 120 m --label surveyed

		# Replace an existing record
		measurectl record add tower-7 height 0.125 km --upsert

		# Store into a postgres table
		measurectl record add truck-1 payload 2.5 tonne --driver postgres --dsn postgres://localhost/measurements
	`)
)

type addFlags struct {
	subject     string
	field       string
	measurement string
	measures    []string
	labels      []string
	upsert      bool
}

func newAddCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <subject> <field> [measurement]",
		Short:   addShort,
		Long:    addLong,
		Example: addExample,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			upsert, _ := cmd.Flags().GetBool("upsert")
			f := addFlags{
				subject:     args[0],
				field:       args[1],
				measurement: strings.Join(args[2:], " "),
				measures:    flags.MustStringSlice(cmd.Flags().GetStringSlice("measure")),
				labels:      flags.MustStringSlice(cmd.Flags().GetStringSlice("label")),
				upsert:      upsert,
			}

			return runAdd(cmd, cfg, f)
		},
	}

	flags.Measure(cmd)
	cmd.Flags().StringSliceP("label", "l", nil, "Labels to attach to the record")
	cmd.Flags().Bool("upsert", false, "Replace the record if it is already stored")

	return cmd
}

func runAdd(cmd *cobra.Command, cfg Config, f addFlags) error {
	record := datastore.MeasurementRecord{
		Subject: f.subject,
		Field:   f.field,
		Labels:  datastore.NewLabelSet(f.labels...),
	}
	if f.measurement != "" {
		v, err := parseMeasurement(cfg.Registry, f.measurement, f.measures)
		if err != nil {
			return err
		}
		record.Quantity = v
	}

	err := withStore(cmd, cfg, func(ctx context.Context, store datastore.MutableMeasurementStoreV2) error {
		if f.upsert {
			return store.Upsert(ctx, record)
		}

		return store.Add(ctx, record)
	})
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", record.Key(), err)
	}

	cfg.Logger.Infow("Stored measurement record", "key", record.Key().String(), "measurement", quantityText(record.Quantity))
	cmd.Printf("Stored %s\n", record.Key())

	return nil
}

// parseMeasurement parses s in the first of the named measures that accepts it, or guesses its
// measure when none is named.
func parseMeasurement(reg *measure.Registry, s string, names []string) (measure.Value, error) {
	if len(names) == 0 {
		return reg.Parse(s)
	}

	var lastErr error
	for _, name := range names {
		v, err := reg.ParseIn(name, s)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}

	return measure.Value{}, lastErr
}
