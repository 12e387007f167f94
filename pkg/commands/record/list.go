package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/datastore"
	"github.com/smartcontractkit/measurement-framework/field"
	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/flags"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/text"
)

var (
	listShort = "List measurement records"

	listLong = text.LongDesc(`
		Lists the stored records ordered by subject and field. Filters combine: a record
		is listed when it passes all of them.

		--min and --max bound the measurement and need --measure, which selects the
		measure the bounds are read in. Records of other measures are left out.
	`)

	listExample = text.Examples(`
		# List every record
		measurectl record list

		# List the surveyed heights taller than 100 m
		measurectl record list --field height --label surveyed --measure Distance --min "100 m"
	`)
)

type listFlags struct {
	subject string
	field   string
	measure string
	labels  []string
	lower   string
	upper   string
	format  string
}

func newListCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   listShort,
		Long:    listLong,
		Example: listExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := listFlags{
				subject: flags.MustString(cmd.Flags().GetString("subject")),
				field:   flags.MustString(cmd.Flags().GetString("field")),
				measure: flags.MustString(cmd.Flags().GetString("measure")),
				labels:  flags.MustStringSlice(cmd.Flags().GetStringSlice("label")),
				lower:   flags.MustString(cmd.Flags().GetString("min")),
				upper:   flags.MustString(cmd.Flags().GetString("max")),
				format:  flags.MustString(cmd.Flags().GetString("format")),
			}

			return runList(cmd, cfg, f)
		},
	}

	flags.Format(cmd)
	cmd.Flags().StringP("subject", "s", "", "Only list records of this subject")
	cmd.Flags().String("field", "", "Only list records of this field")
	cmd.Flags().StringP("measure", "m", "", "Only list records of this measure")
	cmd.Flags().StringSliceP("label", "l", nil, "Only list records carrying all of these labels")
	cmd.Flags().String("min", "", "Lower bound of the measurement, e.g. \"100 m\"")
	cmd.Flags().String("max", "", "Upper bound of the measurement")

	return cmd
}

func runList(cmd *cobra.Command, cfg Config, f listFlags) error {
	filters, err := listFilters(cfg.Registry, f)
	if err != nil {
		return err
	}

	var records []datastore.MeasurementRecord
	err = withStore(cmd, cfg, func(ctx context.Context, store datastore.MutableMeasurementStoreV2) error {
		var err error
		records, err = store.Filter(ctx, filters...)

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	return printRecords(cmd, f.format, records)
}

func listFilters(reg *measure.Registry, f listFlags) ([]datastore.FilterFunc[datastore.MeasurementKey, datastore.MeasurementRecord], error) {
	var filters []datastore.FilterFunc[datastore.MeasurementKey, datastore.MeasurementRecord]
	if f.subject != "" {
		filters = append(filters, datastore.MeasurementBySubject(f.subject))
	}
	if f.field != "" {
		filters = append(filters, datastore.MeasurementByField(f.field))
	}
	if len(f.labels) > 0 {
		filters = append(filters, datastore.MeasurementByLabels(f.labels...))
	}
	if f.measure == "" {
		if f.lower != "" || f.upper != "" {
			return nil, errors.New("--min and --max need --measure")
		}

		return filters, nil
	}

	m, err := reg.Lookup(f.measure)
	if err != nil {
		return nil, err
	}
	filters = append(filters, datastore.MeasurementByMeasure(m.Name()))
	if f.lower == "" && f.upper == "" {
		return filters, nil
	}

	var lo, hi measure.Value
	if f.lower != "" {
		if lo, err = reg.ParseIn(f.measure, f.lower); err != nil {
			return nil, err
		}
	}
	if f.upper != "" {
		if hi, err = reg.ParseIn(f.measure, f.upper); err != nil {
			return nil, err
		}
	}
	rng, err := field.NewRange(m, lo, hi)
	if err != nil {
		return nil, err
	}

	return append(filters, datastore.MeasurementInRange(rng)), nil
}
