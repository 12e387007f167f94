package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/datastore"
	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/flags"
)

// withStore opens the store selected by the command flags, runs fn and closes the store.
func withStore(cmd *cobra.Command, cfg Config, fn func(ctx context.Context, store datastore.MutableMeasurementStoreV2) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sc := storeFlags(cmd)
	s, err := cfg.deps().StoreOpener(ctx, sc, cfg.Registry, cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", sc.Driver, err)
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	return fn(ctx, s.Measurements())
}

// printRecords writes records as a table or as a JSON array.
func printRecords(cmd *cobra.Command, format string, records []datastore.MeasurementRecord) error {
	out := cmd.OutOrStdout()
	if format == flags.FormatJSON {
		b, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))

		return err
	}

	table := tablewriter.NewWriter(out)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Record", "Measurement", "Labels"})
	for _, r := range records {
		table.Append([]string{r.Key().String(), quantityText(r.Quantity), r.Labels.String()})
	}
	table.Render()

	return nil
}

// quantityText prints a quantity with compound units written with a slash.
func quantityText(q measure.Quantity) string {
	if q == nil {
		return "-"
	}

	return strings.ReplaceAll(q.String(), measure.CompoundSeparator, "/")
}

// compound rewrites a slash separated unit into the registry key form, e.g. mi/hr to mi__hr.
func compound(unit string) string {
	return strings.ReplaceAll(unit, "/", measure.CompoundSeparator)
}
