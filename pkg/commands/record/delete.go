package record

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/datastore"
)

func newDeleteCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <subject> <field>",
		Short: "Delete a measurement record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := datastore.NewMeasurementKey(args[0], args[1])
			err := withStore(cmd, cfg, func(ctx context.Context, store datastore.MutableMeasurementStoreV2) error {
				return store.Delete(ctx, key)
			})
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}

			cmd.Printf("Deleted %s\n", key)

			return nil
		},
	}
}
