package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"crmtable/internal/storage"
)

func newSeedCmd(root *rootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a synthetic customer dataset into a SQLite file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, root)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			db, err := storage.OpenDB(ctx, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			start := time.Now()
			records := storage.Generate(generateOptions(s.cfg))
			if err := db.ReplaceRecords(ctx, records); err != nil {
				s.log.Error().Err(err).Str("db", db.Path()).Msg("seed failed")
				return fmt.Errorf("seed: %w", err)
			}
			s.log.Info().
				Str("db", db.Path()).
				Int("records", len(records)).
				Dur("took", time.Since(start)).
				Msg("database seeded")
			_, err = printer.Fprintf(cmd.OutOrStdout(), "wrote %d customers to %s\n", len(records), db.Path())
			return err
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file (default <user config dir>/crmtable/customers.db)")
	cmd.Flags().IntVar(&root.records, "records", 0, "number of records to generate")
	return cmd
}
