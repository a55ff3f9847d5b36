package main

import (
	"fmt"

	"github.com/phrazzld/scent-api/internal/platform/migrations"
	"github.com/phrazzld/scent-api/internal/redact"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or inspect database migrations",
		Long:      "migrate runs the embedded migrations of the configured postgres or sqlite\ndatabase. The command defaults to \"up\".",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{migrations.CommandUp, migrations.CommandDown, migrations.CommandStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := migrations.CommandUp
			if len(args) == 1 {
				command = args[0]
			}

			cfg, log, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.Database.Driver != migrations.DriverPostgres && cfg.Database.Driver != migrations.DriverSQLite {
				return fmt.Errorf("driver %q has no migrations", cfg.Database.Driver)
			}

			db, err := openDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				log.Error("failed to open database", "error", redact.Error(err))
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("failed to close database", "error", err)
				}
			}()

			if err := migrations.Run(cmd.Context(), db, cfg.Database.Driver, command, log); err != nil {
				return err
			}
			version, err := migrations.Version(cmd.Context(), db, cfg.Database.Driver)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
			return nil
		},
	}
}
