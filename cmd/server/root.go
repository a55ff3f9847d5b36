package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/scent-api/internal/config"
	"github.com/phrazzld/scent-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Fragrance storefront API server",
		Long: "storefront serves the fragrance storefront API. Without a subcommand it\n" +
			"behaves like \"storefront serve\".",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"path to a YAML config file (default ./config.yaml if present)")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newLoginCmd(),
		newCatalogCmd(),
	)
	return cmd
}

// loadConfig loads the configuration and installs the configured logger
// as the process default.
func loadConfig(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"remote_login", cfg.Auth.RemoteLoginURL != "")
	return cfg, log, nil
}
