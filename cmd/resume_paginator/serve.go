package main

import (
	"fmt"

	"github.com/jonathan/resume-paginator/internal/pagination"
	"github.com/jonathan/resume-paginator/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server exposing POST /paginate. When a database is configured
(--db-url or DATABASE_URL) the authenticated document routes are served too, and
JWT_SECRET must be set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, configPath)
			if err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Port:        cfg.Port,
				DatabaseURL: cfg.DatabaseURL,
				Topology:    pagination.Topology(cfg.Topology),
				Budget:      cfg.Budget(),
				Logger:      loggerFromContext(cmd.Context()),
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().IntP("port", "p", 0, "Port to listen on (default 8080, or PORT env var)")
	cmd.Flags().String("db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().StringP("topology", "t", "", "Default layout topology: sidebar or single-column")

	return cmd
}
