package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jonathan/resume-paginator/internal/config"
	"github.com/jonathan/resume-paginator/internal/pagination"
	"github.com/spf13/cobra"
)

// resolveConfig loads the --config file if given, applies explicitly set flags
// and environment variables, fills defaults and validates the result.
// Flags win over the file; the file wins over the environment.
func resolveConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		loggerFromContext(cmd.Context()).Debug("loaded config", "path", configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("topology") {
		cfg.Topology, _ = flags.GetString("topology")
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL, _ = flags.GetString("db-url")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			cfg.Port = p
		}
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Topology: string(pagination.TopologySidebar),
		Port:     config.DefaultPort,
	})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
