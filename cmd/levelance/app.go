package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/levelance/internal/cli"
	"github.com/aretw0/levelance/internal/config"
	"github.com/aretw0/levelance/internal/logging"
	"github.com/aretw0/levelance/pkg/ports"
)

// app holds what a command resolves before doing its work.
type app struct {
	cfg     config.Config
	strict  bool
	logger  *slog.Logger
	cache   ports.ResultCache
	closeFn func() error
}

// loadApp reads the config file and layers the persistent flags over it.
func loadApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("no-color") {
		cfg.NoColor, _ = cmd.Flags().GetBool("no-color")
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict, _ = cmd.Flags().GetBool("strict")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	cache, closeFn, err := cli.CreateCache(cmd.Context(), cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		strict:  cfg.Strict,
		logger:  logger,
		cache:   cache,
		closeFn: closeFn,
	}, nil
}

// Close releases the cache connection.
func (a *app) Close() {
	if err := a.closeFn(); err != nil {
		a.logger.Warn("Failed to close cache", "err", err)
	}
}
