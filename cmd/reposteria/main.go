// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the reposteria storefront. The serve
// subcommand runs the HTTP server; migrate and seed manage the database;
// browse opens the terminal catalog against a running store.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"reposteria/internal/config"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reposteria",
		Short:         "Bakery supplies storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd(), newBrowseCmd())
	return root
}

// loadConfig reads the configuration and installs the process logger:
// text in development, JSON everywhere else.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return nil, err
	}
	slog.SetDefault(newLogger(cfg, os.Stdout))
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())
	return cfg, nil
}

func newLogger(cfg *config.Config, w *os.File) *slog.Logger {
	level := slog.LevelInfo
	if verbose || cfg.IsDev() {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
