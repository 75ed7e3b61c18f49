// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"reposteria/internal/database"
)

func newMigrateCmd() *cobra.Command {
	var status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg.DSN())
			if err != nil {
				slog.Error("failed to connect to database", "error", err)
				return err
			}
			defer db.Close()

			if status {
				return database.Status(db)
			}
			return database.Migrate(db)
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "print the migration status instead of migrating")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample categories, products and recipes into an empty catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg.DSN())
			if err != nil {
				slog.Error("failed to connect to database", "error", err)
				return err
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return err
			}
			return database.Seed(db)
		},
	}
}
