// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Darigraye/MEPHI-practice/internal/platform/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or inspect schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrateDown,
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	Args:  cobra.NoArgs,
	RunE:  runMigrateVersion,
}

var downStepsFlag int

func init() {
	migrateDownCmd.Flags().IntVar(&downStepsFlag, "steps", 1, "Number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, newLogger(cmd))
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	if downStepsFlag < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, downStepsFlag, newLogger(cmd))
}

func runMigrateVersion(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	version, dirty, err := migration.CurrentVersion(cfg.DatabaseURL, cfg.MigrationPath, newLogger(cmd))
	if err != nil {
		return err
	}

	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d (%s)\n", version, state)
	return nil
}
