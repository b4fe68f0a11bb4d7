// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Maintain refresh sessions",
}

var sessionsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired refresh sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionsPurge,
}

func init() {
	sessionsCmd.AddCommand(sessionsPurgeCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsPurge(cmd *cobra.Command, args []string) error {
	pool, err := openPool(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer pool.Close()

	removed, err := auth.NewSessionRepository(pool).DeleteExpired(cmd.Context())
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired sessions\n", removed)
	return nil
}
