// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
	"github.com/Darigraye/MEPHI-practice/internal/users/login"
)

var deriveLoginCmd = &cobra.Command{
	Use:   "derive-login",
	Short: "Print the login the next registration with this name would get",
	Long: `Derives the initials prefix from the transliterated name and looks up the
highest suffix already issued, deleted accounts included. Nothing is reserved.`,
	Args: cobra.NoArgs,
	RunE: runDeriveLogin,
}

var (
	firstNameFlag  string
	lastNameFlag   string
	patronymicFlag string
)

// suffixSource opens the store the login suffixes are read from. The
// returned func releases it.
var suffixSource = func(ctx context.Context, cmd *cobra.Command) (login.SuffixSource, func(), error) {
	pool, err := openPool(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewUserRepository(pool), pool.Close, nil
}

func init() {
	deriveLoginCmd.Flags().StringVar(&firstNameFlag, "first", "", "First name")
	deriveLoginCmd.Flags().StringVar(&lastNameFlag, "last", "", "Last name")
	deriveLoginCmd.Flags().StringVar(&patronymicFlag, "patronymic", "", "Patronymic")
	rootCmd.AddCommand(deriveLoginCmd)
}

func runDeriveLogin(cmd *cobra.Command, args []string) error {
	name := login.Name{First: firstNameFlag, Last: lastNameFlag, Patronymic: patronymicFlag}

	// Reject bad names before touching the database.
	if _, err := login.Prefix(name); err != nil {
		return err
	}

	ctx := cmd.Context()
	source, release, err := suffixSource(ctx, cmd)
	if err != nil {
		return err
	}
	defer release()

	derived, err := login.NewGenerator(source, nil).Derive(ctx, name)
	if err != nil {
		return fmt.Errorf("derive login: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), derived)
	return nil
}
