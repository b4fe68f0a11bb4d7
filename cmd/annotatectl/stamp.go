// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Darigraye/MEPHI-practice/internal/versioning"
)

var stampCmd = &cobra.Command{
	Use:   "stamp <field>...",
	Short: "Print the change stamp for business fields",
	Long: `Hashes the fields in the given order exactly as stored rows are hashed.
Numbers and YYYY-MM-DD dates render the same typed or as text, so a row can
be checked by passing its columns in hash order.`,
	Example: "  annotatectl stamp 42 Anna Smirnova Ivanovna 1990-01-01 0",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runStamp,
}

var stampJSONFlag bool

func init() {
	stampCmd.Flags().BoolVar(&stampJSONFlag, "json", false, "Print the full record as JSON")
	rootCmd.AddCommand(stampCmd)
}

func runStamp(cmd *cobra.Command, args []string) error {
	fields := make([]any, len(args))
	for i, arg := range args {
		fields[i] = arg
	}

	record := versioning.Stamp(time.Now().UTC(), fields...)

	if !stampJSONFlag {
		fmt.Fprintln(cmd.OutOrStdout(), record.ContentHash)
		return nil
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(record)
}
