package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes; title matches rank above content matches",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		notes, err := service.SearchNotes(context.Background(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("searching notes: %w", err)
		}
		return printNotes(cmd.OutOrStdout(), notes, searchJSON)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
