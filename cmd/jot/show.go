package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/transfer"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		note, found, err := service.GetNote(context.Background(), id)
		if err != nil {
			return fmt.Errorf("reading note: %w", err)
		}
		if !found {
			return fmt.Errorf("note not found: %s", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id: %s\ncreated: %s\nupdated: %s\n\n",
			note.ID,
			note.CreatedAt.Local().Format(timeLayout),
			note.UpdatedAt.Local().Format(timeLayout),
		)
		fmt.Fprintln(out, transfer.MarkdownOf(note))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
