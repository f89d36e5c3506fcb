package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

const timeLayout = "2006-01-02 15:04"

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		notes, err := service.ListNotes(context.Background())
		if err != nil {
			return fmt.Errorf("listing notes: %w", err)
		}
		return printNotes(cmd.OutOrStdout(), notes, listJSON)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}

// printNotes writes one line per note, or an indented JSON array.
func printNotes(w io.Writer, notes []core.Note, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(notes)
	}

	for _, note := range notes {
		title := note.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", note.ID, note.UpdatedAt.Local().Format(timeLayout), title)
	}
	return nil
}
