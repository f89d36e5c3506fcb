package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long:  `Delete permanently removes a note from the collection.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		found, err := service.DeleteNote(context.Background(), id)
		if err != nil {
			return fmt.Errorf("deleting note: %w", err)
		}
		if !found {
			return fmt.Errorf("note not found: %s", id)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s\n", id)
		return nil
	},
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to delete all notes without --yes")
		}

		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		if err := service.ClearAll(context.Background()); err != nil {
			return fmt.Errorf("clearing notes: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "All notes deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm deletion of all notes")
}
