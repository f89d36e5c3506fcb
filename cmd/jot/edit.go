package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the title and/or content of a note",
	Long:  `Edit replaces the fields given as flags and refreshes the note's update time.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") {
			return fmt.Errorf("nothing to edit: pass --title and/or --content")
		}

		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		ctx := context.Background()
		note, found, err := service.GetNote(ctx, id)
		if err != nil {
			return fmt.Errorf("reading note: %w", err)
		}
		if !found {
			return fmt.Errorf("note not found: %s", id)
		}

		title, content := note.Title, note.Content
		if cmd.Flags().Changed("title") {
			title = editTitle
		}
		if cmd.Flags().Changed("content") {
			content = editContent
		}

		if _, found, err = service.EditNote(ctx, id, title, content); err != nil {
			return fmt.Errorf("updating note: %w", err)
		}
		if !found {
			return fmt.Errorf("note not found: %s", id)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
}
