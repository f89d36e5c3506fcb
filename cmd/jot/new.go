package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	newTitle   string
	newContent string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		id, err := service.CreateNote(context.Background(), service.NewNote(newTitle, newContent))
		if err != nil {
			return fmt.Errorf("creating note: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Note title")
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Note content")
}
