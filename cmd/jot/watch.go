package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	jotlifecycle "github.com/aretw0/jot/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made to the notes by other processes",
	Long: `Watch follows the storage and prints an event each time another process
modifies or deletes the collection. Only the fs adapter supports watching.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx)
		if err != nil {
			return fmt.Errorf("watching notes: %w", err)
		}

		source := jotlifecycle.NewSource(events)
		if err := source.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		slog.Info("watching for changes (Ctrl+C to stop)")
		for e := range source.Events() {
			count := "?"
			if notes, err := service.ListNotes(context.Background()); err == nil {
				count = fmt.Sprint(len(notes))
			}
			fmt.Fprintf(out, "%s (%s notes)\n", e, count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
