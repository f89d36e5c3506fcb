package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/transfer"
)

var importCmd = &cobra.Command{
	Use:   "import [file|pattern]...",
	Short: "Import notes from files",
	Long: `Import reads .md, .markdown, .txt, .json, .yaml, .yml and .zip files.
Arguments that are not existing files are treated as glob patterns relative to
the current directory (e.g. "notes/**/*.md").`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		ctx := context.Background()
		codec := transfer.NewCodec(service, nil)
		out := cmd.OutOrStdout()

		var results []transfer.FileResult
		for _, arg := range args {
			if _, err := os.Stat(arg); err == nil {
				res, err := codec.ImportFile(ctx, arg)
				results = append(results, transfer.FileResult{Path: arg, Result: res, Err: err})
				continue
			}

			matched, err := codec.ImportGlob(ctx, ".", arg)
			if err != nil {
				return err
			}
			if len(matched) == 0 {
				results = append(results, transfer.FileResult{Path: arg, Err: fmt.Errorf("no such file or match")})
			}
			results = append(results, matched...)
		}

		failed := report(out, results)
		if failed > 0 {
			return fmt.Errorf("%d of %d imports failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// report prints one line per imported file and returns the failure count.
func report(w io.Writer, results []transfer.FileResult) int {
	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", r.Path, r.Err)
		case r.Result.NoteID != "":
			fmt.Fprintf(w, "OK   %s -> %s\n", r.Path, r.Result.NoteID)
		default:
			fmt.Fprintf(w, "OK   %s (%d notes)\n", r.Path, r.Result.Count)
		}
	}
	return failed
}
