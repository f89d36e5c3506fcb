package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/transfer"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export one note as markdown or plain text",
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

		codec := transfer.NewCodec(service, nil)
		var file transfer.File
		switch exportFormat {
		case "md", "markdown":
			file = codec.ExportMarkdown(note)
		case "txt", "text":
			file = codec.ExportText(note)
		default:
			return fmt.Errorf("unknown format %q (want md or txt)", exportFormat)
		}

		return writeExport(cmd, file)
	},
}

var exportAllFormat string

var exportAllCmd = &cobra.Command{
	Use:   "export-all",
	Short: "Export every note as a JSON or YAML backup, or a zip of markdown files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openService()
		if err != nil {
			return fmt.Errorf("initializing jot: %w", err)
		}
		defer service.Close()

		ctx := context.Background()
		codec := transfer.NewCodec(service, nil)

		var file transfer.File
		switch exportAllFormat {
		case "json":
			file, err = codec.ExportBackup(ctx)
		case "yaml", "yml":
			file, err = codec.ExportYAMLBackup(ctx)
		case "zip":
			file, err = codec.ExportArchive(ctx)
		default:
			return fmt.Errorf("unknown format %q (want json, yaml or zip)", exportAllFormat)
		}
		if errors.Is(err, transfer.ErrNothingToExport) {
			fmt.Fprintln(cmd.OutOrStdout(), "No notes to export")
			return nil
		}
		if err != nil {
			return fmt.Errorf("exporting notes: %w", err)
		}

		return writeExport(cmd, file)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(exportAllCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Output format: md or txt")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Output directory")
	exportAllCmd.Flags().StringVarP(&exportAllFormat, "format", "f", "json", "Output format: json, yaml or zip")
	exportAllCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Output directory")
}

// writeExport writes file into the --out directory and prints its path.
func writeExport(cmd *cobra.Command, file transfer.File) error {
	if err := os.MkdirAll(exportOut, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	target := filepath.Join(exportOut, file.Name)
	if err := fs.WriteFile(target, file.Data); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d bytes)\n", target, len(file.Data))
	return nil
}
