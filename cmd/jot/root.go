package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/core"
)

var (
	verbose    bool
	configFile string
	adapter    string
	dataPath   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A local-first personal notes store",
	Long: `jot keeps short text notes in a single collection on local storage.
Notes can be searched, exported to markdown, text, JSON, YAML or zip, and
imported back from the same formats.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("Error", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: jot.yaml in the current or root directory)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, memory, redis or sqlite")
	rootCmd.PersistentFlags().StringVar(&dataPath, "path", "", "Adapter location: data directory, redis address or sqlite DSN")
}

// openService builds the service from config file, environment and flags.
// Flags win over the environment, which wins over the config file.
func openService() (*core.Service, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	searchDirs := []string{wd}
	if root, err := jot.FindRoot(wd); err == nil && root != wd {
		searchDirs = append(searchDirs, root)
	}

	cfg, err := jot.LoadConfig(configFile, searchDirs...)
	if err != nil {
		return nil, err
	}
	if adapter != "" {
		cfg.Adapter = adapter
	}

	uri := cfg.URI()
	if dataPath != "" {
		uri = dataPath
	}
	if cfg.Adapter == "fs" && uri == "" {
		if uri, err = jot.ResolveDataDir(wd); err != nil {
			return nil, err
		}
	}

	slog.Debug("opening storage", "adapter", cfg.Adapter, "uri", uri, "key", cfg.Key)
	return jot.New(uri, append(cfg.Options(), jot.WithLogger(slog.Default()))...)
}
