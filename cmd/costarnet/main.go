// Package main is the costarnet command line tool. It runs one load cycle
// against the configured source and answers a single query from it, which is
// handy for checking a data set before serving it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/costarnet/core/internal/catalog"
	"github.com/costarnet/core/internal/config"
	"github.com/costarnet/core/internal/loader"
	"github.com/costarnet/core/internal/logging"
	"github.com/spf13/cobra"
)

const (
	exitSuccess = 0
	exitError   = 1
)

type options struct {
	dataDir string
	source  string
	json    bool
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "costarnet",
		Short:         "Query the character co-appearance network",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding the CSV tables (overrides DATA_DIR)")
	root.PersistentFlags().StringVar(&opts.source, "source", "", "data source: dir, s3 or postgres (overrides DATA_SOURCE)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of text")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log load progress to stderr")

	root.AddCommand(
		newGraphCmd(opts),
		newStatsCmd(opts),
		newCostarsCmd(opts),
		newCharacterCmd(opts),
		newLinkCmd(opts),
		newSearchCmd(opts),
	)

	return root
}

// loadCatalog reads configuration, applies flag overrides and runs one load.
func loadCatalog(ctx context.Context, cmd *cobra.Command, opts *options) (*catalog.Catalog, error) {
	overrides := map[string]string{"DATA_WATCH": "false"}
	if opts.dataDir != "" {
		overrides["DATA_DIR"] = opts.dataDir
	}
	if opts.source != "" {
		overrides["DATA_SOURCE"] = opts.source
	}

	cfg, err := config.LoadWith(overrides)
	if err != nil {
		return nil, err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger := logging.New(level, "text", cmd.ErrOrStderr())

	l, closer, err := loader.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	cat := catalog.New(l, cfg.CostarCache, logger)
	if _, err := cat.Reload(ctx); err != nil {
		return nil, err
	}
	return cat, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
