// Package cli builds the fallgrid command tree.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/plus3/fallgrid/internal/config"
	"github.com/plus3/fallgrid/internal/highscore"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the fallgrid CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fallgrid",
		Short: "fallgrid - a falling-block puzzle",
		Long: `Steer falling pieces into a grid, fill rows and clear them.

Settings come from FALLGRID_* environment variables; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log to stderr")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewHighScoreCommand(opts))
	cmd.AddCommand(NewGamesCommand(opts))

	return cmd
}

// setupLogging points the standard logger at the configured log file, at
// stderr when verbose, or nowhere. The terminal host never logs to stderr.
func setupLogging(opts *RootOptions, cfg config.Config, terminal bool) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	}
	if opts.Verbose && !terminal {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	log.SetOutput(io.Discard)
	return nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// withStore loads the configuration, opens the high-score store and runs fn.
func withStore(rootOpts *RootOptions, fn func(store *highscore.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logFile, err := setupLogging(rootOpts, cfg, false)
	if err != nil {
		return err
	}
	defer logFile.Close()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}

func openStore(cfg config.Config) (*highscore.Store, error) {
	store, err := highscore.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open high scores: %w", err)
	}
	return store, nil
}
