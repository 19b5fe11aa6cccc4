package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plus3/fallgrid/internal/highscore"
)

// NewHighScoreCommand creates the highscore command and its reset subcommand.
func NewHighScoreCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highscore",
		Short: "Show the high score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(store *highscore.Store) error {
				high, err := store.HighScore(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "high score: %d\n", high)
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset the high score to zero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(store *highscore.Store) error {
				if err := store.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "high score reset")
				return nil
			})
		},
	})

	return cmd
}
