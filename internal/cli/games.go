package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/fallgrid/internal/highscore"
)

// GamesOptions holds flags for the games command.
type GamesOptions struct {
	Limit int
}

// NewGamesCommand creates the games command.
func NewGamesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GamesOptions{}

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List recently finished games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Limit <= 0 {
				return fmt.Errorf("--limit must be greater than zero")
			}
			return withStore(rootOpts, func(store *highscore.Store) error {
				games, err := store.Recent(cmd.Context(), opts.Limit)
				if err != nil {
					return err
				}
				if len(games) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no games recorded")
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "SESSION\tSCORE\tLINES\tFINISHED")
				for _, g := range games {
					fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", g.SessionID, g.Score, g.Lines, g.FinishedAt.Format(time.RFC3339))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "number of games to list")

	return cmd
}
