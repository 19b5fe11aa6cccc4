package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/plus3/fallgrid/internal/config"
	"github.com/plus3/fallgrid/internal/gui"
	"github.com/plus3/fallgrid/internal/sound"
	"github.com/plus3/fallgrid/internal/termui"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	UI      string
	NoSound bool
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game",
		Long: `Play in the terminal (--ui term) or in a window (--ui gui).

Keys: arrows or WASD to move and rotate, space to drop one row,
r to restart, q or Esc to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.UI, "ui", "", "host to run: term or gui (default from FALLGRID_UI)")
	cmd.Flags().BoolVar(&opts.NoSound, "no-sound", false, "disable sound cues")

	return cmd
}

func loadPlayConfig(opts *PlayOptions) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if opts.UI != "" {
		cfg.UI = opts.UI
	}
	if opts.NoSound {
		cfg.Sound = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runPlay(ctx context.Context, rootOpts *RootOptions, opts *PlayOptions) error {
	cfg, err := loadPlayConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(rootOpts, cfg, cfg.UI == config.UITerminal)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	player := sound.NewPlayer(cfg.Sound)
	if err := player.Init(); err != nil {
		log.Printf("audio initialization failed: %v", err)
	}
	defer player.Close()

	log.Printf("starting %s host: %dx%d grid, tick %s", cfg.UI, cfg.Width, cfg.Height, cfg.TickInterval)

	if cfg.UI == config.UIWindow {
		return gui.Run(ctx, cfg, store, player)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return termui.NewApp(screen, cfg, store, player).Run(ctx)
}
