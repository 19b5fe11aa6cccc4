package termui

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/fallgrid/board"
	"github.com/plus3/fallgrid/internal/config"
	"github.com/plus3/fallgrid/internal/session"
	"github.com/plus3/fallgrid/internal/sound"
	"github.com/plus3/fallgrid/loop"
)

// App is the terminal host: it owns the screen, the gravity driver and the
// session tracker.
type App struct {
	screen  tcell.Screen
	driver  *loop.Driver
	tracker *session.Tracker
	player  *sound.Player

	frames chan board.Snapshot
}

// NewApp wires an engine sized by cfg to screen. scores and player may be
// nil. The screen must already be initialized.
func NewApp(screen tcell.Screen, cfg config.Config, scores session.Scores, player *sound.Player, opts ...board.Option) *App {
	a := &App{
		screen:  screen,
		tracker: session.NewTracker(scores),
		player:  player,
		frames:  make(chan board.Snapshot, 1),
	}

	engineOpts := []board.Option{board.WithSize(cfg.Width, cfg.Height)}
	if player != nil {
		engineOpts = append(engineOpts, board.WithListener(player.Handle))
	}
	engineOpts = append(engineOpts, opts...)

	engine := board.New(engineOpts...)
	a.driver = loop.NewDriver(engine, cfg.TickInterval, loop.WithObserver(a.publish))
	return a
}

// Driver exposes the gravity driver.
func (a *App) Driver() *loop.Driver {
	return a.driver
}

// publish keeps only the newest snapshot; the UI loop always draws the latest
// state and the final game-over frame is never followed by another.
func (a *App) publish(snap board.Snapshot) {
	for {
		select {
		case a.frames <- snap:
			return
		default:
		}
		select {
		case <-a.frames:
		default:
		}
	}
}

// Run starts a game and processes input until the player quits or ctx is
// done. The caller owns the screen and must Fini it afterwards.
func (a *App) Run(ctx context.Context) error {
	if err := a.tracker.Load(ctx); err != nil {
		log.Printf("high score unavailable: %v", err)
	}

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.restart(ctx)
	defer a.driver.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !a.handle(ctx, ev) {
				return nil
			}

		case snap := <-a.frames:
			a.frame(ctx, snap)
		}
	}
}

// restart settles the previous game from the engine's own state, so a game
// over that has not reached the frame channel yet is still recorded.
func (a *App) restart(ctx context.Context) {
	if _, err := a.tracker.Observe(ctx, a.driver.Snapshot()); err != nil {
		log.Printf("save game: %v", err)
	}
	a.tracker.Begin()
	a.driver.Start()
}

func (a *App) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if IsQuit(ev) {
			return false
		}
		if IsRestart(ev) {
			a.restart(ctx)
			return true
		}
		if cmd, ok := KeyCommand(ev); ok {
			a.driver.Send(cmd)
		}

	case *tcell.EventResize:
		a.screen.Sync()
		a.draw(a.driver.Snapshot())
	}
	return true
}

func (a *App) frame(ctx context.Context, snap board.Snapshot) {
	if _, err := a.tracker.Observe(ctx, snap); err != nil {
		log.Printf("save game: %v", err)
	}
	a.draw(snap)
}

func (a *App) draw(snap board.Snapshot) {
	Draw(a.screen, Render(snap, a.tracker.High(snap.Score)))
}
