// Package gui runs fallgrid in a desktop window using ebiten.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/fallgrid/board"
	"github.com/plus3/fallgrid/internal/config"
	"github.com/plus3/fallgrid/internal/session"
	"github.com/plus3/fallgrid/internal/sound"
	"github.com/plus3/fallgrid/loop"
	"github.com/plus3/fallgrid/piece"
)

const (
	CellSize   = 28
	Margin     = 40
	PanelWidth = 180
)

// Held keys repeat after repeatDelay ticks, every repeatEvery ticks.
const (
	repeatDelay = 15
	repeatEvery = 4
)

var (
	background  = color.RGBA{18, 18, 24, 255}
	borderColor = color.RGBA{128, 128, 128, 255}
	lockedColor = color.RGBA{110, 110, 120, 255}
	ghostColor  = color.RGBA{255, 255, 255, 50}
	outline     = color.RGBA{0, 0, 0, 255}
)

var kindColors = map[piece.Kind]color.RGBA{
	piece.O: {253, 216, 53, 255},
	piece.T: {171, 71, 188, 255},
	piece.Z: {229, 57, 53, 255},
	piece.S: {67, 160, 71, 255},
	piece.I: {79, 195, 247, 255},
	piece.J: {30, 136, 229, 255},
	piece.L: {251, 140, 0, 255},
}

var keyCommands = []struct {
	key ebiten.Key
	cmd board.Command
}{
	{ebiten.KeyArrowLeft, board.Left},
	{ebiten.KeyA, board.Left},
	{ebiten.KeyArrowRight, board.Right},
	{ebiten.KeyD, board.Right},
	{ebiten.KeyArrowUp, board.Rotate},
	{ebiten.KeyW, board.Rotate},
	{ebiten.KeyArrowDown, board.Down},
	{ebiten.KeyS, board.Down},
	{ebiten.KeySpace, board.Down},
}

// Game implements ebiten.Game on top of a gravity driver.
type Game struct {
	ctx     context.Context
	driver  *loop.Driver
	tracker *session.Tracker
	snap    board.Snapshot
	overlay overlay
	width   int
	height  int
}

// NewGame builds an engine sized by cfg. scores and player may be nil.
func NewGame(ctx context.Context, cfg config.Config, scores session.Scores, player *sound.Player) *Game {
	opts := []board.Option{board.WithSize(cfg.Width, cfg.Height)}
	if player != nil {
		opts = append(opts, board.WithListener(player.Handle))
	}
	engine := board.New(opts...)

	g := &Game{
		ctx:     ctx,
		driver:  loop.NewDriver(engine, cfg.TickInterval),
		tracker: session.NewTracker(scores),
		width:   Margin*2 + cfg.Width*CellSize + PanelWidth,
		height:  Margin*2 + cfg.Height*CellSize,
	}
	if err := g.tracker.Load(ctx); err != nil {
		log.Printf("high score unavailable: %v", err)
	}
	return g
}

func (g *Game) restart() {
	if _, err := g.tracker.Observe(g.ctx, g.driver.Snapshot()); err != nil {
		log.Printf("save game: %v", err)
	}
	g.tracker.Begin()
	g.driver.Start()
}

// Update handles input and records finished games.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.restart()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.overlay.visible = !g.overlay.visible
		g.overlay.text = ""
	}

	for _, kc := range keyCommands {
		if pressed(kc.key) {
			g.driver.Send(kc.cmd)
		}
	}

	g.snap = g.driver.Snapshot()
	g.overlay.update(g.driver)
	if _, err := g.tracker.Observe(g.ctx, g.snap); err != nil {
		log.Printf("save game: %v", err)
	}
	return nil
}

func pressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0
}

// Draw paints the well, the falling piece with its landing preview and the
// score panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	s := g.snap

	wellW := float32(s.Width * CellSize)
	wellH := float32(s.Height * CellSize)
	vector.StrokeRect(screen, Margin-2, Margin-2, wellW+4, wellH+4, 2, borderColor, false)

	for y := range s.Height {
		for x := range s.Width {
			if s.Cells[y][x] {
				drawCell(screen, x, y, lockedColor)
			}
		}
	}

	if s.HasPiece {
		if ghostY, ok := s.DropRow(); ok && ghostY != s.Piece.Y {
			for row, col := range s.Piece.Shape.Cells() {
				drawCell(screen, s.Piece.X+col, ghostY+row, ghostColor)
			}
		}
		c := kindColors[s.Piece.Shape.Kind()]
		for row, col := range s.Piece.Shape.Cells() {
			drawCell(screen, s.Piece.X+col, s.Piece.Y+row, c)
		}
	}

	textX := Margin + s.Width*CellSize + 20
	ebitenutil.DebugPrintAt(screen, "SCORE", textX, Margin)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", s.Score), textX, Margin+16)
	ebitenutil.DebugPrintAt(screen, "HIGH", textX, Margin+48)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", g.tracker.High(s.Score)), textX, Margin+64)
	ebitenutil.DebugPrintAt(screen, "LINES", textX, Margin+96)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", s.Lines), textX, Margin+112)

	g.overlay.draw(screen, textX, Margin+160)

	switch s.State {
	case board.GameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER", Margin+10, Margin+s.Height*CellSize/2-10)
		ebitenutil.DebugPrintAt(screen, "Press R to restart", Margin+10, Margin+s.Height*CellSize/2+10)
	case board.Idle:
		ebitenutil.DebugPrintAt(screen, "Press R to start", Margin+10, Margin+s.Height*CellSize/2)
	}
}

func drawCell(screen *ebiten.Image, x, y int, c color.Color) {
	sx := float32(Margin + x*CellSize)
	sy := float32(Margin + y*CellSize)
	vector.DrawFilledRect(screen, sx, sy, CellSize, CellSize, c, false)
	vector.StrokeRect(screen, sx, sy, CellSize, CellSize, 1, outline, false)
}

// Layout keeps a fixed logical size and lets ebiten scale the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and plays until it is closed.
func Run(ctx context.Context, cfg config.Config, scores session.Scores, player *sound.Player) error {
	g := NewGame(ctx, cfg, scores, player)

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("fallgrid")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.restart()
	defer g.driver.Stop()

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
