package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/fallgrid/board"
	"github.com/plus3/fallgrid/loop"
)

var playerCommands = [...]board.Command{board.Left, board.Right, board.Rotate, board.Down}

// InputSystem queues up to two random player commands per frame.
type InputSystem struct {
	rng *rand.Rand
}

func (s *InputSystem) Execute(frame *loop.Frame) {
	if !frame.Board.Running() {
		return
	}
	for range s.rng.IntN(3) {
		frame.Commands.Push(playerCommands[s.rng.IntN(len(playerCommands))])
	}
}

// RestartSystem folds a finished game into the report and starts the next one
// once the frame's commands have been applied.
type RestartSystem struct {
	report *Report
}

func (s *RestartSystem) Execute(frame *loop.Frame) {
	engine := frame.Board
	if engine.State() != board.GameOver {
		return
	}
	s.report.AddGame(engine.Score(), engine.Stats())
	frame.Commands.Defer(engine.Start)
}

// Config is the stress run configuration.
type Config struct {
	Duration time.Duration
	Seed     uint64
	Width    int
	Height   int
}

// Run drives a headless engine as fast as possible until ctx is done.
func Run(ctx context.Context, cfg Config) *Report {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	engine := board.New(
		board.WithSize(cfg.Width, cfg.Height),
		board.WithSource(rng),
	)

	report := NewReport(cfg)

	scheduler := loop.NewScheduler(engine)
	scheduler.Register(&InputSystem{rng: rng})
	scheduler.Register(loop.GravitySystem{})
	scheduler.Register(&RestartSystem{report: report})

	scheduler.View(func(e *board.Engine) { e.Start() })

	runtime.ReadMemStats(&report.MemStatsStart)

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	scheduler.View(func(e *board.Engine) {
		report.AddUnfinished(e.Score(), e.Stats())
	})
	report.Scores.Finalize()
	report.Scheduler = scheduler.GetStats()
	return report
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for piece selection and player input.")
	width := flag.Int("width", board.DefaultWidth, "Grid width.")
	height := flag.Int("height", board.DefaultHeight, "Grid height.")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		log.Fatalf("grid size must be positive, got %dx%d", *width, *height)
	}

	log.Println("Starting fallgrid stress test...")
	log.Printf("Running %dx%d grid with seed %d for %s...\n", *width, *height, *seed, *duration)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	report := Run(ctx, Config{
		Duration: *duration,
		Seed:     *seed,
		Width:    *width,
		Height:   *height,
	})

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
