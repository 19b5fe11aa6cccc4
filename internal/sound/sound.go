// Package sound plays short audio cues for line clears and game over.
package sound

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/fallgrid/board"
)

const sampleRate = beep.SampleRate(44100)

const (
	noteLength = 70 * time.Millisecond
	noteGap    = 20 * time.Millisecond
)

// lineClearNotes are played one per cleared line, rising.
var lineClearNotes = [...]float64{523.25, 659.25, 783.99, 1046.5}

// gameOverNotes fall.
var gameOverNotes = [...]float64{392, 311.13, 246.94, 196}

// Player plays cues on the system speaker. A disabled player, or one whose
// speaker failed to initialize, silently ignores every call.
type Player struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
	mixer       *beep.Mixer
}

// NewPlayer creates a player. Nothing is played until Init succeeds.
func NewPlayer(enabled bool) *Player {
	return &Player{
		enabled: enabled,
		mixer:   &beep.Mixer{},
	}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		p.enabled = false
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// LineClear plays one rising note per cleared line.
func (p *Player) LineClear(lines int) {
	if lines <= 0 {
		return
	}
	p.play(lineClearCue(lines))
}

// GameOver plays a falling phrase.
func (p *Player) GameOver() {
	p.play(gameOverCue())
}

// Handle maps engine events to cues. It has the shape of a board listener.
func (p *Player) Handle(ev board.Event) {
	switch ev.Type {
	case board.EventLocked:
		p.LineClear(ev.Lines)
	case board.EventGameOver:
		p.GameOver()
	}
}

func (p *Player) play(cue beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || cue == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(cue)
	speaker.Unlock()
}

func lineClearCue(lines int) beep.Streamer {
	lines = min(lines, len(lineClearNotes))
	return phrase(lineClearNotes[:lines])
}

func gameOverCue() beep.Streamer {
	return phrase(gameOverNotes[:])
}

func phrase(freqs []float64) beep.Streamer {
	var parts []beep.Streamer
	for i, freq := range freqs {
		sine, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			log.Printf("sound: tone %.2fHz: %v", freq, err)
			continue
		}
		if i > 0 {
			parts = append(parts, beep.Take(sampleRate.N(noteGap), silence))
		}
		parts = append(parts, beep.Take(sampleRate.N(noteLength), sine))
	}
	if len(parts) == 0 {
		return nil
	}
	return beep.Seq(parts...)
}

var silence = beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
	clear(samples)
	return len(samples), true
})
