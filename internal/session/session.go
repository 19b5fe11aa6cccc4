// Package session tracks a player's games against the high-score store.
package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/plus3/fallgrid/board"
	"github.com/plus3/fallgrid/internal/highscore"
)

// Scores is the part of the high-score store a host needs.
type Scores interface {
	HighScore(ctx context.Context) (int, error)
	Record(ctx context.Context, game highscore.Game) (bool, error)
}

// Tracker gives each game a session id and records it once when it ends.
// It is not safe for concurrent use; hosts drive it from their UI loop.
type Tracker struct {
	scores   Scores
	id       uuid.UUID
	recorded bool
	high     int
	now      func() time.Time
}

// NewTracker creates a tracker. scores may be nil, in which case nothing is
// persisted and the high score only lives for the process.
func NewTracker(scores Scores) *Tracker {
	return &Tracker{
		scores: scores,
		now:    time.Now,
	}
}

// Load reads the stored high score.
func (t *Tracker) Load(ctx context.Context) error {
	if t.scores == nil {
		return nil
	}
	high, err := t.scores.HighScore(ctx)
	if err != nil {
		return fmt.Errorf("load high score: %w", err)
	}
	t.high = high
	return nil
}

// Begin starts a new session and returns its id.
func (t *Tracker) Begin() uuid.UUID {
	t.id = uuid.New()
	t.recorded = false
	log.Printf("game %s started", t.id)
	return t.id
}

// Session returns the current session id.
func (t *Tracker) Session() uuid.UUID {
	return t.id
}

// High returns the best score known, including score if it is higher.
func (t *Tracker) High(score int) int {
	return max(t.high, score)
}

// Observe records the game the first time snap shows it over. It reports
// whether the finished game set a new high score.
func (t *Tracker) Observe(ctx context.Context, snap board.Snapshot) (bool, error) {
	if snap.State != board.GameOver || t.recorded || t.id == uuid.Nil {
		return false, nil
	}
	t.recorded = true
	log.Printf("game %s over: score %d, lines %d", t.id, snap.Score, snap.Lines)

	if t.scores == nil {
		if snap.Score > t.high {
			t.high = snap.Score
			return true, nil
		}
		return false, nil
	}

	newHigh, err := t.scores.Record(ctx, highscore.Game{
		SessionID:  t.id,
		Score:      snap.Score,
		Lines:      snap.Lines,
		FinishedAt: t.now(),
	})
	if err != nil {
		return false, fmt.Errorf("record game: %w", err)
	}
	if newHigh {
		t.high = snap.Score
		log.Printf("new high score %d", snap.Score)
	}
	return newHigh, nil
}
