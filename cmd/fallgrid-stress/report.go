package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/fallgrid/board"
	"github.com/plus3/fallgrid/loop"
	"github.com/plus3/fallgrid/piece"
)

type Report struct {
	// Configuration
	Config

	// Results
	Games      int
	Scores     Stats[int]
	Lines      int
	Locks      int
	Spawns     map[piece.Kind]int
	Clears     map[int]int
	TotalTime  time.Duration
	FrameTime  Stats[time.Duration]
	Scheduler  *loop.SchedulerStats
	Unfinished int

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

func NewReport(cfg Config) *Report {
	return &Report{
		Config: cfg,
		Spawns: make(map[piece.Kind]int, piece.Count),
		Clears: make(map[int]int),
	}
}

// AddGame records a finished game.
func (r *Report) AddGame(score int, stats board.Stats) {
	r.Games++
	r.Scores.Samples = append(r.Scores.Samples, score)
	r.addStats(stats)
}

// AddUnfinished folds in the counters of the game still running when the
// clock ran out. Its score is not part of the score statistics.
func (r *Report) AddUnfinished(score int, stats board.Stats) {
	r.Unfinished = score
	r.addStats(stats)
}

func (r *Report) addStats(stats board.Stats) {
	r.Lines += stats.Lines
	r.Locks += stats.Locks
	for _, kind := range piece.Kinds() {
		r.Spawns[kind] += stats.Spawned(kind)
	}
	for lines := 1; lines <= r.Height; lines++ {
		if n := stats.Clears(lines); n > 0 {
			r.Clears[lines] += n
		}
	}
}

// SpawnRows lists spawn counts in catalog order.
func (r *Report) SpawnRows() []SpawnRow {
	total := 0
	for _, n := range r.Spawns {
		total += n
	}
	rows := make([]SpawnRow, 0, piece.Count)
	for _, kind := range piece.Kinds() {
		row := SpawnRow{Kind: kind, Count: r.Spawns[kind]}
		if total > 0 {
			row.Share = 100 * float64(row.Count) / float64(total)
		}
		rows = append(rows, row)
	}
	return rows
}

type SpawnRow struct {
	Kind  piece.Kind
	Count int
	Share float64
}

type Stats[T int | time.Duration] struct {
	Min     T
	Max     T
	Avg     T
	Samples []T
}

func (s *Stats[T]) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total T
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / T(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# fallgrid Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Grid:** {{.Width}}x{{.Height}}
- **Seed:** {{.Seed}}

## Games
- **Finished Games:** {{.Games}}
- **Score:** min {{.Scores.Min}} / avg {{.Scores.Avg}} / max {{.Scores.Max}}
- **Unfinished Game Score:** {{.Unfinished}}
- **Pieces Locked:** {{.Locks}}
- **Lines Cleared:** {{.Lines}}

## Spawn Distribution
{{range .SpawnRows}}- {{.Kind}}: {{.Count}} ({{printf "%.1f" .Share}}%)
{{end}}
## Line Clears
{{range $lines, $count := .Clears}}- {{$lines}} at once: {{$count}}
{{else}}- none
{{end}}
## Performance Results
- **Frames:** {{len .FrameTime.Samples}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
{{with .Scheduler}}- **Commands Applied:** {{.Commands}}
{{range .Systems}}  - {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} ({{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:       {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
`

	fm := template.FuncMap{
		"mb": func(v int64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns int64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
