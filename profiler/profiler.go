// Package profiler - lightweight stage timing for effect pipelines.
//
// The effects engine runs as short-lived pipelines (decode, apply, encode,
// write) rather than a resident service, so timing is collected per named
// stage and reported once at the end of a run.
package profiler

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// StageStats holds the accumulated timing for one named stage.
type StageStats struct {
	// Count is the number of completed invocations.
	Count int64
	// Total is the summed wall time across invocations.
	Total time.Duration
	// Min is the fastest invocation.
	Min time.Duration
	// Max is the slowest invocation.
	Max time.Duration
}

// Mean returns the average invocation time, or zero before any completion.
func (s StageStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// StageTimer aggregates wall-time per named pipeline stage. Safe for
// concurrent use.
type StageTimer struct {
	mu     sync.Mutex
	stages map[string]StageStats
}

// NewStageTimer creates an empty stage timer.
func NewStageTimer() *StageTimer {
	return &StageTimer{stages: make(map[string]StageStats)}
}

// Start begins timing one invocation of a stage.
//
// Arguments:
// - name: The stage name to accumulate under.
//
// Returns:
// - A function to call when the stage completes.
//
// @example
//
//	done := timer.Start("decode")
//	buf, err := images.Decode(img)
//	done()
func (t *StageTimer) Start(name string) func() {
	start := time.Now()
	return func() {
		t.record(name, time.Since(start))
	}
}

// record folds one completed invocation into the stage's stats.
func (t *StageTimer) record(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.stages[name]
	if !ok {
		s = StageStats{Min: d, Max: d}
	}
	s.Count++
	s.Total += d
	if d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	t.stages[name] = s
}

// Stats returns a copy of the accumulated per-stage statistics.
func (t *StageTimer) Stats() map[string]StageStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]StageStats, len(t.stages))
	for name, s := range t.stages {
		out[name] = s
	}
	return out
}

// LogSummary emits one log line per stage, in name order, plus a heap
// snapshot for the whole run.
func (t *StageTimer) LogSummary(log *logrus.Logger) {
	stats := t.Stats()

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := stats[name]
		log.WithFields(logrus.Fields{
			"stage": name,
			"count": s.Count,
			"total": s.Total.String(),
			"mean":  s.Mean().String(),
			"min":   s.Min.String(),
			"max":   s.Max.String(),
		}).Info("stage timing")
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	log.WithFields(logrus.Fields{
		"heap_alloc":  mem.HeapAlloc,
		"total_alloc": mem.TotalAlloc,
		"num_gc":      mem.NumGC,
	}).Info("memory")
}
