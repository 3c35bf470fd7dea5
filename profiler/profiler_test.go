package profiler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageTimerAccumulates(t *testing.T) {
	timer := NewStageTimer()

	done := timer.Start("decode")
	time.Sleep(time.Millisecond)
	done()

	done = timer.Start("decode")
	done()

	stats := timer.Stats()
	require.Contains(t, stats, "decode")

	s := stats["decode"]
	assert.EqualValues(t, 2, s.Count)
	assert.Equal(t, s.Total, s.Min+s.Max, "with two samples total is min plus max")
	assert.LessOrEqual(t, s.Min, s.Max)
	assert.Equal(t, s.Total/2, s.Mean())
}

func TestStageTimerEmptyMean(t *testing.T) {
	assert.Equal(t, time.Duration(0), StageStats{}.Mean())
}

func TestStageTimerStatsIsCopy(t *testing.T) {
	timer := NewStageTimer()
	timer.Start("encode")()

	stats := timer.Stats()
	stats["encode"] = StageStats{Count: 99}

	assert.EqualValues(t, 1, timer.Stats()["encode"].Count)
}

func TestStageTimerConcurrent(t *testing.T) {
	timer := NewStageTimer()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				timer.Start("apply")()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 800, timer.Stats()["apply"].Count)
}
