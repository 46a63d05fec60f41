package pipeline

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	duration  time.Duration
}

// StatsSnapshot aggregates recent transform latencies in microseconds.
type StatsSnapshot struct {
	Count    int     `json:"count"`
	Injected int     `json:"injected"`
	MinUs    int64   `json:"min_us"`
	MaxUs    int64   `json:"max_us"`
	AvgUs    float64 `json:"avg_us"`
	P50Us    float64 `json:"p50_us"`
	P95Us    float64 `json:"p95_us"`
	P99Us    float64 `json:"p99_us"`
}

// TransformStats tracks page transform latencies within a rolling window.
type TransformStats struct {
	mu       sync.Mutex
	samples  []sample
	injected []time.Time
	maxAge   time.Duration
}

func NewTransformStats(maxAge time.Duration) *TransformStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &TransformStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one transform run. injected marks runs that spliced a TOC.
func (s *TransformStats) Record(d time.Duration, injected bool) {
	if d < 0 {
		d = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, duration: d})
	if injected {
		s.injected = append(s.injected, now)
	}
}

func (s *TransformStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		us := sm.duration.Microseconds()
		values = append(values, us)
		sum += us
	}
	slices.Sort(values)

	return StatsSnapshot{
		Count:    len(values),
		Injected: len(s.injected),
		MinUs:    values[0],
		MaxUs:    values[len(values)-1],
		AvgUs:    float64(sum) / float64(len(values)),
		P50Us:    percentile(values, 50),
		P95Us:    percentile(values, 95),
		P99Us:    percentile(values, 99),
	}
}

func (s *TransformStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	s.samples = slices.DeleteFunc(s.samples, func(sm sample) bool {
		return sm.timestamp.Before(cutoff)
	})
	s.injected = slices.DeleteFunc(s.injected, func(ts time.Time) bool {
		return ts.Before(cutoff)
	})
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
