package pipeline

import (
	"testing"
	"time"
)

func TestTransformStatsSnapshotPercentiles(t *testing.T) {
	stats := NewTransformStats(time.Hour)
	stats.Record(100*time.Microsecond, true)
	stats.Record(200*time.Microsecond, false)
	stats.Record(300*time.Microsecond, true)
	stats.Record(400*time.Microsecond, false)
	stats.Record(500*time.Microsecond, false)

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.Injected != 2 {
		t.Fatalf("expected injected=2, got %d", snap.Injected)
	}
	if snap.MinUs != 100 || snap.MaxUs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinUs, snap.MaxUs)
	}
	if snap.AvgUs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgUs)
	}
	if snap.P50Us != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Us)
	}
	if snap.P95Us != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Us)
	}
	if snap.P99Us != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Us)
	}
}

func TestTransformStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewTransformStats(10 * time.Millisecond)
	stats.Record(100*time.Microsecond, true)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 || snap.Injected != 0 {
		t.Fatalf("expected empty snapshot after prune, got %+v", snap)
	}

	stats.Record(200*time.Microsecond, false)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinUs != 200 || snap.MaxUs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinUs, snap.MaxUs)
	}
}

func TestTransformStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewTransformStats(time.Hour)
	stats.Record(-10*time.Microsecond, false)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinUs != 0 || snap.MaxUs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinUs, snap.MaxUs)
	}
}
