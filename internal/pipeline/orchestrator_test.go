package pipeline

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func waitDone(t *testing.T, job *Job) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !job.Done() {
		if time.Now().After(deadline) {
			t.Fatalf("job %s did not finish, status %q", job.ID, job.Snapshot().Status)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestOrchestrator_RunsSubmittedJobs(t *testing.T) {
	content, out := t.TempDir(), t.TempDir()
	writePosts(t, content, map[string]string{"long.md": longPost})
	b := newTestBuilder(t, content, out)

	o := NewOrchestrator(b, 2, 4, time.Hour, slog.New(slog.DiscardHandler))
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob()
	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.GetJob(job.ID) != job {
		t.Fatal("expected job to be retrievable")
	}
	waitDone(t, job)

	if snap := job.Snapshot(); snap.Status != StatusCompleted {
		t.Errorf("expected completed, got %q (%v)", snap.Status, snap.Progress.Errors)
	}
	readOutput(t, out, "long/index.html")
}

func TestOrchestrator_QueueFull(t *testing.T) {
	b := newTestBuilder(t, t.TempDir(), t.TempDir())
	// Not started, so nothing drains the queue.
	o := NewOrchestrator(b, 1, 1, time.Hour, slog.New(slog.DiscardHandler))

	if err := o.Submit(NewJob()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}

	overflow := NewJob()
	if err := o.Submit(overflow); err == nil {
		t.Fatal("expected queue full error")
	}
	if snap := overflow.Snapshot(); snap.Status != StatusFailed || snap.Phase != "queue_full" {
		t.Errorf("expected failed/queue_full, got %q/%q", snap.Status, snap.Phase)
	}
}

func TestOrchestrator_Builder(t *testing.T) {
	b := newTestBuilder(t, "", "")
	o := NewOrchestrator(b, 0, 0, time.Hour, slog.New(slog.DiscardHandler))
	if o.Builder() != b {
		t.Error("expected builder to be exposed")
	}
}

func TestOrchestrator_SubmitAfterStop(t *testing.T) {
	b := newTestBuilder(t, t.TempDir(), t.TempDir())
	o := NewOrchestrator(b, 1, 2, time.Hour, slog.New(slog.DiscardHandler))
	o.Start(context.Background())
	o.Stop()
	o.Stop()

	job := NewJob()
	if err := o.Submit(job); err == nil {
		t.Fatal("expected error submitting to a stopped pipeline")
	}
	if snap := job.Snapshot(); snap.Status != StatusFailed || snap.Phase != "stopped" {
		t.Errorf("expected failed/stopped, got %q/%q", snap.Status, snap.Phase)
	}
	if o.GetJob(job.ID) != nil {
		t.Error("expected rejected job not to be stored")
	}
}
