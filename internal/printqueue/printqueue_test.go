package printqueue

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func tempQueue(t *testing.T) *Queue {
	t.Helper()
	q, err := Open(filepath.Join(t.TempDir(), "queue.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return q
}

func TestQueue_LifecycleHappyPath(t *testing.T) {
	q := tempQueue(t)

	job := q.Add("c-1", "John Doe", "ORD-001", "shirt")
	if job.Status != StatusPending {
		t.Fatalf("new job must be pending, got %s", job.Status)
	}
	if job.ID == "" {
		t.Fatal("expected generated id")
	}

	started, err := q.Start(job.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != StatusPrinting {
		t.Fatalf("expected printing, got %s", started.Status)
	}

	done, err := q.Complete(job.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", done.Status)
	}
	if done.CompletedAt == nil {
		t.Fatal("expected completedAt to be stamped")
	}
}

func TestQueue_FailFromPrinting(t *testing.T) {
	q := tempQueue(t)
	job := q.Add("c-1", "John Doe", "ORD-001", "pant")

	if _, err := q.Start(job.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	failed, err := q.Fail(job.ID)
	if err != nil {
		t.Fatalf("fail: %v", err)
	}
	if failed.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", failed.Status)
	}
	if failed.CompletedAt != nil {
		t.Fatal("failed jobs must not carry completedAt")
	}
}

func TestQueue_IllegalTransitions(t *testing.T) {
	q := tempQueue(t)
	job := q.Add("c-1", "John Doe", "ORD-001", "trouser")

	// pending cannot complete or fail directly
	if _, err := q.Complete(job.ID); err == nil {
		t.Fatal("expected error completing a pending job")
	}
	if _, err := q.Fail(job.ID); err == nil {
		t.Fatal("expected error failing a pending job")
	}

	if _, err := q.Start(job.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := q.Start(job.ID); err == nil {
		t.Fatal("expected error starting a printing job")
	}

	if _, err := q.Complete(job.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	// terminal states accept nothing
	if _, err := q.Start(job.ID); err == nil {
		t.Fatal("expected error restarting a completed job")
	}
	if _, err := q.Fail(job.ID); err == nil {
		t.Fatal("expected error failing a completed job")
	}
}

func TestQueue_UnknownJob(t *testing.T) {
	q := tempQueue(t)
	if _, err := q.Start("nope"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if err := q.Remove("nope"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestQueue_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	q, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	q.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	job := q.Add("c-1", "Jane Smith", "ORD-002", "shirt")
	if _, err := q.Start(job.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := q.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	jobs := reopened.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job after reload, got %d", len(jobs))
	}
	got := jobs[0]
	if got.ID != job.ID || got.Status != StatusPrinting || got.CustomerName != "Jane Smith" {
		t.Fatalf("job did not round-trip: %+v", got)
	}
}

func TestQueue_Remove(t *testing.T) {
	q := tempQueue(t)
	q.now = func() time.Time { return time.Unix(0, 0) }
	a := q.Add("c-1", "A", "ORD-001", "shirt")
	q.now = func() time.Time { return time.Unix(1, 0) }
	b := q.Add("c-2", "B", "ORD-002", "pant")

	if err := q.Remove(a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	jobs := q.Jobs()
	if len(jobs) != 1 || jobs[0].ID != b.ID {
		t.Fatalf("expected only job %s left, got %+v", b.ID, jobs)
	}
}
