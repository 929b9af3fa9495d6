// Package printqueue models the measurement-card print queue: a local,
// single-user job list persisted to a JSON file. Jobs move through
// pending -> printing -> completed|failed, and every transition is an
// explicit caller action; there are no timers and no automatic retry.
package printqueue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Status is a print job's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPrinting  Status = "printing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// CanTransition reports whether moving from s to next is a legal step.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusPrinting
	case StatusPrinting:
		return next == StatusCompleted || next == StatusFailed
	}
	return false
}

// ErrJobNotFound indicates the queue holds no job with the given id.
var ErrJobNotFound = errors.New("print job not found")

// Job is one queued measurement card.
type Job struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customerId"`
	CustomerName    string     `json:"customerName"`
	OrderNumber     string     `json:"orderNumber"`
	MeasurementType string     `json:"measurementType"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// Queue is the in-memory job list bound to its backing file.
type Queue struct {
	path string
	jobs []Job
	now  func() time.Time
}

// Open loads the queue from path. A missing file is an empty queue.
func Open(path string) (*Queue, error) {
	q := &Queue{path: path, now: time.Now}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return q, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &q.jobs); err != nil {
			return nil, fmt.Errorf("decode queue file %s: %w", path, err)
		}
	}
	return q, nil
}

// Save writes the queue back to its file.
func (q *Queue) Save() error {
	data, err := json.MarshalIndent(q.jobs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(q.path, data, 0o644)
}

// Jobs returns the queued jobs in insertion order.
func (q *Queue) Jobs() []Job {
	out := make([]Job, len(q.jobs))
	copy(out, q.jobs)
	return out
}

// Get returns the job with the given id.
func (q *Queue) Get(id string) (*Job, error) {
	i := q.index(id)
	if i < 0 {
		return nil, ErrJobNotFound
	}
	job := q.jobs[i]
	return &job, nil
}

// Add appends a pending job for a customer's measurement and returns it. The
// id is a client-generated millisecond timestamp, matching the ids the shop's
// existing queue files already contain.
func (q *Queue) Add(customerID, customerName, orderNumber, measurementType string) Job {
	now := q.now()
	job := Job{
		ID:              strconv.FormatInt(now.UnixMilli(), 10),
		CustomerID:      customerID,
		CustomerName:    customerName,
		OrderNumber:     orderNumber,
		MeasurementType: measurementType,
		Status:          StatusPending,
		CreatedAt:       now.UTC(),
	}
	q.jobs = append(q.jobs, job)
	return job
}

// Start moves a pending job to printing.
func (q *Queue) Start(id string) (*Job, error) {
	return q.transition(id, StatusPrinting)
}

// Complete moves a printing job to completed and stamps CompletedAt.
func (q *Queue) Complete(id string) (*Job, error) {
	return q.transition(id, StatusCompleted)
}

// Fail moves a printing job to failed.
func (q *Queue) Fail(id string) (*Job, error) {
	return q.transition(id, StatusFailed)
}

// Remove drops the job from the queue regardless of its state.
func (q *Queue) Remove(id string) error {
	i := q.index(id)
	if i < 0 {
		return ErrJobNotFound
	}
	q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
	return nil
}

func (q *Queue) transition(id string, next Status) (*Job, error) {
	i := q.index(id)
	if i < 0 {
		return nil, ErrJobNotFound
	}
	job := &q.jobs[i]
	if !job.Status.CanTransition(next) {
		return nil, fmt.Errorf("cannot move job %s from %s to %s", id, job.Status, next)
	}
	job.Status = next
	if next == StatusCompleted {
		t := q.now().UTC()
		job.CompletedAt = &t
	}
	clone := *job
	return &clone, nil
}

func (q *Queue) index(id string) int {
	for i, job := range q.jobs {
		if job.ID == id {
			return i
		}
	}
	return -1
}
