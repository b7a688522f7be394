// Package queue is the verification job broker: at-least-once delivery,
// bounded attempts, exponential backoff between redeliveries. Jobs are
// transient work items; the claim's persisted status is the durable source
// of truth for progress.
package queue

import (
	"context"
	"errors"
	"time"
)

// Job instructs a worker to verify one claim by id. Attempt starts at 1 on
// first delivery and counts total deliveries.
type Job struct {
	ID      string `json:"id"`
	ClaimID string `json:"claim_id"`
	Attempt int    `json:"attempt"`
}

// ErrEmpty indicates no job was available within the poll window
var ErrEmpty = errors.New("queue empty")

// Broker decouples claim submission from verification execution
type Broker interface {
	// Enqueue admits exactly one job referencing the claim. Failure means
	// the claim must stay PENDING at the caller.
	Enqueue(ctx context.Context, claimID string) error

	// Dequeue blocks up to wait for the next deliverable job, promoting
	// any backoff-delayed jobs that have come due. Returns ErrEmpty when
	// nothing is deliverable.
	Dequeue(ctx context.Context, wait time.Duration) (*Job, error)

	// Retry schedules the job for redelivery with backoff, or abandons it
	// to the dead-letter list once attempts are exhausted. The returned
	// bool is true when the job will be redelivered. The broker never
	// touches claim status; marking FAILED is the worker's job.
	Retry(ctx context.Context, job *Job) (bool, error)

	// Bury abandons the job immediately (fatal, non-retryable errors)
	Bury(ctx context.Context, job *Job) error

	Close() error
}

// Backoff returns the redelivery delay after the given attempt number:
// base, 2*base, 4*base, ...
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base << (attempt - 1)
}
