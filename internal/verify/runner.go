package verify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/queue"
)

// Runner pulls jobs from the broker and feeds them to the processor with
// a fixed-size pool of workers. Each worker polls and processes
// independently; the only shared resource is the store behind the
// processor.
type Runner struct {
	broker  queue.Broker
	proc    *Processor
	workers int
	poll    time.Duration
	log     *zap.SugaredLogger
}

// NewRunner creates a runner with the given worker count and poll window
func NewRunner(broker queue.Broker, proc *Processor, workers int, poll time.Duration) *Runner {
	if workers <= 0 {
		workers = 1
	}
	if poll <= 0 {
		poll = 5 * time.Second
	}
	return &Runner{
		broker:  broker,
		proc:    proc,
		workers: workers,
		poll:    poll,
		log:     zap.S().Named("runner"),
	}
}

// Run blocks until ctx is cancelled, then waits for in-flight jobs to
// finish before returning.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Infow("worker pool starting", "workers", r.workers)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.work(ctx, id)
		}(i)
	}
	wg.Wait()

	r.log.Info("worker pool stopped")
	return nil
}

func (r *Runner) work(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := r.broker.Dequeue(ctx, r.poll)
		if errors.Is(err, queue.ErrEmpty) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.log.Errorw("dequeue failed", "worker", id, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.poll):
			}
			continue
		}

		r.handle(ctx, id, job)
	}
}

func (r *Runner) handle(ctx context.Context, id int, job *queue.Job) {
	err := r.proc.Process(ctx, job)
	if err == nil {
		return
	}

	if errors.Is(err, ErrClaimNotFound) {
		r.log.Errorw("fatal job error, burying",
			"worker", id, "claim_id", job.ClaimID, "error", err)
		if berr := r.broker.Bury(ctx, job); berr != nil {
			r.log.Errorw("bury failed", "claim_id", job.ClaimID, "error", berr)
		}
		return
	}

	r.log.Errorw("job failed",
		"worker", id, "claim_id", job.ClaimID, "attempt", job.Attempt, "error", err)
	redelivered, rerr := r.broker.Retry(ctx, job)
	if rerr != nil {
		r.log.Errorw("retry scheduling failed", "claim_id", job.ClaimID, "error", rerr)
		return
	}
	if !redelivered {
		r.log.Warnw("job abandoned after final attempt", "claim_id", job.ClaimID)
	}
}
