// Package worker provides a small fixed-size pool for running independent
// jobs concurrently, used to fan detection out across transcript files.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	Err() error
}

// Pool executes batches of jobs across a fixed number of goroutines
type Pool struct {
	workers int
}

// NewPool creates a pool; worker counts below 1 are raised to 1
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns their results in completion order.
// Cancelling ctx stops feeding new jobs; in-flight jobs see the
// cancellation through their own ctx handling.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	jobCh := make(chan Job)

	var (
		mu      sync.Mutex
		results []Result
		wg      sync.WaitGroup
	)
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				result := job.Execute(ctx)
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case jobCh <- job:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobCh)
	wg.Wait()

	return results
}
