package batch

import (
	"runtime"
	"sync"
)

// pool fans jobs out across a fixed set of goroutines and funnels the
// results back over a single channel. Results arrive in completion
// order, not submission order.
type pool[J any, R any] struct {
	workers int
	jobs    chan J
	results chan R
	wg      sync.WaitGroup
}

// newPool sizes the pool for jobCount jobs. A workers value of 0 or
// less uses one worker per CPU; the pool never runs more workers than
// there are jobs.
func newPool[J any, R any](workers, jobCount int) *pool[J, R] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if jobCount > 0 {
		workers = min(workers, jobCount)
	}

	return &pool[J, R]{
		workers: workers,
		jobs:    make(chan J, jobCount),
		results: make(chan R, jobCount),
	}
}

// start launches the workers. Each worker drains the job channel
// through fn until the channel is closed.
func (p *pool[J, R]) start(fn func(J) R) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.results <- fn(job)
			}
		}()
	}
}

// submit queues a job.
func (p *pool[J, R]) submit(job J) {
	p.jobs <- job
}

// close stops accepting jobs and closes the results channel once the
// workers have drained the queue.
func (p *pool[J, R]) close() {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}
