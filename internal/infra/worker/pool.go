package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Task is one unit of fan-out work. Errors are captured per task and never
// stop the pool.
type Task func(ctx context.Context) error

// Pool is a bounded fan-out pool with an explicit join point: Submit queues
// work, Wait closes the queue and blocks until every submitted task is done.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan Task
	n    int
	log  *zerolog.Logger
}

func NewPool(workers int, logger *zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = 8
	}
	compLog := logger.With().Str("component", "WorkerPool").Logger()
	return &Pool{jobs: make(chan Task, workers*4), n: workers, log: &compLog}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.n; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			for task := range p.jobs {
				if task == nil {
					continue
				}
				if err := task(ctx); err != nil {
					p.log.Error().Err(err).Int("worker", id).Msg("task failed")
				}
			}
		}(i)
	}
}

// Submit blocks when all workers are busy and the queue is full; fan-out
// callers want back-pressure, not dropped chats.
func (p *Pool) Submit(task Task) {
	if task == nil {
		return
	}
	p.jobs <- task
}

// Wait closes the queue and blocks until all submitted tasks have run.
// The pool cannot be reused afterwards.
func (p *Pool) Wait() {
	close(p.jobs)
	p.wg.Wait()
}
