package statecraft

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// AsyncRunner cooperatively drains a FIFO queue of (Engine, Event) pairs with a
// single consumer goroutine (§4.5). Register never blocks; the queue is
// unbounded in this reference design (§9, "unbounded queue").
//
// Ordering guarantee: for events registered on the same AsyncRunner, Step is
// invoked in strict registration order, even across different target engines —
// the single consumer serializes all of them. Events registered on different
// AsyncRunners have no ordering relation to one another.
type AsyncRunner struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []asyncJob
	closed   bool
	done     chan struct{}
	logger   *log.Logger
	observer StepObserver
}

type asyncJob struct {
	engine *Engine
	event  Event
}

// NewAsyncRunner creates an AsyncRunner and spawns its single consumer goroutine.
func NewAsyncRunner(opts ...AsyncOption) *AsyncRunner {
	r := &AsyncRunner{
		done:   make(chan struct{}),
		logger: log.Default(),
	}
	r.cond = sync.NewCond(&r.mu)
	for _, opt := range opts {
		opt(r)
	}
	go r.loop()
	return r
}

// Register enqueues (engine, event) without blocking. A no-op once the runner has
// closed (either via Close or after a terminal error from Step).
func (r *AsyncRunner) Register(engine *Engine, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.queue = append(r.queue, asyncJob{engine: engine, event: event})
	r.cond.Signal()
}

func (r *AsyncRunner) loop() {
	defer close(r.done)
	for {
		r.mu.Lock()
		for len(r.queue) == 0 && !r.closed {
			r.cond.Wait()
		}
		if r.closed {
			r.mu.Unlock()
			return
		}
		job := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		if err := r.runStep(job); err != nil {
			r.logger.Printf("statecraft: async runner step failed, terminating: %v", err)
			r.mu.Lock()
			r.closed = true
			r.queue = nil
			r.mu.Unlock()
			return
		}
		if r.observer != nil {
			r.observer(job.engine, job.event)
		}
	}
}

// runStep invokes engine.Step, converting a panicking action/condition into an
// error per §4.5/§7.2: "if engine.step raises, the consumer logs and terminates".
func (r *AsyncRunner) runStep(job asyncJob) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	job.engine.Step(job.event)
	return nil
}

// Close stops the consumer at its next suspension point, drops any queued but
// unconsumed events, and returns only after the consumer goroutine has
// terminated — guaranteeing no Step is in flight once Close returns. Safe to
// call more than once. If ctx is canceled before the consumer terminates, Close
// returns ctx.Err() without waiting further (the consumer still terminates
// asynchronously).
func (r *AsyncRunner) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		r.queue = nil
		r.cond.Broadcast()
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
