package statecraft

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

// TickRunner drives one Engine at a fixed wall-clock rate instead of
// immediately on Register: events submitted between ticks are batched,
// ordered, and replayed in a single burst at the next tick boundary. This is
// the fixed-timestep sibling of SyncRunner/AsyncRunner, adapted from the
// teacher's tick-based runtime (realtime/runtime.go, realtime/tick.go,
// realtime/event.go) with the parallel-region batch phase removed — a single
// Engine has a single configuration, so there is nothing to process "per
// region".
type TickRunner struct {
	engine   *Engine
	rate     time.Duration
	logger   *log.Logger
	observer StepObserver

	mu       sync.Mutex
	batch    []tickJob
	sequence uint64

	ticker *time.Ticker
	stop   chan struct{}
	done   chan struct{}
}

type tickJob struct {
	event    Event
	priority int
	sequence uint64
}

// NewTickRunner creates a TickRunner over engine at the given tick rate and
// starts its ticking goroutine immediately.
func NewTickRunner(engine *Engine, rate time.Duration, opts ...TickOption) *TickRunner {
	r := &TickRunner{
		engine: engine,
		rate:   rate,
		logger: log.Default(),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.ticker = time.NewTicker(rate)
	go r.loop()
	return r
}

// Register queues event for the next tick. Safe to call from any goroutine;
// never blocks. priority orders events within the same tick — higher first —
// with registration order as the tiebreaker (§ ordering guarantee, mirroring
// realtime/event.go's sortEvents).
func (r *TickRunner) Register(event Event, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batch = append(r.batch, tickJob{event: event, priority: priority, sequence: r.sequence})
	r.sequence++
}

func (r *TickRunner) loop() {
	defer close(r.done)
	for {
		select {
		case <-r.stop:
			return
		case <-r.ticker.C:
			r.processTick()
		}
	}
}

func (r *TickRunner) processTick() {
	r.mu.Lock()
	jobs := r.batch
	r.batch = nil
	r.mu.Unlock()

	if len(jobs) == 0 {
		return
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].priority != jobs[j].priority {
			return jobs[i].priority > jobs[j].priority
		}
		return jobs[i].sequence < jobs[j].sequence
	})

	for _, job := range jobs {
		if err := r.runStep(job.event); err != nil {
			r.logger.Printf("statecraft: tick runner step failed, dropping remainder of tick: %v", err)
			return
		}
		if r.observer != nil {
			r.observer(r.engine, job.event)
		}
	}
}

func (r *TickRunner) runStep(event Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	r.engine.Step(event)
	return nil
}

// Stop halts the ticking goroutine and returns once it has exited. Any events
// queued for a tick that never arrives are dropped, mirroring AsyncRunner's
// Close semantics.
func (r *TickRunner) Stop() {
	close(r.stop)
	r.ticker.Stop()
	<-r.done
}
