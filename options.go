package statecraft

import "log"

// StepObserver is notified after a Runner successfully applies one event to one
// Engine. It receives the engine in its post-Step configuration so it can call
// Configuration/CurrentState, and the event that was just processed. Observers
// run on the runner's consumer goroutine (AsyncRunner, TickRunner) and must not
// block or call back into the same runner.
type StepObserver func(engine *Engine, event Event)

// AsyncOption configures an AsyncRunner at construction, following the functional
// options pattern the teacher applies to Machine (internal/core/options.go).
type AsyncOption func(*AsyncRunner)

// WithAsyncLogger overrides the *log.Logger an AsyncRunner uses to report a
// terminal error from engine.Step (§4.5, §7.2). Defaults to log.Default().
func WithAsyncLogger(logger *log.Logger) AsyncOption {
	return func(r *AsyncRunner) {
		r.logger = logger
	}
}

// WithAsyncObserver registers a StepObserver invoked after every successfully
// processed job, adapted from the teacher's ChannelPublisher
// (internal/production/eventpublisher.go) which notified external listeners of
// each transition. Unlike the teacher's version this is a direct callback
// rather than a channel send, leaving backpressure policy to the observer.
func WithAsyncObserver(observer StepObserver) AsyncOption {
	return func(r *AsyncRunner) {
		r.observer = observer
	}
}

// TickOption configures a TickRunner at construction.
type TickOption func(*TickRunner)

// WithTickLogger overrides the *log.Logger a TickRunner uses to report a panic
// recovered from an action or condition during a tick.
func WithTickLogger(logger *log.Logger) TickOption {
	return func(r *TickRunner) {
		r.logger = logger
	}
}

// WithTickObserver registers a StepObserver invoked after every event processed
// during a tick.
func WithTickObserver(observer StepObserver) TickOption {
	return func(r *TickRunner) {
		r.observer = observer
	}
}
