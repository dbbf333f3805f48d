package extensibility

import (
	"time"

	"github.com/comalice/statecraft"
)

// EventSource produces a stream of events for a caller to feed into whichever
// Runner it is using — SyncRunner.Register, AsyncRunner.Register, or
// TickRunner.Register all accept a statecraft.Event, so a source is kept
// deliberately runner-agnostic.
type EventSource interface {
	Events() <-chan statecraft.Event
}

// ChannelEventSource adapts a caller-owned channel into an EventSource.
type ChannelEventSource struct {
	ch chan statecraft.Event
}

// NewChannelEventSource wraps ch. The channel should be buffered if the
// producer must never block on a slow consumer.
func NewChannelEventSource(ch chan statecraft.Event) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// Events returns the receive-only view of the wrapped channel.
func (s *ChannelEventSource) Events() <-chan statecraft.Event {
	return s.ch
}

// TimerEventSource emits the same named event on a fixed period, for
// timeout/heartbeat-style transitions (e.g. a traffic light's TIMER event).
type TimerEventSource struct {
	ch     chan statecraft.Event
	name   statecraft.EventName
	ticker *time.Ticker
	stop   chan struct{}
}

// NewTimerEventSource creates and starts a TimerEventSource emitting name
// every d.
func NewTimerEventSource(name statecraft.EventName, d time.Duration) *TimerEventSource {
	t := &TimerEventSource{
		ch:     make(chan statecraft.Event, 1),
		name:   name,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerEventSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- statecraft.NewEvent(t.name, nil):
			default:
				// Consumer hasn't drained the previous tick; drop rather than block.
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Events returns the receive-only event channel.
func (t *TimerEventSource) Events() <-chan statecraft.Event {
	return t.ch
}

// Stop terminates the ticker goroutine and closes the event channel.
func (t *TimerEventSource) Stop() {
	close(t.stop)
}
