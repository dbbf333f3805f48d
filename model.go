// Package statecraft implements a hierarchical statechart execution engine: it loads a
// declarative state tree, drives it with externally supplied events, and invokes
// user-supplied actions and conditions in a precisely defined order.
//
// The engine does not parse state descriptions itself (see internal/descload for the
// SCXML-subset and YAML loaders) and does not render diagrams itself (see
// internal/dot). It owns the state tree data model, the transition microstep, a
// fluent Builder, and the three event-dispatch runners (SyncRunner, AsyncRunner,
// TickRunner).
package statecraft

// EventName, StateName, ActionName and ConditionName are opaque string identifiers;
// equality is exact-match.
type (
	EventName     = string
	StateName     = string
	ActionName    = string
	ConditionName = string
)

// Event is an immutable pair of name and payload. The payload is opaque to the
// engine — it passes through to actions and conditions unchanged.
type Event struct {
	Name    EventName
	Payload any
}

// NewEvent constructs an Event.
func NewEvent(name EventName, payload any) Event {
	return Event{Name: name, Payload: payload}
}

// Action is invoked on state entry, state exit, and transition firing. event is nil
// only during the initial descent performed at construction.
type Action func(eng *Engine, event *Event)

// Condition guards a Transition. event is nil only during the initial descent; in
// practice conditions are never consulted during that phase.
type Condition func(eng *Engine, event *Event) bool

// Transition is an immutable outgoing edge of a State.
type Transition struct {
	// Event is the event name that triggers this transition; matched exactly
	// against the incoming Event.Name.
	Event EventName

	// Target is the destination state name. A nil Target marks a local
	// transition: the configuration does not change, only Actions fire.
	Target *StateName

	// Actions run, in order, once the transition is selected.
	Actions []ActionName

	// Conditions guard eligibility. All must evaluate true, left to right,
	// short-circuiting on the first false. An empty list is always satisfied.
	Conditions []ConditionName

	// Internal is meaningful only when Target names the transition's source
	// state or a descendant of it: it suppresses exit/re-entry of the source
	// (see LCA rules in lca.go).
	Internal bool
}

// Target builds a *StateName for use as Transition.Target. Convenience for callers
// constructing trees by hand (loaders build Transition values directly).
func Target(name StateName) *StateName {
	return &name
}

// State is an immutable node in the state tree. If Children is non-empty, the first
// child is the initial substate entered by default — order is significant.
type State struct {
	Name        StateName
	Children    []State
	Transitions []Transition
	Entries     []ActionName
	Exits       []ActionName

	// Final marks a state as terminal: by convention it has no children and no
	// outgoing transitions, and entering it makes the owning Engine Finished.
	Final bool
}
