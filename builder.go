package statecraft

// Builder assembles a []State tree fluently, mirroring the shape NewEngine
// expects without requiring callers to hand-nest State literals. Adapted from
// the teacher's MachineBuilder (internal/primitives/machinebuilder.go); the
// Parallel and History constructors it offered are dropped since parallel
// regions and history states are out of scope here.
type Builder struct {
	roots []State
	stack []*State
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// current returns the children slice a new sibling should be appended to: the
// top of the stack's Children if nested, otherwise the Builder's roots.
func (b *Builder) current() *[]State {
	if len(b.stack) == 0 {
		return &b.roots
	}
	return &b.stack[len(b.stack)-1].Children
}

// State appends a leaf or compound state as a child of whatever state is
// currently open (or as a new root, if none is open) and descends into it:
// subsequent calls add children of this state until a matching Up.
func (b *Builder) State(name StateName) *Builder {
	parent := b.current()
	*parent = append(*parent, State{Name: name})
	b.stack = append(b.stack, &(*parent)[len(*parent)-1])
	return b
}

// Final is State, with Final set.
func (b *Builder) Final(name StateName) *Builder {
	b.State(name)
	b.stack[len(b.stack)-1].Final = true
	return b
}

// Up closes the most recently opened state, so the next State call adds a
// sibling of it rather than a child.
func (b *Builder) Up() *Builder {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	return b
}

// Entry appends an entry action to the currently open state.
func (b *Builder) Entry(name ActionName) *Builder {
	top := b.stack[len(b.stack)-1]
	top.Entries = append(top.Entries, name)
	return b
}

// Exit appends an exit action to the currently open state.
func (b *Builder) Exit(name ActionName) *Builder {
	top := b.stack[len(b.stack)-1]
	top.Exits = append(top.Exits, name)
	return b
}

// Transition adds a transition to the currently open state, firing on event
// and moving to target.
func (b *Builder) Transition(event EventName, target StateName) *Builder {
	return b.transition(Transition{Event: event, Target: Target(target)})
}

// LocalTransition adds a transition with no target: only its actions run.
func (b *Builder) LocalTransition(event EventName) *Builder {
	return b.transition(Transition{Event: event})
}

// TransitionWith adds a fully specified transition to the currently open
// state, for callers needing guards, actions, or the internal flag.
func (b *Builder) TransitionWith(t Transition) *Builder {
	return b.transition(t)
}

func (b *Builder) transition(t Transition) *Builder {
	top := b.stack[len(b.stack)-1]
	top.Transitions = append(top.Transitions, t)
	return b
}

// Build returns the assembled root states in declaration order. It does not
// validate the tree — pass the result to NewEngine for that.
func (b *Builder) Build() []State {
	return b.roots
}
