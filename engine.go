package statecraft

import "fmt"

// nodeIndex addresses a state within an Engine's flattened arena. noNode is the
// sentinel for "no state" — used both for a root's absent parent and for a
// least-common-ancestor that falls above every declared root (see lca.go).
type nodeIndex int

const noNode nodeIndex = -1

// node is one entry in the engine's arena: a State definition plus integer
// parent/child links. Per the design notes, navigation inside the engine is
// index-based; StateName only matters at the public boundary (construction,
// transition targets, Configuration()).
type node struct {
	state    *State
	parent   nodeIndex
	children []nodeIndex
}

// Engine owns one statechart's live configuration — a stack of nodeIndex from root
// to current leaf (or final state) — and the flattened, validated tree it was built
// from. An Engine is not thread-safe and not reentrant: Step mutates the
// configuration; actions must not call Step on their own engine (route through a
// Runner instead, which defers).
type Engine struct {
	nodes      []node
	byName     map[StateName]nodeIndex
	actions    map[ActionName]Action
	conditions map[ConditionName]Condition
	stack      []nodeIndex
}

// NewEngine constructs an Engine from a sequence of root states (the first root is
// the initial root) and the action/condition lookup tables. Construction flattens
// the tree, validates it eagerly (§7.1 — duplicate names, dangling transition
// targets, unimplemented action/condition names are all fatal here rather than on
// first use), and then performs the initial descent: entering the first root and
// repeatedly its first child until a leaf or final state is reached.
//
// An empty roots slice yields a valid, immediately-Finished Engine with no current
// state — no placeholder root is synthesized (§9, "empty root list").
func NewEngine(roots []State, actions map[ActionName]Action, conditions map[ConditionName]Condition) (*Engine, error) {
	e := &Engine{
		byName:     make(map[StateName]nodeIndex),
		actions:    actions,
		conditions: conditions,
	}
	if e.actions == nil {
		e.actions = map[ActionName]Action{}
	}
	if e.conditions == nil {
		e.conditions = map[ConditionName]Condition{}
	}

	for i := range roots {
		if err := e.addSubtree(&roots[i], noNode); err != nil {
			return nil, err
		}
	}
	if err := e.validate(); err != nil {
		return nil, err
	}

	if len(e.nodes) > 0 {
		e.initialDescent()
	}
	return e, nil
}

func (e *Engine) addSubtree(s *State, parent nodeIndex) error {
	if _, exists := e.byName[s.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateState, s.Name)
	}
	idx := nodeIndex(len(e.nodes))
	e.nodes = append(e.nodes, node{state: s, parent: parent})
	e.byName[s.Name] = idx
	if parent != noNode {
		e.nodes[parent].children = append(e.nodes[parent].children, idx)
	}
	for i := range s.Children {
		if err := e.addSubtree(&s.Children[i], idx); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) validate() error {
	for i := range e.nodes {
		s := e.nodes[i].state
		for _, name := range s.Entries {
			if _, ok := e.actions[name]; !ok {
				return fmt.Errorf("%w: %q (entry action of state %q)", ErrMissingAction, name, s.Name)
			}
		}
		for _, name := range s.Exits {
			if _, ok := e.actions[name]; !ok {
				return fmt.Errorf("%w: %q (exit action of state %q)", ErrMissingAction, name, s.Name)
			}
		}
		for _, t := range s.Transitions {
			if t.Target != nil {
				if _, ok := e.byName[*t.Target]; !ok {
					return fmt.Errorf("%w: %q (transition %q from state %q)", ErrDanglingTarget, *t.Target, t.Event, s.Name)
				}
			}
			for _, name := range t.Actions {
				if _, ok := e.actions[name]; !ok {
					return fmt.Errorf("%w: %q (transition %q from state %q)", ErrMissingAction, name, t.Event, s.Name)
				}
			}
			for _, name := range t.Conditions {
				if _, ok := e.conditions[name]; !ok {
					return fmt.Errorf("%w: %q (transition %q from state %q)", ErrMissingCondition, name, t.Event, s.Name)
				}
			}
		}
	}
	return nil
}

// initialDescent pushes the initial root and then repeatedly its first child,
// invoking entries along the way, until a leaf or final state is reached.
func (e *Engine) initialDescent() {
	root := nodeIndex(0)
	e.push(root, nil)
	cur := root
	for len(e.nodes[cur].children) > 0 {
		cur = e.nodes[cur].children[0]
		e.push(cur, nil)
	}
}

// push enters a single state: append to the configuration stack and invoke its
// entry actions. event is nil only during initial descent (§4.1).
func (e *Engine) push(idx nodeIndex, event *Event) {
	e.stack = append(e.stack, idx)
	e.runActions(e.nodes[idx].state.Entries, event)
}

func (e *Engine) runActions(names []ActionName, event *Event) {
	for _, name := range names {
		if action, ok := e.actions[name]; ok {
			action(e, event)
		}
	}
}

// CurrentState returns the name of the top of the configuration stack, or ("",
// false) if the tree is empty.
func (e *Engine) CurrentState() (StateName, bool) {
	if len(e.stack) == 0 {
		return "", false
	}
	return e.nodes[e.stack[len(e.stack)-1]].state.Name, true
}

// Configuration returns the full active stack, root to leaf, as state names. The
// returned slice is a fresh copy.
func (e *Engine) Configuration() []StateName {
	names := make([]StateName, len(e.stack))
	for i, idx := range e.stack {
		names[i] = e.nodes[idx].state.Name
	}
	return names
}

// Finished reports whether the configuration stack is empty, or its top is a
// Final state (§3.3, invariant 4).
func (e *Engine) Finished() bool {
	if len(e.stack) == 0 {
		return true
	}
	return e.nodes[e.stack[len(e.stack)-1]].state.Final
}

// Step processes a single event: the microstep of §4.2. It is idempotent on a
// Finished engine and a no-op when no ancestor of the current state has a
// satisfied transition for event.Name.
func (e *Engine) Step(event Event) {
	if e.Finished() {
		return
	}

	sourceIdx, transition := e.findEnabledTransition(event)
	if transition == nil {
		return
	}

	if transition.Target == nil {
		// Local transition: configuration unchanged, only actions fire.
		e.runActions(transition.Actions, &event)
		return
	}

	targetIdx, ok := e.byName[*transition.Target]
	if !ok {
		// Construction validated this; unreachable unless the caller mutated
		// the tree post-construction (a documented programmer error, §7.4).
		return
	}

	lca := e.computeLCA(sourceIdx, targetIdx, transition.Internal)
	e.exitTo(lca, &event)
	e.runActions(transition.Actions, &event)
	e.enterFrom(lca, targetIdx, &event)
}

// findEnabledTransition walks from the current leaf toward the root, returning the
// first state with a Transition matching event.Name whose conditions are all
// satisfied. Within a state, transitions are scanned in declaration order.
func (e *Engine) findEnabledTransition(event Event) (nodeIndex, *Transition) {
	for i := len(e.stack) - 1; i >= 0; i-- {
		idx := e.stack[i]
		s := e.nodes[idx].state
		for ti := range s.Transitions {
			t := &s.Transitions[ti]
			if t.Event != event.Name {
				continue
			}
			if e.allConditionsTrue(t.Conditions, event) {
				return idx, t
			}
		}
	}
	return noNode, nil
}

func (e *Engine) allConditionsTrue(names []ConditionName, event Event) bool {
	for _, name := range names {
		if !e.conditions[name](e, &event) {
			return false
		}
	}
	return true
}

// exitTo pops the configuration stack, invoking each popped state's exit actions,
// until the top equals lca (inclusive rule: lca itself is never popped). lca ==
// noNode pops the entire stack — the disjoint-subtree case of §4.3.
func (e *Engine) exitTo(lca nodeIndex, event *Event) {
	for len(e.stack) > 0 && e.stack[len(e.stack)-1] != lca {
		top := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		e.runActions(e.nodes[top].state.Exits, event)
	}
}

// enterFrom pushes the entry path from the child of lca down to target, then
// continues descending first children until a leaf or final state, invoking entry
// actions throughout.
func (e *Engine) enterFrom(lca, target nodeIndex, event *Event) {
	var path []nodeIndex
	for idx := target; idx != lca && idx != noNode; idx = e.nodes[idx].parent {
		path = append(path, idx)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	for _, idx := range path {
		e.push(idx, event)
	}

	cur := target
	for len(e.nodes[cur].children) > 0 {
		cur = e.nodes[cur].children[0]
		e.push(cur, event)
	}
}
