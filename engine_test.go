package statecraft

import (
	"errors"
	"reflect"
	"testing"
)

func recordingAction(log *[]string, label string) Action {
	return func(eng *Engine, event *Event) {
		*log = append(*log, label)
	}
}

func TestNewEngineEmptyRootsIsFinished(t *testing.T) {
	eng, err := NewEngine(nil, nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if !eng.Finished() {
		t.Error("empty engine should be immediately Finished")
	}
	if _, ok := eng.CurrentState(); ok {
		t.Error("empty engine should have no current state")
	}
	if len(eng.Configuration()) != 0 {
		t.Error("empty engine should have empty configuration")
	}
}

func TestNewEngineInitialDescent(t *testing.T) {
	states := []State{
		{
			Name: "s1",
			Children: []State{
				{Name: "s2"},
				{Name: "s3"},
			},
		},
	}
	eng, err := NewEngine(states, nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	got := eng.Configuration()
	want := []StateName{"s1", "s2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Configuration = %v, want %v", got, want)
	}
}

func TestNewEngineDuplicateState(t *testing.T) {
	states := []State{{Name: "a"}, {Name: "a"}}
	_, err := NewEngine(states, nil, nil)
	if !errors.Is(err, ErrDuplicateState) {
		t.Errorf("err = %v, want ErrDuplicateState", err)
	}
}

func TestNewEngineDanglingTarget(t *testing.T) {
	states := []State{
		{Name: "a", Transitions: []Transition{{Event: "go", Target: Target("nope")}}},
	}
	_, err := NewEngine(states, nil, nil)
	if !errors.Is(err, ErrDanglingTarget) {
		t.Errorf("err = %v, want ErrDanglingTarget", err)
	}
}

func TestNewEngineMissingAction(t *testing.T) {
	states := []State{{Name: "a", Entries: []ActionName{"missing"}}}
	_, err := NewEngine(states, nil, nil)
	if !errors.Is(err, ErrMissingAction) {
		t.Errorf("err = %v, want ErrMissingAction", err)
	}
}

func TestNewEngineMissingCondition(t *testing.T) {
	states := []State{
		{Name: "a", Transitions: []Transition{{Event: "go", Conditions: []ConditionName{"missing"}}}},
	}
	_, err := NewEngine(states, nil, nil)
	if !errors.Is(err, ErrMissingCondition) {
		t.Errorf("err = %v, want ErrMissingCondition", err)
	}
}

// Single-state self-loop: external transition exits and re-enters.
func TestStepSelfLoopExternal(t *testing.T) {
	var log []string
	actions := map[ActionName]Action{
		"enter": recordingAction(&log, "enter"),
		"exit":  recordingAction(&log, "exit"),
	}
	states := []State{
		{
			Name:    "s",
			Entries: []ActionName{"enter"},
			Exits:   []ActionName{"exit"},
			Transitions: []Transition{
				{Event: "go", Target: Target("s")},
			},
		},
	}
	eng, err := NewEngine(states, actions, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	log = nil // discard initial descent's entry
	eng.Step(NewEvent("go", nil))
	want := []string{"exit", "enter"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

// Single-state self-loop marked internal: no exit/re-entry.
func TestStepSelfLoopInternal(t *testing.T) {
	var log []string
	actions := map[ActionName]Action{
		"enter": recordingAction(&log, "enter"),
		"exit":  recordingAction(&log, "exit"),
		"act":   recordingAction(&log, "act"),
	}
	states := []State{
		{
			Name:    "s",
			Entries: []ActionName{"enter"},
			Exits:   []ActionName{"exit"},
			Transitions: []Transition{
				{Event: "go", Target: Target("s"), Internal: true, Actions: []ActionName{"act"}},
			},
		},
	}
	eng, err := NewEngine(states, actions, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	log = nil
	eng.Step(NewEvent("go", nil))
	want := []string{"act"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

// Nested states s1[s2, s3]: a transition from s2 to s3 exits/enters only the
// leaves, since s1 is their common ancestor.
func TestStepNestedSiblingTransition(t *testing.T) {
	var log []string
	actions := map[ActionName]Action{
		"enterS1": recordingAction(&log, "enterS1"),
		"exitS1":  recordingAction(&log, "exitS1"),
		"enterS2": recordingAction(&log, "enterS2"),
		"exitS2":  recordingAction(&log, "exitS2"),
		"enterS3": recordingAction(&log, "enterS3"),
	}
	states := []State{
		{
			Name:    "s1",
			Entries: []ActionName{"enterS1"},
			Exits:   []ActionName{"exitS1"},
			Children: []State{
				{
					Name:    "s2",
					Entries: []ActionName{"enterS2"},
					Exits:   []ActionName{"exitS2"},
					Transitions: []Transition{
						{Event: "go", Target: Target("s3")},
					},
				},
				{
					Name:    "s3",
					Entries: []ActionName{"enterS3"},
				},
			},
		},
	}
	eng, err := NewEngine(states, actions, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	log = nil
	eng.Step(NewEvent("go", nil))
	want := []string{"exitS2", "enterS3"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
	if cur, _ := eng.CurrentState(); cur != "s3" {
		t.Errorf("CurrentState = %q, want s3", cur)
	}
}

// A transition guarded by a false condition is skipped in favor of the next
// matching transition (or no transition at all).
func TestStepConditionFalseSkipsTransition(t *testing.T) {
	states := []State{
		{
			Name: "s",
			Transitions: []Transition{
				{Event: "go", Target: Target("s"), Conditions: []ConditionName{"never"}},
			},
		},
	}
	conditions := map[ConditionName]Condition{
		"never": func(eng *Engine, event *Event) bool { return false },
	}
	eng, err := NewEngine(states, nil, conditions)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	before := eng.Configuration()
	eng.Step(NewEvent("go", nil))
	after := eng.Configuration()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("configuration changed despite false condition: %v -> %v", before, after)
	}
}

// Local transitions (nil Target) run their actions without touching the
// configuration at all.
func TestStepLocalTransition(t *testing.T) {
	var log []string
	actions := map[ActionName]Action{"act": recordingAction(&log, "act")}
	states := []State{
		{
			Name:        "s",
			Transitions: []Transition{{Event: "go", Actions: []ActionName{"act"}}},
		},
	}
	eng, err := NewEngine(states, actions, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	before := eng.Configuration()
	eng.Step(NewEvent("go", nil))
	if !reflect.DeepEqual(log, []string{"act"}) {
		t.Errorf("log = %v, want [act]", log)
	}
	if !reflect.DeepEqual(before, eng.Configuration()) {
		t.Error("local transition must not change configuration")
	}
}

// A transition targeting a state in a wholly disjoint root exits everything
// and enters the new root from scratch.
func TestStepDisjointRoots(t *testing.T) {
	var log []string
	actions := map[ActionName]Action{
		"exitA": recordingAction(&log, "exitA"),
		"enterB": recordingAction(&log, "enterB"),
	}
	states := []State{
		{
			Name:  "a",
			Exits: []ActionName{"exitA"},
			Transitions: []Transition{
				{Event: "go", Target: Target("b")},
			},
		},
		{
			Name:    "b",
			Entries: []ActionName{"enterB"},
		},
	}
	eng, err := NewEngine(states, actions, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	log = nil
	eng.Step(NewEvent("go", nil))
	want := []string{"exitA", "enterB"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestStepFinishedIsNoOp(t *testing.T) {
	states := []State{{Name: "done", Final: true}}
	eng, err := NewEngine(states, nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if !eng.Finished() {
		t.Fatal("expected engine to be Finished at a Final initial state")
	}
	eng.Step(NewEvent("anything", nil))
	if cur, _ := eng.CurrentState(); cur != "done" {
		t.Errorf("Step on a Finished engine should not change state, got %q", cur)
	}
}

func TestStepUnmatchedEventIsNoOp(t *testing.T) {
	states := []State{{Name: "s"}}
	eng, err := NewEngine(states, nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	before := eng.Configuration()
	eng.Step(NewEvent("unhandled", nil))
	if !reflect.DeepEqual(before, eng.Configuration()) {
		t.Error("unmatched event must not change configuration")
	}
}
