package descload

import (
	"strings"
	"testing"
)

func TestParseYAMLFlat(t *testing.T) {
	doc := `
states:
  - name: red
    entries: [onRed]
    transitions:
      - event: TIMER
        target: green
  - name: green
    transitions:
      - event: TIMER
        target: red
        internal: true
        conditions: [ready]
`
	states, err := ParseYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("len(states) = %d, want 2", len(states))
	}
	if states[0].Name != "red" || len(states[0].Entries) != 1 || states[0].Entries[0] != "onRed" {
		t.Errorf("states[0] = %+v", states[0])
	}
	tr := states[1].Transitions[0]
	if !tr.Internal || len(tr.Conditions) != 1 || tr.Conditions[0] != "ready" {
		t.Errorf("green's transition = %+v", tr)
	}
	if tr.Target == nil || *tr.Target != "red" {
		t.Errorf("target = %v, want red", tr.Target)
	}
}

func TestParseYAMLNested(t *testing.T) {
	doc := `
states:
  - name: parent
    children:
      - name: child1
      - name: child2
`
	states, err := ParseYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if len(states) != 1 || len(states[0].Children) != 2 {
		t.Fatalf("unexpected tree: %+v", states)
	}
	if states[0].Children[0].Name != "child1" || states[0].Children[1].Name != "child2" {
		t.Errorf("children = %+v", states[0].Children)
	}
}

func TestParseYAMLLocalTransitionHasNilTarget(t *testing.T) {
	doc := `
states:
  - name: s
    transitions:
      - event: go
        actions: [act]
`
	states, err := ParseYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	tr := states[0].Transitions[0]
	if tr.Target != nil {
		t.Errorf("expected nil Target for a targetless transition, got %v", *tr.Target)
	}
	if len(tr.Actions) != 1 || tr.Actions[0] != "act" {
		t.Errorf("Actions = %v", tr.Actions)
	}
}
