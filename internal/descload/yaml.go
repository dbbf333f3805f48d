package descload

import (
	"fmt"
	"io"

	"github.com/comalice/statecraft"
	"gopkg.in/yaml.v3"
)

// yamlTransition is the wire shape of one Transition in the YAML description
// format. It mirrors statecraft.Transition field-for-field (modulo the pointer
// Target, represented here as an omittable string).
type yamlTransition struct {
	Event      string   `yaml:"event"`
	Target     string   `yaml:"target,omitempty"`
	Actions    []string `yaml:"actions,omitempty"`
	Conditions []string `yaml:"conditions,omitempty"`
	Internal   bool     `yaml:"internal,omitempty"`
}

// yamlState is the wire shape of one State. Unlike SCXML, field names are
// spelled out rather than abbreviated to XML attribute conventions.
type yamlState struct {
	Name        string           `yaml:"name"`
	Final       bool             `yaml:"final,omitempty"`
	Entries     []string         `yaml:"entries,omitempty"`
	Exits       []string         `yaml:"exits,omitempty"`
	Transitions []yamlTransition `yaml:"transitions,omitempty"`
	Children    []yamlState      `yaml:"children,omitempty"`
}

// yamlDocument is the top-level document: an ordered list of root states, the
// first of which is the initial root (same convention as NewEngine's roots
// parameter — order is explicit in the document rather than named by an
// "initial" attribute).
type yamlDocument struct {
	States []yamlState `yaml:"states"`
}

// ParseYAML parses a YAML state description and returns the root states in
// document order. It is an additive alternative to ParseSCXML: the tree shape
// it produces is identical, but the wire format is a direct YAML rendering of
// statecraft.State rather than the SCXML subset of §6.1.
func ParseYAML(r io.Reader) ([]statecraft.State, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("descload: yaml decode: %w", err)
	}

	states := make([]statecraft.State, len(doc.States))
	for i, s := range doc.States {
		states[i] = convertYAMLState(s)
	}
	return states, nil
}

func convertYAMLState(s yamlState) statecraft.State {
	st := statecraft.State{
		Name:    s.Name,
		Final:   s.Final,
		Entries: s.Entries,
		Exits:   s.Exits,
	}

	if len(s.Children) > 0 {
		st.Children = make([]statecraft.State, len(s.Children))
		for i, c := range s.Children {
			st.Children[i] = convertYAMLState(c)
		}
	}

	if len(s.Transitions) > 0 {
		st.Transitions = make([]statecraft.Transition, len(s.Transitions))
		for i, t := range s.Transitions {
			tr := statecraft.Transition{
				Event:      t.Event,
				Actions:    t.Actions,
				Conditions: t.Conditions,
				Internal:   t.Internal,
			}
			if t.Target != "" {
				tr.Target = statecraft.Target(t.Target)
			}
			st.Transitions[i] = tr
		}
	}
	return st
}
