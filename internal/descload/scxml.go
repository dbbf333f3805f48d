// Package descload turns external state-description documents into
// statecraft.State trees. It implements the SCXML subset specified by the
// engine's external interface (§6.1) plus a YAML sibling format that reuses the
// same tree shape, following the teacher's habit of carrying both a json and a
// yaml tag on its config structs (internal/primitives/stateconfig.go).
package descload

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/comalice/statecraft"
)

// xmlNode is a namespace-free, order-preserving view of one XML element: its
// local tag name, its attributes, any directly-contained character data, and
// its child elements in document order. encoding/xml's xml.Name already
// separates the namespace URI from the local name, so building this view is
// how this parser satisfies "ignore all namespaces": only Name.Local is ever
// consulted.
type xmlNode struct {
	tag      string
	attrs    map[string]string
	text     string
	children []*xmlNode
}

// ParseSCXML parses the SCXML subset described in §6.1 and returns the root
// states in the order the engine expects: if the scxml element carries an
// initial attribute, that state comes first; the remaining state/final
// children follow in document order. The same ordering rule applies
// recursively to every nested state's initial attribute.
func ParseSCXML(r io.Reader) ([]statecraft.State, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("descload: no root element found")
		}
		if err != nil {
			return nil, fmt.Errorf("descload: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		root, err := readElement(dec, start)
		if err != nil {
			return nil, fmt.Errorf("descload: %w", err)
		}
		if root.tag != "scxml" {
			return nil, fmt.Errorf("descload: root element is %q, want <scxml>", root.tag)
		}
		return parseStates(root), nil
	}
}

func readElement(dec *xml.Decoder, start xml.StartElement) (*xmlNode, error) {
	n := &xmlNode{tag: start.Name.Local, attrs: make(map[string]string, len(start.Attr))}
	for _, a := range start.Attr {
		n.attrs[a.Name.Local] = a.Value
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := readElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.text = text.String()
			return n, nil
		}
	}
}

// parseStates converts the state/final children of parent into State values,
// applying the initial-first ordering rule.
func parseStates(parent *xmlNode) []statecraft.State {
	var states []statecraft.State
	positionByName := make(map[string]int)
	for _, child := range parent.children {
		if child.tag != "state" && child.tag != "final" {
			continue
		}
		positionByName[child.attrs["id"]] = len(states)
		states = append(states, parseState(child))
	}
	if len(states) == 0 {
		return nil
	}

	initial := parent.attrs["initial"]
	pos, ok := positionByName[initial]
	if initial == "" || !ok {
		return states
	}

	ordered := make([]statecraft.State, 0, len(states))
	ordered = append(ordered, states[pos])
	for i, s := range states {
		if i != pos {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

func parseState(el *xmlNode) statecraft.State {
	s := statecraft.State{
		Name:  el.attrs["id"],
		Final: el.tag == "final",
	}
	s.Children = parseStates(el)

	for _, child := range el.children {
		switch child.tag {
		case "transition":
			s.Transitions = append(s.Transitions, parseTransition(child))
		case "onentry":
			if name := strings.TrimSpace(child.text); name != "" {
				s.Entries = append(s.Entries, name)
			}
		case "onexit":
			if name := strings.TrimSpace(child.text); name != "" {
				s.Exits = append(s.Exits, name)
			}
		}
	}
	return s
}

func parseTransition(el *xmlNode) statecraft.Transition {
	t := statecraft.Transition{
		Event:    el.attrs["event"],
		Internal: el.attrs["type"] == "internal",
	}
	if target := el.attrs["target"]; target != "" {
		t.Target = statecraft.Target(target)
	}
	if cond := el.attrs["cond"]; cond != "" {
		t.Conditions = strings.Fields(cond)
	}
	if actions := strings.Fields(el.text); len(actions) > 0 {
		t.Actions = actions
	}
	return t
}
