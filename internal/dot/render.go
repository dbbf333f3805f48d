// Package dot renders a statecraft state tree as Graphviz DOT source: a
// cluster-per-state diagram with an initial marker node, entry/exit action
// labels, and labeled transition edges carrying guard and internal/local
// annotations (§6.3). It is a read-only traversal with no dependency on a
// live Engine — ported from the reference renderer
// (original_source/src_py/hat/stc/dot.py).
package dot

import (
	"fmt"
	"strings"

	"github.com/comalice/statecraft"
)

// Render produces a complete DOT document for the given root states. Exact
// layout is presentational only; the one compatibility contract is "valid
// DOT".
func Render(states []statecraft.State) string {
	var statesBuf, transitionsBuf strings.Builder
	renderStates(&statesBuf, states, "state")
	renderTransitions(&transitionsBuf, states, states, "state")
	return fmt.Sprintf(graphTemplate, statesBuf.String(), transitionsBuf.String())
}

func renderStates(buf *strings.Builder, states []statecraft.State, idPrefix string) {
	if len(states) == 0 {
		return
	}
	fmt.Fprintf(buf, initialNodeTemplate, idPrefix+"_initial")

	for i, state := range states {
		id := fmt.Sprintf("%s_%d", idPrefix, i)

		var actionsBuf strings.Builder
		renderStateActions(&actionsBuf, state)
		separator := ""
		if actionsBuf.Len() > 0 {
			separator = tableSeparator
		}

		var childrenBuf strings.Builder
		renderStates(&childrenBuf, state.Children, id)

		fmt.Fprintf(buf, stateTemplate, id, state.Name, separator, actionsBuf.String(), childrenBuf.String(), id)
	}
}

func renderStateActions(buf *strings.Builder, state statecraft.State) {
	for _, name := range state.Entries {
		fmt.Fprintf(buf, stateActionRowTemplate, "entry", name)
	}
	for _, name := range state.Exits {
		fmt.Fprintf(buf, stateActionRowTemplate, "exit", name)
	}
}

func renderTransitions(buf *strings.Builder, roots, states []statecraft.State, idPrefix string) {
	if len(states) == 0 {
		return
	}
	fmt.Fprintf(buf, transitionTemplate,
		idPrefix+"_initial", idPrefix+"_0", `""`, "cluster_"+idPrefix+"_0", "")

	for i, state := range states {
		srcID := fmt.Sprintf("%s_%d", idPrefix, i)

		for _, t := range state.Transitions {
			dstID := srcID
			if t.Target != nil {
				dstID = targetID(roots, "state", *t.Target)
			}

			lhead := "cluster_" + dstID
			ltail := "cluster_" + srcID
			switch {
			case lhead == ltail:
				lhead, ltail = "", ""
			case strings.HasPrefix(ltail, lhead):
				lhead = ""
			case strings.HasPrefix(lhead, ltail):
				ltail = ""
			}

			fmt.Fprintf(buf, transitionTemplate, srcID, dstID, transitionLabel(t), lhead, ltail)
		}

		renderTransitions(buf, roots, state.Children, srcID)
	}
}

// targetID resolves a transition target name to its rendered node ID by
// re-walking the same tree renderStates traversed, assigning IDs the same
// way ("<prefix>_<index>" per sibling group). Kept as a search rather than a
// shared map so Render stays a pure function of its input tree.
func targetID(states []statecraft.State, idPrefix, target statecraft.StateName) string {
	for i, s := range states {
		id := fmt.Sprintf("%s_%d", idPrefix, i)
		if s.Name == target {
			return id
		}
		if found := targetID(s.Children, id, target); found != "" {
			return found
		}
	}
	return ""
}

func transitionLabel(t statecraft.Transition) string {
	var actionsBuf strings.Builder
	for _, name := range t.Actions {
		fmt.Fprintf(&actionsBuf, transitionActionRowTemplate, name)
	}
	separator := ""
	if actionsBuf.Len() > 0 || len(t.Conditions) > 0 {
		separator = tableSeparator
	}

	condition := ""
	if len(t.Conditions) > 0 {
		condition = fmt.Sprintf(" [%s]", strings.Join(t.Conditions, " "))
	}
	internal := ""
	if t.Internal {
		internal = " (internal)"
	}
	local := ""
	if t.Target == nil {
		local = " (local)"
	}

	return fmt.Sprintf(transitionLabelTemplate, t.Event, condition, internal, local, separator, actionsBuf.String())
}

const graphTemplate = `digraph "statecraft" {
    fontname = Helvetica
    fontsize = 12
    penwidth = 2.0
    splines = true
    ordering = out
    compound = true
    overlap = scale
    nodesep = 0.3
    ranksep = 0.1
    node [
        shape = plaintext
        style = filled
        fillcolor = transparent
        fontname = Helvetica
        fontsize = 12
        penwidth = 2.0
    ]
    edge [
        fontname = Helvetica
        fontsize = 12
    ]
    %s
    %s
}
`

const initialNodeTemplate = `%s [
    shape = circle
    style = filled
    fillcolor = black
    fixedsize = true
    height = 0.15
    label = ""
]
`

const stateTemplate = `subgraph "cluster_%s" {
    label = <
        <table cellborder="0" border="0">
            <tr><td>%s</td></tr>
            %s
            %s
        </table>
    >
    style = rounded
    penwidth = 2.0
    %s
    %s [
        shape=point
        style=invis
        margin=0
        width=0
        height=0
        fixedsize=true
    ]
}
`

const tableSeparator = `<hr/>`

const stateActionRowTemplate = `<tr><td align="left">%s/ %s</td></tr>
`

const transitionTemplate = `%s -> %s [
    label = %s
    lhead = "%s"
    ltail = "%s"
]
`

const transitionLabelTemplate = `<
<table cellborder="0" border="0">
    <tr><td>%s%s%s%s</td></tr>
    %s
    %s
</table>
>`

const transitionActionRowTemplate = `<tr><td>%s</td></tr>
`
