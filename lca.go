package statecraft

// computeLCA implements the zip-based least-common-ancestor rule of §4.3, ported
// directly from the reference algorithm (original_source's
// Statechart._find_ancestor): zip the current configuration against target's
// root-to-target ancestor chain, both root-first, and stop at the first point
// where either state owns the transition (source) or is the transition's target.
//
// The return value noNode represents the virtual ancestor above every declared
// root — the disjoint-subtree case where source and target share no common
// ancestor in the tree at all (§9, "neither descendant nor ancestor nor sibling").
func (e *Engine) computeLCA(source, target nodeIndex, internal bool) nodeIndex {
	targetPath := e.ancestorChain(target)

	n := len(e.stack)
	if len(targetPath) < n {
		n = len(targetPath)
	}

	lca := noNode
	for i := 0; i < n; i++ {
		cur := e.stack[i]
		if cur != targetPath[i] {
			break
		}
		if cur == target || cur == source {
			if internal && cur == source {
				lca = cur
			}
			break
		}
		lca = cur
	}
	return lca
}

// ancestorChain returns the chain from root to idx, inclusive, root first.
func (e *Engine) ancestorChain(idx nodeIndex) []nodeIndex {
	var chain []nodeIndex
	for idx != noNode {
		chain = append(chain, idx)
		idx = e.nodes[idx].parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
