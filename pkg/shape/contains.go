package shape

import (
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// Contains matches a node that has some proper descendant satisfying inner.
// The search is depth-first in slot declaration order and records the
// ORIGINAL node as the match: the descendant is the evidence, the ancestor
// is what is matched. Panics when inner is nil.
func Contains(inner *Pattern) *Pattern {
	return ContainsUntil(inner, nil)
}

// ContainsUntil is Contains with a boundary: descendants matched by until
// are neither inspected nor descended into, pruning the search early. Nodes
// already inspected by a previous call in the same Session are skipped via
// a per-session seen set. A nil until means no boundary.
func ContainsUntil(inner, until *Pattern) *Pattern {
	if inner == nil {
		panic("shape: Contains requires a non-nil inner pattern")
	}

	params := []Param{{Name: "pattern", Value: inner}}
	if until != nil {
		params = append(params, Param{Name: "until", Value: until})
	}

	return &Pattern{
		op:     opContains,
		subs:   []*Pattern{inner},
		until:  until,
		params: params,
	}
}

func (sess *Session) evalContains(pat *Pattern, in Value) (Value, bool) {
	node, ok := in.Node()
	if !ok {
		return Value{}, false
	}

	seen := sess.stateFor(pat).seen
	stack := make([]*tree.Node, 0, len(node.Children()))
	stack = appendReversed(stack, node.Children())

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, visited := seen[curr]; visited {
			continue
		}

		seen[curr] = struct{}{}

		if pat.until != nil {
			if _, boundary := sess.eval(pat.until, NodeValue(curr)); boundary {
				continue
			}
		}

		if _, matched := sess.eval(pat.subs[0], NodeValue(curr)); matched {
			return in, true
		}

		stack = appendReversed(stack, curr.Children())
	}

	return Value{}, false
}

func appendReversed(stack []*tree.Node, children []*tree.Node) []*tree.Node {
	for idx := len(children) - 1; idx >= 0; idx-- {
		stack = append(stack, children[idx])
	}

	return stack
}
