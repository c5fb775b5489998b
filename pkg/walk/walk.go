// Package walk drives a pattern over a tree: it visits every node in
// pre-order and feeds each one to the pattern inside a session, collecting
// the nodes that matched.
package walk

import (
	"github.com/Sumatoshi-tech/shapematch/pkg/shape"
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// Walk visits every node of root in pre-order, matching pat against each
// one in sess. visit is called with the visited node and the match result
// for every successful match; returning false stops the walk early. The
// engine itself has no notion of stopping, so early exit is purely the
// driver's concern.
func Walk(sess *shape.Session, pat *shape.Pattern, root *tree.Node, visit func(node *tree.Node, result shape.Value) bool) {
	if root == nil {
		return
	}

	stack := []*tree.Node{root}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if result, matched := sess.MatchNode(pat, curr); matched {
			if !visit(curr, result) {
				return
			}
		}

		children := curr.Children()
		for idx := len(children) - 1; idx >= 0; idx-- {
			stack = append(stack, children[idx])
		}
	}
}

// Find returns the match result value for every node of root that pat
// matched, in visit order. Redirecting patterns contribute their redirected
// value, deduplicated by the session's match set semantics at the caller's
// discretion.
func Find(sess *shape.Session, pat *shape.Pattern, root *tree.Node) []shape.Value {
	var results []shape.Value

	Walk(sess, pat, root, func(_ *tree.Node, result shape.Value) bool {
		results = append(results, result)

		return true
	})

	return results
}

// First returns the first match result, stopping the walk as soon as one is
// found.
func First(sess *shape.Session, pat *shape.Pattern, root *tree.Node) (shape.Value, bool) {
	var (
		found shape.Value
		ok    bool
	)

	Walk(sess, pat, root, func(_ *tree.Node, result shape.Value) bool {
		found = result
		ok = true

		return false
	})

	return found, ok
}
