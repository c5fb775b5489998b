// Package shape implements a structural pattern-matching engine for labeled
// trees. Callers declare a shape with combinator constructors, then test
// candidate nodes or node lists against it inside a Session, optionally
// capturing sub-matches by name.
//
// Patterns are immutable specifications; all match history (last match,
// accumulated match set, descendant-search seen set) lives in the Session,
// so one pattern graph can be reused across independent traversals by
// allocating a fresh Session per traversal.
package shape

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

type valueTag uint8

const (
	valueNone valueTag = iota
	valueNode
	valueList
)

// Value is the tagged union a pattern matches against and reports back: a
// single tree node or a node list. The zero Value means "no value"; a
// successful match never carries it, a failed one always does.
type Value struct {
	node *tree.Node
	list []*tree.Node
	tag  valueTag
}

// NodeValue wraps a single node.
func NodeValue(node *tree.Node) Value {
	if node == nil {
		return Value{}
	}

	return Value{tag: valueNode, node: node}
}

// ListValue wraps a node list.
func ListValue(list []*tree.Node) Value {
	return Value{tag: valueList, list: list}
}

// IsZero reports whether the value is absent.
func (val Value) IsZero() bool {
	return val.tag == valueNone
}

// Node returns the wrapped node and whether the value holds one.
func (val Value) Node() (*tree.Node, bool) {
	return val.node, val.tag == valueNode
}

// List returns the wrapped list and whether the value holds one.
func (val Value) List() ([]*tree.Node, bool) {
	return val.list, val.tag == valueList
}

// identityKey returns a comparable key identifying the value for match-set
// deduplication: nodes by pointer, lists by their element pointers.
func (val Value) identityKey() any {
	switch val.tag {
	case valueNode:
		return val.node
	case valueList:
		var buf strings.Builder

		for _, node := range val.list {
			fmt.Fprintf(&buf, "%p;", node)
		}

		return buf.String()
	default:
		return nil
	}
}

// String returns a short debug form of the value.
func (val Value) String() string {
	switch val.tag {
	case valueNode:
		return val.node.String()
	case valueList:
		return fmt.Sprintf("List(%d)", len(val.list))
	default:
		return "<none>"
	}
}
