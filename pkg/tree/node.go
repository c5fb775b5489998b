package tree

import (
	"fmt"
	"strings"
)

// Node is an element of the labeled tree: a kind tag, an optional token and
// source snippet, position info, free-form properties, a parent link, and
// ordered named child slots.
//
// Nodes compare by pointer identity; the matching engine relies on that for
// its match sets and seen sets.
type Node struct {
	Kind   Kind              `json:"kind"`
	Token  string            `json:"token,omitempty"`
	Text   string            `json:"text,omitempty"`
	Pos    *Positions        `json:"pos,omitempty"`
	Props  map[string]string `json:"props,omitempty"`
	parent *Node
	slots  []Slot
}

// New creates a node of the given kind with no slots.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// NewLeaf creates a leaf node with a kind and token. The token doubles as
// the text for leaves.
func NewLeaf(kind Kind, token string) *Node {
	return &Node{Kind: kind, Token: token, Text: token}
}

// NewIdentifier creates an identifier leaf.
func NewIdentifier(name string) *Node {
	return NewLeaf(KindIdentifier, name)
}

// NewBool creates a synthetic boolean literal node. Slot promotion uses it
// so primitive flags match with the same vocabulary as real nodes.
func NewBool(value bool) *Node {
	node := NewLeaf(KindBool, fmt.Sprintf("%t", value))
	node.Props = map[string]string{"synthetic": "true"}

	return node
}

// NewString creates a synthetic string literal node.
func NewString(value string) *Node {
	node := NewLeaf(KindString, value)
	node.Props = map[string]string{"synthetic": "true"}

	return node
}

// NodeBuilder provides a fluent interface for building Node instances.
type NodeBuilder struct {
	node *Node
}

// NewBuilder creates a new NodeBuilder.
func NewBuilder(kind Kind) *NodeBuilder {
	return &NodeBuilder{node: New(kind)}
}

// WithToken sets the node token.
func (builder *NodeBuilder) WithToken(token string) *NodeBuilder {
	builder.node.Token = token

	return builder
}

// WithText sets the node source snippet.
func (builder *NodeBuilder) WithText(text string) *NodeBuilder {
	builder.node.Text = text

	return builder
}

// WithPosition sets the node position.
func (builder *NodeBuilder) WithPosition(pos *Positions) *NodeBuilder {
	builder.node.Pos = pos

	return builder
}

// WithProps sets the node properties.
func (builder *NodeBuilder) WithProps(props map[string]string) *NodeBuilder {
	builder.node.Props = props

	return builder
}

// WithSlot adds a single-node child slot.
func (builder *NodeBuilder) WithSlot(name string, child *Node) *NodeBuilder {
	builder.node.Set(name, child)

	return builder
}

// WithListSlot adds a node-list child slot.
func (builder *NodeBuilder) WithListSlot(name string, children ...*Node) *NodeBuilder {
	builder.node.SetList(name, children)

	return builder
}

// Build returns the built node.
func (builder *NodeBuilder) Build() *Node {
	return builder.node
}

// Parent returns the node's parent, or nil for roots and detached nodes.
func (targetNode *Node) Parent() *Node {
	return targetNode.parent
}

// Slot returns the value of the named slot. The zero SlotValue is returned
// for slots the node does not carry.
func (targetNode *Node) Slot(name string) SlotValue {
	for _, slot := range targetNode.slots {
		if slot.Name == name {
			return slot.Value
		}
	}

	return SlotValue{}
}

// Slots returns the node's slots in declaration order.
func (targetNode *Node) Slots() []Slot {
	return targetNode.slots
}

// SetValue sets the named slot to an arbitrary slot value, replacing any
// previous value and maintaining parent links for node-bearing values.
func (targetNode *Node) SetValue(name string, value SlotValue) {
	if child, ok := value.Node(); ok && child != nil {
		child.parent = targetNode
	}

	if children, ok := value.List(); ok {
		for _, child := range children {
			if child != nil {
				child.parent = targetNode
			}
		}
	}

	for idx := range targetNode.slots {
		if targetNode.slots[idx].Name == name {
			targetNode.slots[idx].Value = value

			return
		}
	}

	targetNode.slots = append(targetNode.slots, Slot{Name: name, Value: value})
}

// Set sets the named slot to a single child node.
func (targetNode *Node) Set(name string, child *Node) {
	targetNode.SetValue(name, NodeSlot(child))
}

// SetList sets the named slot to a child node list.
func (targetNode *Node) SetList(name string, children []*Node) {
	targetNode.SetValue(name, ListSlot(children))
}

// SetBool sets the named slot to a primitive boolean flag.
func (targetNode *Node) SetBool(name string, flag bool) {
	targetNode.SetValue(name, BoolSlot(flag))
}

// SetString sets the named slot to a primitive string value.
func (targetNode *Node) SetString(name string, value string) {
	targetNode.SetValue(name, StringSlot(value))
}

// Name returns the node's intrinsic name: the token of an identifier held
// in the "name" slot, a primitive string in that slot, or the "name"
// property. The second result reports whether a name was found.
func (targetNode *Node) Name() (string, bool) {
	slot := targetNode.Slot("name")

	if child, ok := slot.Node(); ok && child != nil && child.Token != "" {
		return child.Token, true
	}

	if str, ok := slot.String(); ok {
		return str, true
	}

	if name, ok := targetNode.Props["name"]; ok {
		return name, true
	}

	return "", false
}

// Children returns all child nodes across slots in slot declaration order.
func (targetNode *Node) Children() []*Node {
	var children []*Node

	for _, slot := range targetNode.slots {
		if child, ok := slot.Value.Node(); ok && child != nil {
			children = append(children, child)
		}

		if list, ok := slot.Value.List(); ok {
			for _, child := range list {
				if child != nil {
					children = append(children, child)
				}
			}
		}
	}

	return children
}

// VisitPreOrder visits all nodes in pre-order (node, then children
// left-to-right), iteratively.
func (targetNode *Node) VisitPreOrder(visit func(*Node)) {
	if targetNode == nil {
		return
	}

	stack := []*Node{targetNode}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visit(curr)

		stack = pushReversedChildren(curr, stack)
	}
}

// Find returns all nodes in the tree (including the receiver) for which the
// predicate is true, in pre-order.
func (targetNode *Node) Find(predicate func(*Node) bool) []*Node {
	var found []*Node

	targetNode.VisitPreOrder(func(curr *Node) {
		if predicate(curr) {
			found = append(found, curr)
		}
	})

	return found
}

func pushReversedChildren(targetNode *Node, stack []*Node) []*Node {
	children := targetNode.Children()

	for idx := len(children) - 1; idx >= 0; idx-- {
		stack = append(stack, children[idx])
	}

	return stack
}

// String returns a compact debug representation of the node.
func (targetNode *Node) String() string {
	if targetNode == nil {
		return "nil"
	}

	var buf strings.Builder

	buf.WriteString("Node{Kind:")
	buf.WriteString(string(targetNode.Kind))

	if targetNode.Token != "" {
		buf.WriteString(",Token:")
		buf.WriteString(targetNode.Token)
	}

	if len(targetNode.slots) > 0 {
		buf.WriteString(",Slots:[")

		for idx, slot := range targetNode.slots {
			if idx > 0 {
				buf.WriteString(" ")
			}

			buf.WriteString(slot.Name)
		}

		buf.WriteString("]")
	}

	buf.WriteString("}")

	return buf.String()
}

// ToMap converts the node to a map representation for serialization.
func (targetNode *Node) ToMap() map[string]any {
	if targetNode == nil {
		return nil
	}

	result := map[string]any{"kind": string(targetNode.Kind)}

	if targetNode.Token != "" {
		result["token"] = targetNode.Token
	}

	if targetNode.Text != "" && targetNode.Text != targetNode.Token {
		result["text"] = targetNode.Text
	}

	if len(targetNode.Props) > 0 {
		result["props"] = targetNode.Props
	}

	if targetNode.Pos != nil {
		result["pos"] = map[string]any{
			"start_line": targetNode.Pos.StartLine,
			"start_col":  targetNode.Pos.StartCol,
			"end_line":   targetNode.Pos.EndLine,
			"end_col":    targetNode.Pos.EndCol,
		}
	}

	if len(targetNode.slots) > 0 {
		slots := make([]map[string]any, 0, len(targetNode.slots))

		for _, slot := range targetNode.slots {
			slots = append(slots, slotToMap(slot))
		}

		result["slots"] = slots
	}

	return result
}

func slotToMap(slot Slot) map[string]any {
	entry := map[string]any{"name": slot.Name}

	switch {
	case slot.Value.tag == slotNode:
		entry["node"] = slot.Value.node.ToMap()
	case slot.Value.tag == slotList:
		list := make([]map[string]any, 0, len(slot.Value.list))

		for _, child := range slot.Value.list {
			list = append(list, child.ToMap())
		}

		entry["list"] = list
	case slot.Value.tag == slotBool:
		entry["bool"] = slot.Value.flag
	case slot.Value.tag == slotString:
		entry["string"] = slot.Value.str
	}

	return entry
}
