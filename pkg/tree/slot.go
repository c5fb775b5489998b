package tree

// slotTag discriminates the value stored in a slot.
type slotTag uint8

const (
	slotAbsent slotTag = iota
	slotNode
	slotList
	slotBool
	slotString
)

// SlotValue is the tagged union a named child slot holds: a single node, a
// node list, or a primitive (bool or string). The zero SlotValue is absent.
type SlotValue struct {
	node *Node
	list []*Node
	str  string
	flag bool
	tag  slotTag
}

// NodeSlot wraps a single child node.
func NodeSlot(child *Node) SlotValue {
	return SlotValue{tag: slotNode, node: child}
}

// ListSlot wraps an ordered child node list.
func ListSlot(children []*Node) SlotValue {
	return SlotValue{tag: slotList, list: children}
}

// BoolSlot wraps a primitive boolean flag.
func BoolSlot(flag bool) SlotValue {
	return SlotValue{tag: slotBool, flag: flag}
}

// StringSlot wraps a primitive string value.
func StringSlot(str string) SlotValue {
	return SlotValue{tag: slotString, str: str}
}

// IsAbsent reports whether the slot holds no value.
func (sv SlotValue) IsAbsent() bool {
	return sv.tag == slotAbsent
}

// Node returns the child node and whether the slot holds one.
func (sv SlotValue) Node() (*Node, bool) {
	return sv.node, sv.tag == slotNode
}

// List returns the child list and whether the slot holds one.
func (sv SlotValue) List() ([]*Node, bool) {
	return sv.list, sv.tag == slotList
}

// Bool returns the boolean flag and whether the slot holds one.
func (sv SlotValue) Bool() (bool, bool) {
	return sv.flag, sv.tag == slotBool
}

// String returns the string value and whether the slot holds one.
func (sv SlotValue) String() (string, bool) {
	return sv.str, sv.tag == slotString
}

// Slot is one named child slot of a node. Slots preserve declaration order
// so that slot-wise operations are deterministic.
type Slot struct {
	Name  string
	Value SlotValue
}
