package shape

import (
	"fmt"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// Slot declares a named child-slot constraint for Node. A nil sub-pattern
// is a programmer error and panics at construction time rather than being
// silently treated as "unconstrained".
func Slot(name string, pat *Pattern) SlotPattern {
	if pat == nil {
		panic(fmt.Sprintf("shape: nil pattern for slot %q", name))
	}

	return SlotPattern{Name: name, Pattern: pat}
}

// Node matches a node of the given kind whose declared child slots satisfy
// their sub-patterns. Slots are checked in declaration order with
// short-circuit AND. An absent slot fails the match unless its sub-pattern
// is Maybe. Primitive slot values (bool, string) are promoted to synthetic
// literal nodes so the literal matchers apply to them uniformly.
func Node(kind tree.Kind, slots ...SlotPattern) *Pattern {
	params := make([]Param, 0, len(slots)+1)
	params = append(params, Param{Name: "kind", Value: string(kind)})

	for _, slot := range slots {
		if slot.Pattern == nil {
			panic(fmt.Sprintf("shape: nil pattern for slot %q", slot.Name))
		}

		params = append(params, Param{Name: slot.Name, Value: slot.Pattern})
	}

	return &Pattern{op: opNode, kind: kind, slots: slots, params: params}
}

// Maybe marks a slot constraint as optional: when the slot is absent the
// constraint is satisfied; when present, the inner pattern must match.
// Panics when pat is nil.
func Maybe(pat *Pattern) *Pattern {
	if pat == nil {
		panic("shape: Maybe requires a non-nil pattern")
	}

	return &Pattern{
		op:     opMaybe,
		subs:   []*Pattern{pat},
		params: []Param{{Name: "pattern", Value: pat}},
	}
}

// Shared synthetic nodes for boolean slot promotion. Sharing keeps
// match-set identity stable across repeated promotions of the same flag.
//
//nolint:gochecknoglobals // Immutable promotion singletons.
var (
	promotedTrue  = tree.NewBool(true)
	promotedFalse = tree.NewBool(false)
)

func promoteBool(flag bool) *tree.Node {
	if flag {
		return promotedTrue
	}

	return promotedFalse
}

func (sess *Session) evalNode(pat *Pattern, in Value) (Value, bool) {
	node, ok := in.Node()
	if !ok || node.Kind != pat.kind {
		return Value{}, false
	}

	for _, slot := range pat.slots {
		if !sess.matchSlot(slot, node) {
			return Value{}, false
		}
	}

	return in, true
}

func (sess *Session) matchSlot(slot SlotPattern, node *tree.Node) bool {
	value := node.Slot(slot.Name)

	if value.IsAbsent() {
		return slot.Pattern.op == opMaybe
	}

	_, ok := sess.eval(slot.Pattern, slotInput(value))

	return ok
}

// slotInput adapts a slot value to a match input, promoting primitives to
// synthetic literal nodes.
func slotInput(value tree.SlotValue) Value {
	if child, ok := value.Node(); ok {
		return NodeValue(child)
	}

	if list, ok := value.List(); ok {
		return ListValue(list)
	}

	if flag, ok := value.Bool(); ok {
		return NodeValue(promoteBool(flag))
	}

	if str, ok := value.String(); ok {
		return NodeValue(tree.NewString(str))
	}

	return Value{}
}

func (sess *Session) evalMaybe(pat *Pattern, in Value) (Value, bool) {
	// Absence is handled by the enclosing structural match; a direct match
	// against a present value simply delegates.
	return sess.eval(pat.subs[0], in)
}
