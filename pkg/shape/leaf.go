package shape

import (
	"fmt"
	"strconv"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// Any matches any single node. It never matches a node list.
func Any() *Pattern {
	return &Pattern{op: opAny}
}

// When matches when the caller-supplied predicate accepts the input. The
// predicate receives the raw input value (node or list), making When the
// escape hatch for constraints the other combinators cannot express.
// Panics when pred is nil.
func When(pred func(Value) bool) *Pattern {
	if pred == nil {
		panic("shape: When requires a non-nil predicate")
	}

	return &Pattern{op: opWhen, pred: pred}
}

// Identifier matches an identifier leaf with exactly the given text.
func Identifier(text string) *Pattern {
	return &Pattern{
		op:      opIdentifier,
		kind:    tree.KindIdentifier,
		litText: text,
		params:  []Param{{Name: "text", Value: text}},
	}
}

// StringLit matches a string literal with the given (unquoted) value.
func StringLit(value string) *Pattern {
	return &Pattern{
		op:      opLiteral,
		kind:    tree.KindString,
		litKind: tree.KindString,
		litText: value,
		params:  []Param{{Name: "value", Value: value}},
	}
}

// NumberLit matches a numeric literal with the given value. Tokens are
// compared numerically, so "1", "1.0" and "1e0" all match NumberLit(1).
func NumberLit(value float64) *Pattern {
	return &Pattern{
		op:      opLiteral,
		kind:    tree.KindNumber,
		litKind: tree.KindNumber,
		litNum:  value,
		params:  []Param{{Name: "value", Value: value}},
	}
}

// BoolLit matches a boolean literal, including the synthetic nodes produced
// by primitive slot promotion.
func BoolLit(value bool) *Pattern {
	return &Pattern{
		op:      opLiteral,
		kind:    tree.KindBool,
		litKind: tree.KindBool,
		litText: strconv.FormatBool(value),
		params:  []Param{{Name: "value", Value: value}},
	}
}

// NullLit matches a null literal.
func NullLit() *Pattern {
	return &Pattern{op: opLiteral, kind: tree.KindNull, litKind: tree.KindNull}
}

// UndefinedLit matches an undefined literal.
func UndefinedLit() *Pattern {
	return &Pattern{op: opLiteral, kind: tree.KindUndefined, litKind: tree.KindUndefined}
}

// Literal builds the literal matcher for a Go value: string, bool, any
// integer or float type, or nil. Passing an unsupported type is a
// programmer error and panics at construction time.
func Literal(value any) *Pattern {
	switch val := value.(type) {
	case string:
		return StringLit(val)
	case bool:
		return BoolLit(val)
	case int:
		return NumberLit(float64(val))
	case int32:
		return NumberLit(float64(val))
	case int64:
		return NumberLit(float64(val))
	case float32:
		return NumberLit(float64(val))
	case float64:
		return NumberLit(val)
	case nil:
		return NullLit()
	default:
		panic(fmt.Sprintf("shape: unsupported literal type %T", value))
	}
}

// evalAny accepts any single node.
func (sess *Session) evalAny(in Value) (Value, bool) {
	if _, ok := in.Node(); !ok {
		return Value{}, false
	}

	return in, true
}

func (sess *Session) evalWhen(pat *Pattern, in Value) (Value, bool) {
	if !pat.pred(in) {
		return Value{}, false
	}

	return in, true
}

func (sess *Session) evalIdentifier(pat *Pattern, in Value) (Value, bool) {
	node, ok := in.Node()
	if !ok || node.Kind != tree.KindIdentifier || node.Token != pat.litText {
		return Value{}, false
	}

	return in, true
}

func (sess *Session) evalLiteral(pat *Pattern, in Value) (Value, bool) {
	node, ok := in.Node()
	if !ok || node.Kind != pat.litKind {
		return Value{}, false
	}

	switch pat.litKind {
	case tree.KindNumber:
		parsed, err := strconv.ParseFloat(node.Token, 64)
		if err != nil || parsed != pat.litNum {
			return Value{}, false
		}
	case tree.KindNull, tree.KindUndefined:
		// Kind check is the whole constraint.
	default:
		if node.Token != pat.litText {
			return Value{}, false
		}
	}

	return in, true
}
