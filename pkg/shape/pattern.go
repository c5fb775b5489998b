package shape

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// opcode discriminates the closed set of pattern variants. Dispatch happens
// in a single switch per match, not through interface polymorphism.
type opcode uint8

const (
	opAny opcode = iota
	opWhen
	opIdentifier
	opLiteral
	opNode
	opMaybe
	opTuple
	opRest
	opEvery
	opSome
	opList
	opOneOf
	opAllOf
	opNot
	opRefine
	opUnwrap
	opMember
	opContains
	opNamed
)

//nolint:gochecknoglobals // Static label table for diagnostics.
var opLabels = map[opcode]string{
	opAny:        "any",
	opWhen:       "when",
	opIdentifier: "identifier",
	opLiteral:    "literal",
	opNode:       "node",
	opMaybe:      "maybe",
	opTuple:      "tuple",
	opRest:       "rest",
	opEvery:      "every",
	opSome:       "some",
	opList:       "list",
	opOneOf:      "oneOf",
	opAllOf:      "allOf",
	opNot:        "not",
	opRefine:     "refine",
	opUnwrap:     "unwrap",
	opMember:     "member",
	opContains:   "contains",
	opNamed:      "named",
}

// Param is one entry of a pattern's recorded construction configuration.
// Values are nested *Pattern, []*Pattern, []Param, or primitives; the match
// algorithm never consults them, they exist for introspection, capture
// collection, and diagnostics.
type Param struct {
	Name  string
	Value any
}

// Bounds are the cardinality bounds for Every and Some. Min defaults to 0;
// Max <= 0 means unbounded.
type Bounds struct {
	Min int
	Max int
}

// SlotPattern is one named child-slot constraint of a structural pattern.
type SlotPattern struct {
	Name    string
	Pattern *Pattern
}

// Pattern is an immutable, reusable matcher specification for a node or
// node list. Construct patterns with the combinator factories in this
// package; the zero Pattern is not usable.
type Pattern struct {
	kind    tree.Kind
	op      opcode
	capture string
	params  []Param

	// Variant configuration. Only the fields relevant to op are set.
	subs     []*Pattern
	slots    []SlotPattern
	litKind  tree.Kind
	litText  string
	litNum   float64
	bounds   Bounds
	pred     func(Value) bool
	refineFn func(Value) (Value, bool)
	path     string
	until    *Pattern
}

// Kind returns the node-kind tag the pattern is keyed on; tree.KindUnknown
// for kind-agnostic patterns.
func (pat *Pattern) Kind() tree.Kind {
	return pat.kind
}

// Params returns the pattern's recorded construction configuration.
func (pat *Pattern) Params() []Param {
	return pat.params
}

// CaptureName returns the capture label, or "" when untagged.
func (pat *Pattern) CaptureName() string {
	return pat.capture
}

// Capture returns a copy of the pattern tagged with a capture name, so its
// match can be retrieved from Session.Captures after a successful top-level
// match. The receiver is left untouched.
func (pat *Pattern) Capture(name string) *Pattern {
	tagged := *pat
	tagged.capture = name

	return &tagged
}

// label returns the diagnostic tag for the pattern: its kind when keyed,
// otherwise the combinator name.
func (pat *Pattern) label() string {
	if pat.kind != tree.KindUnknown {
		return string(pat.kind)
	}

	return opLabels[pat.op]
}

// String renders the pattern's kind tag and declared params, substituting
// nested patterns with their labels to keep output finite and shallow.
func (pat *Pattern) String() string {
	var buf strings.Builder

	buf.WriteString(pat.label())

	if pat.capture != "" {
		fmt.Fprintf(&buf, "@%s", pat.capture)
	}

	if len(pat.params) > 0 {
		buf.WriteString("(")
		writeParams(&buf, pat.params)
		buf.WriteString(")")
	}

	return buf.String()
}

func writeParams(buf *strings.Builder, params []Param) {
	for idx, param := range params {
		if idx > 0 {
			buf.WriteString(", ")
		}

		if param.Name != "" {
			buf.WriteString(param.Name)
			buf.WriteString(": ")
		}

		writeParamValue(buf, param.Value)
	}
}

func writeParamValue(buf *strings.Builder, value any) {
	switch val := value.(type) {
	case *Pattern:
		buf.WriteString(val.label())
	case []*Pattern:
		buf.WriteString("[")

		for idx, sub := range val {
			if idx > 0 {
				buf.WriteString(" ")
			}

			buf.WriteString(sub.label())
		}

		buf.WriteString("]")
	case []Param:
		buf.WriteString("{")
		writeParams(buf, val)
		buf.WriteString("}")
	case string:
		fmt.Fprintf(buf, "%q", val)
	case nil:
		buf.WriteString("null")
	default:
		fmt.Fprintf(buf, "%v", val)
	}
}
