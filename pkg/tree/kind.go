// Package tree provides the labeled tree structure consumed by the shape
// matching engine: nodes tagged with a kind, carrying ordered named child
// slots that hold nodes, node lists, or primitive values.
package tree

// Kind is the discriminant identifying a node's syntactic category.
type Kind string

// KindUnknown is the sentinel for kind-agnostic contexts.
const KindUnknown Kind = ""

// Canonical kind vocabulary. Language loaders lower grammar-specific node
// types onto these tags.
const (
	KindFile          Kind = "File"
	KindFunction      Kind = "Function"
	KindBlock         Kind = "Block"
	KindCall          Kind = "Call"
	KindMember        Kind = "Member"
	KindIdentifier    Kind = "Identifier"
	KindString        Kind = "String"
	KindNumber        Kind = "Number"
	KindBool          Kind = "Bool"
	KindNull          Kind = "Null"
	KindUndefined     Kind = "Undefined"
	KindObject        Kind = "Object"
	KindProperty      Kind = "Property"
	KindArray         Kind = "Array"
	KindImport        Kind = "Import"
	KindImportBinding Kind = "ImportBinding"
	KindExport        Kind = "Export"
	KindVariable      Kind = "Variable"
	KindAssignment    Kind = "Assignment"
	KindBinaryOp      Kind = "BinaryOp"
	KindUnaryOp       Kind = "UnaryOp"
	KindIf            Kind = "If"
	KindLoop          Kind = "Loop"
	KindReturn        Kind = "Return"
	KindClass         Kind = "Class"
	KindSynthetic     Kind = "Synthetic"
)

// Transparent wrapper kinds carry no matching-relevant semantics of their
// own. Each wraps its operand in the "expression" slot.
const (
	KindParen     Kind = "Paren"
	KindNonNull   Kind = "NonNull"
	KindCast      Kind = "Cast"
	KindSatisfies Kind = "Satisfies"
)

// SlotExpression is the slot name under which transparent wrappers hold
// their wrapped operand.
const SlotExpression = "expression"

// IsTransparent reports whether k is one of the transparent wrapper kinds.
func IsTransparent(k Kind) bool {
	switch k {
	case KindParen, KindNonNull, KindCast, KindSatisfies:
		return true
	default:
		return false
	}
}

// Positions represents the byte and line/col offsets for a node.
// All fields are 1-based except StartOffset/EndOffset, which are byte offsets.
type Positions struct {
	StartLine   uint `json:"start_line,omitempty"`
	StartCol    uint `json:"start_col,omitempty"`
	StartOffset uint `json:"start_offset,omitempty"`
	EndLine     uint `json:"end_line,omitempty"`
	EndCol      uint `json:"end_col,omitempty"`
	EndOffset   uint `json:"end_offset,omitempty"`
}
