package shape

import (
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// Refine first requires base to match, then hands the matched value to fn.
// fn may redirect the recorded match by returning a non-zero Value, accept
// without redirecting by returning (Value{}, true), or reject by returning
// false. Panics when base or fn is nil.
func Refine(base *Pattern, fn func(Value) (Value, bool)) *Pattern {
	if base == nil || fn == nil {
		panic("shape: Refine requires a non-nil base pattern and transform")
	}

	return &Pattern{
		op:       opRefine,
		subs:     []*Pattern{base},
		refineFn: fn,
		params:   []Param{{Name: "base", Value: base}},
	}
}

// Unwrap strips the fixed transparent wrapper kinds (parenthesization,
// non-null assertion, cast, satisfies annotation) from the input node,
// recursively, then matches pat against the unwrapped node. Inputs without
// wrappers pass through untouched, so matching is identical for zero, one,
// or many wrapper layers. Panics when pat is nil.
func Unwrap(pat *Pattern) *Pattern {
	if pat == nil {
		panic("shape: Unwrap requires a non-nil pattern")
	}

	return &Pattern{
		op:     opUnwrap,
		subs:   []*Pattern{pat},
		params: []Param{{Name: "pattern", Value: pat}},
	}
}

// Named matches a node whose intrinsic name equals name, or an identifier
// leaf with that text. In the identifier case the recorded match redirects
// to the identifier's parent, since a bare identifier is rarely the
// interesting node.
func Named(name string) *Pattern {
	return &Pattern{
		op:      opNamed,
		litText: name,
		params:  []Param{{Name: "name", Value: name}},
	}
}

// unwrapTransparent strips transparent wrapper nodes until none remains.
func unwrapTransparent(node *tree.Node) *tree.Node {
	for node != nil && tree.IsTransparent(node.Kind) {
		inner, ok := node.Slot(tree.SlotExpression).Node()
		if !ok || inner == nil {
			return node
		}

		node = inner
	}

	return node
}

func (sess *Session) evalRefine(pat *Pattern, in Value) (Value, bool) {
	base, matched := sess.eval(pat.subs[0], in)
	if !matched {
		return Value{}, false
	}

	redirected, accepted := pat.refineFn(base)
	if !accepted {
		return Value{}, false
	}

	if redirected.IsZero() {
		return base, true
	}

	return redirected, true
}

func (sess *Session) evalUnwrap(pat *Pattern, in Value) (Value, bool) {
	node, ok := in.Node()
	if !ok {
		return Value{}, false
	}

	return sess.eval(pat.subs[0], NodeValue(unwrapTransparent(node)))
}

func (sess *Session) evalNamed(pat *Pattern, in Value) (Value, bool) {
	node, ok := in.Node()
	if !ok {
		return Value{}, false
	}

	if name, hasName := node.Name(); hasName && name == pat.litText {
		return in, true
	}

	if node.Kind == tree.KindIdentifier && node.Token == pat.litText {
		if parent := node.Parent(); parent != nil {
			return NodeValue(parent), true
		}

		return in, true
	}

	return Value{}, false
}
