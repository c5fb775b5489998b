package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/shapematch/pkg/shape"
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

func wrap(kind tree.Kind, inner *tree.Node) *tree.Node {
	wrapper := tree.New(kind)
	wrapper.Set(tree.SlotExpression, inner)

	return wrapper
}

func TestUnwrapIdempotence(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	pat := shape.Unwrap(shape.NumberLit(1))

	core := num("1")

	inputs := []*tree.Node{
		core,
		wrap(tree.KindParen, num("1")),
		wrap(tree.KindNonNull, wrap(tree.KindParen, num("1"))),
		wrap(tree.KindCast, wrap(tree.KindSatisfies, wrap(tree.KindParen, num("1")))),
	}

	for _, input := range inputs {
		result, matched := sess.MatchNode(pat, input)
		require.True(t, matched, "wrapper depth must not affect the match")

		node, ok := result.Node()
		require.True(t, ok)
		assert.Equal(t, tree.KindNumber, node.Kind, "match redirects to the unwrapped node")
	}
}

func TestUnwrapNoWrapper(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	// Unwrap never alters a match that involves no wrappers.
	pat := shape.Unwrap(shape.Identifier("x"))
	ident := tree.NewIdentifier("x")

	result, matched := sess.MatchNode(pat, ident)
	require.True(t, matched)

	node, _ := result.Node()
	assert.Same(t, ident, node)
}

func TestRefineAcceptRejectRedirect(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	call := callNode("find", num("1"))
	firstArg, _ := call.Slot("arguments").List()

	base := shape.Node(tree.KindCall)

	redirect := shape.Refine(base, func(val shape.Value) (shape.Value, bool) {
		node, _ := val.Node()
		args, _ := node.Slot("arguments").List()

		return shape.NodeValue(args[0]), true
	})

	result, matched := sess.MatchNode(redirect, call)
	require.True(t, matched)

	node, _ := result.Node()
	assert.Same(t, firstArg[0], node, "refine redirects the recorded match")

	accept := shape.Refine(base, func(shape.Value) (shape.Value, bool) {
		return shape.Value{}, true
	})

	result, matched = sess.MatchNode(accept, call)
	require.True(t, matched)

	node, _ = result.Node()
	assert.Same(t, call, node, "accepting without a redirect keeps the base match")

	reject := shape.Refine(base, func(shape.Value) (shape.Value, bool) {
		return shape.Value{}, false
	})

	_, matched = sess.MatchNode(reject, call)
	assert.False(t, matched)
}

func TestRefineRequiresBaseMatch(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	calls := 0
	pat := shape.Refine(shape.NumberLit(1), func(shape.Value) (shape.Value, bool) {
		calls++

		return shape.Value{}, true
	})

	_, matched := sess.MatchNode(pat, num("2"))
	require.False(t, matched)
	assert.Zero(t, calls, "transform must not run when the base fails")
}

func TestNamed(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	fn := tree.New(tree.KindFunction)
	fn.Set("name", tree.NewIdentifier("handler"))

	_, matched := sess.MatchNode(shape.Named("handler"), fn)
	assert.True(t, matched, "intrinsic name accessor match")

	_, matched = sess.MatchNode(shape.Named("other"), fn)
	assert.False(t, matched)
}

func TestNamedIdentifierRedirectsToParent(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	call := callNode("find")
	ident, _ := call.Slot("callee").Node()

	result, matched := sess.MatchNode(shape.Named("find"), ident)
	require.True(t, matched)

	node, _ := result.Node()
	assert.Same(t, call, node, "a bare identifier match redirects to its parent")
}

func TestTransformConstructionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { shape.Refine(nil, func(shape.Value) (shape.Value, bool) { return shape.Value{}, true }) })
	require.Panics(t, func() { shape.Refine(shape.Any(), nil) })
	require.Panics(t, func() { shape.Unwrap(nil) })
}
