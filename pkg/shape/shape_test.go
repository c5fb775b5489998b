package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/shapematch/pkg/shape"
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

func num(token string) *tree.Node {
	return tree.NewLeaf(tree.KindNumber, token)
}

func str(token string) *tree.Node {
	return tree.NewLeaf(tree.KindString, token)
}

func boolean(token string) *tree.Node {
	return tree.NewLeaf(tree.KindBool, token)
}

// callNode builds `name(args...)` with a member or identifier callee.
func callNode(name string, args ...*tree.Node) *tree.Node {
	call := tree.New(tree.KindCall)
	call.Set("callee", tree.NewIdentifier(name))
	call.SetList("arguments", args)

	return call
}

func TestLeafMatchers(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	tests := []struct {
		name  string
		pat   *shape.Pattern
		input *tree.Node
		want  bool
	}{
		{"identifier hit", shape.Identifier("find"), tree.NewIdentifier("find"), true},
		{"identifier miss text", shape.Identifier("find"), tree.NewIdentifier("findOne"), false},
		{"identifier miss kind", shape.Identifier("1"), num("1"), false},
		{"string hit", shape.StringLit("abc"), str("abc"), true},
		{"string miss", shape.StringLit("abc"), str("abd"), false},
		{"number hit", shape.NumberLit(1), num("1"), true},
		{"number hit alt spelling", shape.NumberLit(1), num("1.0"), true},
		{"number miss", shape.NumberLit(1), num("2"), false},
		{"bool hit", shape.BoolLit(true), boolean("true"), true},
		{"bool miss", shape.BoolLit(true), boolean("false"), false},
		{"null hit", shape.NullLit(), tree.New(tree.KindNull), true},
		{"null miss", shape.NullLit(), tree.New(tree.KindUndefined), false},
		{"undefined hit", shape.UndefinedLit(), tree.New(tree.KindUndefined), true},
		{"any node", shape.Any(), num("42"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, matched := sess.MatchNode(tt.pat, tt.input)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestLeafMatchersRejectLists(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	list := []*tree.Node{num("1"), num("2")}

	for _, pat := range []*shape.Pattern{shape.Any(), shape.Identifier("x"), shape.NumberLit(1)} {
		_, matched := sess.MatchList(pat, list)
		assert.False(t, matched, "leaf matcher must not match a list")
	}
}

func TestLiteralFactory(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	_, matched := sess.MatchNode(shape.Literal("x"), str("x"))
	assert.True(t, matched)

	_, matched = sess.MatchNode(shape.Literal(3), num("3"))
	assert.True(t, matched)

	_, matched = sess.MatchNode(shape.Literal(nil), tree.New(tree.KindNull))
	assert.True(t, matched)

	assert.Panics(t, func() { shape.Literal(struct{}{}) }, "unsupported literal type must panic at construction")
}

func TestWhen(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	hasToken := shape.When(func(val shape.Value) bool {
		node, ok := val.Node()

		return ok && node.Token != ""
	})

	_, matched := sess.MatchNode(hasToken, num("7"))
	assert.True(t, matched)

	_, matched = sess.MatchNode(hasToken, tree.New(tree.KindBlock))
	assert.False(t, matched)

	assert.Panics(t, func() { shape.When(nil) })
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	input := callNode("find", num("1"))
	pat := shape.Node(tree.KindCall, shape.Slot("callee", shape.Identifier("find")))

	first, matchedFirst := sess.MatchNode(pat, input)

	for range 10 {
		again, matchedAgain := sess.MatchNode(pat, input)
		require.Equal(t, matchedFirst, matchedAgain)
		require.Equal(t, first, again)
	}
}

func TestMonotonicMatchAccumulation(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	pat := shape.Node(tree.KindNumber)

	distinct := []*tree.Node{num("1"), num("2"), num("3")}

	// Visit each distinct node several times, plus non-matching nodes.
	for range 3 {
		for _, node := range distinct {
			_, matched := sess.MatchNode(pat, node)
			require.True(t, matched)
		}

		_, matched := sess.MatchNode(pat, str("nope"))
		require.False(t, matched)
	}

	assert.Len(t, sess.Matches(pat), len(distinct), "duplicates must not inflate the match set")

	last, ok := sess.LastMatch(pat)
	require.True(t, ok)

	lastNode, _ := last.Node()
	assert.Equal(t, "3", lastNode.Token)
}

func TestSessionIndependence(t *testing.T) {
	t.Parallel()

	pat := shape.Node(tree.KindNumber)
	node := num("1")

	sessA := shape.NewSession()
	_, matched := sessA.MatchNode(pat, node)
	require.True(t, matched)

	sessB := shape.NewSession()
	assert.Empty(t, sessB.Matches(pat), "a fresh session must not see another session's history")
}
