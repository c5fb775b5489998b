package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/shapematch/pkg/shape"
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

func TestTupleExactness(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	pat := shape.Tuple(shape.NumberLit(1), shape.NumberLit(2))

	tests := []struct {
		name string
		list []*tree.Node
		want bool
	}{
		{"exact match", []*tree.Node{num("1"), num("2")}, true},
		{"wrong element", []*tree.Node{num("1"), num("3")}, false},
		{"too short", []*tree.Node{num("1")}, false},
		{"too long", []*tree.Node{num("1"), num("2"), num("3")}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, matched := sess.MatchList(pat, tt.list)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestTupleRejectsSingleNode(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	_, matched := sess.MatchNode(shape.Tuple(shape.Any()), num("1"))
	assert.False(t, matched, "collection matcher must not match a single node")
}

func TestTupleWithRest(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	pat := shape.Tuple(shape.NumberLit(1), shape.Rest(shape.Any()))

	tests := []struct {
		name string
		list []*tree.Node
		want bool
	}{
		{"mixed tail", []*tree.Node{num("1"), boolean("true"), num("3"), str("x")}, true},
		{"empty rest", []*tree.Node{num("1")}, true},
		{"first element fails", []*tree.Node{boolean("true"), num("3")}, false},
		{"shorter than prefix", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, matched := sess.MatchList(pat, tt.list)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestRestAlone(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	pat := shape.Rest(shape.NumberLit(1))

	_, matched := sess.MatchList(pat, []*tree.Node{num("1"), num("1")})
	assert.True(t, matched)

	_, matched = sess.MatchList(pat, []*tree.Node{num("1"), num("2")})
	assert.False(t, matched)

	_, matched = sess.MatchList(pat, nil)
	assert.True(t, matched, "rest over an empty list is vacuously true")
}

func TestEveryBounds(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	pat := shape.Every(shape.Any(), shape.Bounds{Min: 2})

	_, matched := sess.MatchList(pat, nil)
	assert.False(t, matched)

	_, matched = sess.MatchList(pat, []*tree.Node{num("1")})
	assert.False(t, matched)

	_, matched = sess.MatchList(pat, []*tree.Node{num("1"), str("b"), boolean("true")})
	assert.True(t, matched)
}

func TestEveryElements(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	pat := shape.Every(shape.NumberLit(5), shape.Bounds{})

	_, matched := sess.MatchList(pat, []*tree.Node{num("5"), num("5")})
	assert.True(t, matched)

	_, matched = sess.MatchList(pat, []*tree.Node{num("5"), num("6")})
	assert.False(t, matched)
}

func TestSomeBounds(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()
	pat := shape.Some(shape.NumberLit(1), shape.Bounds{Min: 1, Max: 2})

	tests := []struct {
		name string
		list []*tree.Node
		want bool
	}{
		{"one hit of one", []*tree.Node{num("1")}, true},
		{"one hit of two", []*tree.Node{num("2"), num("1")}, true},
		{"no hit", []*tree.Node{num("2"), num("3")}, false},
		{"below min regardless of content", nil, false},
		{"above max regardless of content", []*tree.Node{num("1"), num("1"), num("1")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, matched := sess.MatchList(pat, tt.list)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestListWrapper(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	bare := shape.List(nil)

	_, matched := sess.MatchList(bare, nil)
	assert.True(t, matched, "bare List matches any list")

	_, matched = sess.MatchNode(bare, num("1"))
	assert.False(t, matched)

	adapted := shape.List(shape.Tuple(shape.NumberLit(1)))

	_, matched = sess.MatchList(adapted, []*tree.Node{num("1")})
	assert.True(t, matched)

	_, matched = sess.MatchList(adapted, []*tree.Node{num("2")})
	assert.False(t, matched)
}

func TestCollectionConstructionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { shape.Tuple(shape.Any(), nil) })
	require.Panics(t, func() { shape.Rest(nil) })
	require.Panics(t, func() { shape.Every(nil, shape.Bounds{}) })
	require.Panics(t, func() { shape.Some(nil, shape.Bounds{}) })
}
