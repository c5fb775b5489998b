package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/shapematch/pkg/shape"
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// findCallPattern is "call expression named find with exactly one
// object-literal argument containing a property id".
func findCallPattern() *shape.Pattern {
	return shape.Node(tree.KindCall,
		shape.Slot("callee", shape.Identifier("find")),
		shape.Slot("arguments", shape.Tuple(
			shape.Node(tree.KindObject,
				shape.Slot("properties", shape.Some(
					shape.Named("id"),
					shape.Bounds{},
				)),
			),
		)),
	)
}

func objectWithProperty(name, valueToken string) *tree.Node {
	prop := tree.New(tree.KindProperty)
	prop.Set("name", tree.NewIdentifier(name))
	prop.Set("value", num(valueToken))

	obj := tree.New(tree.KindObject)
	obj.SetList("properties", []*tree.Node{prop})

	return obj
}

func TestScenarioFindCallWithObjectArgument(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	call := callNode("find", objectWithProperty("id", "1"))
	call.Text = "find({ id: 1 })"

	result, matched := sess.MatchNode(findCallPattern(), call)
	require.True(t, matched)

	node, _ := result.Node()
	assert.Equal(t, "find({ id: 1 })", node.Text)
}

func TestScenarioFindCallRejectsScalarArgument(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	call := callNode("find", num("1"))
	call.Text = "find(1)"

	_, matched := sess.MatchNode(findCallPattern(), call)
	assert.False(t, matched)
}

// importTree builds `import { bindings... } from "source"`.
func importTree(source string, bindings ...string) *tree.Node {
	nodes := make([]*tree.Node, 0, len(bindings))
	for _, binding := range bindings {
		nodes = append(nodes, tree.NewIdentifier(binding))
	}

	imp := tree.New(tree.KindImport)
	imp.Set("source", str(source))
	imp.SetList("bindings", nodes)

	return imp
}

func importPattern(bindings ...*shape.Pattern) *shape.Pattern {
	return shape.Node(tree.KindImport,
		shape.Slot("source", shape.StringLit("with-bindings")),
		shape.Slot("bindings", shape.Tuple(bindings...)),
	)
}

func TestScenarioImportBindings(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	exact := importPattern(
		shape.Identifier("aaa"),
		shape.Identifier("bbb"),
		shape.Identifier("ccc"),
	)

	_, matched := sess.MatchNode(exact, importTree("with-bindings", "aaa", "bbb", "ccc"))
	assert.True(t, matched)

	_, matched = sess.MatchNode(exact, importTree("with-bindings", "aaa", "bbb", "ccc", "ddd"))
	assert.False(t, matched, "strict tuple rejects the extra binding")

	open := importPattern(
		shape.Identifier("aaa"),
		shape.Identifier("bbb"),
		shape.Identifier("ccc"),
		shape.Rest(shape.Any()),
	)

	_, matched = sess.MatchNode(open, importTree("with-bindings", "aaa", "bbb", "ccc", "ddd"))
	assert.True(t, matched, "trailing rest admits the extra binding")

	_, matched = sess.MatchNode(open, importTree("with-bindings", "aaa", "bbb", "ccc"))
	assert.True(t, matched, "rest also matches zero extra bindings")
}

func TestRenderDiagnostics(t *testing.T) {
	t.Parallel()

	sess := shape.NewSession()

	pat := shape.Node(tree.KindCall, shape.Slot("callee", shape.Identifier("find")))

	call := callNode("find")
	call.Text = "find()"
	call.Pos = &tree.Positions{StartLine: 3, StartCol: 5}

	_, matched := sess.MatchNode(pat, call)
	require.True(t, matched)

	rendered := sess.Describe(pat)
	assert.Contains(t, rendered, "Call")
	assert.Contains(t, rendered, "callee: Identifier", "nested patterns render by label only")
	assert.Contains(t, rendered, `"find()"`)
	assert.Contains(t, rendered, "@3:5")

	unmatched := shape.Node(tree.KindImport)
	assert.Contains(t, sess.Describe(unmatched), "no matches")
}

func TestPatternString(t *testing.T) {
	t.Parallel()

	pat := shape.OneOf(shape.Identifier("a"), shape.NumberLit(1)).Capture("pick")

	rendered := pat.String()
	assert.Contains(t, rendered, "oneOf")
	assert.Contains(t, rendered, "@pick")
	assert.Contains(t, rendered, "Identifier")
	assert.Contains(t, rendered, "Number")
}
