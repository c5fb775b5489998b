package lang

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// kindTable maps grammar node types shared by the JS/TS grammars onto the
// canonical kind vocabulary. Types missing from the table lower to
// KindSynthetic with the grammar type preserved in props.
//
//nolint:gochecknoglobals // Static lowering table.
var kindTable = map[string]tree.Kind{
	"program":                       tree.KindFile,
	"call_expression":               tree.KindCall,
	"new_expression":                tree.KindCall,
	"member_expression":             tree.KindMember,
	"identifier":                    tree.KindIdentifier,
	"property_identifier":           tree.KindIdentifier,
	"shorthand_property_identifier": tree.KindIdentifier,
	"type_identifier":               tree.KindIdentifier,
	"string":                        tree.KindString,
	"template_string":               tree.KindString,
	"number":                        tree.KindNumber,
	"true":                          tree.KindBool,
	"false":                         tree.KindBool,
	"null":                          tree.KindNull,
	"undefined":                     tree.KindUndefined,
	"object":                        tree.KindObject,
	"pair":                          tree.KindProperty,
	"array":                         tree.KindArray,
	"import_statement":              tree.KindImport,
	"export_statement":              tree.KindExport,
	"function_declaration":          tree.KindFunction,
	"function_expression":           tree.KindFunction,
	"arrow_function":                tree.KindFunction,
	"method_definition":             tree.KindFunction,
	"class_declaration":             tree.KindClass,
	"statement_block":               tree.KindBlock,
	"variable_declarator":           tree.KindVariable,
	"assignment_expression":         tree.KindAssignment,
	"binary_expression":             tree.KindBinaryOp,
	"unary_expression":              tree.KindUnaryOp,
	"if_statement":                  tree.KindIf,
	"for_statement":                 tree.KindLoop,
	"while_statement":               tree.KindLoop,
	"return_statement":              tree.KindReturn,
	"parenthesized_expression":      tree.KindParen,
	"non_null_expression":           tree.KindNonNull,
	"as_expression":                 tree.KindCast,
	"type_assertion":                tree.KindCast,
	"satisfies_expression":          tree.KindSatisfies,
}

// nodeFields maps grammar node types to the grammar fields lowered into
// named slots, in slot declaration order.
//
//nolint:gochecknoglobals // Static lowering table.
var nodeFields = map[string][]string{
	"member_expression":     {"object", "property"},
	"pair":                  {"key", "value"},
	"function_declaration":  {"name", "parameters", "body"},
	"function_expression":   {"name", "parameters", "body"},
	"arrow_function":        {"parameters", "body"},
	"method_definition":     {"name", "parameters", "body"},
	"class_declaration":     {"name", "body"},
	"variable_declarator":   {"name", "value"},
	"assignment_expression": {"left", "right"},
	"binary_expression":     {"left", "right"},
	"unary_expression":      {"argument"},
	"if_statement":          {"condition", "consequence", "alternative"},
	"return_statement":      {"argument"},
}

// slotRenames maps grammar field names to canonical slot names.
//
//nolint:gochecknoglobals // Static lowering table.
var slotRenames = map[string]string{
	"key": "name",
}

type converter struct {
	source []byte
}

// lower converts a tree-sitter node into the canonical tree, recursively.
func (conv *converter) lower(tsNode sitter.Node) *tree.Node {
	grammarType := tsNode.Type()

	switch grammarType {
	case "expression_statement":
		// Purely syntactic nesting; lower straight through to the wrapped
		// expression.
		if tsNode.NamedChildCount() > 0 {
			return conv.lower(tsNode.NamedChild(0))
		}
	case "call_expression", "new_expression":
		return conv.lowerCall(tsNode)
	case "member_expression":
		return conv.lowerMember(tsNode)
	case "string", "template_string":
		return conv.lowerString(tsNode)
	case "import_statement":
		return conv.lowerImport(tsNode)
	case "parenthesized_expression", "non_null_expression", "as_expression",
		"type_assertion", "satisfies_expression":
		return conv.lowerWrapper(tsNode)
	}

	node := conv.newNode(tsNode)

	if fields, ok := nodeFields[grammarType]; ok {
		conv.fillFieldSlots(node, tsNode, fields)

		return node
	}

	conv.fillGenericChildren(node, tsNode, childSlotName(node.Kind))

	return node
}

func childSlotName(kind tree.Kind) string {
	switch kind {
	case tree.KindFile, tree.KindBlock:
		return "statements"
	case tree.KindObject:
		return "properties"
	case tree.KindArray:
		return "elements"
	default:
		return "children"
	}
}

// newNode builds the canonical node shell: kind, token for leaves, text,
// and position.
func (conv *converter) newNode(tsNode sitter.Node) *tree.Node {
	grammarType := tsNode.Type()

	kind, ok := kindTable[grammarType]
	if !ok {
		kind = tree.KindSynthetic
	}

	node := tree.New(kind)
	node.Text = tsNode.Content(conv.source)
	node.Pos = positionsOf(tsNode)

	if kind == tree.KindSynthetic {
		node.Props = map[string]string{"grammar": grammarType}
	}

	if tsNode.NamedChildCount() == 0 {
		node.Token = node.Text
	}

	return node
}

func positionsOf(tsNode sitter.Node) *tree.Positions {
	start := tsNode.StartPoint()
	end := tsNode.EndPoint()

	return &tree.Positions{
		StartLine:   uint(start.Row) + 1,
		StartCol:    uint(start.Column) + 1,
		StartOffset: uint(tsNode.StartByte()),
		EndLine:     uint(end.Row) + 1,
		EndCol:      uint(end.Column) + 1,
		EndOffset:   uint(tsNode.EndByte()),
	}
}

func (conv *converter) fillFieldSlots(node *tree.Node, tsNode sitter.Node, fields []string) {
	for _, field := range fields {
		child := tsNode.ChildByFieldName(field)
		if child.IsNull() {
			continue
		}

		slotName := field
		if renamed, ok := slotRenames[field]; ok {
			slotName = renamed
		}

		node.Set(slotName, conv.lower(child))
	}

	if operator := tsNode.ChildByFieldName("operator"); !operator.IsNull() {
		node.SetString("operator", operator.Content(conv.source))
	}
}

func (conv *converter) fillGenericChildren(node *tree.Node, tsNode sitter.Node, slotName string) {
	count := tsNode.NamedChildCount()
	if count == 0 {
		return
	}

	children := make([]*tree.Node, 0, count)

	for idx := range count {
		children = append(children, conv.lower(tsNode.NamedChild(idx)))
	}

	node.SetList(slotName, children)
}

// lowerCall lowers call and new expressions: the callee into the "callee"
// slot and the argument list flattened into the "arguments" slot.
func (conv *converter) lowerCall(tsNode sitter.Node) *tree.Node {
	node := conv.newNode(tsNode)

	callee := tsNode.ChildByFieldName("function")
	if callee.IsNull() {
		callee = tsNode.ChildByFieldName("constructor")
	}

	if !callee.IsNull() {
		node.Set("callee", conv.lower(callee))
	}

	if args := tsNode.ChildByFieldName("arguments"); !args.IsNull() {
		arguments := make([]*tree.Node, 0, args.NamedChildCount())

		for idx := range args.NamedChildCount() {
			arguments = append(arguments, conv.lower(args.NamedChild(idx)))
		}

		node.SetList("arguments", arguments)
	}

	if optional := tsNode.ChildByFieldName("optional_chain"); !optional.IsNull() {
		node.Props = map[string]string{"optional": "true"}
	}

	return node
}

func (conv *converter) lowerMember(tsNode sitter.Node) *tree.Node {
	node := conv.newNode(tsNode)

	if object := tsNode.ChildByFieldName("object"); !object.IsNull() {
		node.Set("object", conv.lower(object))
	}

	if property := tsNode.ChildByFieldName("property"); !property.IsNull() {
		node.Set("property", conv.lower(property))
	}

	if optional := tsNode.ChildByFieldName("optional_chain"); !optional.IsNull() {
		node.Props = map[string]string{"optional": "true"}
	}

	return node
}

// lowerString strips the surrounding quotes so the token holds the value.
func (conv *converter) lowerString(tsNode sitter.Node) *tree.Node {
	node := conv.newNode(tsNode)
	node.Token = unquote(node.Text)

	return node
}

func unquote(text string) string {
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return text[1 : len(text)-1]
		}
	}

	return text
}

// lowerImport collects the module source into the "source" slot and every
// imported binding name into the "bindings" list.
func (conv *converter) lowerImport(tsNode sitter.Node) *tree.Node {
	node := conv.newNode(tsNode)

	if source := tsNode.ChildByFieldName("source"); !source.IsNull() {
		node.Set("source", conv.lowerString(source))
	}

	var bindings []*tree.Node

	conv.collectImportBindings(tsNode, &bindings)

	if len(bindings) > 0 {
		node.SetList("bindings", bindings)
	}

	return node
}

func (conv *converter) collectImportBindings(tsNode sitter.Node, bindings *[]*tree.Node) {
	for idx := range tsNode.NamedChildCount() {
		child := tsNode.NamedChild(idx)

		if child.Type() == "import_specifier" {
			name := child.ChildByFieldName("name")
			if !name.IsNull() {
				*bindings = append(*bindings, conv.lower(name))
			}

			continue
		}

		if strings.HasPrefix(child.Type(), "import") || child.Type() == "named_imports" {
			conv.collectImportBindings(child, bindings)
		}
	}
}

// lowerWrapper lowers the transparent wrapper kinds, placing the wrapped
// operand in the expression slot.
func (conv *converter) lowerWrapper(tsNode sitter.Node) *tree.Node {
	node := conv.newNode(tsNode)

	if tsNode.NamedChildCount() > 0 {
		node.Set(tree.SlotExpression, conv.lower(tsNode.NamedChild(0)))
	}

	return node
}
