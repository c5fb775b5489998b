package shape

// Captures collects named sub-matches after a successful match of pat in
// this session. It walks pat's params tree iteratively (explicit stack, so
// pattern depth is unbounded) in pre-order, params in declaration order,
// descending into nested patterns, pattern slices, and nested param groups
// but never into tree nodes. Every capture-tagged pattern encountered
// writes its last match under its name; on a name collision the pattern
// visited last wins. The traversal order is deterministic, so collisions
// resolve the same way for a fixed pattern shape.
func (sess *Session) Captures(pat *Pattern) map[string]Value {
	captures := make(map[string]Value)

	stack := []*Pattern{pat}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if curr.capture != "" {
			last, _ := sess.LastMatch(curr)
			captures[curr.capture] = last
		}

		stack = pushNestedPatterns(stack, curr.params)
	}

	return captures
}

// pushNestedPatterns pushes the patterns nested in params onto the stack in
// reverse declaration order, so the stack pops them in declaration order.
func pushNestedPatterns(stack []*Pattern, params []Param) []*Pattern {
	var nested []*Pattern

	for _, param := range params {
		nested = collectNestedPatterns(nested, param.Value)
	}

	for idx := len(nested) - 1; idx >= 0; idx-- {
		stack = append(stack, nested[idx])
	}

	return stack
}

func collectNestedPatterns(nested []*Pattern, value any) []*Pattern {
	switch val := value.(type) {
	case *Pattern:
		nested = append(nested, val)
	case []*Pattern:
		nested = append(nested, val...)
	case []Param:
		for _, param := range val {
			nested = collectNestedPatterns(nested, param.Value)
		}
	}

	return nested
}
