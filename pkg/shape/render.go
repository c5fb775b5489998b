package shape

import (
	"fmt"
	"strings"
)

// Describe renders a diagnostic summary of the pattern within this session:
// its label and declared params (nested patterns by label only), followed
// by every recorded match as kind, source text, and position. Non-matches
// carry no diagnostic payload, so this after-the-fact view of sub-pattern
// state is the debugging surface.
func (sess *Session) Describe(pat *Pattern) string {
	var buf strings.Builder

	buf.WriteString(pat.String())

	matches := sess.Matches(pat)
	if len(matches) == 0 {
		buf.WriteString("\n  no matches")

		return buf.String()
	}

	for _, match := range matches {
		buf.WriteString("\n  ")
		buf.WriteString(renderMatch(match))
	}

	return buf.String()
}

func renderMatch(match Value) string {
	if node, ok := match.Node(); ok {
		text := node.Text
		if text == "" {
			text = node.Token
		}

		if node.Pos != nil {
			return fmt.Sprintf("%s %q @%d:%d", node.Kind, text, node.Pos.StartLine, node.Pos.StartCol)
		}

		return fmt.Sprintf("%s %q", node.Kind, text)
	}

	if list, ok := match.List(); ok {
		return fmt.Sprintf("list of %d", len(list))
	}

	return "<none>"
}
