package shape

import (
	"strings"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// PropOptional is the node property flagging an optional-chaining hop on a
// member-access node. Path normalization ignores it, so a?.b?.c and a.b.c
// normalize to the same path.
const PropOptional = "optional"

// Member matches a member-access node whose access chain equals the dotted
// path, e.g. Member("console.log"). Raw source text is tried first; when
// the source spells the chain differently (optional chaining, parentheses,
// casts), the chain is normalized to a canonical dot-joined path and
// compared again.
func Member(path string) *Pattern {
	return &Pattern{
		op:      opMember,
		kind:    tree.KindMember,
		path:    path,
		params:  []Param{{Name: "path", Value: path}},
	}
}

// MemberOf matches a member-access node satisfying the given sub-pattern,
// delegating directly without path normalization. Panics when pat is nil.
func MemberOf(pat *Pattern) *Pattern {
	if pat == nil {
		panic("shape: MemberOf requires a non-nil pattern")
	}

	return &Pattern{
		op:     opMember,
		kind:   tree.KindMember,
		subs:   []*Pattern{pat},
		params: []Param{{Name: "pattern", Value: pat}},
	}
}

func (sess *Session) evalMember(pat *Pattern, in Value) (Value, bool) {
	node, ok := in.Node()
	if !ok || node.Kind != tree.KindMember {
		return Value{}, false
	}

	if len(pat.subs) > 0 {
		return sess.eval(pat.subs[0], in)
	}

	// Fast path: raw textual equality.
	if node.Text == pat.path {
		return in, true
	}

	normalized, ok := normalizeMemberPath(node)
	if !ok || normalized != pat.path {
		return Value{}, false
	}

	return in, true
}

// normalizeMemberPath reduces a member-access chain to a canonical
// dot-joined string, unwrapping transparent wrappers at each hop. Chains
// rooted in anything other than an identifier do not normalize.
func normalizeMemberPath(node *tree.Node) (string, bool) {
	var parts []string

	curr := node

	for {
		curr = unwrapTransparent(curr)
		if curr == nil {
			return "", false
		}

		if curr.Kind == tree.KindMember {
			prop, ok := curr.Slot("property").Node()
			if !ok || prop == nil || prop.Token == "" {
				return "", false
			}

			parts = append(parts, prop.Token)

			obj, ok := curr.Slot("object").Node()
			if !ok || obj == nil {
				return "", false
			}

			curr = obj

			continue
		}

		if curr.Kind == tree.KindIdentifier {
			parts = append(parts, curr.Token)

			break
		}

		return "", false
	}

	// parts were collected property-first; reverse into source order.
	for left, right := 0, len(parts)-1; left < right; left, right = left+1, right-1 {
		parts[left], parts[right] = parts[right], parts[left]
	}

	return strings.Join(parts, "."), true
}
