package shape

import (
	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// Session holds all match history for one traversal of one pattern graph:
// per-pattern last match, accumulated match set, and the descendant-search
// seen set. Patterns themselves stay immutable, so independent traversals
// simply allocate independent Sessions over the same graph.
//
// A Session is not safe for concurrent use; distinct Sessions are fully
// independent and safe to use in parallel.
type Session struct {
	states map[*Pattern]*patternState
}

// patternState is the mutable per-pattern record within a session.
type patternState struct {
	last    Value
	hasLast bool
	matched []Value
	keys    map[any]struct{}
	seen    map[*tree.Node]struct{}
}

// NewSession creates an empty match session.
func NewSession() *Session {
	return &Session{states: make(map[*Pattern]*patternState)}
}

func (sess *Session) stateFor(pat *Pattern) *patternState {
	state, ok := sess.states[pat]
	if !ok {
		state = &patternState{
			keys: make(map[any]struct{}),
			seen: make(map[*tree.Node]struct{}),
		}
		sess.states[pat] = state
	}

	return state
}

// Match evaluates the pattern against the input. On success the result,
// which is the input itself or a different value for redirecting combinators
// (Refine, Named, Unwrap, OneOf), is recorded as the pattern's last match,
// inserted into its match set, and returned. On failure nothing is recorded
// and the zero Value is returned with false.
func (sess *Session) Match(pat *Pattern, in Value) (Value, bool) {
	return sess.eval(pat, in)
}

// MatchNode is Match over a single node.
func (sess *Session) MatchNode(pat *Pattern, node *tree.Node) (Value, bool) {
	return sess.eval(pat, NodeValue(node))
}

// MatchList is Match over a node list.
func (sess *Session) MatchList(pat *Pattern, list []*tree.Node) (Value, bool) {
	return sess.eval(pat, ListValue(list))
}

// LastMatch returns the pattern's most recent successful match in this
// session.
func (sess *Session) LastMatch(pat *Pattern) (Value, bool) {
	state, ok := sess.states[pat]
	if !ok || !state.hasLast {
		return Value{}, false
	}

	return state.last, true
}

// Matches returns every distinct successful match recorded for the pattern
// in this session, in first-match order. Distinctness is by identity:
// repeated matches of the same node do not inflate the result.
func (sess *Session) Matches(pat *Pattern) []Value {
	state, ok := sess.states[pat]
	if !ok {
		return nil
	}

	return state.matched
}

// eval dispatches on the pattern variant, then records a successful result.
// Recording happens for every evaluated sub-pattern, so short-circuiting
// determines exactly which side effects occur.
func (sess *Session) eval(pat *Pattern, in Value) (Value, bool) {
	result, matched := sess.evalOp(pat, in)
	if !matched {
		return Value{}, false
	}

	if result.IsZero() {
		result = in
	}

	sess.record(pat, result)

	return result, true
}

//nolint:cyclop // Single closed dispatch point over the variant set.
func (sess *Session) evalOp(pat *Pattern, in Value) (Value, bool) {
	switch pat.op {
	case opAny:
		return sess.evalAny(in)
	case opWhen:
		return sess.evalWhen(pat, in)
	case opIdentifier:
		return sess.evalIdentifier(pat, in)
	case opLiteral:
		return sess.evalLiteral(pat, in)
	case opNode:
		return sess.evalNode(pat, in)
	case opMaybe:
		return sess.evalMaybe(pat, in)
	case opTuple:
		return sess.evalTuple(pat, in)
	case opRest:
		return sess.evalRest(pat, in)
	case opEvery:
		return sess.evalEvery(pat, in)
	case opSome:
		return sess.evalSome(pat, in)
	case opList:
		return sess.evalList(pat, in)
	case opOneOf:
		return sess.evalOneOf(pat, in)
	case opAllOf:
		return sess.evalAllOf(pat, in)
	case opNot:
		return sess.evalNot(pat, in)
	case opRefine:
		return sess.evalRefine(pat, in)
	case opUnwrap:
		return sess.evalUnwrap(pat, in)
	case opMember:
		return sess.evalMember(pat, in)
	case opContains:
		return sess.evalContains(pat, in)
	case opNamed:
		return sess.evalNamed(pat, in)
	default:
		return Value{}, false
	}
}

func (sess *Session) record(pat *Pattern, result Value) {
	state := sess.stateFor(pat)
	state.last = result
	state.hasLast = true

	key := result.identityKey()
	if _, exists := state.keys[key]; exists {
		return
	}

	state.keys[key] = struct{}{}
	state.matched = append(state.matched, result)
}
