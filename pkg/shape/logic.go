package shape

import "fmt"

// OneOf matches when any sub-pattern matches, evaluated in declaration
// order with short-circuit on first success. The first matching
// sub-pattern's result becomes the recorded match, so declaration order is
// the tie-break when several alternatives would accept the same input.
// Panics on a nil sub-pattern.
func OneOf(pats ...*Pattern) *Pattern {
	for idx, pat := range pats {
		if pat == nil {
			panic(fmt.Sprintf("shape: nil pattern at oneOf index %d", idx))
		}
	}

	return &Pattern{
		op:     opOneOf,
		subs:   pats,
		params: []Param{{Name: "alternatives", Value: pats}},
	}
}

// AllOf matches when every sub-pattern independently matches the same
// input. Constraints compose side by side, not as a pipeline. Panics on a
// nil sub-pattern.
func AllOf(pats ...*Pattern) *Pattern {
	for idx, pat := range pats {
		if pat == nil {
			panic(fmt.Sprintf("shape: nil pattern at allOf index %d", idx))
		}
	}

	return &Pattern{
		op:     opAllOf,
		subs:   pats,
		params: []Param{{Name: "constraints", Value: pats}},
	}
}

// Not matches exactly when the inner pattern fails. Panics when pat is nil.
func Not(pat *Pattern) *Pattern {
	if pat == nil {
		panic("shape: Not requires a non-nil pattern")
	}

	return &Pattern{
		op:     opNot,
		subs:   []*Pattern{pat},
		params: []Param{{Name: "pattern", Value: pat}},
	}
}

func (sess *Session) evalOneOf(pat *Pattern, in Value) (Value, bool) {
	for _, sub := range pat.subs {
		if result, matched := sess.eval(sub, in); matched {
			return result, true
		}
	}

	return Value{}, false
}

func (sess *Session) evalAllOf(pat *Pattern, in Value) (Value, bool) {
	for _, sub := range pat.subs {
		if _, matched := sess.eval(sub, in); !matched {
			return Value{}, false
		}
	}

	return in, true
}

func (sess *Session) evalNot(pat *Pattern, in Value) (Value, bool) {
	if _, matched := sess.eval(pat.subs[0], in); matched {
		return Value{}, false
	}

	return in, true
}
