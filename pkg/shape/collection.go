package shape

import (
	"fmt"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// Tuple matches a node list of exactly the declared arity, element by
// element in order with short-circuit AND. When the final sub-pattern is a
// Rest marker, the list instead needs length >= the fixed prefix, the
// prefix matches positionally, and every remaining element (possibly zero)
// must satisfy the rest's inner pattern. Panics on a nil sub-pattern.
func Tuple(pats ...*Pattern) *Pattern {
	for idx, pat := range pats {
		if pat == nil {
			panic(fmt.Sprintf("shape: nil pattern at tuple index %d", idx))
		}
	}

	return &Pattern{
		op:     opTuple,
		subs:   pats,
		params: []Param{{Name: "elements", Value: pats}},
	}
}

// Rest marks a trailing tuple position as "zero or more remaining elements,
// each matching pat". Used on its own, it matches a list all of whose
// elements satisfy pat. Panics when pat is nil.
func Rest(pat *Pattern) *Pattern {
	if pat == nil {
		panic("shape: Rest requires a non-nil pattern")
	}

	return &Pattern{
		op:     opRest,
		subs:   []*Pattern{pat},
		params: []Param{{Name: "pattern", Value: pat}},
	}
}

// Every matches a node list whose length is within bounds and whose every
// element satisfies pat. Panics when pat is nil.
func Every(pat *Pattern, bounds Bounds) *Pattern {
	if pat == nil {
		panic("shape: Every requires a non-nil pattern")
	}

	return &Pattern{
		op:     opEvery,
		subs:   []*Pattern{pat},
		bounds: bounds,
		params: boundedParams(pat, bounds),
	}
}

// Some matches a node list whose length is within bounds and which contains
// at least one element satisfying pat. Panics when pat is nil.
func Some(pat *Pattern, bounds Bounds) *Pattern {
	if pat == nil {
		panic("shape: Some requires a non-nil pattern")
	}

	return &Pattern{
		op:     opSome,
		subs:   []*Pattern{pat},
		bounds: bounds,
		params: boundedParams(pat, bounds),
	}
}

func boundedParams(pat *Pattern, bounds Bounds) []Param {
	params := []Param{{Name: "pattern", Value: pat}, {Name: "min", Value: bounds.Min}}

	if bounds.Max > 0 {
		params = append(params, Param{Name: "max", Value: bounds.Max})
	}

	return params
}

// List matches any node list. With a non-nil pat it defers entirely to it,
// adapting a list-shaped slot into tuple/every/some matching.
func List(pat *Pattern) *Pattern {
	listPat := &Pattern{op: opList}

	if pat != nil {
		listPat.subs = []*Pattern{pat}
		listPat.params = []Param{{Name: "pattern", Value: pat}}
	}

	return listPat
}

func (bounds Bounds) contains(length int) bool {
	if length < bounds.Min {
		return false
	}

	if bounds.Max > 0 && length > bounds.Max {
		return false
	}

	return true
}

func (sess *Session) evalTuple(pat *Pattern, in Value) (Value, bool) {
	list, ok := in.List()
	if !ok {
		return Value{}, false
	}

	subs := pat.subs

	if hasTrailingRest(subs) {
		return sess.evalTupleWithRest(subs[:len(subs)-1], subs[len(subs)-1], in, list)
	}

	if len(list) != len(subs) {
		return Value{}, false
	}

	for idx, sub := range subs {
		if _, matched := sess.eval(sub, NodeValue(list[idx])); !matched {
			return Value{}, false
		}
	}

	return in, true
}

func hasTrailingRest(subs []*Pattern) bool {
	return len(subs) > 0 && subs[len(subs)-1].op == opRest
}

func (sess *Session) evalTupleWithRest(prefix []*Pattern, rest *Pattern, in Value, list []*tree.Node) (Value, bool) {
	if len(list) < len(prefix) {
		return Value{}, false
	}

	for idx, sub := range prefix {
		if _, matched := sess.eval(sub, NodeValue(list[idx])); !matched {
			return Value{}, false
		}
	}

	// A list of exactly prefix length still runs the rest against zero
	// elements, which is vacuously true.
	if _, matched := sess.eval(rest, ListValue(list[len(prefix):])); !matched {
		return Value{}, false
	}

	return in, true
}

func (sess *Session) evalRest(pat *Pattern, in Value) (Value, bool) {
	list, ok := in.List()
	if !ok {
		return Value{}, false
	}

	for _, node := range list {
		if _, matched := sess.eval(pat.subs[0], NodeValue(node)); !matched {
			return Value{}, false
		}
	}

	return in, true
}

func (sess *Session) evalEvery(pat *Pattern, in Value) (Value, bool) {
	list, ok := in.List()
	if !ok || !pat.bounds.contains(len(list)) {
		return Value{}, false
	}

	for _, node := range list {
		if _, matched := sess.eval(pat.subs[0], NodeValue(node)); !matched {
			return Value{}, false
		}
	}

	return in, true
}

func (sess *Session) evalSome(pat *Pattern, in Value) (Value, bool) {
	list, ok := in.List()
	if !ok || !pat.bounds.contains(len(list)) {
		return Value{}, false
	}

	for _, node := range list {
		if _, matched := sess.eval(pat.subs[0], NodeValue(node)); matched {
			return in, true
		}
	}

	return Value{}, false
}

func (sess *Session) evalList(pat *Pattern, in Value) (Value, bool) {
	if _, ok := in.List(); !ok {
		return Value{}, false
	}

	if len(pat.subs) == 0 {
		return in, true
	}

	return sess.eval(pat.subs[0], in)
}
