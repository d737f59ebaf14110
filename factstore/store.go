// Package factstore indexes a parsed instance's facts for fast, composable
// lookup by concept, period, and dimension.
package factstore

import (
	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// Store is an indexed, read-only view over one filing's facts.
type Store struct {
	facts      []xbrlmodel.Fact
	byConcept  map[xbrlmodel.QName][]int
	byPeriod   map[xbrlmodel.PeriodKey][]int
}

// New builds a Store, indexing every fact by concept and by period key.
func New(facts []xbrlmodel.Fact) *Store {
	s := &Store{
		facts:     facts,
		byConcept: make(map[xbrlmodel.QName][]int, len(facts)),
		byPeriod:  make(map[xbrlmodel.PeriodKey][]int, len(facts)),
	}
	for i, f := range facts {
		s.byConcept[f.ConceptQName] = append(s.byConcept[f.ConceptQName], i)
		key := xbrlmodel.NewPeriodKey(f.Period)
		s.byPeriod[key] = append(s.byPeriod[key], i)
	}
	return s
}

// Len returns the number of indexed facts.
func (s *Store) Len() int { return len(s.facts) }

// All returns every indexed fact.
func (s *Store) All() []xbrlmodel.Fact { return s.facts }

// Predicate filters a candidate fact; Query composes predicates with
// logical AND.
type Predicate func(xbrlmodel.Fact) bool

// ByConcept narrows to a single concept. Query applies it with a linear
// scan; QueryConcept is the indexed lookup.
func ByConcept(qn xbrlmodel.QName) Predicate {
	return func(f xbrlmodel.Fact) bool { return f.ConceptQName == qn }
}

// ByPeriod narrows to a single period key.
func ByPeriod(key xbrlmodel.PeriodKey) Predicate {
	return func(f xbrlmodel.Fact) bool { return xbrlmodel.NewPeriodKey(f.Period) == key }
}

// Dimensional narrows to facts that do, or do not, carry a segment.
func Dimensional(want bool) Predicate {
	return func(f xbrlmodel.Fact) bool { return f.IsDimensional() == want }
}

// WithDimension narrows to facts whose segment includes the given
// axis/member pair.
func WithDimension(axis, member xbrlmodel.QName) Predicate {
	return func(f xbrlmodel.Fact) bool {
		got, ok := (xbrlmodel.Context{Segment: f.Dimensions}).Member(axis)
		return ok && got == member
	}
}

// Numeric narrows to facts carrying a parsed numeric value.
func Numeric() Predicate {
	return func(f xbrlmodel.Fact) bool { return f.IsNumeric() }
}

// Query runs every predicate against every fact in the store (a linear
// scan) and keeps the facts that satisfy all of them. The concept and
// period indexes are used only by QueryConcept and QueryPeriod.
func (s *Store) Query(preds ...Predicate) []xbrlmodel.Fact {
	candidates := s.facts
	if len(preds) == 0 {
		out := make([]xbrlmodel.Fact, len(candidates))
		copy(out, candidates)
		return out
	}

	var out []xbrlmodel.Fact
	for _, f := range candidates {
		matched := true
		for _, p := range preds {
			if !p(f) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, f)
		}
	}
	return out
}

// QueryConcept is a fast path for the common case of "every fact for this
// concept", using the concept index directly instead of a linear scan.
func (s *Store) QueryConcept(qn xbrlmodel.QName, extra ...Predicate) []xbrlmodel.Fact {
	idxs := s.byConcept[qn]
	var out []xbrlmodel.Fact
	for _, i := range idxs {
		f := s.facts[i]
		matched := true
		for _, p := range extra {
			if !p(f) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, f)
		}
	}
	return out
}

// QueryPeriod is a fast path for "every fact in this period".
func (s *Store) QueryPeriod(key xbrlmodel.PeriodKey, extra ...Predicate) []xbrlmodel.Fact {
	idxs := s.byPeriod[key]
	var out []xbrlmodel.Fact
	for _, i := range idxs {
		f := s.facts[i]
		matched := true
		for _, p := range extra {
			if !p(f) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, f)
		}
	}
	return out
}
