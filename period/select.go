// Package period selects the columns a rendered statement should show out
// of every period present in a filing's facts.
package period

import (
	"sort"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// MaxInstantColumns and MaxDurationColumns bound how many periods a single
// rendered statement carries, mirroring the handful of comparative columns
// filers actually present (current + prior year(s) for balance sheets,
// current + prior year(s) for income/cash-flow statements).
const (
	MaxInstantColumns  = 10
	MaxDurationColumns = 12
)

// Candidate is one period seen in a filing's facts, with the count of
// non-dimensional facts reported against it — used to score
// which periods are "real" statement columns versus incidental contexts
// used only for a footnote disclosure.
type Candidate struct {
	Period     xbrlmodel.Period
	FactCount  int
}

// SelectInstants picks up to MaxInstantColumns instant periods for a
// balance-sheet-like statement, preferring periods with more reported
// facts and, among ties, more recent dates.
func SelectInstants(candidates []Candidate) []xbrlmodel.Period {
	return selectTop(candidates, MaxInstantColumns)
}

// SelectDurations picks up to MaxDurationColumns duration periods for a
// flow-like statement (income statement, cash flow, equity).
func SelectDurations(candidates []Candidate) []xbrlmodel.Period {
	return selectTop(candidates, MaxDurationColumns)
}

func selectTop(candidates []Candidate, max int) []xbrlmodel.Period {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].FactCount != sorted[j].FactCount {
			return sorted[i].FactCount > sorted[j].FactCount
		}
		return sorted[i].Period.EndDate().After(sorted[j].Period.EndDate())
	})
	if len(sorted) > max {
		sorted = sorted[:max]
	}
	out := make([]xbrlmodel.Period, len(sorted))
	for i, c := range sorted {
		out[i] = c.Period
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EndDate().After(out[j].EndDate())
	})
	return out
}

// CandidatesFromFacts builds per-period candidates from a concept's
// reported facts, counting only non-dimensional facts: a period that only
// ever shows up on a dimensional breakout is not a statement column in its
// own right.
func CandidatesFromFacts(facts []xbrlmodel.Fact) []Candidate {
	counts := make(map[xbrlmodel.PeriodKey]*Candidate)
	for _, f := range facts {
		if f.IsDimensional() {
			continue
		}
		key := xbrlmodel.NewPeriodKey(f.Period)
		c, ok := counts[key]
		if !ok {
			c = &Candidate{Period: f.Period}
			counts[key] = c
		}
		c.FactCount++
	}
	out := make([]Candidate, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	return out
}
