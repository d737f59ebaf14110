// Package facts implements the company-facts pipeline: turning a company's
// stitched statements into the derived quarterly/annual/TTM series
// financial-data consumers actually want, none of which are literal facts
// any single filing reports.
package facts

import (
	"fmt"
	"sort"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// Period is one classified reporting period for a single concept, carrying
// enough to derive Q4 and TTM values downstream.
type Period struct {
	Key          xbrlmodel.PeriodKey
	FiscalYear   int
	FiscalPeriod string // "FY", "Q1", "Q2", "Q3", "Q4", "TTM"
	Class        xbrlmodel.DurationClass
	Value        *xbrlmodel.Decimal // nil when the period's value is unknown (e.g. a gapped TTM window)
	AsReported   bool               // false for derived values (Q4, TTM, EPS) and for split-/restatement-adjusted ones

	// Components lists the source periods a derived value (Q4, TTM) was
	// built from, for callers that want to show their work. Empty for a
	// period taken directly from a filing.
	Components []xbrlmodel.PeriodKey
	// HasGaps is set on a derived period when one of its expected
	// component quarters was missing or out of sequence; Value is then nil
	// rather than a partial sum, since the window is not a true
	// trailing-twelve-month total.
	HasGaps bool
}

// ClassifyPeriod buckets a duration period's length into quarterly/annual
// using xbrlmodel.ClassifyDuration, never the fiscal-period label a filer
// supplied, since those labels are inconsistent across filers (§8
// property 9).
func ClassifyPeriod(p xbrlmodel.Period) xbrlmodel.DurationClass {
	return xbrlmodel.ClassifyDuration(p.DurationDays())
}

// DeriveQ4 computes the fourth-quarter value for a flow concept as
// FY - (Q1+Q2+Q3), the only way SEC filers' facts ever yield a standalone
// Q4 number since 10-Ks report annual totals, not quarterly ones.
//
// Returns ok=false when fewer than all of FY, Q1, Q2, Q3 are present for
// the same fiscal year, since a partial derivation would silently produce
// a wrong number rather than an honestly-missing one.
func DeriveQ4(fy, q1, q2, q3 *Period) (Period, bool) {
	if fy == nil || q1 == nil || q2 == nil || q3 == nil {
		return Period{}, false
	}
	if fy.Value == nil || q1.Value == nil || q2.Value == nil || q3.Value == nil {
		return Period{}, false
	}
	v := fy.Value.Sub(*q1.Value).Sub(*q2.Value).Sub(*q3.Value)
	return Period{
		FiscalYear:   fy.FiscalYear,
		FiscalPeriod: "Q4",
		Class:        xbrlmodel.DurationClassQuarterly,
		Value:        &v,
		AsReported:   false,
		Components:   []xbrlmodel.PeriodKey{fy.Key, q1.Key, q2.Key, q3.Key},
	}, true
}

// DeriveEPS computes basic/diluted EPS as netIncome / shares when a filer
// hasn't reported the per-share figure directly for a period. The share
// count is used at face value: no split adjustment is applied here, and
// asReported does not change the result. The returned period is always
// marked AsReported=false, as a derived value.
//
// Returns ok=false if either input is nil or shares is zero, since a
// division by zero would otherwise silently surface as an infinite or NaN
// EPS.
func DeriveEPS(netIncome, shares *Period, asReported bool) (Period, bool) {
	if netIncome == nil || shares == nil || netIncome.Value == nil || shares.Value == nil || shares.Value.IsZero() {
		return Period{}, false
	}
	v := netIncome.Value.Div(*shares.Value)
	return Period{
		FiscalYear:   netIncome.FiscalYear,
		FiscalPeriod: netIncome.FiscalPeriod,
		Class:        netIncome.Class,
		Value:        &v,
		AsReported:   false,
		Components:   []xbrlmodel.PeriodKey{netIncome.Key, shares.Key},
	}, true
}

// TTMSeries computes the trailing-twelve-months value ending at each
// quarterly period in quarters, as the sum of that quarter and the
// preceding three. quarters must be sorted ascending by fiscal year then
// fiscal quarter number; entries lacking three predecessors are skipped
// rather than padded with zero.
//
// When a component quarter is missing (§8: "return the TTM value ... and a
// has_gaps flag when any component is missing"), Value is left nil rather
// than the partial sum over whatever quarters happened to be present —
// a gapped window is not a true trailing-twelve-month total and must not be
// mistaken for one.
func TTMSeries(quarters []Period) []Period {
	sorted := make([]Period, len(quarters))
	copy(sorted, quarters)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].FiscalYear != sorted[j].FiscalYear {
			return sorted[i].FiscalYear < sorted[j].FiscalYear
		}
		return quarterNumber(sorted[i].FiscalPeriod) < quarterNumber(sorted[j].FiscalPeriod)
	})

	var out []Period
	for i := 3; i < len(sorted); i++ {
		window := sorted[i-3 : i+1]
		sum := xbrlmodel.Decimal{}
		components := make([]xbrlmodel.PeriodKey, 0, len(window))
		hasGaps := false
		for j, w := range window {
			if w.Value == nil {
				hasGaps = true
			} else if j == 0 {
				sum = *w.Value
			} else {
				sum = sum.Add(*w.Value)
			}
			if j > 0 && !isNextQuarter(window[j-1], w) {
				hasGaps = true
			}
			components = append(components, w.Key)
		}
		period := Period{
			FiscalYear:   sorted[i].FiscalYear,
			FiscalPeriod: "TTM",
			Class:        xbrlmodel.DurationClassAnnual,
			AsReported:   false,
			Components:   components,
			HasGaps:      hasGaps,
		}
		if !hasGaps {
			v := sum
			period.Value = &v
		}
		out = append(out, period)
	}
	return out
}

// isNextQuarter reports whether b immediately follows a in fiscal-quarter
// sequence (Q4 of year Y followed by Q1 of year Y+1 counts as contiguous).
func isNextQuarter(a, b Period) bool {
	aq, bq := quarterNumber(a.FiscalPeriod), quarterNumber(b.FiscalPeriod)
	if aq == 4 {
		return bq == 1 && b.FiscalYear == a.FiscalYear+1
	}
	return bq == aq+1 && b.FiscalYear == a.FiscalYear
}

func quarterNumber(fiscalPeriod string) int {
	switch fiscalPeriod {
	case "Q1":
		return 1
	case "Q2":
		return 2
	case "Q3":
		return 3
	case "Q4":
		return 4
	default:
		return 0
	}
}

// DedupeByFiscalPeriod keeps exactly one Period per (fiscal year, fiscal
// period), preferring the entry sourced from the most recently filed
// accession — callers pass periods already ordered newest-filed-first so
// the first occurrence of a (year, period) pair wins.
func DedupeByFiscalPeriod(periods []Period) []Period {
	seen := make(map[string]bool, len(periods))
	var out []Period
	for _, p := range periods {
		key := dedupeKey(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func dedupeKey(p Period) string {
	return fmt.Sprintf("%d|%s", p.FiscalYear, p.FiscalPeriod)
}
