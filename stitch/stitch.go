// Package stitch merges rendered Statements from several filings of the
// same company into one StitchedStatement spanning every period reported.
package stitch

import (
	"sort"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// FilingStatement is one filing's rendered statement plus the identifiers
// needed to resolve conflicts and record provenance.
type FilingStatement struct {
	AccessionNumber string
	FiledAt         int64 // unix seconds; used to break "most recently filed wins" ties
	IsAmendment     bool
	Statement       xbrlmodel.Statement
}

// ConflictPolicy decides which of two facts for the same (concept, period)
// to keep when two filings disagree.
type ConflictPolicy int

const (
	// PreferOriginalFiling keeps the value from the earliest, non-amendment
	// filing that reported a period — the as-originally-reported number —
	// unless only an amendment reported that period at all.
	PreferOriginalFiling ConflictPolicy = iota
	// PreferAsAmended keeps the value from the most recently filed version
	// of a period, including amendments, on the theory that a restatement
	// supersedes the original number.
	PreferAsAmended
)

// Stitch merges filings (already sorted newest-first by the caller is not
// required; Stitch sorts internally) into one StitchedStatement.
func Stitch(filings []FilingStatement, policy ConflictPolicy) xbrlmodel.StitchedStatement {
	out := xbrlmodel.StitchedStatement{
		Provenance: make(map[string]string),
	}
	if len(filings) == 0 {
		out.Diagnostics = append(out.Diagnostics, xbrlmodel.NewDiagnostic(
			xbrlmodel.DiagNoMatchingStatement, "no filings supplied to stitch"))
		return out
	}
	out.Type = filings[0].Statement.Type

	ordered := make([]FilingStatement, len(filings))
	copy(ordered, filings)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].FiledAt < ordered[j].FiledAt })

	periodSet := make(map[xbrlmodel.PeriodKey]int64) // period -> end-date unix for sorting
	rowOrder := []xbrlmodel.QName{}
	rowSeen := make(map[xbrlmodel.QName]bool)
	rowMeta := make(map[xbrlmodel.QName]xbrlmodel.LineItem)
	values := make(map[xbrlmodel.QName]map[xbrlmodel.PeriodKey]*xbrlmodel.Decimal)
	valueSource := make(map[string]FilingStatement) // "<concept>|<period>" -> source filing

	for _, fs := range ordered {
		for _, key := range fs.Statement.PeriodsOrdered {
			periodSet[key] = key.EndDateUnix()
		}
		for _, row := range fs.Statement.Rows {
			if !rowSeen[row.ConceptQName] {
				rowSeen[row.ConceptQName] = true
				rowOrder = append(rowOrder, row.ConceptQName)
				rowMeta[row.ConceptQName] = row
				values[row.ConceptQName] = make(map[xbrlmodel.PeriodKey]*xbrlmodel.Decimal)
			}
			for periodKey, v := range row.Values {
				if v == nil {
					continue
				}
				shouldReplace := decideConflict(policy, valueSource[provKey(row.ConceptQName, periodKey)], fs)
				if shouldReplace {
					values[row.ConceptQName][periodKey] = v
					valueSource[provKey(row.ConceptQName, periodKey)] = fs
				}
			}
		}
	}

	periods := make([]xbrlmodel.PeriodKey, 0, len(periodSet))
	for k := range periodSet {
		periods = append(periods, k)
	}
	endDates := make(map[xbrlmodel.PeriodKey]int64, len(periods))
	for _, p := range periods {
		endDates[p] = periodSet[p]
	}
	xbrlmodel.SortPeriodsDescending(periods, endDates)
	out.PeriodsOrderedDesc = periods

	for _, qn := range rowOrder {
		row := rowMeta[qn]
		row.Values = values[qn]
		out.Rows = append(out.Rows, row)
		for periodKey := range row.Values {
			if src, ok := valueSource[provKey(qn, periodKey)]; ok {
				out.Provenance[provKey(qn, periodKey)] = src.AccessionNumber
			}
		}
	}

	return out
}

func provKey(qn xbrlmodel.QName, key xbrlmodel.PeriodKey) string {
	return string(qn) + "|" + string(key)
}

// decideConflict reports whether candidate should replace whatever filing
// (possibly the zero value, meaning "none yet") currently holds a value for
// this (concept, period) pair.
func decideConflict(policy ConflictPolicy, current FilingStatement, candidate FilingStatement) bool {
	if current.AccessionNumber == "" {
		return true
	}
	switch policy {
	case PreferAsAmended:
		return candidate.FiledAt >= current.FiledAt
	case PreferOriginalFiling:
		fallthrough
	default:
		if current.IsAmendment && !candidate.IsAmendment {
			return true
		}
		if !current.IsAmendment && candidate.IsAmendment {
			return false
		}
		return candidate.FiledAt < current.FiledAt
	}
}
