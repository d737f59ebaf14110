package xbrlmodel

import "sort"

// StatementType classifies a presentation role by the kind of financial
// statement it renders (§3).
type StatementType string

const (
	StatementBalanceSheet         StatementType = "balance_sheet"
	StatementIncomeStatement      StatementType = "income_statement"
	StatementCashFlow             StatementType = "cash_flow"
	StatementOfEquity             StatementType = "statement_of_equity"
	StatementComprehensiveIncome  StatementType = "comprehensive_income"
	StatementCover                StatementType = "cover"
	StatementNotes                StatementType = "notes"
	StatementOther                StatementType = "other"
)

// LineItem is one rendered row of a statement.
//
// Invariants (§3): Values is nil/empty when IsAbstract is true (abstract
// rows carry no data, only structure); DimensionAxis/DimensionMember are set
// iff IsDimensional is true.
type LineItem struct {
	ConceptQName    QName
	Label           string
	Depth           int
	IsAbstract      bool
	IsTotal         bool
	IsDimensional   bool
	DimensionAxis   QName
	DimensionMember QName
	ParentConcept   QName
	Unit            string
	Balance         BalanceType
	Weight          float64 // calculation-linkbase weight relative to ParentConcept; 0 when no arc applies
	SignPreference  float64 // +1 or -1; multiplied into the displayed value at render time only
	Values          map[PeriodKey]*Decimal
}

// DataFrameRow is one flattened row of a to_dataframe() export: the
// row's metadata columns plus one numeric cell per period, keyed the same
// way Values is keyed on the source LineItem.
type DataFrameRow struct {
	Concept         QName
	Label           string
	Depth           int
	Abstract        bool
	Dimension       bool
	DimensionAxis   QName
	DimensionMember QName
	Balance         BalanceType
	Weight          float64
	PreferredSign   float64
	ParentConcept   QName
	Unit            string
	Values          map[PeriodKey]*Decimal
}

// ToDataFrame flattens Rows into the tabular export shape documented in §6:
// one row per LineItem, metadata columns plus one numeric column per period.
// Row and column order both follow the statement's own ordering; no
// re-sorting happens here.
func (s Statement) ToDataFrame() []DataFrameRow {
	return toDataFrame(s.Rows)
}

// ToDataFrame is the StitchedStatement equivalent of Statement.ToDataFrame,
// over the wide, multi-filing row set.
func (s StitchedStatement) ToDataFrame() []DataFrameRow {
	return toDataFrame(s.Rows)
}

func toDataFrame(rows []LineItem) []DataFrameRow {
	out := make([]DataFrameRow, len(rows))
	for i, r := range rows {
		out[i] = DataFrameRow{
			Concept:         r.ConceptQName,
			Label:           r.Label,
			Depth:           r.Depth,
			Abstract:        r.IsAbstract,
			Dimension:       r.IsDimensional,
			DimensionAxis:   r.DimensionAxis,
			DimensionMember: r.DimensionMember,
			Balance:         r.Balance,
			Weight:          r.Weight,
			PreferredSign:   r.SignPreference,
			ParentConcept:   r.ParentConcept,
			Unit:            r.Unit,
			Values:          r.Values,
		}
	}
	return out
}

// Statement is a single rendered statement for a single filing.
//
// Invariant (§3): Rows are ordered by (parent_path, order) deterministically;
// renderers must not rely on map iteration order to reproduce this.
type Statement struct {
	Role          string
	Type          StatementType
	PeriodsOrdered []PeriodKey
	Rows          []LineItem
	Diagnostics   []Diagnostic
}

// StitchedStatement is the result of merging Statements from several filings
// of the same company into one wide table.
//
// Invariant (§3): PeriodsOrderedDesc is sorted by period end date descending,
// most recent first.
type StitchedStatement struct {
	Type               StatementType
	PeriodsOrderedDesc []PeriodKey
	Rows               []LineItem
	// Provenance maps a (row concept, period key) pair, encoded as
	// "<ConceptQName>|<PeriodKey>", to the accession/filing identifier the
	// value was sourced from.
	Provenance map[string]string
	Diagnostics []Diagnostic
}

// SortPeriodsDescending orders period keys by end date, most recent first.
// Ties (identical end dates, e.g. instant vs duration ending the same day)
// preserve relative order via a stable sort.
func SortPeriodsDescending(keys []PeriodKey, endDate map[PeriodKey]int64) {
	sort.SliceStable(keys, func(i, j int) bool {
		return endDate[keys[i]] > endDate[keys[j]]
	})
}
