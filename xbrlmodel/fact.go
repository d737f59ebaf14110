package xbrlmodel

// Fact is a single flattened data point from an XBRL instance.
//
// Invariants (§3): numeric facts carry a unit; duration facts reference
// duration contexts; a fact whose context has a non-empty segment is a
// dimensional fact.
type Fact struct {
	ID            string
	ConceptQName  QName
	ContextRef    string
	UnitRef       string
	Value         *Decimal // nil for non-numeric facts and for coercion failures (§7 ValueCoercion)
	TextValue     string   // raw/text value for non-numeric (ix:nonNumeric) facts
	Decimals      *int     // nil means "INF" (exact)
	FootnoteRefs  []string
	Nil           bool // explicit xsi:nil="true"

	// Derived, filled in once the context is resolved.
	Period    Period
	Dimensions []Dimension
	EntityCIK string
}

// IsDimensional reports whether this fact's context carried a segment.
func (f Fact) IsDimensional() bool {
	return len(f.Dimensions) > 0
}

// IsNumeric reports whether this fact carries a parsed numeric value.
func (f Fact) IsNumeric() bool {
	return f.Value != nil
}

// Footnote is a block of narrative text attached to one or more facts via
// footnoteArcs.
//
// Invariant (§3): ID matches the xlink:label used by footnoteArcs, not the
// `id` attribute of the footnote element itself — this distinction matters
// for legacy (pre-2016) filings where the two differ (§8 property 10, S7).
type Footnote struct {
	ID      string
	Role    string
	XMLLang string
	Text    string
}

// FootnoteArc links a footnote to the facts it annotates.
type FootnoteArc struct {
	FactID     string
	FootnoteID string
}
