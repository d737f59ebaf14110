// Package instance parses XBRL and inline XBRL (iXBRL) instance documents
// into the flattened xbrlmodel types the rest of the engine consumes.
package instance

import (
	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// Document is one parsed instance: every context, unit, fact, and footnote
// it declared, plus the handful of DEI (document and entity information)
// facts every statement-rendering and period-selection decision keys off.
type Document struct {
	Contexts map[string]xbrlmodel.Context
	Units    map[string]xbrlmodel.Unit
	Facts    []xbrlmodel.Fact
	Footnotes []xbrlmodel.Footnote
	FootnoteArcs []xbrlmodel.FootnoteArc

	DEI DocumentEntityInfo

	Diagnostics []xbrlmodel.Diagnostic
}

// DocumentEntityInfo holds the dei: namespace facts every filing carries,
// used by the facts pipeline to classify a filing without consulting its
// form type.
type DocumentEntityInfo struct {
	EntityCIK             string
	DocumentType          string
	DocumentPeriodEndDate string // YYYY-MM-DD
	FiscalYearFocus       string
	FiscalPeriodFocus     string // FY, Q1, Q2, Q3, Q4
	AmendmentFlag         bool
}

// FactsByConcept returns every fact whose concept equals qn, in document
// order.
func (d *Document) FactsByConcept(qn xbrlmodel.QName) []xbrlmodel.Fact {
	var out []xbrlmodel.Fact
	for _, f := range d.Facts {
		if f.ConceptQName == qn {
			out = append(out, f)
		}
	}
	return out
}

// Context looks up a context by its id, reporting whether it was found.
func (d *Document) Context(id string) (xbrlmodel.Context, bool) {
	c, ok := d.Contexts[id]
	return c, ok
}
