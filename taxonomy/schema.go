// Package taxonomy loads an XBRL taxonomy (schema plus presentation,
// calculation, definition, and label linkbases) into the in-memory catalogs
// the rest of the engine queries against.
package taxonomy

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// xsdSchema mirrors the subset of an XBRL schema document this loader cares
// about: element declarations with their XBRL-specific attributes.
type xsdSchema struct {
	XMLName  xml.Name      `xml:"schema"`
	Elements []xsdElement  `xml:"element"`
}

type xsdElement struct {
	Name              string `xml:"name,attr"`
	Type              string `xml:"type,attr"`
	SubstitutionGroup string `xml:"substitutionGroup,attr"`
	Abstract          bool   `xml:"abstract,attr"`
	Nillable          bool   `xml:"nillable,attr"`
	Balance           string `xml:"http://www.xbrl.org/2003/instance balance,attr"`
	PeriodType        string `xml:"http://www.xbrl.org/2003/instance periodType,attr"`
}

// ParseSchema reads one .xsd document and returns its element catalog keyed
// by qname, each element's name qualified with namespacePrefix (the caller
// supplies the prefix, since the prefix used by filers varies).
func ParseSchema(r io.Reader, namespacePrefix string) (map[xbrlmodel.QName]xbrlmodel.ElementDeclaration, error) {
	dec := xml.NewDecoder(r)
	var schema xsdSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("taxonomy: decode schema: %w", err)
	}

	out := make(map[xbrlmodel.QName]xbrlmodel.ElementDeclaration, len(schema.Elements))
	for _, e := range schema.Elements {
		if e.Name == "" {
			continue
		}
		qn := xbrlmodel.QName(namespacePrefix + ":" + e.Name)
		decl := xbrlmodel.ElementDeclaration{
			QName:             qn,
			DataType:          e.Type,
			SubstitutionGroup: e.SubstitutionGroup,
			Abstract:          e.Abstract,
			Nillable:          e.Nillable,
		}
		switch strings.ToLower(e.Balance) {
		case "debit":
			decl.Balance = xbrlmodel.BalanceDebit
		case "credit":
			decl.Balance = xbrlmodel.BalanceCredit
		}
		switch strings.ToLower(e.PeriodType) {
		case "instant":
			decl.PeriodType = xbrlmodel.PeriodTypeInstant
		default:
			decl.PeriodType = xbrlmodel.PeriodTypeDuration
		}
		out[qn] = decl
	}
	return out, nil
}

// ResolveInheritance fills in Balance for any extension element missing it
// by copying the base taxonomy element of the same local name, per the
// inheritance invariant in xbrlmodel.ElementDeclaration.
func ResolveInheritance(extension, base map[xbrlmodel.QName]xbrlmodel.ElementDeclaration) {
	for qn, decl := range extension {
		if decl.Balance != xbrlmodel.BalanceNone {
			continue
		}
		if baseDecl, ok := base[xbrlmodel.QName(baseQNameLookupKey(qn, base))]; ok {
			decl.Balance = baseDecl.Balance
			extension[qn] = decl
		}
	}
}

// baseQNameLookupKey finds a base-catalog qname sharing the local name of
// qn, since filer extensions and base elements often share local names
// across differing namespace prefixes only in edge cases; the common case
// is an exact qname match, tried first by the caller's map lookup semantics.
func baseQNameLookupKey(qn xbrlmodel.QName, base map[xbrlmodel.QName]xbrlmodel.ElementDeclaration) xbrlmodel.QName {
	if _, ok := base[qn]; ok {
		return qn
	}
	local := qn.Local()
	for candidate := range base {
		if candidate.Local() == local {
			return candidate
		}
	}
	return qn
}
