package instance

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

const (
	nsXBRLInstance = "http://www.xbrl.org/2003/instance"
	nsDEI          = "http://xbrl.sec.gov/dei"
)

// wellKnownPrefixes seeds the namespace-URI -> prefix map with the handful
// of namespaces every filing declares under a conventional prefix, so
// concept qnames come out readable even when a filer declares its own
// prefix for one of them under a different name.
var wellKnownPrefixes = map[string]string{
	nsXBRLInstance: "xbrli",
	nsDEI:          "dei",
}

// Parse reads a non-inline XBRL instance document (the classic
// xbrli:xbrl root with sibling xbrli:context, xbrli:unit, and fact
// elements) and returns the flattened Document.
//
// Facts are dynamic elements — us-gaap:Assets, a filer's own extension
// concept, etc. — so they cannot be declared as Go struct fields; this
// walks the raw token stream instead, the same approach used across the
// pack's other XBRL readers.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("instance: read: %w", err)
	}

	prefixes := discoverNamespacePrefixes(data)

	doc := &Document{
		Contexts: make(map[string]xbrlmodel.Context),
		Units:    make(map[string]xbrlmodel.Unit),
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return doc, fmt.Errorf("instance: token: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case start.Name.Space == nsXBRLInstance && start.Name.Local == "context":
			var raw rawContext
			if err := dec.DecodeElement(&raw, &start); err != nil {
				doc.Diagnostics = append(doc.Diagnostics, xbrlmodel.NewDiagnostic(
					xbrlmodel.DiagMalformedInput, "decode context: %v", err))
				continue
			}
			doc.Contexts[raw.ID] = resolveContext(raw)

		case start.Name.Space == nsXBRLInstance && start.Name.Local == "unit":
			var raw rawUnit
			if err := dec.DecodeElement(&raw, &start); err != nil {
				doc.Diagnostics = append(doc.Diagnostics, xbrlmodel.NewDiagnostic(
					xbrlmodel.DiagMalformedInput, "decode unit: %v", err))
				continue
			}
			doc.Units[raw.ID] = resolveUnit(raw)

		case hasAttr(start.Attr, "contextRef"):
			fact, err := decodeFactElement(dec, start, prefixes)
			if err != nil {
				doc.Diagnostics = append(doc.Diagnostics, xbrlmodel.NewDiagnostic(
					xbrlmodel.DiagValueCoercion, "decode fact %s: %v", start.Name.Local, err))
				continue
			}
			doc.Facts = append(doc.Facts, fact)

		case start.Name.Space == "" && start.Name.Local == "footnote":
			fn, err := decodeFootnoteElement(dec, start)
			if err == nil {
				doc.Footnotes = append(doc.Footnotes, fn)
			}
		}
	}

	resolveFacts(doc)
	extractDEI(doc)
	return doc, nil
}

func hasAttr(attrs []xml.Attr, local string) bool {
	for _, a := range attrs {
		if a.Name.Local == local {
			return true
		}
	}
	return false
}

func attrValue(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// discoverNamespacePrefixes scans every start element in the document for
// xmlns declarations and returns a URI -> prefix map, seeded with the
// well-known XBRL namespaces.
func discoverNamespacePrefixes(data []byte) map[string]string {
	prefixes := make(map[string]string, len(wellKnownPrefixes)+8)
	for uri, prefix := range wellKnownPrefixes {
		prefixes[uri] = prefix
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, a := range start.Attr {
			if a.Name.Space == "xmlns" {
				if _, seeded := wellKnownPrefixes[a.Value]; !seeded {
					prefixes[a.Value] = a.Name.Local
				}
			} else if a.Name.Space == "" && a.Name.Local == "xmlns" {
				// default namespace; no usable prefix
			}
		}
	}
	return prefixes
}

// decodeFactElement reads one fact's value and attributes into an
// xbrlmodel.Fact. Value coercion failures are returned as an error so the
// caller can record a Diagnostic rather than aborting the whole parse.
func decodeFactElement(dec *xml.Decoder, start xml.StartElement, prefixes map[string]string) (xbrlmodel.Fact, error) {
	var raw struct {
		Text string `xml:",chardata"`
	}
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return xbrlmodel.Fact{}, err
	}

	fact := xbrlmodel.Fact{
		ID:           attrValue(start.Attr, "id"),
		ConceptQName: qnameFromXMLName(start.Name, prefixes),
		ContextRef:   attrValue(start.Attr, "contextRef"),
		UnitRef:      attrValue(start.Attr, "unitRef"),
		Nil:          attrValue(start.Attr, "nil") == "true",
	}

	if decimalsAttr := attrValue(start.Attr, "decimals"); decimalsAttr != "" && decimalsAttr != "INF" {
		if d, err := strconv.Atoi(decimalsAttr); err == nil {
			fact.Decimals = &d
		}
	}

	if fact.UnitRef == "" || fact.Nil {
		fact.TextValue = strings.TrimSpace(raw.Text)
		return fact, nil
	}

	dec2, err := xbrlmodel.NewDecimalFromString(raw.Text)
	if err != nil {
		fact.TextValue = strings.TrimSpace(raw.Text)
		return fact, fmt.Errorf("numeric coercion for %s: %w", fact.ConceptQName, err)
	}
	fact.Value = &dec2
	return fact, nil
}

func decodeFootnoteElement(dec *xml.Decoder, start xml.StartElement) (xbrlmodel.Footnote, error) {
	var raw struct {
		Text string `xml:",innerxml"`
	}
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return xbrlmodel.Footnote{}, err
	}
	return xbrlmodel.Footnote{
		ID:      attrValue(start.Attr, "label"),
		Role:    attrValue(start.Attr, "role"),
		XMLLang: attrValue(start.Attr, "lang"),
		Text:    strings.TrimSpace(stripTags(raw.Text)),
	}, nil
}

// stripTags removes simple inline markup footnotes sometimes carry
// (e.g. <p> wrapping), without pulling in a full HTML parser for a detail
// this minor.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveFacts fills in each fact's derived Period/Dimensions/EntityCIK
// from its referenced context.
func resolveFacts(doc *Document) {
	for i := range doc.Facts {
		f := &doc.Facts[i]
		ctx, ok := doc.Contexts[f.ContextRef]
		if !ok {
			doc.Diagnostics = append(doc.Diagnostics, xbrlmodel.NewDiagnostic(
				xbrlmodel.DiagMalformedInput, "fact %s references unknown context %s", f.ConceptQName, f.ContextRef))
			continue
		}
		f.Period = ctx.Period
		f.Dimensions = ctx.Segment
		f.EntityCIK = ctx.EntityCIK
	}
}

func extractDEI(doc *Document) {
	for _, f := range doc.Facts {
		switch f.ConceptQName.Local() {
		case "EntityCentralIndexKey":
			doc.DEI.EntityCIK = f.TextValue
		case "DocumentType":
			doc.DEI.DocumentType = f.TextValue
		case "DocumentPeriodEndDate":
			doc.DEI.DocumentPeriodEndDate = f.TextValue
		case "DocumentFiscalYearFocus":
			doc.DEI.FiscalYearFocus = f.TextValue
		case "DocumentFiscalPeriodFocus":
			doc.DEI.FiscalPeriodFocus = f.TextValue
		case "AmendmentFlag":
			doc.DEI.AmendmentFlag = strings.EqualFold(f.TextValue, "true")
		}
		if doc.DEI.EntityCIK == "" && f.EntityCIK != "" {
			doc.DEI.EntityCIK = f.EntityCIK
		}
	}
}
