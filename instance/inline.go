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

const nsInlineXBRL = "http://www.xbrl.org/2013/inlineXBRL"

// ParseInline reads an inline XBRL (iXBRL) document — an XHTML document
// with embedded ix:nonFraction/ix:nonNumeric/ix:fraction facts and an
// ix:header/ix:resources block carrying the contexts and units those facts
// reference — and returns the same flattened Document shape Parse returns
// for classic instances.
//
// ix:continuation chains (a fact's text split across multiple elements
// linked by continuedAt/id) are followed and concatenated before the text
// is coerced, per the non-numeric continuation handling XBRL 2013 inline
// filings rely on.
func ParseInline(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("instance: read inline document: %w", err)
	}
	doc := &Document{
		Contexts: make(map[string]xbrlmodel.Context),
		Units:    make(map[string]xbrlmodel.Unit),
	}

	continuations := make(map[string]string)    // id -> text, for continuedAt resolution
	nextContinuation := make(map[string]string) // continuation id -> its own continuedAt

	dec := xml.NewDecoder(bytes.NewReader(data))
	var pendingFacts []pendingInlineFact

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return doc, fmt.Errorf("instance: inline token: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Space != nsInlineXBRL {
			continue
		}

		switch start.Name.Local {
		case "context":
			var raw rawContext
			if err := dec.DecodeElement(&raw, &start); err == nil {
				doc.Contexts[raw.ID] = resolveContext(raw)
			}
		case "unit":
			var raw rawUnit
			if err := dec.DecodeElement(&raw, &start); err == nil {
				doc.Units[raw.ID] = resolveUnit(raw)
			}
		case "nonFraction", "nonNumeric", "fraction":
			pf, err := decodeInlineFact(dec, start)
			if err != nil {
				doc.Diagnostics = append(doc.Diagnostics, xbrlmodel.NewDiagnostic(
					xbrlmodel.DiagValueCoercion, "decode inline fact %s: %v", start.Name.Local, err))
				continue
			}
			pendingFacts = append(pendingFacts, pf)
		case "continuation":
			id := attrValue(start.Attr, "id")
			nextContinuation[id] = attrValue(start.Attr, "continuedAt")
			var raw struct {
				Text string `xml:",innerxml"`
			}
			if err := dec.DecodeElement(&raw, &start); err == nil {
				continuations[id] = stripTags(raw.Text)
			}
		case "footnote":
			fn, err := decodeFootnoteElement(dec, start)
			if err == nil {
				doc.Footnotes = append(doc.Footnotes, fn)
			}
		}
	}

	for _, pf := range pendingFacts {
		fact := pf.toFact(continuations, nextContinuation)
		doc.Facts = append(doc.Facts, fact)
	}

	resolveFacts(doc)
	extractDEI(doc)
	return doc, nil
}

type pendingInlineFact struct {
	name         xbrlmodel.QName
	contextRef   string
	unitRef      string
	id           string
	isNumeric    bool
	nilValue     bool
	sign         string
	scale        int
	decimals     *int
	rawText      string
	continuedAt  string
}

func decodeInlineFact(dec *xml.Decoder, start xml.StartElement) (pendingInlineFact, error) {
	var raw struct {
		Text string `xml:",innerxml"`
	}
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return pendingInlineFact{}, err
	}

	pf := pendingInlineFact{
		name:        xbrlmodel.QName(attrValue(start.Attr, "name")),
		contextRef:  attrValue(start.Attr, "contextRef"),
		unitRef:     attrValue(start.Attr, "unitRef"),
		id:          attrValue(start.Attr, "id"),
		isNumeric:   start.Name.Local == "nonFraction" || start.Name.Local == "fraction",
		nilValue:    attrValue(start.Attr, "nil") == "true",
		sign:        attrValue(start.Attr, "sign"),
		continuedAt: attrValue(start.Attr, "continuedAt"),
		rawText:     stripTags(raw.Text),
	}
	if scaleAttr := attrValue(start.Attr, "scale"); scaleAttr != "" {
		if s, err := strconv.Atoi(scaleAttr); err == nil {
			pf.scale = s
		}
	}
	if decimalsAttr := attrValue(start.Attr, "decimals"); decimalsAttr != "" && decimalsAttr != "INF" {
		if d, err := strconv.Atoi(decimalsAttr); err == nil {
			pf.decimals = &d
		}
	}
	return pf, nil
}

// toFact resolves continuation chains and applies the ix: sign/scale
// transforms to produce the final xbrlmodel.Fact.
func (pf pendingInlineFact) toFact(continuations, nextContinuation map[string]string) xbrlmodel.Fact {
	text := pf.rawText
	seen := map[string]bool{}
	for next := pf.continuedAt; next != "" && !seen[next]; {
		seen[next] = true
		cont, ok := continuations[next]
		if !ok {
			break
		}
		text += cont
		next = nextContinuation[next]
	}

	fact := xbrlmodel.Fact{
		ID:           pf.id,
		ConceptQName: pf.name,
		ContextRef:   pf.contextRef,
		UnitRef:      pf.unitRef,
		Decimals:     pf.decimals,
		Nil:          pf.nilValue,
	}

	if !pf.isNumeric || pf.nilValue {
		fact.TextValue = strings.TrimSpace(text)
		return fact
	}

	dec, err := xbrlmodel.NewDecimalFromString(text)
	if err != nil {
		fact.TextValue = strings.TrimSpace(text)
		return fact
	}
	if pf.sign == "-" {
		dec = dec.Neg()
	}
	if pf.scale != 0 {
		dec = xbrlmodel.ApplyScale(dec, pf.scale)
	}
	fact.Value = &dec
	return fact
}
