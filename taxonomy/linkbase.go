package taxonomy

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// linkbaseDoc is the generic shape shared by presentation, calculation, and
// definition linkbases: a sequence of extended links, each with its own loc
// table and arcs. Unmarshaling into one generic shape and interpreting the
// arcs per linkbase kind mirrors how the legacy Python loader kept one loc
// map per extended link instead of one global map keyed by "id" — the bug
// that conflated locators sharing an id attribute across roles.
type linkbaseDoc struct {
	Links []extendedLink `xml:",any"`
}

type extendedLink struct {
	XMLName xml.Name
	Role    string      `xml:"http://www.w3.org/1999/xlink role,attr"`
	Locs    []xlinkLoc  `xml:"loc"`
	Arcs    []xlinkArc  `xml:",any"`
}

type xlinkLoc struct {
	Label string `xml:"http://www.w3.org/1999/xlink label,attr"`
	Href  string `xml:"http://www.w3.org/1999/xlink href,attr"`
}

type xlinkArc struct {
	XMLName        xml.Name
	From           string `xml:"http://www.w3.org/1999/xlink from,attr"`
	To             string `xml:"http://www.w3.org/1999/xlink to,attr"`
	Arcrole        string `xml:"http://www.w3.org/1999/xlink arcrole,attr"`
	Order          string `xml:"order,attr"`
	Weight         string `xml:"weight,attr"`
	PreferredLabel string `xml:"preferredLabel,attr"`
}

// hrefConcept extracts the element local-qname fragment after '#', the same
// convention the legacy loader relies on (href="...xsd#us-gaap_Assets").
// The filer's underscore-joined fragment is rejoined with a colon to match
// the rest of this package's QName convention.
func hrefConcept(href string) xbrlmodel.QName {
	frag := href
	if i := strings.LastIndex(href, "#"); i >= 0 {
		frag = href[i+1:]
	}
	if i := strings.Index(frag, "_"); i >= 0 {
		return xbrlmodel.QName(frag[:i] + ":" + frag[i+1:])
	}
	return xbrlmodel.QName(frag)
}

func parseOrder(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseWeight(s string) float64 {
	if s == "" {
		return 1
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return v
}

func decodeLinkbase(r io.Reader) (linkbaseDoc, error) {
	var doc linkbaseDoc
	dec := xml.NewDecoder(r)
	err := dec.Decode(&doc)
	return doc, err
}

// locMap resolves an extended link's loc table to a from-label/to-label ->
// concept lookup, scoped to that single link so labels never leak across
// roles sharing an id.
func (l extendedLink) locMap() map[string]xbrlmodel.QName {
	m := make(map[string]xbrlmodel.QName, len(l.Locs))
	for _, loc := range l.Locs {
		m[loc.Label] = hrefConcept(loc.Href)
	}
	return m
}

// ParsePresentationLinkbase builds one PresentationNode per parent-child
// presentation arc, across every role in the document. Depth is not
// resolved here; BuildPresentationTree computes it from the parent chain.
func ParsePresentationLinkbase(r io.Reader) ([]xbrlmodel.PresentationNode, error) {
	doc, err := decodeLinkbase(r)
	if err != nil {
		return nil, err
	}
	var nodes []xbrlmodel.PresentationNode
	for _, link := range doc.Links {
		if link.Role == "" {
			continue
		}
		locs := link.locMap()
		for _, arc := range link.Arcs {
			if !strings.HasSuffix(arc.Arcrole, "parent-child") {
				continue
			}
			from, okFrom := locs[arc.From]
			to, okTo := locs[arc.To]
			if !okFrom || !okTo {
				continue
			}
			nodes = append(nodes, xbrlmodel.PresentationNode{
				Role:           link.Role,
				ElementQName:   to,
				ParentQName:    from,
				PreferredLabel: arc.PreferredLabel,
				Order:          parseOrder(arc.Order),
			})
		}
	}
	return nodes, nil
}

// ParseCalculationLinkbase builds one CalculationArc per summation-item arc
// across every role in the document.
func ParseCalculationLinkbase(r io.Reader) ([]xbrlmodel.CalculationArc, error) {
	doc, err := decodeLinkbase(r)
	if err != nil {
		return nil, err
	}
	var arcs []xbrlmodel.CalculationArc
	for _, link := range doc.Links {
		if link.Role == "" {
			continue
		}
		locs := link.locMap()
		for _, arc := range link.Arcs {
			if !strings.HasSuffix(arc.Arcrole, "summation-item") {
				continue
			}
			from, okFrom := locs[arc.From]
			to, okTo := locs[arc.To]
			if !okFrom || !okTo {
				continue
			}
			arcs = append(arcs, xbrlmodel.CalculationArc{
				Role:      link.Role,
				FromQName: from,
				ToQName:   to,
				Weight:    parseWeight(arc.Weight),
				Order:     parseOrder(arc.Order),
			})
		}
	}
	return arcs, nil
}

// ParseDefinitionLinkbase builds one DefinitionArc per dimensional arc
// (all, notAll, hypercube-dimension, dimension-domain, domain-member)
// across every role in the document.
//
// Invariant (§4.1 item 4): for an "all" arc, From is kept as the line-items
// concept and To as the hypercube concept, exactly as the href order gives
// them — this function never swaps them.
func ParseDefinitionLinkbase(r io.Reader) ([]xbrlmodel.DefinitionArc, error) {
	doc, err := decodeLinkbase(r)
	if err != nil {
		return nil, err
	}
	var arcs []xbrlmodel.DefinitionArc
	for _, link := range doc.Links {
		if link.Role == "" {
			continue
		}
		locs := link.locMap()
		for _, arc := range link.Arcs {
			kind := dimensionalArcKind(arc.Arcrole)
			if kind == "" {
				continue
			}
			from, okFrom := locs[arc.From]
			to, okTo := locs[arc.To]
			if !okFrom || !okTo {
				continue
			}
			arcs = append(arcs, xbrlmodel.DefinitionArc{
				Role:      link.Role,
				ArcRole:   kind,
				FromQName: from,
				ToQName:   to,
				Order:     parseOrder(arc.Order),
			})
		}
	}
	return arcs, nil
}

func dimensionalArcKind(arcrole string) string {
	switch {
	case strings.HasSuffix(arcrole, "/all"):
		return "all"
	case strings.HasSuffix(arcrole, "/notAll"):
		return "notAll"
	case strings.HasSuffix(arcrole, "hypercube-dimension"):
		return "hypercube-dimension"
	case strings.HasSuffix(arcrole, "dimension-domain"):
		return "dimension-domain"
	case strings.HasSuffix(arcrole, "domain-member"):
		return "domain-member"
	case strings.HasSuffix(arcrole, "dimension-default"):
		return "dimension-default"
	default:
		return ""
	}
}

// labelLinkDoc is the label linkbase's own shape: locs plus labelArcs
// pointing at inline label resources (rather than at other locs), so it
// isn't reused from linkbaseDoc.
type labelLinkDoc struct {
	Links []labelExtendedLink `xml:",any"`
}

type labelExtendedLink struct {
	XMLName xml.Name
	Locs    []xlinkLoc    `xml:"loc"`
	Arcs    []xlinkArc    `xml:"labelArc"`
	Labels  []labelResElem `xml:"label"`
}

type labelResElem struct {
	Label   string `xml:"http://www.w3.org/1999/xlink label,attr"`
	Role    string `xml:"http://www.w3.org/1999/xlink role,attr"`
	Lang    string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Text    string `xml:",chardata"`
}

// ParseLabelLinkbase builds the element -> (role, lang) -> text catalog.
func ParseLabelLinkbase(r io.Reader) ([]xbrlmodel.LabelResource, error) {
	dec := xml.NewDecoder(r)
	var doc labelLinkDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	var out []xbrlmodel.LabelResource
	for _, link := range doc.Links {
		locs := make(map[string]xbrlmodel.QName, len(link.Locs))
		for _, loc := range link.Locs {
			locs[loc.Label] = hrefConcept(loc.Href)
		}
		resources := make(map[string]labelResElem, len(link.Labels))
		for _, lbl := range link.Labels {
			resources[lbl.Label] = lbl
		}
		for _, arc := range link.Arcs {
			concept, ok := locs[arc.From]
			if !ok {
				continue
			}
			res, ok := resources[arc.To]
			if !ok {
				continue
			}
			role := res.Role
			if role == "" {
				role = xbrlmodel.LabelRoleStandard
			}
			lang := res.Lang
			if lang == "" {
				lang = "en-US"
			}
			out = append(out, xbrlmodel.LabelResource{
				ElementQName: concept,
				Role:         role,
				XMLLang:      lang,
				Text:         strings.TrimSpace(res.Text),
			})
		}
	}
	return out, nil
}
