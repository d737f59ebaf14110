package instance

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// rawContext mirrors the xbrli:context element shape for unmarshaling;
// resolveContext converts it into the flattened xbrlmodel.Context.
type rawContext struct {
	ID     string        `xml:"id,attr"`
	Entity rawEntity     `xml:"entity"`
	Period rawPeriod     `xml:"period"`
}

type rawEntity struct {
	Identifier string      `xml:"identifier"`
	Segment    rawSegment  `xml:"segment"`
}

type rawSegment struct {
	ExplicitMembers []rawExplicitMember `xml:"explicitMember"`
	TypedMembers    []rawTypedMember    `xml:"typedMember"`
}

type rawExplicitMember struct {
	Dimension string `xml:"dimension,attr"`
	Value     string `xml:",chardata"`
}

type rawTypedMember struct {
	Dimension string `xml:"dimension,attr"`
	Value     string `xml:",innerxml"`
}

type rawPeriod struct {
	Instant   string `xml:"instant"`
	StartDate string `xml:"startDate"`
	EndDate   string `xml:"endDate"`
}

type rawUnit struct {
	ID     string     `xml:"id,attr"`
	Measure []string   `xml:"measure"`
	Divide  *rawDivide `xml:"divide"`
}

type rawDivide struct {
	NumeratorMeasure   string `xml:"unitNumerator>measure"`
	DenominatorMeasure string `xml:"unitDenominator>measure"`
}

func resolveContext(raw rawContext) xbrlmodel.Context {
	ctx := xbrlmodel.Context{
		ID:        raw.ID,
		EntityID:  strings.TrimSpace(raw.Entity.Identifier),
		EntityCIK: normalizeCIK(raw.Entity.Identifier),
		Period:    resolvePeriod(raw.Period),
	}
	for _, m := range raw.Entity.Segment.ExplicitMembers {
		ctx.Segment = append(ctx.Segment, xbrlmodel.Dimension{
			Axis:   qnameFromColonOrPrefixed(m.Dimension),
			Member: qnameFromColonOrPrefixed(strings.TrimSpace(m.Value)),
		})
	}
	for _, m := range raw.Entity.Segment.TypedMembers {
		ctx.Segment = append(ctx.Segment, xbrlmodel.Dimension{
			Axis:  qnameFromColonOrPrefixed(m.Dimension),
			Typed: strings.TrimSpace(m.Value),
		})
	}
	return ctx
}

func resolvePeriod(raw rawPeriod) xbrlmodel.Period {
	if raw.Instant != "" {
		t, _ := parseXBRLDate(raw.Instant)
		return xbrlmodel.Period{Instant: t}
	}
	start, _ := parseXBRLDate(raw.StartDate)
	end, _ := parseXBRLDate(raw.EndDate)
	return xbrlmodel.Period{Start: start, End: end}
}

func parseXBRLDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func resolveUnit(raw rawUnit) xbrlmodel.Unit {
	u := xbrlmodel.Unit{ID: raw.ID}
	if raw.Divide != nil {
		u.Numerator = cleanMeasure(raw.Divide.NumeratorMeasure)
		u.Denominator = cleanMeasure(raw.Divide.DenominatorMeasure)
		return u
	}
	if len(raw.Measure) > 0 {
		u.Measure = cleanMeasure(raw.Measure[0])
	}
	return u
}

func cleanMeasure(s string) string {
	return strings.TrimSpace(s)
}

// normalizeCIK extracts the 10-digit CIK from an entity identifier such as
// "0001234567" or scheme-qualified "https://www.sec.gov/CIK 0001234567".
func normalizeCIK(identifier string) string {
	s := strings.TrimSpace(identifier)
	if i := strings.LastIndex(s, " "); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// qnameFromColonOrPrefixed accepts either "us-gaap:Assets" or an XML
// attribute value already resolved to that form by the decoder; it exists
// as a seam so callers don't need to know which.
func qnameFromColonOrPrefixed(s string) xbrlmodel.QName {
	return xbrlmodel.QName(strings.TrimSpace(s))
}

// qnameFromXMLName turns a namespace-qualified xml.Name into "prefix:local"
// using the document's declared prefix for that namespace when known, or
// the bare local name otherwise.
func qnameFromXMLName(name xml.Name, prefixes map[string]string) xbrlmodel.QName {
	if name.Space == "" {
		return xbrlmodel.QName(name.Local)
	}
	if prefix, ok := prefixes[name.Space]; ok && prefix != "" {
		return xbrlmodel.QName(prefix + ":" + name.Local)
	}
	return xbrlmodel.QName(name.Local)
}
