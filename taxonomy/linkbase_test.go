package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

const presentationFixture = `<?xml version="1.0"?>
<linkbase xmlns:xlink="http://www.w3.org/1999/xlink">
  <presentationLink xlink:role="http://example.com/role/BalanceSheet">
    <loc xlink:label="loc_Assets" xlink:href="us-gaap.xsd#us-gaap_Assets"/>
    <loc xlink:label="loc_Cash" xlink:href="us-gaap.xsd#us-gaap_CashAndCashEquivalentsAtCarryingValue"/>
    <presentationArc xlink:from="loc_Assets" xlink:to="loc_Cash" xlink:arcrole="http://www.xbrl.org/2003/arcrole/parent-child" order="1"/>
  </presentationLink>
</linkbase>`

const calculationFixture = `<?xml version="1.0"?>
<linkbase xmlns:xlink="http://www.w3.org/1999/xlink">
  <calculationLink xlink:role="http://example.com/role/BalanceSheet">
    <loc xlink:label="loc_Assets" xlink:href="us-gaap.xsd#us-gaap_Assets"/>
    <loc xlink:label="loc_Cash" xlink:href="us-gaap.xsd#us-gaap_CashAndCashEquivalentsAtCarryingValue"/>
    <calculationArc xlink:from="loc_Assets" xlink:to="loc_Cash" xlink:arcrole="http://www.xbrl.org/2003/arcrole/summation-item" weight="1" order="1"/>
  </calculationLink>
</linkbase>`

const definitionFixture = `<?xml version="1.0"?>
<linkbase xmlns:xlink="http://www.w3.org/1999/xlink">
  <definitionLink xlink:role="http://example.com/role/BalanceSheet">
    <loc xlink:label="loc_LineItems" xlink:href="co.xsd#co_BalanceSheetLineItems"/>
    <loc xlink:label="loc_Table" xlink:href="co.xsd#co_BalanceSheetTable"/>
    <definitionArc xlink:from="loc_LineItems" xlink:to="loc_Table" xlink:arcrole="http://xbrl.org/int/dim/arcrole/all" order="1"/>
  </definitionLink>
</linkbase>`

const labelFixture = `<?xml version="1.0"?>
<linkbase xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:xml="http://www.w3.org/XML/1998/namespace">
  <labelLink>
    <loc xlink:label="loc_Assets" xlink:href="us-gaap.xsd#us-gaap_Assets"/>
    <label xlink:label="label_Assets" xml:lang="en-US">Total assets</label>
    <labelArc xlink:from="loc_Assets" xlink:to="label_Assets"/>
  </labelLink>
</linkbase>`

func TestParsePresentationLinkbase(t *testing.T) {
	nodes, err := ParsePresentationLinkbase(strings.NewReader(presentationFixture))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, xbrlmodel.QName("us-gaap:Assets"), nodes[0].ParentQName)
	assert.Equal(t, xbrlmodel.QName("us-gaap:CashAndCashEquivalentsAtCarryingValue"), nodes[0].ElementQName)
	assert.Equal(t, float64(1), nodes[0].Order)
}

func TestParseCalculationLinkbase(t *testing.T) {
	arcs, err := ParseCalculationLinkbase(strings.NewReader(calculationFixture))
	require.NoError(t, err)
	require.Len(t, arcs, 1)
	assert.Equal(t, float64(1), arcs[0].Weight)
}

func TestParseDefinitionLinkbase_AllArcDirection(t *testing.T) {
	arcs, err := ParseDefinitionLinkbase(strings.NewReader(definitionFixture))
	require.NoError(t, err)
	require.Len(t, arcs, 1)
	assert.Equal(t, "all", arcs[0].ArcRole)
	assert.Equal(t, xbrlmodel.QName("co:BalanceSheetLineItems"), arcs[0].FromQName)
	assert.Equal(t, xbrlmodel.QName("co:BalanceSheetTable"), arcs[0].ToQName)
}

func TestParseLabelLinkbase(t *testing.T) {
	labels, err := ParseLabelLinkbase(strings.NewReader(labelFixture))
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "Total assets", labels[0].Text)
	assert.Equal(t, xbrlmodel.LabelRoleStandard, labels[0].Role)
}

func TestBuildPresentationTree_OrdersByArcOrder(t *testing.T) {
	nodes := []xbrlmodel.PresentationNode{
		{Role: "r1", ElementQName: "a:B", ParentQName: "a:A", Order: 2},
		{Role: "r1", ElementQName: "a:C", ParentQName: "a:A", Order: 1},
		{Role: "r1", ElementQName: "a:D", ParentQName: "a:B", Order: 1},
	}
	tree := BuildPresentationTree("r1", nodes)
	require.Len(t, tree.Roots, 2)
	assert.Equal(t, xbrlmodel.QName("a:C"), tree.Roots[0].Node.ElementQName)
	assert.Equal(t, xbrlmodel.QName("a:B"), tree.Roots[1].Node.ElementQName)
	require.Len(t, tree.Roots[1].Children, 1)
	assert.Equal(t, xbrlmodel.QName("a:D"), tree.Roots[1].Children[0].Node.ElementQName)
	assert.Equal(t, 1, tree.Roots[1].Children[0].Node.Depth)
}
