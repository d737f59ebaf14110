package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarstitch/xbrlstmt/taxonomy"
	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

func TestRender_SuppressesValuesOnAbstractRows(t *testing.T) {
	nodes := []xbrlmodel.PresentationNode{
		{Role: "r1", ElementQName: "us-gaap:StatementOfFinancialPositionAbstract", ParentQName: "", Order: 1},
		{Role: "r1", ElementQName: "us-gaap:Assets", ParentQName: "us-gaap:StatementOfFinancialPositionAbstract", Order: 1},
	}
	tree := taxonomy.BuildPresentationTree("r1", nodes)

	period := xbrlmodel.Period{Instant: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}
	key := xbrlmodel.NewPeriodKey(period)
	val, _ := xbrlmodel.NewDecimalFromString("1000")

	in := RenderInput{
		Role: "r1",
		Type: xbrlmodel.StatementBalanceSheet,
		Tree: tree,
		Elements: map[xbrlmodel.QName]xbrlmodel.ElementDeclaration{
			"us-gaap:StatementOfFinancialPositionAbstract": {Abstract: true},
			"us-gaap:Assets":                               {Balance: xbrlmodel.BalanceDebit},
		},
		FactsByConcept: map[xbrlmodel.QName][]xbrlmodel.Fact{
			"us-gaap:Assets": {{ConceptQName: "us-gaap:Assets", Period: period, Value: &val}},
		},
		Periods: []xbrlmodel.PeriodKey{key},
	}

	stmt := Render(in)
	require.Len(t, stmt.Rows, 2)
	assert.True(t, stmt.Rows[0].IsAbstract)
	assert.Nil(t, stmt.Rows[0].Values)
	assert.False(t, stmt.Rows[1].IsAbstract)
	require.NotNil(t, stmt.Rows[1].Values[key])
}

func TestRender_DimensionalRowEmittedWhenIncludeDimensionsTrue(t *testing.T) {
	nodes := []xbrlmodel.PresentationNode{
		{Role: "r1", ElementQName: "us-gaap:LongTermDebt", ParentQName: "", Order: 1},
	}
	tree := taxonomy.BuildPresentationTree("r1", nodes)

	period := xbrlmodel.Period{Instant: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}
	key := xbrlmodel.NewPeriodKey(period)
	val, _ := xbrlmodel.NewDecimalFromString("150700000")

	include := true
	in := RenderInput{
		Role: "r1",
		Type: xbrlmodel.StatementBalanceSheet,
		Tree: tree,
		Elements: map[xbrlmodel.QName]xbrlmodel.ElementDeclaration{
			"us-gaap:LongTermDebt": {Balance: xbrlmodel.BalanceCredit},
		},
		FactsByConcept: map[xbrlmodel.QName][]xbrlmodel.Fact{
			"us-gaap:LongTermDebt": {{
				ConceptQName: "us-gaap:LongTermDebt",
				Period:       period,
				Value:        &val,
				Dimensions: []xbrlmodel.Dimension{
					{Axis: "us-gaap:RelatedPartyTransactionsByRelatedPartyAxis", Member: "us-gaap:AffiliatedEntityMember"},
				},
			}},
		},
		Periods:           []xbrlmodel.PeriodKey{key},
		IncludeDimensions: &include,
	}

	stmt := Render(in)
	require.Len(t, stmt.Rows, 2)

	parent := stmt.Rows[0]
	assert.False(t, parent.IsDimensional)
	assert.Nil(t, parent.Values[key])

	dim := stmt.Rows[1]
	assert.True(t, dim.IsDimensional)
	assert.Equal(t, xbrlmodel.QName("us-gaap:RelatedPartyTransactionsByRelatedPartyAxis"), dim.DimensionAxis)
	assert.Equal(t, xbrlmodel.QName("us-gaap:AffiliatedEntityMember"), dim.DimensionMember)
	require.NotNil(t, dim.Values[key])
	assert.Equal(t, val.String(), dim.Values[key].String())
}

func TestRender_DimensionalRowSuppressedByDefaultForBalanceSheet(t *testing.T) {
	nodes := []xbrlmodel.PresentationNode{
		{Role: "r1", ElementQName: "us-gaap:LongTermDebt", ParentQName: "", Order: 1},
	}
	tree := taxonomy.BuildPresentationTree("r1", nodes)

	period := xbrlmodel.Period{Instant: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}
	key := xbrlmodel.NewPeriodKey(period)
	val, _ := xbrlmodel.NewDecimalFromString("150700000")

	in := RenderInput{
		Role: "r1",
		Type: xbrlmodel.StatementBalanceSheet,
		Tree: tree,
		Elements: map[xbrlmodel.QName]xbrlmodel.ElementDeclaration{
			"us-gaap:LongTermDebt": {Balance: xbrlmodel.BalanceCredit},
		},
		FactsByConcept: map[xbrlmodel.QName][]xbrlmodel.Fact{
			"us-gaap:LongTermDebt": {{
				ConceptQName: "us-gaap:LongTermDebt",
				Period:       period,
				Value:        &val,
				Dimensions: []xbrlmodel.Dimension{
					{Axis: "us-gaap:RelatedPartyTransactionsByRelatedPartyAxis", Member: "us-gaap:AffiliatedEntityMember"},
				},
			}},
		},
		Periods: []xbrlmodel.PeriodKey{key},
	}

	stmt := Render(in)
	require.Len(t, stmt.Rows, 1)
}

func TestRender_DimensionalRowDefaultsOnForStatementOfEquity(t *testing.T) {
	nodes := []xbrlmodel.PresentationNode{
		{Role: "r1", ElementQName: "us-gaap:StockholdersEquity", ParentQName: "", Order: 1},
	}
	tree := taxonomy.BuildPresentationTree("r1", nodes)

	period := xbrlmodel.Period{Instant: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}
	key := xbrlmodel.NewPeriodKey(period)
	val, _ := xbrlmodel.NewDecimalFromString("500")

	in := RenderInput{
		Role: "r1",
		Type: xbrlmodel.StatementOfEquity,
		Tree: tree,
		Elements: map[xbrlmodel.QName]xbrlmodel.ElementDeclaration{
			"us-gaap:StockholdersEquity": {Balance: xbrlmodel.BalanceCredit},
		},
		FactsByConcept: map[xbrlmodel.QName][]xbrlmodel.Fact{
			"us-gaap:StockholdersEquity": {{
				ConceptQName: "us-gaap:StockholdersEquity",
				Period:       period,
				Value:        &val,
				Dimensions: []xbrlmodel.Dimension{
					{Axis: "us-gaap:StatementEquityComponentsAxis", Member: "us-gaap:CommonStockMember"},
				},
			}},
		},
		Periods: []xbrlmodel.PeriodKey{key},
	}

	stmt := Render(in)
	require.Len(t, stmt.Rows, 2)
	assert.True(t, stmt.Rows[1].IsDimensional)
}

func TestRender_NoRowsProducesDiagnostic(t *testing.T) {
	tree := taxonomy.BuildPresentationTree("empty", nil)
	stmt := Render(RenderInput{Role: "empty", Tree: tree})
	assert.NotEmpty(t, stmt.Diagnostics)
	assert.Equal(t, xbrlmodel.DiagNoMatchingStatement, stmt.Diagnostics[0].Kind)
}
