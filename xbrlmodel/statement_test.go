package xbrlmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatement_ToDataFrame(t *testing.T) {
	val, _ := NewDecimalFromString("150700000")
	key := PeriodKey("instant:2023-12-31")

	stmt := Statement{
		Role: "r1",
		Type: StatementBalanceSheet,
		Rows: []LineItem{
			{
				ConceptQName:    "us-gaap:LongTermDebt",
				Label:           "Long-term Debt",
				Depth:           1,
				IsDimensional:   true,
				DimensionAxis:   "us-gaap:RelatedPartyTransactionsByRelatedPartyAxis",
				DimensionMember: "us-gaap:AffiliatedEntityMember",
				Balance:         BalanceCredit,
				Weight:          1,
				SignPreference:  1,
				Values:          map[PeriodKey]*Decimal{key: &val},
			},
		},
	}

	rows := stmt.ToDataFrame()
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, QName("us-gaap:LongTermDebt"), row.Concept)
	assert.True(t, row.Dimension)
	assert.Equal(t, QName("us-gaap:RelatedPartyTransactionsByRelatedPartyAxis"), row.DimensionAxis)
	require.NotNil(t, row.Values[key])
	assert.Equal(t, val.String(), row.Values[key].String())
}

func TestStitchedStatement_ToDataFrame(t *testing.T) {
	stitched := StitchedStatement{
		Type: StatementIncomeStatement,
		Rows: []LineItem{
			{ConceptQName: "us-gaap:Revenues", Label: "Revenues", ParentConcept: "us-gaap:IncomeStatementAbstract"},
		},
	}

	rows := stitched.ToDataFrame()
	require.Len(t, rows, 1)
	assert.Equal(t, QName("us-gaap:IncomeStatementAbstract"), rows[0].ParentConcept)
}
