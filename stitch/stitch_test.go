package stitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

func mustDecimal(t *testing.T, s string) *xbrlmodel.Decimal {
	t.Helper()
	d, err := xbrlmodel.NewDecimalFromString(s)
	require.NoError(t, err)
	return &d
}

func TestStitch_MergesPeriodsAndDedupesRows(t *testing.T) {
	key2023 := xbrlmodel.PeriodKey("instant:2023-12-31")
	key2022 := xbrlmodel.PeriodKey("instant:2022-12-31")

	filingA := FilingStatement{
		AccessionNumber: "A",
		FiledAt:         100,
		Statement: xbrlmodel.Statement{
			Type:           xbrlmodel.StatementBalanceSheet,
			PeriodsOrdered: []xbrlmodel.PeriodKey{key2022},
			Rows: []xbrlmodel.LineItem{
				{ConceptQName: "us-gaap:Assets", Values: map[xbrlmodel.PeriodKey]*xbrlmodel.Decimal{key2022: mustDecimal(t, "100")}},
			},
		},
	}
	filingB := FilingStatement{
		AccessionNumber: "B",
		FiledAt:         200,
		Statement: xbrlmodel.Statement{
			Type:           xbrlmodel.StatementBalanceSheet,
			PeriodsOrdered: []xbrlmodel.PeriodKey{key2023, key2022},
			Rows: []xbrlmodel.LineItem{
				{ConceptQName: "us-gaap:Assets", Values: map[xbrlmodel.PeriodKey]*xbrlmodel.Decimal{
					key2023: mustDecimal(t, "150"),
					key2022: mustDecimal(t, "100"),
				}},
			},
		},
	}

	out := Stitch([]FilingStatement{filingA, filingB}, PreferOriginalFiling)
	require.Len(t, out.PeriodsOrderedDesc, 2)
	assert.Equal(t, key2023, out.PeriodsOrderedDesc[0])
	assert.Equal(t, key2022, out.PeriodsOrderedDesc[1])
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "A", out.Provenance["us-gaap:Assets|instant:2022-12-31"])
}

func TestStitch_PreferOriginalKeepsEarliestNonAmendment(t *testing.T) {
	key := xbrlmodel.PeriodKey("instant:2023-12-31")
	original := FilingStatement{
		AccessionNumber: "orig", FiledAt: 100, IsAmendment: false,
		Statement: xbrlmodel.Statement{PeriodsOrdered: []xbrlmodel.PeriodKey{key}, Rows: []xbrlmodel.LineItem{
			{ConceptQName: "us-gaap:Assets", Values: map[xbrlmodel.PeriodKey]*xbrlmodel.Decimal{key: mustDecimal(t, "100")}},
		}},
	}
	amended := FilingStatement{
		AccessionNumber: "amend", FiledAt: 300, IsAmendment: true,
		Statement: xbrlmodel.Statement{PeriodsOrdered: []xbrlmodel.PeriodKey{key}, Rows: []xbrlmodel.LineItem{
			{ConceptQName: "us-gaap:Assets", Values: map[xbrlmodel.PeriodKey]*xbrlmodel.Decimal{key: mustDecimal(t, "110")}},
		}},
	}

	out := Stitch([]FilingStatement{original, amended}, PreferOriginalFiling)
	assert.Equal(t, "orig", out.Provenance["us-gaap:Assets|instant:2023-12-31"])

	outAmended := Stitch([]FilingStatement{original, amended}, PreferAsAmended)
	assert.Equal(t, "amend", outAmended.Provenance["us-gaap:Assets|instant:2023-12-31"])
}
