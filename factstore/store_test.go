package factstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

func TestQueryConcept(t *testing.T) {
	instant := xbrlmodel.Period{Instant: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}
	facts := []xbrlmodel.Fact{
		{ConceptQName: "us-gaap:Assets", Period: instant},
		{ConceptQName: "us-gaap:Liabilities", Period: instant},
		{ConceptQName: "us-gaap:Assets", Period: instant, Dimensions: []xbrlmodel.Dimension{{Axis: "us-gaap:StatementGeographicalAxis", Member: "country:US"}}},
	}
	s := New(facts)

	require.Len(t, s.QueryConcept("us-gaap:Assets"), 2)
	assert.Len(t, s.QueryConcept("us-gaap:Assets", Dimensional(false)), 1)
	assert.Len(t, s.Query(ByConcept("us-gaap:Assets"), WithDimension("us-gaap:StatementGeographicalAxis", "country:US")), 1)
}

func TestQueryPeriod(t *testing.T) {
	p1 := xbrlmodel.Period{Instant: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}
	p2 := xbrlmodel.Period{Instant: time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)}
	facts := []xbrlmodel.Fact{
		{ConceptQName: "us-gaap:Assets", Period: p1},
		{ConceptQName: "us-gaap:Assets", Period: p2},
	}
	s := New(facts)
	assert.Len(t, s.QueryPeriod(xbrlmodel.NewPeriodKey(p1)), 1)
}
