package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarstitch/xbrlstmt/taxonomy"
	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

func newTestCache(t *testing.T) *TaxonomyCache {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewTaxonomyCache(mr.Addr(), "", 0, time.Hour, nil)
}

func TestTaxonomyCache_SetThenGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	tx := &taxonomy.Taxonomy{
		Elements: map[xbrlmodel.QName]xbrlmodel.ElementDeclaration{
			"us-gaap:Assets": {QName: "us-gaap:Assets", Balance: xbrlmodel.BalanceDebit},
		},
		Presentations: []xbrlmodel.PresentationNode{
			{Role: "http://example.com/role/BalanceSheet", ElementQName: "us-gaap:Assets"},
		},
	}

	cache.Set(ctx, "dts-hash-1", tx)

	got, ok := cache.Get(ctx, "dts-hash-1")
	require.True(t, ok)
	assert.Equal(t, tx.Elements, got.Elements)
	assert.Equal(t, tx.Presentations, got.Presentations)
}

func TestTaxonomyCache_GetMissReturnsFalse(t *testing.T) {
	cache := newTestCache(t)
	_, ok := cache.Get(context.Background(), "never-cached")
	assert.False(t, ok)
}
