package standardize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMapping_FirstConceptWins(t *testing.T) {
	raw := `{
		"net_income_loss": {"label": "Net Income", "concepts": ["us-gaap:NetIncomeLoss", "us-gaap:ProfitLoss"]},
		"revenues": {"label": "Total Revenue", "concepts": ["us-gaap:Revenues"]}
	}`
	m, err := LoadMapping(strings.NewReader(raw), "income_statement")
	require.NoError(t, err)

	f, ok := m.Resolve("us-gaap:ProfitLoss")
	require.True(t, ok)
	assert.Equal(t, "net_income_loss", f.Key)

	_, ok = m.Resolve("us-gaap:Assets")
	assert.False(t, ok)
}

func TestDefaultMappings_ResolveCommonConcepts(t *testing.T) {
	inc := DefaultIncomeStatementMapping()
	f, ok := inc.Resolve("us-gaap:NetIncomeLoss")
	require.True(t, ok)
	assert.Equal(t, "Net Income", f.Label)

	bs := DefaultBalanceSheetMapping()
	_, ok = bs.Resolve("us-gaap:Assets")
	assert.True(t, ok)

	cf := DefaultCashFlowMapping()
	_, ok = cf.Resolve("us-gaap:NetCashProvidedByUsedInOperatingActivities")
	assert.True(t, ok)
}
