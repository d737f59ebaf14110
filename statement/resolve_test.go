package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

func TestClassifyRole_ByNameAndPrimaryConcept(t *testing.T) {
	c := ClassifyRole("0002 - Statement - Consolidated Balance Sheets", []xbrlmodel.QName{"us-gaap:Assets"})
	assert.Equal(t, xbrlmodel.StatementBalanceSheet, c.Type)
	assert.True(t, IsPrimaryStatement(c))
}

func TestClassifyRole_NotesFallback(t *testing.T) {
	c := ClassifyRole("0010 - Disclosure - Commitments and Contingencies", nil)
	assert.Equal(t, xbrlmodel.StatementNotes, c.Type)
	assert.False(t, IsPrimaryStatement(c))
}

func TestClassifyRole_PrimaryConceptOnlyStillScoresConsistently(t *testing.T) {
	byName := ClassifyRole("0003 - Statement - Consolidated Statements of Operations", nil)
	byConcept := ClassifyRole("0099 - Custom Role Name", []xbrlmodel.QName{"us-gaap:NetIncomeLoss", "us-gaap:Revenues"})
	assert.Equal(t, xbrlmodel.StatementIncomeStatement, byName.Type)
	assert.Equal(t, xbrlmodel.StatementIncomeStatement, byConcept.Type)
}
