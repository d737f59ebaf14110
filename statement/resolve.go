// Package statement resolves which presentation roles in a taxonomy are the
// primary financial statements, and renders them into tables of line items.
package statement

import (
	"regexp"
	"strings"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// roleNamePattern matches the conventional "R4 - Statement - ..." role
// definition text filers' rendering tools emit, independent of filer.
var roleNamePattern = regexp.MustCompile(`(?i)statement|balance\s*sheet|income|operations|cash\s*flow|equity|comprehensive`)

// classificationRule scores how strongly a role's definition text and
// primary concepts suggest a given statement type. Every rule is scored by
// the same loop in ClassifyRole: 10 per matching name substring, 8 per
// matching primary concept, and 2 from the regex fallback only when neither
// matched. An income-statement score is lowered by 10 when the role text
// mentions "comprehensive", whichever of the three paths produced it.
type classificationRule struct {
	Type            xbrlmodel.StatementType
	NameSubstrings  []string
	PrimaryConcepts []xbrlmodel.QName
}

var classificationRules = []classificationRule{
	{
		Type:           xbrlmodel.StatementBalanceSheet,
		NameSubstrings: []string{"balance sheet", "statement of financial position"},
		PrimaryConcepts: []xbrlmodel.QName{"us-gaap:Assets", "us-gaap:LiabilitiesAndStockholdersEquity"},
	},
	{
		Type:           xbrlmodel.StatementIncomeStatement,
		NameSubstrings: []string{"income statement", "statement of operations", "statement of income", "statements of operations", "statements of income"},
		PrimaryConcepts: []xbrlmodel.QName{"us-gaap:NetIncomeLoss", "us-gaap:Revenues"},
	},
	{
		Type:           xbrlmodel.StatementCashFlow,
		NameSubstrings: []string{"cash flow"},
		PrimaryConcepts: []xbrlmodel.QName{"us-gaap:CashAndCashEquivalentsPeriodIncreaseDecrease"},
	},
	{
		Type:           xbrlmodel.StatementComprehensiveIncome,
		NameSubstrings: []string{"comprehensive income"},
		PrimaryConcepts: []xbrlmodel.QName{"us-gaap:ComprehensiveIncomeNetOfTax"},
	},
	{
		Type:           xbrlmodel.StatementOfEquity,
		NameSubstrings: []string{"stockholders equity", "shareholders equity", "changes in equity"},
		PrimaryConcepts: []xbrlmodel.QName{"us-gaap:StockholdersEquity"},
	},
	{
		Type:           xbrlmodel.StatementCover,
		NameSubstrings: []string{"document and entity", "cover"},
	},
}

// RoleClassification is the outcome of classifying one presentation role.
type RoleClassification struct {
	Role  string
	Type  xbrlmodel.StatementType
	Score int
}

// ClassifyRole scores roleDefinitionText (the human-readable role
// definition a filer's rendering tool embeds, e.g. "0002 - Statement -
// Consolidated Balance Sheets") and the set of concepts appearing at depth
// 0/1 of that role's presentation tree against every classification rule,
// returning the best match. A role that matches nothing scores
// StatementOther with score 0, which the caller treats as "no matching
// statement" (§7 NoMatchingStatement) rather than as a Notes disclosure.
func ClassifyRole(roleDefinitionText string, topConcepts []xbrlmodel.QName) RoleClassification {
	lower := strings.ToLower(roleDefinitionText)
	best := RoleClassification{Type: xbrlmodel.StatementOther}

	for _, rule := range classificationRules {
		score := 0
		for _, sub := range rule.NameSubstrings {
			if strings.Contains(lower, sub) {
				score += 10
			}
		}
		for _, pc := range rule.PrimaryConcepts {
			for _, tc := range topConcepts {
				if tc == pc {
					score += 8
				}
			}
		}
		if score == 0 && roleNamePattern.MatchString(lower) {
			score += 2
		}
		if rule.Type == xbrlmodel.StatementIncomeStatement && strings.Contains(lower, "comprehensive") {
			score -= 10
		}
		if score > best.Score {
			best = RoleClassification{Type: rule.Type, Score: score}
		}
	}

	if strings.Contains(lower, "notes") || strings.Contains(lower, "disclosure") || strings.Contains(lower, "policies") {
		if best.Score < 5 {
			best = RoleClassification{Type: xbrlmodel.StatementNotes, Score: 5}
		}
	}

	return best
}

// IsPrimaryStatement reports whether a classification is confident enough
// to treat as one of the primary statements (balance sheet, income
// statement, cash flow, equity, comprehensive income) rather than a note or
// an unclassified role.
func IsPrimaryStatement(c RoleClassification) bool {
	switch c.Type {
	case xbrlmodel.StatementBalanceSheet, xbrlmodel.StatementIncomeStatement,
		xbrlmodel.StatementCashFlow, xbrlmodel.StatementOfEquity, xbrlmodel.StatementComprehensiveIncome:
		return c.Score > 0
	default:
		return false
	}
}
