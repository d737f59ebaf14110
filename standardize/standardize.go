// Package standardize maps the many taxonomy concepts filers use for the
// same economic idea (us-gaap:Assets vs a filer's own extension concept
// covering the same line) onto one canonical concept name, so statements
// from different companies and different years line up for stitching.
package standardize

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// CanonicalField is one standardized line-item identity, independent of
// which taxonomy concept a given filer happened to tag it with.
type CanonicalField struct {
	Key   string // e.g. "net_income_loss"
	Label string // e.g. "Net Income"
}

// Mapping is a loaded concept -> canonical-field table for one statement
// family (income statement, balance sheet, cash flow, ...).
type Mapping struct {
	Statement xbrlmodel.StatementType
	byConcept map[xbrlmodel.QName]CanonicalField
}

// mappingFile is the on-disk JSON shape: canonical key -> {label, concepts}.
// Concepts lists every taxonomy qname (across years and filer extensions)
// known to report that canonical field, ordered from most- to
// least-preferred when more than one is present on the same statement.
type mappingFile map[string]struct {
	Label    string             `json:"label"`
	Concepts []xbrlmodel.QName  `json:"concepts"`
}

// LoadMapping reads a standardization table from JSON.
func LoadMapping(r io.Reader, stmt xbrlmodel.StatementType) (*Mapping, error) {
	var raw mappingFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("standardize: decode mapping: %w", err)
	}
	m := &Mapping{Statement: stmt, byConcept: make(map[xbrlmodel.QName]CanonicalField)}
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		entry := raw[key]
		field := CanonicalField{Key: key, Label: entry.Label}
		for _, c := range entry.Concepts {
			if _, exists := m.byConcept[c]; exists {
				continue // a concept listed under several canonical keys stays with the key that sorts first
			}
			m.byConcept[c] = field
		}
	}
	return m, nil
}

// Resolve returns the canonical field for a taxonomy concept, if mapped.
func (m *Mapping) Resolve(qn xbrlmodel.QName) (CanonicalField, bool) {
	f, ok := m.byConcept[qn]
	return f, ok
}

// Concepts returns every concept this mapping recognizes, the order
// undefined: callers needing a stable order should sort the result.
func (m *Mapping) Concepts() []xbrlmodel.QName {
	out := make([]xbrlmodel.QName, 0, len(m.byConcept))
	for qn := range m.byConcept {
		out = append(out, qn)
	}
	return out
}

// DefaultIncomeStatementMapping is the built-in table covering the common
// US-GAAP concepts for income-statement line items, used when the caller
// hasn't supplied its own JSON mapping file.
func DefaultIncomeStatementMapping() *Mapping {
	return &Mapping{
		Statement: xbrlmodel.StatementIncomeStatement,
		byConcept: map[xbrlmodel.QName]CanonicalField{
			"us-gaap:Revenues":                                       {"revenues", "Total Revenue"},
			"us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax": {"revenues", "Total Revenue"},
			"us-gaap:CostOfRevenue":                                  {"cost_of_revenue", "Cost of Revenue"},
			"us-gaap:GrossProfit":                                    {"gross_profit", "Gross Profit"},
			"us-gaap:OperatingExpenses":                              {"operating_expenses", "Operating Expenses"},
			"us-gaap:SellingGeneralAndAdministrativeExpense":         {"selling_general_and_administrative_expenses", "SG&A Expenses"},
			"us-gaap:ResearchAndDevelopmentExpense":                  {"research_and_development", "R&D Expenses"},
			"us-gaap:OperatingIncomeLoss":                            {"operating_income_loss", "Operating Income"},
			"us-gaap:InterestExpense":                                {"interest_expense_operating", "Interest Expense"},
			"us-gaap:IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest": {"income_loss_before_taxes", "Pre-tax Income"},
			"us-gaap:IncomeTaxExpenseBenefit":                        {"income_tax_expense_benefit", "Income Tax"},
			"us-gaap:NetIncomeLoss":                                  {"net_income_loss", "Net Income"},
			"us-gaap:EarningsPerShareBasic":                          {"basic_earnings_per_share", "Basic EPS"},
			"us-gaap:EarningsPerShareDiluted":                        {"diluted_earnings_per_share", "Diluted EPS"},
			"us-gaap:WeightedAverageNumberOfSharesOutstandingBasic":  {"basic_average_shares", "Basic Shares Outstanding"},
			"us-gaap:WeightedAverageNumberOfDilutedSharesOutstanding": {"diluted_average_shares", "Diluted Shares Outstanding"},
		},
	}
}

// DefaultBalanceSheetMapping is the built-in table for common balance-sheet
// concepts.
func DefaultBalanceSheetMapping() *Mapping {
	return &Mapping{
		Statement: xbrlmodel.StatementBalanceSheet,
		byConcept: map[xbrlmodel.QName]CanonicalField{
			"us-gaap:Assets":                         {"assets", "Total Assets"},
			"us-gaap:AssetsCurrent":                  {"current_assets", "Current Assets"},
			"us-gaap:CashAndCashEquivalentsAtCarryingValue": {"cash_and_cash_equivalents", "Cash & Equivalents"},
			"us-gaap:AccountsReceivableNetCurrent":   {"accounts_receivable", "Accounts Receivable"},
			"us-gaap:InventoryNet":                   {"inventory", "Inventory"},
			"us-gaap:PrepaidExpenseCurrent":          {"prepaid_expenses", "Prepaid Expenses"},
			"us-gaap:AssetsNoncurrent":                {"noncurrent_assets", "Non-current Assets"},
			"us-gaap:PropertyPlantAndEquipmentNet":    {"fixed_assets", "Property, Plant & Equipment"},
			"us-gaap:IntangibleAssetsNetExcludingGoodwill": {"intangible_assets", "Intangible Assets"},
			"us-gaap:Goodwill":                        {"goodwill", "Goodwill"},
			"us-gaap:Liabilities":                     {"liabilities", "Total Liabilities"},
			"us-gaap:LiabilitiesCurrent":               {"current_liabilities", "Current Liabilities"},
			"us-gaap:AccountsPayableCurrent":           {"accounts_payable", "Accounts Payable"},
			"us-gaap:ShortTermBorrowings":               {"short_term_debt", "Short-term Debt"},
			"us-gaap:LiabilitiesNoncurrent":             {"noncurrent_liabilities", "Non-current Liabilities"},
			"us-gaap:LongTermDebtNoncurrent":            {"long_term_debt", "Long-term Debt"},
			"us-gaap:StockholdersEquity":                {"equity", "Total Equity"},
			"us-gaap:StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest": {"equity", "Total Equity"},
			"us-gaap:RetainedEarningsAccumulatedDeficit": {"retained_earnings", "Retained Earnings"},
			"us-gaap:CommonStockValue":                   {"common_stock", "Common Stock"},
		},
	}
}

// DefaultCashFlowMapping is the built-in table for common cash-flow
// concepts.
func DefaultCashFlowMapping() *Mapping {
	return &Mapping{
		Statement: xbrlmodel.StatementCashFlow,
		byConcept: map[xbrlmodel.QName]CanonicalField{
			"us-gaap:CashAndCashEquivalentsPeriodIncreaseDecrease":        {"net_cash_flow", "Net Change in Cash"},
			"us-gaap:NetCashProvidedByUsedInOperatingActivities":          {"net_cash_flow_from_operating_activities", "Operating Cash Flow"},
			"us-gaap:NetCashProvidedByUsedInInvestingActivities":          {"net_cash_flow_from_investing_activities", "Investing Cash Flow"},
			"us-gaap:NetCashProvidedByUsedInFinancingActivities":          {"net_cash_flow_from_financing_activities", "Financing Cash Flow"},
			"us-gaap:DepreciationDepletionAndAmortization":                {"depreciation_and_amortization", "Depreciation & Amortization"},
			"us-gaap:PaymentsToAcquirePropertyPlantAndEquipment":          {"capital_expenditure", "Capital Expenditure"},
			"us-gaap:PaymentsToAcquireInvestments":                        {"purchase_of_investment_securities", "Investment Purchases"},
			"us-gaap:ProceedsFromSaleMaturityAndCollectionsOfInvestments": {"sale_of_investment_securities", "Investment Sales"},
			"us-gaap:PaymentsOfDividends":                                 {"payment_of_dividends", "Dividends Paid"},
			"us-gaap:PaymentsForRepurchaseOfCommonStock":                  {"repurchase_of_common_stock", "Stock Buybacks"},
			"us-gaap:ProceedsFromIssuanceOfCommonStock":                   {"issuance_of_common_stock", "Stock Issuance"},
			"us-gaap:ProceedsFromIssuanceOfLongTermDebt":                  {"issuance_of_debt", "Debt Issuance"},
			"us-gaap:RepaymentsOfLongTermDebt":                            {"repayment_of_debt", "Debt Repayment"},
		},
	}
}
