package xbrlmodel

// BalanceType is the debit/credit orientation declared on a schema element.
type BalanceType string

const (
	BalanceNone   BalanceType = ""
	BalanceDebit  BalanceType = "debit"
	BalanceCredit BalanceType = "credit"
)

// PeriodType distinguishes instant (balance-sheet-like) concepts from
// duration (flow-like) concepts.
type PeriodType string

const (
	PeriodTypeInstant  PeriodType = "instant"
	PeriodTypeDuration PeriodType = "duration"
)

// QName is a taxonomy-qualified element name, e.g. "us-gaap:Assets".
type QName string

// Local returns the local part of the qname (after the last colon).
func (q QName) Local() string {
	for i := len(q) - 1; i >= 0; i-- {
		if q[i] == ':' {
			return string(q[i+1:])
		}
	}
	return string(q)
}

// Namespace returns the prefix part of the qname (before the first colon),
// or "" if the qname carries no prefix.
func (q QName) Namespace() string {
	for i := 0; i < len(q); i++ {
		if q[i] == ':' {
			return string(q[:i])
		}
	}
	return ""
}

// ElementDeclaration is a single entry in a taxonomy's element catalog,
// built from the schema plus any filer-extension overrides.
//
// Invariant: QName is globally unique within a taxonomy scope. Balance is
// inherited from the base taxonomy element when a filer extension omits it
// (see taxonomy.ResolveInheritance).
type ElementDeclaration struct {
	QName             QName
	DataType          string
	SubstitutionGroup string
	Balance           BalanceType
	PeriodType        PeriodType
	Abstract          bool
	Nillable          bool
}
