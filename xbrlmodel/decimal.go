// Package xbrlmodel holds the core data model shared by every stage of the
// XBRL financial-statement engine: elements, contexts, facts, presentation
// and calculation graphs, rendered statements, and diagnostics.
package xbrlmodel

import (
	"github.com/shopspring/decimal"
)

// Decimal is the exact numeric type for every fact value and rendered
// line-item value in the engine. Facts are never stored as float64: the
// regulator's filings carry exact decimal precision (via the "decimals"
// attribute) and comparing rendered totals against calculation-linkbase
// weights requires exact arithmetic, not float rounding.
type Decimal = decimal.Decimal

// NewDecimalFromString parses a raw XBRL fact value, tolerating the
// thousands separators and unicode minus/dash variants SEC filers use.
func NewDecimalFromString(s string) (Decimal, error) {
	s = normalizeNumericText(s)
	return decimal.NewFromString(s)
}

func normalizeNumericText(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ',', ' ', ' ':
			continue
		case '−', '–', '—': // unicode minus, en-dash, em-dash
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// ScaleByDecimals applies the XBRL "decimals" attribute to a raw numeric
// value read verbatim off the wire. decimals is the number of digits after
// the decimal point preserved in the rounding sense of the XBRL spec: a
// negative decimals value (e.g. -6) means the fact is accurate only to the
// nearest 10^6 and is rendered already scaled by the filer, so no further
// scaling is applied here — decimals is retained purely as metadata for
// tolerance checks (§8 property 3).
func ScaleByDecimals(v Decimal, decimals int) Decimal {
	return v
}

// ApplyScale applies the inline-XBRL "scale" attribute to a raw numeric
// value: the reported digits are multiplied by 10^scale to recover the
// actual magnitude (scale=3 means the text is in thousands).
func ApplyScale(v Decimal, scale int) Decimal {
	if scale == 0 {
		return v
	}
	return v.Mul(decimal.New(1, int32(scale)))
}

// Tolerance returns the additivity tolerance for a value reported with the
// given decimals precision, per §8 property 3: half a unit in the last
// reported place (0.5 for decimals=0, 500 for decimals=-3).
func Tolerance(decimals int) Decimal {
	return decimal.New(5, -int32(decimals)-1)
}
