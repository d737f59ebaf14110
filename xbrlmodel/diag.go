package xbrlmodel

import "fmt"

// DiagKind enumerates the recoverable failure categories an engine call can
// report without aborting the whole filing (§7).
type DiagKind string

const (
	DiagMalformedInput      DiagKind = "malformed_input"
	DiagMissingLinkbase     DiagKind = "missing_linkbase"
	DiagNoMatchingStatement DiagKind = "no_matching_statement"
	DiagPeriodSelectionEmpty DiagKind = "period_selection_empty"
	DiagValueCoercion       DiagKind = "value_coercion"
	DiagStitchConflict      DiagKind = "stitch_conflict"
)

// Diagnostic is a structured, non-fatal warning attached to a Statement,
// StitchedStatement, or fact-store load result. The engine never swallows a
// malformed-input error silently for a single filing call; it surfaces one
// of these instead of returning a zero-value result with no explanation.
type Diagnostic struct {
	Kind    DiagKind
	Message string
	// Concept/Role/PeriodKey are populated when the diagnostic concerns a
	// specific element, presentation role, or period; left zero otherwise.
	Concept QName
	Role    string
	Period  PeriodKey
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// NewDiagnostic is a small constructor to keep call sites terse.
func NewDiagnostic(kind DiagKind, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
