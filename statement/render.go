package statement

import (
	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
	"github.com/edgarstitch/xbrlstmt/taxonomy"
)

// RenderInput bundles everything the renderer needs to turn one
// presentation role into a Statement.
type RenderInput struct {
	Role              string
	Type              xbrlmodel.StatementType
	Tree              *taxonomy.PresentationTree
	Elements          map[xbrlmodel.QName]xbrlmodel.ElementDeclaration
	Labels            []xbrlmodel.LabelResource
	CalculationArcs   []xbrlmodel.CalculationArc
	Hypercubes        taxonomy.HypercubeIndex
	// FactsByConcept supplies every fact reported for a concept, across all
	// periods and dimensional breakouts, for this filing.
	FactsByConcept map[xbrlmodel.QName][]xbrlmodel.Fact
	Periods        []xbrlmodel.PeriodKey

	// IncludeDimensions overrides the §6 include_dimensions default (false,
	// except true for StatementOfEquity/ComprehensiveIncome). Leave nil to
	// take the type-based default.
	IncludeDimensions *bool
}

// defaultIncludeDimensions implements the §6 include_dimensions default:
// statements that are inherently dimensional (equity, comprehensive income)
// include dimensional breakout rows unless the caller overrides; every other
// statement type excludes them by default.
func defaultIncludeDimensions(t xbrlmodel.StatementType) bool {
	return t == xbrlmodel.StatementOfEquity || t == xbrlmodel.StatementComprehensiveIncome
}

func (in RenderInput) includeDimensions() bool {
	if in.IncludeDimensions != nil {
		return *in.IncludeDimensions
	}
	return defaultIncludeDimensions(in.Type)
}

// totalLabelRoles are consulted in precedence order to decide whether a row
// is a "total" row for sign/emphasis purposes: the role's calculation
// linkbase naming this concept as a summation target (it has children
// summing into it) wins first; next, an explicit totalLabel on the
// presentation arc's preferredLabel; only when neither signal is present
// does the renderer fall back to a label-text heuristic ("Total",
// "Net income", "Net loss").
var totalLabelRoles = map[string]bool{
	xbrlmodel.LabelRoleTotal:        true,
	xbrlmodel.LabelRoleNegatedTotal: true,
}

// Render walks in.Tree depth-first and produces a Statement with one
// LineItem per visited node, values populated from in.FactsByConcept for
// abstract-free rows only.
func Render(in RenderInput) xbrlmodel.Statement {
	stmt := xbrlmodel.Statement{
		Role:           in.Role,
		Type:           in.Type,
		PeriodsOrdered: in.Periods,
	}

	calcTargets := calculationSummationTargets(in.CalculationArcs, in.Role)
	calcWeights := calculationWeights(in.CalculationArcs, in.Role)
	includeDims := in.includeDimensions()

	in.Tree.Walk(func(n *taxonomy.TreeNode) {
		decl := in.Elements[n.Node.ElementQName]
		row := xbrlmodel.LineItem{
			ConceptQName:  n.Node.ElementQName,
			Depth:         n.Node.Depth,
			IsAbstract:    n.Node.IsAbstractFromSchema || decl.Abstract,
			ParentConcept: n.Node.ParentQName,
			Label:         resolveLabel(in.Labels, n.Node.ElementQName, n.Node.PreferredLabel),
			Balance:       decl.Balance,
			Weight:        calcWeights[calcEdge{n.Node.ParentQName, n.Node.ElementQName}],
			SignPreference: signPreference(n.Node.PreferredLabel, decl.Balance),
		}
		row.IsTotal = isTotalRow(n.Node.PreferredLabel, calcTargets[n.Node.ElementQName], row.Label)

		if axis, member, dimensional := lineItemsDimension(n.Node.ElementQName, in.Hypercubes); dimensional {
			row.IsDimensional = true
			row.DimensionAxis = axis
			row.DimensionMember = member
		}

		facts := in.FactsByConcept[n.Node.ElementQName]
		if !row.IsAbstract {
			row.Values = valuesForConcept(facts, in.Periods)
		}

		stmt.Rows = append(stmt.Rows, row)

		if includeDims && !row.IsAbstract {
			stmt.Rows = append(stmt.Rows, dimensionalRows(row, facts, in.Periods)...)
		}
	})

	if len(stmt.Rows) == 0 {
		stmt.Diagnostics = append(stmt.Diagnostics, xbrlmodel.NewDiagnostic(
			xbrlmodel.DiagNoMatchingStatement, "role %s produced no rows", in.Role))
	}
	return stmt
}

func calculationSummationTargets(arcs []xbrlmodel.CalculationArc, role string) map[xbrlmodel.QName]bool {
	targets := make(map[xbrlmodel.QName]bool)
	for _, a := range arcs {
		if a.Role == role {
			targets[a.FromQName] = true
		}
	}
	return targets
}

// calcEdge identifies one parent-to-child calculation arc.
type calcEdge struct {
	parent, child xbrlmodel.QName
}

// calculationWeights indexes a role's calculation arcs by (parent, child) so
// Render can attach each row's weight relative to its presentation parent.
func calculationWeights(arcs []xbrlmodel.CalculationArc, role string) map[calcEdge]float64 {
	weights := make(map[calcEdge]float64, len(arcs))
	for _, a := range arcs {
		if a.Role == role {
			weights[calcEdge{a.FromQName, a.ToQName}] = a.Weight
		}
	}
	return weights
}

// dimensionalRows implements §4.5 step 2: when dimensions are requested,
// emit one child row per (axis, member) combination carried by parent's
// dimensional facts. A fact reported under more than one axis contributes a
// row under each axis it carries.
func dimensionalRows(parent xbrlmodel.LineItem, facts []xbrlmodel.Fact, periods []xbrlmodel.PeriodKey) []xbrlmodel.LineItem {
	type axisMember struct {
		axis, member xbrlmodel.QName
	}
	var order []axisMember
	byCombo := make(map[axisMember][]xbrlmodel.Fact)
	for _, f := range facts {
		if !f.IsDimensional() {
			continue
		}
		for _, d := range f.Dimensions {
			key := axisMember{d.Axis, d.Member}
			if _, seen := byCombo[key]; !seen {
				order = append(order, key)
			}
			byCombo[key] = append(byCombo[key], f)
		}
	}

	rows := make([]xbrlmodel.LineItem, 0, len(order))
	for _, key := range order {
		rows = append(rows, xbrlmodel.LineItem{
			ConceptQName:    parent.ConceptQName,
			Label:           parent.Label,
			Depth:           parent.Depth + 1,
			IsDimensional:   true,
			DimensionAxis:   key.axis,
			DimensionMember: key.member,
			ParentConcept:   parent.ConceptQName,
			Balance:         parent.Balance,
			Weight:          parent.Weight,
			SignPreference:  parent.SignPreference,
			Values:          valuesFromFacts(byCombo[key], periods),
		})
	}
	return rows
}

// isTotalRow applies the precedence chain: a concept with calculation
// children summing into it is a total first; otherwise an explicit
// totalLabel preferred-label role; otherwise fall back to a label-text
// heuristic.
func isTotalRow(preferredLabel string, isCalcSummationTarget bool, label string) bool {
	if isCalcSummationTarget {
		return true
	}
	if totalLabelRoles[preferredLabel] {
		return true
	}
	lower := label
	return containsAny(lower, "Total", "Net income", "Net loss")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if len(sub) <= len(s) && indexOf(s, sub) >= 0 {
			return true
		}
	}
	return false
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// signPreference derives the multiplicative sign to apply at render time
// from the preferred-label role (negated labels flip sign) and falls back
// to +1 otherwise; the underlying balance type is informational only here
// since the calculation linkbase weight — not the balance type — is what
// governs additivity (§3).
func signPreference(preferredLabel string, _ xbrlmodel.BalanceType) float64 {
	switch preferredLabel {
	case xbrlmodel.LabelRoleNegated, xbrlmodel.LabelRoleNegatedTotal:
		return -1
	default:
		return 1
	}
}

func resolveLabel(labels []xbrlmodel.LabelResource, qn xbrlmodel.QName, preferredRole string) string {
	var standard, preferred string
	for _, l := range labels {
		if l.ElementQName != qn {
			continue
		}
		if l.Role == xbrlmodel.LabelRoleStandard && standard == "" {
			standard = l.Text
		}
		if preferredRole != "" && l.Role == preferredRole && preferred == "" {
			preferred = l.Text
		}
	}
	if preferred != "" {
		return preferred
	}
	if standard != "" {
		return standard
	}
	return string(qn.Local())
}

// lineItemsDimension reports whether qn is a line-items concept bound to a
// hypercube with a single declared default member — in which case the
// default-member axis is attached directly to the row rather than treated
// as a blank "total" axis with no member.
func lineItemsDimension(qn xbrlmodel.QName, idx taxonomy.HypercubeIndex) (xbrlmodel.QName, xbrlmodel.QName, bool) {
	cubes := idx.LineItemsHypercube[qn]
	if len(cubes) == 0 {
		return "", "", false
	}
	hc := idx.Hypercubes[cubes[0]]
	if len(hc.DefaultMember) != 1 {
		return "", "", false
	}
	for axis, member := range hc.DefaultMember {
		return axis, member, true
	}
	return "", "", false
}

// valuesForConcept picks, for each requested period, the best matching
// non-dimensional fact reported for that concept: §4.5 step 2 pulls the
// segment-free fact for the row itself, leaving dimensional facts to
// dimensionalRows.
func valuesForConcept(facts []xbrlmodel.Fact, periods []xbrlmodel.PeriodKey) map[xbrlmodel.PeriodKey]*xbrlmodel.Decimal {
	if len(facts) == 0 {
		return nil
	}
	nonDimensional := make([]xbrlmodel.Fact, 0, len(facts))
	for _, f := range facts {
		if !f.IsDimensional() {
			nonDimensional = append(nonDimensional, f)
		}
	}
	return valuesFromFacts(nonDimensional, periods)
}

// valuesFromFacts picks, for each requested period, the first fact on
// record for that period; callers pre-filter facts to whatever dimensional
// slice they need represented.
func valuesFromFacts(facts []xbrlmodel.Fact, periods []xbrlmodel.PeriodKey) map[xbrlmodel.PeriodKey]*xbrlmodel.Decimal {
	if len(facts) == 0 {
		return nil
	}
	byPeriod := make(map[xbrlmodel.PeriodKey]xbrlmodel.Fact, len(facts))
	for _, f := range facts {
		key := xbrlmodel.NewPeriodKey(f.Period)
		if _, exists := byPeriod[key]; !exists {
			byPeriod[key] = f
		}
	}
	out := make(map[xbrlmodel.PeriodKey]*xbrlmodel.Decimal, len(periods))
	for _, p := range periods {
		if f, ok := byPeriod[p]; ok && f.Value != nil {
			v := *f.Value
			out[p] = &v
		}
	}
	return out
}
