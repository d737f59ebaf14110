package xbrlmodel

// Standard label role URIs. Multiple label roles coexist per concept;
// the renderer selects by preferred-label role on the presentation arc,
// falling back to the standard label (§4.1 item 5).
const (
	LabelRoleStandard        = "http://www.xbrl.org/2003/role/label"
	LabelRoleTerse           = "http://www.xbrl.org/2003/role/terseLabel"
	LabelRoleVerbose         = "http://www.xbrl.org/2003/role/verboseLabel"
	LabelRoleTotal           = "http://www.xbrl.org/2003/role/totalLabel"
	LabelRolePeriodStart     = "http://www.xbrl.org/2003/role/periodStartLabel"
	LabelRolePeriodEnd       = "http://www.xbrl.org/2003/role/periodEndLabel"
	LabelRoleNegated         = "http://www.xbrl.org/2009/role/negatedLabel"
	LabelRoleNegatedTotal    = "http://www.xbrl.org/2009/role/negatedTotalLabel"
	LabelRoleDocumentation   = "http://www.xbrl.org/2003/role/documentation"
)

// LabelResource is one (element, role, lang) -> text mapping from the label
// linkbase.
type LabelResource struct {
	ElementQName QName
	Role         string
	XMLLang      string
	Text         string
}

// PresentationNode is one node in a role's presentation tree.
//
// Invariant (§3): IsAbstractFromSchema is taken from the schema
// declaration, never overridden by presentation context.
type PresentationNode struct {
	Role                  string
	ElementQName          QName
	PreferredLabel        string // label role URI from the arc's preferredLabel attribute, or ""
	Order                 float64
	Depth                 int
	ParentQName           QName // "" for roots
	IsAbstractFromSchema  bool
}

// CalculationArc is one weighted edge in a role's calculation DAG.
//
// Invariant (§3): weight is multiplicative only when rendering; it never
// mutates a stored fact value.
type CalculationArc struct {
	Role       string
	FromQName  QName
	ToQName    QName
	Weight     float64
	Order      float64
}

// Hypercube describes one dimensional table: the set of axes it declares
// and, per axis, the default member when a fact's context omits that axis.
type Hypercube struct {
	QName         QName
	Axes          []QName
	DefaultMember map[QName]QName // axis -> default member
}

// DefinitionArc is one edge of a definition-linkbase relationship.
//
// Invariant (§3, §4.1 item 4): for an "all" arc, From is the LineItems
// element and To is the Table/Hypercube element — the direction implementers
// MUST honor, since reversing it silently disables dimensional filtering.
type DefinitionArc struct {
	Role      string
	ArcRole   string // e.g. "all", "hypercube-dimension", "dimension-domain", "domain-member"
	FromQName QName
	ToQName   QName
	Order     float64
}
