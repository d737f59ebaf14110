package xbrlmodel

// Dimension is a single axis/member pair from a context's segment.
type Dimension struct {
	Axis   QName
	Member QName
	// Typed holds the typed-member text value for a typed dimension
	// (as opposed to an explicit-member QName dimension). Empty for
	// explicit dimensions.
	Typed string
}

// Context binds a fact to an entity, a period, and an optional set of
// dimensions (the "segment"). A context with a non-empty Segment is
// dimensional (§3).
type Context struct {
	ID         string
	EntityCIK  string
	EntityID   string // raw entity identifier as given (scheme-qualified)
	Period     Period
	Segment    []Dimension
}

// IsDimensional reports whether this context carries any axis/member pairs.
func (c Context) IsDimensional() bool {
	return len(c.Segment) > 0
}

// Member returns the member qname for the given axis and whether it is
// present on this context.
func (c Context) Member(axis QName) (QName, bool) {
	for _, d := range c.Segment {
		if d.Axis == axis {
			return d.Member, true
		}
	}
	return "", false
}

// Unit is the measurement unit referenced by every numeric fact.
type Unit struct {
	ID          string
	Measure     string // e.g. "iso4217:USD", "shares"
	Numerator   string // set instead of Measure for divide units
	Denominator string
}

// String renders a human-readable unit label.
func (u Unit) String() string {
	if u.Numerator != "" {
		return u.Numerator + "/" + u.Denominator
	}
	return u.Measure
}
