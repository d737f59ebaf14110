package taxonomy

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// SchemaResolver fetches the raw bytes of a taxonomy document (schema or
// linkbase) given its URL, abstracting away whatever transport actually
// backs the lookup (local cache, S3, HTTP). Implementations live under
// adapters/.
type SchemaResolver interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// Taxonomy is the fully loaded, queryable in-memory view of one DTS
// (discoverable taxonomy set): the union of every schema and linkbase
// document reachable from an instance's schemaRef entry points.
type Taxonomy struct {
	Elements      map[xbrlmodel.QName]xbrlmodel.ElementDeclaration
	Presentations []xbrlmodel.PresentationNode
	Calculations  []xbrlmodel.CalculationArc
	Definitions   []xbrlmodel.DefinitionArc
	Labels        []xbrlmodel.LabelResource

	Diagnostics []xbrlmodel.Diagnostic
}

// Document is one taxonomy document to load, identified by its kind and
// resolvable URL.
type Document struct {
	Kind            DocumentKind
	URL             string
	NamespacePrefix string // only consulted for Kind == DocSchema
}

type DocumentKind int

const (
	DocSchema DocumentKind = iota
	DocPresentation
	DocCalculation
	DocDefinition
	DocLabel
)

// Loader assembles a Taxonomy from a DTS entry-point list. A single
// malformed or unreachable document never aborts the whole load: it is
// recorded as a Diagnostic and that document's contribution is simply
// empty, per the engine's "no silent fatal failures on one bad document"
// policy.
type Loader struct {
	Resolver SchemaResolver
	Logger   *zap.Logger
}

// NewLoader constructs a Loader, defaulting to a no-op logger when none is
// supplied.
func NewLoader(resolver SchemaResolver, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{Resolver: resolver, Logger: logger}
}

// Load fetches and parses every document in docs, merging their
// contributions into one Taxonomy.
func (l *Loader) Load(ctx context.Context, docs []Document) *Taxonomy {
	tx := &Taxonomy{
		Elements: make(map[xbrlmodel.QName]xbrlmodel.ElementDeclaration),
	}

	schemaCatalogs := make([]map[xbrlmodel.QName]xbrlmodel.ElementDeclaration, 0, len(docs))

	for _, doc := range docs {
		rc, err := l.Resolver.Fetch(ctx, doc.URL)
		if err != nil {
			l.Logger.Warn("taxonomy document unreachable",
				zap.String("url", doc.URL), zap.Error(err))
			tx.Diagnostics = append(tx.Diagnostics, xbrlmodel.NewDiagnostic(
				xbrlmodel.DiagMissingLinkbase, "fetch %s: %v", doc.URL, err))
			continue
		}

		switch doc.Kind {
		case DocSchema:
			catalog, perr := ParseSchema(rc, doc.NamespacePrefix)
			rc.Close()
			if perr != nil {
				l.recordParseFailure(tx, doc, perr)
				continue
			}
			schemaCatalogs = append(schemaCatalogs, catalog)
			for qn, decl := range catalog {
				tx.Elements[qn] = decl
			}
		case DocPresentation:
			nodes, perr := ParsePresentationLinkbase(rc)
			rc.Close()
			if perr != nil {
				l.recordParseFailure(tx, doc, perr)
				continue
			}
			tx.Presentations = append(tx.Presentations, nodes...)
		case DocCalculation:
			arcs, perr := ParseCalculationLinkbase(rc)
			rc.Close()
			if perr != nil {
				l.recordParseFailure(tx, doc, perr)
				continue
			}
			tx.Calculations = append(tx.Calculations, arcs...)
		case DocDefinition:
			arcs, perr := ParseDefinitionLinkbase(rc)
			rc.Close()
			if perr != nil {
				l.recordParseFailure(tx, doc, perr)
				continue
			}
			tx.Definitions = append(tx.Definitions, arcs...)
		case DocLabel:
			labels, perr := ParseLabelLinkbase(rc)
			rc.Close()
			if perr != nil {
				l.recordParseFailure(tx, doc, perr)
				continue
			}
			tx.Labels = append(tx.Labels, labels...)
		}
	}

	// Resolve balance inheritance for any extension catalog against every
	// other catalog loaded in this DTS (base taxonomies are loaded before
	// extensions in a well-formed schemaRef chain, but we don't depend on
	// that ordering here). Only Balance is inherited; an element whose
	// schema omits periodType keeps the duration default ParseSchema gives it.
	for _, ext := range schemaCatalogs {
		for _, base := range schemaCatalogs {
			ResolveInheritance(ext, base)
		}
	}
	for _, catalog := range schemaCatalogs {
		for qn, decl := range catalog {
			tx.Elements[qn] = decl
		}
	}

	if len(tx.Presentations) == 0 {
		tx.Diagnostics = append(tx.Diagnostics, xbrlmodel.NewDiagnostic(
			xbrlmodel.DiagMissingLinkbase, "no presentation relationships loaded for this DTS"))
	}

	return tx
}

func (l *Loader) recordParseFailure(tx *Taxonomy, doc Document, err error) {
	l.Logger.Warn("taxonomy document malformed",
		zap.String("url", doc.URL), zap.Int("kind", int(doc.Kind)), zap.Error(err))
	tx.Diagnostics = append(tx.Diagnostics, xbrlmodel.NewDiagnostic(
		xbrlmodel.DiagMalformedInput, "parse %s: %v", doc.URL, err))
}

// RolesByType returns each distinct presentation role URI in this taxonomy
// once, in first-seen order. It does no statement-type grouping: that
// classification happens in the statement package, which consults labels
// and primary concepts this package has no opinion about.
func (tx *Taxonomy) RolesByType() []string {
	seen := make(map[string]bool)
	var roles []string
	for _, n := range tx.Presentations {
		if !seen[n.Role] {
			seen[n.Role] = true
			roles = append(roles, n.Role)
		}
	}
	return roles
}
