// Package batch orchestrates parsing many filings concurrently. Each
// filing is an independent unit of work: its taxonomy load, instance
// parse, resolution, and stitch run single-threaded within the filing,
// but many filings run in parallel across a bounded worker pool, mirroring
// the semaphore-gated fan-out the teacher stack uses for per-ticker
// ingestion.
package batch

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/edgarstitch/xbrlstmt/factstore"
	"github.com/edgarstitch/xbrlstmt/instance"
	"github.com/edgarstitch/xbrlstmt/taxonomy"
)

// FilingSource supplies the raw bytes of one filing's instance document and
// the taxonomy documents it depends on. Callers implement this against
// whatever storage backs their filing corpus (S3, local disk, a crawler).
type FilingSource interface {
	AccessionNumber() string
	CIK() string
	FiledAt() time.Time
	IsAmendment() bool
	InstanceDocument(ctx context.Context) (isInline bool, body []byte, err error)
	TaxonomyDocuments(ctx context.Context) ([]taxonomy.Document, error)
}

// FilingResult is one filing's outcome: either a populated fact store plus
// diagnostics, or a hard error if the instance itself could not be parsed
// at all.
type FilingResult struct {
	AccessionNumber string
	CIK             string
	FiledAt         time.Time
	IsAmendment     bool
	Document        *instance.Document
	Taxonomy        *taxonomy.Taxonomy
	Store           *factstore.Store
	Err             error
}

// RunResult is the outcome of one Runner.Run call: a RunID correlating every
// diagnostic logged during the run, plus one FilingResult per source,
// preserving input order regardless of completion order.
type RunResult struct {
	RunID   string
	Results []FilingResult
}

// Runner processes filings concurrently, bounded by a fixed-size worker
// pool, and loads each filing's taxonomy through a shared Loader. The
// Loader keeps no cache, so each filing's taxonomy documents are fetched
// and parsed again even when several filings share a DTS.
type Runner struct {
	Loader      *taxonomy.Loader
	Concurrency int
	Logger      *zap.Logger
}

// NewRunner builds a Runner with concurrency workers processing filings
// against loader. A concurrency of 0 or less defaults to 4.
func NewRunner(loader *taxonomy.Loader, concurrency int, logger *zap.Logger) *Runner {
	if concurrency <= 0 {
		concurrency = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Loader: loader, Concurrency: concurrency, Logger: logger}
}

// Run parses every source concurrently and returns once all have finished
// or ctx is cancelled. A single source's parse failure never aborts the
// others: the run only stops early on ctx cancellation, which is checked
// at the per-filing boundary before each source starts its own work.
func (r *Runner) Run(ctx context.Context, sources []FilingSource) RunResult {
	runID := uuid.New().String()
	results := make([]FilingResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FilingResult{AccessionNumber: src.AccessionNumber(), Err: err}
				return nil
			}
			results[i] = r.processOne(gctx, runID, src)
			return nil
		})
	}

	// g.Wait only ever returns an error from a worker's own returned error,
	// and every worker above swallows its error into the result slot, so
	// the run never aborts on one filing's failure.
	_ = g.Wait()

	return RunResult{RunID: runID, Results: results}
}

func (r *Runner) processOne(ctx context.Context, runID string, src FilingSource) FilingResult {
	log := r.Logger.With(
		zap.String("run_id", runID),
		zap.String("accession_number", src.AccessionNumber()),
		zap.String("cik", src.CIK()),
	)

	result := FilingResult{
		AccessionNumber: src.AccessionNumber(),
		CIK:             src.CIK(),
		FiledAt:         src.FiledAt(),
		IsAmendment:     src.IsAmendment(),
	}

	docs, err := src.TaxonomyDocuments(ctx)
	if err != nil {
		log.Error("failed to list taxonomy documents", zap.Error(err))
		result.Err = err
		return result
	}
	tax := r.Loader.Load(ctx, docs)
	result.Taxonomy = tax
	if len(tax.Diagnostics) > 0 {
		log.Warn("taxonomy load produced diagnostics", zap.Int("count", len(tax.Diagnostics)))
	}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	isInline, body, err := src.InstanceDocument(ctx)
	if err != nil {
		log.Error("failed to read instance document", zap.Error(err))
		result.Err = err
		return result
	}

	doc, err := parseInstance(isInline, body)
	if err != nil {
		log.Error("failed to parse instance document", zap.Error(err))
		result.Err = err
		return result
	}
	result.Document = doc
	result.Store = factstore.New(doc.Facts)

	if len(doc.Diagnostics) > 0 {
		log.Warn("instance parse produced diagnostics", zap.Int("count", len(doc.Diagnostics)))
	}

	return result
}

func parseInstance(isInline bool, body []byte) (*instance.Document, error) {
	r := bytes.NewReader(body)
	if isInline {
		return instance.ParseInline(r)
	}
	return instance.Parse(r)
}
