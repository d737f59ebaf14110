package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/edgarstitch/xbrlstmt/taxonomy"
	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// TaxonomyCache caches a fully loaded Taxonomy by DTS entry-point hash, so a
// batch processing thousands of filings against a small number of distinct
// taxonomies (the handful of us-gaap/dei releases in circulation in a given
// year) only pays the parse cost once.
type TaxonomyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// cachedTaxonomy is the JSON-serializable projection of a Taxonomy stored in
// Redis; Diagnostics are dropped since they're call-specific, not a
// property of the taxonomy itself.
type cachedTaxonomy struct {
	Elements      map[xbrlmodel.QName]xbrlmodel.ElementDeclaration `json:"elements"`
	Presentations []xbrlmodel.PresentationNode                     `json:"presentations"`
	Calculations  []xbrlmodel.CalculationArc                        `json:"calculations"`
	Definitions   []xbrlmodel.DefinitionArc                         `json:"definitions"`
	Labels        []xbrlmodel.LabelResource                         `json:"labels"`
}

// NewTaxonomyCache connects to addr the same way the sector-percentile
// cache does: a short-timeout ping that only logs a warning on failure
// rather than refusing to start, since the cache is an optimization, not a
// dependency.
func NewTaxonomyCache(addr, password string, db int, ttl time.Duration, logger *zap.Logger) *TaxonomyCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis connection failed for taxonomy cache", zap.Error(err))
	}

	return &TaxonomyCache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(dtsHash string) string {
	return fmt.Sprintf("taxonomy:%s", dtsHash)
}

// Get returns a cached Taxonomy for dtsHash, or ok=false on a cache miss or
// any Redis error.
func (c *TaxonomyCache) Get(ctx context.Context, dtsHash string) (*taxonomy.Taxonomy, bool) {
	raw, err := c.client.Get(ctx, cacheKey(dtsHash)).Bytes()
	if err != nil {
		return nil, false
	}
	var cached cachedTaxonomy
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warn("corrupt taxonomy cache entry", zap.String("dts_hash", dtsHash), zap.Error(err))
		return nil, false
	}
	return &taxonomy.Taxonomy{
		Elements:      cached.Elements,
		Presentations: cached.Presentations,
		Calculations:  cached.Calculations,
		Definitions:   cached.Definitions,
		Labels:        cached.Labels,
	}, true
}

// Set stores tx under dtsHash with the cache's configured TTL. Failures are
// logged, never returned, for the same reason a cache miss isn't fatal.
func (c *TaxonomyCache) Set(ctx context.Context, dtsHash string, tx *taxonomy.Taxonomy) {
	data, err := json.Marshal(cachedTaxonomy{
		Elements:      tx.Elements,
		Presentations: tx.Presentations,
		Calculations:  tx.Calculations,
		Definitions:   tx.Definitions,
		Labels:        tx.Labels,
	})
	if err != nil {
		c.logger.Warn("failed to marshal taxonomy for cache", zap.String("dts_hash", dtsHash), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, cacheKey(dtsHash), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to write taxonomy cache entry", zap.String("dts_hash", dtsHash), zap.Error(err))
	}
}
