// Package adapters provides concrete implementations of the engine's
// external-facing interfaces (taxonomy.SchemaResolver, taxonomy caching,
// persistence, and notification) backed by real infrastructure. None of
// these are required by the core engine, which only depends on the
// interfaces; they exist so a deployment has a working default.
package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3SchemaResolver fetches taxonomy documents cached under an S3 prefix,
// falling back to an HTTP fetch (and re-uploading to S3) on a cache miss.
// The bucket layout mirrors a URL's host+path, so a resolved doc's S3 key
// is deterministic from its source URL.
type S3SchemaResolver struct {
	client *s3.Client
	bucket string
	prefix string
	http   *HTTPSchemaResolver
	logger *zap.Logger
}

// NewS3SchemaResolver builds a resolver against the given bucket/prefix,
// loading AWS credentials and region the standard SDK-v2 way (environment,
// shared config, or instance profile).
func NewS3SchemaResolver(ctx context.Context, bucket, prefix, region string, http *HTTPSchemaResolver, logger *zap.Logger) (*S3SchemaResolver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !strings.HasSuffix(prefix, "/") && prefix != "" {
		prefix += "/"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("adapters: load AWS config: %w", err)
	}
	return &S3SchemaResolver{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
		http:   http,
		logger: logger,
	}, nil
}

// Fetch implements taxonomy.SchemaResolver.
func (r *S3SchemaResolver) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	key := r.keyFor(url)

	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return out.Body, nil
	}
	r.logger.Debug("taxonomy document cache miss", zap.String("url", url), zap.String("key", key), zap.Error(err))

	if r.http == nil {
		return nil, fmt.Errorf("adapters: %s not cached and no HTTP fallback configured", url)
	}
	body, ferr := r.http.Fetch(ctx, url)
	if ferr != nil {
		return nil, ferr
	}
	defer body.Close()

	data, rerr := io.ReadAll(body)
	if rerr != nil {
		return nil, fmt.Errorf("adapters: read fallback fetch for %s: %w", url, rerr)
	}

	if _, perr := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}); perr != nil {
		r.logger.Warn("failed to cache taxonomy document in S3", zap.String("key", key), zap.Error(perr))
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// keyFor derives a deterministic S3 key for a taxonomy document URL.
func (r *S3SchemaResolver) keyFor(url string) string {
	trimmed := strings.TrimPrefix(url, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	return r.prefix + trimmed
}
