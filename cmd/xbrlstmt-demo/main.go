// Command xbrlstmt-demo runs a single filing through the full engine end
// to end: load the taxonomy, parse the instance, resolve every statement
// in it, and print diagnostics. It is a demonstration harness, not a
// server — there is no HTTP surface here, only a CLI wired to local files.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/edgarstitch/xbrlstmt/adapters"
	"github.com/edgarstitch/xbrlstmt/instance"
	"github.com/edgarstitch/xbrlstmt/statement"
	"github.com/edgarstitch/xbrlstmt/taxonomy"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, continuing with process environment")
	}

	instancePath := flag.String("instance", "", "path to an XBRL instance document (classic or inline)")
	inline := flag.Bool("inline", false, "treat -instance as inline XBRL (iXBRL) rather than classic XBRL")
	userAgent := flag.String("user-agent", os.Getenv("SEC_USER_AGENT"), "User-Agent sent on taxonomy document fetches, per SEC fair-access policy")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *instancePath == "" {
		logger.Fatal("missing required -instance flag")
	}

	ctx := context.Background()

	body, err := os.ReadFile(*instancePath)
	if err != nil {
		logger.Fatal("failed to read instance document", zap.Error(err))
	}

	var doc *instance.Document
	if *inline {
		doc, err = instance.ParseInline(bytes.NewReader(body))
	} else {
		doc, err = instance.Parse(bytes.NewReader(body))
	}
	if err != nil {
		logger.Fatal("failed to parse instance document", zap.Error(err))
	}
	logger.Info("parsed instance document",
		zap.Int("fact_count", len(doc.Facts)),
		zap.Int("diagnostic_count", len(doc.Diagnostics)),
		zap.String("cik", doc.DEI.EntityCIK),
	)
	for _, d := range doc.Diagnostics {
		logger.Warn("instance diagnostic", zap.String("kind", string(d.Kind)), zap.String("message", d.Message))
	}

	resolver := adapters.NewHTTPSchemaResolver(*userAgent, logger)
	loader := taxonomy.NewLoader(resolver, logger)

	// A production caller would derive this document list from the
	// instance's schemaRef entry points; the demo leaves it empty so the
	// harness runs without network access when no DTS is supplied.
	tax := loader.Load(ctx, nil)
	for _, d := range tax.Diagnostics {
		logger.Warn("taxonomy diagnostic", zap.String("kind", string(d.Kind)), zap.String("message", d.Message))
	}

	for _, role := range tax.RolesByType() {
		cls := statement.ClassifyRole(role, nil)
		logger.Info("classified presentation role",
			zap.String("role", role), zap.String("type", string(cls.Type)), zap.Int("score", cls.Score))
	}
}
