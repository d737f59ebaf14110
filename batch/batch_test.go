package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarstitch/xbrlstmt/taxonomy"
)

const classicFixture = `<?xml version="1.0"?>
<xbrli:xbrl xmlns:xbrli="http://www.xbrl.org/2003/instance" xmlns:us-gaap="http://fasb.org/us-gaap/2023" xmlns:iso4217="http://www.xbrl.org/2003/iso4217">
  <xbrli:context id="c1">
    <xbrli:entity><xbrli:identifier scheme="http://www.sec.gov/CIK">0000320193</xbrli:identifier></xbrli:entity>
    <xbrli:period><xbrli:instant>2023-12-31</xbrli:instant></xbrli:period>
  </xbrli:context>
  <xbrli:unit id="usd"><xbrli:measure>iso4217:USD</xbrli:measure></xbrli:unit>
  <us-gaap:Assets contextRef="c1" unitRef="usd" decimals="-3">1000</us-gaap:Assets>
</xbrli:xbrl>`

// fakeSource is a FilingSource backed by in-memory fixtures, for testing
// the runner without touching any real storage adapter.
type fakeSource struct {
	accession   string
	cik         string
	filedAt     time.Time
	isAmendment bool
	body        []byte
	isInline    bool
	docErr      error
	taxDocs     []taxonomy.Document
	taxErr      error
}

func (f fakeSource) AccessionNumber() string { return f.accession }
func (f fakeSource) CIK() string             { return f.cik }
func (f fakeSource) FiledAt() time.Time      { return f.filedAt }
func (f fakeSource) IsAmendment() bool       { return f.isAmendment }

func (f fakeSource) InstanceDocument(ctx context.Context) (bool, []byte, error) {
	if f.docErr != nil {
		return false, nil, f.docErr
	}
	return f.isInline, f.body, nil
}

func (f fakeSource) TaxonomyDocuments(ctx context.Context) ([]taxonomy.Document, error) {
	if f.taxErr != nil {
		return nil, f.taxErr
	}
	return f.taxDocs, nil
}

func TestRunner_Run_ProcessesAllFilingsIndependently(t *testing.T) {
	runner := NewRunner(taxonomy.NewLoader(nil, nil), 2, nil)

	sources := []FilingSource{
		fakeSource{accession: "0000000001", cik: "0000320193", body: []byte(classicFixture)},
		fakeSource{accession: "0000000002", cik: "0000320193", docErr: errors.New("storage unavailable")},
	}

	out := runner.Run(context.Background(), sources)

	require.Len(t, out.Results, 2)
	assert.NotEmpty(t, out.RunID)

	assert.NoError(t, out.Results[0].Err)
	require.NotNil(t, out.Results[0].Store)
	assert.Equal(t, 1, out.Results[0].Store.Len())

	assert.Error(t, out.Results[1].Err)
	assert.Nil(t, out.Results[1].Store)
}

func TestRunner_Run_RespectsCancellation(t *testing.T) {
	runner := NewRunner(taxonomy.NewLoader(nil, nil), 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := []FilingSource{
		fakeSource{accession: "0000000003", cik: "0000320193", body: []byte(classicFixture)},
	}

	out := runner.Run(ctx, sources)

	require.Len(t, out.Results, 1)
	assert.Error(t, out.Results[0].Err)
}
