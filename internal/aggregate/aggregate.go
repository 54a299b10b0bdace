// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate accumulates extracted records in discovery order and
// assigns their ranks.
package aggregate

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-rank/internal/extract"
	"github.com/pdiddy/scholar-rank/internal/report"
	"github.com/pdiddy/scholar-rank/pkg/types"
)

// Aggregator collects records page by page. Pages must be added in
// ascending offset order and fragments in document order; the Aggregator
// does no deduplication and no cross-page validation.
type Aggregator struct {
	policy  types.MalformedPolicy
	log     zerolog.Logger
	records []types.Record
	skipped int
}

// New returns an empty Aggregator applying policy to malformed entries.
// An unknown policy is treated as abort.
func New(policy types.MalformedPolicy, log zerolog.Logger) *Aggregator {
	if !policy.Valid() {
		policy = types.PolicyAbort
	}
	return &Aggregator{policy: policy, log: log}
}

// Add appends rec with the next rank (1 for the first record) and returns
// the stored record.
func (a *Aggregator) Add(rec types.Record) types.Record {
	rec.Rank = len(a.records) + 1
	a.records = append(a.records, rec)
	return rec
}

// Reject applies the malformed-entry policy to a fragment whose extraction
// failed with err. Under abort the error is returned and the run should
// stop. Under skip the fragment is logged and dropped without consuming a
// rank, and Reject returns nil.
func (a *Aggregator) Reject(start int, f extract.Fragment, err error) error {
	if a.policy == types.PolicyAbort {
		return fmt.Errorf("result %d (page start=%d, %q): %w", len(a.records)+a.skipped+1, start, f.Title, err)
	}
	a.skipped++
	a.log.Warn().Err(err).Int("start", start).Str("title", f.Title).Msg("skipping malformed result")
	return nil
}

// Len returns the number of records added so far.
func (a *Aggregator) Len() int { return len(a.records) }

// Skipped returns the number of fragments dropped under the skip policy.
func (a *Aggregator) Skipped() int { return a.skipped }

// Finalize returns the records in rank order. The table owns its own copy;
// later calls to Add do not affect it.
func (a *Aggregator) Finalize() report.Table {
	rows := make([]types.Record, len(a.records))
	copy(rows, a.records)
	return report.Table{Rows: rows}
}
