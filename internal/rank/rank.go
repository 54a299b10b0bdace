// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank drives a ranking run: it walks the result pages for a query
// in offset order, extracts every entry and feeds the aggregator.
package rank

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-rank/internal/aggregate"
	"github.com/pdiddy/scholar-rank/internal/extract"
	"github.com/pdiddy/scholar-rank/internal/fetch"
	"github.com/pdiddy/scholar-rank/pkg/types"
)

// PageFetcher downloads one page of results. *fetch.Fetcher implements it.
type PageFetcher interface {
	Fetch(ctx context.Context, query string, start int) (fetch.Page, error)
}

// Summary holds counts from a ranking run.
type Summary struct {
	Pages       int
	FailedPages int
	Fragments   int
	Records     int
	Skipped     int
}

// Run fetches ceil(cfg.Count/cfg.PageSize) pages one after another and adds
// each entry to agg. A transport error stops the run. A page that comes
// back non-200 or cannot be parsed is logged and contributes no entries;
// the remaining pages are still fetched. Malformed entries go to
// agg.Reject, whose policy decides whether the run stops.
func Run(ctx context.Context, pf PageFetcher, cfg types.ScholarConfig, agg *aggregate.Aggregator, log zerolog.Logger) (Summary, error) {
	parser := extract.Parser(cfg.Parser)
	if cfg.Parser == "" {
		parser = extract.ParserPositional
	}
	if !parser.Valid() {
		return Summary{}, fmt.Errorf("unknown metadata parser %q: use positional or grammar", cfg.Parser)
	}

	var sum Summary
	for _, start := range fetch.Offsets(cfg.Count, cfg.PageSize) {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		page, err := pf.Fetch(ctx, cfg.Query, start)
		if err != nil {
			return sum, err
		}
		sum.Pages++

		if !page.OK() {
			sum.FailedPages++
			log.Warn().Int("start", start).Int("status", page.Status).
				Bool("blocked", extract.Blocked(page.Body)).Msg("results page not OK, skipping")
			continue
		}

		frags, err := extract.Fragments(page.Body, page.URL)
		if err != nil {
			sum.FailedPages++
			log.Warn().Err(err).Int("start", start).Msg("results page unreadable, skipping")
			continue
		}
		if len(frags) == 0 && extract.Blocked(page.Body) {
			log.Warn().Int("start", start).Msg("results page is a captcha interstitial")
		}
		sum.Fragments += len(frags)

		for _, f := range frags {
			rec, err := extract.Extract(f, parser)
			if err != nil {
				if rerr := agg.Reject(start, f, err); rerr != nil {
					sum.Records = agg.Len()
					sum.Skipped = agg.Skipped()
					return sum, rerr
				}
				continue
			}
			agg.Add(rec)
		}

		log.Debug().Int("start", start).Int("results", len(frags)).Msg("page processed")
	}

	sum.Records = agg.Len()
	sum.Skipped = agg.Skipped()
	return sum, nil
}
