// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"net/http"
	"time"
)

// HTTPConfig holds the settings of the shared HTTP session.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero keeps the client default
	// (no timeout).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Headers are extra request headers (e.g. a Cookie loaded from .secrets/).
	Headers http.Header `json:"-" yaml:"-"`
}

// MalformedPolicy decides what happens to a result entry whose metadata
// cannot be parsed.
type MalformedPolicy string

const (
	// PolicyAbort stops the whole run on the first malformed entry.
	PolicyAbort MalformedPolicy = "abort"
	// PolicySkip logs the entry and leaves it out of the ranking.
	PolicySkip MalformedPolicy = "skip"
)

// Valid reports whether p is a known policy.
func (p MalformedPolicy) Valid() bool {
	return p == PolicyAbort || p == PolicySkip
}

// ScholarConfig holds settings for querying the results pages.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the results endpoint (default https://scholar.google.com/scholar).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Query is the search keyword(s), space separated.
	Query string `json:"query" yaml:"query"`

	// Count is the number of results to request (default 100). Pages are
	// requested in steps of PageSize regardless of the remainder.
	Count int `json:"count" yaml:"count"`

	// PageSize is the number of results per page (fixed at 10 by the engine).
	PageSize int `json:"page_size" yaml:"page_size"`

	// OnMalformed selects the malformed-metadata policy (default abort).
	OnMalformed MalformedPolicy `json:"on_malformed" yaml:"on_malformed"`

	// Parser selects how the byline is read: positional (default) or grammar.
	Parser string `json:"parser" yaml:"parser"`
}

// OutputFormat selects how the ranked table is printed.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ExportConfig holds settings for printing and persisting the ranking.
type ExportConfig struct {
	// Format selects the stdout format: table, json, or yaml.
	Format OutputFormat `json:"format" yaml:"format"`

	// CSVPath is the file the sorted view is written to; empty writes nothing.
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`

	// DBPath is the SQLite run history database; empty disables history.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}
