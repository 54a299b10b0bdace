// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads search result pages, one GET per page of results,
// over a single shared session.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the Google Scholar results endpoint.
const DefaultBaseURL = "https://scholar.google.com/scholar"

// DefaultPageSize is the number of results the engine returns per page.
const DefaultPageSize = 10

// Page is the raw response for one results offset.
type Page struct {
	Start  int
	URL    string
	Status int
	Body   []byte
}

// OK reports whether the page came back with HTTP 200.
func (p Page) OK() bool { return p.Status == http.StatusOK }

// Fetcher issues page requests against BaseURL using Client. Client should
// be a session from httputil.NewSession so cookies and connections carry
// over between pages.
type Fetcher struct {
	Client  *http.Client
	BaseURL string
}

// New returns a Fetcher for baseURL, falling back to DefaultBaseURL.
func New(client *http.Client, baseURL string) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{Client: client, BaseURL: baseURL}
}

// Fetch requests the page of results for query starting at offset start.
// Transport failures are returned as errors. A non-200 response is not an
// error: the page is returned with its status so the caller can treat it on
// its own without abandoning the remaining offsets.
func (f *Fetcher) Fetch(ctx context.Context, query string, start int) (Page, error) {
	pageURL := PageURL(f.BaseURL, query, start)
	page := Page{Start: start, URL: pageURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return page, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return page, fmt.Errorf("fetching start=%d: %w", start, err)
	}
	defer resp.Body.Close()

	page.Status = resp.StatusCode
	page.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return page, fmt.Errorf("reading start=%d: %w", start, err)
	}
	return page, nil
}

// PageURL builds base?start=<start>&q=<query>. Spaces in query become '+'.
func PageURL(base, query string, start int) string {
	return base + "?start=" + strconv.Itoa(start) + "&q=" + url.QueryEscape(query)
}

// Offsets returns the page offsets 0, pageSize, 2*pageSize, ... strictly
// below n. The page count is ceil(n/pageSize); n <= 0 yields none.
func Offsets(n, pageSize int) []int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	var offsets []int
	for start := 0; start < n; start += pageSize {
		offsets = append(offsets, start)
	}
	return offsets
}
