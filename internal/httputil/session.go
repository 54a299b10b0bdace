// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds the HTTP session shared by every page request.
package httputil

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/pdiddy/scholar-rank/pkg/types"
)

// NewSession returns a client that keeps cookies between requests and
// reuses connections, so consecutive result pages ride on one session.
// Every request carries cfg.UserAgent and cfg.Headers.
func NewSession(cfg types.HTTPConfig) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &http.Client{
		Timeout: cfg.Timeout,
		Jar:     jar,
		Transport: &headerTransport{
			base:      http.DefaultTransport,
			userAgent: cfg.UserAgent,
			headers:   cfg.Headers,
		},
	}, nil
}

// headerTransport stamps the session headers onto outgoing requests.
// Headers already present on the request win.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	for k, vals := range t.headers {
		if req.Header.Get(k) != "" {
			continue
		}
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	return t.base.RoundTrip(req)
}
