// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credential request headers from a directory of
// plain-text files. Each file is one header: the filename is the header name
// (canonicalized, so "cookie" becomes "Cookie") and the trimmed contents are
// its value.
//
// Typical files: cookie (a consented browser session), accept-language.
package secrets

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// LoadHeaders reads every regular, non-hidden file in dir into a header set.
// A missing directory is not an error and yields an empty header set.
// Unreadable files are logged and skipped.
func LoadHeaders(dir string, log zerolog.Logger) (http.Header, error) {
	headers := http.Header{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return headers, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("could not read secret header")
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			headers.Set(name, value)
		}
	}

	return headers, nil
}

// Names returns the sorted header names in h without their values, for logging.
func Names(h http.Header) []string {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
