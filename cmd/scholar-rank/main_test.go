// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startLog struct {
	mu     sync.Mutex
	starts []string
}

func (l *startLog) add(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.starts = append(l.starts, s)
}

func (l *startLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.starts...)
}

func scholarStub(t *testing.T) (*httptest.Server, *startLog) {
	t.Helper()
	starts := &startLog{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		starts.add(r.URL.Query().Get("start"))
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		n := 10
		if start == 20 {
			n = 5
		}
		fmt.Fprint(w, "<html><body>")
		for i := 0; i < n; i++ {
			idx := start + i
			fmt.Fprintf(w, `<div class="gs_r"><h3><a href="https://example.org/%d">Paper %d</a></h3>`, idx, idx)
			fmt.Fprintf(w, `<div class="gs_a">  Author %d&nbsp;- Venue, 2015&nbsp;- example.org</div>`, idx)
			fmt.Fprintf(w, `<a>Cited by %d</a></div>`, (idx*37)%11)
		}
		fmt.Fprint(w, "</body></html>")
	}))
	t.Cleanup(ts.Close)
	return ts, starts
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRankEndToEnd(t *testing.T) {
	ts, starts := scholarStub(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ranked.csv")
	dbPath := filepath.Join(dir, "runs.db")

	out, err := execute(t,
		"load", "monitoring",
		"-n", "25",
		"-f", csvPath,
		"--db", dbPath,
		"--base-url", ts.URL+"/scholar",
		"--secrets-dir", filepath.Join(dir, "no-secrets"),
		"--format", "table",
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "10", "20"}, starts.get())
	assert.Contains(t, out, "25 results")

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 26)
	assert.Equal(t, []string{"Rank", "Author", "Title", "Citations", "Year", "Source"}, rows[0])

	seen := make(map[int]bool)
	prevCites, prevRank := 1<<30, 0
	for _, row := range rows[1:] {
		rank, _ := strconv.Atoi(row[0])
		cites, _ := strconv.Atoi(row[3])
		seen[rank] = true
		require.LessOrEqual(t, cites, prevCites)
		if cites == prevCites {
			require.Greater(t, rank, prevRank, "equal citations must keep discovery order")
		}
		assert.Equal(t, fmt.Sprintf("Paper %d", rank-1), row[2])
		assert.Equal(t, "2015", row[4])
		prevCites, prevRank = cites, rank
	}
	assert.Len(t, seen, 25)

	t.Run("history lists the run", func(t *testing.T) {
		out, err := execute(t, "history", "--db", dbPath, "--format", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "load monitoring")
		assert.Contains(t, out, "25")
	})

	t.Run("history show reprints the ranking", func(t *testing.T) {
		out, err := execute(t, "history", "show", "1", "--db", dbPath, "--format", "json")
		require.NoError(t, err)
		assert.Equal(t, 25, strings.Count(out, `"rank":`))
	})
}

func TestRankRejectsNegativeCount(t *testing.T) {
	_, err := execute(t, "q", "-n", "-1", "--db", "", "-f", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
	rootCmd.Flags().Set("count", strconv.Itoa(defaultCount))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "scholar-rank dev\n", out)
}
