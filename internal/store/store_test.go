// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-rank/internal/report"
	"github.com/pdiddy/scholar-rank/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTable() report.Table {
	return report.Table{Rows: []types.Record{
		{Rank: 1, Author: " A Doe", Title: "First", Citations: 5, Year: 2001, Source: "https://a"},
		{Rank: 2, Author: "B Roe", Title: "Second", Citations: 20, Year: 2010, Source: "https://b"},
		{Rank: 3, Author: "C Poe", Title: "Third", Citations: 5, Source: "Look manually at: https://scholar"},
	}}
}

func TestSaveAndLoad(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := s.Save(ctx, "load monitoring", 30, at, sampleTable())
	require.NoError(t, err)

	run, tbl, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Run{ID: id, Query: "load monitoring", Requested: 30, Records: 3, FetchedAt: at}, run)
	assert.Equal(t, sampleTable(), tbl)
}

func TestLoadRanksInDiscoveryOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, "q", 10, time.Now(), sampleTable().SortByCitations())
	require.NoError(t, err)

	_, tbl, err := s.Load(ctx, id)
	require.NoError(t, err)
	for i, r := range tbl.Rows {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestLoadUnknownRun(t *testing.T) {
	s := testStore(t)
	_, _, err := s.Load(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, "first", 10, time.Now(), sampleTable())
	require.NoError(t, err)
	second, err := s.Save(ctx, "second", 20, time.Now(), report.Table{})
	require.NoError(t, err)

	runs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, 0, runs[0].Records)
	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, 3, runs[1].Records)
}

func TestListEmpty(t *testing.T) {
	runs, err := testStore(t).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}
