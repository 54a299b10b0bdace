// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-rank/pkg/types"
)

func TestWriteCSVSortedView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranked.csv")
	require.NoError(t, WriteCSV(sampleTable().SortByCitations(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "Rank,Author,Title,Citations,Year,Source\n" +
		"2,B Roe,Second,20,2010,https://b\n" +
		"1,A Doe,First,5,2001,https://a\n" +
		"3,C Poe,Third,5,0,https://c\n"
	assert.Equal(t, want, string(data))
}

func TestEncodeCSVQuotesAndUTF8(t *testing.T) {
	tbl := Table{Rows: []types.Record{
		{Rank: 1, Author: " J Müller, K Ødegaard", Title: `Load "disaggregation", revisited`, Citations: 3, Year: 2019, Source: "https://x"},
	}}

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(tbl, &buf))

	assert.Equal(t,
		"Rank,Author,Title,Citations,Year,Source\n"+
			`1," J Müller, K Ødegaard","Load ""disaggregation"", revisited",3,2019,https://x`+"\n",
		buf.String())
}

func TestEncodeCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(Table{}, &buf))
	assert.Equal(t, "Rank,Author,Title,Citations,Year,Source\n", buf.String())
}

func TestWriteCSVBadPath(t *testing.T) {
	err := WriteCSV(sampleTable(), filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}
