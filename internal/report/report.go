// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report orders extracted records by citation count and renders
// them as a table, JSON, YAML or CSV.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-rank/pkg/types"
)

// Table is an ordered view over result records. The rank of each record is
// fixed at discovery; views differ only in row order.
type Table struct {
	Rows []types.Record `json:"rows" yaml:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// SortByCitations returns a new view ordered by citations, highest first.
// Records with equal counts keep their relative order from t. t is not
// modified.
func (t Table) SortByCitations() Table {
	rows := make([]types.Record, len(t.Rows))
	copy(rows, t.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Citations > rows[j].Citations
	})
	return Table{Rows: rows}
}

// Columns is the header shared by the printed table and the CSV export.
var Columns = []string{"Rank", "Author", "Title", "Citations", "Year", "Source"}

// FormatTable writes t as a human-readable table to w.
func FormatTable(t Table, w io.Writer) {
	if t.Len() == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-20s  %-50s  %9s  %4s  %s\n",
		Columns[0], Columns[1], Columns[2], Columns[3], Columns[4], Columns[5])
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range t.Rows {
		year := ""
		if r.Year > 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(w, "%-4d  %-20s  %-50s  %9d  %4s  %s\n",
			r.Rank, truncate(strings.TrimSpace(r.Author), 20), truncate(r.Title, 50),
			r.Citations, year, r.Source)
	}

	fmt.Fprintf(w, "\n%d results\n", t.Len())
}

// FormatJSON writes the rows of t as indented JSON to w.
func FormatJSON(t Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Rows)
}

// FormatYAML writes the rows of t as a YAML list to w.
func FormatYAML(t Table, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(t.Rows)
}

// Format writes t to w in the given format.
func Format(t Table, format types.OutputFormat, w io.Writer) error {
	switch format {
	case types.OutputJSON:
		return FormatJSON(t, w)
	case types.OutputYAML:
		return FormatYAML(t, w)
	case types.OutputTable, "":
		FormatTable(t, w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q: use table, json, or yaml", format)
	}
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
