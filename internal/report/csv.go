// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// EncodeCSV writes t to w as comma-separated UTF-8 text: the Columns header
// followed by one row per record, in view order.
func EncodeCSV(t Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range t.Rows {
		row := []string{
			strconv.Itoa(r.Rank),
			r.Author,
			r.Title,
			strconv.Itoa(r.Citations),
			strconv.Itoa(r.Year),
			r.Source,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", r.Rank, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes t to the file at path, replacing any existing file.
func WriteCSV(t Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := EncodeCSV(t, f); err != nil {
		f.Close()
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	return f.Close()
}
