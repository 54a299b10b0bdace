// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record holds the metadata extracted for one search result entry.
// Records are built once, right after the page holding them is fetched,
// and are never mutated afterwards; sorting only reorders them.
type Record struct {
	// Rank is the 1-based position in discovery order (page offset, then
	// document order). It does not change when the records are sorted.
	Rank int `json:"rank" yaml:"rank"`

	// Author is the byline text before the first '-' (untrimmed).
	Author string `json:"author" yaml:"author"`

	// Title is the text of the result's heading link.
	Title string `json:"title" yaml:"title"`

	// Citations is the "Cited by" count, 0 when the entry has none.
	Citations int `json:"citations" yaml:"citations"`

	// Year is the publication year, 0 when it cannot be read.
	Year int `json:"year" yaml:"year"`

	// Source is the href of the heading link, or a pointer to the results
	// page when the entry has no link.
	Source string `json:"source" yaml:"source"`
}
