// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"

	"github.com/pdiddy/scholar-rank/pkg/types"
)

// Parser selects how author and year are read from the byline.
type Parser string

const (
	// ParserPositional reads author and year by '-' positions (Author, Year).
	ParserPositional Parser = "positional"
	// ParserGrammar reads them with ParseMetadata.
	ParserGrammar Parser = "grammar"
)

// Valid reports whether p is a known parser.
func (p Parser) Valid() bool {
	return p == ParserPositional || p == ParserGrammar
}

// Extract builds the record for one fragment, leaving Rank unset. It
// returns a *MalformedError when citations, year or author cannot be read,
// so the caller decides whether to skip the entry or stop the run.
func Extract(f Fragment, parser Parser) (types.Record, error) {
	rec := types.Record{
		Title:  f.Title,
		Source: f.Link,
	}

	citations, err := Citations(f.Markup)
	if err != nil {
		return rec, err
	}
	rec.Citations = citations

	if !f.HasByline {
		return rec, &MalformedError{Field: "byline", Input: f.Title, Err: errors.New("no byline element")}
	}

	if parser == ParserGrammar {
		md, err := ParseMetadata(f.Byline)
		if err != nil {
			return rec, err
		}
		rec.Author = md.Author
		rec.Year = md.Year
		return rec, nil
	}

	if rec.Year, err = Year(f.Byline); err != nil {
		return rec, err
	}
	if rec.Author, err = Author(f.Byline); err != nil {
		return rec, err
	}
	return rec, nil
}
