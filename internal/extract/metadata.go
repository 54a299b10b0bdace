// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedMetadata is matched (errors.Is) by every MalformedError.
var ErrMalformedMetadata = errors.New("malformed metadata")

// MalformedError reports a result field that could not be read from its
// input. Field is "citations", "year", "author" or "byline".
type MalformedError struct {
	Field string
	Input string
	Err   error
}

func (e *MalformedError) Error() string {
	input := e.Input
	if r := []rune(input); len(r) > 80 {
		input = string(r[:77]) + "..."
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed %s in %q: %v", e.Field, input, e.Err)
	}
	return fmt.Sprintf("malformed %s in %q", e.Field, input)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedMetadata) hold for any MalformedError.
func (e *MalformedError) Is(target error) bool { return target == ErrMalformedMetadata }

const citedByMarker = "Cited by "

// maxCitationDigits bounds how many characters after the marker are read.
const maxCitationDigits = 5

var errNoDash = errors.New("no '-' delimiter")

// Citations returns the count following the last "Cited by " in markup.
// It reads up to five characters after the marker, stopping early at '<'
// (the first character is always taken). No marker means 0 citations.
func Citations(markup string) (int, error) {
	idx := strings.LastIndex(markup, citedByMarker)
	if idx < 0 {
		return 0, nil
	}

	begin := idx + len(citedByMarker)
	end := min(begin+maxCitationDigits, len(markup))
	for i := begin + 1; i < end; i++ {
		if markup[i] == '<' {
			end = i
			break
		}
	}

	digits := markup[begin:end]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &MalformedError{Field: "citations", Input: markup[idx:], Err: err}
	}
	return n, nil
}

// Year reads the four characters ending one position before the last '-'
// of the byline, i.e. the "2020" in "Journal, 2020 - site.org". Anything but
// four digits there yields 0. A byline without '-' is malformed.
func Year(meta string) (int, error) {
	runes := []rune(meta)
	pos := lastRune(runes, '-')
	if pos < 0 {
		return 0, &MalformedError{Field: "year", Input: meta, Err: errNoDash}
	}
	if pos < 5 {
		return 0, nil
	}

	slice := string(runes[pos-5 : pos-1])
	if !allDigits(slice) {
		return 0, nil
	}
	year, _ := strconv.Atoi(slice)
	return year, nil
}

// Author returns the byline from character 2 up to one character before
// the first '-', untrimmed. The two skipped leading characters are part of
// the byline layout. A byline without '-' is malformed.
func Author(meta string) (string, error) {
	runes := []rune(meta)
	pos := -1
	for i, r := range runes {
		if r == '-' {
			pos = i
			break
		}
	}
	if pos < 0 {
		return "", &MalformedError{Field: "author", Input: meta, Err: errNoDash}
	}
	if pos-1 <= 2 {
		return "", nil
	}
	return string(runes[2 : pos-1]), nil
}

// lastRune returns the index of the last r in runes, or -1.
func lastRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// Metadata is the structured form of a byline.
type Metadata struct {
	Author  string
	Venue   string
	Year    int
	Snippet string
}

const fieldSep = " - "

// ParseMetadata reads a byline of the form
//
//	<author> - <venue>, <year> - <snippet>
//
// where the venue, the year and the trailing snippet are each optional
// ("<author> - <year> - <host>" and "<author> - <venue>" both parse).
// Non-breaking spaces count as spaces. A byline with no " - " separator or
// an empty author is malformed.
func ParseMetadata(meta string) (Metadata, error) {
	// Result pages put &nbsp; before each separator dash.
	parts := strings.SplitN(strings.ReplaceAll(meta, "\u00a0", " "), fieldSep, 3)
	if len(parts) < 2 {
		return Metadata{}, &MalformedError{Field: "author", Input: meta, Err: errNoDash}
	}

	md := Metadata{Author: strings.TrimSpace(parts[0])}
	if md.Author == "" {
		return Metadata{}, &MalformedError{Field: "author", Input: meta, Err: errors.New("empty author")}
	}
	if len(parts) == 3 {
		md.Snippet = strings.TrimSpace(parts[2])
	}

	middle := strings.TrimSpace(parts[1])
	if isYear(middle) {
		md.Year, _ = strconv.Atoi(middle)
		return md, nil
	}

	if comma := strings.LastIndexByte(middle, ','); comma >= 0 {
		if tail := strings.TrimSpace(middle[comma+1:]); isYear(tail) {
			md.Year, _ = strconv.Atoi(tail)
			middle = strings.TrimSpace(middle[:comma])
		}
	}
	md.Venue = strings.TrimRight(middle, " …")
	return md, nil
}

func isYear(s string) bool {
	return len(s) == 4 && allDigits(s)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
