// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract locates result entries in a results page and reads the
// per-result metadata (link, title, byline, citations, year, author).
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	resultSelector = "div.gs_r"
	bylineSelector = "div.gs_a"

	// TitlePlaceholder replaces the title of an entry without a heading link.
	TitlePlaceholder = "Could not catch title"

	linkPlaceholderPrefix = "Look manually at: "
)

// Fragment is one result entry of a results page.
type Fragment struct {
	// Link is the heading link's href, or a pointer to the page it was on.
	Link string
	// Title is the heading link's text, or TitlePlaceholder.
	Title string
	// Byline is the text of the author/venue/year line.
	Byline string
	// HasByline is false when the entry carries no byline element.
	HasByline bool
	// Markup is the raw HTML of the whole entry.
	Markup string
}

// LinkPlaceholder is the source recorded for an entry without a link.
func LinkPlaceholder(pageURL string) string {
	return linkPlaceholderPrefix + pageURL
}

// Fragments returns the result entries of body in document order. pageURL
// is the address body was fetched from; it names the page in link
// placeholders. Missing links and titles are substituted, never reported.
func Fragments(body []byte, pageURL string) ([]Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var frags []Fragment
	doc.Find(resultSelector).Each(func(_ int, s *goquery.Selection) {
		f := Fragment{
			Link:  LinkPlaceholder(pageURL),
			Title: TitlePlaceholder,
		}

		link := s.Find("h3").First().Find("a").First()
		if link.Length() > 0 {
			if href, ok := link.Attr("href"); ok {
				f.Link = href
			}
			f.Title = link.Text()
		}

		if byline := s.Find(bylineSelector).First(); byline.Length() > 0 {
			f.Byline = byline.Text()
			f.HasByline = true
		}

		// OuterHtml only fails on a write error to its internal buffer.
		html, _ := goquery.OuterHtml(s)
		f.Markup = html

		frags = append(frags, f)
	})
	return frags, nil
}

// Blocked reports whether body is the engine's automated-traffic
// interstitial (captcha) rather than a results page.
func Blocked(body []byte) bool {
	s := strings.ToLower(string(body))
	return strings.Contains(s, "gs_captcha") || strings.Contains(s, "unusual traffic")
}
