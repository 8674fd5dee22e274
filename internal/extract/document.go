// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reCRLF     = regexp.MustCompile(`\r\n?`)
	reTabs     = regexp.MustCompile(`\t+`)
	reTrailing = regexp.MustCompile(`(?m)[ ]+$`)
)

// columnGap replaces tabs. Two spaces is the width at which multi-word
// values stop, so a tab keeps acting as a column boundary.
const columnGap = "  "

// isInvisible matches control and format runes other than line breaks and
// tabs: NULs, form feeds, zero-width spaces, soft hyphens, byte-order marks.
func isInvisible(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return unicode.Is(unicode.Cc, r) || unicode.Is(unicode.Cf, r)
}

// CleanDocument prepares extracted document text for matching. It unifies
// line endings, replaces invalid UTF-8, applies NFKC (fullwidth colons and
// digits, non-breaking spaces, ligatures), drops invisible runes, turns tabs
// into column gaps and trims trailing spaces. Inner runs of spaces are kept
// because they separate layout columns.
func CleanDocument(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = reCRLF.ReplaceAllString(s, "\n")
	// pdftotext separates pages with a form feed.
	s = strings.ReplaceAll(s, "\f", "\n")

	t := transform.Chain(norm.NFKC, runes.Remove(runes.Predicate(isInvisible)))
	if cleaned, _, err := transform.String(t, s); err == nil {
		s = cleaned
	}

	s = reTabs.ReplaceAllString(s, columnGap)
	return reTrailing.ReplaceAllString(s, "")
}
