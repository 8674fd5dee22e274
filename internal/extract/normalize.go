// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rotisserie/eris"
)

// Normalization failures. They are recorded on the field outcome and logged;
// they never fail an extraction.
var (
	ErrBadDate   = eris.New("extract: unrecognized date")
	ErrBadAmount = eris.New("extract: unrecognized amount")
	ErrEmpty     = eris.New("extract: empty value")
)

// dateLayouts is the fixed priority order for date parsing. Day-first
// layouts come before the month-first one, so an ambiguous "03/04/2025"
// resolves to 3 April. Single-digit days and months are accepted.
var dateLayouts = []string{
	"2-1-2006", "2-1-06",
	"2/1/2006", "2/1/06",
	"2.1.2006", "2.1.06",
	"2006-1-2",
	"1/2/2006",
}

// isoDate is the canonical date form.
const isoDate = "2006-01-02"

var (
	reSpaceRun = regexp.MustCompile(`\s+`)

	// reCurrencyPrefix strips a leading marker so the point in "Rs." is not
	// read as a decimal point.
	reCurrencyPrefix = regexp.MustCompile(`(?i)^\s*` + currencyMarker)
)

// normalize converts raw into the canonical form for kind.
func normalize(kind Kind, raw string) (string, error) {
	switch kind {
	case KindDate:
		return NormalizeDate(raw)
	case KindCurrencyAmount:
		return NormalizeAmount(raw)
	default:
		return NormalizeText(raw), nil
	}
}

// NormalizeText collapses whitespace runs to one space and trims the ends.
// Characters are otherwise preserved, including case.
func NormalizeText(raw string) string {
	return strings.TrimSpace(reSpaceRun.ReplaceAllString(raw, " "))
}

// NormalizeDate parses raw with the first matching layout from dateLayouts
// and returns it as YYYY-MM-DD.
func NormalizeDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmpty
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Format(isoDate), nil
		}
	}
	return "", eris.Wrapf(ErrBadDate, "extract: parse date %q", raw)
}

// NormalizeAmount strips everything but digits and decimal points, then
// parses the remainder as a decimal. The result is fixed-point with no
// thousands separators: "Rs. 12,345.50" becomes "12345.5".
//
// Stripping is locale-blind: "1.234,56" becomes "1.23456" and is accepted
// while "1.234.567" is rejected.
func NormalizeAmount(raw string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r == '.' || (r <= unicode.MaxASCII && unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, reCurrencyPrefix.ReplaceAllString(raw, ""))
	if digits == "" {
		return "", eris.Wrapf(ErrBadAmount, "extract: no digits in %q", raw)
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return "", eris.Wrapf(ErrBadAmount, "extract: parse amount %q", raw)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}
