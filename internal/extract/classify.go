// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// keywordGroup maps a set of domain phrases to one policy type.
type keywordGroup struct {
	policyType string
	keywords   []string
	re         *regexp.Regexp
}

// Classifier assigns a policy type from domain keywords when the document
// carries no explicit policy-type label. Groups are checked in order and the
// first group with any keyword present wins.
type Classifier struct {
	groups []keywordGroup
}

// defaultKeywordGroups is ordered: motor wording is checked before health,
// life, home and travel.
var defaultKeywordGroups = []struct {
	policyType string
	keywords   []string
}{
	{"Auto Policy", []string{
		"auto policy", "motor insurance", "vehicle insurance", "car insurance",
		"two wheeler insurance", "motor policy",
	}},
	{"Health Insurance Policy", []string{"health insurance", "medical insurance", "mediclaim"}},
	{"Life Insurance Policy", []string{"life insurance", "term insurance", "term plan"}},
	{"Home Insurance Policy", []string{
		"home insurance", "householder", "property insurance", "fire insurance",
	}},
	{"Travel Insurance Policy", []string{"travel insurance", "overseas travel"}},
}

// NewClassifier builds the default keyword classifier.
func NewClassifier() *Classifier {
	c := &Classifier{}
	for _, g := range defaultKeywordGroups {
		c.groups = append(c.groups, newKeywordGroup(g.policyType, g.keywords))
	}
	return c
}

// newKeywordGroup compiles the keywords into one case-insensitive
// alternation. Words inside a phrase may be split by any whitespace,
// including a line break, and each phrase must sit on word boundaries.
func newKeywordGroup(policyType string, keywords []string) keywordGroup {
	alts := make([]string, len(keywords))
	for i, kw := range keywords {
		words := strings.Fields(kw)
		for j, w := range words {
			words[j] = regexp.QuoteMeta(w)
		}
		alts[i] = strings.Join(words, `\s+`)
	}
	re := regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
	return keywordGroup{policyType: policyType, keywords: keywords, re: re}
}

// Classify returns the policy type of the first group whose keywords occur
// in text.
func (c *Classifier) Classify(text string) (string, bool) {
	for _, g := range c.groups {
		if g.re.MatchString(text) {
			return g.policyType, true
		}
	}
	return "", false
}
