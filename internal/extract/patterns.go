// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns raw policy-document text into a fixed-shape
// types.PolicyRecord. Each field is located by an ordered list of label
// recognizers, the raw match is normalized per field kind, and policy_type
// falls back to a keyword classifier when no label is present.
package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/policy-extract/pkg/types"
)

// Kind selects how a raw match is normalized before it is stored.
type Kind string

const (
	KindPlainText      Kind = "plain_text"
	KindDate           Kind = "date"
	KindCurrencyAmount Kind = "currency_amount"
)

// Value shapes captured after a label. Every shape stops at a line break,
// and the multi-word shapes stop at a run of two or more spaces, which is how
// pdftotext -layout separates columns.
const (
	// valueName: letters, single spaces, dots, ampersands, apostrophes and
	// hyphens ("Tata AIG & Co. Ltd.", "O'Brien-Smith").
	valueName = `\p{L}[\p{L}.&'-]*(?: [\p{L}.&'-]+)*`

	// valueIdentifier: alphanumerics with "-" and "/" ("ABC-123", "P/2023/0042").
	valueIdentifier = `[A-Za-z0-9][A-Za-z0-9/-]*`

	// valueRegistration: spaced or hyphenated registration plates ("MH 12 AB 1234"),
	// falling back to a single identifier token (chassis numbers).
	valueRegistration = `[A-Za-z]{2}[ -]?\d{1,2}[ -]?[A-Za-z]{0,3}[ -]?\d{1,4}\b|` + valueIdentifier

	// valueDate: three numeric groups joined by "-", "/" or ".".
	valueDate = `\d{1,4}[./-]\d{1,2}[./-]\d{1,4}`

	// valueAmount: the number after an optional currency marker. The marker
	// stays outside the capture so "Rs." does not contribute a decimal point.
	valueAmount = `\d(?:[\d.,]*\d)?`

	// valuePhone: optional "+", then digit groups with ().- punctuation joined
	// by single spaces. Every group after the first holds a digit.
	valuePhone = `\+?\(?\d[\d().-]*(?: [().-]*\d[\d().-]*)*`
)

// currencyMarker is the optional prefix in front of an amount.
const currencyMarker = `(?:(?:Rs\.?|INR|USD|[₹$€£])[ \t]*)?`

// separator joins a label to its value: a colon-like delimiter with
// optional spaces or tabs on either side.
const separator = `[ \t]*[:=][ \t]*`

// Recognizer locates one label synonym followed by a value of a given shape.
type Recognizer struct {
	// Label is the synonym as declared, e.g. "Policy No.".
	Label string

	re *regexp.Regexp
}

// Pattern returns the compiled regular expression source.
func (r Recognizer) Pattern() string {
	return r.re.String()
}

// RawMatch is the unnormalized text a recognizer captured.
type RawMatch struct {
	Label  string
	Value  string
	Offset int
}

// find returns the leftmost occurrence of the recognizer in text.
func (r Recognizer) find(text string) (RawMatch, bool) {
	loc := r.re.FindStringSubmatchIndex(text)
	if loc == nil || loc[2] < 0 {
		return RawMatch{}, false
	}
	return RawMatch{
		Label:  r.Label,
		Value:  text[loc[2]:loc[3]],
		Offset: loc[2],
	}, true
}

// FieldSpec declares how one field is found and normalized.
type FieldSpec struct {
	Field       types.Field
	Kind        Kind
	Recognizers []Recognizer
}

// match tries each recognizer in declared order and returns the first hit.
// Within a recognizer the leftmost occurrence in the text wins; a later
// synonym is only consulted when every earlier one found nothing.
func (s FieldSpec) match(text string) (RawMatch, bool) {
	for _, r := range s.Recognizers {
		if m, ok := r.find(text); ok {
			return m, true
		}
	}
	return RawMatch{}, false
}

// synonym describes one label in the table below.
type synonym struct {
	label string
	// lineStart restricts a generic label to the beginning of a line so
	// that "Insurer Name:" does not satisfy a bare "Name" synonym.
	lineStart bool
}

func labels(ls ...string) []synonym {
	out := make([]synonym, len(ls))
	for i, l := range ls {
		out[i] = synonym{label: l}
	}
	return out
}

func atLineStart(l string) synonym {
	return synonym{label: l, lineStart: true}
}

// labelPattern turns "Policy No." into `Policy[ \t]+No\.?`: words may be
// separated by any run of spaces or tabs, and a trailing dot is optional.
func labelPattern(label string) string {
	words := strings.Fields(label)
	parts := make([]string, len(words))
	for i, w := range words {
		if strings.HasSuffix(w, ".") {
			parts[i] = regexp.QuoteMeta(strings.TrimSuffix(w, ".")) + `\.?`
			continue
		}
		parts[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(parts, `[ \t]+`)
}

func compileRecognizer(s synonym, prefix, value string) Recognizer {
	var b strings.Builder
	b.WriteString(`(?i)`)
	if s.lineStart {
		b.WriteString(`(?m)^[ \t]*`)
	} else {
		b.WriteString(`\b`)
	}
	b.WriteString(labelPattern(s.label))
	b.WriteString(separator)
	b.WriteString(prefix)
	b.WriteString(`(`)
	b.WriteString(value)
	b.WriteString(`)`)
	return Recognizer{Label: s.label, re: regexp.MustCompile(b.String())}
}

func newSpec(f types.Field, kind Kind, prefix, value string, syns ...synonym) FieldSpec {
	spec := FieldSpec{Field: f, Kind: kind}
	for _, s := range syns {
		spec.Recognizers = append(spec.Recognizers, compileRecognizer(s, prefix, value))
	}
	return spec
}

// defaultSpecs is the static pattern table, in record order. Synonyms are
// listed from most to least specific.
var defaultSpecs = []FieldSpec{
	newSpec(types.FieldPolicyholderName, KindPlainText, "", valueName,
		append(labels(
			"Policyholder Name", "Policyholder",
			"Policy Holder Name", "Policy Holder",
			"Insured Name", "Name of Insured", "Name of the Insured",
			"Proposer Name",
		), atLineStart("Name"))...),

	newSpec(types.FieldVehicleNumber, KindPlainText, "", valueRegistration,
		labels(
			"Vehicle No.", "Vehicle Number",
			"Vehicle Registration No.", "Vehicle Registration Number",
			"Registration No.", "Registration Number", "Reg. No.",
			"Chassis No.", "Chassis Number",
		)...),

	newSpec(types.FieldPolicyType, KindPlainText, "", valueName,
		labels("Policy Type", "Type of Policy", "Plan Type", "Cover Type")...),

	newSpec(types.FieldPolicyNumber, KindPlainText, "", valueIdentifier,
		labels(
			"Policy Number", "Policy No.",
			"Policy Ref No.", "Policy Reference Number", "Policy Ref",
			"Certificate No.",
		)...),

	newSpec(types.FieldInsurerName, KindPlainText, "", valueName,
		labels("Insurer Name", "Insurer", "Insurance Company Name", "Insurance Company")...),

	newSpec(types.FieldPolicyStartDate, KindDate, "", valueDate,
		labels(
			"Policy Start Date", "Effective Date", "Start Date",
			"Commencement Date", "Valid From", "Period From",
		)...),

	newSpec(types.FieldPolicyEndDate, KindDate, "", valueDate,
		labels(
			"Policy End Date", "Expiry Date", "End Date",
			"Valid Till", "Valid Until", "Valid Upto", "Expires On",
		)...),

	newSpec(types.FieldPremiumAmount, KindCurrencyAmount, currencyMarker, valueAmount,
		append(labels(
			"Premium Amount", "Total Premium Payable", "Total Premium",
			"Premium Payable", "Gross Premium", "Net Premium",
		), atLineStart("Premium"))...),

	newSpec(types.FieldContactNumber, KindPlainText, "", valuePhone,
		labels(
			"Contact Number", "Contact No.",
			"Mobile Number", "Mobile No.",
			"Phone Number", "Phone No.", "Phone",
			"Telephone", "Tel.",
		)...),
}

// FieldSpecs returns a copy of the pattern table in record order.
func FieldSpecs() []FieldSpec {
	out := make([]FieldSpec, len(defaultSpecs))
	copy(out, defaultSpecs)
	return out
}
