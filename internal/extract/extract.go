// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/policy-extract/pkg/types"
)

// Input errors. These are the only failures an extraction surfaces; problems
// with individual fields degrade to empty values.
var (
	ErrMissingInput = eris.New("extract: missing input")
	ErrNotText      = eris.New("extract: input is not text")
)

// Status describes how a field was resolved.
type Status string

const (
	StatusMatched             Status = "matched"
	StatusClassified          Status = "classified"
	StatusMissing             Status = "missing"
	StatusNormalizationFailed Status = "normalization_failed"
)

// FieldOutcome records how one field was resolved.
type FieldOutcome struct {
	Field  types.Field `json:"field" yaml:"field"`
	Status Status      `json:"status" yaml:"status"`

	// Label is the synonym that matched, or "keywords" for a classifier hit.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Raw is the captured text before normalization.
	Raw   string `json:"raw,omitempty" yaml:"raw,omitempty"`
	Value string `json:"value" yaml:"value"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Resolution is a record together with the per-field outcomes that
// produced it, in record order.
type Resolution struct {
	Record   types.PolicyRecord `json:"record" yaml:"record"`
	Outcomes []FieldOutcome     `json:"outcomes" yaml:"outcomes"`
}

// classifierLabel marks outcomes resolved by the keyword classifier.
const classifierLabel = "keywords"

// Engine extracts policy records from document text. It holds only
// read-only state and is safe for concurrent use.
type Engine struct {
	specs      []FieldSpec
	classifier *Classifier
	log        *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger that receives normalization diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an Engine over the default pattern table.
func New(opts ...Option) *Engine {
	e := &Engine{
		specs:      defaultSpecs,
		classifier: NewClassifier(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the policy record for text. It never fails: fields that
// are absent or cannot be normalized hold the empty string.
func (e *Engine) Extract(text string) types.PolicyRecord {
	return e.Resolve(text).Record
}

// ExtractFrom reads a whole document from r and extracts it. It fails only
// when there is no input, the input is binary, or reading fails.
func (e *Engine) ExtractFrom(r io.Reader) (types.PolicyRecord, error) {
	text, err := ReadText(r)
	if err != nil {
		return types.PolicyRecord{}, err
	}
	return e.Extract(text), nil
}

// ReadText reads a whole document from r and checks that it is text.
func ReadText(r io.Reader) (string, error) {
	if r == nil {
		return "", ErrMissingInput
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", eris.Wrap(err, "extract: read input")
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", ErrNotText
	}
	return string(data), nil
}

// Resolve extracts every field of text and reports how each was found.
func (e *Engine) Resolve(text string) Resolution {
	doc := CleanDocument(text)
	res := Resolution{Outcomes: make([]FieldOutcome, 0, len(e.specs))}

	for _, spec := range e.specs {
		out := e.resolveField(spec, doc)
		res.Record.Set(spec.Field, out.Value)
		res.Outcomes = append(res.Outcomes, out)
	}
	return res
}

func (e *Engine) resolveField(spec FieldSpec, doc string) FieldOutcome {
	out := FieldOutcome{Field: spec.Field, Status: StatusMissing}

	m, ok := spec.match(doc)
	if !ok {
		if spec.Field == types.FieldPolicyType {
			if pt, hit := e.classifier.Classify(doc); hit {
				e.log.Debug("policy type classified", zap.String("policy_type", pt))
				out.Status = StatusClassified
				out.Label = classifierLabel
				out.Value = pt
			}
		}
		return out
	}

	out.Label = m.Label
	out.Raw = m.Value
	value, err := normalize(spec.Kind, m.Value)
	if err != nil {
		e.log.Warn("field normalization failed",
			zap.String("field", string(spec.Field)),
			zap.String("raw", m.Value),
			zap.Error(err),
		)
		out.Status = StatusNormalizationFailed
		out.Error = err.Error()
		return out
	}

	e.log.Debug("field matched",
		zap.String("field", string(spec.Field)),
		zap.String("label", m.Label),
		zap.Int("offset", m.Offset),
	)
	out.Status = StatusMatched
	out.Value = value
	return out
}
