// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textsource turns uploaded or local policy documents into plain
// text for the extraction engine. PDFs go through a configurable backend
// (the pdftotext binary or a pure-Go reader); .txt files are read as is.
package textsource

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pdiddy/policy-extract/pkg/types"
)

var (
	// ErrUnsupported is returned for files that are neither PDF nor text.
	ErrUnsupported = eris.New("textsource: unsupported file type")

	// ErrNotText is returned when a .txt file holds binary data.
	ErrNotText = eris.New("textsource: file is not text")
)

const (
	extPDF  = ".pdf"
	extText = ".txt"
)

// Source produces the text of the document at path.
type Source interface {
	Text(ctx context.Context, path string) (string, error)
}

// Supported reports whether name has an extension a Router can handle.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case extPDF, extText:
		return true
	}
	return false
}

// Router dispatches on file extension: PDFs to the configured backend and
// text files to Plain.
type Router struct {
	pdf  Source
	text Source
}

// NewRouter creates a Router over explicit sources.
func NewRouter(pdf, text Source) *Router {
	return &Router{pdf: pdf, text: text}
}

// New builds the Router described by cfg. It fails for an unknown backend.
func New(cfg types.SourceConfig) (*Router, error) {
	var pdf Source
	switch cfg.Backend {
	case types.BackendPdftotext, "":
		pdf = NewPdfToText(cfg.PdftotextPath)
	case types.BackendNative:
		pdf = Native{}
	default:
		return nil, eris.Errorf("textsource: unknown backend %q", cfg.Backend)
	}
	return NewRouter(pdf, Plain{}), nil
}

// Check reports an error when the PDF backend cannot run, such as a missing
// pdftotext binary.
func (r *Router) Check() error {
	if c, ok := r.pdf.(interface{ Available() error }); ok {
		return c.Available()
	}
	return nil
}

// Text implements Source.
func (r *Router) Text(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extPDF:
		return r.pdf.Text(ctx, path)
	case extText:
		return r.text.Text(ctx, path)
	default:
		return "", eris.Wrapf(ErrUnsupported, "textsource: %s", filepath.Base(path))
	}
}
