// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textsource

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const defaultPdftotext = "pdftotext"

// maxStderr caps how much of a failing command's stderr ends up in errors.
const maxStderr = 8 << 10

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()

	zap.L().Debug("exec",
		zap.String("cmd", name),
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(start)),
		zap.Int("stdout_bytes", out.Len()),
		zap.Bool("ok", err == nil),
	)
	return out.Bytes(), errb.Bytes(), err
}

// PdfToText extracts PDF text with poppler's pdftotext in layout mode, which
// keeps label and value columns on the same line.
type PdfToText struct {
	bin  string
	exec executor
}

// NewPdfToText creates a backend that runs bin, or "pdftotext" from PATH
// when bin is empty.
func NewPdfToText(bin string) *PdfToText {
	return newPdfToText(bin, osExecutor{})
}

func newPdfToText(bin string, ex executor) *PdfToText {
	if bin == "" {
		bin = defaultPdftotext
	}
	return &PdfToText{bin: bin, exec: ex}
}

// Available reports an error when the pdftotext binary cannot be found.
func (p *PdfToText) Available() error {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return eris.Wrapf(err, "textsource: %s not found", p.bin)
	}
	return nil
}

// Text implements Source.
func (p *PdfToText) Text(ctx context.Context, path string) (string, error) {
	out, stderr, err := p.exec.Run(ctx, p.bin, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		if msg := strings.TrimSpace(truncate(string(stderr), maxStderr)); msg != "" {
			return "", eris.Wrapf(err, "textsource: %s %s: %s", p.bin, path, msg)
		}
		return "", eris.Wrapf(err, "textsource: %s %s", p.bin, path)
	}
	return string(out), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
