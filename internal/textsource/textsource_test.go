// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/policy-extract/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	bins   map[string]bool
	stdout string
	stderr string
	err    error

	gotName string
	gotArgs []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.bins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	m.gotName = name
	m.gotArgs = args
	return []byte(m.stdout), []byte(m.stderr), m.err
}

// fakeSource returns a fixed text and records the requested path.
type fakeSource struct {
	text string
	got  string
}

func (f *fakeSource) Text(_ context.Context, path string) (string, error) {
	f.got = path
	return f.text, nil
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"policy.pdf", true},
		{"POLICY.PDF", true},
		{"notes.txt", true},
		{"scan.png", false},
		{"archive.pdf.zip", false},
		{"noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.name))
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	pdf := &fakeSource{text: "from pdf"}
	text := &fakeSource{text: "from text"}
	r := NewRouter(pdf, text)
	ctx := context.Background()

	got, err := r.Text(ctx, "/tmp/a.PDF")
	require.NoError(t, err)
	assert.Equal(t, "from pdf", got)
	assert.Equal(t, "/tmp/a.PDF", pdf.got)

	got, err = r.Text(ctx, "/tmp/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "from text", got)

	_, err = r.Text(ctx, "/tmp/c.docx")
	assert.True(t, eris.Is(err, ErrUnsupported), "got %v", err)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.SourceConfig
		want    any
		wantErr bool
	}{
		{name: "pdftotext", cfg: types.SourceConfig{Backend: types.BackendPdftotext, PdftotextPath: "/opt/pdftotext"}, want: &PdfToText{}},
		{name: "default backend", cfg: types.SourceConfig{}, want: &PdfToText{}},
		{name: "native", cfg: types.SourceConfig{Backend: types.BackendNative}, want: Native{}},
		{name: "unknown", cfg: types.SourceConfig{Backend: "tesseract"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown backend")
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r.pdf)
			assert.IsType(t, Plain{}, r.text)
		})
	}
}

func TestNewPdfToTextPath(t *testing.T) {
	r, err := New(types.SourceConfig{Backend: types.BackendPdftotext, PdftotextPath: "/opt/pdftotext"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/pdftotext", r.pdf.(*PdfToText).bin)
}

func TestPdfToText(t *testing.T) {
	t.Run("runs in layout mode", func(t *testing.T) {
		m := &mockExecutor{stdout: "Policy Number: ABC-123\n"}
		p := newPdfToText("", m)

		got, err := p.Text(context.Background(), "/in/policy.pdf")
		require.NoError(t, err)
		assert.Equal(t, "Policy Number: ABC-123\n", got)
		assert.Equal(t, "pdftotext", m.gotName)
		assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "/in/policy.pdf", "-"}, m.gotArgs)
	})

	t.Run("includes stderr in errors", func(t *testing.T) {
		m := &mockExecutor{err: errors.New("exit status 1"), stderr: "Syntax Error: Couldn't read xref table\n"}
		p := newPdfToText("/usr/local/bin/pdftotext", m)

		_, err := p.Text(context.Background(), "/in/broken.pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Couldn't read xref table")
		assert.Contains(t, err.Error(), "exit status 1")
		assert.Equal(t, "/usr/local/bin/pdftotext", m.gotName)
	})

	t.Run("error without stderr", func(t *testing.T) {
		m := &mockExecutor{err: errors.New("signal: killed")}
		_, err := newPdfToText("", m).Text(context.Background(), "/in/a.pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "signal: killed")
	})
}

func TestPdfToTextAvailable(t *testing.T) {
	assert.NoError(t, newPdfToText("", &mockExecutor{bins: map[string]bool{"pdftotext": true}}).Available())
	assert.Error(t, newPdfToText("", &mockExecutor{}).Available())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...(truncated)", truncate("abc", 2))
}

func TestPlain(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	got, err := Plain{}.Text(ctx, writeFile(t, dir, "a.txt", []byte("Policy Number: X-1\n")))
	require.NoError(t, err)
	assert.Equal(t, "Policy Number: X-1\n", got)

	_, err = Plain{}.Text(ctx, writeFile(t, dir, "b.txt", []byte("%PDF\x00\x01")))
	assert.True(t, eris.Is(err, ErrNotText), "got %v", err)

	_, err = Plain{}.Text(ctx, filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Plain{}.Text(cancelled, filepath.Join(dir, "a.txt"))
	assert.ErrorIs(t, err, context.Canceled)
}

// minimalPDF builds a one-page PDF that shows text in Helvetica.
func minimalPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}

func TestNative(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	got, err := Native{}.Text(ctx, writeFile(t, dir, "policy.pdf", minimalPDF("Policy Number: ABC-123")))
	require.NoError(t, err)
	assert.Contains(t, got, "Policy Number: ABC-123")

	_, err = Native{}.Text(ctx, writeFile(t, dir, "fake.pdf", []byte("not a pdf at all")))
	assert.Error(t, err)

	_, err = Native{}.Text(ctx, filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "open"))
}

func TestRouterCheck(t *testing.T) {
	ok := NewRouter(newPdfToText("", &mockExecutor{bins: map[string]bool{"pdftotext": true}}), Plain{})
	assert.NoError(t, ok.Check())

	missing := NewRouter(newPdfToText("", &mockExecutor{}), Plain{})
	assert.Error(t, missing.Check())

	assert.NoError(t, NewRouter(Native{}, Plain{}).Check())
}
