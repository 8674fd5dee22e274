// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textsource

import (
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
)

// Native extracts PDF text in-process with github.com/ledongthuc/pdf. It
// needs no external binary but loses column layout, so values that sit in
// a second column may run into the next label.
type Native struct{}

// Text implements Source. Pages are separated by form feeds, as pdftotext
// does.
func (Native) Text(ctx context.Context, path string) (text string, err error) {
	// The reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", eris.Errorf("textsource: parse %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", eris.Wrapf(err, "textsource: open %s", path)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		s, err := page.GetPlainText(nil)
		if err != nil {
			return "", eris.Wrapf(err, "textsource: page %d of %s", i, path)
		}
		if i > 1 {
			b.WriteByte('\f')
		}
		b.WriteString(s)
	}
	return b.String(), nil
}
