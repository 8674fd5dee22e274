// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textsource

import (
	"bytes"
	"context"
	"os"

	"github.com/rotisserie/eris"
)

// Plain reads a text file verbatim.
type Plain struct{}

// Text implements Source.
func (Plain) Text(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "textsource: read %s", path)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", eris.Wrapf(ErrNotText, "textsource: %s", path)
	}
	return string(data), nil
}
