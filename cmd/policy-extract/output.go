// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/policy-extract/pkg/types"
)

// writeOutput encodes v to w in the requested format.
func writeOutput(w io.Writer, format types.OutputFormat, v any) error {
	switch format {
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		return enc.Close()
	case types.OutputJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "output: encode json")
		}
		return nil
	default:
		return eris.Errorf("output: unknown format %q", format)
	}
}
