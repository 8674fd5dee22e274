// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/policy-extract/internal/extract"
	"github.com/pdiddy/policy-extract/internal/textsource"
	"github.com/pdiddy/policy-extract/pkg/types"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract policy fields from PDF or text files",
	Long: `Extract reads each policy document, locates the nine policy fields and
prints the resulting record. PDFs are converted to text with the configured
backend (pdftotext or native); .txt files are read directly. With no
arguments, or with "-", text is read from standard input.

A single document prints one record. Several documents print a list with one
entry per file, in argument order. Use --explain to include, for each field,
the label that matched, the raw text and any normalization error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := extractOptionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return runExtract(cmd.Context(), opts, args, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	extractCmd.Flags().String("format", "", "output format: json or yaml (default from config)")
	extractCmd.Flags().String("backend", "", "PDF text backend: pdftotext or native (default from config)")
	extractCmd.Flags().Bool("explain", false, "include per-field match details")
	extractCmd.Flags().Int("concurrency", 0, "documents processed at once (default from config)")

	rootCmd.AddCommand(extractCmd)
}

type extractOptions struct {
	format      types.OutputFormat
	explain     bool
	concurrency int
	source      textsource.Source
	engine      *extract.Engine
}

// documentResult is one entry of multi-document output.
type documentResult struct {
	File     string                 `json:"file" yaml:"file"`
	Record   *types.PolicyRecord    `json:"record,omitempty" yaml:"record,omitempty"`
	Outcomes []extract.FieldOutcome `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
	Error    string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

func extractOptionsFromFlags(cmd *cobra.Command) (extractOptions, error) {
	srcCfg := cfg.Source
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		srcCfg.Backend = types.SourceBackend(b)
	}
	src, err := textsource.New(srcCfg)
	if err != nil {
		return extractOptions{}, err
	}

	opts := extractOptions{
		format:      cfg.Extract.Format,
		concurrency: cfg.Extract.Concurrency,
		source:      src,
		engine:      extract.New(extract.WithLogger(zap.L())),
	}
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		opts.format = types.OutputFormat(f)
	}
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		opts.concurrency = n
	}
	opts.explain, _ = cmd.Flags().GetBool("explain")
	return opts, nil
}

// runExtract processes args (or stdin) and writes the results to out.
func runExtract(ctx context.Context, opts extractOptions, args []string, in io.Reader, out io.Writer) error {
	if opts.format != types.OutputJSON && opts.format != types.OutputYAML {
		return eris.Errorf("extract: unknown format %q", opts.format)
	}
	if len(args) == 0 {
		args = []string{stdinArg}
	}

	results := make([]documentResult, len(args))
	resolutions := make([]extract.Resolution, len(args))
	errs := make([]error, len(args))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))
	for i, arg := range args {
		g.Go(func() error {
			text, err := readDocument(gctx, opts.source, arg, in)
			if err != nil {
				zap.L().Error("document failed", zap.String("file", arg), zap.Error(err))
				errs[i] = err
				results[i] = documentResult{File: arg, Error: err.Error()}
				return nil
			}
			res := opts.engine.Resolve(text)
			zap.L().Debug("document extracted", zap.String("file", arg), zap.Int("fields_found", res.Record.Filled()))

			resolutions[i] = res
			results[i] = documentResult{File: arg, Record: &res.Record}
			if opts.explain {
				results[i].Outcomes = res.Outcomes
			}
			return nil
		})
	}
	// Goroutines record failures per document instead of returning them.
	_ = g.Wait()

	if len(args) == 1 {
		if errs[0] != nil {
			return errs[0]
		}
		if opts.explain {
			return writeOutput(out, opts.format, resolutions[0])
		}
		return writeOutput(out, opts.format, resolutions[0].Record)
	}

	if err := writeOutput(out, opts.format, results); err != nil {
		return err
	}
	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		return eris.Errorf("extract: %d of %d documents failed", failed, len(args))
	}
	return nil
}

// readDocument returns the text of arg, reading in when arg is "-".
func readDocument(ctx context.Context, src textsource.Source, arg string, in io.Reader) (string, error) {
	if arg == stdinArg {
		return extract.ReadText(in)
	}
	return src.Text(ctx, arg)
}
