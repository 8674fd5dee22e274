// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/policy-extract/internal/extract"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the fields and the labels that recognize them",
	Long: `Fields prints the pattern table: for each record field, its value kind and
the label synonyms tried in priority order. The first synonym found in a
document wins, wherever it appears. Use --patterns to show the compiled
regular expressions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		patterns, _ := cmd.Flags().GetBool("patterns")
		return printFields(cmd.OutOrStdout(), extract.FieldSpecs(), patterns)
	},
}

func init() {
	fieldsCmd.Flags().Bool("patterns", false, "show compiled regular expressions")
	rootCmd.AddCommand(fieldsCmd)
}

func printFields(w io.Writer, specs []extract.FieldSpec, patterns bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if patterns {
		fmt.Fprintln(tw, "FIELD\tKIND\tPRIORITY\tLABEL\tPATTERN")
	} else {
		fmt.Fprintln(tw, "FIELD\tKIND\tPRIORITY\tLABEL")
	}
	for _, s := range specs {
		for i, r := range s.Recognizers {
			if patterns {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", s.Field, s.Kind, i+1, r.Label, r.Pattern())
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Field, s.Kind, i+1, r.Label)
		}
	}
	return tw.Flush()
}
