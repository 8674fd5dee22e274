// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the policy-extract CLI. It extracts
// structured fields from insurance policy documents on the command line
// or over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/policy-extract/internal/config"
	"github.com/pdiddy/policy-extract/internal/logging"
	"github.com/pdiddy/policy-extract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is loaded before any subcommand runs.
var cfg *types.Config

// rootCmd is the base command for the policy-extract CLI.
var rootCmd = &cobra.Command{
	Use:   "policy-extract",
	Short: "Extract structured fields from insurance policy documents",
	Long: `policy-extract reads insurance policy documents (PDF or plain text) and
returns a fixed record of nine fields: policyholder name, vehicle number,
policy type, policy number, insurer name, start and end dates, premium amount
and contact number. Fields are located by labelled patterns; a field that
cannot be found is returned empty.

Use "extract" for local files, "serve" for the HTTP upload API and "fields"
to list the labels each field is recognized by.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			c.Log.Level = level
		}
		cfg = c

		if _, err := logging.Init(cfg.Log); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./policy-extract.yaml or ~/.config/policy-extract/policy-extract.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
