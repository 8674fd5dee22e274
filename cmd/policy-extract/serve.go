// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/policy-extract/internal/extract"
	"github.com/pdiddy/policy-extract/internal/server"
	"github.com/pdiddy/policy-extract/internal/textsource"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the policy upload API",
	Long: `Serve starts an HTTP server with two routes:

  GET  /health          liveness check
  POST /analyze-policy  multipart upload (field "file", .pdf or .txt)

Uploads are written to the configured upload directory under a random name
and removed once the record has been returned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srvCfg := cfg.Server
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			srvCfg.Addr = addr
		}

		src, err := textsource.New(cfg.Source)
		if err != nil {
			return err
		}
		if err := src.Check(); err != nil {
			zap.L().Warn("pdf uploads will fail", zap.Error(err))
		}

		if err := os.MkdirAll(srvCfg.UploadDir, 0o755); err != nil {
			return eris.Wrapf(err, "serve: create upload dir %s", srvCfg.UploadDir)
		}

		engine := extract.New(extract.WithLogger(zap.L()))
		return server.New(srvCfg, engine, src, zap.L()).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
