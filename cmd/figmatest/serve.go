package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ormasoftchile/figmatest/pkg/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serve the generation API over HTTP:

  POST /generate  {"file_key": "...", "mode": "fixed|adaptive|ai", "instructions": "..."}
  GET  /health

The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := newService()
	health := svc.Health()
	logger.Info("starting server",
		zap.String("addr", addr),
		zap.Bool("figma_configured", health.FigmaConfigured),
		zap.Bool("mistral_configured", health.MistralConfigured),
	)
	return server.New(svc, logger.Named("http")).ListenAndServe(ctx, addr)
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :5000)")
}
