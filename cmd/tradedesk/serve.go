// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tradedesk/internal/mcp"
	"github.com/pdiddy/tradedesk/internal/report"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the desk tools over MCP stdio",
	Long: `Serve runs an MCP server on stdin/stdout exposing classify_inquiry,
search_configs, search_code, search_artifacts, scan_configs, scan_code,
rebuild_index, run_report and summarize_response. Logs go to stderr.

Search tools read the index as saved; call scan_configs, scan_code or
rebuild_index (or run "tradedesk index rebuild") to populate it.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcp.NewServer(app.cfg.Server, app.store, report.NewRunner(app.cfg.Report, app.logger), app.logger)
	return srv.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
