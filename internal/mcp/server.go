// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcp exposes the index, the inquiry classifier and the report
// runner as MCP tools. Search tools read the index as it stands; callers
// scan first with scan_configs, scan_code or rebuild_index.
package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pdiddy/tradedesk/internal/index"
	"github.com/pdiddy/tradedesk/internal/report"
	"github.com/pdiddy/tradedesk/pkg/types"
)

// Server wraps the MCP SDK server and the components its tools call.
type Server struct {
	MCPServer *sdkmcp.Server

	store  *index.Store
	runner *report.Runner
	log    *zap.Logger
}

// NewServer creates a server with every tool registered.
func NewServer(cfg types.ServerConfig, store *index.Store, runner *report.Runner, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		MCPServer: sdkmcp.NewServer(&sdkmcp.Implementation{Name: cfg.Name, Version: cfg.Version}, nil),
		store:     store,
		runner:    runner,
		log:       logger.Named("mcp"),
	}
	s.registerTools()
	return s
}

// Run serves requests over stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("serving tools over stdio")
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "classify_inquiry",
		Description: "Classify a support email: intent, trade and account identifiers, time period, priority and recommended actions.",
	}, s.handleClassifyInquiry)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "search_configs",
		Description: "Search indexed SQL config files by metadata keywords (-- @keywords / @type / @description).",
	}, s.handleSearchConfigs)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "search_code",
		Description: "Search indexed Java classes by javadoc metadata (@keywords / @type / @description).",
	}, s.handleSearchCode)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "search_artifacts",
		Description: "Search one or both catalogs. catalog is config, code or all (default).",
	}, s.handleSearchArtifacts)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "scan_configs",
		Description: "Rescan a directory of SQL configs and replace the config catalog.",
	}, s.handleScanConfigs)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "scan_code",
		Description: "Rescan a directory of Java sources and replace the code catalog.",
	}, s.handleScanCode)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "rebuild_index",
		Description: "Rescan both config and code directories. Use after adding files or changing annotations.",
	}, s.handleRebuildIndex)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "run_report",
		Description: "Run a Java report generator class against a SQL config file.",
	}, s.handleRunReport)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "summarize_response",
		Description: "Render the reply to the requester from a classified inquiry, the config files used and the report path.",
	}, s.handleSummarizeResponse)
}
