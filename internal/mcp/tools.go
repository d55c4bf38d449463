// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pdiddy/tradedesk/internal/inquiry"
	"github.com/pdiddy/tradedesk/internal/report"
	"github.com/pdiddy/tradedesk/internal/scan"
	"github.com/pdiddy/tradedesk/internal/search"
	"github.com/pdiddy/tradedesk/pkg/types"
)

const (
	statusSuccess = "success"
	previewLen    = 200
)

// --- Tool input/output types ---

type classifyInput struct {
	EmailContent string `json:"email_content" jsonschema:"full text of the inquiry email"`
}

type classifyOutput struct {
	Status  string              `json:"status"`
	Inquiry types.InquiryResult `json:"inquiry"`
	Preview string              `json:"preview"`
}

type searchInput struct {
	SearchKeywords string `json:"search_keywords" jsonschema:"keywords separated by spaces or commas, e.g. trade settlement"`
}

type searchArtifactsInput struct {
	SearchKeywords string `json:"search_keywords" jsonschema:"keywords separated by spaces or commas"`
	Catalog        string `json:"catalog,omitempty" jsonschema:"config, code or all (default all)"`
}

type searchOutput struct {
	Status         string         `json:"status"`
	SearchKeywords string         `json:"search_keywords"`
	Catalog        string         `json:"catalog"`
	Indexed        bool           `json:"indexed"`
	Hint           string         `json:"hint,omitempty"`
	MatchesFound   int            `json:"matches_found"`
	Matches        []search.Match `json:"matches"`
}

type scanInput struct {
	Directory string `json:"directory,omitempty" jsonschema:"directory to scan; defaults to the configured root"`
}

type scanOutput struct {
	Status    string         `json:"status"`
	Catalog   string         `json:"catalog"`
	Root      string         `json:"root"`
	Missing   bool           `json:"missing"`
	Indexed   int            `json:"indexed"`
	Skipped   []scan.Skipped `json:"skipped"`
	IndexFile string         `json:"index_file"`
}

type rebuildInput struct {
	ConfigDirectory string `json:"config_directory,omitempty" jsonschema:"directory of SQL configs; defaults to the configured root"`
	CodeDirectory   string `json:"code_directory,omitempty" jsonschema:"directory of Java sources; defaults to the configured root"`
}

type rebuildOutput struct {
	Status            string `json:"status"`
	ConfigsIndexed    int    `json:"sql_configs_indexed"`
	CodeIndexed       int    `json:"java_classes_indexed"`
	TotalFilesIndexed int    `json:"total_files_indexed"`
	Skipped           int    `json:"skipped"`
	IndexFile         string `json:"index_file"`
}

type summarizeInput struct {
	ParsedEmail types.InquiryResult `json:"parsed_email" jsonschema:"the inquiry object returned by classify_inquiry"`
	ConfigFiles []string            `json:"config_files,omitempty" jsonschema:"config files used for the report"`
	ReportPath  string              `json:"report_path,omitempty" jsonschema:"path of the generated report"`
}

type summarizeOutput struct {
	Summary string `json:"summary"`
}

// --- Handlers ---

func (s *Server) handleClassifyInquiry(_ context.Context, _ *sdkmcp.CallToolRequest, input classifyInput) (*sdkmcp.CallToolResult, classifyOutput, error) {
	res := inquiry.Classify(input.EmailContent)
	s.log.Info("classified inquiry",
		zap.String("intent", string(res.Intent)),
		zap.String("priority", string(res.Priority)))
	return nil, classifyOutput{
		Status:  "parsed",
		Inquiry: res,
		Preview: preview(input.EmailContent),
	}, nil
}

func (s *Server) handleSearchConfigs(_ context.Context, _ *sdkmcp.CallToolRequest, input searchInput) (*sdkmcp.CallToolResult, searchOutput, error) {
	return nil, s.search(input.SearchKeywords, types.SelectConfig), nil
}

func (s *Server) handleSearchCode(_ context.Context, _ *sdkmcp.CallToolRequest, input searchInput) (*sdkmcp.CallToolResult, searchOutput, error) {
	return nil, s.search(input.SearchKeywords, types.SelectCode), nil
}

func (s *Server) handleSearchArtifacts(_ context.Context, _ *sdkmcp.CallToolRequest, input searchArtifactsInput) (*sdkmcp.CallToolResult, searchOutput, error) {
	sel, err := types.ParseCatalogSelector(input.Catalog)
	if err != nil {
		return nil, searchOutput{}, err
	}
	return nil, s.search(input.SearchKeywords, sel), nil
}

func (s *Server) search(query string, sel types.CatalogSelector) searchOutput {
	snap := s.store.Snapshot()
	out := searchOutput{
		Status:         statusSuccess,
		SearchKeywords: query,
		Catalog:        string(sel),
		Matches:        search.Search(snap, query, sel),
	}
	for _, kind := range []types.CatalogKind{types.CatalogConfig, types.CatalogCode} {
		if sel.Includes(kind) && len(snap.Catalog(kind)) > 0 {
			out.Indexed = true
		}
	}
	if !out.Indexed {
		out.Hint = "index is empty; run scan_configs, scan_code or rebuild_index first"
	}
	if out.Matches == nil {
		out.Matches = []search.Match{}
	}
	out.MatchesFound = len(out.Matches)

	s.log.Info("searched index",
		zap.String("query", query),
		zap.String("catalog", string(sel)),
		zap.Int("matches", out.MatchesFound))
	return out
}

func (s *Server) handleScanConfigs(_ context.Context, _ *sdkmcp.CallToolRequest, input scanInput) (*sdkmcp.CallToolResult, scanOutput, error) {
	return s.scan(types.CatalogConfig, input.Directory)
}

func (s *Server) handleScanCode(_ context.Context, _ *sdkmcp.CallToolRequest, input scanInput) (*sdkmcp.CallToolResult, scanOutput, error) {
	return s.scan(types.CatalogCode, input.Directory)
}

func (s *Server) scan(kind types.CatalogKind, dir string) (*sdkmcp.CallToolResult, scanOutput, error) {
	catalog, rep, err := s.store.Scan(kind, dir)
	if err != nil {
		return nil, scanOutput{}, err
	}
	out := scanOutput{
		Status:    statusSuccess,
		Catalog:   string(kind),
		Root:      rep.Root,
		Missing:   rep.Missing,
		Indexed:   len(catalog),
		Skipped:   rep.Skipped,
		IndexFile: absPath(s.store.Path()),
	}
	if out.Skipped == nil {
		out.Skipped = []scan.Skipped{}
	}
	s.log.Info("catalog rebuilt",
		zap.String("catalog", string(kind)),
		zap.Int("indexed", out.Indexed),
		zap.Int("skipped", len(out.Skipped)))
	return nil, out, nil
}

func (s *Server) handleRebuildIndex(_ context.Context, _ *sdkmcp.CallToolRequest, input rebuildInput) (*sdkmcp.CallToolResult, rebuildOutput, error) {
	sum, err := s.store.Rebuild(input.ConfigDirectory, input.CodeDirectory)
	if err != nil {
		return nil, rebuildOutput{}, fmt.Errorf("rebuild_index: %w", err)
	}
	s.log.Info("index rebuilt",
		zap.Int("configs", sum.ConfigsIndexed),
		zap.Int("code", sum.CodeIndexed))
	return nil, rebuildOutput{
		Status:            statusSuccess,
		ConfigsIndexed:    sum.ConfigsIndexed,
		CodeIndexed:       sum.CodeIndexed,
		TotalFilesIndexed: sum.Total(),
		Skipped:           sum.Skipped,
		IndexFile:         sum.IndexFile,
	}, nil
}

func (s *Server) handleRunReport(ctx context.Context, _ *sdkmcp.CallToolRequest, input report.Request) (*sdkmcp.CallToolResult, report.RunResult, error) {
	res, err := s.runner.Run(ctx, input)
	if err != nil {
		return nil, report.RunResult{}, fmt.Errorf("run_report: %w", err)
	}
	return nil, res, nil
}

func (s *Server) handleSummarizeResponse(_ context.Context, _ *sdkmcp.CallToolRequest, input summarizeInput) (*sdkmcp.CallToolResult, summarizeOutput, error) {
	text, err := report.Summary(report.SummaryInput{
		Inquiry:     input.ParsedEmail,
		ConfigFiles: input.ConfigFiles,
		ReportPath:  input.ReportPath,
	})
	if err != nil {
		return nil, summarizeOutput{}, err
	}
	return nil, summarizeOutput{Summary: text}, nil
}

// preview returns the first previewLen runes of text, marking truncation.
func preview(text string) string {
	r := []rune(strings.TrimSpace(text))
	if len(r) <= previewLen {
		return string(r)
	}
	return string(r[:previewLen]) + "..."
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
