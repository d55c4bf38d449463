// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tradedesk/internal/index"
	"github.com/pdiddy/tradedesk/internal/report"
	"github.com/pdiddy/tradedesk/pkg/types"
)

// --- test helpers ---

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newTestServer builds a server over a temp workspace holding one config
// and one code artifact. Nothing is scanned yet.
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "configs/daily/recon.sql",
		"-- @keywords: trade, daily_report\n-- @type: compliance_check\n-- @description: Daily recon\nselect 1;\n")
	writeFile(t, dir, "configs/settle.sql", "-- @type: settlement_inquiry\n")
	writeFile(t, dir, "src/com/trade/SettlementReportGenerator.java",
		"/**\n * @keywords settlement, report\n * @type report_generator\n */\npublic class SettlementReportGenerator {\n  public String generateReport(Date d) { return null; }\n}\n")

	cfg := types.DefaultConfig()
	cfg.Index.Path = filepath.Join(dir, "metadata_index.json")
	cfg.Index.ConfigDir = filepath.Join(dir, "configs")
	cfg.Index.CodeDir = filepath.Join(dir, "src")
	cfg.Report.OutputDir = filepath.Join(dir, "reports")

	store, err := index.Open(cfg.Index, nil)
	require.NoError(t, err)
	return NewServer(cfg.Server, store, report.NewRunner(cfg.Report, nil), nil), dir
}

func connectInMemory(t *testing.T, ctx context.Context, srv *Server) *sdkmcp.ClientSession {
	t.Helper()
	t1, t2 := sdkmcp.NewInMemoryTransports()
	_, err := srv.MCPServer.Connect(ctx, t1, nil)
	require.NoError(t, err)
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any) map[string]any {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool(%s)", name)
	require.False(t, res.IsError, "CallTool(%s) returned error: %s", name, textOf(res))

	result := make(map[string]any)
	require.NoError(t, json.Unmarshal([]byte(textOf(res)), &result))
	return result
}

func callToolExpectError(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return err.Error()
	}
	require.True(t, res.IsError, "expected %s to fail", name)
	return textOf(res)
}

func textOf(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func matchPaths(t *testing.T, result map[string]any) []string {
	t.Helper()
	var out []string
	for _, m := range result["matches"].([]any) {
		match := m.(map[string]any)
		out = append(out, match["catalog"].(string)+":"+match["path"].(string))
	}
	return out
}

// --- tools ---

func TestListTools(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	res, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"classify_inquiry", "search_configs", "search_code", "search_artifacts",
		"scan_configs", "scan_code", "rebuild_index", "run_report", "summarize_response",
	}, names)
}

func TestClassifyInquiry(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	result := callTool(t, ctx, session, "classify_inquiry", map[string]any{
		"email_content": "URGENT: trade TRD123456 failed, please check ASAP",
	})
	assert.Equal(t, "parsed", result["status"])
	inq := result["inquiry"].(map[string]any)
	assert.Equal(t, "trade_issue", inq["intent"])
	assert.Equal(t, "high", inq["priority"])
	assert.Equal(t, []any{"TRD123456"}, inq["trade_ids"])
	assert.Nil(t, inq["time_period"])
}

func TestSearchBeforeScanReportsEmptyIndex(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	result := callTool(t, ctx, session, "search_configs", map[string]any{"search_keywords": "trade"})
	assert.Equal(t, false, result["indexed"])
	assert.NotEmpty(t, result["hint"])
	assert.EqualValues(t, 0, result["matches_found"])
	assert.Empty(t, result["matches"])
}

func TestScanThenSearch(t *testing.T) {
	ctx := context.Background()
	srv, dir := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	scanned := callTool(t, ctx, session, "scan_configs", map[string]any{})
	assert.EqualValues(t, 2, scanned["indexed"])
	assert.Equal(t, filepath.Join(dir, "metadata_index.json"), scanned["index_file"])

	scanned = callTool(t, ctx, session, "scan_code", map[string]any{"directory": filepath.Join(dir, "src")})
	assert.EqualValues(t, 1, scanned["indexed"])

	result := callTool(t, ctx, session, "search_configs", map[string]any{"search_keywords": "settlement"})
	assert.Equal(t, true, result["indexed"])
	assert.Equal(t, []string{"config:settle.sql"}, matchPaths(t, result))

	result = callTool(t, ctx, session, "search_code", map[string]any{"search_keywords": "report"})
	assert.Equal(t, []string{"code:com/trade/SettlementReportGenerator.java"}, matchPaths(t, result))
	rec := result["matches"].([]any)[0].(map[string]any)["record"].(map[string]any)
	assert.Equal(t, "SettlementReportGenerator", rec["class_name"])
	assert.Equal(t, []any{"generateReport"}, rec["methods"])

	result = callTool(t, ctx, session, "search_artifacts", map[string]any{"search_keywords": "settlement"})
	assert.Equal(t, []string{"config:settle.sql", "code:com/trade/SettlementReportGenerator.java"}, matchPaths(t, result))
}

func TestScanMissingDirectory(t *testing.T) {
	ctx := context.Background()
	srv, dir := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	result := callTool(t, ctx, session, "scan_configs", map[string]any{"directory": filepath.Join(dir, "nope")})
	assert.Equal(t, true, result["missing"])
	assert.EqualValues(t, 0, result["indexed"])
}

func TestRebuildIndex(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	result := callTool(t, ctx, session, "rebuild_index", map[string]any{})
	assert.Equal(t, "success", result["status"])
	assert.EqualValues(t, 2, result["sql_configs_indexed"])
	assert.EqualValues(t, 1, result["java_classes_indexed"])
	assert.EqualValues(t, 3, result["total_files_indexed"])
	assert.FileExists(t, result["index_file"].(string))
}

func TestSearchArtifacts_BadCatalog(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	msg := callToolExpectError(t, ctx, session, "search_artifacts", map[string]any{
		"search_keywords": "trade", "catalog": "nosuch",
	})
	assert.Contains(t, msg, "unknown catalog selector")
}

func TestRunReport_InvalidRequest(t *testing.T) {
	ctx := context.Background()
	srv, dir := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	msg := callToolExpectError(t, ctx, session, "run_report", map[string]any{
		"java_class":  "com.trade.SettlementReportGenerator",
		"config_file": filepath.Join(dir, "configs", "missing.sql"),
	})
	assert.Contains(t, msg, "config file")
}

func TestSummarizeResponse(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	classified := callTool(t, ctx, session, "classify_inquiry", map[string]any{
		"email_content": "Can you generate a report for last week's settlements, no rush",
	})
	result := callTool(t, ctx, session, "summarize_response", map[string]any{
		"parsed_email": classified["inquiry"],
		"config_files": []string{"settle.sql"},
		"report_path":  "reports/settle.csv",
	})
	summary := result["summary"].(string)
	assert.True(t, strings.HasPrefix(summary, "Trade Surveillance Support"))
	assert.Contains(t, summary, "Inquiry Type: report_request")
	assert.Contains(t, summary, "Priority: low")
	assert.Contains(t, summary, "Period: last_week")
	assert.Contains(t, summary, "Report Location: reports/settle.csv")
}
