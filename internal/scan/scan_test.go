// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tradedesk/internal/annotate"
	"github.com/pdiddy/tradedesk/pkg/types"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCatalog_Configs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "daily/recon.sql", "-- @keywords: trade, daily_report\n-- @type: compliance_check\nSELECT 1;")
	writeFile(t, root, "settle.sql", "-- @type: settlement_inquiry\n")
	writeFile(t, root, "plain.sql", "SELECT * FROM trades;")
	writeFile(t, root, "notes.txt", "-- @keywords: ignored")
	writeFile(t, root, ".git/hooks/x.sql", "-- @keywords: vcs")

	catalog, report, err := Catalog(root, types.CatalogConfig, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"daily/recon.sql", "settle.sql"}, catalog.Paths())
	assert.Equal(t, []string{"trade", "daily_report"}, catalog["daily/recon.sql"].Keywords)
	assert.Equal(t, "recon.sql", catalog["daily/recon.sql"].FileName)
	assert.Equal(t, "settlement_inquiry", catalog["settle.sql"].Kind)

	assert.Equal(t, 3, report.Matched)
	assert.Equal(t, 2, report.Indexed)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "plain.sql", report.Skipped[0].Path)
	assert.Equal(t, annotate.StatusNoAnnotations, report.Skipped[0].Status)
}

func TestCatalog_Code(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "com/trade/AuditProcessor.java", `/**
 * @keywords transaction, audit
 * @type investigation_tool
 */
public class AuditProcessor {
    public void run() {}
}`)

	catalog, _, err := Catalog(root, types.CatalogCode, []string{".java"})
	require.NoError(t, err)

	rec, ok := catalog["com/trade/AuditProcessor.java"]
	require.True(t, ok)
	assert.Equal(t, "AuditProcessor", rec.ClassName)
	assert.Equal(t, []string{"run"}, rec.Methods)
	assert.Equal(t, "investigation_tool", rec.Kind)
}

func TestCatalog_MissingRoot(t *testing.T) {
	catalog, report, err := Catalog(filepath.Join(t.TempDir(), "nope"), types.CatalogConfig, nil)
	require.NoError(t, err)
	assert.Empty(t, catalog)
	assert.NotNil(t, catalog)
	assert.True(t, report.Missing)
}

func TestCatalog_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.sql", "-- @type: x")

	_, _, err := Catalog(filepath.Join(root, "a.sql"), types.CatalogConfig, nil)
	assert.Error(t, err)
}

func TestCatalog_UnreadableFileDoesNotAbort(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	writeFile(t, root, "good.sql", "-- @type: ok")
	writeFile(t, root, "locked.sql", "-- @type: hidden")
	require.NoError(t, os.Chmod(filepath.Join(root, "locked.sql"), 0o000))
	t.Cleanup(func() { os.Chmod(filepath.Join(root, "locked.sql"), 0o644) })

	catalog, report, err := Catalog(root, types.CatalogConfig, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"good.sql"}, catalog.Paths())
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, annotate.StatusUnreadable, report.Skipped[0].Status)
}

func TestCatalog_InvalidUTF8Skipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.sql", "-- @type: ok")
	writeFile(t, root, "binary.sql", string([]byte{0xc3, 0x28, 0xff}))

	catalog, report, err := Catalog(root, types.CatalogConfig, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"good.sql"}, catalog.Paths())
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "binary.sql", report.Skipped[0].Path)
	assert.Equal(t, annotate.StatusUnreadable, report.Skipped[0].Status)
}

func TestCatalog_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.sql", "-- @keywords: a, b\n-- @description: first")
	writeFile(t, root, "x/y/b.sql", "-- @type: t")

	first, _, err := Catalog(root, types.CatalogConfig, nil)
	require.NoError(t, err)
	second, _, err := Catalog(root, types.CatalogConfig, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCatalog_ExtensionMatchIgnoresCase(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "UPPER.SQL", "-- @type: loud")

	catalog, _, err := Catalog(root, types.CatalogConfig, []string{".sql"})
	require.NoError(t, err)
	assert.Contains(t, catalog, "UPPER.SQL")
}
