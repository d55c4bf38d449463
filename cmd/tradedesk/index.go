// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/tradedesk/internal/index"
	"github.com/pdiddy/tradedesk/internal/scan"
	"github.com/pdiddy/tradedesk/internal/search"
	"github.com/pdiddy/tradedesk/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build, search and export the metadata index",
	Long: `Index manages the metadata index: one file holding a config catalog
(SQL files annotated with "-- @keywords:" line comments) and a code catalog
(Java classes annotated with "* @keywords" javadoc tags). Every scan
replaces one catalog in full and saves the file before returning.`,
}

// --- rebuild subcommand ---

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rescan config and code directories",
	RunE:  runIndexRebuild,
}

func runIndexRebuild(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.close()

	configDir, _ := cmd.Flags().GetString("config-dir")
	codeDir, _ := cmd.Flags().GetString("code-dir")

	sum, err := app.store.Rebuild(configDir, codeDir)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d config files and %d code files (%d total, %d skipped)\n",
		sum.ConfigsIndexed, sum.CodeIndexed, sum.Total(), sum.Skipped)
	fmt.Printf("Index file: %s\n", sum.IndexFile)
	return nil
}

// --- scan subcommand ---

var indexScanCmd = &cobra.Command{
	Use:   "scan <configs|code> [directory]",
	Short: "Rescan one catalog",
	Long: `Scan rebuilds one catalog from a directory (default: the configured
root for that catalog) and saves the index. A missing directory is
reported and leaves the index unchanged.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runIndexScan,
}

func runIndexScan(cmd *cobra.Command, args []string) error {
	kind, err := types.ParseCatalogKind(args[0])
	if err != nil {
		return err
	}
	var dir string
	if len(args) == 2 {
		dir = args[1]
	}

	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.close()

	catalog, rep, err := app.store.Scan(kind, dir)
	if err != nil {
		return err
	}
	printScanReport(os.Stdout, rep, len(catalog))
	return nil
}

func printScanReport(w io.Writer, rep scan.Report, indexed int) {
	if rep.Missing {
		fmt.Fprintf(w, "%s: directory %s does not exist, index left unchanged\n", rep.Kind, rep.Root)
		return
	}
	fmt.Fprintf(w, "%s: indexed %d of %d matching files under %s\n", rep.Kind, indexed, rep.Matched, rep.Root)
	for _, sk := range rep.Skipped {
		if sk.Reason != "" {
			fmt.Fprintf(w, "  skipped %s (%s: %s)\n", sk.Path, sk.Status, sk.Reason)
		} else {
			fmt.Fprintf(w, "  skipped %s (%s)\n", sk.Path, sk.Status)
		}
	}
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search <keywords...>",
	Short: "Find artifacts whose metadata mentions any keyword",
	Long: `Search matches each keyword as a case-insensitive substring of an
artifact's keywords, type, description and file name. Any keyword matching
is enough. The index is not rescanned; run "index rebuild" first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	catalogFlag, _ := cmd.Flags().GetString("catalog")
	sel, err := types.ParseCatalogSelector(catalogFlag)
	if err != nil {
		return err
	}

	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.close()

	snap := app.store.Snapshot()
	query := strings.Join(args, " ")
	matches := search.Search(snap, query, sel)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		qf := search.NewQueryFile(query, sel, matches, app.store.Path(), time.Now())
		if err := search.WriteQueryFile(savePath, qf); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved search to %s\n", savePath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if matches == nil {
			matches = []search.Match{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(snap.Configs) == 0 && len(snap.Code) == 0 {
		fmt.Fprintln(os.Stderr, `Index is empty; run "tradedesk index rebuild" first.`)
	}
	formatSearchOutput(os.Stdout, matches)
	return nil
}

func formatSearchOutput(w io.Writer, matches []search.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-6s  %-45s  %-22s  %s\n", "Kind", "Path", "Type", "Keywords")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, m := range matches {
		path := m.Path
		if len(path) > 45 {
			path = "..." + path[len(path)-42:]
		}
		kind := m.Record.Kind
		if len(kind) > 22 {
			kind = kind[:19] + "..."
		}
		fmt.Fprintf(w, "%-6s  %-45s  %-22s  %s\n",
			m.Catalog, path, kind, strings.Join(m.Record.Keywords, ", "))
	}
	fmt.Fprintf(w, "\n%d results\n", len(matches))
}

// --- rerun subcommand ---

var indexRerunCmd = &cobra.Command{
	Use:   "rerun <query-file>",
	Short: "Run a saved search against the current index",
	Long: `Rerun loads a search saved with "index search --save", runs it against
the current index and reports matches that appeared or disappeared since
it was saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexRerun,
}

func runIndexRerun(cmd *cobra.Command, args []string) error {
	qf, err := search.ReadQueryFile(args[0])
	if err != nil {
		return err
	}

	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.close()

	matches := qf.Rerun(app.store.Snapshot())
	formatSearchOutput(os.Stdout, matches)

	added, removed := diffMatches(qf.Matches, matches)
	fmt.Printf("\nSince %s: %d new, %d gone\n", qf.Summary.Timestamp.Format(time.RFC3339), len(added), len(removed))
	for _, k := range added {
		fmt.Printf("  + %s\n", k)
	}
	for _, k := range removed {
		fmt.Printf("  - %s\n", k)
	}
	return nil
}

// diffMatches returns the catalog:path keys present only in after and only
// in before.
func diffMatches(before, after []search.Match) (added, removed []string) {
	key := func(m search.Match) string { return string(m.Catalog) + ":" + m.Path }
	seen := map[string]bool{}
	for _, m := range before {
		seen[key(m)] = true
	}
	now := map[string]bool{}
	for _, m := range after {
		now[key(m)] = true
		if !seen[key(m)] {
			added = append(added, key(m))
		}
	}
	for _, m := range before {
		if !now[key(m)] {
			removed = append(removed, key(m))
		}
	}
	return added, removed
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the index to YAML or JSON",
	RunE:  runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := index.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.close()

	out, _ := cmd.Flags().GetString("out")
	if out == "" || out == "-" {
		return app.store.Export(os.Stdout, format)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := app.store.Export(f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "Exported to %s\n", out)
	return nil
}

// --- watch subcommand ---

var indexWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rescan catalogs whenever their directories change",
	Long: `Watch scans both catalogs once, then watches the configured config and
code directories and rescans a catalog after its files change. Stop with
Ctrl-C.`,
	RunE: runIndexWatch,
}

func runIndexWatch(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.close()

	sum, err := app.store.Rebuild("", "")
	if err != nil {
		return err
	}
	app.logger.Info("initial scan complete",
		zap.Int("configs", sum.ConfigsIndexed),
		zap.Int("code", sum.CodeIndexed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := app.cfg.Index
	targets := []scan.Target{
		{Kind: types.CatalogConfig, Root: cfg.ConfigDir, Exts: cfg.ConfigExts},
		{Kind: types.CatalogCode, Root: cfg.CodeDir, Exts: cfg.CodeExts},
	}
	return scan.Watch(ctx, targets, app.cfg.Watch.Debounce, app.logger, func(t scan.Target) {
		catalog, _, err := app.store.Scan(t.Kind, t.Root)
		if err != nil {
			app.logger.Error("rescan failed", zap.String("catalog", string(t.Kind)), zap.Error(err))
			return
		}
		app.logger.Info("catalog rescanned",
			zap.String("catalog", string(t.Kind)),
			zap.Int("indexed", len(catalog)))
	})
}

func init() {
	indexRebuildCmd.Flags().String("config-dir", "", "directory of SQL configs (default: index.config_dir)")
	indexRebuildCmd.Flags().String("code-dir", "", "directory of Java sources (default: index.code_dir)")

	indexSearchCmd.Flags().String("catalog", "all", "catalog to search: config, code, or all")
	indexSearchCmd.Flags().Bool("json", false, "output results as JSON")
	indexSearchCmd.Flags().String("save", "", "also save the query and its matches to this YAML file")

	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	indexExportCmd.Flags().String("out", "", "output file (default: stdout)")

	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexScanCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexRerunCmd)
	indexCmd.AddCommand(indexExportCmd)
	indexCmd.AddCommand(indexWatchCmd)
	rootCmd.AddCommand(indexCmd)
}
