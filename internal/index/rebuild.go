// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/tradedesk/internal/scan"
	"github.com/pdiddy/tradedesk/pkg/types"
)

// Scan rebuilds the catalog of the given kind from dir and persists it.
// An empty dir falls back to the configured root for that kind. A missing
// directory yields an empty catalog and leaves the stored partition and
// the index file untouched.
func (s *Store) Scan(kind types.CatalogKind, dir string) (types.Catalog, scan.Report, error) {
	if dir == "" {
		dir = s.rootFor(kind)
	}

	catalog, report, err := scan.Catalog(dir, kind, s.cfg.Exts(kind))
	if err != nil {
		return nil, report, fmt.Errorf("scanning %s catalog: %w", kind, err)
	}
	if report.Missing {
		s.logger.Warn("scan root does not exist, keeping stored catalog",
			zap.String("catalog", string(kind)), zap.String("root", dir))
		return types.Catalog{}, report, nil
	}
	for _, sk := range report.Skipped {
		s.logger.Debug("file skipped",
			zap.String("catalog", string(kind)),
			zap.String("path", sk.Path),
			zap.String("status", string(sk.Status)),
			zap.String("reason", sk.Reason))
	}

	if err := s.Replace(kind, catalog); err != nil {
		return nil, report, err
	}
	return catalog, report, nil
}

// ScanConfigs rebuilds the config catalog from dir.
func (s *Store) ScanConfigs(dir string) (types.Catalog, scan.Report, error) {
	return s.Scan(types.CatalogConfig, dir)
}

// ScanCode rebuilds the code catalog from dir.
func (s *Store) ScanCode(dir string) (types.Catalog, scan.Report, error) {
	return s.Scan(types.CatalogCode, dir)
}

func (s *Store) rootFor(kind types.CatalogKind) string {
	if kind == types.CatalogCode {
		return s.cfg.CodeDir
	}
	return s.cfg.ConfigDir
}

// RebuildSummary holds counts from a full index rebuild.
type RebuildSummary struct {
	ConfigsIndexed int    `json:"configs_indexed" yaml:"configs_indexed"`
	CodeIndexed    int    `json:"code_indexed" yaml:"code_indexed"`
	Skipped        int    `json:"skipped" yaml:"skipped"`
	IndexFile      string `json:"index_file" yaml:"index_file"`
}

// Total returns the number of records in the rebuilt index.
func (r RebuildSummary) Total() int {
	return r.ConfigsIndexed + r.CodeIndexed
}

// Rebuild rescans both catalogs. Empty directories fall back to the
// configured roots.
func (s *Store) Rebuild(configDir, codeDir string) (RebuildSummary, error) {
	configs, cr, err := s.ScanConfigs(configDir)
	if err != nil {
		return RebuildSummary{}, err
	}
	code, kr, err := s.ScanCode(codeDir)
	if err != nil {
		return RebuildSummary{}, err
	}

	abs, err := filepath.Abs(s.cfg.Path)
	if err != nil {
		abs = s.cfg.Path
	}
	return RebuildSummary{
		ConfigsIndexed: len(configs),
		CodeIndexed:    len(code),
		Skipped:        len(cr.Skipped) + len(kr.Skipped),
		IndexFile:      abs,
	}, nil
}

// Export writes the current index to w in the given format.
func (s *Store) Export(w io.Writer, format Format) error {
	data, err := Marshal(s.Snapshot(), format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
