// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan walks a directory tree and builds a catalog of annotated
// artifacts. A single unreadable file or directory never aborts a scan;
// it is recorded in the Report and skipped.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tradedesk/internal/annotate"
	"github.com/pdiddy/tradedesk/pkg/types"
)

// skipDirs are version-control directories that never hold artifacts.
var skipDirs = map[string]bool{
	".git": true,
	".svn": true,
	".hg":  true,
}

// Skipped records one file or directory left out of a catalog.
type Skipped struct {
	Path   string          `json:"path" yaml:"path"`
	Status annotate.Status `json:"status" yaml:"status"`
	Reason string          `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Report holds counts and skip reasons from one scan.
type Report struct {
	Root    string            `json:"root" yaml:"root"`
	Kind    types.CatalogKind `json:"kind" yaml:"kind"`
	Missing bool              `json:"missing,omitempty" yaml:"missing,omitempty"`
	Matched int               `json:"matched" yaml:"matched"`
	Indexed int               `json:"indexed" yaml:"indexed"`
	Skipped []Skipped         `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// DefaultExts returns the extensions scanned for kind when none are
// configured.
func DefaultExts(kind types.CatalogKind) []string {
	if kind == types.CatalogCode {
		return []string{".java"}
	}
	return []string{".sql"}
}

func matchesExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Catalog scans root recursively for files with one of exts and extracts a
// record from each. Files without annotations are omitted. A missing root
// yields an empty catalog and no error. The returned catalog is meant to
// replace the corresponding index partition in full.
func Catalog(root string, kind types.CatalogKind, exts []string) (types.Catalog, Report, error) {
	if len(exts) == 0 {
		exts = DefaultExts(kind)
	}
	report := Report{Root: root, Kind: kind}
	catalog := types.Catalog{}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			report.Missing = true
			return catalog, report, nil
		}
		return nil, report, fmt.Errorf("reading scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, report, fmt.Errorf("scan root %s is not a directory", root)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The root itself was checked above; anything failing below it
			// is left out and the walk continues.
			rel := relPath(root, path)
			report.Skipped = append(report.Skipped, Skipped{
				Path: rel, Status: annotate.StatusUnreadable, Reason: err.Error(),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !matchesExt(d.Name(), exts) {
			return nil
		}

		report.Matched++
		out := annotate.File(root, relPath(root, path), kind)
		switch out.Status {
		case annotate.StatusIndexed:
			catalog[out.Path] = out.Record
			report.Indexed++
		default:
			sk := Skipped{Path: out.Path, Status: out.Status}
			if out.Err != nil {
				sk.Reason = out.Err.Error()
			}
			report.Skipped = append(report.Skipped, sk)
		}
		return nil
	})
	if err != nil {
		return nil, report, fmt.Errorf("walking %s: %w", root, err)
	}

	return catalog, report, nil
}

// relPath returns path relative to root with forward slashes, falling back
// to the cleaned path when it cannot be made relative.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	return filepath.ToSlash(rel)
}
