// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the tradedesk tools:
// indexed artifact records, the persisted catalog snapshot, inquiry
// classification results, and configuration.
package types

import (
	"fmt"
	"sort"
)

// CatalogKind names one partition of the metadata index. The kind decides
// which comment dialect and file extensions apply during a scan.
type CatalogKind string

const (
	// CatalogConfig holds SQL-like configuration artifacts annotated with
	// line comments ("-- @keywords: ...").
	CatalogConfig CatalogKind = "config"

	// CatalogCode holds code classes annotated in block comments
	// ("* @keywords ...").
	CatalogCode CatalogKind = "code"
)

// ParseCatalogKind converts a user-supplied name into a CatalogKind.
// The legacy names "sql" and "java" are accepted as aliases.
func ParseCatalogKind(s string) (CatalogKind, error) {
	switch s {
	case "config", "configs", "sql":
		return CatalogConfig, nil
	case "code", "java":
		return CatalogCode, nil
	}
	return "", fmt.Errorf("unknown catalog %q: use config or code", s)
}

// CatalogSelector picks the catalogs a search runs against.
type CatalogSelector string

const (
	SelectConfig CatalogSelector = "config"
	SelectCode   CatalogSelector = "code"
	SelectAll    CatalogSelector = "all"
)

// ParseCatalogSelector converts a user-supplied name into a selector. An
// empty string selects all catalogs.
func ParseCatalogSelector(s string) (CatalogSelector, error) {
	switch s {
	case "", "all":
		return SelectAll, nil
	case "config", "configs", "sql":
		return SelectConfig, nil
	case "code", "java":
		return SelectCode, nil
	}
	return "", fmt.Errorf("unknown catalog selector %q: use config, code, or all", s)
}

// Includes reports whether the selector covers the given catalog.
func (s CatalogSelector) Includes(kind CatalogKind) bool {
	return s == SelectAll || string(s) == string(kind)
}

// ArtifactRecord is the metadata extracted from one indexed file.
type ArtifactRecord struct {
	// Path is the slash-separated path relative to the scanned root. It is
	// the record's key within its catalog.
	Path string `json:"path" yaml:"path"`

	// FileName is the base name of the file.
	FileName string `json:"file_name" yaml:"file_name"`

	// ClassName is the file stem, set for code artifacts only.
	ClassName string `json:"class_name,omitempty" yaml:"class_name,omitempty"`

	// Keywords are the comma-separated terms of the @keywords annotation,
	// trimmed, in declaration order.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Kind is the @type annotation. Empty means absent.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Description is the @description annotation. Empty means absent.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Methods lists public method names in order of appearance, duplicates
	// included. Code artifacts only.
	Methods []string `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// Searchable reports whether the record carries any signal worth indexing.
func (r ArtifactRecord) Searchable() bool {
	return len(r.Keywords) > 0 || r.Kind != ""
}

// Catalog maps a relative path to the record extracted from that file.
type Catalog map[string]ArtifactRecord

// Paths returns the catalog keys in sorted order. This is the iteration
// order used for search results and exports.
func (c Catalog) Paths() []string {
	paths := make([]string, 0, len(c))
	for p := range c {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clone returns a shallow copy of the catalog map. Records are values and
// are never mutated after a scan, so sharing their slices is safe.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Snapshot is the pair of catalogs that make up the metadata index, in the
// shape written to disk.
type Snapshot struct {
	Configs Catalog `json:"configs" yaml:"configs"`
	Code    Catalog `json:"code" yaml:"code"`
}

// EmptySnapshot returns a snapshot with both catalogs allocated and empty.
func EmptySnapshot() Snapshot {
	return Snapshot{Configs: Catalog{}, Code: Catalog{}}
}

// Catalog returns the partition for kind.
func (s Snapshot) Catalog(kind CatalogKind) Catalog {
	if kind == CatalogCode {
		return s.Code
	}
	return s.Configs
}
