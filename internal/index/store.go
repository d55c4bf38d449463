// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists the metadata index: a config catalog and a code
// catalog, loaded and saved as a whole to a single human-readable file.
//
// A scan replaces one catalog wholesale and saves synchronously, so the
// file and the in-memory state are identical whenever a Replace returns.
// Reads never save.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tradedesk/pkg/types"
)

// ErrCorrupt is returned (wrapped) by Load when the index file exists but
// cannot be parsed.
var ErrCorrupt = errors.New("index file is corrupt")

// Format is the on-disk encoding of the index.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a user-supplied name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml", "":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q: use yaml or json", s)
}

// FormatFor picks the encoding from the file extension: .yaml and .yml
// are YAML, everything else JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Marshal encodes a snapshot. Map keys are emitted in sorted order by both
// encoders, so equal snapshots always produce identical bytes.
func Marshal(snap types.Snapshot, format Format) ([]byte, error) {
	snap = normalize(snap)
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(&snap)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(&snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	}
}

func normalize(snap types.Snapshot) types.Snapshot {
	if snap.Configs == nil {
		snap.Configs = types.Catalog{}
	}
	if snap.Code == nil {
		snap.Code = types.Catalog{}
	}
	return snap
}

// Load reads the index at path. A missing file yields an empty snapshot
// and no error. A file that cannot be parsed yields an empty snapshot and
// an error wrapping ErrCorrupt.
func Load(path string) (types.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.EmptySnapshot(), nil
		}
		return types.EmptySnapshot(), fmt.Errorf("reading index %s: %w", path, err)
	}

	var snap types.Snapshot
	switch FormatFor(path) {
	case FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	default:
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return types.EmptySnapshot(), fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	return normalize(snap), nil
}

// write saves snap to path through a temporary file in the same directory
// so a crash mid-write leaves the previous index intact.
func write(path string, snap types.Snapshot) error {
	data, err := Marshal(snap, FormatFor(path))
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp index file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing index %s: %w", path, err)
	}
	return nil
}

// Store owns the in-memory index and its file. It is safe for concurrent
// use: catalogs are swapped whole under a lock and never mutated in place.
type Store struct {
	mu     sync.RWMutex
	cfg    types.IndexConfig
	snap   types.Snapshot
	logger *zap.Logger
}

// Open loads the index named by cfg.Path. A missing file starts an empty
// index. A corrupt file also starts an empty index with a warning, unless
// cfg.Strict is set, in which case Open fails. A file that exists but
// cannot be read always fails, since the next save would replace it.
func Open(cfg types.IndexConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Path == "" {
		cfg.Path = types.DefaultConfig().Index.Path
	}

	snap, err := Load(cfg.Path)
	if err != nil {
		if !errors.Is(err, ErrCorrupt) || cfg.Strict {
			return nil, err
		}
		logger.Warn("index file is corrupt, starting from an empty index",
			zap.String("path", cfg.Path), zap.Error(err))
	}

	logger.Debug("index loaded",
		zap.String("path", cfg.Path),
		zap.Int("configs", len(snap.Configs)),
		zap.Int("code", len(snap.Code)))

	return &Store{cfg: cfg, snap: snap, logger: logger}, nil
}

// Path returns the index file path.
func (s *Store) Path() string {
	return s.cfg.Path
}

// Snapshot returns the current catalogs. The returned maps are shared with
// the store and must not be modified; a later Replace swaps in new maps
// rather than changing these.
func (s *Store) Snapshot() types.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Catalog returns the current catalog of the given kind.
func (s *Store) Catalog(kind types.CatalogKind) types.Catalog {
	return s.Snapshot().Catalog(kind)
}

// Replace swaps in a copy of catalog as the new partition for kind and
// saves the index. If the save fails the previous catalog is kept, so
// memory and disk never disagree. The caller keeps ownership of catalog.
func (s *Store) Replace(kind types.CatalogKind, catalog types.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap
	switch kind {
	case types.CatalogConfig:
		next.Configs = catalog.Clone()
	case types.CatalogCode:
		next.Code = catalog.Clone()
	default:
		return fmt.Errorf("unknown catalog kind %q", kind)
	}

	if err := s.save(next); err != nil {
		return err
	}
	s.snap = next

	s.logger.Info("catalog replaced",
		zap.String("catalog", string(kind)),
		zap.Int("records", len(catalog)),
		zap.String("path", s.cfg.Path))
	return nil
}

// Save writes the current catalogs to the index file.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save(s.snap)
}

func (s *Store) save(snap types.Snapshot) error {
	if err := write(s.cfg.Path, snap); err != nil {
		return err
	}
	s.logger.Debug("index saved", zap.String("path", s.cfg.Path))
	return nil
}
