// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tradedesk/pkg/types"
)

// QueryFile is the on-disk form of a search and its matches. An operator
// can save a search while answering an inquiry and attach or replay it
// later without the index that produced it.
type QueryFile struct {
	Query   QueryParams  `yaml:"query"`
	Matches []Match      `yaml:"matches"`
	Summary QuerySummary `yaml:"summary"`
}

// QueryParams stores the query in a serializable form.
type QueryParams struct {
	Text    string                `yaml:"text"`
	Terms   []string              `yaml:"terms"`
	Catalog types.CatalogSelector `yaml:"catalog"`
}

// QuerySummary stores match counts, the index consulted and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Configs   int       `yaml:"configs"`
	Code      int       `yaml:"code"`
	IndexFile string    `yaml:"index_file,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// NewQueryFile builds the saved form of a search run at t.
func NewQueryFile(query string, sel types.CatalogSelector, matches []Match, indexFile string, t time.Time) QueryFile {
	qf := QueryFile{
		Query: QueryParams{
			Text:    query,
			Terms:   Terms(query),
			Catalog: sel,
		},
		Matches: matches,
		Summary: QuerySummary{
			Total:     len(matches),
			IndexFile: indexFile,
			Timestamp: t.UTC(),
		},
	}
	if qf.Query.Terms == nil {
		qf.Query.Terms = []string{}
	}
	if qf.Matches == nil {
		qf.Matches = []Match{}
	}
	for _, m := range matches {
		if m.Catalog == types.CatalogCode {
			qf.Summary.Code++
		} else {
			qf.Summary.Configs++
		}
	}
	return qf
}

// WriteQueryFile saves qf to path as YAML.
func WriteQueryFile(path string, qf QueryFile) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing query file: %w", err)
	}
	return nil
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Rerun runs the saved query against snap.
func (qf *QueryFile) Rerun(snap types.Snapshot) []Match {
	sel := qf.Query.Catalog
	if sel == "" {
		sel = types.SelectAll
	}
	return Search(snap, qf.Query.Text, sel)
}
