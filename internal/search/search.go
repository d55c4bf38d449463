// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search finds indexed artifacts whose metadata mentions any of
// the query terms. Matching is plain substring containment over a record's
// searchable text; there is no stemming and no ranking.
package search

import (
	"regexp"
	"strings"

	"github.com/pdiddy/tradedesk/pkg/types"
)

// Match is one search hit.
type Match struct {
	Catalog types.CatalogKind    `json:"catalog" yaml:"catalog"`
	Path    string               `json:"path" yaml:"path"`
	Record  types.ArtifactRecord `json:"record" yaml:"record"`
}

var termSep = regexp.MustCompile(`[,\s]+`)

// Terms splits a raw query on commas and whitespace into lower-cased
// terms. Empty terms are dropped.
func Terms(query string) []string {
	var terms []string
	for _, t := range termSep.Split(query, -1) {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// Searchable returns the lower-cased text a record is matched against:
// keywords, kind, description and file name joined by spaces.
func Searchable(r types.ArtifactRecord) string {
	return strings.ToLower(strings.Join([]string{
		strings.Join(r.Keywords, " "),
		r.Kind,
		r.Description,
		r.FileName,
	}, " "))
}

// matchesAny reports whether any term is a substring of text.
func matchesAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// Search returns every record in the selected catalogs whose searchable
// text contains at least one query term. Config matches come before code
// matches, each in catalog path order. A query with no terms matches
// nothing.
func Search(snap types.Snapshot, query string, sel types.CatalogSelector) []Match {
	terms := Terms(query)
	if len(terms) == 0 {
		return nil
	}

	var matches []Match
	for _, kind := range []types.CatalogKind{types.CatalogConfig, types.CatalogCode} {
		if !sel.Includes(kind) {
			continue
		}
		catalog := snap.Catalog(kind)
		for _, path := range catalog.Paths() {
			rec := catalog[path]
			if matchesAny(Searchable(rec), terms) {
				matches = append(matches, Match{Catalog: kind, Path: path, Record: rec})
			}
		}
	}
	return matches
}
