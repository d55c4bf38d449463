// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotate extracts declared metadata from an artifact's comment
// header. Config artifacts use the line-comment dialect:
//
//	-- @keywords: trade, transaction, daily_report
//	-- @type: compliance_check
//	-- @description: Daily trade reconciliation report
//
// Code artifacts use the block-comment dialect, with an optional colon:
//
//	/**
//	 * @keywords trade, settlement, report_generator
//	 * @type report_engine
//	 * @description Generates daily settlement reports
//	 */
package annotate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/tradedesk/pkg/types"
)

// Status is the per-file result of an extraction attempt.
type Status string

const (
	// StatusIndexed means the file produced a record.
	StatusIndexed Status = "indexed"

	// StatusNoAnnotations means the file was read but declared neither
	// keywords nor a type.
	StatusNoAnnotations Status = "no_annotations"

	// StatusUnreadable means the file could not be read or is not valid
	// UTF-8 text.
	StatusUnreadable Status = "unreadable"
)

// Outcome reports what happened to a single file. Record is set only when
// Status is StatusIndexed; Err is set only when Status is StatusUnreadable.
type Outcome struct {
	Path   string
	Status Status
	Record types.ArtifactRecord
	Err    error
}

// dialect holds the compiled field patterns for one comment syntax.
type dialect struct {
	keywords    *regexp.Regexp
	kind        *regexp.Regexp
	description *regexp.Regexp

	// closer ends a comment on the same line as a field, as in a
	// one-line "/** @keywords a, b */". It is not part of the value.
	closer string
}

func lineField(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)--[ \t]*@` + name + `:[ \t]*([^\r\n]*)`)
}

func blockField(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\*[ \t]*@` + name + `(?:[ \t]*:[ \t]*|[ \t]+)([^\r\n]*)`)
}

var (
	lineDialect = dialect{
		keywords:    lineField("keywords"),
		kind:        lineField("type"),
		description: lineField("description"),
	}
	blockDialect = dialect{
		keywords:    blockField("keywords"),
		kind:        blockField("type"),
		description: blockField("description"),
		closer:      "*/",
	}

	// publicMethodRe matches "public [static] [final] <type> name(" where
	// the type may carry generic arguments and array brackets.
	publicMethodRe = regexp.MustCompile(
		`\bpublic\s+(?:static\s+)?(?:final\s+)?[\w.$]+(?:\s*<[^(){};\n]*>)?(?:\s*\[\])*\s+(\w+)\s*\(`)
)

func dialectFor(kind types.CatalogKind) dialect {
	if kind == types.CatalogCode {
		return blockDialect
	}
	return lineDialect
}

// first returns the trimmed value of the first match of re in text.
func (d dialect) first(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v := strings.TrimSpace(m[1])
	if d.closer != "" {
		v = strings.TrimSpace(strings.TrimSuffix(v, d.closer))
	}
	return v
}

// splitKeywords splits a comma-separated annotation value, trimming each
// term and dropping empty ones.
func splitKeywords(value string) []string {
	var out []string
	for _, k := range strings.Split(value, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Methods returns the names of public method declarations in source, in
// order of appearance, duplicates included.
func Methods(source string) []string {
	var names []string
	for _, m := range publicMethodRe.FindAllStringSubmatch(source, -1) {
		names = append(names, m[1])
	}
	return names
}

// Extract parses text as an artifact of the given kind. path is the
// catalog-relative path recorded on the result. The boolean is false when
// the text declares neither keywords nor a type.
func Extract(text string, kind types.CatalogKind, path string) (types.ArtifactRecord, bool) {
	d := dialectFor(kind)

	fileName := filepath.Base(filepath.FromSlash(path))
	rec := types.ArtifactRecord{
		Path:        path,
		FileName:    fileName,
		Keywords:    []string{},
		Kind:        d.first(d.kind, text),
		Description: d.first(d.description, text),
	}
	if kw := splitKeywords(d.first(d.keywords, text)); len(kw) > 0 {
		rec.Keywords = kw
	}

	if kind == types.CatalogCode {
		rec.ClassName = strings.TrimSuffix(fileName, filepath.Ext(fileName))
		rec.Methods = Methods(text)
	}

	if !rec.Searchable() {
		return types.ArtifactRecord{}, false
	}
	return rec, true
}

// File reads root/relPath and extracts its record. It never returns an
// error directly: read and decode failures are reported as
// StatusUnreadable so a scan can move on to the next file.
func File(root, relPath string, kind types.CatalogKind) Outcome {
	out := Outcome{Path: relPath}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		out.Status = StatusUnreadable
		out.Err = fmt.Errorf("reading %s: %w", relPath, err)
		return out
	}
	if !utf8.Valid(data) {
		out.Status = StatusUnreadable
		out.Err = fmt.Errorf("decoding %s: not valid UTF-8", relPath)
		return out
	}

	rec, ok := Extract(string(data), kind, relPath)
	if !ok {
		out.Status = StatusNoAnnotations
		return out
	}
	out.Status = StatusIndexed
	out.Record = rec
	return out
}
