// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/tradedesk/pkg/types"
)

func TestQueryFile_RoundTrip(t *testing.T) {
	snap := testSnapshot()
	matches := Search(snap, "settlement, audit", types.SelectAll)
	at := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	qf := NewQueryFile("settlement, audit", types.SelectAll, matches, "/srv/metadata_index.json", at)

	if qf.Summary.Total != 3 || qf.Summary.Configs != 1 || qf.Summary.Code != 2 {
		t.Fatalf("summary = %+v, want total 3, configs 1, code 2", qf.Summary)
	}
	if !reflect.DeepEqual(qf.Query.Terms, []string{"settlement", "audit"}) {
		t.Errorf("terms = %v", qf.Query.Terms)
	}

	path := filepath.Join(t.TempDir(), "q.yaml")
	if err := WriteQueryFile(path, qf); err != nil {
		t.Fatalf("WriteQueryFile: %v", err)
	}
	got, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile: %v", err)
	}
	if !reflect.DeepEqual(*got, qf) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", *got, qf)
	}
}

func TestQueryFile_Rerun(t *testing.T) {
	qf := NewQueryFile("holdings", types.SelectConfig, nil, "", time.Now())
	if len(qf.Matches) != 0 {
		t.Fatalf("expected empty matches, got %d", len(qf.Matches))
	}

	got := paths(qf.Rerun(testSnapshot()))
	want := []string{"config:positions.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rerun = %v, want %v", got, want)
	}

	qf.Query.Catalog = ""
	if len(qf.Rerun(testSnapshot())) != 1 {
		t.Errorf("empty catalog should search all catalogs")
	}
}

func TestReadQueryFile_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadQueryFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("query: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadQueryFile(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}
