package index

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "symbols.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_ReplaceAndSearch(t *testing.T) {
	s := openTestStore(t)
	ix := buildTestIndex(t)

	if err := s.Replace(ix); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search("widget", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("no results for widget")
	}
	// Exact name matches sort first.
	if results[0].Name != "Widget" {
		t.Errorf("first result = %s, want Widget", results[0].Name)
	}
	if results[0].Namespace != "App" || results[0].Version != "1.0" {
		t.Errorf("result namespace = %s-%s", results[0].Namespace, results[0].Version)
	}
}

func TestStore_ReplaceIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ix := buildTestIndex(t)

	if err := s.Replace(ix); err != nil {
		t.Fatal(err)
	}
	if err := s.Replace(ix); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search("init", "", 50)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, r := range results {
		if r.Name == "init" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("init indexed %d times after re-index, want 1", count)
	}
}

func TestStore_LookupIdentifier(t *testing.T) {
	s := openTestStore(t)
	if err := s.Replace(buildTestIndex(t)); err != nil {
		t.Fatal(err)
	}

	sym, err := s.LookupIdentifier("app_widget_show_all")
	if err != nil {
		t.Fatal(err)
	}
	if sym == nil {
		t.Fatal("identifier not found")
	}
	if sym.Name != "show_all" || sym.Kind != "method" {
		t.Errorf("symbol = %+v", sym)
	}

	missing, err := s.LookupIdentifier("does_not_exist")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown identifier, got %+v", missing)
	}
}

func TestStore_NamespaceFilter(t *testing.T) {
	s := openTestStore(t)
	if err := s.Replace(buildTestIndex(t)); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search("widget", "Other", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("namespace filter leaked %d results", len(results))
	}
}

func TestStore_Namespaces(t *testing.T) {
	s := openTestStore(t)
	if err := s.Replace(buildTestIndex(t)); err != nil {
		t.Fatal(err)
	}

	names, err := s.Namespaces()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "App-1.0" {
		t.Errorf("namespaces = %v, want [App-1.0]", names)
	}
}
