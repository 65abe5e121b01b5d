package bundle

import (
	"errors"
	"testing"

	"github.com/goliatone/go-contractgen/pkg/model"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog := NewCatalog()
	for _, tpl := range []model.Template{
		{ID: "residential-lease", Name: "Residential lease", Tags: []string{"housing"}},
		{ID: "compraventa", Name: "Contrato de compraventa", Description: "Compraventa de bienes"},
		{ID: "nda", Name: "Mutual NDA", Description: "Confidentiality agreement"},
	} {
		if err := catalog.Add(tpl); err != nil {
			t.Fatalf("add %s: %v", tpl.ID, err)
		}
	}
	return catalog
}

func TestCatalogGet(t *testing.T) {
	catalog := newTestCatalog(t)

	if _, err := catalog.Get("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if tpl, err := catalog.Get(" nda "); err != nil || tpl.Name != "Mutual NDA" {
		t.Fatalf("get nda = %+v, %v", tpl, err)
	}
	if err := catalog.Add(model.Template{ID: ""}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestCatalogSearch(t *testing.T) {
	catalog := newTestCatalog(t)

	tests := []struct {
		query string
		first string
		count int
	}{
		{query: "", first: "compraventa", count: 3},
		{query: "lease", first: "residential-lease", count: 1},
		{query: "CONFIDENT", first: "nda", count: 1},
		{query: "housing", first: "residential-lease", count: 1},
		{query: "zzzz", count: 0},
	}
	for _, tt := range tests {
		got := catalog.Search(tt.query)
		if len(got) != tt.count {
			t.Fatalf("Search(%q) returned %d results, want %d", tt.query, len(got), tt.count)
		}
		if tt.count > 0 && got[0].ID != tt.first {
			t.Fatalf("Search(%q) first = %q, want %q", tt.query, got[0].ID, tt.first)
		}
	}
}
