package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/model"
)

func TestAssignOrdinalsSkipsUnselectedCapsules(t *testing.T) {
	directives := []model.NumberingDirective{
		{Order: 10, Title: "Objeto"},
		{Order: 20, Title: "Garantia", InCapsule: true, CapsuleSlug: "garantia"},
		{Order: 30, Title: "Seguro", InCapsule: true, CapsuleSlug: "seguro"},
		{Order: 40, Title: "Pago"},
	}
	selected := map[string]struct{}{"seguro": {}}

	got := AssignOrdinals(directives, selected, OrdinalTable{})
	want := []Assignment{
		{Order: 10, Title: "Objeto", Position: 1, Label: "FIRST"},
		{Order: 30, Title: "Seguro", CapsuleSlug: "seguro", InCapsule: true, Position: 2, Label: "SECOND"},
		{Order: 40, Title: "Pago", Position: 3, Label: "THIRD"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("assignments mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignOrdinalsFollowsListNotOrderField(t *testing.T) {
	directives := []model.NumberingDirective{
		{Order: 3, Title: "C"},
		{Order: 1, Title: "A"},
	}

	got := AssignOrdinals(directives, nil, SpanishOrdinals)
	if got[0].Label != "PRIMERA" || got[0].Order != 3 || got[1].Label != "SEGUNDA" {
		t.Fatalf("unexpected assignments: %+v", got)
	}
}

func TestOrdinalTableLabels(t *testing.T) {
	tests := []struct {
		table    OrdinalTable
		position int
		want     string
	}{
		{EnglishOrdinals, 1, "FIRST"},
		{EnglishOrdinals, 15, "FIFTEENTH"},
		{EnglishOrdinals, 20, "TWENTIETH"},
		{EnglishOrdinals, 21, "CLAUSE 21"},
		{SpanishOrdinals, 7, "SÉPTIMA"},
		{SpanishOrdinals, 13, "DECIMOTERCERA"},
		{SpanishOrdinals, 22, "CLÁUSULA 22"},
		{OrdinalTable{Labels: []string{"ONE"}}, 2, "CLAUSE 2"},
	}
	for _, tt := range tests {
		if got := tt.table.Label(tt.position); got != tt.want {
			t.Fatalf("Label(%d) = %q, want %q", tt.position, got, tt.want)
		}
	}
	if len(EnglishOrdinals.Labels) < 15 || len(SpanishOrdinals.Labels) < 15 {
		t.Fatalf("ordinal tables must carry at least 15 labels")
	}
}

func TestOrdinalsFor(t *testing.T) {
	if got := OrdinalsFor(" ES "); got.Labels[0] != "PRIMERA" {
		t.Fatalf("expected spanish table, got %v", got.Labels[0])
	}
	if got := OrdinalsFor("fr"); got.Labels[0] != "FIRST" {
		t.Fatalf("expected english fallback, got %v", got.Labels[0])
	}
}

func TestRenderFallsBackPastOrdinalTable(t *testing.T) {
	var text string
	var directives []model.NumberingDirective
	for i := 1; i <= 21; i++ {
		title := "T" + string(rune('a'+i-1))
		text += "NUMERACION: " + title + "\n"
		directives = append(directives, model.NumberingDirective{Order: i, Title: title})
	}

	result := Render(Request{Template: text, Numbering: directives, Formatter: PlainFormatter{}})
	if got := result.Ordinals[21]; got != "CLAUSE 21" {
		t.Fatalf("ordinal 21 = %q", got)
	}
	if got := result.Ordinals[20]; got != "TWENTIETH" {
		t.Fatalf("ordinal 20 = %q", got)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("unexpected issues: %+v", result.Issues)
	}
}
