package bundle

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contractgen/pkg/model"
)

func TestValidateAcceptsWellFormedTemplate(t *testing.T) {
	tpl := model.Template{
		ID:       "ok",
		Text:     "[CAPSULA: A]NUMERACION: A1[/CAPSULA]",
		Capsules: []model.Capsule{{ID: 1, Slug: "a", Title: "A"}},
		Numbering: []model.NumberingDirective{
			{Order: 1, Title: "A1", InCapsule: true, CapsuleSlug: "a"},
		},
	}
	if err := Validate(tpl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	tpl := model.Template{
		ID:   "bad",
		Text: "body",
		Capsules: []model.Capsule{
			{ID: 1, Slug: "a", Title: "Same"},
			{ID: 1, Slug: "a", Title: "Same"},
			{ID: 2, Slug: "b", Title: " "},
		},
		Numbering: []model.NumberingDirective{
			{Order: 1, Title: ""},
			{Order: 2, Title: "X", InCapsule: true},
			{Order: 3, Title: "Y", InCapsule: true, CapsuleSlug: "ghost"},
		},
	}

	err := Validate(tpl)
	if err == nil {
		t.Fatalf("expected error")
	}

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined errors, got %T", err)
	}
	var fields []string
	for _, e := range joined.Unwrap() {
		var verr *ValidationError
		if !errors.As(e, &verr) {
			t.Fatalf("unexpected error type %T", e)
		}
		fields = append(fields, verr.Field)
	}
	want := []string{
		"capsules[1].id",
		"capsules[1].slug",
		"capsules[1].title",
		"capsules[2].title",
		"numbering[0].title",
		"numbering[1].capsule_slug",
		"numbering[2].capsule_slug",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRequiresIDAndText(t *testing.T) {
	err := Validate(model.Template{})
	want := `bundle: id: is required` + "\n" + `bundle: text: is required`
	if err == nil || err.Error() != want {
		t.Fatalf("error = %v, want %q", err, want)
	}
}
