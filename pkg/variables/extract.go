package variables

import (
	"github.com/goliatone/go-contractgen/pkg/markers"
	"github.com/goliatone/go-contractgen/pkg/model"
)

// Extract returns the live variable names of a template. Names referenced
// inside the block of a capsule that is not selected are excluded, and
// reserved numbering names are never returned.
func Extract(text string, capsules []model.Capsule, selected []int) []string {
	return FromDocument(markers.Parse(text), capsules, selected)
}

// FromDocument is Extract over an already parsed template.
func FromDocument(doc markers.Document, capsules []model.Capsule, selected []int) []string {
	excluded := excludedNames(doc, capsules, selected)

	var out []string
	seen := make(map[string]struct{})
	for _, tok := range doc.Tokens {
		if tok.Kind != markers.KindVariable {
			continue
		}
		name := tok.Name
		if !fillable(name) {
			continue
		}
		if _, skip := excluded[name]; skip {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// excludedNames collects every variable referenced inside the span of an
// unselected capsule. Capsules without a matching marker contribute nothing,
// and when two capsules share a title the first one listed owns its markers.
func excludedNames(doc markers.Document, capsules []model.Capsule, selected []int) map[string]struct{} {
	excluded := make(map[string]struct{})
	chosen := model.SelectedSet(selected)

	owners := make([]model.Capsule, 0, len(capsules))
	titles := make([]string, 0, len(capsules))
	seen := make(map[string]struct{}, len(capsules))
	for _, c := range capsules {
		if _, dup := seen[c.Title]; dup {
			continue
		}
		seen[c.Title] = struct{}{}
		owners = append(owners, c)
		titles = append(titles, c.Title)
	}

	for i, owner := range doc.BindCapsules(titles) {
		if owner < 0 {
			continue
		}
		if _, ok := chosen[owners[owner].ID]; ok {
			continue
		}
		span := doc.Capsules[i]
		for j := span.Start + 1; j < span.End; j++ {
			if tok := doc.Tokens[j]; tok.Kind == markers.KindVariable && tok.Name != "" {
				excluded[tok.Name] = struct{}{}
			}
		}
	}
	return excluded
}

func fillable(name string) bool {
	return name != "" && !markers.IsNumberingName(name)
}
