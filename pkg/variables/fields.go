package variables

import (
	"github.com/goliatone/go-contractgen/pkg/markers"
	"github.com/goliatone/go-contractgen/pkg/model"
)

// Field describes a fillable template variable for form layout.
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Hint  string `json:"hint,omitempty"`
}

// Fields returns the live variables of a template with display labels and
// the first inline hint found for each name. A nil labeler falls back to
// model.DefaultLabeler.
func Fields(text string, capsules []model.Capsule, selected []int, labeler model.Labeler) []Field {
	doc := markers.Parse(text)
	return FieldsFromDocument(doc, FromDocument(doc, capsules, selected), labeler)
}

// FieldsFromDocument decorates an extracted name list with labels and hints.
func FieldsFromDocument(doc markers.Document, names []string, labeler model.Labeler) []Field {
	if labeler == nil {
		labeler = model.DefaultLabeler
	}

	hints := make(map[string]string, len(names))
	for _, tok := range doc.Tokens {
		if tok.Kind != markers.KindVariable || tok.Hint == "" {
			continue
		}
		if _, ok := hints[tok.Name]; !ok {
			hints[tok.Name] = tok.Hint
		}
	}

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{
			Name:  name,
			Label: labeler(name),
			Hint:  hints[name],
		})
	}
	return fields
}

// Completion returns the share of variables with a non-empty value, between
// 0 and 1, using the same filled rule as the renderer. An empty variable list
// reports 0.
func Completion(names []string, values map[string]string) float64 {
	if len(names) == 0 {
		return 0
	}
	filled := 0
	for _, name := range names {
		if values[name] != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(names))
}

// Missing lists the variables that still have no value, in field order.
func Missing(names []string, values map[string]string) []string {
	var out []string
	for _, name := range names {
		if values[name] == "" {
			out = append(out, name)
		}
	}
	return out
}
