package render

import (
	"context"

	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/variables"
)

// Renderer converts a contract document into a byte representation (HTML,
// plain text, terminal output).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc Document, options RenderOptions) ([]byte, error)
}

// Document is a template together with the state collected so far. Variables
// holds the live variable list; renderers extract it when empty.
type Document struct {
	Template  model.Template
	State     model.State
	Variables []string
}

// Live returns the document's variable list, extracting it from the template
// when the caller did not supply one.
func (d Document) Live() []string {
	if d.Variables != nil {
		return d.Variables
	}
	return variables.Extract(d.Template.Text, d.Template.Capsules, d.State.Selected)
}

// Request builds the engine request for the document.
func (d Document) Request(formatter Formatter, options RenderOptions) Request {
	return Request{
		Template:    d.Template.Text,
		Values:      d.State.Values,
		Variables:   d.Live(),
		Capsules:    d.Template.Capsules,
		Selected:    d.State.Selected,
		Numbering:   d.Template.Numbering,
		ActiveField: d.State.ActiveField,
		Formatter:   formatter,
		Ordinals:    options.Ordinals,
		Labeler:     options.Labeler,
	}
}
