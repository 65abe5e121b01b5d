// Package text renders contracts as plain text, the form handed to document
// storage and PDF generation once a preview is approved.
package text

import (
	"context"
	"strings"

	"github.com/goliatone/go-contractgen/pkg/render"
)

// Name is the registry name of the text renderer.
const Name = "text"

// Renderer writes filled values verbatim and empty fields as [Label].
type Renderer struct{}

// New returns the plain text renderer.
func New() *Renderer {
	return &Renderer{}
}

func (*Renderer) Name() string {
	return Name
}

func (*Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (*Renderer) Render(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := render.Render(doc.Request(render.PlainFormatter{}, options))
	return []byte(tidy(result.Text)), nil
}

// tidy collapses the blank lines left behind by removed blocks and ends the
// document with a single newline.
func tidy(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.Trim(strings.Join(out, "\n"), "\n") + "\n"
}
