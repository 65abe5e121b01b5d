// Package terminal renders contract previews for the command line by passing
// a markdown rendition through glamour.
package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/goliatone/go-contractgen/pkg/render"
)

// Name is the registry name of the terminal renderer.
const Name = "terminal"

const defaultWordWrap = 80

type Option func(*Renderer)

// WithStyle selects a glamour standard style ("dark", "light", "notty",
// "ascii", ...). The default is "auto", which detects the terminal.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		if style = strings.TrimSpace(style); style != "" {
			r.style = style
		}
	}
}

// WithWordWrap sets the wrap column.
func WithWordWrap(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.wordWrap = width
		}
	}
}

// Renderer writes ANSI-styled contract text.
type Renderer struct {
	style    string
	wordWrap int
}

// New constructs the terminal renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{style: "auto", wordWrap: defaultWordWrap}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (*Renderer) Name() string {
	return Name
}

func (*Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := render.Render(doc.Request(render.MarkdownFormatter{}, options))
	markdown := hardBreaks(result.Text)
	if doc.Template.Name != "" {
		markdown = "# " + doc.Template.Name + "\n\n" + markdown
	}

	tr, err := r.termRenderer()
	if err != nil {
		return nil, fmt.Errorf("terminal renderer: configure glamour: %w", err)
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return nil, fmt.Errorf("terminal renderer: render markdown: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) termRenderer() (*glamour.TermRenderer, error) {
	style := glamour.WithAutoStyle()
	if r.style != "auto" {
		style = glamour.WithStandardStyle(r.style)
	}
	return glamour.NewTermRenderer(style, glamour.WithWordWrap(r.wordWrap))
}

// hardBreaks keeps single newlines of the contract as line breaks in the
// rendered markdown.
func hardBreaks(text string) string {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines)-1; i++ {
		if strings.TrimSpace(lines[i]) != "" && strings.TrimSpace(lines[i+1]) != "" {
			lines[i] = strings.TrimRight(lines[i], " ") + "  "
		}
	}
	return strings.Join(lines, "\n")
}
