package contractgen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contractgen/pkg/markers"
	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/orchestrator"
	"github.com/goliatone/go-contractgen/pkg/render"
	"github.com/goliatone/go-contractgen/pkg/variables"
)

// Template is a contract template; alias exported via the root package for
// convenience.
type Template = model.Template

// Capsule is an optional clause a user can add to a contract.
type Capsule = model.Capsule

// NumberingDirective declares one clause heading in document order.
type NumberingDirective = model.NumberingDirective

// State is the user's answers and capsule selection.
type State = model.State

// Field is a live variable with its display label.
type Field = variables.Field

// Issue is a non-fatal diagnostic produced while parsing or rendering.
type Issue = markers.Issue

// RenderOptions describes per-request overrides for output renderers.
type RenderOptions = render.RenderOptions

// ExtractVariables returns the fillable variable names of a template in
// first-appearance order, hiding variables of unselected capsules.
func ExtractVariables(text string, capsules []Capsule, selected []int) []string {
	return variables.Extract(text, capsules, selected)
}

// Render resolves a template for the given state and returns the HTML body.
// It never fails; problems are reported as issues.
func Render(tpl Template, state State, ordinals render.OrdinalTable) (string, []Issue) {
	result := render.Render(render.Document{Template: tpl, State: state}.Request(render.HTMLFormatter{}, render.RenderOptions{Ordinals: ordinals}))
	return result.Text, result.Issues
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders a template to a full HTML preview page. It is the
// simplest entry point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, tpl Template, state State, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Template: &tpl,
		State:    state,
		Renderer: "html",
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
