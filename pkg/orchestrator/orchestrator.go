package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contractgen/pkg/bundle"
	"github.com/goliatone/go-contractgen/pkg/markers"
	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/preview"
	"github.com/goliatone/go-contractgen/pkg/render"
	"github.com/goliatone/go-contractgen/pkg/renderers/html"
	"github.com/goliatone/go-contractgen/pkg/renderers/terminal"
	"github.com/goliatone/go-contractgen/pkg/renderers/text"
	"github.com/goliatone/go-contractgen/pkg/variables"
)

const defaultRendererName = html.Name

// ErrTemplateNotFound is returned when a request names a template the catalog
// does not hold, or names none at all.
var ErrTemplateNotFound = errors.New("orchestrator: template not found")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog supplies the templates requests can refer to by id.
func WithCatalog(catalog *bundle.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithOrdinals sets the clause label sequence.
func WithOrdinals(table render.OrdinalTable) Option {
	return func(o *Orchestrator) {
		o.ordinals = table
	}
}

// WithAllowMarkup lets authored HTML through the sanitiser in HTML output.
func WithAllowMarkup(allow bool) Option {
	return func(o *Orchestrator) {
		o.allowMarkup = allow
	}
}

// WithLabeler overrides how field labels are derived from variable names.
func WithLabeler(labeler model.Labeler) Option {
	return func(o *Orchestrator) {
		o.labeler = labeler
	}
}

// WithThemeSelector resolves theme and variant names into renderer theme
// configuration ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks sets partials used when the selected theme does not
// provide them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = copyStringMap(fallbacks)
	}
}

// WithMemoSize bounds the number of cached previews.
func WithMemoSize(size int) Option {
	return func(o *Orchestrator) {
		o.memoSize = size
	}
}

// Orchestrator coordinates template lookup, rendering and theming. It applies
// defaults (html, text and terminal renderers, English ordinals) while
// remaining open to dependency injection.
type Orchestrator struct {
	catalog         *bundle.Catalog
	registry        *render.Registry
	defaultRenderer string
	ordinals        render.OrdinalTable
	allowMarkup     bool
	labeler         model.Labeler
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	memoSize        int
	memo            *preview.Memo[Preview]
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		ordinals:        render.EnglishOrdinals,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request identifies a template and the state to render it with.
type Request struct {
	// TemplateID selects a catalog template. Ignored when Template is set.
	TemplateID string

	// Template lets callers render a template that is not in the catalog.
	Template *model.Template

	State model.State

	// Renderer names the output renderer. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	ThemeName    string
	ThemeVariant string

	// Fragment asks page renderers for the document body only.
	Fragment bool
}

// Preview is the live view of a template for a state: the HTML body plus
// the form data that surrounds it.
type Preview struct {
	Text       string            `json:"text"`
	Variables  []string          `json:"variables"`
	Fields     []variables.Field `json:"fields"`
	Ordinals   map[int]string    `json:"ordinals,omitempty"`
	Completion float64           `json:"completion"`
	Missing    []string          `json:"missing,omitempty"`
	Issues     []markers.Issue   `json:"issues,omitempty"`
}

// Catalog exposes the template catalog.
func (o *Orchestrator) Catalog() *bundle.Catalog {
	return o.catalog
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Template resolves the template a request refers to.
func (o *Orchestrator) Template(ctx context.Context, req Request) (model.Template, error) {
	if err := o.ready(ctx); err != nil {
		return model.Template{}, err
	}
	return o.resolveTemplate(req)
}

// Fields returns the live fields of the requested template for the request's
// capsule selection.
func (o *Orchestrator) Fields(ctx context.Context, req Request) ([]variables.Field, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	tpl, err := o.resolveTemplate(req)
	if err != nil {
		return nil, err
	}
	return variables.Fields(tpl.Text, tpl.Capsules, req.State.Selected, o.labeler), nil
}

// Preview renders the HTML body of the requested template along with its
// fields and completion. Results are cached on a hash of the inputs.
func (o *Orchestrator) Preview(ctx context.Context, req Request) (Preview, error) {
	if err := o.ready(ctx); err != nil {
		return Preview{}, err
	}
	tpl, err := o.resolveTemplate(req)
	if err != nil {
		return Preview{}, err
	}

	key, err := preview.Key(tpl, req.State, o.ordinals, o.allowMarkup)
	if err != nil {
		return Preview{}, fmt.Errorf("orchestrator: %w", err)
	}
	if cached, ok := o.memo.Get(key); ok {
		return cached, nil
	}

	doc := markers.Parse(tpl.Text)
	live := variables.FromDocument(doc, tpl.Capsules, req.State.Selected)
	result := render.RenderDocument(doc, render.Request{
		Values:      req.State.Values,
		Variables:   live,
		Capsules:    tpl.Capsules,
		Selected:    req.State.Selected,
		Numbering:   tpl.Numbering,
		ActiveField: req.State.ActiveField,
		Formatter:   render.HTMLFormatter{AllowMarkup: o.allowMarkup},
		Ordinals:    o.ordinals,
		Labeler:     o.labeler,
	})

	out := Preview{
		Text:       result.Text,
		Variables:  live,
		Fields:     variables.FieldsFromDocument(doc, live, o.labeler),
		Ordinals:   result.Ordinals,
		Completion: variables.Completion(live, req.State.Values),
		Missing:    variables.Missing(live, req.State.Values),
		Issues:     result.Issues,
	}
	o.memo.Put(key, out)
	return out, nil
}

// Generate resolves the template, theme and renderer for a request and returns
// the rendered bytes (an HTML page for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	tpl, err := o.resolveTemplate(req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	themeCfg, err := o.resolveTheme(req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, render.Document{Template: tpl, State: req.State}, render.RenderOptions{
		Ordinals:    o.ordinals,
		AllowMarkup: o.allowMarkup,
		Labeler:     o.labeler,
		Theme:       themeCfg,
		Fragment:    req.Fragment,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// ContentType reports the content type of the renderer a request resolves to.
func (o *Orchestrator) ContentType(name string) (string, error) {
	renderer, err := o.rendererFor(name)
	if err != nil {
		return "", err
	}
	return renderer.ContentType(), nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveTemplate(req Request) (model.Template, error) {
	if req.Template != nil {
		return *req.Template, nil
	}
	if req.TemplateID == "" {
		return model.Template{}, fmt.Errorf("%w: template id is required", ErrTemplateNotFound)
	}
	if o.catalog == nil {
		return model.Template{}, fmt.Errorf("%w: %q (no catalog configured)", ErrTemplateNotFound, req.TemplateID)
	}
	tpl, err := o.catalog.Get(req.TemplateID)
	if err != nil {
		if errors.Is(err, bundle.ErrTemplateNotFound) {
			return model.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, req.TemplateID)
		}
		return model.Template{}, fmt.Errorf("orchestrator: load template: %w", err)
	}
	return tpl, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err = o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.labeler == nil {
		o.labeler = model.DefaultLabeler
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}
	if o.memo == nil {
		o.memo = preview.NewMemo[Preview](o.memoSize)
	}
	if o.registry != nil {
		return
	}

	o.registry = render.NewRegistry()
	page, err := html.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	o.registry.MustRegister(page)
	o.registry.MustRegister(text.New())
	o.registry.MustRegister(terminal.New())
}

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
