package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contractgen/pkg/markers"
	"github.com/goliatone/go-contractgen/pkg/render"
	rendertemplate "github.com/goliatone/go-contractgen/pkg/render/template"
	"github.com/goliatone/go-contractgen/pkg/render/template/pongo"
	"github.com/goliatone/go-contractgen/pkg/variables"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	lang             string
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// templates/page.tmpl and templates/fragment.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLang sets the lang attribute of full pages.
func WithLang(lang string) Option {
	return func(cfg *config) {
		if lang = strings.TrimSpace(lang); lang != "" {
			cfg.lang = lang
		}
	}
}

// Renderer writes the contract preview as an HTML page or fragment.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	lang      string
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), lang: "en"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{templates: templates, lang: cfg.lang}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	live := doc.Live()
	result := render.Render(doc.Request(render.HTMLFormatter{AllowMarkup: options.AllowMarkup}, options))

	fields := variables.FieldsFromDocument(markers.Parse(doc.Template.Text), live, options.Labeler)
	fieldData := make([]map[string]any, 0, len(fields))
	filled := 0
	for _, field := range fields {
		isFilled := doc.State.Values[field.Name] != ""
		if isFilled {
			filled++
		}
		fieldData = append(fieldData, map[string]any{
			"name":   field.Name,
			"label":  field.Label,
			"hint":   field.Hint,
			"filled": isFilled,
		})
	}

	issues := make([]map[string]any, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, map[string]any{
			"code":   string(issue.Code),
			"detail": issue.Detail,
			"offset": issue.Offset,
		})
	}

	data := map[string]any{
		"lang": r.lang,
		"contract": map[string]any{
			"id":   doc.Template.ID,
			"name": doc.Template.Name,
		},
		"body":       result.Text,
		"fields":     fieldData,
		"filled":     filled,
		"total":      len(fields),
		"completion": variables.Completion(live, doc.State.Values),
		"issues":     issues,
		"stylesheet": defaultStylesheet(),
		"theme":      themeContext(options.Theme),
	}

	fragment, err := r.templates.RenderTemplate("templates/fragment.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render fragment: %w", err)
	}
	if options.Fragment {
		return []byte(fragment), nil
	}

	data["fragment"] = fragment
	page, err := r.templates.RenderTemplate("templates/page.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render page: %w", err)
	}
	return []byte(page), nil
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":       cfg.Theme,
		"variant":    cfg.Variant,
		"css_vars":   cssVarsStyle(cfg.CSSVars),
		"stylesheet": themeStylesheet(cfg),
	}
}

func themeStylesheet(cfg *theme.RendererConfig) string {
	if cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL(StylesheetAsset)
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}
