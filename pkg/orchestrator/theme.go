package orchestrator

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"contract.page":     "templates/page.tmpl",
		"contract.fragment": "templates/fragment.tmpl",
	}
}

// resolveTheme asks the selector for the requested theme. Without a selector
// no theme configuration is passed to renderers.
func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	return rendererConfig(selection, o.themeFallbacks), nil
}

// rendererConfig flattens a selection into renderer configuration. Variant
// tokens, templates and asset files override the base manifest.
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: copyStringMap(fallbacks),
	}
	if cfg.Partials == nil {
		cfg.Partials = map[string]string{}
	}

	files := map[string]string{}
	prefix := ""
	if manifest := selection.Manifest; manifest != nil {
		mergeInto(cfg.Tokens, manifest.Tokens)
		mergeInto(cfg.Partials, manifest.Templates)
		mergeInto(files, manifest.Assets.Files)
		prefix = manifest.Assets.Prefix

		if variant, ok := manifest.Variants[selection.Variant]; ok {
			mergeInto(cfg.Tokens, variant.Tokens)
			mergeInto(cfg.Partials, variant.Templates)
			mergeInto(files, variant.Assets.Files)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}
