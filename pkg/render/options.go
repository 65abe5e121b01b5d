package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contractgen/pkg/model"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the document.
type RenderOptions struct {
	// Ordinals selects the clause label sequence. The zero value uses
	// EnglishOrdinals.
	Ordinals OrdinalTable
	// AllowMarkup lets authored HTML in the template through the sanitiser
	// instead of escaping it. Only HTML renderers honour it.
	AllowMarkup bool
	// Labeler derives the label shown for empty fields. Nil uses
	// model.DefaultLabeler.
	Labeler model.Labeler
	// Theme carries resolved theme tokens and partials.
	Theme *theme.RendererConfig
	// Fragment asks page renderers for the document body only.
	Fragment bool
}
