package template

import (
	"io"
)

// TemplateRenderer executes named layout templates or inline template
// content. When writers are supplied the rendered output is also written to
// each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
