package render

import (
	"fmt"
	"html"
	"strconv"
)

// Formatter decides how each resolved piece of a template is written out.
// Implementations must be pure: the same input always yields the same text.
type Formatter interface {
	// Literal writes template text that carries no marker.
	Literal(text string) string
	// Filled writes a variable that has a value. Active is set for the field
	// the user is currently editing.
	Filled(name, value string, active bool) string
	// Empty writes a variable that still needs a value.
	Empty(name, label string) string
	// Clause writes a numbered clause heading.
	Clause(position int, label, title string) string
}

// Finalizer is implemented by formatters that post-process the assembled
// output.
type Finalizer interface {
	Finalize(output string) string
}

// HTMLFormatter emits inline wrappers that keep the variable name in a
// data-variable attribute and mark filled and empty fields with distinct
// classes.
type HTMLFormatter struct {
	// AllowMarkup passes template text through unescaped and sanitises the
	// final document instead.
	AllowMarkup bool
}

func (f HTMLFormatter) Literal(text string) string {
	if f.AllowMarkup {
		return text
	}
	return html.EscapeString(text)
}

func (HTMLFormatter) Filled(name, value string, active bool) string {
	if active {
		return fmt.Sprintf(`<span class="cg-var cg-var--filled cg-var--active" data-variable="%s" data-active="true">%s</span>`,
			html.EscapeString(name), html.EscapeString(value))
	}
	return fmt.Sprintf(`<span class="cg-var cg-var--filled" data-variable="%s">%s</span>`,
		html.EscapeString(name), html.EscapeString(value))
}

func (HTMLFormatter) Empty(name, label string) string {
	return fmt.Sprintf(`<span class="cg-var cg-var--empty" data-variable="%s">[%s]</span>`,
		html.EscapeString(name), html.EscapeString(label))
}

func (HTMLFormatter) Clause(position int, label, title string) string {
	return `<strong class="cg-clause" data-clause="` + strconv.Itoa(position) + `">` +
		html.EscapeString(label+": "+title) + `</strong>`
}

func (f HTMLFormatter) Finalize(output string) string {
	if !f.AllowMarkup {
		return output
	}
	return sanitizeDocument(output)
}

// PlainFormatter writes values as-is and empty fields as bracketed labels.
type PlainFormatter struct{}

func (PlainFormatter) Literal(text string) string { return text }

func (PlainFormatter) Filled(_, value string, _ bool) string { return value }

func (PlainFormatter) Empty(_, label string) string { return "[" + label + "]" }

func (PlainFormatter) Clause(_ int, label, title string) string { return label + ": " + title }

// MarkdownFormatter highlights values and clause headings with emphasis.
type MarkdownFormatter struct{}

func (MarkdownFormatter) Literal(text string) string { return text }

func (MarkdownFormatter) Filled(_, value string, _ bool) string {
	if value == "" {
		return value
	}
	return "**" + value + "**"
}

func (MarkdownFormatter) Empty(_, label string) string { return "_[" + label + "]_" }

func (MarkdownFormatter) Clause(_ int, label, title string) string {
	return "**" + label + ": " + title + "**"
}

// FormatterFor returns the formatter registered under a short name: "html",
// "text" or "markdown". Unknown names resolve to HTMLFormatter.
func FormatterFor(name string, allowMarkup bool) Formatter {
	switch name {
	case "text", "plain":
		return PlainFormatter{}
	case "markdown", "md":
		return MarkdownFormatter{}
	default:
		return HTMLFormatter{AllowMarkup: allowMarkup}
	}
}
