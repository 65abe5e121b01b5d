// Package bundle loads contract templates from JSON or YAML bundle files and
// keeps them in a searchable catalog.
//
// A bundle file holds one template. The template text may be inline (text)
// or stored next to the bundle (text_file). Validate checks the authoring
// rules the render engine relies on but does not enforce itself, such as
// unique capsule titles.
package bundle
