// Package template defines the seam page renderers use to execute layout
// templates. Engines live in subpackages.
package template
