// Package render turns a contract template into display text.
//
// Render runs a fixed pipeline over the parsed token list: numbering
// directives receive ordinals, variables become filled or empty wrappers,
// capsules are kept or removed according to the selection, and signature
// blocks are stripped. Each stage returns a new segment list so the stages
// can be tested in isolation. A Formatter decides the concrete output (HTML,
// plain text or markdown).
//
// The package also defines the Renderer contract and Registry used by the
// output renderers under pkg/renderers.
package render
