// Package orchestrator wires the catalog, variable extraction, contract
// rendering, theming and output renderers behind a single entry point that
// is friendly to dependency injection.
package orchestrator
