// Package model defines the contract template data consumed by the marker
// parser, the variable extractor, and the renderer. A Template bundles the raw
// template text with the capsules (optional, priced clause blocks) and the
// numbering directives returned by the contract backend. State carries the
// per-render user input: field values, selected capsule ids, and the focused
// field. Capsules are correlated with their `[CAPSULA: <title>]` markers by
// exact title, so titles must stay unique within a template; the bundle
// loader rejects duplicates before a template reaches the engine.
package model
