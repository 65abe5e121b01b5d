// Package markers scans contract template text into a typed token stream.
//
// Recognised markers:
//
//	{{ name }}  {{ name : hint }}        variable placeholder
//	NUMERACION: Clause title             numbering directive (also NUMERACIÓN:)
//	{{ NUMERACION: Clause title }}       braced numbering directive
//	[CAPSULA: Title] ... [/CAPSULA]      optional capsule block
//	[CAPSULA: Title | note] ...          capsule with an ignored annotation
//	[FIRMA: Label] ... [/FIRMA]          signature block
//
// Keywords are case-insensitive and whitespace around brackets, colons, and
// slashes is tolerated. Tokenize is lossless: concatenating the Raw text of
// every token reproduces the input. Parse pairs block markers; anything that
// cannot be paired is demoted to a literal token and reported as an Issue, so
// malformed templates never fail, they just render the marker text as is.
package markers
