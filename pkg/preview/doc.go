// Package preview supports live contract previews: a content-addressed memo
// for repeated renders and a session that re-renders on every state change
// while guaranteeing that a stale render never replaces a newer one.
package preview
