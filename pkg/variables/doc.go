// Package variables computes the ordered list of fields a user must fill for
// a contract template given the current capsule selection. Order is the
// first appearance of each placeholder in the template text, which is also
// the order input forms are laid out in, so the result is deterministic for
// a given template, capsule list, and selection.
package variables
