package render

import (
	"strings"

	"github.com/goliatone/go-contractgen/pkg/markers"
	"github.com/goliatone/go-contractgen/pkg/model"
)

// Assignment is the ordinal given to one numbering directive.
type Assignment struct {
	Order       int
	Title       string
	CapsuleSlug string
	InCapsule   bool
	Position    int
	Label       string
}

// AssignOrdinals walks the directive list in order and gives each active
// directive the next position. Directives whose capsule is not selected are
// skipped and consume no position, so later clauses move up.
func AssignOrdinals(directives []model.NumberingDirective, selectedSlugs map[string]struct{}, table OrdinalTable) []Assignment {
	if table.isZero() {
		table = EnglishOrdinals
	}
	next := 1
	var out []Assignment
	for _, d := range directives {
		if d.InCapsule {
			if _, ok := selectedSlugs[d.CapsuleSlug]; !ok {
				continue
			}
		}
		out = append(out, Assignment{
			Order:       d.Order,
			Title:       d.Title,
			CapsuleSlug: d.CapsuleSlug,
			InCapsule:   d.InCapsule,
			Position:    next,
			Label:       table.Label(next),
		})
		next++
	}
	return out
}

// binding records which numbering token an assignment resolved to.
type binding struct {
	assignment Assignment
	remainder  string
}

// bindNumbering pairs assignments with numbering markers. Capsule clauses look
// inside their own capsule first and base clauses look outside capsules
// first; each falls back to any unbound marker that survives rendering.
// Markers that end up unbound and assignments that find no marker are
// reported.
func bindNumbering(doc markers.Document, assignments []Assignment, capsuleSpans map[string][]markers.Span, removed func(int) bool) (map[int]binding, []markers.Issue) {
	visible := func(i int) bool { return !removed(i) }
	bound := make(map[int]binding)
	var issues []markers.Issue

	for _, a := range assignments {
		var preferred func(int) bool
		if a.InCapsule {
			spans := capsuleSpans[a.CapsuleSlug]
			preferred = func(i int) bool { return anyContains(spans, i) && visible(i) }
		} else {
			preferred = func(i int) bool {
				_, inside := doc.CapsuleAt(i)
				return !inside && visible(i)
			}
		}

		idx, rest := findMarker(doc, bound, a.Title, preferred)
		if idx < 0 {
			idx, rest = findMarker(doc, bound, a.Title, visible)
		}
		if idx < 0 {
			issues = append(issues, markers.Issue{Code: markers.IssueDirectiveNotFound, Offset: -1, Detail: a.Title})
			continue
		}
		bound[idx] = binding{assignment: a, remainder: rest}
	}

	for i, tok := range doc.Tokens {
		if tok.Kind != markers.KindNumbering || removed(i) {
			continue
		}
		if _, ok := bound[i]; !ok {
			issues = append(issues, markers.Issue{Code: markers.IssueUnmatchedNumbering, Offset: tok.Offset, Detail: tok.Title})
		}
	}
	return bound, issues
}

func findMarker(doc markers.Document, bound map[int]binding, title string, accept func(int) bool) (int, string) {
	for i, tok := range doc.Tokens {
		if tok.Kind != markers.KindNumbering {
			continue
		}
		if _, taken := bound[i]; taken {
			continue
		}
		if !accept(i) {
			continue
		}
		if rest, ok := matchClause(tok, title); ok {
			return i, rest
		}
	}
	return -1, ""
}

// matchClause reports whether a numbering marker carries the directive title.
// The plain form matches when its clause text starts with the title and
// returns the text that follows; the braced form needs the whole title.
func matchClause(tok markers.Token, title string) (string, bool) {
	if title == "" {
		return "", false
	}
	if tok.Braced {
		return "", strings.EqualFold(tok.Title, title)
	}
	if len(tok.Title) < len(title) || !strings.EqualFold(tok.Title[:len(title)], title) {
		return "", false
	}
	return tok.Title[len(title):], true
}

func anyContains(spans []markers.Span, index int) bool {
	for _, span := range spans {
		if span.Contains(index) {
			return true
		}
	}
	return false
}
