package markers

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IssueCode classifies a non-fatal template problem.
type IssueCode string

const (
	IssueUnterminatedCapsule   IssueCode = "unterminated_capsule"
	IssueStrayCapsuleEnd       IssueCode = "stray_capsule_end"
	IssueNestedCapsule         IssueCode = "nested_capsule"
	IssueUnterminatedSignature IssueCode = "unterminated_signature"
	IssueStraySignatureEnd     IssueCode = "stray_signature_end"
	IssueNestedSignature       IssueCode = "nested_signature"
	IssueUnknownCapsule        IssueCode = "unknown_capsule"
	IssueDuplicateCapsuleTitle IssueCode = "duplicate_capsule_title"
	IssueCapsuleNotFound       IssueCode = "capsule_not_found"
	IssueDirectiveNotFound     IssueCode = "directive_not_found"
	IssueUnmatchedNumbering    IssueCode = "unmatched_numbering"
)

// Issue reports a marker that could not be resolved. Offset is the byte
// position in the template text, or -1 when the issue is not tied to a
// position (for example a capsule whose marker never appears).
type Issue struct {
	Code   IssueCode `json:"code"`
	Offset int       `json:"offset"`
	Detail string    `json:"detail,omitempty"`
}

// Span identifies a paired block by the token indexes of its start and end
// markers.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the token index lies strictly between the markers.
func (s Span) Contains(index int) bool {
	return index > s.Start && index < s.End
}

// Covers reports whether the token index is one of the markers or lies
// between them.
func (s Span) Covers(index int) bool {
	return index >= s.Start && index <= s.End
}

// Document is a tokenized template with paired block markers.
type Document struct {
	Tokens     []Token
	Capsules   []Span
	Signatures []Span
	Issues     []Issue
}

// Parse tokenizes text and pairs capsule and signature markers. Each start
// pairs with the nearest following end of the same kind. A start seen while a
// block of the same kind is still open, a start without an end, and an end
// without a start are all demoted to literal text.
func Parse(text string) Document {
	tokens := Tokenize(text)
	doc := Document{Tokens: tokens}

	openCapsule, openSignature := -1, -1
	for i, tok := range tokens {
		switch tok.Kind {
		case KindCapsuleStart:
			if openCapsule >= 0 {
				doc.Issues = append(doc.Issues, Issue{Code: IssueNestedCapsule, Offset: tok.Offset, Detail: tok.Title})
				tokens[i] = tok.demote()
				continue
			}
			openCapsule = i
		case KindCapsuleEnd:
			if openCapsule < 0 {
				doc.Issues = append(doc.Issues, Issue{Code: IssueStrayCapsuleEnd, Offset: tok.Offset})
				tokens[i] = tok.demote()
				continue
			}
			doc.Capsules = append(doc.Capsules, Span{Start: openCapsule, End: i})
			openCapsule = -1
		case KindSignatureStart:
			if openSignature >= 0 {
				doc.Issues = append(doc.Issues, Issue{Code: IssueNestedSignature, Offset: tok.Offset, Detail: tok.Title})
				tokens[i] = tok.demote()
				continue
			}
			openSignature = i
		case KindSignatureEnd:
			if openSignature < 0 {
				doc.Issues = append(doc.Issues, Issue{Code: IssueStraySignatureEnd, Offset: tok.Offset})
				tokens[i] = tok.demote()
				continue
			}
			doc.Signatures = append(doc.Signatures, Span{Start: openSignature, End: i})
			openSignature = -1
		}
	}

	if openCapsule >= 0 {
		tok := tokens[openCapsule]
		doc.Issues = append(doc.Issues, Issue{Code: IssueUnterminatedCapsule, Offset: tok.Offset, Detail: tok.Title})
		tokens[openCapsule] = tok.demote()
	}
	if openSignature >= 0 {
		tok := tokens[openSignature]
		doc.Issues = append(doc.Issues, Issue{Code: IssueUnterminatedSignature, Offset: tok.Offset, Detail: tok.Title})
		tokens[openSignature] = tok.demote()
	}

	SortIssues(doc.Issues)
	return doc
}

// BindCapsules assigns every paired capsule span to one of titles and
// returns, per entry of d.Capsules, the index into titles or -1 when no
// title matches. A marker whose text equals a title binds to it, the first
// listed one winning. Otherwise the marker binds to the longest title it
// starts with, as long as whitespace follows the title in the marker.
func (d Document) BindCapsules(titles []string) []int {
	out := make([]int, len(d.Capsules))
	for i, span := range d.Capsules {
		out[i] = matchTitle(d.Tokens[span.Start].Title, titles)
	}
	return out
}

func matchTitle(marker string, titles []string) int {
	best := -1
	for i, title := range titles {
		if title == marker {
			return i
		}
		if !titlePrefix(marker, title) {
			continue
		}
		if best < 0 || len(title) > len(titles[best]) {
			best = i
		}
	}
	return best
}

func titlePrefix(marker, title string) bool {
	if title == "" || len(marker) <= len(title) || !strings.HasPrefix(marker, title) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(marker[len(title):])
	return unicode.IsSpace(next) || next == '|'
}

// CapsuleAt returns the capsule span enclosing the token index, if any.
func (d Document) CapsuleAt(index int) (Span, bool) {
	for _, span := range d.Capsules {
		if span.Contains(index) {
			return span, true
		}
	}
	return Span{}, false
}

// Text reassembles the original template text.
func (d Document) Text() string {
	size := 0
	for _, tok := range d.Tokens {
		size += len(tok.Raw)
	}
	buf := make([]byte, 0, size)
	for _, tok := range d.Tokens {
		buf = append(buf, tok.Raw...)
	}
	return string(buf)
}

// SortIssues orders issues by offset, placing position-less issues last.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i].Offset, issues[j].Offset
		if a < 0 || b < 0 {
			return a >= 0 && b < 0
		}
		return a < b
	})
}
