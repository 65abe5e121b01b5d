package markers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePairsBlocks(t *testing.T) {
	text := "A [CAPSULA: Extra]\n{{x}}\nmore\n[/CAPSULA] B [FIRMA: buyer]secret[/FIRMA]"
	doc := Parse(text)

	if len(doc.Issues) != 0 {
		t.Fatalf("unexpected issues: %+v", doc.Issues)
	}
	if len(doc.Capsules) != 1 || len(doc.Signatures) != 1 {
		t.Fatalf("expected one capsule and one signature, got %+v / %+v", doc.Capsules, doc.Signatures)
	}

	capsule := doc.Capsules[0]
	if doc.Tokens[capsule.Start].Title != "Extra" || doc.Tokens[capsule.End].Kind != KindCapsuleEnd {
		t.Fatalf("capsule span points at wrong tokens: %+v", capsule)
	}
	if got := doc.BindCapsules([]string{"extra", "Extra"}); len(got) != 1 || got[0] != 1 {
		t.Fatalf("BindCapsules = %v, want [1]", got)
	}
	if doc.Text() != text {
		t.Fatalf("document text does not round trip")
	}
}

func TestParsePairsNearestEnd(t *testing.T) {
	doc := Parse("[CAPSULA: A]a[/CAPSULA] mid [CAPSULA: B]b[/CAPSULA]")
	if len(doc.Capsules) != 2 {
		t.Fatalf("expected two capsules, got %+v", doc.Capsules)
	}
	if doc.Tokens[doc.Capsules[0].Start].Title != "A" || doc.Tokens[doc.Capsules[1].Start].Title != "B" {
		t.Fatalf("unexpected capsule order")
	}
	if doc.Capsules[0].End >= doc.Capsules[1].Start {
		t.Fatalf("first capsule must close before the second opens: %+v", doc.Capsules)
	}
}

func TestParseDemotesUnpairedMarkers(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		codes []IssueCode
	}{
		{name: "unterminated capsule", text: "[CAPSULA: A] no end", codes: []IssueCode{IssueUnterminatedCapsule}},
		{name: "stray capsule end", text: "text [/CAPSULA]", codes: []IssueCode{IssueStrayCapsuleEnd}},
		{name: "unterminated signature", text: "[FIRMA: x] dangling", codes: []IssueCode{IssueUnterminatedSignature}},
		{name: "stray signature end", text: "[/FIRMA]", codes: []IssueCode{IssueStraySignatureEnd}},
		{
			name:  "nested capsule",
			text:  "[CAPSULA: A][CAPSULA: B]x[/CAPSULA][/CAPSULA]",
			codes: []IssueCode{IssueNestedCapsule, IssueStrayCapsuleEnd},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := Parse(tc.text)

			var codes []IssueCode
			for _, issue := range doc.Issues {
				codes = append(codes, issue.Code)
			}
			if diff := cmp.Diff(tc.codes, codes); diff != "" {
				t.Fatalf("issue codes mismatch (-want +got):\n%s", diff)
			}
			if doc.Text() != tc.text {
				t.Fatalf("demoted tokens must keep their raw text")
			}
		})
	}
}

func TestParseNestedCapsuleOffsets(t *testing.T) {
	doc := Parse("[CAPSULA: A][CAPSULA: B]x[/CAPSULA][/CAPSULA]")

	want := []Issue{
		{Code: IssueNestedCapsule, Offset: 12, Detail: "B"},
		{Code: IssueStrayCapsuleEnd, Offset: 35},
	}
	if diff := cmp.Diff(want, doc.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Capsules) != 1 || doc.Capsules[0] != (Span{Start: 0, End: 3}) {
		t.Fatalf("outer capsule should close at the first end marker: %+v", doc.Capsules)
	}
	if doc.Tokens[1].Kind != KindLiteral || doc.Tokens[4].Kind != KindLiteral {
		t.Fatalf("inner start and stray end should be literal: %+v", doc.Tokens)
	}
}

func TestParseNestedSignatureStaysInsideOuterSpan(t *testing.T) {
	doc := Parse("[FIRMA: a]one[FIRMA: b]two[/FIRMA]")
	if len(doc.Signatures) != 1 {
		t.Fatalf("expected one signature span, got %+v", doc.Signatures)
	}
	span := doc.Signatures[0]
	if span.Start != 0 || doc.Tokens[span.End].Kind != KindSignatureEnd {
		t.Fatalf("outer signature should cover the inner start: %+v", span)
	}
}

func TestCapsuleAt(t *testing.T) {
	doc := Parse("before [CAPSULA: A]{{x}}[/CAPSULA] {{y}}")

	var inside, outside int = -1, -1
	for i, tok := range doc.Tokens {
		switch tok.Name {
		case "x":
			inside = i
		case "y":
			outside = i
		}
	}
	if _, ok := doc.CapsuleAt(inside); !ok {
		t.Fatalf("expected x inside capsule")
	}
	if _, ok := doc.CapsuleAt(outside); ok {
		t.Fatalf("expected y outside capsule")
	}
}

func TestSortIssuesPlacesUnpositionedLast(t *testing.T) {
	issues := []Issue{
		{Code: IssueCapsuleNotFound, Offset: -1},
		{Code: IssueStrayCapsuleEnd, Offset: 9},
		{Code: IssueNestedCapsule, Offset: 2},
	}
	SortIssues(issues)

	want := []IssueCode{IssueNestedCapsule, IssueStrayCapsuleEnd, IssueCapsuleNotFound}
	var got []IssueCode
	for _, issue := range issues {
		got = append(got, issue.Code)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestBindCapsulesMatchesTitlePrefix(t *testing.T) {
	doc := Parse("[CAPSULA: Extra (opcional)]a[/CAPSULA]" +
		"[CAPSULA: Extra grande ampliada]b[/CAPSULA]" +
		"[CAPSULA: Extra]c[/CAPSULA]" +
		"[CAPSULA: Extras]d[/CAPSULA]" +
		"[CAPSULA: Otra]e[/CAPSULA]")

	tests := []struct {
		name   string
		titles []string
		want   []int
	}{
		{
			name:   "prefix followed by space",
			titles: []string{"Extra"},
			want:   []int{0, 0, 0, -1, -1},
		},
		{
			name:   "longest prefix wins",
			titles: []string{"Extra", "Extra grande"},
			want:   []int{0, 1, 0, -1, -1},
		},
		{
			name:   "exact title beats prefix",
			titles: []string{"Extra grande", "Extra grande ampliada", "Extras"},
			want:   []int{-1, 1, -1, 2, -1},
		},
		{
			name:   "duplicate titles bind to first",
			titles: []string{"Otra", "Otra"},
			want:   []int{-1, -1, -1, -1, 0},
		},
		{
			name:   "empty title never matches",
			titles: []string{""},
			want:   []int{-1, -1, -1, -1, -1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, doc.BindCapsules(tc.titles)); diff != "" {
				t.Fatalf("bindings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
