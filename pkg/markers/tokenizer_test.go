package markers

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tokenSummary struct {
	Kind       Kind
	Raw        string
	Name       string
	Hint       string
	Title      string
	Annotation string
}

func summarize(tokens []Token) []tokenSummary {
	out := make([]tokenSummary, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenSummary{
			Kind:       tok.Kind,
			Raw:        tok.Raw,
			Name:       tok.Name,
			Hint:       tok.Hint,
			Title:      tok.Title,
			Annotation: tok.Annotation,
		})
	}
	return out
}

func TestTokenizeRecognisesEveryMarker(t *testing.T) {
	text := "Hola {{ buyer_name : text }}, NUMERACION: Pago\n" +
		"[CAPSULA: Extra | opcional]x[/CAPSULA][FIRMA: buyer]s[/FIRMA]"

	want := []tokenSummary{
		{Kind: KindLiteral, Raw: "Hola "},
		{Kind: KindVariable, Raw: "{{ buyer_name : text }}", Name: "buyer_name", Hint: "text"},
		{Kind: KindLiteral, Raw: ", "},
		{Kind: KindNumbering, Raw: "NUMERACION: Pago", Title: "Pago"},
		{Kind: KindLiteral, Raw: "\n"},
		{Kind: KindCapsuleStart, Raw: "[CAPSULA: Extra | opcional]", Title: "Extra", Annotation: "opcional"},
		{Kind: KindLiteral, Raw: "x"},
		{Kind: KindCapsuleEnd, Raw: "[/CAPSULA]"},
		{Kind: KindSignatureStart, Raw: "[FIRMA: buyer]", Title: "buyer"},
		{Kind: KindLiteral, Raw: "s"},
		{Kind: KindSignatureEnd, Raw: "[/FIRMA]"},
	}

	if diff := cmp.Diff(want, summarize(Tokenize(text))); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeIsLossless(t *testing.T) {
	inputs := []string{
		"",
		"plain text only",
		"{{a}}{{b}} {{ c : d }}",
		"NUMERACIÓN: Objeto del contrato\r\nTexto [CAPSULA: A]\n{{x}}\n[/CAPSULA]",
		"{{ unterminated [CAPSULA: B] [/FIRMA] }} ]] [[",
		"ñandú {{ señal }} numeración:   Precio   \n",
	}
	for _, input := range inputs {
		var b strings.Builder
		offset := 0
		for _, tok := range Tokenize(input) {
			if tok.Offset != offset {
				t.Fatalf("token %q offset = %d, want %d (input %q)", tok.Raw, tok.Offset, offset, input)
			}
			b.WriteString(tok.Raw)
			offset = tok.End()
		}
		if b.String() != input {
			t.Fatalf("tokens do not reassemble input:\nwant %q\ngot  %q", input, b.String())
		}
	}
}

func TestTokenizeNumberingForms(t *testing.T) {
	tokens := Tokenize("numeración: Objeto  \n{{NUMERACIÓN: Precio}} RENUMERACION: no")

	var numbering []tokenSummary
	for _, tok := range summarize(tokens) {
		if tok.Kind == KindNumbering {
			numbering = append(numbering, tok)
		}
	}

	want := []tokenSummary{
		{Kind: KindNumbering, Raw: "numeración: Objeto", Title: "Objeto"},
		{Kind: KindNumbering, Raw: "{{NUMERACIÓN: Precio}}", Title: "Precio"},
	}
	if diff := cmp.Diff(want, numbering); diff != "" {
		t.Fatalf("numbering tokens mismatch (-want +got):\n%s", diff)
	}

	for _, tok := range tokens {
		if tok.Kind == KindNumbering && tok.Raw == "{{NUMERACIÓN: Precio}}" && !tok.Braced {
			t.Fatalf("expected braced directive to be flagged")
		}
	}
}

func TestTokenizeNumberingTitleStopsAtMarkers(t *testing.T) {
	tokens := Tokenize("NUMERACION: Pago {{monto}}")
	if tokens[0].Kind != KindNumbering || tokens[0].Title != "Pago" {
		t.Fatalf("unexpected first token: %+v", tokens[0])
	}
	if tokens[1].Kind != KindLiteral || tokens[1].Raw != " " {
		t.Fatalf("expected trailing space literal, got %+v", tokens[1])
	}
	if tokens[2].Kind != KindVariable || tokens[2].Name != "monto" {
		t.Fatalf("expected variable after clause title, got %+v", tokens[2])
	}
}

func TestTokenizeWhitespaceTolerantBrackets(t *testing.T) {
	tokens := Tokenize("[ capsula : Garantía ]texto[ / CAPSULA ][ Firma :Comprador][/firma]")

	kinds := make([]Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []Kind{KindCapsuleStart, KindLiteral, KindCapsuleEnd, KindSignatureStart, KindSignatureEnd}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if tokens[0].Title != "Garantía" {
		t.Fatalf("capsule title = %q", tokens[0].Title)
	}
	if tokens[3].Title != "Comprador" {
		t.Fatalf("signature label = %q", tokens[3].Title)
	}
}

func TestTokenizeLeavesMalformedMarkersAsLiteral(t *testing.T) {
	cases := []string{
		"{{ open without close",
		"[nota] al margen",
		"[CAPSULA sin dos puntos]",
		"[CAPSULA: multi\nline]",
		"{ single } braces",
	}
	for _, input := range cases {
		for _, tok := range Tokenize(input) {
			if tok.Kind != KindLiteral {
				t.Fatalf("input %q produced %s token %q", input, tok.Kind, tok.Raw)
			}
		}
	}
}

func TestTokenizeRestartsAfterBrokenVariable(t *testing.T) {
	tokens := Tokenize("{{ a {{b}}")
	want := []tokenSummary{
		{Kind: KindLiteral, Raw: "{{ a "},
		{Kind: KindVariable, Raw: "{{b}}", Name: "b"},
	}
	if diff := cmp.Diff(want, summarize(tokens)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func unclosedMarkers(n int) string {
	return strings.Repeat("{{ a [ b ", n) + "{{name}} [/CAPSULA]"
}

func TestTokenizeManyUnclosedMarkers(t *testing.T) {
	text := unclosedMarkers(20000)
	tokens := Tokenize(text)

	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}
	want := []tokenSummary{
		{Kind: KindVariable, Raw: "{{name}}", Name: "name"},
		{Kind: KindLiteral, Raw: " "},
		{Kind: KindCapsuleEnd, Raw: "[/CAPSULA]"},
	}
	if diff := cmp.Diff(want, summarize(tokens[1:])); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Raw)
	}
	if b.String() != text {
		t.Fatalf("tokens do not reproduce the input")
	}
}

func BenchmarkTokenizeUnclosedMarkers(b *testing.B) {
	text := unclosedMarkers(30000)
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		Tokenize(text)
	}
}

func TestIsNumberingName(t *testing.T) {
	for name, want := range map[string]bool{
		"NUMERACION":       true,
		"numeracion_extra": true,
		" Numeración ":     true,
		"numero":           false,
		"monto":            false,
		"":                 false,
	} {
		if got := IsNumberingName(name); got != want {
			t.Fatalf("IsNumberingName(%q) = %v, want %v", name, got, want)
		}
	}
}
