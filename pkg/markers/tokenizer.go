package markers

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	capsuleKeyword   = "CAPSULA"
	signatureKeyword = "FIRMA"
)

var numberingKeywords = []string{"NUMERACION", "NUMERACIÓN"}

// IsNumberingName reports whether a placeholder name is reserved for
// numbering directives. Such names are never exposed as fillable fields.
func IsNumberingName(name string) bool {
	trimmed := strings.TrimSpace(name)
	for _, keyword := range numberingKeywords {
		if len(trimmed) >= len(keyword) && strings.EqualFold(trimmed[:len(keyword)], keyword) {
			return true
		}
	}
	return false
}

// Tokenize splits template text into tokens without pairing block markers.
func Tokenize(text string) []Token {
	var (
		tokens       []Token
		literalStart = 0
		i            = 0
		opens        = finder{sub: "{{", from: -1}
		closes       = finder{sub: "}}", from: -1}
	)

	flush := func(end int) {
		if end > literalStart {
			tokens = append(tokens, Token{
				Kind:   KindLiteral,
				Raw:    text[literalStart:end],
				Offset: literalStart,
			})
		}
	}

	for i < len(text) {
		var (
			tok Token
			ok  bool
		)
		switch text[i] {
		case '{':
			tok, ok = scanVariable(text, i, &opens, &closes)
		case '[':
			tok, ok = scanBracket(text, i)
		case 'N', 'n':
			tok, ok = scanNumbering(text, i)
		}
		if !ok {
			i++
			continue
		}
		flush(i)
		tokens = append(tokens, tok)
		i = tok.End()
		literalStart = i
	}
	flush(len(text))

	return tokens
}

// finder caches the next occurrence of sub at or after from, so that a
// left to right scan searches each stretch of text once.
type finder struct {
	sub  string
	from int
	at   int
}

func (f *finder) next(text string, pos int) int {
	if f.from >= 0 && f.from <= pos && (f.at < 0 || f.at >= pos) {
		return f.at
	}
	f.from = pos
	f.at = strings.Index(text[pos:], f.sub)
	if f.at >= 0 {
		f.at += pos
	}
	return f.at
}

func scanVariable(text string, start int, opens, closes *finder) (Token, bool) {
	if !strings.HasPrefix(text[start:], "{{") {
		return Token{}, false
	}
	innerStart := start + 2
	closeAt := closes.next(text, innerStart)
	if closeAt < 0 {
		return Token{}, false
	}
	if openAt := opens.next(text, innerStart); openAt >= 0 && openAt+2 <= closeAt {
		return Token{}, false
	}

	inner := text[innerStart:closeAt]
	raw := text[start : closeAt+2]
	name, hint, _ := strings.Cut(inner, ":")
	name = strings.TrimSpace(name)
	hint = strings.TrimSpace(hint)

	if isNumberingKeyword(name) {
		return Token{
			Kind:   KindNumbering,
			Raw:    raw,
			Offset: start,
			Title:  hint,
			Braced: true,
		}, true
	}

	return Token{
		Kind:   KindVariable,
		Raw:    raw,
		Offset: start,
		Name:   name,
		Hint:   hint,
	}, true
}

func scanBracket(text string, start int) (Token, bool) {
	body := text[start+1:]
	closeIdx := strings.IndexAny(body, "[]\n")
	if closeIdx < 0 || body[closeIdx] != ']' {
		return Token{}, false
	}
	inner := body[:closeIdx]
	raw := text[start : start+1+closeIdx+1]
	trimmed := strings.TrimSpace(inner)

	if rest, ok := strings.CutPrefix(trimmed, "/"); ok {
		switch {
		case strings.EqualFold(strings.TrimSpace(rest), capsuleKeyword):
			return Token{Kind: KindCapsuleEnd, Raw: raw, Offset: start}, true
		case strings.EqualFold(strings.TrimSpace(rest), signatureKeyword):
			return Token{Kind: KindSignatureEnd, Raw: raw, Offset: start}, true
		}
		return Token{}, false
	}

	keyword, value, found := strings.Cut(trimmed, ":")
	if !found {
		return Token{}, false
	}
	keyword = strings.TrimSpace(keyword)
	value = strings.TrimSpace(value)

	switch {
	case strings.EqualFold(keyword, capsuleKeyword):
		title, annotation, _ := strings.Cut(value, "|")
		return Token{
			Kind:       KindCapsuleStart,
			Raw:        raw,
			Offset:     start,
			Title:      strings.TrimSpace(title),
			Annotation: strings.TrimSpace(annotation),
		}, true
	case strings.EqualFold(keyword, signatureKeyword):
		return Token{
			Kind:   KindSignatureStart,
			Raw:    raw,
			Offset: start,
			Title:  value,
		}, true
	}
	return Token{}, false
}

func scanNumbering(text string, start int) (Token, bool) {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			return Token{}, false
		}
	}

	markerEnd := -1
	for _, keyword := range numberingKeywords {
		candidate := keyword + ":"
		end := start + len(candidate)
		if end <= len(text) && strings.EqualFold(text[start:end], candidate) {
			markerEnd = end
			break
		}
	}
	if markerEnd < 0 {
		return Token{}, false
	}

	titleStart := markerEnd
	for titleStart < len(text) && (text[titleStart] == ' ' || text[titleStart] == '\t') {
		titleStart++
	}
	titleEnd := titleStart
	for titleEnd < len(text) {
		ch := text[titleEnd]
		if ch == '\n' || ch == '\r' || ch == '[' || strings.HasPrefix(text[titleEnd:], "{{") {
			break
		}
		titleEnd++
	}
	for titleEnd > titleStart && (text[titleEnd-1] == ' ' || text[titleEnd-1] == '\t') {
		titleEnd--
	}

	return Token{
		Kind:   KindNumbering,
		Raw:    text[start:titleEnd],
		Offset: start,
		Title:  text[titleStart:titleEnd],
	}, true
}

func isNumberingKeyword(name string) bool {
	for _, keyword := range numberingKeywords {
		if strings.EqualFold(name, keyword) {
			return true
		}
	}
	return false
}
