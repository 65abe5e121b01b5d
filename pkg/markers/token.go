package markers

// Kind identifies the token variant.
type Kind int

const (
	KindLiteral Kind = iota
	KindVariable
	KindNumbering
	KindCapsuleStart
	KindCapsuleEnd
	KindSignatureStart
	KindSignatureEnd
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindVariable:
		return "variable"
	case KindNumbering:
		return "numbering"
	case KindCapsuleStart:
		return "capsule-start"
	case KindCapsuleEnd:
		return "capsule-end"
	case KindSignatureStart:
		return "signature-start"
	case KindSignatureEnd:
		return "signature-end"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of template text.
//
// Name and Hint are set for variables. Title holds the capsule title, the
// signature label, or the clause text that follows a numbering keyword.
// Annotation holds whatever follows `|` inside a capsule start marker.
type Token struct {
	Kind       Kind
	Raw        string
	Offset     int
	Name       string
	Hint       string
	Title      string
	Annotation string
	// Braced is true for the `{{ NUMERACION: title }}` directive form, whose
	// Title must match a directive title exactly rather than as a prefix.
	Braced bool
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Raw)
}

func (t Token) demote() Token {
	return Token{Kind: KindLiteral, Raw: t.Raw, Offset: t.Offset}
}
