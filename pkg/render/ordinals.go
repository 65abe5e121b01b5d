package render

import (
	"fmt"
	"strings"
)

// OrdinalTable maps a clause position (1-based) to the label shown in front of
// the clause title. Positions past the end of Labels use Fallback, which must
// contain a single %d verb.
type OrdinalTable struct {
	Labels   []string
	Fallback string
}

// EnglishOrdinals is the default label sequence.
var EnglishOrdinals = OrdinalTable{
	Labels: []string{
		"FIRST", "SECOND", "THIRD", "FOURTH", "FIFTH",
		"SIXTH", "SEVENTH", "EIGHTH", "NINTH", "TENTH",
		"ELEVENTH", "TWELFTH", "THIRTEENTH", "FOURTEENTH", "FIFTEENTH",
		"SIXTEENTH", "SEVENTEENTH", "EIGHTEENTH", "NINETEENTH", "TWENTIETH",
	},
	Fallback: "CLAUSE %d",
}

// SpanishOrdinals uses the feminine forms that agree with "cláusula".
var SpanishOrdinals = OrdinalTable{
	Labels: []string{
		"PRIMERA", "SEGUNDA", "TERCERA", "CUARTA", "QUINTA",
		"SEXTA", "SÉPTIMA", "OCTAVA", "NOVENA", "DÉCIMA",
		"UNDÉCIMA", "DUODÉCIMA", "DECIMOTERCERA", "DECIMOCUARTA", "DECIMOQUINTA",
		"DECIMOSEXTA", "DECIMOSÉPTIMA", "DECIMOCTAVA", "DECIMONOVENA", "VIGÉSIMA",
	},
	Fallback: "CLÁUSULA %d",
}

// OrdinalsFor returns the table for a language code. Unknown codes fall back to
// EnglishOrdinals.
func OrdinalsFor(lang string) OrdinalTable {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "es", "es-es", "es-mx", "spanish":
		return SpanishOrdinals
	default:
		return EnglishOrdinals
	}
}

// Label returns the ordinal for a 1-based position.
func (t OrdinalTable) Label(position int) string {
	if position >= 1 && position <= len(t.Labels) {
		return t.Labels[position-1]
	}
	fallback := t.Fallback
	if fallback == "" {
		fallback = EnglishOrdinals.Fallback
	}
	return fmt.Sprintf(fallback, position)
}

func (t OrdinalTable) isZero() bool {
	return len(t.Labels) == 0 && t.Fallback == ""
}
