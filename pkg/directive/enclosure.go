// Package directive implements the executable assembler directives: DEF
// label definitions, SECTION declarations, and the DS/DB/DW storage
// directives. Each handler consumes a prefix of a token group and reports
// how many tokens it used, so the driver can dispatch the remainder.
package directive

import (
	"strings"

	"github.com/gbztools/gbzasm/pkg/token"
)

// enclosure is a matched delimiter pair inside a token group: a bracket
// pair ("[" ... "]", "(" ... ")") or a quote pair ('"' ... '"').
type enclosure struct {
	start int // index of the opening delimiter token
	end   int // index of the closing delimiter token
	text  string
}

var closerFor = map[string]string{"(": ")", "[": "]", "{": "}", `"`: `"`, "'": "'"}

// findEnclosure locates the delimiter pair opening at index from. The
// enclosed token values are joined into text. Nested delimiters are
// rejected.
func findEnclosure(group token.Group, from int) (enclosure, error) {
	if from >= len(group) {
		return enclosure{}, &SectionDeclarationError{Text: "missing delimiter"}
	}
	open := group[from].Value
	closer, ok := closerFor[open]
	if !ok {
		return enclosure{}, &SectionDeclarationError{Text: "expected an opening delimiter, got " + open}
	}
	var parts []string
	for i := from + 1; i < len(group); i++ {
		tok := group[i]
		if tok.Value == closer {
			return enclosure{start: from, end: i, text: strings.Join(parts, " ")}, nil
		}
		if tok.Kind == token.KindBeginPunctuator || tok.Kind == token.KindPunctuator {
			return enclosure{}, &SectionDeclarationError{Text: "nested delimiter " + tok.Value}
		}
		parts = append(parts, tok.Value)
	}
	return enclosure{}, &SectionDeclarationError{Text: "unterminated " + open}
}
