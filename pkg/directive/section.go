package directive

import (
	"strconv"

	"github.com/gbztools/gbzasm/pkg/section"
	"github.com/gbztools/gbzasm/pkg/token"
)

// Section handles a SECTION declaration at the front of group:
//
//	SECTION "<label>" , <memblock> [ '[' <offset> ']' ]
//	        [ , BANK '[' <num> ']' ] [ , ALIGN '[' <num> ']' ]
//
// It returns the validated Section and the index of the first unconsumed
// token. Registering the section and moving the instruction pointer is the
// driver's job.
func Section(group token.Group) (*section.Section, int, error) {
	if len(group) == 0 || group[0].Kind != token.KindDirective || group[0].Value != "SECTION" {
		return nil, 0, &SectionDeclarationError{Text: "expected SECTION"}
	}

	idx := 1
	name, idx, err := sectionName(group, idx)
	if err != nil {
		return nil, 0, err
	}

	if idx >= len(group) || group[idx].Kind != token.KindMemoryDirective {
		return nil, 0, &SectionDeclarationError{Text: "missing memory region"}
	}
	blockName := group[idx].Value
	idx++

	var offset *int
	if idx < len(group) && group[idx].Value == "[" {
		enc, err := findEnclosure(group, idx)
		if err != nil {
			return nil, 0, err
		}
		inner := group[enc.start+1]
		if enc.end != enc.start+2 || inner.Kind != token.KindExpression || inner.Expr == nil {
			return nil, 0, &SectionDeclarationError{Text: "offset must be a single expression"}
		}
		o := inner.Expr.IntValue()
		offset = &o
		idx = enc.end + 1
	}

	var bank, align *int
	for idx < len(group) && group[idx].Kind == token.KindMemoryOption {
		optName := group[idx].Value
		enc, err := findEnclosure(group, idx+1)
		if err != nil {
			return nil, 0, err
		}
		if group[enc.start].Value != "[" || enc.end != enc.start+2 {
			return nil, 0, &SectionDeclarationError{Text: optName + " expects a single bracketed number"}
		}
		num, ok := numberFromToken(group[enc.start+1])
		switch optName {
		case "BANK":
			if !ok || num < 0 || num > 7 {
				return nil, 0, &SectionBankError{Text: group[enc.start+1].Value}
			}
			bank = &num
		case "ALIGN":
			if !ok || !validAlign(num) {
				return nil, 0, &SectionAlignError{Text: group[enc.start+1].Value}
			}
			align = &num
		}
		idx = enc.end + 1
	}

	sec, err := section.NewSection(name, blockName, offset, bank, align)
	if err != nil {
		return nil, 0, err
	}
	return sec, idx, nil
}

func sectionName(group token.Group, idx int) (string, int, error) {
	if idx >= len(group) {
		return "", 0, &SectionDeclarationError{Text: "missing section name"}
	}
	tok := group[idx]
	switch {
	case tok.Value == `"` || tok.Value == "'":
		enc, err := findEnclosure(group, idx)
		if err != nil {
			return "", 0, err
		}
		return enc.text, enc.end + 1, nil
	case tok.Kind == token.KindLiteral || tok.Kind == token.KindSymbol:
		return tok.Value, idx + 1, nil
	default:
		return "", 0, &SectionDeclarationError{Text: "missing section name"}
	}
}

// numberFromToken reads a bracketed BANK/ALIGN number, which may be a
// prefixed expression ($03) or a bare digit run (3).
func numberFromToken(tok token.Token) (int, bool) {
	if tok.Kind == token.KindExpression && tok.Expr != nil {
		return tok.Expr.IntValue(), true
	}
	n, err := strconv.Atoi(tok.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

func validAlign(n int) bool {
	switch n {
	case 0, 1, 2, 4, 8:
		return true
	}
	return false
}
