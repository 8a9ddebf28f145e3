package directive

import (
	"github.com/gbztools/gbzasm/pkg/symtab"
	"github.com/gbztools/gbzasm/pkg/token"
	"github.com/gbztools/gbzasm/pkg/value"
)

// Define handles `DEF <name> (=|EQU|EQUS) <expression>` at the front of
// group, pushing the resulting Label into labels. It returns the index of
// the first unconsumed token.
func Define(group token.Group, labels *symtab.LabelStore) (int, error) {
	if len(group) < 4 {
		return 0, &DefineSymbolError{Text: "expected DEF <name> <op> <expression>"}
	}

	name := group[1]
	var clean string
	switch {
	case name.Kind == token.KindSymbol && name.Sym != nil:
		clean = name.Sym.Clean
	case name.Kind == token.KindLiteral && symtab.IsValidLabelName(name.Value):
		clean = name.Value
	default:
		return 0, &DefineSymbolError{Text: "missing definition name"}
	}

	op := group[2]
	if op.Kind != token.KindOperator {
		return 0, &DefineAssignmentError{Operator: op.Value}
	}

	val := group[3]
	switch {
	case val.Kind == token.KindExpression && val.Expr != nil:
		labels.Push(symtab.Label{Name: clean, Value: val.Expr.IntValue(), Expr: val.Expr}, true)
		return 4, nil
	case val.Kind == token.KindPunctuator && (val.Value == `"` || val.Value == "'"):
		// EQUS string form: the quotes tokenize as punctuators with the
		// text between them, so reassemble the quoted literal.
		enc, err := findEnclosure(group, 3)
		if err != nil {
			return 0, &DefineSymbolError{Text: "unterminated string definition"}
		}
		expr, err := value.New(val.Value + enc.text + val.Value)
		if err != nil {
			return 0, err
		}
		labels.Push(symtab.Label{Name: clean, Value: expr.IntValue(), Expr: expr}, true)
		return enc.end + 1, nil
	default:
		return 0, &DefineSymbolError{Text: "missing definition value"}
	}
}
