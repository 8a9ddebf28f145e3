// Package token implements the lexical layer: classifying raw source atoms
// into typed Tokens and grouping a line's Tokens into an ordered Group.
package token

import (
	"github.com/retroenv/retrogolib/set"

	"github.com/gbztools/gbzasm/pkg/opcode"
	"github.com/gbztools/gbzasm/pkg/symtab"
	"github.com/gbztools/gbzasm/pkg/value"
)

// Kind discriminates what a Token holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindComment
	KindDirective
	KindStorageDirective
	KindExpression
	KindIdentifier
	KindInstruction
	KindLiteral
	KindMemoryDirective
	KindMemoryOption
	KindOperator
	KindPunctuator
	KindBeginPunctuator
	KindEndPunctuator
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindDirective:
		return "DIRECTIVE"
	case KindStorageDirective:
		return "STORAGE_DIRECTIVE"
	case KindExpression:
		return "EXPRESSION"
	case KindIdentifier:
		return "IDENTIFIER"
	case KindInstruction:
		return "INSTRUCTION"
	case KindLiteral:
		return "LITERAL"
	case KindMemoryDirective:
		return "MEMORY_DIRECTIVE"
	case KindMemoryOption:
		return "MEMORY_OPTION"
	case KindOperator:
		return "OPERATOR"
	case KindPunctuator:
		return "PUNCTUATOR"
	case KindBeginPunctuator:
		return "BEGIN_PUNCTUATOR"
	case KindEndPunctuator:
		return "END_PUNCTUATOR"
	case KindSymbol:
		return "SYMBOL"
	case KindComment:
		return "COMMENT"
	default:
		return "INVALID"
	}
}

// Token is one classified atom of source text.
type Token struct {
	Kind  Kind
	Value string // raw text as it appeared in the source
	Expr  *value.Value
	Sym   *symtab.Symbol
	Err   error // diagnostic carried by Invalid tokens
}

// Directives, memory regions/options, storage directives, and define
// operators recognized during classification. These vocabularies are
// closed; anything outside them falls through to symbol, instruction, or
// literal classification.
var (
	directives = set.NewFromSlice([]string{
		"DEF", "ENDM", "ENDU", "EXPORT", "GLOBAL", "INCBIN", "INCLUDE",
		"MACRO", "NEXTU", "ORG", "PURGE", "SECTION", "SET", "UNION",
	})
	storageDirectives = set.NewFromSlice([]string{"DS", "DB", "DW"})
	memoryDirectives  = set.NewFromSlice([]string{
		"WRAM0", "VRAM", "ROMX", "ROM0", "HRAM", "WRAMX", "SRAM", "OAM",
	})
	memoryOptions  = set.NewFromSlice([]string{"BANK", "ALIGN"})
	defineOperands = set.NewFromSlice([]string{"=", "EQU", "EQUS"})
	beginPunct     = set.NewFromSlice([]rune{'(', '[', '{'})
	endPunct       = set.NewFromSlice([]rune{')', ']', '}'})
	punctuators    = set.NewFromSlice([]rune{'"', '\'', '(', '[', '{', '}', ']', ')', '+'})
)

// Classify assigns a Kind (and, where relevant, parsed Expr/Sym data) to
// one raw source atom. The order below is load-bearing: later checks
// (e.g. "is this a symbol") would misfire on atoms an earlier check
// already owns (a bare "(" is a punctuator, never a one-character
// symbol).
func Classify(atom string) Token {
	switch {
	case len(atom) == 1 && punctuators.Contains(rune(atom[0])):
		return classifyPunctuator(atom)
	case directives.Contains(atom):
		return Token{Kind: KindDirective, Value: atom}
	case memoryDirectives.Contains(atom):
		return Token{Kind: KindMemoryDirective, Value: atom}
	case memoryOptions.Contains(atom):
		return Token{Kind: KindMemoryOption, Value: atom}
	case storageDirectives.Contains(atom):
		return Token{Kind: KindStorageDirective, Value: atom}
	case defineOperands.Contains(atom):
		return Token{Kind: KindOperator, Value: atom}
	case value.HasValidPrefix(atom):
		return classifyExpression(atom)
	case symtab.HasScopeAffix(atom):
		// Symbol-looking atom: a bad name inside it becomes an Invalid
		// token rather than falling through to a literal.
		return classifySymbol(atom)
	case opcode.IsMnemonic(atom):
		return Token{Kind: KindInstruction, Value: atom}
	default:
		return Token{Kind: KindLiteral, Value: atom}
	}
}

func classifyPunctuator(atom string) Token {
	r := rune(atom[0])
	kind := KindPunctuator
	switch {
	case beginPunct.Contains(r):
		kind = KindBeginPunctuator
	case endPunct.Contains(r):
		kind = KindEndPunctuator
	}
	return Token{Kind: kind, Value: atom}
}

func classifyExpression(atom string) Token {
	v, err := value.New(atom)
	if err != nil {
		return Token{Kind: KindInvalid, Value: atom, Err: err}
	}
	return Token{Kind: KindExpression, Value: atom, Expr: v}
}

func classifySymbol(atom string) Token {
	sym, err := symtab.ParseSymbol(atom)
	if err != nil {
		return Token{Kind: KindInvalid, Value: atom, Err: err}
	}
	return Token{Kind: KindSymbol, Value: atom, Sym: &sym}
}
