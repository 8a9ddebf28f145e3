// Package value implements the expression/value model: prefix-driven base
// detection, charset/length/range validation, and format-preserving
// arithmetic over LR35902 source literals.
package value

import "github.com/retroenv/retrogolib/set"

// Base identifies the numeric (or non-numeric) base a Value is encoded in.
type Base int

const (
	BaseStr   Base = -1
	BaseLabel Base = 0
	BaseBin   Base = 2
	BaseByte  Base = 8
	BaseDec   Base = 10
	BaseWord  Base = 16
)

// Range is a min/max pair. Validate checks a Descriptor's Limits as
// [Min, Max) and its Chars as [Min, Max].
type Range struct {
	Min, Max int
}

// Descriptor captures the validation rules for one literal shape: how many
// raw characters are allowed, what integer range the parsed value must fall
// in, which base it decodes under, and which runes are legal in its body.
type Descriptor struct {
	Name    string
	Chars   Range
	Limits  Range
	Base    Base
	Charset set.Set[rune]
}

func charsetOf(s string) set.Set[rune] {
	cs := set.New[rune]()
	for _, r := range s {
		cs.Add(r)
	}
	return cs
}

// Canonical descriptors, one per literal shape recognized by the
// tokenizer.
var (
	DecDsc = Descriptor{
		Name: "DEC", Chars: Range{1, 6}, Limits: Range{0, 65536},
		Base: BaseDec, Charset: charsetOf("0123456789"),
	}
	HexDsc = Descriptor{
		Name: "HEX", Chars: Range{2, 3}, Limits: Range{0, 256},
		Base: BaseWord, Charset: charsetOf("0123456789ABCDEFabcdef"),
	}
	Hex16Dsc = Descriptor{
		Name: "HEX16", Chars: Range{2, 5}, Limits: Range{0, 65536},
		Base: BaseWord, Charset: charsetOf("0123456789ABCDEFabcdef"),
	}
	BinDsc = Descriptor{
		Name: "BIN", Chars: Range{2, 9}, Limits: Range{0, 256},
		Base: BaseBin, Charset: charsetOf("01"),
	}
	OctDsc = Descriptor{
		Name: "OCT", Chars: Range{1, 7}, Limits: Range{0, 65536},
		Base: BaseByte, Charset: charsetOf("01234567"),
	}
	LblDsc = Descriptor{
		Name: "LBL", Chars: Range{1, 33}, Limits: Range{0, 0},
		Base: BaseLabel,
	}
	StrDsc = Descriptor{
		Name: "STR", Chars: Range{1, 256}, Limits: Range{0, 0},
		Base: BaseStr,
	}
)

// inCharset reports whether every rune of body is legal for d. Descriptors
// with no charset (label/string bases) accept anything here; Validate
// applies a leading-letter rule to the label base only.
func (d Descriptor) inCharset(body string) bool {
	if len(d.Charset) == 0 {
		return true
	}
	for _, r := range body {
		if !d.Charset.Contains(r) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '.' || r == ':'
}

// Validate checks body (the literal with its prefix already stripped)
// against d's charset, length, and (for numeric bases) value range.
func (d Descriptor) Validate(body string, intVal int) error {
	if !d.inCharset(body) {
		return &InvalidCharsetError{Descriptor: d.Name, Body: body}
	}
	if len(body) < d.Chars.Min || len(body) > d.Chars.Max {
		return &LengthError{Descriptor: d.Name, Body: body, Want: d.Chars}
	}
	if d.Base > BaseLabel {
		if intVal < d.Limits.Min || intVal >= d.Limits.Max {
			return &RangeError{Descriptor: d.Name, Value: intVal, Want: d.Limits}
		}
		return nil
	}
	if d.Base == BaseLabel && (len(body) == 0 || !isLetter(rune(body[0]))) {
		return &InvalidLeadingCharError{Descriptor: d.Name, Body: body}
	}
	return nil
}
