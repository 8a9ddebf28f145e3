package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind labels which literal shape a Value was parsed from.
type Kind string

const (
	KindBinary  Kind = "binary"
	KindChar    Kind = "character"
	KindDecimal Kind = "decimal"
	KindHex     Kind = "hexadecimal"
	KindOctal   Kind = "octal"
)

// prefixes is checked in this exact order: "0x" must be tried before "0",
// and "$$" before "$", so the longer prefix wins when both match.
var prefixes = []string{"0x", "0", "$$", "$", "&", "%", "'", "\""}

// Value is a validated numeric or string literal: prefix, body, optional
// matching suffix (for quoted strings), the descriptor it validated
// against, and its cached integer value.
type Value struct {
	prefix     string
	body       string
	suffix     string
	descriptor Descriptor
	kind       Kind
	format     string
	intValue   int
}

// HasValidPrefix reports whether s begins with a recognized expression
// prefix. Used by the tokenizer to decide whether a raw token is an
// expression before attempting a full parse.
func HasValidPrefix(s string) bool {
	_, ok := splitPrefix(s)
	return ok
}

func splitPrefix(expr string) (prefix string, ok bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(expr, p) {
			return p, true
		}
	}
	return "", false
}

// New parses and validates raw as a Value literal.
func New(raw string) (*Value, error) {
	expr := strings.TrimSpace(raw)
	if len(expr) < 3 {
		return nil, &InvalidPrefixError{Literal: raw}
	}
	prefix, ok := splitPrefix(expr)
	if !ok {
		return nil, &InvalidPrefixError{Literal: raw}
	}
	body := strings.TrimPrefix(expr, prefix)
	suffix := ""
	if prefix == "'" || prefix == "\"" {
		if !strings.HasSuffix(body, prefix) {
			return nil, &InvalidPrefixError{Literal: raw}
		}
		suffix = prefix
		body = strings.TrimSuffix(body, suffix)
	}

	var desc Descriptor
	var kind Kind
	var format string
	switch prefix {
	case "0x", "$":
		if len(body) > 2 {
			desc, kind, format = Hex16Dsc, KindHex, "%04X"
		} else {
			desc, kind, format = HexDsc, KindHex, "%02X"
		}
	case "$$":
		desc, kind, format = Hex16Dsc, KindHex, "%04X"
	case "0":
		desc, kind, format = DecDsc, KindDecimal, "%02d"
	case "'", "\"":
		desc, kind, format = StrDsc, KindChar, ""
	case "%":
		desc, kind, format = BinDsc, KindBinary, "%08b"
	case "&":
		desc, kind, format = OctDsc, KindOctal, "%06o"
	default:
		return nil, &InvalidPrefixError{Literal: raw}
	}

	intVal, _ := parseInt(body, desc.Base)
	if err := desc.Validate(body, intVal); err != nil {
		return nil, err
	}

	return &Value{
		prefix: prefix, body: body, suffix: suffix,
		descriptor: desc, kind: kind, format: format, intValue: intVal,
	}, nil
}

func parseInt(body string, base Base) (int, error) {
	switch base {
	case BaseBin, BaseByte, BaseDec, BaseWord:
		n, err := strconv.ParseInt(body, int(base), 64)
		return int(n), err
	default:
		return 0, nil
	}
}

// IntValue returns the decoded integer value of v. For string/label values
// this is always 0; use Body for their text.
func (v *Value) IntValue() int { return v.intValue }

// Prefix returns the original prefix ($, 0x, $$, 0, %, &, ' or ").
func (v *Value) Prefix() string { return v.prefix }

// Body returns the value's text with prefix/suffix stripped.
func (v *Value) Body() string { return v.body }

// Kind returns which literal shape v was parsed from.
func (v *Value) Kind() Kind { return v.kind }

// Descriptor returns the validation descriptor v was checked against.
func (v *Value) Descriptor() Descriptor { return v.descriptor }

// Base returns v's numeric base (or BaseLabel/BaseStr for non-numeric).
func (v *Value) Base() Base { return v.descriptor.Base }

// CleanedStr returns v's prefix, body and suffix joined back together.
func (v *Value) CleanedStr() string { return v.prefix + v.body + v.suffix }

func (v *Value) numeric() bool { return v.descriptor.Base > BaseLabel }

// Add returns a new Value holding v+other, preserving v's prefix/format.
func (v *Value) Add(other *Value) (*Value, error) {
	if !v.numeric() || !other.numeric() {
		return nil, fmt.Errorf("value: operand must be a numeric value")
	}
	sum := v.intValue + other.intValue
	if sum > v.descriptor.Limits.Max-1 {
		return nil, &OverflowError{Result: sum, Limit: v.descriptor.Limits.Max - 1}
	}
	return v.newFromFormat(sum)
}

// Sub returns a new Value holding v-other, preserving v's prefix/format.
// The result must not be negative.
func (v *Value) Sub(other *Value) (*Value, error) {
	if !v.numeric() || !other.numeric() {
		return nil, fmt.Errorf("value: operand must be a numeric value")
	}
	diff := v.intValue - other.intValue
	if diff < 0 {
		return nil, &UnderflowError{Result: diff}
	}
	return v.newFromFormat(diff)
}

// And returns a new Value holding v&other, preserving v's prefix/format.
func (v *Value) And(other *Value) (*Value, error) {
	return v.bitwise(other, func(a, b int) int { return a & b })
}

// Or returns a new Value holding v|other, preserving v's prefix/format.
func (v *Value) Or(other *Value) (*Value, error) {
	return v.bitwise(other, func(a, b int) int { return a | b })
}

// Xor returns a new Value holding v^other, preserving v's prefix/format.
func (v *Value) Xor(other *Value) (*Value, error) {
	return v.bitwise(other, func(a, b int) int { return a ^ b })
}

func (v *Value) bitwise(other *Value, op func(a, b int) int) (*Value, error) {
	if !v.numeric() || !other.numeric() {
		return nil, fmt.Errorf("value: operand must be a numeric value")
	}
	n := op(v.intValue, other.intValue)
	if n > v.descriptor.Limits.Max-1 {
		return nil, &OverflowError{Result: n, Limit: v.descriptor.Limits.Max - 1}
	}
	return v.newFromFormat(n)
}

// Equal reports whether v and other hold the same integer value,
// regardless of the base either was written in.
func (v *Value) Equal(other *Value) bool {
	return v.intValue == other.intValue
}

// Compare orders v against other by integer value: -1 when v is smaller,
// 0 when equal, 1 when larger.
func (v *Value) Compare(other *Value) int {
	switch {
	case v.intValue < other.intValue:
		return -1
	case v.intValue > other.intValue:
		return 1
	default:
		return 0
	}
}

func (v *Value) newFromFormat(n int) (*Value, error) {
	return New(v.prefix + fmt.Sprintf(v.format, n))
}
