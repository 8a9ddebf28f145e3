package directive

import (
	"github.com/gbztools/gbzasm/pkg/token"
)

// Storage handles a DS/DB/DW statement at the front of group and returns
// the bytes it emits plus the index of the first unconsumed token.
//
//	DS <size> [v1 v2 ... vN]  - size bytes, tiled with the fill values
//	                            (or $00 when none are given)
//	DB <v1> <v2> ...          - one byte per value; strings emit their text
//	DW <v1> <v2> ...          - two bytes per value, little-endian
//
// Values must be prefixed expressions; a bare decimal like `DS 1`
// tokenizes as a literal and is rejected.
func Storage(group token.Group) ([]byte, int, error) {
	if len(group) == 0 || group[0].Kind != token.KindStorageDirective {
		return nil, 0, &StorageValueError{Text: "expected DS, DB or DW"}
	}
	switch group[0].Value {
	case "DS":
		return toSpace(group)
	case "DB":
		return toBytes(group)
	case "DW":
		return toWords(group)
	default:
		return nil, 0, &StorageValueError{Text: group[0].Value}
	}
}

// toSpace allocates `DS <size>` bytes. Any fill values after the size are
// taken modulo 256 and repeated until the block is full.
func toSpace(group token.Group) ([]byte, int, error) {
	if len(group) < 2 {
		// A bare DS reserves a single zero byte.
		return []byte{0x00}, 1, nil
	}
	sizeTok := group[1]
	if sizeTok.Kind != token.KindExpression || sizeTok.Expr == nil {
		return nil, 0, &StorageValueError{Text: sizeTok.Value}
	}
	size := sizeTok.Expr.IntValue()

	var fills []byte
	idx := 2
	for idx < len(group) && group[idx].Kind == token.KindExpression && group[idx].Expr != nil {
		fills = append(fills, byte(group[idx].Expr.IntValue()&0xFF))
		idx++
	}

	out := make([]byte, size)
	if len(fills) > 0 {
		for i := 0; i < size; i++ {
			out[i] = fills[i%len(fills)]
		}
	}
	return out, idx, nil
}

// toBytes emits `DB <v1> <v2> ...`: one byte per numeric value, the raw
// text bytes for a quoted string.
func toBytes(group token.Group) ([]byte, int, error) {
	if len(group) < 2 {
		return nil, 0, &StorageValueError{Text: "DB needs at least one value"}
	}
	var out []byte
	idx := 1
	for idx < len(group) {
		tok := group[idx]
		switch {
		case tok.Kind == token.KindExpression && tok.Expr != nil:
			out = append(out, byte(tok.Expr.IntValue()&0xFF))
			idx++
		case tok.Value == `"` || tok.Value == "'":
			enc, err := findEnclosure(group, idx)
			if err != nil {
				return nil, 0, &StorageValueError{Text: "unterminated string"}
			}
			out = append(out, []byte(enc.text)...)
			idx = enc.end + 1
		default:
			return nil, 0, &StorageValueError{Text: tok.Value}
		}
	}
	return out, idx, nil
}

// toWords emits `DW <v1> <v2> ...`: two bytes per value, low byte first.
func toWords(group token.Group) ([]byte, int, error) {
	if len(group) < 2 {
		return nil, 0, &StorageValueError{Text: "DW needs at least one value"}
	}
	var out []byte
	idx := 1
	for idx < len(group) {
		tok := group[idx]
		if tok.Kind != token.KindExpression || tok.Expr == nil {
			return nil, 0, &StorageValueError{Text: tok.Value}
		}
		n := tok.Expr.IntValue()
		out = append(out, byte(n&0xFF), byte((n>>8)&0xFF))
		idx++
	}
	return out, idx, nil
}
