package value

import "fmt"

// Convert rewrites a Value's integer value into the other literal shapes
// the assembler needs: new prefixed Values in another base, bare hex digit
// strings for byte emission, and the little-endian byte encoding used when
// an operand or storage value lands in the output image.
type Convert struct {
	v *Value
}

// NewConvert wraps v for conversion.
func NewConvert(v *Value) Convert { return Convert{v: v} }

// ToDecimal returns v's integer value as a new 0-prefixed decimal Value.
func (c Convert) ToDecimal() (*Value, error) {
	return New(fmt.Sprintf("0%02d", c.v.IntValue()))
}

// ToHex returns the low byte of v's integer value as a new 8-bit $-hex
// Value.
func (c Convert) ToHex() (*Value, error) {
	return New(fmt.Sprintf("$%02X", c.v.IntValue()&0xFF))
}

// ToHex16 returns v's integer value as a new 16-bit $-hex Value.
func (c Convert) ToHex16() (*Value, error) {
	return New(fmt.Sprintf("$%04X", c.v.IntValue()&0xFFFF))
}

// ToOctal returns v's integer value as a new &-prefixed octal Value.
func (c Convert) ToOctal() (*Value, error) {
	return New(fmt.Sprintf("&%02o", c.v.IntValue()&0xFFFF))
}

// ToBinary returns the low byte of v's integer value as a new %-prefixed
// binary Value.
func (c Convert) ToBinary() (*Value, error) {
	return New(fmt.Sprintf("%%%08b", c.v.IntValue()&0xFF))
}

// ToHexString returns the low byte of v's integer value as two uppercase
// hex digits with no prefix.
func (c Convert) ToHexString() string {
	return fmt.Sprintf("%02X", c.v.IntValue()&0xFF)
}

// ToHex16String returns v's integer value as four uppercase hex digits.
// When littleEndian is true the low byte is emitted first, matching DW's
// little-endian word storage.
func (c Convert) ToHex16String(littleEndian bool) string {
	n := c.v.IntValue() & 0xFFFF
	if !littleEndian {
		return fmt.Sprintf("%04X", n)
	}
	lo := n & 0xFF
	hi := (n >> 8) & 0xFF
	return fmt.Sprintf("%02X%02X", lo, hi)
}

// ToCode returns v's emitted-byte encoding. Numeric values pack
// little-endian, one byte when the descriptor caps at a byte and two
// otherwise; string values emit their raw bytes.
func (c Convert) ToCode() []byte {
	if c.v.Base() == BaseStr || c.v.Base() == BaseLabel {
		return []byte(c.v.Body())
	}
	n := c.v.IntValue()
	if c.v.descriptor.Limits.Max <= 0x100 {
		return []byte{byte(n & 0xFF)}
	}
	return []byte{byte(n & 0xFF), byte((n >> 8) & 0xFF)}
}
