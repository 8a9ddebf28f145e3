// Package opcode embeds the LR35902 instruction catalog, the 256-entry
// primary opcode table plus the 256-entry $CB-prefixed bit-operation
// table, and provides mnemonic/operand lookup over it.
//
// The catalog follows the publicly documented LR35902 encoding. Regular
// sub-blocks (the LD r,r' grid, the ALU A,r grid, and the entire $CB
// table) are generated rather than hand-listed, since those blocks are a
// mechanical function of register/operation index and hand-listing them
// would just be transcription risk.
package opcode

import (
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// Entry describes one concrete opcode encoding.
type Entry struct {
	Opcode      uint16 // 0x00-0xFF, or 0xCB00|byte for $CB-prefixed ops
	Mnemonic    string
	Operand1    string // register text, parenthesized memory form, or a placeholder key
	Operand2    string
	Length      int // total instruction bytes, including any prefix byte
	Cycles      int // cycles taken when a branch/condition is NOT taken (or the only value)
	CyclesTaken int // cycles taken when a branch/condition IS taken (0 if unconditional)
}

// placeholders lists the operand keys whose concrete value is supplied at
// assemble time rather than encoded in the opcode byte.
var placeholders = set.NewFromSlice([]string{
	"d8", "d16", "a8", "a16", "r8", "SP+r8", "(a8)", "(a16)",
})

// Immediate1 reports whether the first operand slot is a placeholder that
// contributes immediate bytes to the encoding.
func (e *Entry) Immediate1() bool { return placeholders.Contains(e.Operand1) }

// Immediate2 reports whether the second operand slot is a placeholder.
func (e *Entry) Immediate2() bool { return placeholders.Contains(e.Operand2) }

// eightBitRegs is the standard 3-bit register encoding order shared by the
// LD r,r' block, the ALU A,r block, and the entire $CB table.
var eightBitRegs = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// Catalog holds every implemented primary-table entry, indexed by opcode
// byte. A nil entry marks an opcode with no defined instruction.
var Catalog [256]*Entry

// CBCatalog holds every $CB-prefixed entry, indexed by the byte following
// the $CB prefix.
var CBCatalog [256]*Entry

// byKey indexes entries by "MNEMONIC|OP1|OP2" for mnemonic-resolution
// lookups (see pkg/mnemonic).
var byKey = map[string]*Entry{}

func key(mnemonic, op1, op2 string) string {
	return mnemonic + "|" + op1 + "|" + op2
}

// mnemonics collects every distinct mnemonic root the catalog defines, for
// the tokenizer's is-this-a-mnemonic classification check.
var mnemonics = set.New[string]()

func add(e Entry) {
	ent := e
	if ent.Opcode&0xFF00 == 0xCB00 {
		CBCatalog[ent.Opcode&0xFF] = &ent
	} else {
		Catalog[ent.Opcode&0xFF] = &ent
	}
	byKey[key(ent.Mnemonic, ent.Operand1, ent.Operand2)] = &ent
	mnemonics.Add(ent.Mnemonic)
}

// IsMnemonic reports whether name is a known instruction mnemonic,
// regardless of case.
func IsMnemonic(name string) bool {
	return mnemonics.Contains(strings.ToUpper(name))
}

// Lookup finds the entry matching mnemonic (case-insensitive) with the
// given canonicalized operand keys. Either operand may be empty.
func Lookup(mnemonic, op1, op2 string) (*Entry, bool) {
	e, ok := byKey[key(strings.ToUpper(mnemonic), op1, op2)]
	return e, ok
}

// ByOpcode returns the primary-table entry for byte b, if defined.
func ByOpcode(b byte) (*Entry, bool) {
	e := Catalog[b]
	return e, e != nil
}

// ByCBOpcode returns the $CB-prefixed entry for byte b, if defined.
func ByCBOpcode(b byte) (*Entry, bool) {
	e := CBCatalog[b]
	return e, e != nil
}

func init() {
	addFixedEntries()
	addLDBlock()
	addALUBlock()
	addCBBlock()
}

// addFixedEntries lists every primary opcode whose position in the table
// follows no simple arithmetic pattern: rows 0x00-0x3F and 0xC0-0xFF.
func addFixedEntries() {
	rows := []Entry{
		{Opcode: 0x00, Mnemonic: "NOP", Length: 1, Cycles: 4},
		{Opcode: 0x01, Mnemonic: "LD", Operand1: "BC", Operand2: "d16", Length: 3, Cycles: 12},
		{Opcode: 0x02, Mnemonic: "LD", Operand1: "(BC)", Operand2: "A", Length: 1, Cycles: 8},
		{Opcode: 0x03, Mnemonic: "INC", Operand1: "BC", Length: 1, Cycles: 8},
		{Opcode: 0x04, Mnemonic: "INC", Operand1: "B", Length: 1, Cycles: 4},
		{Opcode: 0x05, Mnemonic: "DEC", Operand1: "B", Length: 1, Cycles: 4},
		{Opcode: 0x06, Mnemonic: "LD", Operand1: "B", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0x07, Mnemonic: "RLCA", Length: 1, Cycles: 4},
		{Opcode: 0x08, Mnemonic: "LD", Operand1: "(a16)", Operand2: "SP", Length: 3, Cycles: 20},
		{Opcode: 0x09, Mnemonic: "ADD", Operand1: "HL", Operand2: "BC", Length: 1, Cycles: 8},
		{Opcode: 0x0A, Mnemonic: "LD", Operand1: "A", Operand2: "(BC)", Length: 1, Cycles: 8},
		{Opcode: 0x0B, Mnemonic: "DEC", Operand1: "BC", Length: 1, Cycles: 8},
		{Opcode: 0x0C, Mnemonic: "INC", Operand1: "C", Length: 1, Cycles: 4},
		{Opcode: 0x0D, Mnemonic: "DEC", Operand1: "C", Length: 1, Cycles: 4},
		{Opcode: 0x0E, Mnemonic: "LD", Operand1: "C", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0x0F, Mnemonic: "RRCA", Length: 1, Cycles: 4},

		{Opcode: 0x10, Mnemonic: "STOP", Operand1: "d8", Length: 2, Cycles: 4},
		{Opcode: 0x11, Mnemonic: "LD", Operand1: "DE", Operand2: "d16", Length: 3, Cycles: 12},
		{Opcode: 0x12, Mnemonic: "LD", Operand1: "(DE)", Operand2: "A", Length: 1, Cycles: 8},
		{Opcode: 0x13, Mnemonic: "INC", Operand1: "DE", Length: 1, Cycles: 8},
		{Opcode: 0x14, Mnemonic: "INC", Operand1: "D", Length: 1, Cycles: 4},
		{Opcode: 0x15, Mnemonic: "DEC", Operand1: "D", Length: 1, Cycles: 4},
		{Opcode: 0x16, Mnemonic: "LD", Operand1: "D", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0x17, Mnemonic: "RLA", Length: 1, Cycles: 4},
		{Opcode: 0x18, Mnemonic: "JR", Operand1: "r8", Length: 2, Cycles: 12},
		{Opcode: 0x19, Mnemonic: "ADD", Operand1: "HL", Operand2: "DE", Length: 1, Cycles: 8},
		{Opcode: 0x1A, Mnemonic: "LD", Operand1: "A", Operand2: "(DE)", Length: 1, Cycles: 8},
		{Opcode: 0x1B, Mnemonic: "DEC", Operand1: "DE", Length: 1, Cycles: 8},
		{Opcode: 0x1C, Mnemonic: "INC", Operand1: "E", Length: 1, Cycles: 4},
		{Opcode: 0x1D, Mnemonic: "DEC", Operand1: "E", Length: 1, Cycles: 4},
		{Opcode: 0x1E, Mnemonic: "LD", Operand1: "E", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0x1F, Mnemonic: "RRA", Length: 1, Cycles: 4},

		{Opcode: 0x20, Mnemonic: "JR", Operand1: "NZ", Operand2: "r8", Length: 2, Cycles: 8, CyclesTaken: 12},
		{Opcode: 0x21, Mnemonic: "LD", Operand1: "HL", Operand2: "d16", Length: 3, Cycles: 12},
		{Opcode: 0x22, Mnemonic: "LD", Operand1: "(HL+)", Operand2: "A", Length: 1, Cycles: 8},
		{Opcode: 0x23, Mnemonic: "INC", Operand1: "HL", Length: 1, Cycles: 8},
		{Opcode: 0x24, Mnemonic: "INC", Operand1: "H", Length: 1, Cycles: 4},
		{Opcode: 0x25, Mnemonic: "DEC", Operand1: "H", Length: 1, Cycles: 4},
		{Opcode: 0x26, Mnemonic: "LD", Operand1: "H", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0x27, Mnemonic: "DAA", Length: 1, Cycles: 4},
		{Opcode: 0x28, Mnemonic: "JR", Operand1: "Z", Operand2: "r8", Length: 2, Cycles: 8, CyclesTaken: 12},
		{Opcode: 0x29, Mnemonic: "ADD", Operand1: "HL", Operand2: "HL", Length: 1, Cycles: 8},
		{Opcode: 0x2A, Mnemonic: "LD", Operand1: "A", Operand2: "(HL+)", Length: 1, Cycles: 8},
		{Opcode: 0x2B, Mnemonic: "DEC", Operand1: "HL", Length: 1, Cycles: 8},
		{Opcode: 0x2C, Mnemonic: "INC", Operand1: "L", Length: 1, Cycles: 4},
		{Opcode: 0x2D, Mnemonic: "DEC", Operand1: "L", Length: 1, Cycles: 4},
		{Opcode: 0x2E, Mnemonic: "LD", Operand1: "L", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0x2F, Mnemonic: "CPL", Length: 1, Cycles: 4},

		{Opcode: 0x30, Mnemonic: "JR", Operand1: "NC", Operand2: "r8", Length: 2, Cycles: 8, CyclesTaken: 12},
		{Opcode: 0x31, Mnemonic: "LD", Operand1: "SP", Operand2: "d16", Length: 3, Cycles: 12},
		{Opcode: 0x32, Mnemonic: "LD", Operand1: "(HL-)", Operand2: "A", Length: 1, Cycles: 8},
		{Opcode: 0x33, Mnemonic: "INC", Operand1: "SP", Length: 1, Cycles: 8},
		{Opcode: 0x34, Mnemonic: "INC", Operand1: "(HL)", Length: 1, Cycles: 12},
		{Opcode: 0x35, Mnemonic: "DEC", Operand1: "(HL)", Length: 1, Cycles: 12},
		{Opcode: 0x36, Mnemonic: "LD", Operand1: "(HL)", Operand2: "d8", Length: 2, Cycles: 12},
		{Opcode: 0x37, Mnemonic: "SCF", Length: 1, Cycles: 4},
		{Opcode: 0x38, Mnemonic: "JR", Operand1: "C", Operand2: "r8", Length: 2, Cycles: 8, CyclesTaken: 12},
		{Opcode: 0x39, Mnemonic: "ADD", Operand1: "HL", Operand2: "SP", Length: 1, Cycles: 8},
		{Opcode: 0x3A, Mnemonic: "LD", Operand1: "A", Operand2: "(HL-)", Length: 1, Cycles: 8},
		{Opcode: 0x3B, Mnemonic: "DEC", Operand1: "SP", Length: 1, Cycles: 8},
		{Opcode: 0x3C, Mnemonic: "INC", Operand1: "A", Length: 1, Cycles: 4},
		{Opcode: 0x3D, Mnemonic: "DEC", Operand1: "A", Length: 1, Cycles: 4},
		{Opcode: 0x3E, Mnemonic: "LD", Operand1: "A", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0x3F, Mnemonic: "CCF", Length: 1, Cycles: 4},

		{Opcode: 0xC0, Mnemonic: "RET", Operand1: "NZ", Length: 1, Cycles: 8, CyclesTaken: 20},
		{Opcode: 0xC1, Mnemonic: "POP", Operand1: "BC", Length: 1, Cycles: 12},
		{Opcode: 0xC2, Mnemonic: "JP", Operand1: "NZ", Operand2: "a16", Length: 3, Cycles: 12, CyclesTaken: 16},
		{Opcode: 0xC3, Mnemonic: "JP", Operand1: "a16", Length: 3, Cycles: 16},
		{Opcode: 0xC4, Mnemonic: "CALL", Operand1: "NZ", Operand2: "a16", Length: 3, Cycles: 12, CyclesTaken: 24},
		{Opcode: 0xC5, Mnemonic: "PUSH", Operand1: "BC", Length: 1, Cycles: 16},
		{Opcode: 0xC6, Mnemonic: "ADD", Operand1: "A", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0xC7, Mnemonic: "RST", Operand1: "$00", Length: 1, Cycles: 16},
		{Opcode: 0xC8, Mnemonic: "RET", Operand1: "Z", Length: 1, Cycles: 8, CyclesTaken: 20},
		{Opcode: 0xC9, Mnemonic: "RET", Length: 1, Cycles: 16},
		{Opcode: 0xCA, Mnemonic: "JP", Operand1: "Z", Operand2: "a16", Length: 3, Cycles: 12, CyclesTaken: 16},
		// 0xCB is the prefix byte for CBCatalog, never a standalone entry.
		{Opcode: 0xCC, Mnemonic: "CALL", Operand1: "Z", Operand2: "a16", Length: 3, Cycles: 12, CyclesTaken: 24},
		{Opcode: 0xCD, Mnemonic: "CALL", Operand1: "a16", Length: 3, Cycles: 24},
		{Opcode: 0xCE, Mnemonic: "ADC", Operand1: "A", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0xCF, Mnemonic: "RST", Operand1: "$08", Length: 1, Cycles: 16},

		{Opcode: 0xD0, Mnemonic: "RET", Operand1: "NC", Length: 1, Cycles: 8, CyclesTaken: 20},
		{Opcode: 0xD1, Mnemonic: "POP", Operand1: "DE", Length: 1, Cycles: 12},
		{Opcode: 0xD2, Mnemonic: "JP", Operand1: "NC", Operand2: "a16", Length: 3, Cycles: 12, CyclesTaken: 16},
		{Opcode: 0xD4, Mnemonic: "CALL", Operand1: "NC", Operand2: "a16", Length: 3, Cycles: 12, CyclesTaken: 24},
		{Opcode: 0xD5, Mnemonic: "PUSH", Operand1: "DE", Length: 1, Cycles: 16},
		{Opcode: 0xD6, Mnemonic: "SUB", Operand1: "d8", Length: 2, Cycles: 8},
		{Opcode: 0xD7, Mnemonic: "RST", Operand1: "$10", Length: 1, Cycles: 16},
		{Opcode: 0xD8, Mnemonic: "RET", Operand1: "C", Length: 1, Cycles: 8, CyclesTaken: 20},
		{Opcode: 0xD9, Mnemonic: "RETI", Length: 1, Cycles: 16},
		{Opcode: 0xDA, Mnemonic: "JP", Operand1: "C", Operand2: "a16", Length: 3, Cycles: 12, CyclesTaken: 16},
		{Opcode: 0xDC, Mnemonic: "CALL", Operand1: "C", Operand2: "a16", Length: 3, Cycles: 12, CyclesTaken: 24},
		{Opcode: 0xDE, Mnemonic: "SBC", Operand1: "A", Operand2: "d8", Length: 2, Cycles: 8},
		{Opcode: 0xDF, Mnemonic: "RST", Operand1: "$18", Length: 1, Cycles: 16},

		{Opcode: 0xE0, Mnemonic: "LDH", Operand1: "a8", Operand2: "A", Length: 2, Cycles: 12},
		{Opcode: 0xE1, Mnemonic: "POP", Operand1: "HL", Length: 1, Cycles: 12},
		{Opcode: 0xE2, Mnemonic: "LD", Operand1: "(C)", Operand2: "A", Length: 1, Cycles: 8},
		{Opcode: 0xE5, Mnemonic: "PUSH", Operand1: "HL", Length: 1, Cycles: 16},
		{Opcode: 0xE6, Mnemonic: "AND", Operand1: "d8", Length: 2, Cycles: 8},
		{Opcode: 0xE7, Mnemonic: "RST", Operand1: "$20", Length: 1, Cycles: 16},
		{Opcode: 0xE8, Mnemonic: "ADD", Operand1: "SP", Operand2: "r8", Length: 2, Cycles: 16},
		{Opcode: 0xE9, Mnemonic: "JP", Operand1: "(HL)", Length: 1, Cycles: 4},
		{Opcode: 0xEA, Mnemonic: "LD", Operand1: "(a16)", Operand2: "A", Length: 3, Cycles: 16},
		{Opcode: 0xEE, Mnemonic: "XOR", Operand1: "d8", Length: 2, Cycles: 8},
		{Opcode: 0xEF, Mnemonic: "RST", Operand1: "$28", Length: 1, Cycles: 16},

		{Opcode: 0xF0, Mnemonic: "LDH", Operand1: "A", Operand2: "a8", Length: 2, Cycles: 12},
		{Opcode: 0xF1, Mnemonic: "POP", Operand1: "AF", Length: 1, Cycles: 12},
		{Opcode: 0xF2, Mnemonic: "LD", Operand1: "A", Operand2: "(C)", Length: 1, Cycles: 8},
		{Opcode: 0xF3, Mnemonic: "DI", Length: 1, Cycles: 4},
		{Opcode: 0xF5, Mnemonic: "PUSH", Operand1: "AF", Length: 1, Cycles: 16},
		{Opcode: 0xF6, Mnemonic: "OR", Operand1: "d8", Length: 2, Cycles: 8},
		{Opcode: 0xF7, Mnemonic: "RST", Operand1: "$30", Length: 1, Cycles: 16},
		{Opcode: 0xF8, Mnemonic: "LD", Operand1: "HL", Operand2: "SP+r8", Length: 2, Cycles: 12},
		{Opcode: 0xF9, Mnemonic: "LD", Operand1: "SP", Operand2: "HL", Length: 1, Cycles: 8},
		{Opcode: 0xFA, Mnemonic: "LD", Operand1: "A", Operand2: "(a16)", Length: 3, Cycles: 16},
		{Opcode: 0xFB, Mnemonic: "EI", Length: 1, Cycles: 4},
		{Opcode: 0xFE, Mnemonic: "CP", Operand1: "d8", Length: 2, Cycles: 8},
		{Opcode: 0xFF, Mnemonic: "RST", Operand1: "$38", Length: 1, Cycles: 16},
	}
	for _, e := range rows {
		add(e)
	}
}

// addLDBlock generates the LD r,r' grid at 0x40-0x7F. 0x76, which the grid
// would otherwise assign to "LD (HL),(HL)", is HALT.
func addLDBlock() {
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			opcode := uint16(0x40 + dst*8 + src)
			if opcode == 0x76 {
				add(Entry{Opcode: opcode, Mnemonic: "HALT", Length: 1, Cycles: 4})
				continue
			}
			cycles := 4
			if eightBitRegs[dst] == "(HL)" || eightBitRegs[src] == "(HL)" {
				cycles = 8
			}
			add(Entry{
				Opcode: opcode, Mnemonic: "LD",
				Operand1: eightBitRegs[dst], Operand2: eightBitRegs[src],
				Length: 1, Cycles: cycles,
			})
		}
	}
}

// addALUBlock generates the 8-bit accumulator ALU grid at 0x80-0xBF.
// ADD/ADC/SBC carry an explicit "A" destination operand; SUB/AND/XOR/OR/CP
// conventionally omit it.
func addALUBlock() {
	ops := [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
	explicitA := map[string]bool{"ADD": true, "ADC": true, "SBC": true}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			opcode := uint16(0x80 + row*8 + col)
			mnemonic := ops[row]
			reg := eightBitRegs[col]
			cycles := 4
			if reg == "(HL)" {
				cycles = 8
			}
			var op1, op2 string
			if explicitA[mnemonic] {
				op1, op2 = "A", reg
			} else {
				op1 = reg
			}
			add(Entry{
				Opcode: opcode, Mnemonic: mnemonic, Operand1: op1, Operand2: op2,
				Length: 1, Cycles: cycles,
			})
		}
	}
}

// addCBBlock generates the entire $CB-prefixed table. Rows 0x00-0x3F are
// eight rotate/shift operations over the 8 registers; rows 0x40-0xFF are
// BIT/RES/SET, each spanning bit indices 0-7 across the same 8 registers.
func addCBBlock() {
	rotateOps := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			opcode := uint16(0xCB00 | (row*8 + col))
			reg := eightBitRegs[col]
			cycles := 8
			if reg == "(HL)" {
				cycles = 16
			}
			add(Entry{Opcode: opcode, Mnemonic: rotateOps[row], Operand1: reg, Length: 2, Cycles: cycles})
		}
	}
	bitOps := [3]string{"BIT", "RES", "SET"}
	for opIdx, mnemonic := range bitOps {
		base := 0x40 + opIdx*0x40
		for bit := 0; bit < 8; bit++ {
			for col := 0; col < 8; col++ {
				opcode := uint16(0xCB00 | (base + bit*8 + col))
				reg := eightBitRegs[col]
				cycles := 8
				if reg == "(HL)" {
					if mnemonic == "BIT" {
						cycles = 12
					} else {
						cycles = 16
					}
				}
				add(Entry{
					Opcode: opcode, Mnemonic: mnemonic,
					Operand1: bitIndex(bit), Operand2: reg,
					Length: 2, Cycles: cycles,
				})
			}
		}
	}
}

func bitIndex(n int) string {
	const digits = "01234567"
	return string(digits[n])
}
