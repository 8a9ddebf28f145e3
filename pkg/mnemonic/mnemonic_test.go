package mnemonic

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gbztools/gbzasm/pkg/symtab"
	"github.com/gbztools/gbzasm/pkg/token"
)

type testEnv struct {
	labels  *symtab.LabelStore
	symbols *symtab.SymbolStore
}

func newTestEnv() *testEnv {
	return &testEnv{labels: symtab.NewLabelStore(), symbols: symtab.NewSymbolStore()}
}

func (e *testEnv) FindLabel(name string) (symtab.Label, bool)   { return e.labels.Find(name) }
func (e *testEnv) FindSymbol(name string) (symtab.Symbol, bool) { return e.symbols.Find(name) }

func resolveLine(t *testing.T, line string, env Env) *Mnemonic {
	t.Helper()
	m, err := Resolve(token.NewTokenizer().Tokenize(line), env)
	if err != nil {
		t.Fatalf("Resolve(%q): unexpected error: %v", line, err)
	}
	return m
}

func TestResolveCodes(t *testing.T) {
	cases := []struct {
		line string
		want []byte
	}{
		{"NOP", []byte{0x00}},
		{"LD B, C", []byte{0x41}},
		{"LD (HL), $FF", []byte{0x36, 0xFF}},
		{"LDH ($20), A", []byte{0xE0, 0x20}},
		{"LDH A, ($32)", []byte{0xF0, 0x32}},
		{"JR NZ, $41", []byte{0x20, 0x41}},
		{"ADD SP, 0x10", []byte{0xE8, 0x10}},
		{"LD HL, SP+$10", []byte{0xF8, 0x10}},
		{"LD ($FF00+C), A", []byte{0xE2}},
		{"LD A, (HL+)", []byte{0x2A}},
		{"JP $0150", []byte{0xC3, 0x50, 0x01}},
		{"RST $18", []byte{0xDF}},
		{"BIT 7, A", []byte{0xCB, 0x7F}},
		{"SWAP (HL)", []byte{0xCB, 0x36}},
	}
	env := newTestEnv()
	for _, c := range cases {
		m := resolveLine(t, c.line, env)
		if !bytes.Equal(m.Code, c.want) {
			t.Fatalf("Resolve(%q).Code = % X, want % X", c.line, m.Code, c.want)
		}
		if len(m.Code) != m.Entry.Length {
			t.Fatalf("Resolve(%q): code length %d != entry length %d", c.line, len(m.Code), m.Entry.Length)
		}
	}
}

func TestResolveLabelOperandWidth(t *testing.T) {
	env := newTestEnv()
	env.labels.Push(symtab.Label{Name: "USER_IO", Value: 0xFF00}, false)
	m := resolveLine(t, "LD HL, USER_IO", env)
	want := []byte{0x21, 0x00, 0xFF}
	if !bytes.Equal(m.Code, want) {
		t.Fatalf("Code = % X, want % X", m.Code, want)
	}
	if m.Operand2 != "$FF00" {
		t.Fatalf("Operand2 = %q, want $FF00", m.Operand2)
	}
}

func TestResolveSymbolAndResolveAgain(t *testing.T) {
	env := newTestEnv()
	sym, err := symtab.ParseSymbol("prog_main:")
	if err != nil {
		t.Fatalf("ParseSymbol: %v", err)
	}
	sym.Address = 0x0200
	env.symbols.Push(sym, false)

	m := resolveLine(t, "JP prog_main:", env)
	if m.Entry.Opcode != 0xC3 {
		t.Fatalf("Opcode = %#x, want 0xC3", m.Entry.Opcode)
	}
	if m.Operand1 != "$0200" {
		t.Fatalf("Operand1 = %q, want $0200", m.Operand1)
	}

	sym.Address = 0xFFD2
	env.symbols.Push(sym, true)
	if err := m.ResolveAgain(env); err != nil {
		t.Fatalf("ResolveAgain: %v", err)
	}
	if m.Operand1 != "$FFD2" || m.Entry.Opcode != 0xC3 {
		t.Fatalf("after ResolveAgain: operand1=%q opcode=%#x", m.Operand1, m.Entry.Opcode)
	}
	if !bytes.Equal(m.Code, []byte{0xC3, 0xD2, 0xFF}) {
		t.Fatalf("after ResolveAgain: Code = % X", m.Code)
	}
}

func TestResolveForwardReferenceIsUnresolved(t *testing.T) {
	env := newTestEnv()
	m := resolveLine(t, "CALL later_routine", env)
	if !m.Unresolved {
		t.Fatalf("expected forward reference to be flagged unresolved")
	}
	if !bytes.Equal(m.Code, []byte{0xCD, 0x00, 0x00}) {
		t.Fatalf("unresolved Code = % X, want CD 00 00", m.Code)
	}

	env.labels.Push(symtab.Label{Name: "later_routine", Value: 0x4000}, false)
	if err := m.ResolveAgain(env); err != nil {
		t.Fatalf("ResolveAgain: %v", err)
	}
	if m.Unresolved {
		t.Fatalf("still unresolved after definition")
	}
	if !bytes.Equal(m.Code, []byte{0xCD, 0x00, 0x40}) {
		t.Fatalf("resolved Code = % X, want CD 00 40", m.Code)
	}
}

func TestResolveUnknownMnemonic(t *testing.T) {
	group := token.NewTokenizer().Tokenize("FOO A, B")
	_, err := Resolve(group, newTestEnv())
	var mnErr *InvalidMnemonicError
	if !errors.As(err, &mnErr) {
		t.Fatalf("expected InvalidMnemonicError, got %v", err)
	}
}

func TestResolveBadOperand(t *testing.T) {
	_, err := Resolve(token.NewTokenizer().Tokenize("LD B, BC"), newTestEnv())
	var opErr *InvalidOperandError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected InvalidOperandError, got %v", err)
	}
}
