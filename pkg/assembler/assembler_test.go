package assembler

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gbztools/gbzasm/internal/source"
)

func newDriver() *Driver {
	return NewDriver(NewContext(nil))
}

func assemble(t *testing.T, lines ...string) *Driver {
	t.Helper()
	d := newDriver()
	r := source.NewLineReader(strings.NewReader(strings.Join(lines, "\n")))
	if err := d.Assemble(r); err != nil {
		t.Fatalf("Assemble: unexpected error: %v", err)
	}
	return d
}

func imageBytes(t *testing.T, d *Driver) []byte {
	t.Helper()
	segs := d.Context().Image.Segments()
	var out []byte
	for _, s := range segs {
		out = append(out, s.Bytes...)
	}
	return out
}

func TestAssembleDefine(t *testing.T) {
	d := assemble(t, "DEF VAR_NAME EQU $0100")
	v, ok := d.Context().Labels.ValueOf("VAR_NAME")
	if !ok || v != 256 {
		t.Fatalf("VAR_NAME = (%d, %v), want (256, true)", v, ok)
	}
}

func TestAssembleStorage(t *testing.T) {
	d := assemble(t,
		"DS $05 $01 $02 $03",
		`DB $FF "Hello"`,
		"DW $FFD2 $1234",
	)
	want := []byte{
		0x01, 0x02, 0x03, 0x01, 0x02,
		0xFF, 0x48, 0x65, 0x6C, 0x6C, 0x6F,
		0xD2, 0xFF, 0x34, 0x12,
	}
	if got := imageBytes(t, d); !bytes.Equal(got, want) {
		t.Fatalf("image = % X, want % X", got, want)
	}
}

func TestAssembleSectionMovesPointer(t *testing.T) {
	d := assemble(t,
		`SECTION "coolstuff", WRAM0[$0567]`,
		"DB $AA",
	)
	ctx := d.Context()
	sec, ok := ctx.Sections.Find("coolstuff")
	if !ok || sec.Address != 0xC000+0x0567 {
		t.Fatalf("section = %+v ok=%v, want address %#x", sec, ok, 0xC000+0x0567)
	}
	if ctx.IP.Base() != 0xC567 {
		t.Fatalf("IP base = %#x, want 0xC567", ctx.IP.Base())
	}
	segs := ctx.Image.Segments()
	if len(segs) != 1 || segs[0].Address != 0xC567 || !bytes.Equal(segs[0].Bytes, []byte{0xAA}) {
		t.Fatalf("segments = %+v", segs)
	}
}

func TestAssembleLabelThenInstruction(t *testing.T) {
	d := assemble(t,
		"DEF USER_IO = $FF00",
		"LD HL, USER_IO",
	)
	if got := imageBytes(t, d); !bytes.Equal(got, []byte{0x21, 0x00, 0xFF}) {
		t.Fatalf("image = % X, want 21 00 FF", got)
	}
}

func TestAssembleSymbolAndInstructionOnOneLine(t *testing.T) {
	d := assemble(t,
		`SECTION "main", ROM0[$0200]`,
		"prog_main: LD A, $10",
		"JP prog_main:",
	)
	ctx := d.Context()
	sym, ok := ctx.Symbols.Find("prog_main")
	if !ok || sym.Address != 0x0200 {
		t.Fatalf("prog_main = %+v ok=%v, want address 0x0200", sym, ok)
	}
	want := []byte{0x3E, 0x10, 0xC3, 0x00, 0x02}
	if got := imageBytes(t, d); !bytes.Equal(got, want) {
		t.Fatalf("image = % X, want % X", got, want)
	}
}

func TestAssembleForwardReferenceFixup(t *testing.T) {
	d := assemble(t,
		`SECTION "main", ROM0[$0150]`,
		"JP entry_point:",
		"NOP",
		"entry_point: LD A, $01",
	)
	// JP at 0x0150 (3 bytes), NOP at 0x0153, entry_point at 0x0154.
	want := []byte{0xC3, 0x54, 0x01, 0x00, 0x3E, 0x01}
	if got := imageBytes(t, d); !bytes.Equal(got, want) {
		t.Fatalf("image = % X, want % X", got, want)
	}
}

func TestAssembleUnresolvedReferenceFails(t *testing.T) {
	d := newDriver()
	r := source.NewLineReader(strings.NewReader("JP nowhere:"))
	err := d.Assemble(r)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestAssembleReservedDirectiveRejected(t *testing.T) {
	d := newDriver()
	err := d.AssembleLine("MACRO my_macro")
	if !errors.Is(err, ErrReservedDirective) {
		t.Fatalf("expected ErrReservedDirective, got %v", err)
	}
}

func TestAssembleRejectsBadSymbolName(t *testing.T) {
	d := newDriver()
	if err := d.AssembleLine("1bad: NOP"); err == nil {
		t.Fatalf("expected error for symbol starting with a digit")
	}
}

func TestAssembleSkipsCommentOnlyLines(t *testing.T) {
	d := assemble(t, "; nothing here", "", "NOP")
	if got := imageBytes(t, d); !bytes.Equal(got, []byte{0x00}) {
		t.Fatalf("image = % X, want 00", got)
	}
}

func TestContextReset(t *testing.T) {
	d := assemble(t, "DEF X EQU $01", "NOP")
	ctx := d.Context()
	ctx.Reset()
	if _, ok := ctx.Labels.ValueOf("X"); ok {
		t.Fatalf("labels should be empty after Reset")
	}
	if ctx.Image.SegmentCount() != 0 {
		t.Fatalf("image should be empty after Reset")
	}
	if ctx.IP.Current() != 0 {
		t.Fatalf("IP should be rewound after Reset")
	}
}
