package ip

import "testing"

func TestSetBaseAddress(t *testing.T) {
	p := New()
	p.SetBaseAddress(0xC000)
	if p.Base() != 0xC000 || p.Current() != 0xC000 {
		t.Fatalf("SetBaseAddress: base=%#x current=%#x, want both 0xC000", p.Base(), p.Current())
	}
}

func TestMoveLocationRelative(t *testing.T) {
	p := New()
	p.SetBaseAddress(0x0200)
	if err := p.MoveLocationRelative(0x10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Current() != 0x0210 {
		t.Fatalf("Current() = %#x, want 0x0210", p.Current())
	}
	if err := p.MoveLocationRelative(-0x0211); err == nil {
		t.Fatalf("expected out-of-range error for negative address")
	}
	if err := p.MoveLocationRelative(0xFFFF); err == nil {
		t.Fatalf("expected out-of-range error past 0xFFFF")
	}
}

func TestMoveRelativeSignedByte(t *testing.T) {
	cases := []struct {
		start uint16
		r8    byte
		want  uint16
	}{
		{0x0100, 0x41, 0x0141},
		{0x0100, 0x7F, 0x017F},
		{0x0100, 0x80, 0x0080}, // -128
		{0x0100, 0xFF, 0x00FF}, // -1
		{0x0100, 0xFE, 0x00FE}, // -2
	}
	for _, c := range cases {
		p := New()
		p.SetBaseAddress(c.start)
		if err := p.MoveRelative(c.r8); err != nil {
			t.Fatalf("MoveRelative(%#x): unexpected error: %v", c.r8, err)
		}
		if p.Current() != c.want {
			t.Fatalf("MoveRelative(%#x) from %#x = %#x, want %#x", c.r8, c.start, p.Current(), c.want)
		}
	}
}

func TestMoveRelativeOutOfRange(t *testing.T) {
	p := New()
	p.SetBaseAddress(0x0010)
	if err := p.MoveRelative(0x80); err == nil {
		t.Fatalf("expected error moving -128 from 0x0010")
	}
}

func TestAdvance(t *testing.T) {
	p := New()
	p.SetBaseAddress(0x4000)
	if err := p.Advance(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Current() != 0x4003 {
		t.Fatalf("Current() = %#x, want 0x4003", p.Current())
	}
	if p.Base() != 0x4000 {
		t.Fatalf("Base() should be unchanged by Advance, got %#x", p.Base())
	}
}
