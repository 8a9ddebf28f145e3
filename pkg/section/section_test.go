package section

import "testing"

func TestNewSectionDefaultsToBlockStart(t *testing.T) {
	sec, err := NewSection("game_vars", "WRAM0", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sec.Address != 0xC000 {
		t.Fatalf("Address = %#x, want 0xC000", sec.Address)
	}
}

func TestNewSectionWithOffset(t *testing.T) {
	offset := 0x0100
	sec, err := NewSection("tiles", "VRAM", &offset, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sec.Address != 0x8100 {
		t.Fatalf("Address = %#x, want 0x8100", sec.Address)
	}
}

func TestNewSectionRejectsUnknownRegion(t *testing.T) {
	if _, err := NewSection("bad", "NOPE", nil, nil, nil); err == nil {
		t.Fatalf("expected error for unknown memory region")
	}
}

func TestNewSectionRejectsBadBank(t *testing.T) {
	bank := 9
	if _, err := NewSection("s", "ROMX", nil, &bank, nil); err == nil {
		t.Fatalf("expected error for out-of-range bank")
	}
}

func TestNewSectionRejectsBadAlign(t *testing.T) {
	align := 3
	if _, err := NewSection("s", "ROMX", nil, nil, &align); err == nil {
		t.Fatalf("expected error for invalid alignment")
	}
}

func TestStoreReplaceByName(t *testing.T) {
	store := NewStore()
	a, _ := NewSection("vars", "WRAM0", nil, nil, nil)
	store.Push(a)
	b, _ := NewSection("VARS", "HRAM", nil, nil, nil)
	store.Push(b)
	if len(store.All()) != 1 {
		t.Fatalf("expected re-declaration to replace, got %d entries", len(store.All()))
	}
	found, ok := store.Find("vars")
	if !ok || found.Block.Name != "HRAM" {
		t.Fatalf("Find(vars) = %+v, want HRAM block", found)
	}
}
