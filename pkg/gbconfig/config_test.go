package gbconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ROMBanks != 2 || cfg.ROMSize() != 0x8000 {
		t.Fatalf("default ROM = %d banks / %d bytes, want 2 / 32768", cfg.ROMBanks, cfg.ROMSize())
	}
	if cfg.FillByte != 0 {
		t.Fatalf("default fill byte = %d, want 0", cfg.FillByte)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gbzasm.conf")
	data := "[output]\ndir = \"build\"\nfill = 255\n\n[memory]\nrom_banks = 4\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "build" || cfg.FillByte != 255 || cfg.ROMBanks != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadFill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gbzasm.conf")
	if err := os.WriteFile(path, []byte("[output]\nfill = 300\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for out-of-range fill byte")
	}
}
