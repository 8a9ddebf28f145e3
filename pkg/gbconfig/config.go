// Package gbconfig loads the optional assembler configuration file:
// output defaults and memory-map overrides the CLI applies around the
// core pipeline.
package gbconfig

import (
	"fmt"

	"github.com/retroenv/retrogolib/config"
)

// Config carries the assembler's tunable defaults.
type Config struct {
	OutputDir string `config:"output.dir"`
	FillByte  int    `config:"output.fill"`
	ROMBanks  int    `config:"memory.rom_banks"`
}

// Default returns the built-in configuration used when no config file is
// given: a 2-bank (32 KiB) ROM zero-filled into the current directory.
func Default() Config {
	return Config{
		OutputDir: ".",
		FillByte:  0x00,
		ROMBanks:  2,
	}
}

// Load reads path into a Config, starting from the built-in defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := config.Load(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.FillByte < 0 || c.FillByte > 0xFF {
		return fmt.Errorf("fill byte %d out of range [0,255]", c.FillByte)
	}
	if c.ROMBanks < 1 {
		return fmt.Errorf("rom bank count %d must be at least 1", c.ROMBanks)
	}
	return nil
}

// ROMSize returns the flattened image size in bytes: 16 KiB per bank.
func (c Config) ROMSize() int {
	return c.ROMBanks * 0x4000
}
