// Package section models the Game Boy memory map: the fixed named memory
// regions a SECTION directive may target, and the sections the assembler
// has declared against them.
package section

import "fmt"

// AddressRange is an inclusive 16-bit address span.
type AddressRange struct {
	Start, End uint16
}

// Contains reports whether addr falls within r.
func (r AddressRange) Contains(addr uint16) bool {
	return addr >= r.Start && addr <= r.End
}

// Block is one named, fixed-range memory region.
type Block struct {
	Name  string
	Range AddressRange
}

// Blocks lists every memory region a SECTION directive may target, plus a
// BANK pseudo-region spanning the bank numbers 0-7. NewSection checks bank
// numbers directly and does not read the BANK entry. Ranges are the fixed
// Game Boy memory map addresses.
var Blocks = map[string]Block{
	"ROM0":  {"ROM0", AddressRange{0x0000, 0x3FFF}},
	"ROMX":  {"ROMX", AddressRange{0x4000, 0x7FFF}},
	"VRAM":  {"VRAM", AddressRange{0x8000, 0x9FFF}},
	"SRAM":  {"SRAM", AddressRange{0xA000, 0xBFFF}},
	"WRAM0": {"WRAM0", AddressRange{0xC000, 0xCFFF}},
	"WRAMX": {"WRAMX", AddressRange{0xD000, 0xDFFF}},
	"OAM":   {"OAM", AddressRange{0xFE00, 0xFE9F}},
	"HRAM":  {"HRAM", AddressRange{0xFF80, 0xFFFE}},
	"BANK":  {"BANK", AddressRange{0x0000, 0x0007}},
}

// validAlignments lists the alignment byte-counts ALIGN[] accepts.
var validAlignments = map[int]bool{0: true, 1: true, 2: true, 4: true, 8: true}

// Section is a single SECTION declaration.
type Section struct {
	Name    string
	Block   Block
	Offset  *uint16
	Bank    *int
	Align   *int
	Address int // block start plus offset
}

// NewSection validates and builds a Section for the named memory region.
func NewSection(name, blockName string, offset, bank, align *int) (*Section, error) {
	block, ok := Blocks[blockName]
	if !ok {
		return nil, &UnknownMemoryRegionError{Region: blockName}
	}
	if bank != nil && (*bank < 0 || *bank > 7) {
		return nil, fmt.Errorf("section: bank %d out of range [0,7]", *bank)
	}
	if align != nil && !validAlignments[*align] {
		return nil, fmt.Errorf("section: align %d must be one of 0,1,2,4,8", *align)
	}

	s := &Section{Name: name, Block: block, Bank: bank, Align: align, Address: int(block.Range.Start)}
	if offset != nil {
		if *offset < 0 || *offset > 0xFFFF {
			return nil, &OffsetOutOfRangeError{Section: name, Offset: *offset, Block: blockName}
		}
		o := uint16(*offset)
		s.Offset = &o
		s.Address = int(block.Range.Start) + *offset
	}
	return s, nil
}

// UnknownMemoryRegionError is returned when a SECTION names a region
// outside the fixed Blocks table.
type UnknownMemoryRegionError struct {
	Region string
}

func (e *UnknownMemoryRegionError) Error() string {
	return fmt.Sprintf("section: unknown memory region %q", e.Region)
}

// OffsetOutOfRangeError is returned when a SECTION's bracketed offset does
// not fit in 16 bits. An offset that reaches past its memory region's end
// is accepted.
type OffsetOutOfRangeError struct {
	Section string
	Offset  int
	Block   string
}

func (e *OffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("section: offset %d for %q in %s does not fit in 16 bits", e.Offset, e.Section, e.Block)
}
