package memory

import "goba/internal/interfaces"

// VRAM is the GBA's 96KB video RAM, mapped at 0x06000000. The CPU core
// treats it as plain flat RAM; pixel-format interpretation is a PPU concern
// outside this module's scope.
type VRAM struct {
	flatRAM
}

func NewVRAM() interfaces.MemoryDevice {
	return &VRAM{flatRAM: newFlatRAM(VRAM_SIZE)}
}

func (v *VRAM) Contains(addr uint32) bool {
	return addr >= VRAM_START && addr <= 0x06FFFFFF
}

// OAM is the GBA's 1KB object attribute memory, mapped at 0x07000000.
type OAM struct {
	flatRAM
}

func NewOAM() interfaces.MemoryDevice {
	return &OAM{flatRAM: newFlatRAM(OAM_SIZE)}
}

func (o *OAM) Contains(addr uint32) bool {
	return addr >= OAM_START && addr <= 0x07FFFFFF
}

// PaletteRAM is the GBA's 1KB palette RAM, mapped at 0x05000000.
type PaletteRAM struct {
	flatRAM
}

func NewPaletteRAM() interfaces.MemoryDevice {
	return &PaletteRAM{flatRAM: newFlatRAM(PALRAM_SIZE)}
}

func (p *PaletteRAM) Contains(addr uint32) bool {
	return addr >= PALRAM_START && addr <= 0x05FFFFFF
}
