package memory

import "goba/internal/interfaces"

// IWRAM is the GBA's 32KB on-chip work RAM, mapped at 0x03000000 and
// mirrored through 0x03FFFFFF.
type IWRAM struct {
	flatRAM
}

func NewIWRAM() interfaces.MemoryDevice {
	return &IWRAM{flatRAM: newFlatRAM(IWRAM_SIZE)}
}

func (i *IWRAM) Contains(addr uint32) bool {
	return addr >= IWRAM_START && addr <= 0x03FFFFFF
}
