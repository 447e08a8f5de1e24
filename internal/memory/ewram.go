package memory

import "goba/internal/interfaces"

// EWRAM is the GBA's 256KB external work RAM, mapped at 0x02000000 and
// mirrored through 0x02FFFFFF.
type EWRAM struct {
	flatRAM
}

func NewEWRAM() interfaces.MemoryDevice {
	return &EWRAM{flatRAM: newFlatRAM(EWRAM_SIZE)}
}

func (e *EWRAM) Contains(addr uint32) bool {
	return addr >= EWRAM_START && addr <= 0x02FFFFFF
}
