package memory

import (
	"fmt"
	"os"

	"goba/internal/interfaces"
)

// BIOS is the GBA's 16KB internal boot ROM, mapped at 0x00000000. Real
// hardware ships it masked into silicon; here it is loaded from a file the
// caller supplies (a dumped BIOS image, or any 16KB substitute for testing).
type BIOS struct {
	data []byte
}

// NewBIOS loads a BIOS image from path. The image is zero-padded or
// truncated to BIOS_SIZE.
func NewBIOS(path string) (interfaces.MemoryDevice, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bios: %w", err)
	}
	data := make([]byte, BIOS_SIZE)
	copy(data, raw)
	return &BIOS{data: data}, nil
}

// NewBlankBIOS returns a BIOS device backed by zeroed memory, for running
// the core against a cartridge directly without a boot ROM image.
func NewBlankBIOS() interfaces.MemoryDevice {
	return &BIOS{data: make([]byte, BIOS_SIZE)}
}

func (b *BIOS) Contains(addr uint32) bool {
	return addr >= BIOS_START && addr <= BIOS_END
}

func (b *BIOS) Read8(addr uint32) uint8 {
	return b.data[addr%uint32(len(b.data))]
}

func (b *BIOS) ReadHalfWord(addr uint32) uint16 {
	lo := uint16(b.Read8(addr))
	hi := uint16(b.Read8(addr + 1))
	return lo | hi<<8
}

func (b *BIOS) ReadWord(addr uint32) uint32 {
	lo := uint32(b.ReadHalfWord(addr))
	hi := uint32(b.ReadHalfWord(addr + 2))
	return lo | hi<<16
}

// Write8, WriteHalfWord and WriteWord are no-ops: the boot ROM is
// write-protected on real hardware and silently discards CPU writes.
func (b *BIOS) Write8(addr uint32, value uint8)       {}
func (b *BIOS) WriteHalfWord(addr uint32, value uint16) {}
func (b *BIOS) WriteWord(addr uint32, value uint32)     {}
