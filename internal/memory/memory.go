// Package memory implements the GBA's flat-RAM memory-mapped devices: BIOS,
// on-board/on-chip work RAM, video RAM, OAM and palette RAM. Each device
// satisfies interfaces.MemoryDevice; its Contains reports the address range
// it answers for, and internal/bus.Bus hands each access to the first device
// that claims it. Devices index their backing store by address modulo its
// size rather than by offset from their base address.
package memory

const (
	BIOS_START  = 0x00000000
	BIOS_END    = 0x00003FFF
	BIOS_SIZE   = BIOS_END - BIOS_START + 1 // 16KB
	EWRAM_START = 0x02000000
	EWRAM_END   = 0x0203FFFF
	EWRAM_SIZE  = EWRAM_END - EWRAM_START + 1 // 256KB
	IWRAM_START = 0x03000000
	IWRAM_END   = 0x03007FFF
	IWRAM_SIZE  = IWRAM_END - IWRAM_START + 1 // 32KB
	PALRAM_START = 0x05000000
	PALRAM_END   = 0x050003FF
	PALRAM_SIZE  = PALRAM_END - PALRAM_START + 1 // 1KB
	VRAM_START  = 0x06000000
	VRAM_END    = 0x06017FFF
	VRAM_SIZE   = VRAM_END - VRAM_START + 1 // 96KB
	OAM_START   = 0x07000000
	OAM_END     = 0x070003FF
	OAM_SIZE    = OAM_END - OAM_START + 1 // 1KB
)
