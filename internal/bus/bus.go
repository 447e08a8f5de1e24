// Package bus wires the ARMv4T core to the GBA's flat 32-bit address space.
// It owns no memory itself; it dispatches each access to whichever
// interfaces.MemoryDevice claims the address, mirroring GBATEK's memory map.
package bus

import (
	"goba/internal/cartridge"
	"goba/internal/interfaces"
	"goba/internal/io"
	"goba/internal/memory"
	"goba/util/dbg"
)

// Bus connects the CPU to every memory-mapped region. Devices are tried in
// map order; the first whose Contains reports true handles the access.
type Bus struct {
	BIOS       interfaces.MemoryDevice
	EWRAM      interfaces.MemoryDevice
	IWRAM      interfaces.MemoryDevice
	IORegs     *io.IORegs
	PaletteRAM interfaces.MemoryDevice
	VRAM       interfaces.MemoryDevice
	OAM        interfaces.MemoryDevice
	Cartridge  *cartridge.Cartridge

	devices    []interfaces.MemoryDevice
	CycleCount uint64
}

// NewBus assembles the bus from its memory-mapped devices. Pass a BIOS
// device built with memory.NewBIOS or memory.NewBlankBIOS.
func NewBus(bios interfaces.MemoryDevice, ewram, iwram interfaces.MemoryDevice, ioRegs *io.IORegs, cart *cartridge.Cartridge) *Bus {
	b := &Bus{
		BIOS:       bios,
		EWRAM:      ewram,
		IWRAM:      iwram,
		IORegs:     ioRegs,
		PaletteRAM: memory.NewPaletteRAM(),
		VRAM:       memory.NewVRAM(),
		OAM:        memory.NewOAM(),
		Cartridge:  cart,
	}
	b.devices = []interfaces.MemoryDevice{
		b.BIOS, b.EWRAM, b.IWRAM, b.IORegs, b.PaletteRAM, b.VRAM, b.OAM, b.Cartridge,
	}
	return b
}

var _ interfaces.BusInterface = (*Bus)(nil)

func (b *Bus) deviceFor(addr uint32) interfaces.MemoryDevice {
	for _, d := range b.devices {
		if d != nil && d.Contains(addr) {
			return d
		}
	}
	return nil
}

func (b *Bus) Read8(addr uint32) uint8 {
	if d := b.deviceFor(addr); d != nil {
		return d.Read8(addr)
	}
	dbg.Printf("bus: unmapped 8-bit read at %08X\n", addr)
	return 0xFF
}

func (b *Bus) Write8(addr uint32, value uint8) {
	if d := b.deviceFor(addr); d != nil {
		d.Write8(addr, value)
		return
	}
	dbg.Printf("bus: unmapped 8-bit write of %02X at %08X\n", value, addr)
}

func (b *Bus) Read16(addr uint32) uint16 {
	if d := b.deviceFor(addr); d != nil {
		return d.ReadHalfWord(addr)
	}
	dbg.Printf("bus: unmapped 16-bit read at %08X\n", addr)
	return 0xFFFF
}

func (b *Bus) Write16(addr uint32, value uint16) {
	if d := b.deviceFor(addr); d != nil {
		d.WriteHalfWord(addr, value)
		return
	}
	dbg.Printf("bus: unmapped 16-bit write of %04X at %08X\n", value, addr)
}

func (b *Bus) Read32(addr uint32) uint32 {
	if d := b.deviceFor(addr); d != nil {
		return d.ReadWord(addr)
	}
	dbg.Printf("bus: unmapped 32-bit read at %08X\n", addr)
	return 0xFFFFFFFF
}

func (b *Bus) Write32(addr uint32, value uint32) {
	if d := b.deviceFor(addr); d != nil {
		d.WriteWord(addr, value)
		return
	}
	dbg.Printf("bus: unmapped 32-bit write of %08X at %08X\n", value, addr)
}

// Tick advances the bus's own cycle accounting. Peripheral ticking (PPU,
// timers, DMA) is out of this core's scope; nothing is wired here yet.
func (b *Bus) Tick(cycles int) {
	b.CycleCount += uint64(cycles)
}
