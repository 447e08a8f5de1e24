// Package io holds the flat backing store for the GBA's memory-mapped I/O
// register block (0x04000000-0x040003FF). The CPU core only needs a place
// for these registers to live and be addressable; decoding individual
// register semantics (DISPCNT, DMA control, timers, ...) belongs to the
// peripherals this core does not implement.
package io

import "goba/internal/interfaces"

type IORegs struct {
	regs [0x400]byte
}

func NewIORegs() *IORegs {
	return &IORegs{}
}

var _ interfaces.MemoryDevice = (*IORegs)(nil)

func (i *IORegs) Contains(addr uint32) bool {
	return addr >= 0x04000000 && addr <= 0x04FFFFFF
}

func (i *IORegs) offset(addr uint32) uint32 {
	return (addr - 0x04000000) % uint32(len(i.regs))
}

func (i *IORegs) GetReg(addr uint32) uint8 { return i.regs[addr] }

func (i *IORegs) SetReg(addr uint32, value uint8) { i.regs[addr] = value }

func (i *IORegs) Size() uint32 { return uint32(len(i.regs)) }

func (i *IORegs) Read8(addr uint32) uint8 { return i.regs[i.offset(addr)] }

func (i *IORegs) Write8(addr uint32, value uint8) { i.regs[i.offset(addr)] = value }

func (i *IORegs) ReadHalfWord(addr uint32) uint16 {
	lo := uint16(i.Read8(addr))
	hi := uint16(i.Read8(addr + 1))
	return lo | hi<<8
}

func (i *IORegs) WriteHalfWord(addr uint32, value uint16) {
	i.Write8(addr, uint8(value))
	i.Write8(addr+1, uint8(value>>8))
}

func (i *IORegs) ReadWord(addr uint32) uint32 {
	lo := uint32(i.ReadHalfWord(addr))
	hi := uint32(i.ReadHalfWord(addr + 2))
	return lo | hi<<16
}

func (i *IORegs) WriteWord(addr uint32, value uint32) {
	i.WriteHalfWord(addr, uint16(value))
	i.WriteHalfWord(addr+2, uint16(value>>16))
}
