package interfaces

// BusInterface is the flat 32-bit address space contract the CPU core reads
// and writes through. Per spec, the core never inspects memory-map
// boundaries itself — Read/Write calls are the entire collaborator surface.
type BusInterface interface {
	Read8(addr uint32) uint8
	Write8(addr uint32, value uint8)
	Read16(addr uint32) uint16
	Write16(addr uint32, value uint16)
	Read32(addr uint32) uint32
	Write32(addr uint32, value uint32)
	Tick(cycles int)
}
