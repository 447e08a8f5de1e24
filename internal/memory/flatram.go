package memory

// flatRAM is a byte-addressable little-endian memory region shared by every
// RAM-backed device in the map (EWRAM, IWRAM, VRAM, OAM, palette RAM). Each
// concrete type embeds one and adds its own address-range Contains check.
type flatRAM struct {
	data []byte
}

func newFlatRAM(size uint32) flatRAM {
	return flatRAM{data: make([]byte, size)}
}

func (f *flatRAM) Read8(addr uint32) uint8 {
	return f.data[addr%uint32(len(f.data))]
}

func (f *flatRAM) Write8(addr uint32, value uint8) {
	f.data[addr%uint32(len(f.data))] = value
}

func (f *flatRAM) ReadHalfWord(addr uint32) uint16 {
	lo := uint16(f.Read8(addr))
	hi := uint16(f.Read8(addr + 1))
	return lo | hi<<8
}

func (f *flatRAM) WriteHalfWord(addr uint32, value uint16) {
	f.Write8(addr, uint8(value))
	f.Write8(addr+1, uint8(value>>8))
}

func (f *flatRAM) ReadWord(addr uint32) uint32 {
	lo := uint32(f.ReadHalfWord(addr))
	hi := uint32(f.ReadHalfWord(addr + 2))
	return lo | hi<<16
}

func (f *flatRAM) WriteWord(addr uint32, value uint32) {
	f.WriteHalfWord(addr, uint16(value))
	f.WriteHalfWord(addr+2, uint16(value>>16))
}
