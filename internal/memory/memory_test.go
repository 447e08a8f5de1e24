package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEWRAMRoundTripWord(t *testing.T) {
	e := NewEWRAM()
	e.WriteWord(EWRAM_START+0x10, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), e.ReadWord(EWRAM_START+0x10))
}

func TestEWRAMLittleEndianByteOrder(t *testing.T) {
	e := NewEWRAM()
	e.WriteWord(EWRAM_START, 0x01020304)
	assert.Equal(t, uint8(0x04), e.Read8(EWRAM_START))
	assert.Equal(t, uint8(0x03), e.Read8(EWRAM_START+1))
	assert.Equal(t, uint8(0x02), e.Read8(EWRAM_START+2))
	assert.Equal(t, uint8(0x01), e.Read8(EWRAM_START+3))
}

func TestEWRAMMirrorsAcrossItsRange(t *testing.T) {
	e := NewEWRAM()
	e.Write8(EWRAM_START+5, 0x42)
	assert.Equal(t, uint8(0x42), e.Read8(EWRAM_START+5+EWRAM_SIZE))
}

func TestEWRAMContainsBounds(t *testing.T) {
	e := NewEWRAM()
	assert.True(t, e.Contains(EWRAM_START))
	assert.True(t, e.Contains(0x02FFFFFF))
	assert.False(t, e.Contains(EWRAM_START-1))
	assert.False(t, e.Contains(0x03000000))
}

func TestIWRAMContainsBounds(t *testing.T) {
	i := NewIWRAM()
	assert.True(t, i.Contains(IWRAM_START))
	assert.True(t, i.Contains(0x03FFFFFF))
	assert.False(t, i.Contains(0x04000000))
}

func TestBIOSWritesAreDiscarded(t *testing.T) {
	b := NewBlankBIOS()
	before := b.ReadWord(0)
	b.WriteWord(0, 0xFFFFFFFF)
	assert.Equal(t, before, b.ReadWord(0), "BIOS is a read-only boot ROM")
}

func TestVRAMOAMPaletteRAMBounds(t *testing.T) {
	v := NewVRAM()
	assert.True(t, v.Contains(VRAM_START))
	assert.False(t, v.Contains(PALRAM_START))

	o := NewOAM()
	assert.True(t, o.Contains(OAM_START))

	p := NewPaletteRAM()
	assert.True(t, p.Contains(PALRAM_START))
}
