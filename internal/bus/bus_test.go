package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goba/internal/cartridge"
	"goba/internal/io"
	"goba/internal/memory"
)

func newTestBus() *Bus {
	return NewBus(memory.NewBlankBIOS(), memory.NewEWRAM(), memory.NewIWRAM(), io.NewIORegs(), cartridge.NewCartridge(make([]byte, 0x1000)))
}

func TestBusDispatchesToEWRAM(t *testing.T) {
	b := newTestBus()
	b.Write32(memory.EWRAM_START+8, 0x11223344)
	assert.Equal(t, uint32(0x11223344), b.Read32(memory.EWRAM_START+8))
}

func TestBusDispatchesToIWRAM(t *testing.T) {
	b := newTestBus()
	b.Write16(memory.IWRAM_START, 0xBEEF)
	assert.Equal(t, uint16(0xBEEF), b.Read16(memory.IWRAM_START))
}

func TestBusDispatchesToCartridgeSRAM(t *testing.T) {
	b := newTestBus()
	b.Write8(cartridge.SRAM_START+1, 0x9A)
	assert.Equal(t, uint8(0x9A), b.Read8(cartridge.SRAM_START+1))
}

func TestBusUnmappedReadReturnsOpenBusValue(t *testing.T) {
	b := newTestBus()
	assert.Equal(t, uint8(0xFF), b.Read8(0x00800000))
	assert.Equal(t, uint32(0xFFFFFFFF), b.Read32(0x00800000))
}

func TestBusTickAccumulatesCycles(t *testing.T) {
	b := newTestBus()
	b.Tick(4)
	b.Tick(6)
	require.EqualValues(t, 10, b.CycleCount)
}
