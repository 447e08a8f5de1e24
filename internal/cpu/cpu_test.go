package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBus is a flat 64KB array-backed BusInterface, enough to drive full
// fetch/decode/execute scenarios without the real memory map.
type testBus struct {
	data [0x10000]byte
}

func (b *testBus) Read8(addr uint32) uint8  { return b.data[addr&0xFFFF] }
func (b *testBus) Write8(addr uint32, v uint8) { b.data[addr&0xFFFF] = v }
func (b *testBus) Read16(addr uint32) uint16 {
	return uint16(b.Read8(addr)) | uint16(b.Read8(addr+1))<<8
}
func (b *testBus) Write16(addr uint32, v uint16) {
	b.Write8(addr, uint8(v))
	b.Write8(addr+1, uint8(v>>8))
}
func (b *testBus) Read32(addr uint32) uint32 {
	return uint32(b.Read16(addr)) | uint32(b.Read16(addr+2))<<16
}
func (b *testBus) Write32(addr uint32, v uint32) {
	b.Write16(addr, uint16(v))
	b.Write16(addr+2, uint16(v>>16))
}
func (b *testBus) Tick(cycles int) {}

func armDP(cond uint8, opcode ARMDataProcessingOperation, s bool, rn, rd, rm uint8) uint32 {
	word := uint32(cond)<<28 | uint32(opcode)<<21 | uint32(rn)<<16 | uint32(rd)<<12 | uint32(rm)
	if s {
		word |= 1 << 20
	}
	return word
}

func armBranchWord(cond uint8, link bool, offsetBytes int32) uint32 {
	raw := uint32(offsetBytes/4) & 0xFFFFFF
	word := uint32(cond)<<28 | 0b101<<25 | raw
	if link {
		word |= 1 << 24
	}
	return word
}

func armSWIWord(cond uint8, comment uint32) uint32 {
	return uint32(cond)<<28 | 0b1111<<24 | (comment & 0xFFFFFF)
}

func armLoadStoreWord(cond uint8, load, byteXfer bool, rn, rd uint8, offset12 uint16) uint32 {
	word := uint32(cond)<<28 | 0b01<<26 | 1<<24 | 1<<23 | uint32(rn)<<16 | uint32(rd)<<12 | uint32(offset12&0xFFF)
	if load {
		word |= 1 << 20
	}
	if byteXfer {
		word |= 1 << 22
	}
	return word
}

// armLoadStoreTWord builds a post-indexed load/store with W=1 (the T-variant
// encoding: LDRT/STRT/LDRBT/STRBT), which on this target behaves identically
// to plain post-indexed.
func armLoadStoreTWord(cond uint8, load, byteXfer bool, rn, rd uint8, offset12 uint16) uint32 {
	word := uint32(cond)<<28 | 0b01<<26 | 1<<23 | 1<<21 | uint32(rn)<<16 | uint32(rd)<<12 | uint32(offset12&0xFFF)
	if load {
		word |= 1 << 20
	}
	if byteXfer {
		word |= 1 << 22
	}
	return word
}

func armSwapWord(cond uint8, byteXfer bool, rn, rd, rm uint8) uint32 {
	word := uint32(cond)<<28 | 1<<24 | uint32(rn)<<16 | uint32(rd)<<12 | 0x9<<4 | uint32(rm)
	if byteXfer {
		word |= 1 << 22
	}
	return word
}

func newTestCPU() (*CPU, *testBus) {
	b := &testBus{}
	return NewCPU(b), b
}

// S1: ADC with an incoming carry adds one extra to the result and still
// reports carry-out when the unsigned sum overflows 32 bits.
func TestScenarioADCCarryIn(t *testing.T) {
	c, bus := newTestCPU()
	regs := c.Registers()
	regs.SetReg(1, 0xFFFFFFFF)
	regs.SetReg(2, 0)
	regs.SetFlagC(true)

	bus.Write32(0, armDP(uint8(AL), ADC, true, 1, 0, 2))
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), regs.GetReg(0))
	assert.True(t, regs.GetFlagC())
	assert.True(t, regs.GetFlagZ())
}

// S2: SUB at the unsigned boundary (0 - 1) borrows, clearing C, and the
// result wraps to all-ones with N set.
func TestScenarioSUBBoundary(t *testing.T) {
	c, bus := newTestCPU()
	regs := c.Registers()
	regs.SetReg(1, 0)
	regs.SetReg(2, 1)

	bus.Write32(0, armDP(uint8(AL), SUB, true, 1, 0, 2))
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFFFFFF), regs.GetReg(0))
	assert.False(t, regs.GetFlagC(), "0-1 borrows, so C (NOT borrow) clears")
	assert.True(t, regs.GetFlagN())
	assert.False(t, regs.GetFlagV())
}

// S3: an unconditional backward branch retargets PC by its sign-extended
// offset relative to PC+8.
func TestScenarioBranchBackward(t *testing.T) {
	c, bus := newTestCPU()
	c.Registers().SetPC(0x100)
	bus.Write32(0x100, armBranchWord(uint8(AL), false, -16))

	_, err := c.Step()
	require.NoError(t, err)
	// target = (0x100+8) + (-16) = 0xF8
	assert.Equal(t, uint32(0xF8), c.Registers().GetPC())
}

// S4: LDR from a misaligned address reads the aligned word and rotates it
// right by the misalignment, rather than faulting.
func TestScenarioLDRMisalignedRotate(t *testing.T) {
	c, bus := newTestCPU()
	regs := c.Registers()
	regs.SetReg(1, 0x1001) // misaligned by 1 byte
	bus.Write32(0x1000, 0x12345678)

	bus.Write32(0, armLoadStoreWord(uint8(AL), true, false, 1, 0, 0))
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x78123456), regs.GetReg(0))
}

// S5: SWP at a misaligned address applies the same rotate-read rule as LDR
// to the value it swaps out.
func TestScenarioSWPMisaligned(t *testing.T) {
	c, bus := newTestCPU()
	regs := c.Registers()
	regs.SetReg(1, 0x1002) // Rn: misaligned base
	regs.SetReg(2, 0xAAAAAAAA) // Rm: value to store

	bus.Write32(0x1000, 0x11223344)
	bus.Write32(0, armSwapWord(uint8(AL), false, 1, 0, 2))

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x33441122), regs.GetReg(0), "SWP's read side rotates like LDR")
	assert.Equal(t, uint32(0xAAAAAAAA), bus.Read32(0x1000))
}

// S6: SWI enters Supervisor mode with IRQ disabled, banks LR to the return
// address, saves CPSR to SPSR_svc, and jumps to vector 0x08.
func TestScenarioSWIEntry(t *testing.T) {
	c, bus := newTestCPU()
	regs := c.Registers()
	regs.SetMode(USRMode)
	regs.SetReg(14, 0xBADC0DE) // USR's own lr, must survive banked untouched
	regs.SetIRQDisabled(false)
	savedCPSR := regs.GetCPSR()

	bus.Write32(0, armSWIWord(uint8(AL), 0x12))
	_, err := c.Step()
	require.NoError(t, err)

	assert.Equal(t, uint8(SVCMode), regs.GetMode())
	assert.Equal(t, uint32(4), regs.GetReg(14), "LR_svc holds the address after the SWI")
	assert.True(t, regs.IsIRQDisabled())
	assert.Equal(t, uint32(0x00000008), regs.GetPC())
	spsr, ok := regs.GetSPSR()
	require.True(t, ok)
	assert.Equal(t, savedCPSR, spsr)

	regs.SetMode(USRMode)
	assert.Equal(t, uint32(0xBADC0DE), regs.GetReg(14), "USR's lr bank is untouched by SVC entry")
}

func TestStepAdvancesCycleCountForUnconditionalNop(t *testing.T) {
	c, bus := newTestCPU()
	bus.Write32(0, armDP(uint8(AL), MOV, false, 0, 0, 0))
	cycles, err := c.Step()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cycles, uint32(1))
}

func TestStepSkipsInstructionFailingCondition(t *testing.T) {
	c, bus := newTestCPU()
	c.Registers().SetFlagZ(false)
	// MOVEQ r0, r1 with Z clear must not execute.
	c.Registers().SetReg(0, 0xDEAD)
	bus.Write32(0, armDP(uint8(EQ), MOV, false, 0, 0, 1))
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEAD), c.Registers().GetReg(0))
	assert.Equal(t, uint32(4), c.Registers().GetPC())
}

// LDRT (P=0,W=1) is a recognized T-variant, not an Unpredictable encoding; it
// behaves like plain post-indexed LDR.
func TestLoadStoreTVariantActsLikePostIndexed(t *testing.T) {
	c, bus := newTestCPU()
	regs := c.Registers()
	regs.SetReg(1, 0x1000)
	bus.Write32(0x1000, 0xCAFEBABE)

	bus.Write32(0, armLoadStoreTWord(uint8(AL), true, false, 1, 0, 4))
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), regs.GetReg(0))
	assert.Equal(t, uint32(0x1004), regs.GetReg(1), "T-variant always writes back")
}

func TestLoadStoreTVariantIntoPCIsUnpredictable(t *testing.T) {
	c, bus := newTestCPU()
	c.Registers().SetReg(1, 0x1000)
	bus.Write32(0, armLoadStoreTWord(uint8(AL), true, false, 1, 15, 0))
	_, err := c.Step()
	assert.Error(t, err)
}

func TestLoadStoreByteIntoPCIsUnpredictable(t *testing.T) {
	c, bus := newTestCPU()
	c.Registers().SetReg(1, 0x1000)
	bus.Write32(0, armLoadStoreWord(uint8(AL), true, true, 1, 15, 0))
	_, err := c.Step()
	assert.Error(t, err)
}

// LDR into PC clears the low two bits and never toggles Thumb state: ARMv4T
// has no BX-style interworking on ordinary loads.
func TestLoadRegisterIntoPCStaysARMAndMasksAlignment(t *testing.T) {
	c, bus := newTestCPU()
	regs := c.Registers()
	regs.SetReg(1, 0x1000)
	bus.Write32(0x1000, 0x00002001) // low bit set, as a Thumb target address would be

	bus.Write32(0, armLoadStoreWord(uint8(AL), true, false, 1, 15, 0))
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2000), regs.GetPC())
	assert.False(t, regs.IsThumb(), "LDR into PC must not switch to Thumb state")
}

// MSR CPSR_fc must only replace the c (bits 7-0) and f (bits 31-24) lanes;
// the unselected x/s lanes (bits 23-8) must survive untouched.
func TestMSRFieldMaskOnlyWritesSelectedLanes(t *testing.T) {
	c, bus := newTestCPU()
	regs := c.Registers()
	regs.SetCPSR(0x00CDAB13) // untouched middle byte 0xCDAB, c-lane mode=SVC (0x13)
	regs.SetReg(0, 0xFFFFFFFF)

	bus.Write32(0, 0xE129F000) // MSR CPSR_fc, r0
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFCDABFF), regs.GetCPSR())
}

// MSR SPSR_fc (R=1) must decode and execute, not fall through to Undefined.
func TestMSRToSPSRDecodesAndExecutes(t *testing.T) {
	c, bus := newTestCPU() // reset state: SVC mode, which banks a valid SPSR
	regs := c.Registers()
	regs.SetReg(0, 0x6000001F) // f-lane 0x60, c-lane mode=System(0x1F)

	bus.Write32(0, 0xE169F000) // MSR SPSR_fc, r0
	_, err := c.Step()
	require.NoError(t, err)

	spsr, ok := regs.GetSPSR()
	require.True(t, ok, "SVC mode must have a banked SPSR")
	assert.Equal(t, uint32(0x6000001F), spsr)
}
