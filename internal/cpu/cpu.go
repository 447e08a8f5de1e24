package cpu

import (
	"goba/internal/interfaces"
	"goba/util/dbg"
)

// CPU is the ARM7TDMI core: a register file plus a bus it fetches, loads,
// and stores through. It holds no knowledge of the GBA memory map — that
// lives entirely behind the Bus collaborator.
type CPU struct {
	regs *Registers
	bus  interfaces.BusInterface
}

// NewCPU wires a fresh register file to the given bus and leaves it in its
// post-reset state.
func NewCPU(bus interfaces.BusInterface) *CPU {
	return &CPU{regs: NewRegisters(), bus: bus}
}

// Registers exposes the register file through the shared interface so other
// packages (a debugger, a disassembler) can inspect it without importing the
// concrete type.
func (c *CPU) Registers() interfaces.RegistersInterface { return c.regs }

// Bus exposes the memory collaborator.
func (c *CPU) Bus() interfaces.BusInterface { return c.bus }

// Reset returns the core to its post-power-on state: Supervisor mode, IRQ
// and FIQ disabled, ARM state, PC at the reset vector.
func (c *CPU) Reset() {
	c.regs = NewRegisters()
	c.regs.SetPC(0x00000000)
}

// Step fetches, decodes, and executes exactly one instruction at the
// current PC, returning the cycle count it took. A non-nil error means the
// instruction was Undefined or Unpredictable; PC has already advanced past
// the offending word, matching the "skip and report" policy callers expect
// from a non-fatal failure.
func (c *CPU) Step() (uint32, error) {
	if c.regs.IsThumb() {
		return c.stepThumb()
	}
	return c.stepARM()
}

func (c *CPU) stepARM() (uint32, error) {
	pc := c.regs.GetPC()
	word := c.bus.Read32(pc)
	c.regs.SetPC(pc + 4)

	cond := uint8((word >> 28) & 0xF)
	if !c.regs.CheckCondition(cond) {
		return 1, nil
	}

	decoded := DecodeARM(word)
	cycles, err := c.executeARM(decoded, pc, word)
	if se, ok := err.(*StepError); ok {
		se.PC = pc
		se.Instruction = word
	}
	return cycles, err
}

func (c *CPU) stepThumb() (uint32, error) {
	pc := c.regs.GetPC()
	half := c.bus.Read16(pc)
	c.regs.SetPC(pc + 2)

	decoded := DecodeThumb(half)
	return c.executeThumb(decoded, pc, half)
}

// enterException performs the shared register-banking and mode-switch
// sequence every exception entry follows: bank LR with the return address,
// save CPSR to the new mode's SPSR, force ARM state, mask the interrupts the
// vector mandates, and jump to the vector address.
func (c *CPU) enterException(mode uint8, returnAddr uint32, disableIRQ, disableFIQ bool, vector uint32) {
	savedCPSR := c.regs.GetCPSR()
	c.regs.SetMode(mode)
	c.regs.SetReg(14, returnAddr)
	if !c.regs.SetSPSR(savedCPSR) {
		dbg.Printf("enterException: mode %02X has no SPSR bank\n", mode)
	}
	c.regs.SetThumbState(false)
	if disableIRQ {
		c.regs.SetIRQDisabled(true)
	}
	if disableFIQ {
		c.regs.SetFIQDisabled(true)
	}
	c.regs.SetPC(vector)
}

// raiseSWI performs software-interrupt entry: SVC mode, LR set to the
// address following the SWI instruction, IRQ disabled, FIQ left alone.
func (c *CPU) raiseSWI(instrAddr uint32, thumb bool) {
	size := uint32(4)
	if thumb {
		size = 2
	}
	c.enterException(SVCMode, instrAddr+size, true, false, 0x00000008)
}
