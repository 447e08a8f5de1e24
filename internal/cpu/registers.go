package cpu

import (
	"fmt"

	"goba/internal/bits"
	"goba/util/dbg"
)

// ARM7TDMI CPU operating modes.
const (
	USRMode = 0b10000 // User mode
	FIQMode = 0b10001 // FIQ mode (Fast Interrupt Request)
	IRQMode = 0b10010 // IRQ mode (Interrupt Request)
	SVCMode = 0b10011 // Supervisor mode
	ABTMode = 0b10111 // Abort mode
	UNDMode = 0b11011 // Undefined instruction mode
	SYSMode = 0b11111 // System mode (shares User mode registers)
)

// CPSR bit positions.
const (
	cpsrN = 31
	cpsrZ = 30
	cpsrC = 29
	cpsrV = 28
	cpsrI = 7
	cpsrF = 6
	cpsrT = 5
)

// Registers holds the ARM7TDMI register file: R0-R15 plus the banked shadow
// copies that exist per processor mode, and CPSR/SPSR. There is no
// currentMode cache — GetMode always derives the mode from CPSR so there is
// a single source of truth, per the "PSR as bitfield" design note.
type Registers struct {
	// R0-R12 for every mode except FIQ, which banks R8-R12 separately below.
	r [13]uint32

	spUsr, lrUsr uint32
	spSvc, lrSvc uint32
	spAbt, lrAbt uint32
	spUnd, lrUnd uint32
	spIrq, lrIrq uint32

	r8Fiq, r9Fiq, r10Fiq, r11Fiq, r12Fiq uint32
	spFiq, lrFiq                         uint32

	pc uint32

	cpsr uint32

	spsrSvc, spsrAbt, spsrUnd, spsrIrq, spsrFiq uint32
}

// NewRegisters creates a register file in its post-reset state: Supervisor
// mode, IRQ and FIQ disabled, ARM (not Thumb) state, PC = 0. Callers that
// need the BIOS entry point call SetPC separately.
func NewRegisters() *Registers {
	r := &Registers{}
	r.cpsr = uint32(SVCMode) | (1 << cpsrI) | (1 << cpsrF)
	return r
}

// GetMode returns the current CPU operating mode from CPSR.
func (r *Registers) GetMode() uint8 {
	return uint8(r.cpsr & 0x1F)
}

// SetMode rewrites only the mode bits of CPSR, preserving NZCV and the other
// control bits untouched.
func (r *Registers) SetMode(mode uint8) {
	r.cpsr = (r.cpsr &^ 0x1F) | uint32(mode)
}

// GetReg returns the value of a general-purpose register as seen in the
// current mode. Reading r15 returns the raw PC value stored in the register
// file; the ARM "PC+8" execution-time quirk is an executor concern, not a
// register-file one, since Thumb needs PC+4 instead.
func (r *Registers) GetReg(reg uint8) uint32 {
	return r.GetRegMode(reg, r.GetMode())
}

// SetReg writes a general-purpose register in the current mode's bank.
func (r *Registers) SetReg(reg uint8, value uint32) {
	r.SetRegMode(reg, r.GetMode(), value)
}

// GetRegMode reads a register as it appears under an explicit mode, used by
// LDM/STM's user-bank transfer forms to reach into the USR bank from a
// privileged mode without actually switching modes.
func (r *Registers) GetRegMode(reg uint8, mode uint8) uint32 {
	if reg == 15 {
		return r.pc
	}

	if mode == FIQMode {
		switch reg {
		case 8:
			return r.r8Fiq
		case 9:
			return r.r9Fiq
		case 10:
			return r.r10Fiq
		case 11:
			return r.r11Fiq
		case 12:
			return r.r12Fiq
		case 13:
			return r.spFiq
		case 14:
			return r.lrFiq
		}
	}

	if reg == 13 {
		switch mode {
		case USRMode, SYSMode:
			return r.spUsr
		case SVCMode:
			return r.spSvc
		case ABTMode:
			return r.spAbt
		case UNDMode:
			return r.spUnd
		case IRQMode:
			return r.spIrq
		default:
			dbg.Printf("GetRegMode(sp) in unrecognized mode %02X\n", mode)
			return r.spUsr
		}
	}

	if reg == 14 {
		switch mode {
		case USRMode, SYSMode:
			return r.lrUsr
		case SVCMode:
			return r.lrSvc
		case ABTMode:
			return r.lrAbt
		case UNDMode:
			return r.lrUnd
		case IRQMode:
			return r.lrIrq
		default:
			dbg.Printf("GetRegMode(lr) in unrecognized mode %02X\n", mode)
			return r.lrUsr
		}
	}

	return r.r[reg]
}

// SetRegMode writes a register as it appears under an explicit mode.
func (r *Registers) SetRegMode(reg uint8, mode uint8, value uint32) {
	if reg == 15 {
		r.pc = value
		return
	}

	if mode == FIQMode {
		switch reg {
		case 8:
			r.r8Fiq = value
			return
		case 9:
			r.r9Fiq = value
			return
		case 10:
			r.r10Fiq = value
			return
		case 11:
			r.r11Fiq = value
			return
		case 12:
			r.r12Fiq = value
			return
		case 13:
			r.spFiq = value
			return
		case 14:
			r.lrFiq = value
			return
		}
	}

	if reg == 13 {
		switch mode {
		case USRMode, SYSMode:
			r.spUsr = value
		case SVCMode:
			r.spSvc = value
		case ABTMode:
			r.spAbt = value
		case UNDMode:
			r.spUnd = value
		case IRQMode:
			r.spIrq = value
		default:
			dbg.Printf("SetRegMode(sp) in unrecognized mode %02X\n", mode)
			r.spUsr = value
		}
		return
	}

	if reg == 14 {
		switch mode {
		case USRMode, SYSMode:
			r.lrUsr = value
		case SVCMode:
			r.lrSvc = value
		case ABTMode:
			r.lrAbt = value
		case UNDMode:
			r.lrUnd = value
		case IRQMode:
			r.lrIrq = value
		default:
			dbg.Printf("SetRegMode(lr) in unrecognized mode %02X\n", mode)
			r.lrUsr = value
		}
		return
	}

	r.r[reg] = value
}

// GetPC returns the raw program counter value.
func (r *Registers) GetPC() uint32 { return r.pc }

// SetPC sets the raw program counter value with no alignment masking; callers
// that need the "other writes to r15 clear bit 0" rule do the masking
// themselves, since BX's mask width differs from a plain data-processing
// write to r15.
func (r *Registers) SetPC(v uint32) { r.pc = v }

// GetCPSR returns the whole CPSR word, used by MRS.
func (r *Registers) GetCPSR() uint32 { return r.cpsr }

// SetCPSR overwrites the whole CPSR word, used by MSR.
func (r *Registers) SetCPSR(v uint32) { r.cpsr = v }

// CurrentModeHasSPSR reports whether the active mode banks an SPSR. USR and
// SYS do not.
func (r *Registers) CurrentModeHasSPSR() bool {
	switch r.GetMode() {
	case USRMode, SYSMode:
		return false
	default:
		return true
	}
}

// GetSPSR returns the SPSR for the current mode. ok is false in USR/SYS,
// where SPSR access is architecturally undefined; the caller (an MRS/MSR
// executor or an SPSR-restoring LDM) surfaces that as an Unpredictable
// error instead of silently returning a bogus value.
func (r *Registers) GetSPSR() (uint32, bool) {
	switch r.GetMode() {
	case FIQMode:
		return r.spsrFiq, true
	case SVCMode:
		return r.spsrSvc, true
	case ABTMode:
		return r.spsrAbt, true
	case IRQMode:
		return r.spsrIrq, true
	case UNDMode:
		return r.spsrUnd, true
	default:
		return 0, false
	}
}

// SetSPSR writes the SPSR for the current mode, returning false (no write
// performed) in USR/SYS.
func (r *Registers) SetSPSR(value uint32) bool {
	switch r.GetMode() {
	case FIQMode:
		r.spsrFiq = value
	case SVCMode:
		r.spsrSvc = value
	case ABTMode:
		r.spsrAbt = value
	case IRQMode:
		r.spsrIrq = value
	case UNDMode:
		r.spsrUnd = value
	default:
		return false
	}
	return true
}

// IsThumb reports the CPSR.T bit.
func (r *Registers) IsThumb() bool { return bits.Bit(r.cpsr, cpsrT) }

// SetThumbState sets or clears CPSR.T.
func (r *Registers) SetThumbState(thumb bool) { r.setBit(cpsrT, thumb) }

// IsFIQDisabled reports the CPSR.F bit.
func (r *Registers) IsFIQDisabled() bool { return bits.Bit(r.cpsr, cpsrF) }

// SetFIQDisabled sets or clears CPSR.F.
func (r *Registers) SetFIQDisabled(v bool) { r.setBit(cpsrF, v) }

// IsIRQDisabled reports the CPSR.I bit.
func (r *Registers) IsIRQDisabled() bool { return bits.Bit(r.cpsr, cpsrI) }

// SetIRQDisabled sets or clears CPSR.I.
func (r *Registers) SetIRQDisabled(v bool) { r.setBit(cpsrI, v) }

func (r *Registers) GetFlagN() bool { return bits.Bit(r.cpsr, cpsrN) }
func (r *Registers) GetFlagZ() bool { return bits.Bit(r.cpsr, cpsrZ) }
func (r *Registers) GetFlagC() bool { return bits.Bit(r.cpsr, cpsrC) }
func (r *Registers) GetFlagV() bool { return bits.Bit(r.cpsr, cpsrV) }

func (r *Registers) SetFlagN(v bool) { r.setBit(cpsrN, v) }
func (r *Registers) SetFlagZ(v bool) { r.setBit(cpsrZ, v) }
func (r *Registers) SetFlagC(v bool) { r.setBit(cpsrC, v) }
func (r *Registers) SetFlagV(v bool) { r.setBit(cpsrV, v) }

// SetNZCV is the one-shot flag update every data-processing and comparison
// handler ends with.
func (r *Registers) SetNZCV(n, z, c, v bool) {
	r.setBit(cpsrN, n)
	r.setBit(cpsrZ, z)
	r.setBit(cpsrC, c)
	r.setBit(cpsrV, v)
}

func (r *Registers) setBit(n uint, v bool) {
	if v {
		r.cpsr |= 1 << n
	} else {
		r.cpsr &^= 1 << n
	}
}

// CheckCondition evaluates one of the 15 meaningful ARM condition codes
// against NZCV. 0b1111 (NV) is "never" on ARMv4T and always returns false.
func (r *Registers) CheckCondition(cond uint8) bool {
	n, z, c, v := r.GetFlagN(), r.GetFlagZ(), r.GetFlagC(), r.GetFlagV()
	switch cond {
	case 0x0: // EQ
		return z
	case 0x1: // NE
		return !z
	case 0x2: // CS/HS
		return c
	case 0x3: // CC/LO
		return !c
	case 0x4: // MI
		return n
	case 0x5: // PL
		return !n
	case 0x6: // VS
		return v
	case 0x7: // VC
		return !v
	case 0x8: // HI
		return c && !z
	case 0x9: // LS
		return !c || z
	case 0xA: // GE
		return n == v
	case 0xB: // LT
		return n != v
	case 0xC: // GT
		return !z && n == v
	case 0xD: // LE
		return z || n != v
	case 0xE: // AL
		return true
	default: // NV
		return false
	}
}

// String renders a GBATEK-style debug dump of the register file.
func (r *Registers) String() string {
	mode := r.GetMode()
	modeStr := ""
	switch mode {
	case USRMode:
		modeStr = "USR"
	case FIQMode:
		modeStr = "FIQ"
	case IRQMode:
		modeStr = "IRQ"
	case SVCMode:
		modeStr = "SVC"
	case ABTMode:
		modeStr = "ABT"
	case UNDMode:
		modeStr = "UND"
	case SYSMode:
		modeStr = "SYS"
	default:
		modeStr = fmt.Sprintf("?%02X?", mode)
	}

	state := "ARM"
	if r.IsThumb() {
		state = "THUMB"
	}

	spsr, _ := r.GetSPSR()
	return fmt.Sprintf(
		"R0 =%08X  R1 =%08X  R2 =%08X  R3 =%08X\n"+
			"R4 =%08X  R5 =%08X  R6 =%08X  R7 =%08X\n"+
			"R8 =%08X  R9 =%08X  R10=%08X  R11=%08X\n"+
			"R12=%08X  SP =%08X  LR =%08X  PC =%08X\n"+
			"CPSR=%08X (%s %s N:%t Z:%t C:%t V:%t I:%t F:%t) SPSR=%08X",
		r.GetReg(0), r.GetReg(1), r.GetReg(2), r.GetReg(3),
		r.GetReg(4), r.GetReg(5), r.GetReg(6), r.GetReg(7),
		r.GetReg(8), r.GetReg(9), r.GetReg(10), r.GetReg(11),
		r.GetReg(12), r.GetReg(13), r.GetReg(14), r.GetReg(15),
		r.cpsr, modeStr, state,
		r.GetFlagN(), r.GetFlagZ(), r.GetFlagC(), r.GetFlagV(),
		r.IsIRQDisabled(), r.IsFIQDisabled(),
		spsr,
	)
}
