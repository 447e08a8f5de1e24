package cpu

import "goba/internal/bits"

// executeARM dispatches a decoded ARM instruction and returns the cycle
// count it took. instrAddr is the address the instruction was fetched from
// (PC has already moved past it); pc8 is that address + 8, the value R15
// reads as during execution per the pipeline quirk every operand that
// references Rm=15 or Rn=15 must use instead of the real PC.
func (c *CPU) executeARM(decoded interface{}, instrAddr, word uint32) (uint32, error) {
	pc8 := instrAddr + 8

	switch inst := decoded.(type) {
	case ARMDataProcessingInstruction:
		return c.execDataProcessing(inst, pc8)
	case ARMMultiplyInstruction:
		return c.execMultiply(inst)
	case ARMMultiplyLongInstruction:
		return c.execMultiplyLong(inst)
	case ARMLoadStoreInstruction:
		return c.execLoadStore(inst, pc8)
	case ARMMiscLoadStoreInstruction:
		return c.execMiscLoadStore(inst, pc8)
	case ARMBlockDataTransferInstruction:
		return c.execBlockDataTransfer(inst, instrAddr, pc8)
	case ARMBranchInstruction:
		return c.execBranch(inst, pc8)
	case ARMBranchExchangeInstruction:
		return c.execBranchExchange(inst, pc8)
	case ARMPSRTransferInstruction:
		return c.execPSRTransfer(inst, pc8)
	case ARMSwapInstruction:
		return c.execSwap(inst, pc8)
	case ARMSWIInstruction:
		c.raiseSWI(instrAddr, false)
		return 3, nil
	case ARMUndefinedInstruction:
		return 1, newUndefined(instrAddr, word, "UNDEFINED")
	default:
		return 1, newUndefined(instrAddr, word, "?")
	}
}

// operand2 resolves an ARMDataProcessingInstruction's second operand through
// the shared barrel shifter, reading Rm (and Rs for a shift-by-register) with
// the PC+8 substitution, so an operand that names PC sees PC+8 in both the
// shift-by-immediate and shift-by-register forms.
func (c *CPU) operand2(inst ARMDataProcessingInstruction, pc8 uint32) ShifterResult {
	carry := c.regs.GetFlagC()
	if inst.I {
		return ShifterImmediate(inst.Imm8, inst.Nn, carry)
	}

	rm := c.readOperandReg(inst.Rm, pc8)
	if inst.R {
		rs := c.readOperandReg(inst.Rs, pc8)
		return ShifterRegister(inst.ShiftType, rm, 0, true, rs, carry)
	}
	return ShifterRegister(inst.ShiftType, rm, inst.Is, false, 0, carry)
}

// readOperandReg reads a register for use as a shifter/ALU operand,
// substituting PC+8 when the register is R15.
func (c *CPU) readOperandReg(reg uint8, pc8 uint32) uint32 {
	if reg == 15 {
		return pc8
	}
	return c.regs.GetReg(reg)
}

func (c *CPU) execDataProcessing(inst ARMDataProcessingInstruction, pc8 uint32) (uint32, error) {
	op2 := c.operand2(inst, pc8)
	rnVal := c.readOperandReg(inst.Rn, pc8)

	var result uint32
	var carry, overflow bool
	writesResult := true
	carry = op2.CarryOut
	overflow = c.regs.GetFlagV()

	switch inst.Opcode {
	case AND:
		result = rnVal & op2.Value
	case EOR:
		result = rnVal ^ op2.Value
	case SUB:
		result = rnVal - op2.Value
		carry = bits.NotBorrowFrom(rnVal, op2.Value)
		overflow = bits.SubtractionOverflow(rnVal, op2.Value, result)
	case RSB:
		result = op2.Value - rnVal
		carry = bits.NotBorrowFrom(op2.Value, rnVal)
		overflow = bits.SubtractionOverflow(op2.Value, rnVal, result)
	case ADD:
		result = rnVal + op2.Value
		carry = bits.CarryFrom(rnVal, op2.Value)
		overflow = bits.AdditionOverflow(rnVal, op2.Value, result)
	case ADC:
		cin := bits.BoolToU32(c.regs.GetFlagC())
		result = rnVal + op2.Value + cin
		carry = bits.CarryFromWithCarry(rnVal, op2.Value, cin)
		overflow = bits.AdditionOverflow(rnVal, op2.Value, result)
	case SBC:
		cin := bits.BoolToU32(c.regs.GetFlagC())
		result = rnVal - op2.Value + cin - 1
		carry = bits.NotBorrowFromWithCarry(rnVal, op2.Value, cin)
		overflow = bits.SubtractionOverflow(rnVal, op2.Value, result)
	case RSC:
		cin := bits.BoolToU32(c.regs.GetFlagC())
		result = op2.Value - rnVal + cin - 1
		carry = bits.NotBorrowFromWithCarry(op2.Value, rnVal, cin)
		overflow = bits.SubtractionOverflow(op2.Value, rnVal, result)
	case TST:
		result = rnVal & op2.Value
		writesResult = false
	case TEQ:
		result = rnVal ^ op2.Value
		writesResult = false
	case CMP:
		result = rnVal - op2.Value
		carry = bits.NotBorrowFrom(rnVal, op2.Value)
		overflow = bits.SubtractionOverflow(rnVal, op2.Value, result)
		writesResult = false
	case CMN:
		result = rnVal + op2.Value
		carry = bits.CarryFrom(rnVal, op2.Value)
		overflow = bits.AdditionOverflow(rnVal, op2.Value, result)
		writesResult = false
	case ORR:
		result = rnVal | op2.Value
	case MOV:
		result = op2.Value
	case BIC:
		result = rnVal &^ op2.Value
	case MVN:
		result = ^op2.Value
	}

	if writesResult {
		if inst.Rd == 15 {
			if inst.S {
				// MOVS/ADDS/... PC,... restores CPSR from SPSR — the
				// privileged-mode return sequence used by exception handlers.
				spsr, ok := c.regs.GetSPSR()
				if !ok {
					return 1, newUnpredictable(0, 0, "data-processing S=1 into PC outside a banked mode")
				}
				c.regs.SetCPSR(spsr)
			}
			c.regs.SetPC(result &^ 0x3)
		} else {
			c.regs.SetReg(inst.Rd, result)
		}
	}

	if inst.S && inst.Rd != 15 {
		c.regs.SetNZCV(bits.Bit(result, 31), result == 0, carry, overflow)
	}

	cycles := uint32(1)
	if inst.Rd == 15 {
		cycles = 3
	}
	return cycles, nil
}

func (c *CPU) execMultiply(inst ARMMultiplyInstruction) (uint32, error) {
	if inst.Rd == 15 || inst.Rm == 15 || inst.Rs == 15 || (inst.A && inst.Rn == 15) {
		return 1, newUnpredictable(0, 0, "MUL/MLA")
	}
	result := c.regs.GetReg(inst.Rm) * c.regs.GetReg(inst.Rs)
	if inst.A {
		result += c.regs.GetReg(inst.Rn)
	}
	c.regs.SetReg(inst.Rd, result)
	if inst.S {
		c.regs.SetFlagN(bits.Bit(result, 31))
		c.regs.SetFlagZ(result == 0)
	}
	return 2, nil
}

func (c *CPU) execMultiplyLong(inst ARMMultiplyLongInstruction) (uint32, error) {
	if inst.RdHi == 15 || inst.RdLo == 15 || inst.Rm == 15 || inst.Rs == 15 || inst.RdHi == inst.RdLo {
		return 1, newUnpredictable(0, 0, "MULL/MLAL")
	}

	var result uint64
	if inst.Signed {
		result = uint64(int64(int32(c.regs.GetReg(inst.Rm))) * int64(int32(c.regs.GetReg(inst.Rs))))
	} else {
		result = uint64(c.regs.GetReg(inst.Rm)) * uint64(c.regs.GetReg(inst.Rs))
	}
	if inst.A {
		acc := uint64(c.regs.GetReg(inst.RdHi))<<32 | uint64(c.regs.GetReg(inst.RdLo))
		result += acc
	}

	c.regs.SetReg(inst.RdLo, uint32(result))
	c.regs.SetReg(inst.RdHi, uint32(result>>32))
	if inst.S {
		c.regs.SetFlagN(bits.Bit(uint32(result>>32), 31))
		c.regs.SetFlagZ(result == 0)
	}
	return 3, nil
}

func (c *CPU) execLoadStore(inst ARMLoadStoreInstruction, pc8 uint32) (uint32, error) {
	// P=0,W=1 is a T-variant (LDRT/STRT/LDRBT/STRBT): translated user-mode
	// access, which on this target behaves identically to plain post-indexed.
	if !inst.P || inst.W {
		if inst.Rn == inst.Rd {
			return 1, newUnpredictable(0, 0, "LDR/STR writeback with Rn==Rd")
		}
	}
	if !inst.P && inst.W && inst.Rd == 15 {
		return 1, newUnpredictable(0, 0, "LDRT/STRT/LDRBT/STRBT with Rd==PC")
	}
	if inst.B && inst.Rd == 15 {
		return 1, newUnpredictable(0, 0, "LDRB/STRB with Rd==PC")
	}

	base := c.readOperandReg(inst.Rn, pc8)
	rm := c.readOperandReg(inst.Rm, pc8)
	transferAddr, writebackAddr := ComputeMode2Address(inst, base, rm, c.regs.GetFlagC())

	writeback := inst.W || !inst.P

	if inst.L {
		var value uint32
		if inst.B {
			value = uint32(c.bus.Read8(transferAddr))
		} else {
			value = rotateMisalignedWord(c.bus.Read32(transferAddr&^0x3), transferAddr)
		}
		if writeback {
			c.regs.SetReg(inst.Rn, writebackAddr)
		}
		if inst.Rd == 15 {
			c.regs.SetPC(value &^ 0x3)
			return 5, nil
		}
		c.regs.SetReg(inst.Rd, value)
	} else {
		value := c.readOperandReg(inst.Rd, pc8+4)
		if inst.B {
			c.bus.Write8(transferAddr, uint8(value))
		} else {
			c.bus.Write32(transferAddr&^0x3, value)
		}
		if writeback {
			c.regs.SetReg(inst.Rn, writebackAddr)
		}
	}
	return 3, nil
}

// rotateMisalignedWord applies the LDR "rotate read" rule: a word read from
// a non-word-aligned address returns the 32-bit value read from the aligned
// base, rotated right by the misalignment in bits.
func rotateMisalignedWord(word, addr uint32) uint32 {
	return bits.RotateRight(word, uint(addr&0x3)*8)
}

func (c *CPU) execMiscLoadStore(inst ARMMiscLoadStoreInstruction, pc8 uint32) (uint32, error) {
	if inst.Rd == 15 {
		return 1, newUnpredictable(0, 0, "LDRH/STRH/LDRSB/LDRSH with Rd==PC")
	}

	base := c.readOperandReg(inst.Rn, pc8)
	rm := c.readOperandReg(inst.Rm, pc8)
	transferAddr, writebackAddr := ComputeMode3Address(inst, base, rm)
	writeback := inst.W || !inst.P

	if inst.L {
		var value uint32
		switch {
		case inst.S && inst.H:
			if transferAddr&0x1 != 0 {
				return 1, newUnpredictable(0, 0, "LDRSH at unaligned halfword address")
			}
			value = uint32(int32(int16(c.bus.Read16(transferAddr))))
		case inst.S && !inst.H:
			value = uint32(int32(int8(c.bus.Read8(transferAddr))))
		default:
			if transferAddr&0x1 != 0 {
				return 1, newUnpredictable(0, 0, "LDRH at unaligned halfword address")
			}
			value = uint32(c.bus.Read16(transferAddr))
		}
		if writeback {
			c.regs.SetReg(inst.Rn, writebackAddr)
		}
		c.regs.SetReg(inst.Rd, value)
	} else {
		if transferAddr&0x1 != 0 {
			return 1, newUnpredictable(0, 0, "STRH at unaligned halfword address")
		}
		c.bus.Write16(transferAddr, uint16(c.readOperandReg(inst.Rd, pc8+4)))
		if writeback {
			c.regs.SetReg(inst.Rn, writebackAddr)
		}
	}
	return 3, nil
}

func (c *CPU) execBlockDataTransfer(inst ARMBlockDataTransferInstruction, instrAddr, pc8 uint32) (uint32, error) {
	if inst.RegisterList == 0 {
		return 1, newUnpredictable(instrAddr, 0, "LDM/STM empty register list")
	}

	base := c.regs.GetReg(inst.Rn)
	var regCount uint32
	for i := 0; i < 16; i++ {
		if inst.RegisterList&(1<<i) != 0 {
			regCount++
		}
	}
	start, writeback := BlockTransferBounds(inst.P, inst.U, base, regCount)

	// User-bank transfer: S set and (this is STM, or this is LDM without
	// PC in the list) forces access to the USR register bank regardless of
	// the current mode.
	userBank := inst.S && (!inst.L || inst.RegisterList&(1<<15) == 0)
	restoreCPSR := inst.L && inst.S && inst.RegisterList&(1<<15) != 0
	if restoreCPSR && !c.regs.CurrentModeHasSPSR() {
		return 1, newUnpredictable(instrAddr, 0, "LDM with SPSR restore outside a banked mode")
	}

	addr := start
	for i := uint8(0); i < 16; i++ {
		if inst.RegisterList&(1<<i) == 0 {
			continue
		}
		if inst.L {
			value := c.bus.Read32(addr)
			if i == 15 {
				c.regs.SetPC(value &^ 0x3)
				if restoreCPSR {
					if spsr, ok := c.regs.GetSPSR(); ok {
						c.regs.SetCPSR(spsr)
					}
				}
			} else if userBank {
				c.regs.SetRegMode(i, USRMode, value)
			} else {
				c.regs.SetReg(i, value)
			}
		} else {
			var value uint32
			if i == 15 {
				value = instrAddr + 12
			} else if userBank {
				value = c.regs.GetRegMode(i, USRMode)
			} else {
				value = c.regs.GetReg(i)
			}
			c.bus.Write32(addr, value)
		}
		addr += 4
	}

	if inst.W {
		c.regs.SetReg(inst.Rn, writeback)
	}

	cycles := uint32(regCount) + 1
	return cycles, nil
}

func (c *CPU) execBranch(inst ARMBranchInstruction, pc8 uint32) (uint32, error) {
	target := uint32(int32(pc8) + inst.Offset)
	if inst.Link {
		c.regs.SetReg(14, pc8-4)
	}
	c.regs.SetPC(target)
	return 3, nil
}

func (c *CPU) execBranchExchange(inst ARMBranchExchangeInstruction, pc8 uint32) (uint32, error) {
	target := c.readOperandReg(inst.Rm, pc8)
	if target&0x1 != 0 {
		c.regs.SetThumbState(true)
		c.regs.SetPC(target &^ 0x1)
	} else {
		c.regs.SetThumbState(false)
		c.regs.SetPC(target &^ 0x3)
	}
	return 3, nil
}

func (c *CPU) execPSRTransfer(inst ARMPSRTransferInstruction, pc8 uint32) (uint32, error) {
	if inst.IsMRS {
		if inst.ToSPSR {
			spsr, ok := c.regs.GetSPSR()
			if !ok {
				return 1, newUnpredictable(0, 0, "MRS SPSR outside a banked mode")
			}
			c.regs.SetReg(inst.Rd, spsr)
		} else {
			c.regs.SetReg(inst.Rd, c.regs.GetCPSR())
		}
		return 1, nil
	}

	var value uint32
	if inst.I {
		value = inst.Imm
	} else {
		value = c.readOperandReg(inst.Rm, pc8)
	}

	if inst.ToSPSR {
		current, ok := c.regs.GetSPSR()
		if !ok {
			return 1, newUnpredictable(0, 0, "MSR SPSR outside a banked mode")
		}
		next := mergePSR(current, value, inst.FieldMask)
		c.regs.SetSPSR(next)
		return 1, nil
	}

	current := c.regs.GetCPSR()
	next := mergePSR(current, value, inst.FieldMask)
	c.regs.SetCPSR(next)
	return 1, nil
}

// mergePSR applies an MSR write one byte lane at a time, per the field mask
// in bits 19-16 of the instruction (c = bit 0, x = bit 1, s = bit 2, f = bit
// 3). ARMv4T only implements the c (control, bits 7-0) and f (flags, bits
// 31-24) lanes; x and s are ignored since this target has no extension or
// status byte distinct from control/flags.
func mergePSR(current, value uint32, fieldMask uint8) uint32 {
	result := current
	if fieldMask&0x1 != 0 {
		result = (result &^ 0x000000FF) | (value & 0x000000FF)
	}
	if fieldMask&0x8 != 0 {
		result = (result &^ 0xFF000000) | (value & 0xFF000000)
	}
	return result
}

func (c *CPU) execSwap(inst ARMSwapInstruction, pc8 uint32) (uint32, error) {
	if inst.Rn == 15 || inst.Rd == 15 || inst.Rm == 15 {
		return 1, newUnpredictable(0, 0, "SWP/SWPB with PC operand")
	}
	addr := c.regs.GetReg(inst.Rn)
	newVal := c.regs.GetReg(inst.Rm)
	if inst.B {
		old := c.bus.Read8(addr)
		c.bus.Write8(addr, uint8(newVal))
		c.regs.SetReg(inst.Rd, uint32(old))
	} else {
		old := rotateMisalignedWord(c.bus.Read32(addr&^0x3), addr)
		c.bus.Write32(addr&^0x3, newVal)
		c.regs.SetReg(inst.Rd, old)
	}
	return 4, nil
}
