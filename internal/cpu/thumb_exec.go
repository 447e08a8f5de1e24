package cpu

import "goba/internal/bits"

// executeThumb dispatches a decoded Thumb instruction. pc is the address the
// halfword was fetched from (already advanced past); pc4 is that address+4,
// the value R15 reads as during Thumb execution.
func (c *CPU) executeThumb(decoded interface{}, pc uint32, half uint16) (uint32, error) {
	pc4 := pc + 4

	switch inst := decoded.(type) {
	case ThumbMoveShifted:
		return c.execThumbMoveShifted(inst)
	case ThumbAddSubtract:
		return c.execThumbAddSubtract(inst)
	case ThumbImmediateOp:
		return c.execThumbImmediateOp(inst)
	case ThumbALU:
		return c.execThumbALU(inst)
	case ThumbHiRegOp:
		return c.execThumbHiRegOp(inst, pc4)
	case ThumbLoadLiteral:
		return c.execThumbLoadLiteral(inst, pc4)
	case ThumbLoadStoreReg:
		return c.execThumbLoadStoreReg(inst)
	case ThumbLoadStoreImm:
		return c.execThumbLoadStoreImm(inst)
	case ThumbLoadStoreHalfImm:
		return c.execThumbLoadStoreHalfImm(inst)
	case ThumbLoadAddress:
		return c.execThumbLoadAddress(inst, pc4)
	case ThumbAdjustSP:
		return c.execThumbAdjustSP(inst)
	case ThumbPushPop:
		return c.execThumbPushPop(inst)
	case ThumbBlockTransfer:
		return c.execThumbBlockTransfer(inst)
	case ThumbCondBranch:
		return c.execThumbCondBranch(inst, pc4)
	case ThumbBranch:
		c.regs.SetPC(uint32(int32(pc4) + inst.Offset))
		return 3, nil
	case ThumbBranchLinkHigh:
		c.regs.SetReg(14, uint32(int32(pc4)+inst.Offset))
		return 1, nil
	case ThumbBranchLinkLow:
		lr := c.regs.GetReg(14)
		next := lr + inst.Offset
		c.regs.SetReg(14, (pc+2)|0x1)
		c.regs.SetPC(next)
		return 3, nil
	case ThumbSWI:
		c.raiseSWI(pc, true)
		return 3, nil
	case ThumbUndefined:
		return 1, newUndefined(pc, uint32(half), "UNDEFINED")
	default:
		return 1, newUndefined(pc, uint32(half), "?")
	}
}

func (c *CPU) execThumbMoveShifted(inst ThumbMoveShifted) (uint32, error) {
	rs := c.regs.GetReg(inst.Rs)
	res := shiftByImmediate(inst.Shift, rs, inst.Imm5, c.regs.GetFlagC())
	c.regs.SetReg(inst.Rd, res.Value)
	c.regs.SetNZCV(bits.Bit(res.Value, 31), res.Value == 0, res.CarryOut, c.regs.GetFlagV())
	return 1, nil
}

func (c *CPU) execThumbAddSubtract(inst ThumbAddSubtract) (uint32, error) {
	rs := c.regs.GetReg(inst.Rs)
	var operand uint32
	if inst.Imm {
		operand = uint32(inst.RnOrImm3)
	} else {
		operand = c.regs.GetReg(inst.RnOrImm3)
	}

	var result uint32
	var carry, overflow bool
	if inst.Sub {
		result = rs - operand
		carry = bits.NotBorrowFrom(rs, operand)
		overflow = bits.SubtractionOverflow(rs, operand, result)
	} else {
		result = rs + operand
		carry = bits.CarryFrom(rs, operand)
		overflow = bits.AdditionOverflow(rs, operand, result)
	}
	c.regs.SetReg(inst.Rd, result)
	c.regs.SetNZCV(bits.Bit(result, 31), result == 0, carry, overflow)
	return 1, nil
}

func (c *CPU) execThumbImmediateOp(inst ThumbImmediateOp) (uint32, error) {
	rd := c.regs.GetReg(inst.Rd)
	imm := uint32(inst.Imm8)

	switch {
	case inst.Mov:
		c.regs.SetReg(inst.Rd, imm)
		c.regs.SetNZCV(bits.Bit(imm, 31), imm == 0, c.regs.GetFlagC(), c.regs.GetFlagV())
	case inst.Cmp:
		result := rd - imm
		c.regs.SetNZCV(bits.Bit(result, 31), result == 0, bits.NotBorrowFrom(rd, imm), bits.SubtractionOverflow(rd, imm, result))
	case inst.Add:
		result := rd + imm
		c.regs.SetReg(inst.Rd, result)
		c.regs.SetNZCV(bits.Bit(result, 31), result == 0, bits.CarryFrom(rd, imm), bits.AdditionOverflow(rd, imm, result))
	case inst.Sub:
		result := rd - imm
		c.regs.SetReg(inst.Rd, result)
		c.regs.SetNZCV(bits.Bit(result, 31), result == 0, bits.NotBorrowFrom(rd, imm), bits.SubtractionOverflow(rd, imm, result))
	}
	return 1, nil
}

func (c *CPU) execThumbALU(inst ThumbALU) (uint32, error) {
	rdVal := c.regs.GetReg(inst.Rd)
	rsVal := c.regs.GetReg(inst.Rs)
	curC, curV := c.regs.GetFlagC(), c.regs.GetFlagV()

	var result uint32
	carry, overflow := curC, curV
	writes := true

	switch inst.Op {
	case TAnd:
		result = rdVal & rsVal
	case TEor:
		result = rdVal ^ rsVal
	case TLsl:
		res := shiftByRegister(LSL, rdVal, uint8(rsVal&0xFF), curC)
		result, carry = res.Value, res.CarryOut
	case TLsr:
		res := shiftByRegister(LSR, rdVal, uint8(rsVal&0xFF), curC)
		result, carry = res.Value, res.CarryOut
	case TAsr:
		res := shiftByRegister(ASR, rdVal, uint8(rsVal&0xFF), curC)
		result, carry = res.Value, res.CarryOut
	case TAdc:
		cin := bits.BoolToU32(curC)
		result = rdVal + rsVal + cin
		carry = bits.CarryFromWithCarry(rdVal, rsVal, cin)
		overflow = bits.AdditionOverflow(rdVal, rsVal, result)
	case TSbc:
		cinRaw := bits.BoolToU32(curC)
		result = rdVal - rsVal - bits.BoolToU32(!curC)
		carry = bits.NotBorrowFromWithCarry(rdVal, rsVal, cinRaw)
		overflow = bits.SubtractionOverflow(rdVal, rsVal, result)
	case TRor:
		res := shiftByRegister(ROR, rdVal, uint8(rsVal&0xFF), curC)
		result, carry = res.Value, res.CarryOut
	case TTst:
		result = rdVal & rsVal
		writes = false
	case TNeg:
		result = 0 - rsVal
		carry = bits.NotBorrowFrom(0, rsVal)
		overflow = bits.SubtractionOverflow(0, rsVal, result)
	case TCmp:
		result = rdVal - rsVal
		carry = bits.NotBorrowFrom(rdVal, rsVal)
		overflow = bits.SubtractionOverflow(rdVal, rsVal, result)
		writes = false
	case TCmn:
		result = rdVal + rsVal
		carry = bits.CarryFrom(rdVal, rsVal)
		overflow = bits.AdditionOverflow(rdVal, rsVal, result)
		writes = false
	case TOrr:
		result = rdVal | rsVal
	case TMul:
		result = rdVal * rsVal
	case TBic:
		result = rdVal &^ rsVal
	case TMvn:
		result = ^rsVal
	}

	if writes {
		c.regs.SetReg(inst.Rd, result)
	}
	c.regs.SetNZCV(bits.Bit(result, 31), result == 0, carry, overflow)
	return 1, nil
}

func (c *CPU) execThumbHiRegOp(inst ThumbHiRegOp, pc4 uint32) (uint32, error) {
	rdVal := c.readOperandReg(inst.Rd, pc4)
	rsVal := c.readOperandReg(inst.Rs, pc4)

	switch inst.Op {
	case 0: // ADD, flags unaffected
		result := rdVal + rsVal
		if inst.Rd == 15 {
			c.regs.SetPC(result &^ 0x1)
		} else {
			c.regs.SetReg(inst.Rd, result)
		}
	case 1: // CMP, flags always updated
		result := rdVal - rsVal
		c.regs.SetNZCV(bits.Bit(result, 31), result == 0, bits.NotBorrowFrom(rdVal, rsVal), bits.SubtractionOverflow(rdVal, rsVal, result))
	case 2: // MOV, flags unaffected
		if inst.Rd == 15 {
			c.regs.SetPC(rsVal &^ 0x1)
		} else {
			c.regs.SetReg(inst.Rd, rsVal)
		}
	case 3: // BX
		if rsVal&0x1 != 0 {
			c.regs.SetThumbState(true)
			c.regs.SetPC(rsVal &^ 0x1)
		} else {
			c.regs.SetThumbState(false)
			c.regs.SetPC(rsVal &^ 0x3)
		}
		return 3, nil
	}
	return 1, nil
}

func (c *CPU) execThumbLoadLiteral(inst ThumbLoadLiteral, pc4 uint32) (uint32, error) {
	addr := (pc4 &^ 0x3) + uint32(inst.Imm8)*4
	c.regs.SetReg(inst.Rd, c.bus.Read32(addr))
	return 3, nil
}

func (c *CPU) execThumbLoadStoreReg(inst ThumbLoadStoreReg) (uint32, error) {
	addr := c.regs.GetReg(inst.Rb) + c.regs.GetReg(inst.Ro)
	switch inst.Op {
	case TStr:
		c.bus.Write32(addr&^0x3, c.regs.GetReg(inst.Rd))
	case TStrh:
		c.bus.Write16(addr&^0x1, uint16(c.regs.GetReg(inst.Rd)))
	case TStrb:
		c.bus.Write8(addr, uint8(c.regs.GetReg(inst.Rd)))
	case TLdrsb:
		c.regs.SetReg(inst.Rd, uint32(int32(int8(c.bus.Read8(addr)))))
	case TLdr:
		c.regs.SetReg(inst.Rd, rotateMisalignedWord(c.bus.Read32(addr&^0x3), addr))
	case TLdrh:
		c.regs.SetReg(inst.Rd, uint32(c.bus.Read16(addr&^0x1)))
	case TLdrb:
		c.regs.SetReg(inst.Rd, uint32(c.bus.Read8(addr)))
	case TLdrsh:
		c.regs.SetReg(inst.Rd, uint32(int32(int16(c.bus.Read16(addr&^0x1)))))
	}
	return 3, nil
}

func (c *CPU) execThumbLoadStoreImm(inst ThumbLoadStoreImm) (uint32, error) {
	var base uint32
	var offset uint32
	if inst.SP {
		base = c.regs.GetReg(13)
		offset = uint32(inst.Imm) * 4
	} else {
		base = c.regs.GetReg(inst.Rb)
		if inst.Byte {
			offset = uint32(inst.Imm)
		} else {
			offset = uint32(inst.Imm) * 4
		}
	}
	addr := base + offset

	if inst.Load {
		if inst.Byte {
			c.regs.SetReg(inst.Rd, uint32(c.bus.Read8(addr)))
		} else {
			c.regs.SetReg(inst.Rd, rotateMisalignedWord(c.bus.Read32(addr&^0x3), addr))
		}
	} else {
		if inst.Byte {
			c.bus.Write8(addr, uint8(c.regs.GetReg(inst.Rd)))
		} else {
			c.bus.Write32(addr&^0x3, c.regs.GetReg(inst.Rd))
		}
	}
	return 3, nil
}

func (c *CPU) execThumbLoadStoreHalfImm(inst ThumbLoadStoreHalfImm) (uint32, error) {
	addr := c.regs.GetReg(inst.Rb) + uint32(inst.Imm5)*2
	if inst.Load {
		c.regs.SetReg(inst.Rd, uint32(c.bus.Read16(addr&^0x1)))
	} else {
		c.bus.Write16(addr&^0x1, uint16(c.regs.GetReg(inst.Rd)))
	}
	return 3, nil
}

func (c *CPU) execThumbLoadAddress(inst ThumbLoadAddress, pc4 uint32) (uint32, error) {
	var base uint32
	if inst.SP {
		base = c.regs.GetReg(13)
	} else {
		base = pc4 &^ 0x3
	}
	c.regs.SetReg(inst.Rd, base+uint32(inst.Imm8)*4)
	return 1, nil
}

func (c *CPU) execThumbAdjustSP(inst ThumbAdjustSP) (uint32, error) {
	sp := c.regs.GetReg(13)
	delta := uint32(inst.Imm7) * 4
	if inst.Sub {
		c.regs.SetReg(13, sp-delta)
	} else {
		c.regs.SetReg(13, sp+delta)
	}
	return 1, nil
}

func (c *CPU) execThumbPushPop(inst ThumbPushPop) (uint32, error) {
	count := popCount8(inst.RegisterList)
	if inst.StoreLRLoadPC {
		count++
	}

	if !inst.Load {
		sp := c.regs.GetReg(13) - uint32(count)*4
		addr := sp
		for i := uint8(0); i < 8; i++ {
			if inst.RegisterList&(1<<i) != 0 {
				c.bus.Write32(addr, c.regs.GetReg(i))
				addr += 4
			}
		}
		if inst.StoreLRLoadPC {
			c.bus.Write32(addr, c.regs.GetReg(14))
		}
		c.regs.SetReg(13, sp)
	} else {
		addr := c.regs.GetReg(13)
		for i := uint8(0); i < 8; i++ {
			if inst.RegisterList&(1<<i) != 0 {
				c.regs.SetReg(i, c.bus.Read32(addr))
				addr += 4
			}
		}
		if inst.StoreLRLoadPC {
			value := c.bus.Read32(addr)
			addr += 4
			c.regs.SetPC(value &^ 0x1)
		}
		c.regs.SetReg(13, addr)
	}
	return uint32(count) + 1, nil
}

func (c *CPU) execThumbBlockTransfer(inst ThumbBlockTransfer) (uint32, error) {
	count := popCount8(inst.RegisterList)
	addr := c.regs.GetReg(inst.Rb)
	for i := uint8(0); i < 8; i++ {
		if inst.RegisterList&(1<<i) == 0 {
			continue
		}
		if inst.Load {
			c.regs.SetReg(i, c.bus.Read32(addr))
		} else {
			c.bus.Write32(addr, c.regs.GetReg(i))
		}
		addr += 4
	}
	c.regs.SetReg(inst.Rb, addr)
	return uint32(count) + 1, nil
}

func (c *CPU) execThumbCondBranch(inst ThumbCondBranch, pc4 uint32) (uint32, error) {
	if !c.regs.CheckCondition(inst.Cond) {
		return 1, nil
	}
	c.regs.SetPC(uint32(int32(pc4) + inst.Offset))
	return 3, nil
}

func popCount8(v uint8) int {
	n := 0
	for i := 0; i < 8; i++ {
		if v&(1<<i) != 0 {
			n++
		}
	}
	return n
}
