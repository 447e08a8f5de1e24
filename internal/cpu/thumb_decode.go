package cpu

// DecodeThumb classifies a 16-bit Thumb instruction word into one of the
// decoded instruction structs declared in thumb_instructions.go, following
// the same category-then-subfield walk the format table describes: bits
// 15-13 pick a broad category, then a handful of narrower field checks
// (sometimes just 2 more bits, sometimes a full opcode nibble) pick the
// concrete format.
func DecodeThumb(instr uint16) interface{} {
	category := (instr >> 13) & 0x7

	switch category {
	case 0b000:
		return decodeThumbShiftAddSub(instr)
	case 0b001:
		return decodeThumbImmediateOp(instr)
	case 0b010:
		return decodeThumbALUOrTransfer(instr)
	case 0b011:
		return decodeThumbLoadStoreImm(instr)
	case 0b100:
		return decodeThumbHalfwordOrSP(instr)
	case 0b101:
		return decodeThumbMisc(instr)
	case 0b110:
		return decodeThumbBlockOrCondBranch(instr)
	case 0b111:
		return decodeThumbBranch(instr)
	}
	return ThumbUndefined{}
}

func decodeThumbShiftAddSub(instr uint16) interface{} {
	opcode := (instr >> 11) & 0x3
	if opcode != 0b11 {
		return ThumbMoveShifted{
			Shift: ARMShiftType(opcode),
			Rd:    uint8(instr & 0x7),
			Rs:    uint8((instr >> 3) & 0x7),
			Imm5:  uint8((instr >> 6) & 0x1F),
		}
	}

	sub := instr&(1<<9) != 0
	imm := instr&(1<<10) != 0
	return ThumbAddSubtract{
		Sub:      sub,
		Imm:      imm,
		Rd:       uint8(instr & 0x7),
		Rs:       uint8((instr >> 3) & 0x7),
		RnOrImm3: uint8((instr >> 6) & 0x7),
	}
}

func decodeThumbImmediateOp(instr uint16) ThumbImmediateOp {
	opcode := (instr >> 11) & 0x3
	op := ThumbImmediateOp{
		Rd:   uint8((instr >> 8) & 0x7),
		Imm8: uint8(instr & 0xFF),
	}
	switch opcode {
	case 0b00:
		op.Mov = true
	case 0b01:
		op.Cmp = true
	case 0b10:
		op.Add = true
	case 0b11:
		op.Sub = true
	}
	return op
}

func decodeThumbALUOrTransfer(instr uint16) interface{} {
	sub := (instr >> 10) & 0x7
	switch sub {
	case 0b000:
		return ThumbALU{
			Op: ThumbALUOp((instr >> 6) & 0xF),
			Rd: uint8(instr & 0x7),
			Rs: uint8((instr >> 3) & 0x7),
		}
	case 0b001:
		opcode := (instr >> 8) & 0x3
		h1 := (instr >> 7) & 0x1
		h2 := (instr >> 6) & 0x1
		rd := uint8(h1<<3 | (instr & 0x7))
		rs := uint8(h2<<3 | ((instr >> 3) & 0x7))
		return ThumbHiRegOp{Op: uint8(opcode), Rd: rd, Rs: rs}
	case 0b010, 0b011:
		return ThumbLoadLiteral{
			Rd:   uint8((instr >> 8) & 0x7),
			Imm8: uint8(instr & 0xFF),
		}
	default: // 0b100-0b111: load/store register offset
		opcode := (instr >> 9) & 0x7
		return ThumbLoadStoreReg{
			Op: ThumbRegOffsetOp(opcode),
			Rd: uint8(instr & 0x7),
			Rb: uint8((instr >> 3) & 0x7),
			Ro: uint8((instr >> 6) & 0x7),
		}
	}
}

func decodeThumbLoadStoreImm(instr uint16) ThumbLoadStoreImm {
	return ThumbLoadStoreImm{
		Byte: instr&(1<<12) != 0,
		Load: instr&(1<<11) != 0,
		Rd:   uint8(instr & 0x7),
		Rb:   uint8((instr >> 3) & 0x7),
		Imm:  uint8((instr >> 6) & 0x1F),
	}
}

func decodeThumbHalfwordOrSP(instr uint16) interface{} {
	if instr&(1<<12) != 0 {
		// SP-relative load/store (format 11).
		return ThumbLoadStoreImm{
			Load: instr&(1<<11) != 0,
			SP:   true,
			Rd:   uint8((instr >> 8) & 0x7),
			Imm:  uint8(instr & 0xFF),
		}
	}
	return ThumbLoadStoreHalfImm{
		Load: instr&(1<<11) != 0,
		Rd:   uint8(instr & 0x7),
		Rb:   uint8((instr >> 3) & 0x7),
		Imm5: uint8((instr >> 6) & 0x1F),
	}
}

func decodeThumbMisc(instr uint16) interface{} {
	if instr&(1<<12) == 0 {
		return ThumbLoadAddress{
			SP:   instr&(1<<11) != 0,
			Rd:   uint8((instr >> 8) & 0x7),
			Imm8: uint8(instr & 0xFF),
		}
	}

	group := (instr >> 9) & 0x7 // bits 11-9: L,1,0 for push/pop; 0,0,0 for SP adjust
	switch group {
	case 0b000:
		return ThumbAdjustSP{Sub: instr&(1<<7) != 0, Imm7: uint8(instr & 0x7F)}
	case 0b010:
		return ThumbPushPop{Load: false, StoreLRLoadPC: instr&(1<<8) != 0, RegisterList: uint8(instr & 0xFF)}
	case 0b110:
		return ThumbPushPop{Load: true, StoreLRLoadPC: instr&(1<<8) != 0, RegisterList: uint8(instr & 0xFF)}
	default:
		return ThumbUndefined{}
	}
}

func decodeThumbBlockOrCondBranch(instr uint16) interface{} {
	if instr&(1<<12) == 0 {
		return ThumbBlockTransfer{
			Load:         instr&(1<<11) != 0,
			Rb:           uint8((instr >> 8) & 0x7),
			RegisterList: uint8(instr & 0xFF),
		}
	}

	cond := uint8((instr >> 8) & 0xF)
	if cond == 0xF {
		return ThumbSWI{Comment: uint8(instr & 0xFF)}
	}
	if cond == 0xE {
		return ThumbUndefined{}
	}
	raw := int32(int8(instr & 0xFF))
	return ThumbCondBranch{Cond: cond, Offset: raw << 1}
}

func decodeThumbBranch(instr uint16) interface{} {
	h := (instr >> 11) & 0x3
	switch h {
	case 0b00:
		raw := signExtend11(instr & 0x7FF)
		return ThumbBranch{Offset: raw << 1}
	case 0b10:
		raw := signExtend11(instr & 0x7FF)
		return ThumbBranchLinkHigh{Offset: raw << 12}
	default: // 0b11 (and the ARMv5 BLX 0b01 form, unsupported on this target)
		return ThumbBranchLinkLow{Offset: uint32(instr&0x7FF) << 1}
	}
}

func signExtend11(v uint16) int32 {
	if v&0x400 != 0 {
		return int32(v) - 0x800
	}
	return int32(v)
}
