package cpu

import "goba/internal/bits"

// ShifterResult is the barrel shifter's output: the computed operand and the
// carry-out it produces, which feeds the C flag on any S=1 data-processing
// instruction whose second operand passed through the shifter.
type ShifterResult struct {
	Value    uint32
	CarryOut bool
}

// ShifterImmediate computes the shifter operand for the immediate form of a
// data-processing instruction: an 8-bit value rotated right by Nn*2. Per the
// edge-case table, a rotate of 0 leaves the carry-out equal to the current C
// flag (the shifter performs no rotation and therefore cannot affect carry).
func ShifterImmediate(imm8 uint8, nn uint8, currentCarry bool) ShifterResult {
	rotate := uint(nn) * 2
	if rotate == 0 {
		return ShifterResult{Value: uint32(imm8), CarryOut: currentCarry}
	}
	value := bits.RotateRight(uint32(imm8), rotate)
	return ShifterResult{Value: value, CarryOut: bits.Bit(value, 31)}
}

// ShifterRegister computes the shifter operand for the register form:
// Rm shifted by either an immediate (Is) or the low byte of Rs, per the full
// table in the barrel-shifter rules. regShift selects shift-by-register.
func ShifterRegister(shiftType ARMShiftType, rm uint32, is uint8, regShift bool, rsValue uint32, currentCarry bool) ShifterResult {
	if !regShift {
		return shiftByImmediate(shiftType, rm, is, currentCarry)
	}
	return shiftByRegister(shiftType, rm, uint8(rsValue&0xFF), currentCarry)
}

func shiftByImmediate(shiftType ARMShiftType, rm uint32, is uint8, currentCarry bool) ShifterResult {
	switch shiftType {
	case LSL:
		if is == 0 {
			return ShifterResult{Value: rm, CarryOut: currentCarry}
		}
		return ShifterResult{Value: rm << is, CarryOut: bits.Bit(rm, 32-uint(is))}
	case LSR:
		if is == 0 {
			// LSR #0 encodes LSR #32: result 0, carry = bit 31 of Rm.
			return ShifterResult{Value: 0, CarryOut: bits.Bit(rm, 31)}
		}
		return ShifterResult{Value: rm >> is, CarryOut: bits.Bit(rm, uint(is)-1)}
	case ASR:
		if is == 0 {
			// ASR #0 encodes ASR #32: result and carry both come from bit 31.
			if bits.Bit(rm, 31) {
				return ShifterResult{Value: 0xFFFFFFFF, CarryOut: true}
			}
			return ShifterResult{Value: 0, CarryOut: false}
		}
		return ShifterResult{Value: uint32(int32(rm) >> is), CarryOut: bits.Bit(rm, uint(is)-1)}
	case ROR:
		if is == 0 {
			// ROR #0 encodes RRX: 33-bit rotate through the carry flag.
			result := (rm >> 1) | (bits.BoolToU32(currentCarry) << 31)
			return ShifterResult{Value: result, CarryOut: bits.Bit(rm, 0)}
		}
		value := bits.RotateRight(rm, uint(is))
		return ShifterResult{Value: value, CarryOut: bits.Bit(value, 31)}
	}
	return ShifterResult{Value: rm, CarryOut: currentCarry}
}

func shiftByRegister(shiftType ARMShiftType, rm uint32, shiftAmount uint8, currentCarry bool) ShifterResult {
	s := uint(shiftAmount)
	switch shiftType {
	case LSL:
		switch {
		case s == 0:
			return ShifterResult{Value: rm, CarryOut: currentCarry}
		case s < 32:
			return ShifterResult{Value: rm << s, CarryOut: bits.Bit(rm, 32-s)}
		case s == 32:
			return ShifterResult{Value: 0, CarryOut: bits.Bit(rm, 0)}
		default: // s > 32
			return ShifterResult{Value: 0, CarryOut: false}
		}
	case LSR:
		switch {
		case s == 0:
			return ShifterResult{Value: rm, CarryOut: currentCarry}
		case s < 32:
			return ShifterResult{Value: rm >> s, CarryOut: bits.Bit(rm, s-1)}
		case s == 32:
			return ShifterResult{Value: 0, CarryOut: bits.Bit(rm, 31)}
		default:
			return ShifterResult{Value: 0, CarryOut: false}
		}
	case ASR:
		switch {
		case s == 0:
			return ShifterResult{Value: rm, CarryOut: currentCarry}
		case s < 32:
			return ShifterResult{Value: uint32(int32(rm) >> s), CarryOut: bits.Bit(rm, s-1)}
		default: // s >= 32: result and carry both come from bit 31
			if bits.Bit(rm, 31) {
				return ShifterResult{Value: 0xFFFFFFFF, CarryOut: true}
			}
			return ShifterResult{Value: 0, CarryOut: false}
		}
	case ROR:
		if s == 0 {
			return ShifterResult{Value: rm, CarryOut: currentCarry}
		}
		effective := s & 31
		if effective == 0 {
			// Multiple of 32: value unchanged, carry = bit 31.
			return ShifterResult{Value: rm, CarryOut: bits.Bit(rm, 31)}
		}
		value := bits.RotateRight(rm, effective)
		return ShifterResult{Value: value, CarryOut: bits.Bit(value, 31)}
	}
	return ShifterResult{Value: rm, CarryOut: currentCarry}
}

// addressMode2Offset computes the Mode-2 (word/byte transfer) offset value,
// either the raw 12-bit immediate or a shifted register, per §4.4. The
// shift-by-register form is never valid in Mode 2, so callers only ever
// reach shiftByImmediate.
func addressMode2Offset(ls ARMLoadStoreInstruction, rmValue uint32, currentCarry bool) uint32 {
	if !ls.I {
		return ls.Offset
	}
	return shiftByImmediate(ls.ShiftType, rmValue, ls.Is, currentCarry).Value
}

// ComputeMode2Address computes the effective transfer address and, for
// pre-indexed or post-indexed forms, the writeback value. It does not decide
// whether to write back — callers combine P and W themselves, since P=0
// (post-indexed) always writes back regardless of the W bit.
func ComputeMode2Address(ls ARMLoadStoreInstruction, baseValue, rmValue uint32, currentCarry bool) (transferAddr, writebackAddr uint32) {
	offset := addressMode2Offset(ls, rmValue, currentCarry)
	var offsetAddr uint32
	if ls.U {
		offsetAddr = baseValue + offset
	} else {
		offsetAddr = baseValue - offset
	}

	if ls.P {
		return offsetAddr, offsetAddr
	}
	return baseValue, offsetAddr
}

// ComputeMode3Address mirrors ComputeMode2Address for the halfword/signed
// transfer addressing mode (§4.5), whose offset is either a register or a
// split 8-bit immediate rather than a shifted register.
func ComputeMode3Address(m ARMMiscLoadStoreInstruction, baseValue, rmValue uint32) (transferAddr, writebackAddr uint32) {
	var offset uint32
	if m.I {
		offset = uint32(m.Offset)
	} else {
		offset = rmValue
	}

	var offsetAddr uint32
	if m.U {
		offsetAddr = baseValue + offset
	} else {
		offsetAddr = baseValue - offset
	}

	if m.P {
		return offsetAddr, offsetAddr
	}
	return baseValue, offsetAddr
}

// BlockTransferBounds computes the LDM/STM start address (the first word
// transferred) and the final writeback value, per the P/U table: IB and IA
// transfer upward from/after the base, DB and DA transfer downward ending
// at/before it. regCount is the number of set bits in the register list;
// an empty list is an Unpredictable case the caller checks separately.
func BlockTransferBounds(p, u bool, base uint32, regCount uint32) (start, writeback uint32) {
	span := regCount * 4
	switch {
	case u && p: // IB
		return base + 4, base + span
	case u && !p: // IA
		return base, base + span
	case !u && p: // DB
		return base - span, base - span
	default: // DA
		return base - span + 4, base - span
	}
}
