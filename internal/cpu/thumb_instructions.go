package cpu

// ThumbALUOp enumerates the 16-bit data-processing-register opcode space
// (format 4): AND..MVN plus the two-register shifts and MUL that share its
// encoding, bits 9-6.
type ThumbALUOp uint8

const (
	TAnd ThumbALUOp = iota
	TEor
	TLsl
	TLsr
	TAsr
	TAdc
	TSbc
	TRor
	TTst
	TNeg
	TCmp
	TCmn
	TOrr
	TMul
	TBic
	TMvn
)

// ThumbMoveShifted covers format 1: LSL/LSR/ASR Rd, Rs, #Imm5.
type ThumbMoveShifted struct {
	Shift   ARMShiftType
	Rd, Rs  uint8
	Imm5    uint8
}

// ThumbAddSubtract covers format 2: ADD/SUB Rd, Rs, Rn|#Imm3.
type ThumbAddSubtract struct {
	Sub      bool
	Imm      bool
	Rd, Rs   uint8
	RnOrImm3 uint8
}

// ThumbImmediateOp covers format 3: MOV/CMP/ADD/SUB Rd, #Imm8.
type ThumbImmediateOp struct {
	Mov  bool
	Cmp  bool
	Add  bool
	Sub  bool
	Rd   uint8
	Imm8 uint8
}

// ThumbALU covers format 4: the 16 two-register ALU/shift/MUL ops.
type ThumbALU struct {
	Op     ThumbALUOp
	Rd, Rs uint8
}

// ThumbHiRegOp covers format 5: ADD/CMP/MOV operating on any of r0-r15, and
// BX. Rd/Rs are full 0-15 register numbers (H1/H2 already folded in).
type ThumbHiRegOp struct {
	Op     uint8 // 0=ADD 1=CMP 2=MOV 3=BX
	Rd, Rs uint8
}

// ThumbLoadLiteral covers format 6: LDR Rd, [PC, #Imm8*4].
type ThumbLoadLiteral struct {
	Rd   uint8
	Imm8 uint8
}

// ThumbRegOffsetOp enumerates format 7/8's eight load/store-with-register-
// offset variants.
type ThumbRegOffsetOp uint8

const (
	TStr ThumbRegOffsetOp = iota
	TStrh
	TStrb
	TLdrsb
	TLdr
	TLdrh
	TLdrb
	TLdrsh
)

// ThumbLoadStoreReg covers formats 7 and 8.
type ThumbLoadStoreReg struct {
	Op         ThumbRegOffsetOp
	Rd, Rb, Ro uint8
}

// ThumbLoadStoreImm covers formats 9 (word/byte) and 11 (SP-relative),
// distinguished by SP.
type ThumbLoadStoreImm struct {
	Byte bool
	Load bool
	SP   bool
	Rd   uint8
	Rb   uint8 // ignored when SP
	Imm  uint8 // Imm5 for word/byte form, Imm8 for SP-relative form
}

// ThumbLoadStoreHalfImm covers format 10: LDRH/STRH Rd, [Rb, #Imm5*2].
type ThumbLoadStoreHalfImm struct {
	Load   bool
	Rd, Rb uint8
	Imm5   uint8
}

// ThumbLoadAddress covers format 12: ADD Rd, PC|SP, #Imm8*4.
type ThumbLoadAddress struct {
	SP   bool
	Rd   uint8
	Imm8 uint8
}

// ThumbAdjustSP covers format 13: ADD/SUB SP, #Imm7*4.
type ThumbAdjustSP struct {
	Sub  bool
	Imm7 uint8
}

// ThumbPushPop covers format 14.
type ThumbPushPop struct {
	Load         bool // false = PUSH, true = POP
	StoreLRLoadPC bool
	RegisterList uint8 // r0-r7
}

// ThumbBlockTransfer covers format 15: STMIA/LDMIA Rb!, {Rlist}.
type ThumbBlockTransfer struct {
	Load         bool
	Rb           uint8
	RegisterList uint8 // r0-r7
}

// ThumbCondBranch covers format 16: conditional B.
type ThumbCondBranch struct {
	Cond   uint8
	Offset int32 // sign-extended, already <<1
}

// ThumbSWI covers format 17.
type ThumbSWI struct {
	Comment uint8
}

// ThumbBranch covers format 18: unconditional B.
type ThumbBranch struct {
	Offset int32 // sign-extended 11-bit field, already <<1
}

// ThumbBranchLinkHigh/Low cover format 19's two half-word BL encoding.
type ThumbBranchLinkHigh struct {
	Offset int32 // sign-extended 11-bit field << 12
}

type ThumbBranchLinkLow struct {
	Offset uint32 // 11-bit field << 1, unsigned
}

// ThumbUndefined marks a 16-bit pattern this target does not define.
type ThumbUndefined struct{}
