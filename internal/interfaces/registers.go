package interfaces

// RegistersInterface is the register-file contract: the 16 general-purpose
// registers, mode-banked r8-r14, and the CPSR/SPSR flag machinery. The CPU
// hands out its register file through this interface (CPUInterface.Registers)
// so code outside internal/cpu can inspect and set it without the concrete
// *cpu.Registers type; the executors inside internal/cpu use the concrete
// type directly.
type RegistersInterface interface {
	GetReg(reg uint8) uint32
	SetReg(reg uint8, value uint32)
	GetRegMode(reg uint8, mode uint8) uint32
	SetRegMode(reg uint8, mode uint8, value uint32)

	GetPC() uint32
	SetPC(uint32)

	GetCPSR() uint32
	SetCPSR(uint32)
	GetSPSR() (value uint32, ok bool)
	SetSPSR(value uint32) (ok bool)

	GetMode() uint8
	SetMode(uint8)
	CurrentModeHasSPSR() bool

	GetFlagN() bool
	GetFlagZ() bool
	GetFlagC() bool
	GetFlagV() bool
	SetFlagN(bool)
	SetFlagZ(bool)
	SetFlagC(bool)
	SetFlagV(bool)
	SetNZCV(n, z, c, v bool)

	IsThumb() bool
	SetThumbState(bool)
	IsIRQDisabled() bool
	SetIRQDisabled(bool)
	IsFIQDisabled() bool
	SetFIQDisabled(bool)

	CheckCondition(cond uint8) bool
}
