package cpu

import "fmt"

// ErrorKind classifies a step failure the way §7 of the core design asks
// for: a kind, not a concrete type per mistake, so the host can pattern
// match on it instead of string-sniffing an error message.
type ErrorKind int

const (
	// UndefinedInstruction covers coprocessor opcodes, reserved encodings,
	// and any bit pattern the ARMv4T subset does not define. Execution
	// halts; the core never guesses a behavior for it.
	UndefinedInstruction ErrorKind = iota
	// Unpredictable covers architecturally legal but unspecified
	// combinations (Rd=PC on a byte op, Rn=Rd with pre-indexed writeback,
	// SPSR access outside a mode that banks one, and similar). Step returns
	// the error with PC already past the offending word; there is no mode in
	// the core that suppresses it, so stopping or stepping on is up to the
	// caller.
	Unpredictable
	// MemoryFault is reserved for future MPU support. The GBA bus never
	// faults, so the core never raises this kind; it exists so the error
	// taxonomy is complete and callers can exhaustively switch on it.
	MemoryFault
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedInstruction:
		return "UndefinedInstruction"
	case Unpredictable:
		return "Unpredictable"
	case MemoryFault:
		return "MemoryFault"
	default:
		return "UnknownErrorKind"
	}
}

// StepError is returned alongside the cycle count from Step when an
// instruction cannot be executed normally. It carries the raw instruction
// word and, when known, the decoded mnemonic, so the host can print
// "instruction, mnemonic, PC, error kind" per §7's user-visible failure
// behavior without re-decoding anything.
type StepError struct {
	Kind        ErrorKind
	Instruction uint32
	Mnemonic    string
	PC          uint32
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s at PC=%08X: %s (word=%08X)", e.Kind, e.PC, e.Mnemonic, e.Instruction)
}

func newUndefined(pc uint32, instr uint32, mnemonic string) *StepError {
	return &StepError{Kind: UndefinedInstruction, Instruction: instr, Mnemonic: mnemonic, PC: pc}
}

func newUnpredictable(pc uint32, instr uint32, mnemonic string) *StepError {
	return &StepError{Kind: Unpredictable, Instruction: instr, Mnemonic: mnemonic, PC: pc}
}
