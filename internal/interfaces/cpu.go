package interfaces

// CPUInterface represents the ARM7TDMI decode-and-execute core.
type CPUInterface interface {
	Registers() RegistersInterface
	Bus() BusInterface
	Reset()
	Step() (cycles uint32, err error)
}
