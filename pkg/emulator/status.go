package emulator

// Status is the state of an emulated CPU, as seen by the host.
type Status int

const (
	// Running is the status of a CPU executing instructions.
	Running Status = iota
	// Halted is the status of a CPU waiting for an interrupt
	// after a HALT instruction.
	Halted
	// Errored is the status of a CPU that was stopped by an
	// illegal instruction, until its registers are replaced.
	Errored
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Errored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// Stopped reports whether the CPU can't make any progress without
// the host stepping in.
func (s Status) Stopped() bool {
	return s == Errored
}
