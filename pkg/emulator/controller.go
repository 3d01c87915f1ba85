// Package emulator describes the contract between an emulator
// and the host driving it.
package emulator

// Controller defines the interface contract for an Emulator to
// implement in order for a host to be able to control it from
// another goroutine.
type Controller interface {
	Pause()
	Resume()
	Paused() bool
	Status() Status
}
