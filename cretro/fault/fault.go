// Package fault defines the fatal conditions an emulation run can end with.
// Every fault is terminal: nothing in the core retries or recovers from one,
// the caller decides how to report it and when to exit.
package fault

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a fault by the stage that raised it.
type Kind int

const (
	// Config is an invalid command line or configuration value.
	Config Kind = iota + 1
	// Load is a missing, unreadable or oversized program image.
	Load
	// Decode is an instruction that matches no known operation.
	Decode
	// Runtime is a violated machine invariant (stack, PC, address bounds).
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config fault"
	case Load:
		return "load fault"
	case Decode:
		return "decode fault"
	case Runtime:
		return "runtime fault"
	default:
		return "fault"
	}
}

// Fault carries enough context about a fatal condition for the caller to report it.
type Fault struct {
	Kind   Kind
	PC     uint16 // address of the offending instruction, Decode and Runtime only
	Opcode uint16 // raw instruction, Decode and Runtime only
	Msg    string
	Err    error
}

func (f *Fault) Error() string {
	msg := f.Msg
	if f.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, f.Err)
	}

	switch f.Kind {
	case Decode, Runtime:
		return fmt.Sprintf("%s at %03X (opcode %04X): %s", f.Kind, f.PC, f.Opcode, msg)
	default:
		return fmt.Sprintf("%s: %s", f.Kind, msg)
	}
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// New creates a fault of the given kind, recording the call stack.
func New(kind Kind, format string, args ...any) error {
	return errors.WithStack(&Fault{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	})
}

// Wrap creates a fault of the given kind caused by err.
func Wrap(err error, kind Kind, format string, args ...any) error {
	return errors.WithStack(&Fault{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	})
}

// At creates a fault tied to the instruction at pc.
func At(kind Kind, pc, opcode uint16, format string, args ...any) error {
	return errors.WithStack(&Fault{
		Kind:   kind,
		PC:     pc,
		Opcode: opcode,
		Msg:    fmt.Sprintf(format, args...),
	})
}

// As extracts the Fault from an error chain.
func As(err error) (*Fault, bool) {
	var f *Fault
	if stderrors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Is reports whether err carries a fault of the given kind.
func Is(err error, kind Kind) bool {
	f, ok := As(err)
	return ok && f.Kind == kind
}
