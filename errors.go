package qcircuit

import (
	"errors"
	"fmt"
)

var (
	ErrMissingTarget                = errors.New("gate has no target")
	ErrInvalidTargetKind            = errors.New("gate target must be a qubit")
	ErrIndexOutOfBounds             = errors.New("index out of bounds")
	ErrInvalidAddressingCombination = errors.New("invalid addressing combination")
	ErrSuperpositionCopyAttempt     = errors.New("cannot copy a qubit in superposition to a classical bit")
)

/*
IndexError reports a register index that does not exist. It matches
ErrIndexOutOfBounds under errors.Is.
*/
type IndexError struct {
	Register AddressKind
	Index    int
	Size     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of bounds for register of size %d", e.Register, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfBounds
}

// AddressingError describes why a gate's operand pattern was rejected.
type AddressingError struct {
	Gate   string
	Reason string
}

func (e *AddressingError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Gate, ErrInvalidAddressingCombination, e.Reason)
}

func (e *AddressingError) Unwrap() error {
	return ErrInvalidAddressingCombination
}

// StepError locates a failure inside a circuit.
type StepError struct {
	Step int
	Op   string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func checkIndex(kind AddressKind, index, size int) error {
	if index < 0 || index >= size {
		return &IndexError{Register: kind, Index: index, Size: size}
	}
	return nil
}
