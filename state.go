package qcircuit

import (
	"fmt"
	"strings"
)

/*
State is the register a circuit runs against: one independent amplitude pair
per qubit and one value in {0, 1} per classical bit. Both registers are sized
at creation and never resized.

A State is owned by whoever currently holds it. Measure, ReadClassical and
Engine.Execute update it in place; use Clone to keep an earlier value around.
*/
type State struct {
	qubits []Qubit
	cbits  []uint8
}

// NewState returns a register with every qubit at |0⟩ and every bit at 0.
func NewState(numQubits, numClassical int) *State {
	if numQubits < 0 {
		numQubits = 0
	}
	if numClassical < 0 {
		numClassical = 0
	}

	qubits := make([]Qubit, numQubits)
	for i := range qubits {
		qubits[i] = Zero()
	}

	return &State{
		qubits: qubits,
		cbits:  make([]uint8, numClassical),
	}
}

func (s *State) NumQubits() int    { return len(s.qubits) }
func (s *State) NumClassical() int { return len(s.cbits) }

// Qubit returns a copy of qubit i.
func (s *State) Qubit(i int) (Qubit, error) {
	if err := checkIndex(QuantumKind, i, len(s.qubits)); err != nil {
		return Qubit{}, err
	}
	return s.qubits[i], nil
}

// Classical returns the value of classical bit i.
func (s *State) Classical(i int) (uint8, error) {
	if err := checkIndex(ClassicalKind, i, len(s.cbits)); err != nil {
		return 0, err
	}
	return s.cbits[i], nil
}

// SetClassical writes v (0 or 1) into classical bit i.
func (s *State) SetClassical(i int, v uint8) error {
	if err := checkIndex(ClassicalKind, i, len(s.cbits)); err != nil {
		return err
	}
	if v > 1 {
		return fmt.Errorf("classical bit value %d is not 0 or 1", v)
	}
	s.cbits[i] = v
	return nil
}

/*
Measure collapses qubit index to a basis state and returns the observed bit.
The outcome is |0⟩ when a uniform draw falls below |a0|², otherwise |1⟩, so a
qubit that is already collapsed measures to the same value with certainty.
*/
func (s *State) Measure(index int, src Source) (uint8, error) {
	if err := checkIndex(QuantumKind, index, len(s.qubits)); err != nil {
		return 0, err
	}
	return s.collapse(index, src), nil
}

func (s *State) collapse(index int, src Source) uint8 {
	if src.Float64() < s.qubits[index].P0() {
		s.qubits[index] = Zero()
		return 0
	}
	s.qubits[index] = One()
	return 1
}

/*
ReadClassical copies the value of a collapsed qubit into a classical bit. It
refuses to copy a qubit whose amplitudes are not exactly (1, 0) or (0, 1).
*/
func (s *State) ReadClassical(qubit, classical int) error {
	if err := checkIndex(QuantumKind, qubit, len(s.qubits)); err != nil {
		return err
	}
	if err := checkIndex(ClassicalKind, classical, len(s.cbits)); err != nil {
		return err
	}

	b, ok := s.qubits[qubit].Bit()
	if !ok {
		return fmt.Errorf("qubit %d is %s: %w", qubit, s.qubits[qubit], ErrSuperpositionCopyAttempt)
	}
	s.cbits[classical] = b
	return nil
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	out := &State{
		qubits: make([]Qubit, len(s.qubits)),
		cbits:  make([]uint8, len(s.cbits)),
	}
	copy(out.qubits, s.qubits)
	copy(out.cbits, s.cbits)
	return out
}

/*
Bits renders the classical register as a bit string, highest index first, so
c0 is the rightmost character.
*/
func (s *State) Bits() string {
	var b strings.Builder
	for i := len(s.cbits) - 1; i >= 0; i-- {
		b.WriteByte('0' + s.cbits[i])
	}
	return b.String()
}

func (s *State) String() string {
	qs := make([]string, len(s.qubits))
	for i, q := range s.qubits {
		qs[i] = q.String()
	}
	return fmt.Sprintf("(qubits: [%s], classical: %v)", strings.Join(qs, " "), s.cbits)
}
