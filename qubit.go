package qcircuit

import (
	"fmt"
	"math/cmplx"
)

/*
Qubit holds the two amplitudes of a single, independent qubit. There is no
cross-qubit structure, so a register of Qubits can never describe an entangled
state.
*/
type Qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

func NewQubit(alpha, beta complex128) Qubit {
	return Qubit{alpha: alpha, beta: beta}
}

// Zero is the |0⟩ basis state.
func Zero() Qubit { return Qubit{alpha: 1, beta: 0} }

// One is the |1⟩ basis state.
func One() Qubit { return Qubit{alpha: 0, beta: 1} }

func (q Qubit) Alpha() complex128 { return q.alpha }
func (q Qubit) Beta() complex128  { return q.beta }

// Apply returns the qubit after multiplying its amplitudes by m.
func (q Qubit) Apply(m Matrix) Qubit {
	q.alpha, q.beta = m.Apply(q.alpha, q.beta)
	return q
}

// P0 is the Born-rule probability of observing |0⟩.
func (q Qubit) P0() float64 {
	p := cmplx.Abs(q.alpha)
	return p * p
}

// P1 is the Born-rule probability of observing |1⟩.
func (q Qubit) P1() float64 {
	p := cmplx.Abs(q.beta)
	return p * p
}

/*
IsBasis reports whether the qubit is exactly |0⟩ or |1⟩. The comparison is
exact: a qubit one rounding error away from a basis state is still a
superposition.
*/
func (q Qubit) IsBasis() bool {
	return (q.alpha == 1 && q.beta == 0) || (q.alpha == 0 && q.beta == 1)
}

// Bit returns the classical value of a basis-state qubit.
func (q Qubit) Bit() (uint8, bool) {
	switch {
	case q.alpha == 1 && q.beta == 0:
		return 0, true
	case q.alpha == 0 && q.beta == 1:
		return 1, true
	default:
		return 0, false
	}
}

func (q Qubit) String() string {
	if b, ok := q.Bit(); ok {
		return fmt.Sprintf("|%d⟩", b)
	}
	return fmt.Sprintf("%.4g|0⟩ + %.4g|1⟩", q.alpha, q.beta)
}
