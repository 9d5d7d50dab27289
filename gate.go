package qcircuit

import "fmt"

/*
Gate describes one single-qubit operation: a 2x2 matrix, the qubit it acts
on, and the operands that decide whether it fires. A Gate is immutable once
built; the engine only reads it.

Operand slots:
  - target: mandatory, must be a qubit.
  - control: optional single control, classical or quantum.
  - toffoli: optional pair of quantum controls.
*/
type Gate struct {
	name     string
	matrix   Matrix
	target   Address
	control  Address
	toffoli1 Address
	toffoli2 Address
}

/*
NewGate builds a gate from an arbitrary matrix and all four operand slots.
The matrix is assumed to be unitary. This is not verified; see
Matrix.IsUnitary.
*/
func NewGate(matrix Matrix, control, target, toffoli1, toffoli2 Address) Gate {
	return Gate{
		name:     "u",
		matrix:   matrix,
		target:   target,
		control:  control,
		toffoli1: toffoli1,
		toffoli2: toffoli2,
	}
}

func standardGate(name string, target Address) Gate {
	return Gate{name: name, matrix: mustMatrix(name), target: target}
}

func PauliX(target Address) Gate   { return standardGate(MatrixPauliX, target) }
func PauliY(target Address) Gate   { return standardGate(MatrixPauliY, target) }
func PauliZ(target Address) Gate   { return standardGate(MatrixPauliZ, target) }
func Hadamard(target Address) Gate { return standardGate(MatrixHadamard, target) }

// S is the 90° phase gate.
func S(target Address) Gate { return standardGate(MatrixS, target) }

// SDagger is the inverse of S.
func SDagger(target Address) Gate { return standardGate(MatrixSDagger, target) }

// T is the 45° phase gate.
func T(target Address) Gate { return standardGate(MatrixT, target) }

// TDagger is the inverse of T.
func TDagger(target Address) Gate { return standardGate(MatrixTDagger, target) }

// Standard builds a named standard gate on target.
func Standard(name string, target Address) (Gate, error) {
	if _, ok := standardMatrices[name]; !ok {
		return Gate{}, fmt.Errorf("unknown gate %q", name)
	}
	return standardGate(name, target), nil
}

// Controlled attaches a single control to g, keeping its matrix and target.
func Controlled(control Address, g Gate) Gate {
	g.name = "c" + g.name
	g.control = control
	return g
}

// CNOT is the controlled Pauli-X.
func CNOT(control, target Address) Gate {
	return Controlled(control, PauliX(target))
}

// DoublyControlled attaches a pair of quantum controls to g.
func DoublyControlled(control1, control2 Address, g Gate) Gate {
	g.name = "cc" + g.name
	g.toffoli1 = control1
	g.toffoli2 = control2
	return g
}

// Toffoli is the doubly-controlled Pauli-X.
func Toffoli(control1, control2, target Address) Gate {
	return DoublyControlled(control1, control2, PauliX(target))
}

/*
WithName returns a copy of g carrying a different display name. Names only
show up in logs, traces and errors.
*/
func (g Gate) WithName(name string) Gate {
	g.name = name
	return g
}

func (g Gate) Name() string     { return g.name }
func (g Gate) Matrix() Matrix   { return g.matrix }
func (g Gate) Target() Address  { return g.target }
func (g Gate) Control() Address { return g.control }

func (g Gate) ToffoliControls() (Address, Address) {
	return g.toffoli1, g.toffoli2
}

func (g Gate) String() string {
	s := fmt.Sprintf("%s %s", g.name, g.target)
	if g.control.IsSet() {
		s += fmt.Sprintf(" if %s", g.control)
	}
	if g.toffoli1.IsSet() || g.toffoli2.IsSet() {
		s += fmt.Sprintf(" if %s&%s", g.toffoli1, g.toffoli2)
	}
	return s
}
