package qcircuit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

/*
CircuitFile is the on-disk description of a circuit.

	name: half-adder
	qubits: 4
	classical: 2
	ops:
	  - gate: x
	    target: q0
	  - gate: ccx
	    controls: [q0, q1]
	    target: q3
	  - gate: cx
	    control: q0
	    target: q1
	  - gate: measure
	    target: q1
	    into: c0

Any standard gate (i, x, y, z, h, s, sdg, t, tdg) may carry a control or a
controls pair. "cx"/"cnot" and "ccx"/"toffoli" are Pauli-X with a required
control or pair. "u" takes a custom 2x2 matrix of complex literals.
"measure" collapses target and, when into is set, copies the result there.
"read" copies an already collapsed target into a classical bit.
*/
type CircuitFile struct {
	Name      string   `yaml:"name"`
	Qubits    int      `yaml:"qubits"`
	Classical int      `yaml:"classical"`
	Ops       []OpSpec `yaml:"ops"`
}

// OpSpec is a single entry in CircuitFile.Ops.
type OpSpec struct {
	Gate     string      `yaml:"gate"`
	Target   Address     `yaml:"target,omitempty"`
	Control  Address     `yaml:"control,omitempty"`
	Controls []Address   `yaml:"controls,omitempty"`
	Into     Address     `yaml:"into,omitempty"`
	Matrix   [][2]string `yaml:"matrix,omitempty"`
}

func LoadCircuitFile(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCircuit(data)
}

func ParseCircuit(data []byte) (*Circuit, error) {
	return DecodeCircuit(bytes.NewReader(data))
}

func DecodeCircuit(r io.Reader) (*Circuit, error) {
	var file CircuitFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty circuit file")
		}
		return nil, fmt.Errorf("decoding circuit: %w", err)
	}

	return file.Circuit()
}

// Circuit converts the file description into an executable Circuit.
func (f *CircuitFile) Circuit() (*Circuit, error) {
	if f.Qubits < 0 || f.Classical < 0 {
		return nil, fmt.Errorf("circuit %q: register sizes must not be negative", f.Name)
	}

	c := NewCircuit(f.Name, f.Qubits, f.Classical)
	for i, spec := range f.Ops {
		ops, err := spec.ops()
		if err != nil {
			return nil, fmt.Errorf("circuit %q op %d (%s): %w", f.Name, i, spec.Gate, err)
		}
		c.Ops = append(c.Ops, ops...)
	}
	return c, nil
}

func (spec OpSpec) ops() ([]Op, error) {
	name := strings.ToLower(strings.TrimSpace(spec.Gate))

	switch name {
	case "measure":
		if !spec.Target.IsQuantum() {
			return nil, errors.New("measure needs a qubit target")
		}
		ops := []Op{MeasureOp(spec.Target.Index())}
		if spec.Into.IsSet() {
			if !spec.Into.IsClassical() {
				return nil, errors.New("measure can only store into a classical bit")
			}
			ops = append(ops, ReadOp(spec.Target.Index(), spec.Into.Index()))
		}
		return ops, nil
	case "read":
		if !spec.Target.IsQuantum() || !spec.Into.IsClassical() {
			return nil, errors.New("read needs a qubit target and a classical destination")
		}
		return []Op{ReadOp(spec.Target.Index(), spec.Into.Index())}, nil
	}

	g, err := spec.gate(name)
	if err != nil {
		return nil, err
	}
	return []Op{GateOp(g)}, nil
}

func (spec OpSpec) gate(name string) (Gate, error) {
	var (
		g            Gate
		needControl  bool
		needControls bool
	)

	switch name {
	case "cx", "cnot":
		g, needControl = PauliX(spec.Target), true
	case "ccx", "toffoli":
		g, needControls = PauliX(spec.Target), true
	case "u":
		m, err := parseMatrix(spec.Matrix)
		if err != nil {
			return g, err
		}
		g = NewGate(m, None(), spec.Target, None(), None())
	default:
		var err error
		if g, err = Standard(name, spec.Target); err != nil {
			return g, err
		}
	}

	if needControl && !spec.Control.IsSet() {
		return g, fmt.Errorf("%s needs a control", name)
	}
	if needControls && len(spec.Controls) != 2 {
		return g, fmt.Errorf("%s needs exactly two controls", name)
	}

	// The raw operands are kept as written; the engine decides whether the
	// combination is valid when the gate runs.
	if spec.Control.IsSet() {
		g = Controlled(spec.Control, g)
	}
	switch len(spec.Controls) {
	case 0:
	case 2:
		g = DoublyControlled(spec.Controls[0], spec.Controls[1], g)
	default:
		return g, fmt.Errorf("controls must list exactly two bits, got %d", len(spec.Controls))
	}

	return g, nil
}

func parseMatrix(rows [][2]string) (Matrix, error) {
	var m Matrix
	if len(rows) != 2 {
		return m, fmt.Errorf("matrix must have 2 rows, got %d", len(rows))
	}
	for r, row := range rows {
		for c, cell := range row {
			v, err := strconv.ParseComplex(strings.ReplaceAll(cell, " ", ""), 128)
			if err != nil {
				return m, fmt.Errorf("matrix[%d][%d]: %w", r, c, err)
			}
			m[r][c] = v
		}
	}
	return m, nil
}
