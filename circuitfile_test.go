package qcircuit

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadCircuitFile(t *testing.T) {
	Convey("Given the half adder circuit file", t, func() {
		c, err := LoadCircuitFile("testdata/half_adder.yaml")
		So(err, ShouldBeNil)

		Convey("It declares its registers", func() {
			So(c.Name, ShouldEqual, "half-adder")
			So(c.NumQubits, ShouldEqual, 4)
			So(c.NumClassical, ShouldEqual, 2)
		})

		Convey("Measurements with a destination expand into two ops", func() {
			So(len(c.Ops), ShouldEqual, 8)
			So(c.Ops[4].Kind(), ShouldEqual, OpMeasure)
			So(c.Ops[5].Kind(), ShouldEqual, OpRead)
			So(c.Ops[5].String(), ShouldEqual, "read q1 -> c0")
		})

		Convey("The controls are kept as written", func() {
			t1, t2 := c.Ops[2].Gate().ToffoliControls()
			So(t1, ShouldResemble, Quantum(0))
			So(t2, ShouldResemble, Quantum(1))
			So(c.Ops[3].Gate().Control(), ShouldResemble, Quantum(0))
		})

		Convey("Running it adds one and one", func() {
			run, err := NewRunner(newTestEngine(NewSource(1))).Run(c)
			So(err, ShouldBeNil)
			So(run.State.Bits(), ShouldEqual, "10")
		})
	})

	Convey("Given a path that does not exist", t, func() {
		_, err := LoadCircuitFile("testdata/missing.yaml")
		So(err, ShouldNotBeNil)
	})
}

func TestParseCircuit(t *testing.T) {
	Convey("Given circuit descriptions", t, func() {
		Convey("A custom matrix is parsed from complex literals", func() {
			c, err := ParseCircuit([]byte(`
name: custom
qubits: 1
ops:
  - gate: u
    target: q0
    matrix:
      - ["0", "1"]
      - ["1", "0"]
  - gate: measure
    target: q0
`))
			So(err, ShouldBeNil)

			run, err := NewRunner(newTestEngine(NewSource(1))).Run(c)
			So(err, ShouldBeNil)
			So(bitOf(run.State, 0), ShouldEqual, 1)
		})

		Convey("Imaginary entries are accepted", func() {
			c, err := ParseCircuit([]byte(`
qubits: 1
ops:
  - gate: u
    target: q0
    matrix:
      - ["0", "-1i"]
      - ["1i", "0"]
`))
			So(err, ShouldBeNil)
			m := c.Ops[0].Gate().Matrix()
			So(m[0][1], ShouldEqual, complex(0, -1))
			So(m[1][0], ShouldEqual, complex(0, 1))
		})

		Convey("A classically controlled gate keeps its control", func() {
			c, err := ParseCircuit([]byte(`
qubits: 1
classical: 1
ops:
  - gate: z
    control: c0
    target: q0
`))
			So(err, ShouldBeNil)
			So(c.Ops[0].Gate().Control(), ShouldResemble, Classical(0))
		})

		Convey("Malformed files are rejected", func() {
			bad := map[string]string{
				"empty":             ``,
				"unknown gate":      "qubits: 1\nops:\n  - gate: swap\n    target: q0\n",
				"unknown field":     "qubits: 1\nops:\n  - gate: x\n    target: q0\n    angle: 3\n",
				"bad address":       "qubits: 1\nops:\n  - gate: x\n    target: r0\n",
				"cx without ctrl":   "qubits: 2\nops:\n  - gate: cx\n    target: q1\n",
				"ccx with one ctrl": "qubits: 3\nops:\n  - gate: ccx\n    controls: [q0]\n    target: q2\n",
				"three controls":    "qubits: 4\nops:\n  - gate: x\n    controls: [q0, q1, q2]\n    target: q3\n",
				"measure classical": "qubits: 1\nclassical: 1\nops:\n  - gate: measure\n    target: c0\n",
				"measure into q":    "qubits: 2\nops:\n  - gate: measure\n    target: q0\n    into: q1\n",
				"read without into": "qubits: 1\nops:\n  - gate: read\n    target: q0\n",
				"short matrix":      "qubits: 1\nops:\n  - gate: u\n    target: q0\n    matrix:\n      - [\"1\", \"0\"]\n",
				"bad literal":       "qubits: 1\nops:\n  - gate: u\n    target: q0\n    matrix:\n      - [\"1\", \"zero\"]\n      - [\"0\", \"1\"]\n",
				"negative size":     "qubits: -1\nops: []\n",
			}

			for name, text := range bad {
				_, err := DecodeCircuit(strings.NewReader(text))
				So(err, ShouldNotBeNil)
				if err == nil {
					t.Logf("accepted %s", name)
				}
			}
		})

		Convey("Operand combinations are left to the engine", func() {
			c, err := ParseCircuit([]byte(`
qubits: 2
classical: 1
ops:
  - gate: x
    target: c0
`))
			So(err, ShouldBeNil)

			_, err = NewRunner(newTestEngine(NewSource(1))).Run(c)
			So(errors.Is(err, ErrInvalidTargetKind), ShouldBeTrue)
		})
	})
}
