package qcircuit

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewState(t *testing.T) {
	Convey("Given register sizes", t, func() {
		for _, size := range [][2]int{{0, 0}, {1, 0}, {0, 3}, {5, 2}, {100, 100}} {
			s := NewState(size[0], size[1])

			So(s.NumQubits(), ShouldEqual, size[0])
			So(s.NumClassical(), ShouldEqual, size[1])

			for i := 0; i < size[0]; i++ {
				q, err := s.Qubit(i)
				So(err, ShouldBeNil)
				So(q, ShouldResemble, Zero())
			}
			for i := 0; i < size[1]; i++ {
				b, err := s.Classical(i)
				So(err, ShouldBeNil)
				So(b, ShouldEqual, 0)
			}
		}
	})
}

func TestMeasure(t *testing.T) {
	Convey("Given a qubit in equal superposition", t, func() {
		h := 1 / math.Sqrt2
		s := NewState(2, 0)
		s.qubits[0] = NewQubit(complex(h, 0), complex(h, 0))

		Convey("A draw below |a0|² collapses to |0⟩", func() {
			b, err := s.Measure(0, NewScriptedSource(0.49))
			So(err, ShouldBeNil)
			So(b, ShouldEqual, 0)
			So(s.qubits[0], ShouldResemble, Zero())
		})

		Convey("A draw at or above |a0|² collapses to |1⟩", func() {
			b, err := s.Measure(0, NewScriptedSource(0.51))
			So(err, ShouldBeNil)
			So(b, ShouldEqual, 1)
			So(s.qubits[0], ShouldResemble, One())
		})

		Convey("Measuring again is deterministic", func() {
			_, err := s.Measure(0, NewScriptedSource(0.51))
			So(err, ShouldBeNil)

			for _, r := range []float64{0, 0.25, 0.5, 0.999} {
				b, err := s.Measure(0, NewScriptedSource(r))
				So(err, ShouldBeNil)
				So(b, ShouldEqual, 1)
			}
		})

		Convey("The index must exist", func() {
			_, err := s.Measure(2, NewScriptedSource(0))
			So(errors.Is(err, ErrIndexOutOfBounds), ShouldBeTrue)

			_, err = s.Measure(1, NewScriptedSource(0))
			So(err, ShouldBeNil)
		})
	})

	Convey("Given an amplitude with a negative real part", t, func() {
		s := NewState(1, 0)
		s.qubits[0] = NewQubit(complex(-0.6, 0), complex(0.8, 0))

		Convey("The probability is the squared magnitude, not the raw real part", func() {
			b, err := s.Measure(0, NewScriptedSource(0.3))
			So(err, ShouldBeNil)
			So(b, ShouldEqual, 0)
		})
	})

	Convey("Given a purely imaginary |0⟩ amplitude", t, func() {
		s := NewState(1, 0)
		s.qubits[0] = NewQubit(complex(0, 1), 0)

		Convey("It measures |0⟩ with certainty", func() {
			b, err := s.Measure(0, NewScriptedSource(0.999))
			So(err, ShouldBeNil)
			So(b, ShouldEqual, 0)
		})
	})

	Convey("Given many seeded measurements of an equal superposition", t, func() {
		src := NewSource(2024)
		ones := 0
		for i := 0; i < 4000; i++ {
			s := NewState(1, 0)
			s.qubits[0] = NewQubit(complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0))
			b, _ := s.Measure(0, src)
			ones += int(b)
		}

		Convey("Roughly half come out |1⟩", func() {
			So(ones, ShouldBeBetween, 1800, 2200)
		})
	})
}

func TestReadClassical(t *testing.T) {
	Convey("Given a register", t, func() {
		s := NewState(3, 2)
		s.qubits[1] = One()

		Convey("Copying |0⟩ writes 0", func() {
			So(s.SetClassical(0, 1), ShouldBeNil)
			So(s.ReadClassical(0, 0), ShouldBeNil)
			b, _ := s.Classical(0)
			So(b, ShouldEqual, 0)
		})

		Convey("Copying |1⟩ writes 1 to the maximal classical index", func() {
			So(s.ReadClassical(1, 1), ShouldBeNil)
			b, _ := s.Classical(1)
			So(b, ShouldEqual, 1)
			So(s.Bits(), ShouldEqual, "10")
		})

		Convey("Copying a superposition fails and changes nothing", func() {
			s.qubits[2] = NewQubit(complex(0.6, 0), complex(0.8, 0))
			err := s.ReadClassical(2, 0)
			So(errors.Is(err, ErrSuperpositionCopyAttempt), ShouldBeTrue)
			b, _ := s.Classical(0)
			So(b, ShouldEqual, 0)
		})

		Convey("Copying a phased basis state fails", func() {
			s.qubits[2] = NewQubit(0, -1)
			So(errors.Is(s.ReadClassical(2, 0), ErrSuperpositionCopyAttempt), ShouldBeTrue)
		})

		Convey("Indices at the register size are rejected", func() {
			So(errors.Is(s.ReadClassical(3, 0), ErrIndexOutOfBounds), ShouldBeTrue)
			So(errors.Is(s.ReadClassical(0, 2), ErrIndexOutOfBounds), ShouldBeTrue)

			var idx *IndexError
			So(errors.As(s.ReadClassical(0, 2), &idx), ShouldBeTrue)
			So(idx.Register, ShouldEqual, ClassicalKind)
			So(idx.Size, ShouldEqual, 2)
		})
	})
}

func TestClone(t *testing.T) {
	Convey("Given a state and its clone", t, func() {
		s := NewState(2, 1)
		c := s.Clone()

		Convey("Changing the original leaves the clone alone", func() {
			s.qubits[0] = One()
			So(s.SetClassical(0, 1), ShouldBeNil)

			q, _ := c.Qubit(0)
			b, _ := c.Classical(0)
			So(q, ShouldResemble, Zero())
			So(b, ShouldEqual, 0)
		})
	})
}

func TestSetClassical(t *testing.T) {
	Convey("Given a register", t, func() {
		s := NewState(0, 1)

		Convey("Only 0 and 1 are accepted", func() {
			So(s.SetClassical(0, 2), ShouldNotBeNil)
			So(s.SetClassical(0, 1), ShouldBeNil)
		})
	})
}
