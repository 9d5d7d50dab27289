package qcircuit

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

/*
Matrix is a 2x2 complex operator acting on a single qubit's amplitude pair,
indexed [row][column]. Matrices used as gates are expected to be unitary; the
engine does not check this, and a non-unitary matrix yields amplitudes that no
longer describe a valid qubit.
*/
type Matrix [2][2]complex128

// Names of the standard single-qubit matrices.
const (
	MatrixIdentity = "i"
	MatrixPauliX   = "x"
	MatrixPauliY   = "y"
	MatrixPauliZ   = "z"
	MatrixHadamard = "h"
	MatrixS        = "s"
	MatrixSDagger  = "sdg"
	MatrixT        = "t"
	MatrixTDagger  = "tdg"
)

// standardMatrices is built once at package init and never written afterwards.
var standardMatrices = buildStandardMatrices()

func buildStandardMatrices() map[string]Matrix {
	h := complex(1/math.Sqrt2, 0)

	return map[string]Matrix{
		MatrixIdentity: {{1, 0}, {0, 1}},
		MatrixPauliX:   {{0, 1}, {1, 0}},
		MatrixPauliY:   {{0, -1i}, {1i, 0}},
		MatrixPauliZ:   {{1, 0}, {0, -1}},
		MatrixHadamard: {{h, h}, {h, -h}},
		MatrixS:        {{1, 0}, {0, 1i}},
		MatrixSDagger:  {{1, 0}, {0, -1i}},
		MatrixT:        {{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}},
		MatrixTDagger:  {{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}},
	}
}

// LookupMatrix returns a copy of the named standard matrix.
func LookupMatrix(name string) (Matrix, bool) {
	m, ok := standardMatrices[name]
	return m, ok
}

func mustMatrix(name string) Matrix {
	m, ok := standardMatrices[name]
	if !ok {
		panic(fmt.Sprintf("qcircuit: no standard matrix %q", name))
	}
	return m
}

// MatrixNames lists the standard matrices in sorted order.
func MatrixNames() []string {
	names := make([]string, 0, len(standardMatrices))
	for name := range standardMatrices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns the matrix-vector product m·(a0, a1).
func (m Matrix) Apply(a0, a1 complex128) (complex128, complex128) {
	return m[0][0]*a0 + m[0][1]*a1, m[1][0]*a0 + m[1][1]*a1
}

// Mul returns the product m·n.
func (m Matrix) Mul(n Matrix) Matrix {
	var out Matrix
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = m[r][0]*n[0][c] + m[r][1]*n[1][c]
		}
	}
	return out
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

/*
IsUnitary reports whether m·m† equals the identity within tol. It is offered
to callers building custom gates; Execute never calls it.
*/
func (m Matrix) IsUnitary(tol float64) bool {
	p := m.Mul(m.Dagger())
	id := standardMatrices[MatrixIdentity]
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if cmplx.Abs(p[r][c]-id[r][c]) > tol {
				return false
			}
		}
	}
	return true
}
