package qcircuit

import (
	"fmt"
	"strconv"
)

// AddressKind tags which register, if any, an Address points into.
type AddressKind uint8

const (
	Unset AddressKind = iota
	ClassicalKind
	QuantumKind
)

func (k AddressKind) String() string {
	switch k {
	case Unset:
		return "unset"
	case ClassicalKind:
		return "classical"
	case QuantumKind:
		return "quantum"
	default:
		return "unknown"
	}
}

/*
Address is a reference to a bit operand. It is exactly one of: no operand,
an index into the classical register, or an index into the quantum register.
The zero value is the unset address, so gate fields that are left alone read
as "no operand".
*/
type Address struct {
	kind  AddressKind
	index int
}

// None is the unset address.
func None() Address {
	return Address{}
}

func Classical(index int) Address {
	return Address{kind: ClassicalKind, index: index}
}

func Quantum(index int) Address {
	return Address{kind: QuantumKind, index: index}
}

func (a Address) Kind() AddressKind { return a.kind }

// Index returns the register index. It is meaningless for an unset address.
func (a Address) Index() int { return a.index }

func (a Address) IsSet() bool       { return a.kind != Unset }
func (a Address) IsClassical() bool { return a.kind == ClassicalKind }
func (a Address) IsQuantum() bool   { return a.kind == QuantumKind }

func (a Address) String() string {
	switch a.kind {
	case ClassicalKind:
		return "c" + strconv.Itoa(a.index)
	case QuantumKind:
		return "q" + strconv.Itoa(a.index)
	default:
		return "-"
	}
}

func (a Address) MarshalText() ([]byte, error) {
	if a.kind == Unset {
		return []byte{}, nil
	}
	return []byte(a.String()), nil
}

/*
UnmarshalText parses the q<n> / c<n> notation used in circuit files. An empty
string or "-" decodes to the unset address.
*/
func (a *Address) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" || s == "-" {
		*a = None()
		return nil
	}

	if len(s) < 2 {
		return fmt.Errorf("invalid bit address %q", s)
	}

	index, err := strconv.Atoi(s[1:])
	if err != nil || index < 0 {
		return fmt.Errorf("invalid bit address %q", s)
	}

	switch s[0] {
	case 'q', 'Q':
		*a = Quantum(index)
	case 'c', 'C':
		*a = Classical(index)
	default:
		return fmt.Errorf("invalid bit address %q: expected q<n> or c<n>", s)
	}
	return nil
}
