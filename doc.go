/*
Package qcircuit executes small quantum circuits gate by gate against a
register of qubits and classical bits.

A circuit is a fold: each Gate is handed to an Engine together with the
current State, and the engine returns the State after that gate. Gates with
quantum controls measure those controls before deciding whether to fire, so
a control qubit always ends up collapsed. Classical controls are plain reads
and never disturb quantum state.

Limitation: every qubit is stored as its own independent pair of amplitudes.
There is no joint 2^n state vector, so entanglement and relative phase
between qubits cannot be represented. Results are only meaningful for
circuits that can be checked qubit by qubit, such as the classical-logic
networks built from CNOT and Toffoli gates (adders, comparators, parity
checks). Do not use this package as a general-purpose quantum simulator.

	s := qcircuit.NewState(4, 1)
	engine := qcircuit.NewEngine()

	s, err := engine.Fold(s,
		qcircuit.PauliX(qcircuit.Quantum(0)),
		qcircuit.PauliX(qcircuit.Quantum(1)),
		qcircuit.Toffoli(qcircuit.Quantum(0), qcircuit.Quantum(1), qcircuit.Quantum(3)),
		qcircuit.CNOT(qcircuit.Quantum(0), qcircuit.Quantum(1)),
	)
*/
package qcircuit
