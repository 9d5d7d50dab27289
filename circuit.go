package qcircuit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// OpKind distinguishes the instructions a Circuit can hold.
type OpKind uint8

const (
	OpGate OpKind = iota
	OpMeasure
	OpRead
)

/*
Op is one circuit instruction: apply a gate, measure a qubit, or copy a
collapsed qubit into a classical bit.
*/
type Op struct {
	kind      OpKind
	gate      Gate
	qubit     int
	classical int
}

func GateOp(g Gate) Op { return Op{kind: OpGate, gate: g} }

func MeasureOp(qubit int) Op { return Op{kind: OpMeasure, qubit: qubit} }

func ReadOp(qubit, classical int) Op {
	return Op{kind: OpRead, qubit: qubit, classical: classical}
}

func (op Op) Kind() OpKind { return op.kind }
func (op Op) Gate() Gate   { return op.gate }

func (op Op) String() string {
	switch op.kind {
	case OpMeasure:
		return fmt.Sprintf("measure q%d", op.qubit)
	case OpRead:
		return fmt.Sprintf("read q%d -> c%d", op.qubit, op.classical)
	default:
		return op.gate.String()
	}
}

/*
Circuit is an ordered program run against a register of a fixed size. It is
executed as a strict left-to-right fold: every step sees the state, including
any collapses, left behind by the step before it.
*/
type Circuit struct {
	Name         string
	NumQubits    int
	NumClassical int
	Ops          []Op
}

func NewCircuit(name string, numQubits, numClassical int) *Circuit {
	return &Circuit{
		Name:         name,
		NumQubits:    numQubits,
		NumClassical: numClassical,
	}
}

// Apply appends gates.
func (c *Circuit) Apply(gates ...Gate) *Circuit {
	for _, g := range gates {
		c.Ops = append(c.Ops, GateOp(g))
	}
	return c
}

func (c *Circuit) Measure(qubit int) *Circuit {
	c.Ops = append(c.Ops, MeasureOp(qubit))
	return c
}

func (c *Circuit) Read(qubit, classical int) *Circuit {
	c.Ops = append(c.Ops, ReadOp(qubit, classical))
	return c
}

// MeasureInto measures qubit and stores the result in classical.
func (c *Circuit) MeasureInto(qubit, classical int) *Circuit {
	return c.Measure(qubit).Read(qubit, classical)
}

// StepRecord is the trace entry for one executed op.
type StepRecord struct {
	Step     int
	Op       string
	Mode     Mode
	Fired    bool
	Measured []Measurement
}

// Run is the result of executing a circuit once.
type Run struct {
	ID       uuid.UUID
	Circuit  string
	State    *State
	Trace    []StepRecord
	Duration time.Duration
}

// Runner folds circuits over fresh registers with one engine.
type Runner struct {
	engine *Engine
}

func NewRunner(engine *Engine) *Runner {
	return &Runner{engine: engine}
}

func (r *Runner) Engine() *Engine { return r.engine }

// Run executes c against a freshly initialised register.
func (r *Runner) Run(c *Circuit) (*Run, error) {
	return r.RunFrom(c, NewState(c.NumQubits, c.NumClassical))
}

/*
RunFrom executes c starting from s, which the run takes ownership of. The
register sizes of s are used as they are; the circuit's declared sizes are
ignored.
*/
func (r *Runner) RunFrom(c *Circuit, s *State) (*Run, error) {
	run := &Run{
		ID:      uuid.New(),
		Circuit: c.Name,
		Trace:   make([]StepRecord, 0, len(c.Ops)),
	}
	start := time.Now()

	r.engine.logger.Debug("run started", "run", run.ID, "circuit", c.Name, "ops", len(c.Ops))

	for i, op := range c.Ops {
		rec, err := r.step(op, s)
		if err != nil {
			errnie.Info("Run - circuit %v failed at step %v: %v", c.Name, i, err)
			return nil, &StepError{Step: i, Op: op.String(), Err: err}
		}
		rec.Step = i
		run.Trace = append(run.Trace, rec)
	}

	run.State = s
	run.Duration = time.Since(start)

	r.engine.logger.Debug("run finished", "run", run.ID, "duration", run.Duration, "bits", s.Bits())
	return run, nil
}

func (r *Runner) step(op Op, s *State) (StepRecord, error) {
	rec := StepRecord{Op: op.String()}

	switch op.kind {
	case OpMeasure:
		b, err := r.engine.Measure(s, op.qubit)
		if err != nil {
			return rec, err
		}
		rec.Measured = []Measurement{{Qubit: op.qubit, Bit: b}}
	case OpRead:
		if err := s.ReadClassical(op.qubit, op.classical); err != nil {
			r.engine.metrics.recordFailure()
			return rec, err
		}
	default:
		out, err := r.engine.Step(op.gate, s)
		if err != nil {
			return rec, err
		}
		rec.Mode = out.Mode
		rec.Fired = out.Fired
		rec.Measured = out.Measured
	}

	return rec, nil
}
