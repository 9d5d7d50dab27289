package qcircuit

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
)

// Mode is the execution procedure selected from a gate's operand pattern.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeToffoli
	ModeClassicalToffoli
	ModeClassicalControl
	ModeQuantumControl
	ModeUnconditional
)

func (m Mode) String() string {
	switch m {
	case ModeToffoli:
		return "toffoli"
	case ModeClassicalToffoli:
		return "classical-toffoli"
	case ModeClassicalControl:
		return "classical-control"
	case ModeQuantumControl:
		return "quantum-control"
	case ModeUnconditional:
		return "unconditional"
	default:
		return "none"
	}
}

// Modes lists every valid mode in dispatch priority order.
func Modes() []Mode {
	return []Mode{
		ModeToffoli,
		ModeClassicalToffoli,
		ModeClassicalControl,
		ModeQuantumControl,
		ModeUnconditional,
	}
}

// Measurement records one collapse performed while running a gate.
type Measurement struct {
	Qubit int
	Bit   uint8
}

// Outcome describes what a single gate did to the state.
type Outcome struct {
	Gate     string
	Mode     Mode
	Fired    bool
	Measured []Measurement
}

/*
Engine applies gates to a State. It owns the random source used for every
measurement it performs, which makes a run reproducible when the source is
seeded or scripted.

An Engine is not safe for concurrent use, because its Source is not. Run one
engine per goroutine.
*/
type Engine struct {
	source  Source
	metrics *Metrics
	logger  *log.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

func WithSource(src Source) EngineOption {
	return func(e *Engine) {
		e.source = src
	}
}

func WithMetrics(m *Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		source:  RuntimeSource{},
		metrics: NewMetrics(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = NewLogger(os.Stderr, log.InfoLevel)
	}

	return e
}

// NewEngineFromConfig builds an engine seeded and logging as cfg says.
func NewEngineFromConfig(cfg *Config, opts ...EngineOption) *Engine {
	errnie.Info("NewEngineFromConfig - seed %v, log level %v", cfg.Seed, cfg.LogLevel)

	base := []EngineOption{
		WithSource(cfg.Source()),
		WithLogger(NewLogger(os.Stderr, cfg.Level())),
	}
	return NewEngine(append(base, opts...)...)
}

func (e *Engine) Metrics() *Metrics { return e.metrics }

/*
Execute applies g to s and returns the updated state. The state is updated in
place; the returned pointer is s itself. On error nothing has been changed and
the returned state is nil.
*/
func (e *Engine) Execute(g Gate, s *State) (*State, error) {
	if _, err := e.Step(g, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Step is Execute, also reporting the selected mode and any collapses.
func (e *Engine) Step(g Gate, s *State) (Outcome, error) {
	if s == nil {
		return Outcome{}, errors.New("qcircuit: nil state")
	}

	start := time.Now()

	p, err := plan(g, s)
	if err != nil {
		e.metrics.recordFailure()
		e.logger.Debug("gate rejected", "gate", g, "err", err)
		return Outcome{Gate: g.name}, err
	}

	out := e.run(p, g, s)
	e.metrics.recordGate(out, time.Since(start))
	e.logger.Debug(
		"gate executed",
		"gate", g,
		"mode", out.Mode,
		"fired", out.Fired,
		"measured", out.Measured,
	)

	return out, nil
}

/*
Fold executes gates in order against s, stopping at the first failure. The
returned error is a *StepError carrying the index of the failing gate. Gates
before the failing one have already been applied, and s is returned alongside
the error so the partial state can be inspected.
*/
func (e *Engine) Fold(s *State, gates ...Gate) (*State, error) {
	for i, g := range gates {
		if _, err := e.Step(g, s); err != nil {
			return s, &StepError{Step: i, Op: g.String(), Err: err}
		}
	}
	return s, nil
}

// Measure collapses qubit index of s using the engine's source.
func (e *Engine) Measure(s *State, index int) (uint8, error) {
	b, err := s.Measure(index, e.source)
	if err != nil {
		e.metrics.recordFailure()
		return 0, err
	}
	e.metrics.recordCollapses(1)
	e.logger.Debug("measured", "qubit", index, "bit", b)
	return b, nil
}

func (e *Engine) run(p execPlan, g Gate, s *State) Outcome {
	out := Outcome{Gate: g.name, Mode: p.mode}

	switch p.mode {
	case ModeToffoli, ModeClassicalToffoli:
		// Both controls are read, and therefore collapsed, whatever the outcome.
		b1 := s.collapse(p.toffoli[0], e.source)
		b2 := s.collapse(p.toffoli[1], e.source)
		out.Measured = []Measurement{
			{Qubit: p.toffoli[0], Bit: b1},
			{Qubit: p.toffoli[1], Bit: b2},
		}
		out.Fired = b1 == 1 && b2 == 1
		if p.mode == ModeClassicalToffoli {
			out.Fired = out.Fired && s.cbits[p.control] == 1
		}
	case ModeClassicalControl:
		out.Fired = s.cbits[p.control] == 1
	case ModeQuantumControl:
		b := s.collapse(p.control, e.source)
		out.Measured = []Measurement{{Qubit: p.control, Bit: b}}
		out.Fired = b == 1
	case ModeUnconditional:
		out.Fired = true
	}

	if out.Fired {
		s.qubits[p.target] = s.qubits[p.target].Apply(g.matrix)
	}

	return out
}

type execPlan struct {
	mode    Mode
	target  int
	control int
	toffoli [2]int
}

/*
plan validates every operand of g against s and picks the execution mode. It
never touches s, so a rejected gate leaves the state exactly as it was.
*/
func plan(g Gate, s *State) (execPlan, error) {
	var p execPlan

	switch g.target.kind {
	case Unset:
		return p, fmt.Errorf("%s: %w", g.name, ErrMissingTarget)
	case ClassicalKind:
		return p, fmt.Errorf("%s: %w", g.name, ErrInvalidTargetKind)
	}
	if err := checkIndex(QuantumKind, g.target.index, s.NumQubits()); err != nil {
		return p, fmt.Errorf("%s: %w", g.name, err)
	}
	p.target = g.target.index

	t1, t2, c := g.toffoli1, g.toffoli2, g.control

	switch {
	case t1.IsQuantum() && t2.IsQuantum():
		for _, t := range []Address{t1, t2} {
			if err := checkIndex(QuantumKind, t.index, s.NumQubits()); err != nil {
				return p, fmt.Errorf("%s: %w", g.name, err)
			}
		}
		if t1.index == t2.index {
			return p, addressingError(g, "toffoli controls must be distinct qubits")
		}
		p.toffoli = [2]int{t1.index, t2.index}

		switch c.kind {
		case Unset:
			p.mode = ModeToffoli
		case ClassicalKind:
			if err := checkIndex(ClassicalKind, c.index, s.NumClassical()); err != nil {
				return p, fmt.Errorf("%s: %w", g.name, err)
			}
			p.control = c.index
			p.mode = ModeClassicalToffoli
		default:
			return p, addressingError(g, "a toffoli pair can only be gated by a classical bit")
		}
	case t1.IsClassical() || t2.IsClassical():
		return p, addressingError(g, "toffoli controls must be qubits")
	case !t1.IsSet() && !t2.IsSet():
		switch c.kind {
		case ClassicalKind:
			if err := checkIndex(ClassicalKind, c.index, s.NumClassical()); err != nil {
				return p, fmt.Errorf("%s: %w", g.name, err)
			}
			p.control = c.index
			p.mode = ModeClassicalControl
		case QuantumKind:
			if err := checkIndex(QuantumKind, c.index, s.NumQubits()); err != nil {
				return p, fmt.Errorf("%s: %w", g.name, err)
			}
			p.control = c.index
			p.mode = ModeQuantumControl
		default:
			p.mode = ModeUnconditional
		}
	default:
		return p, addressingError(g, "toffoli controls must be set as a pair")
	}

	return p, nil
}

func addressingError(g Gate, reason string) error {
	return &AddressingError{Gate: g.String(), Reason: reason}
}
