package qcircuit

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

/*
Metrics counts what engines did. One Metrics value may be shared by several
engines, for example every worker of a Sampler, so all access is guarded.
*/
type Metrics struct {
	mu sync.RWMutex

	GateCount    int64
	FiredCount   int64
	FailureCount int64
	Collapses    int64
	ModeCounts   map[Mode]int64
	ShotCount    int64

	TotalGateTime      time.Duration
	AverageGateLatency time.Duration
	P95GateLatency     time.Duration

	latencyWindow []time.Duration
	windowSize    int
}

func NewMetrics() *Metrics {
	return &Metrics{
		ModeCounts:    make(map[Mode]int64),
		latencyWindow: make([]time.Duration, 0, 1000),
		windowSize:    1000,
	}
}

func (m *Metrics) recordGate(out Outcome, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GateCount++
	m.ModeCounts[out.Mode]++
	m.Collapses += int64(len(out.Measured))
	if out.Fired {
		m.FiredCount++
	}

	m.TotalGateTime += duration
	m.AverageGateLatency = m.TotalGateTime / time.Duration(m.GateCount)
	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.latencyWindow = append(m.latencyWindow, duration)
	if len(m.latencyWindow) > m.windowSize {
		m.latencyWindow = m.latencyWindow[1:]
	}

	sorted := make([]time.Duration, len(m.latencyWindow))
	copy(sorted, m.latencyWindow)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	p95Index := int(float64(len(sorted)) * 0.95)
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}
	m.P95GateLatency = sorted[p95Index]
}

func (m *Metrics) recordCollapses(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Collapses += int64(n)
}

func (m *Metrics) recordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailureCount++
}

func (m *Metrics) recordShot() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShotCount++
}

// Mode returns how many gates ran in mode.
func (m *Metrics) Mode(mode Mode) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ModeCounts[mode]
}

// ExportMetrics returns a flat snapshot suitable for printing.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := map[string]interface{}{
		"gates":          m.GateCount,
		"fired":          m.FiredCount,
		"failures":       m.FailureCount,
		"collapses":      m.Collapses,
		"shots":          m.ShotCount,
		"avg_latency_us": m.AverageGateLatency.Microseconds(),
		"p95_latency_us": m.P95GateLatency.Microseconds(),
	}
	for _, mode := range Modes() {
		out["mode_"+mode.String()] = m.ModeCounts[mode]
	}
	return out
}

var (
	gatesDesc = prometheus.NewDesc(
		"qcircuit_gates_total",
		"Gates executed, by dispatch mode.",
		[]string{"mode"}, nil,
	)
	firedDesc = prometheus.NewDesc(
		"qcircuit_gates_fired_total",
		"Gates whose matrix was applied.",
		nil, nil,
	)
	failuresDesc = prometheus.NewDesc(
		"qcircuit_failures_total",
		"Rejected gates and measurements.",
		nil, nil,
	)
	collapsesDesc = prometheus.NewDesc(
		"qcircuit_collapses_total",
		"Qubit measurements performed.",
		nil, nil,
	)
	shotsDesc = prometheus.NewDesc(
		"qcircuit_shots_total",
		"Completed sampler shots.",
		nil, nil,
	)
)

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- gatesDesc
	ch <- firedDesc
	ch <- failuresDesc
	ch <- collapsesDesc
	ch <- shotsDesc
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, mode := range Modes() {
		ch <- prometheus.MustNewConstMetric(
			gatesDesc, prometheus.CounterValue, float64(m.ModeCounts[mode]), mode.String(),
		)
	}
	ch <- prometheus.MustNewConstMetric(firedDesc, prometheus.CounterValue, float64(m.FiredCount))
	ch <- prometheus.MustNewConstMetric(failuresDesc, prometheus.CounterValue, float64(m.FailureCount))
	ch <- prometheus.MustNewConstMetric(collapsesDesc, prometheus.CounterValue, float64(m.Collapses))
	ch <- prometheus.MustNewConstMetric(shotsDesc, prometheus.CounterValue, float64(m.ShotCount))
}
