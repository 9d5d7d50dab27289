package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"

	"github.com/theapemachine/qcircuit"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "qcircuit",
		Usage: "run per-qubit quantum circuits described in YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "config file (yaml, toml or json)",
				EnvVars: []string{"QCIRCUIT_CONFIG"},
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "measurement seed, 0 for a random run",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "print engine counters after the command",
			},
			&cli.BoolFlag{
				Name:  "prom",
				Usage: "print engine counters in Prometheus text format",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "execute a circuit once and print the final register",
				ArgsUsage: "<circuit.yaml>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "trace", Usage: "print every step"},
				},
				Action: runCommand,
			},
			{
				Name:      "sample",
				Usage:     "execute a circuit many times and histogram the classical register",
				ArgsUsage: "<circuit.yaml>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "shots", Usage: "number of runs"},
					&cli.IntFlag{Name: "workers", Usage: "parallel workers"},
				},
				Action: sampleCommand,
			},
			{
				Name:   "gates",
				Usage:  "list the standard gate matrices",
				Action: gatesCommand,
			},
		},
	}
}

func loadConfig(ctx *cli.Context) (*qcircuit.Config, error) {
	cfg, err := qcircuit.LoadConfig(ctx.String("config"))
	if err != nil {
		return nil, err
	}

	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Uint64("seed")
	}
	if ctx.IsSet("log-level") {
		cfg.LogLevel = ctx.String("log-level")
	}
	if ctx.IsSet("shots") {
		cfg.Shots = ctx.Int("shots")
	}
	if ctx.IsSet("workers") {
		cfg.Workers = ctx.Int("workers")
	}

	return cfg, cfg.Validate()
}

func loadCircuit(ctx *cli.Context) (*qcircuit.Circuit, error) {
	if ctx.NArg() != 1 {
		return nil, fmt.Errorf("%s needs exactly one circuit file", ctx.Command.Name)
	}
	return qcircuit.LoadCircuitFile(ctx.Args().First())
}

func runCommand(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	circuit, err := loadCircuit(ctx)
	if err != nil {
		return err
	}

	engine := qcircuit.NewEngineFromConfig(cfg)
	run, err := qcircuit.NewRunner(engine).Run(circuit)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	color.New(color.FgCyan, color.Bold).Fprintf(w, "%s  run %s  (%v)\n", run.Circuit, run.ID, run.Duration)

	if ctx.Bool("trace") {
		writeTrace(w, run.Trace)
	}
	writeState(w, run.State)

	return writeMetrics(ctx, engine.Metrics())
}

func sampleCommand(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	circuit, err := loadCircuit(ctx)
	if err != nil {
		return err
	}

	sampler := qcircuit.NewSampler(cfg)
	result, err := sampler.Sample(ctx.Context, circuit)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	color.New(color.FgCyan, color.Bold).Fprintf(
		w, "%s  sample %s  %d shots (%v)\n", result.Circuit, result.ID, result.Shots, result.Duration,
	)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Classical", "Count", "Frequency"})
	for _, k := range result.Counts.Keys() {
		n := result.Counts[k]
		table.Append([]string{
			k,
			strconv.Itoa(n),
			strconv.FormatFloat(float64(n)/float64(result.Shots), 'f', 4, 64),
		})
	}
	table.Render()

	return writeMetrics(ctx, sampler.Metrics())
}

func gatesCommand(ctx *cli.Context) error {
	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Gate", "Row 0", "Row 1"})
	for _, name := range qcircuit.MatrixNames() {
		m, _ := qcircuit.LookupMatrix(name)
		table.Append([]string{
			name,
			fmt.Sprintf("%.4g  %.4g", m[0][0], m[0][1]),
			fmt.Sprintf("%.4g  %.4g", m[1][0], m[1][1]),
		})
	}
	table.Render()
	return nil
}

func writeTrace(w io.Writer, trace []qcircuit.StepRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Step", "Op", "Mode", "Fired", "Measured"})
	for _, rec := range trace {
		measured := ""
		for _, m := range rec.Measured {
			measured += fmt.Sprintf("q%d=%d ", m.Qubit, m.Bit)
		}
		table.Append([]string{
			strconv.Itoa(rec.Step),
			rec.Op,
			rec.Mode.String(),
			strconv.FormatBool(rec.Fired),
			measured,
		})
	}
	table.Render()
}

func writeState(w io.Writer, s *qcircuit.State) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Bit", "Value", "P(1)"})
	for i := 0; i < s.NumQubits(); i++ {
		q, _ := s.Qubit(i)
		table.Append([]string{
			fmt.Sprintf("q%d", i),
			q.String(),
			strconv.FormatFloat(q.P1(), 'f', 4, 64),
		})
	}
	for i := 0; i < s.NumClassical(); i++ {
		b, _ := s.Classical(i)
		table.Append([]string{fmt.Sprintf("c%d", i), strconv.Itoa(int(b)), ""})
	}
	table.Render()
}

func writeMetrics(ctx *cli.Context, m *qcircuit.Metrics) error {
	w := ctx.App.Writer

	if ctx.Bool("metrics") {
		snapshot := m.ExportMetrics()
		keys := make([]string, 0, len(snapshot))
		for k := range snapshot {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Metric", "Value"})
		for _, k := range keys {
			table.Append([]string{k, fmt.Sprint(snapshot[k])})
		}
		table.Render()
	}

	if ctx.Bool("prom") {
		reg := prometheus.NewRegistry()
		if err := reg.Register(m); err != nil {
			return err
		}
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
				return err
			}
		}
	}

	return nil
}
