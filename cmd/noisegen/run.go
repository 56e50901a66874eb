package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/preset"
)

// options are the command-line settings.
type options struct {
	ConfigPath string
	OutPath    string
	Workers    int // Negative keeps the preset value.
	CPUOnly    bool
	DumpPreset string
}

func run(o options) error {
	p, err := preset.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if o.Workers >= 0 {
		p.Backend.Workers = o.Workers
	}
	p.Backend.CPUOnly = p.Backend.CPUOnly || o.CPUOnly

	if o.DumpPreset != "" {
		if err := p.WriteYAML(o.DumpPreset); err != nil {
			return err
		}
		slog.Info("preset written", "path", o.DumpPreset)
		return nil
	}

	format, err := formatFor(o.OutPath)
	if err != nil {
		return err
	}

	backend := noise.NewParallelBackend(p.Backend.Workers)
	defer backend.Close()
	opts := []noise.Option{noise.WithBackend(backend)}
	if p.Backend.CPUOnly {
		opts = append(opts, noise.WithCPUOnly())
	}
	n := p.Build(opts...)
	g := p.NoiseGrid()

	accel := "none"
	if a := noise.Accelerator(); a != nil && !p.Backend.CPUOnly {
		accel = a.Name()
	}
	slog.Info("evaluating",
		"grid", g,
		"op", opName(p),
		"noise_type", n.NoiseType(),
		"workers", backend.Workers(),
		"accelerator", accel,
	)

	start := time.Now()
	values, err := p.Evaluate(n)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	elapsed := time.Since(start)

	s := summarize(values)
	slog.Info("evaluated",
		"points", len(values),
		"elapsed", elapsed,
		"min", s.Min,
		"max", s.Max,
		"mean", s.Mean,
		"stddev", s.StdDev,
	)

	if err := writeFile(o.OutPath, format, g, values); err != nil {
		return err
	}
	slog.Info("output written", "path", o.OutPath, "format", format)
	return nil
}

func opName(p *preset.Preset) string {
	if p.Grid.Op == "" {
		return "Noise"
	}
	return p.Grid.Op
}
