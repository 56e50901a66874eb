// Command noisegen evaluates a noise preset over its grid and writes the
// values as an image or a CSV table.
//
//	noisegen -config terrain.yaml -out terrain.tiff
//
// The output format follows the file extension: .png (8-bit gray), .tif or
// .tiff (16-bit gray) and .csv (one row per point). Images show the first
// x-y slice of the grid.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/noise"
)

func main() {
	configPath := flag.String("config", "", "Path to preset YAML (empty = use defaults)")
	out := flag.String("out", "noise.png", "Output file (.png, .tif, .tiff or .csv)")
	workers := flag.Int("workers", -1, "CPU workers (-1 = preset value, 0 = GOMAXPROCS)")
	cpuOnly := flag.Bool("cpu", false, "Never use the GPU accelerator")
	dumpPreset := flag.String("dump-preset", "", "Write the effective preset to this path and exit")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	noise.SetLogger(logger)

	err := run(options{
		ConfigPath: *configPath,
		OutPath:    *out,
		Workers:    *workers,
		CPUOnly:    *cpuOnly,
		DumpPreset: *dumpPreset,
	})
	if err != nil {
		slog.Error("noisegen failed", "error", err)
		os.Exit(1)
	}
}
