package main

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/tiff"

	"github.com/gogpu/noise"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want format
		err  bool
	}{
		{"out.png", formatPNG, false},
		{"OUT.PNG", formatPNG, false},
		{"a/b/out.tif", formatTIFF, false},
		{"out.tiff", formatTIFF, false},
		{"out.csv", formatCSV, false},
		{"out.jpg", "", true},
		{"out", "", true},
	}
	for _, tt := range tests {
		got, err := formatFor(tt.path)
		if (err != nil) != tt.err {
			t.Errorf("formatFor(%q) err = %v, want error %v", tt.path, err, tt.err)
			continue
		}
		if tt.err && !errors.Is(err, errUnknownFormat) {
			t.Errorf("formatFor(%q) err = %v, want errUnknownFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("formatFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := summarize([]float32{-1, 0, 0.5, 0.5})
	want := summary{Min: -1, Max: 0.5, Mean: 0, StdDev: math.Sqrt(1.5 / 3)}
	if diff := cmp.Diff(want, s, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	if got := summarize(nil); got != (summary{}) {
		t.Errorf("summarize(nil) = %+v, want zero", got)
	}
}

func TestWritePNG(t *testing.T) {
	g := noise.NewGrid(noise.Range{Count: 3, Step: 1}, noise.Range{Count: 2, Step: 1})
	values := []float32{-1, 0, 1, -2, 2, 0.5}

	var buf bytes.Buffer
	if err := writePNG(&buf, g, values); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 3x2", b)
	}
	want := []uint8{0, 128, 255, 0, 255, 191}
	for i, w := range want {
		r, _, _, _ := img.At(i%3, i/3).RGBA()
		if got := uint8(r >> 8); got != w {
			t.Errorf("pixel %d = %d, want %d", i, got, w)
		}
	}
}

func TestWriteTIFF(t *testing.T) {
	g := noise.NewGrid(noise.Range{Count: 2, Step: 1}, noise.Range{Count: 2, Step: 1}, noise.Range{Count: 3, Step: 1})
	values := make([]float32, g.Len())
	for i := range values {
		values[i] = float32(i%4)/1.5 - 1
	}

	var buf bytes.Buffer
	if err := writeTIFF(&buf, g, values); err != nil {
		t.Fatalf("writeTIFF: %v", err)
	}
	img, err := tiff.Decode(&buf)
	if err != nil {
		t.Fatalf("tiff.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2 (first slice)", b)
	}
	for i := 0; i < 4; i++ {
		r, _, _, _ := img.At(i%2, i/2).RGBA()
		want := uint32(math.Round(unit(values[i]) * math.MaxUint16))
		if r != want {
			t.Errorf("pixel %d = %d, want %d", i, r, want)
		}
	}
}

func TestWriteImageNeedsData(t *testing.T) {
	g := noise.NewGrid(noise.Range{Count: 0}, noise.Range{Count: 4})
	if err := writePNG(&bytes.Buffer{}, g, nil); err == nil {
		t.Error("writePNG on an empty grid succeeded")
	}
}

func TestWriteCSV(t *testing.T) {
	g := noise.NewIntGrid(noise.RangeInt{Count: 2, Offset: -1, Step: 2}, noise.RangeInt{Count: 2, Offset: 5, Step: 1})
	values := []float32{0.25, -0.5, 1, 0}

	var buf bytes.Buffer
	if err := writeCSV(&buf, g, values); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	var got []*sampleRecord
	if err := gocsv.Unmarshal(&buf, &got); err != nil {
		t.Fatalf("gocsv.Unmarshal: %v", err)
	}
	want := []*sampleRecord{
		{Index: 0, X: -1, Y: 5, Value: 0.25},
		{Index: 1, X: 1, Y: 5, Value: -0.5},
		{Index: 2, X: -1, Y: 6, Value: 1},
		{Index: 3, X: 1, Y: 6, Value: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "preset.yaml")
	err := os.WriteFile(cfg, []byte(`
noise:
  noise_type: PerlinFractal
grid:
  axes:
    - {count: 8, step: 1}
    - {count: 4, step: 1}
backend:
  workers: 2
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"out.png", "out.tiff", "out.csv"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name)
			if err := run(options{ConfigPath: cfg, OutPath: out, Workers: -1, CPUOnly: true}); err != nil {
				t.Fatalf("run: %v", err)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("output missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("output is empty")
			}
		})
	}
}

func TestRunDumpPreset(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "effective.yaml")
	if err := run(options{OutPath: "unused.png", Workers: 3, DumpPreset: dump}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(dump)
	if err != nil {
		t.Fatalf("dump missing: %v", err)
	}
	if !bytes.Contains(data, []byte("workers: 3")) {
		t.Errorf("dumped preset does not carry the workers override:\n%s", data)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		o    options
	}{
		{"missing preset", options{ConfigPath: filepath.Join(dir, "missing.yaml"), OutPath: filepath.Join(dir, "a.png")}},
		{"bad extension", options{OutPath: filepath.Join(dir, "a.bmp")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.o); err == nil {
				t.Error("expected error")
			}
		})
	}
}
