package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/image/tiff"

	"github.com/gogpu/noise"
)

// format is an output file format.
type format string

const (
	formatPNG  format = "png"
	formatTIFF format = "tiff"
	formatCSV  format = "csv"
)

var errUnknownFormat = errors.New("unknown output format")

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return formatPNG, nil
	case ".tif", ".tiff":
		return formatTIFF, nil
	case ".csv":
		return formatCSV, nil
	}
	return "", fmt.Errorf("%w: %q (want .png, .tif, .tiff or .csv)", errUnknownFormat, path)
}

func writeFile(path string, f format, g noise.Grid, values []float32) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	switch f {
	case formatPNG:
		return writePNG(file, g, values)
	case formatTIFF:
		return writeTIFF(file, g, values)
	case formatCSV:
		return writeCSV(file, g, values)
	}
	return fmt.Errorf("%w: %q", errUnknownFormat, f)
}

// sliceSize returns the size of the first x-y slice of g.
func sliceSize(g noise.Grid) (w, h int, err error) {
	if g.Dims() < 2 {
		return 0, 0, fmt.Errorf("image output needs at least 2 axes, have %d", g.Dims())
	}
	w, h = g.Count(0), g.Count(1)
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("image output needs a non-empty grid, have %s", g)
	}
	return w, h, nil
}

// unit maps a noise value from [-1, 1] onto [0, 1], clamping outliers.
func unit(v float32) float64 {
	u := (float64(v) + 1) * 0.5
	return math.Min(math.Max(u, 0), 1)
}

func writePNG(w io.Writer, g noise.Grid, values []float32) error {
	width, height, err := sliceSize(g)
	if err != nil {
		return err
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(unit(values[y*width+x]) * math.MaxUint8))})
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

func writeTIFF(w io.Writer, g noise.Grid, values []float32) error {
	width, height, err := sliceSize(g)
	if err != nil {
		return err
	}
	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(unit(values[y*width+x]) * math.MaxUint16))})
		}
	}
	if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("encoding TIFF: %w", err)
	}
	return nil
}

// sampleRecord is one CSV row. Unused axes are zero.
type sampleRecord struct {
	Index int     `csv:"index"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
	W     float64 `csv:"w"`
	Value float32 `csv:"value"`
}

func writeCSV(w io.Writer, g noise.Grid, values []float32) error {
	records := make([]*sampleRecord, len(values))
	for i, v := range values {
		r := &sampleRecord{Index: i, Value: v}
		if g.Integer() {
			p := g.IntPoint(i)
			r.X, r.Y, r.Z, r.W = float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])
		} else {
			p := g.Point(i)
			r.X, r.Y, r.Z, r.W = float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])
		}
		records[i] = r
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}
