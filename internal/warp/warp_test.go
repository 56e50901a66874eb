package warp

import (
	"testing"

	"github.com/gogpu/noise/internal/fractal"
	"github.com/gogpu/noise/internal/primitive"
)

var recipe = fractal.Params{Type: fractal.RigidMulti, Octaves: 3, Lacunarity: 2, Gain: 0.5, Bounding: fractal.Bounding(0.5, 3)}

func TestNoneIsNil(t *testing.T) {
	f, err := New(None, 2, primitive.CurveFor(primitive.Quintic), 1, recipe)
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Error("None warp should be nil")
	}
}

func TestSingleDisplacementBounded(t *testing.T) {
	const amp = 1 / AmpScale
	f, err := New(Single, 3, primitive.CurveFor(primitive.Hermite), amp, recipe)
	if err != nil {
		t.Fatal(err)
	}
	moved := 0
	for i := 0; i < 500; i++ {
		p := primitive.Vec{float32(i) * 0.21, float32(i) * 0.13, float32(i) * 0.07, 42}
		q := f(1337, p)
		for a := 0; a < 3; a++ {
			d := q[a] - p[a]
			if d < -amp*1.001 || d > amp*1.001 {
				t.Fatalf("axis %d displaced by %v, limit %v", a, d, amp)
			}
			if d != 0 {
				moved++
			}
		}
		if q[3] != p[3] {
			t.Fatalf("unused axis changed: %v -> %v", p[3], q[3])
		}
	}
	if moved == 0 {
		t.Error("warp never displaced any coordinate")
	}
}

func TestFractalDiffersFromSingle(t *testing.T) {
	curve := primitive.CurveFor(primitive.Quintic)
	single, _ := New(Single, 2, curve, 2, recipe)
	frac, err := New(Fractal, 2, curve, 2, recipe)
	if err != nil {
		t.Fatal(err)
	}
	p := primitive.Vec{3.3, 4.4}
	if single(5, p) == frac(5, p) {
		t.Error("fractal warp matched single warp")
	}
	if frac(5, p) != frac(5, p) {
		t.Error("fractal warp not deterministic")
	}
}

func TestAxisSeedDistinct(t *testing.T) {
	seen := map[int32]bool{}
	for a := 0; a < 4; a++ {
		s := AxisSeed(1337, a)
		if seen[s] {
			t.Fatalf("axis %d reused seed %d", a, s)
		}
		seen[s] = true
	}
}

func TestUnknownWarpType(t *testing.T) {
	if _, err := New(Type(9), 2, primitive.CurveFor(primitive.Linear), 1, recipe); err == nil {
		t.Error("expected error for unknown warp type")
	}
}

func TestFourAxes(t *testing.T) {
	curve := primitive.CurveFor(primitive.Linear)
	for _, typ := range []Type{Single, Fractal} {
		f, err := New(typ, 4, curve, 2, recipe)
		if err != nil {
			t.Fatalf("New(%d, 4 axes): %v", typ, err)
		}
		p := primitive.Vec{1.25, -3.5, 7.75, 0.4}
		q := f(99, p)
		if q[3] == p[3] {
			t.Errorf("type %d: w axis was not displaced", typ)
		}
	}
}
