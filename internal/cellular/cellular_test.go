package cellular

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/noise/internal/primitive"
)

func points() []primitive.Vec {
	var ps []primitive.Vec
	for i := 0; i < 300; i++ {
		ps = append(ps, primitive.Vec{float32(i)*0.173 - 20, float32(i)*0.091 + 5, float32(i) * 0.047})
	}
	return ps
}

func mustNew(t *testing.T, dims int, m Metric, r Return, l Lookup) primitive.Sampler {
	t.Helper()
	s, err := New(dims, m, r, l)
	if err != nil {
		t.Fatalf("New(%d, %d, %d): %v", dims, m, r, err)
	}
	return s
}

func TestDistanceCombinations(t *testing.T) {
	for _, dims := range []int{2, 3} {
		for _, m := range []Metric{Euclidean, Manhattan, Natural} {
			d0 := mustNew(t, dims, m, Distance, nil)
			d1 := mustNew(t, dims, m, Distance2, nil)
			add := mustNew(t, dims, m, Distance2Add, nil)
			sub := mustNew(t, dims, m, Distance2Sub, nil)
			mul := mustNew(t, dims, m, Distance2Mul, nil)
			div := mustNew(t, dims, m, Distance2Div, nil)
			for _, p := range points() {
				a, b := d0(7, p), d1(7, p)
				if a > b {
					t.Fatalf("%dD metric %d: Distance %v > Distance2 %v", dims, m, a, b)
				}
				if got := add(7, p); got != a+b {
					t.Fatalf("Distance2Add = %v, want %v", got, a+b)
				}
				if got := sub(7, p); got != b-a {
					t.Fatalf("Distance2Sub = %v, want %v", got, b-a)
				}
				if got := mul(7, p); got != a*b {
					t.Fatalf("Distance2Mul = %v, want %v", got, a*b)
				}
				if got := div(7, p); got != a/b {
					t.Fatalf("Distance2Div = %v, want %v", got, a/b)
				}
			}
		}
	}
}

func TestEuclideanAtFeaturePointIsZero(t *testing.T) {
	h := primitive.Hash2(3, 4, -2)
	fp := primitive.Vec{feature(h, 0, 4), feature(h, 1, -2)}
	d := mustNew(t, 2, Euclidean, Distance, nil)
	if got := d(3, fp); got != 0 {
		t.Errorf("distance at feature point = %v, want 0", got)
	}
	cv := mustNew(t, 2, Euclidean, CellValue, nil)
	if got, want := cv(3, fp), primitive.Unit(h); got != want {
		t.Errorf("CellValue at feature point = %v, want %v", got, want)
	}
}

func TestMetricOrdering(t *testing.T) {
	// Manhattan never undercuts Euclidean for the same offset.
	for _, v := range [][3]float32{{0.3, 0.4, 0}, {-1, 2, 0.5}, {0, 0, 1}} {
		e := euclidean(v[0], v[1], v[2])
		m := manhattan(v[0], v[1], v[2])
		if m < e {
			t.Errorf("manhattan %v < euclidean %v for %v", m, e, v)
		}
	}
	if got := euclidean(3, 4, 0); got != 5 {
		t.Errorf("euclidean(3,4,0) = %v, want 5", got)
	}
}

func TestNoiseLookupUsesNearestPoint(t *testing.T) {
	var seen []primitive.Vec
	lookup := func(p primitive.Vec) float32 {
		seen = append(seen, p)
		return p[0] + p[1]
	}
	s := mustNew(t, 2, Euclidean, NoiseLookup, lookup)
	p := primitive.Vec{10.2, -3.7}
	got := s(1, p)
	if len(seen) != 1 {
		t.Fatalf("lookup called %d times, want 1", len(seen))
	}
	if got != seen[0][0]+seen[0][1] {
		t.Errorf("lookup result %v not returned", got)
	}
	if dx := math.Abs(float64(seen[0][0] - p[0])); dx > 2 {
		t.Errorf("lookup point %v too far from sample %v", seen[0], p)
	}
}

func TestMissingLookup(t *testing.T) {
	_, err := New(2, Euclidean, NoiseLookup, nil)
	if !errors.Is(err, ErrMissingLookup) {
		t.Errorf("err = %v, want ErrMissingLookup", err)
	}
}

func TestUnsupportedDims(t *testing.T) {
	_, err := New(4, Euclidean, Distance, nil)
	if !errors.Is(err, primitive.ErrDims) {
		t.Errorf("err = %v, want ErrDims", err)
	}
}

func TestUnknownEnums(t *testing.T) {
	if _, err := New(2, Metric(9), Distance, nil); err == nil {
		t.Error("expected error for unknown metric")
	}
	if _, err := New(2, Euclidean, Return(99), nil); err == nil {
		t.Error("expected error for unknown return type")
	}
}
