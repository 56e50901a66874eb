// Package primitive implements the base coherent-noise functions: value,
// gradient (Perlin), simplex and white noise, plus the lattice hash and the
// interpolation curves they share.
//
// Every function here is a pure function of its seed and coordinates. The
// same inputs always produce the same float32, regardless of which goroutine
// evaluates them or in which order, which is what lets the callers spread a
// grid across workers freely.
//
// Native output ranges:
//
//	Value     [-1, 1)
//	Perlin    about [-1, 1]
//	Simplex   about [-1, 1] (OpenSimplex)
//	White     [-1, 1)
package primitive
