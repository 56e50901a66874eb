package primitive

import "math"

// Per-axis lattice multipliers. The same constants are used by the GPU
// kernel, so changing them changes every generated value.
const (
	primeX uint32 = 0x9e3779b1
	primeY uint32 = 0x85ebca6b
	primeZ uint32 = 0xc2b2ae35
	primeW uint32 = 0x27d4eb2f
)

// Mix is a murmur3-style 32-bit finalizer with full avalanche.
func Mix(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return h
}

// Hash2 hashes a 2D lattice coordinate.
func Hash2(seed, x, y int32) uint32 {
	return Mix(uint32(seed) ^ uint32(x)*primeX ^ uint32(y)*primeY)
}

// Hash3 hashes a 3D lattice coordinate.
func Hash3(seed, x, y, z int32) uint32 {
	return Mix(uint32(seed) ^ uint32(x)*primeX ^ uint32(y)*primeY ^ uint32(z)*primeZ)
}

// Hash4 hashes a 4D lattice coordinate.
func Hash4(seed, x, y, z, w int32) uint32 {
	return Mix(uint32(seed) ^ uint32(x)*primeX ^ uint32(y)*primeY ^ uint32(z)*primeZ ^ uint32(w)*primeW)
}

// Unit maps a hash onto [-1, 1). Only the top 24 bits are used so the
// conversion to float32 is exact on every platform, GPUs included.
func Unit(h uint32) float32 {
	return float32(int32(h)>>8) * (1.0 / 8388608.0)
}

// Floor returns the lattice cell containing f.
func Floor(f float32) int32 {
	i := int32(f)
	if f < float32(i) {
		return i - 1
	}
	return i
}

// foldBits turns a float32 bit pattern into a lattice coordinate for
// white noise, folding the exponent into the low bits.
func foldBits(f float32) int32 {
	b := math.Float32bits(f)
	return int32(b ^ (b >> 16))
}
