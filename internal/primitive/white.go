package primitive

// White2 hashes the bit patterns of a 2D coordinate. Nearby inputs give
// unrelated outputs.
func White2(seed int32, x, y float32) float32 {
	return Unit(Hash2(seed, foldBits(x), foldBits(y)))
}

// White3 hashes the bit patterns of a 3D coordinate.
func White3(seed int32, x, y, z float32) float32 {
	return Unit(Hash3(seed, foldBits(x), foldBits(y), foldBits(z)))
}

// White4 hashes the bit patterns of a 4D coordinate.
func White4(seed int32, x, y, z, w float32) float32 {
	return Unit(Hash4(seed, foldBits(x), foldBits(y), foldBits(z), foldBits(w)))
}

// WhiteInt2 hashes a raw 2D integer lattice coordinate.
func WhiteInt2(seed, x, y int32) float32 { return Unit(Hash2(seed, x, y)) }

// WhiteInt3 hashes a raw 3D integer lattice coordinate.
func WhiteInt3(seed, x, y, z int32) float32 { return Unit(Hash3(seed, x, y, z)) }

// WhiteInt4 hashes a raw 4D integer lattice coordinate.
func WhiteInt4(seed, x, y, z, w int32) float32 { return Unit(Hash4(seed, x, y, z, w)) }
