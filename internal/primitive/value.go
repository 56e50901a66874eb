package primitive

// Value2 returns 2D value noise: random lattice values blended with curve.
func Value2(seed int32, x, y float32, curve Curve) float32 {
	x0, y0 := Floor(x), Floor(y)
	x1, y1 := x0+1, y0+1
	xs := curve(x - float32(x0))
	ys := curve(y - float32(y0))

	xf0 := lerp(Unit(Hash2(seed, x0, y0)), Unit(Hash2(seed, x1, y0)), xs)
	xf1 := lerp(Unit(Hash2(seed, x0, y1)), Unit(Hash2(seed, x1, y1)), xs)
	return lerp(xf0, xf1, ys)
}

// Value3 returns 3D value noise.
func Value3(seed int32, x, y, z float32, curve Curve) float32 {
	x0, y0, z0 := Floor(x), Floor(y), Floor(z)
	x1, y1, z1 := x0+1, y0+1, z0+1
	xs := curve(x - float32(x0))
	ys := curve(y - float32(y0))
	zs := curve(z - float32(z0))

	xf00 := lerp(Unit(Hash3(seed, x0, y0, z0)), Unit(Hash3(seed, x1, y0, z0)), xs)
	xf10 := lerp(Unit(Hash3(seed, x0, y1, z0)), Unit(Hash3(seed, x1, y1, z0)), xs)
	xf01 := lerp(Unit(Hash3(seed, x0, y0, z1)), Unit(Hash3(seed, x1, y0, z1)), xs)
	xf11 := lerp(Unit(Hash3(seed, x0, y1, z1)), Unit(Hash3(seed, x1, y1, z1)), xs)

	yf0 := lerp(xf00, xf10, ys)
	yf1 := lerp(xf01, xf11, ys)
	return lerp(yf0, yf1, zs)
}

// Value4 returns 4D value noise. No public family samples it directly; it
// drives the domain warp of 4D grids.
func Value4(seed int32, x, y, z, w float32, curve Curve) float32 {
	x0, y0, z0, w0 := Floor(x), Floor(y), Floor(z), Floor(w)
	xs := curve(x - float32(x0))
	ys := curve(y - float32(y0))
	zs := curve(z - float32(z0))
	ws := curve(w - float32(w0))

	cube := func(w int32) float32 {
		xf00 := lerp(Unit(Hash4(seed, x0, y0, z0, w)), Unit(Hash4(seed, x0+1, y0, z0, w)), xs)
		xf10 := lerp(Unit(Hash4(seed, x0, y0+1, z0, w)), Unit(Hash4(seed, x0+1, y0+1, z0, w)), xs)
		xf01 := lerp(Unit(Hash4(seed, x0, y0, z0+1, w)), Unit(Hash4(seed, x0+1, y0, z0+1, w)), xs)
		xf11 := lerp(Unit(Hash4(seed, x0, y0+1, z0+1, w)), Unit(Hash4(seed, x0+1, y0+1, z0+1, w)), xs)
		return lerp(lerp(xf00, xf10, ys), lerp(xf01, xf11, ys), zs)
	}
	return lerp(cube(w0), cube(w0+1), ws)
}
