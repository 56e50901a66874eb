package primitive

// 2D gradients: four diagonals and four axes.
var (
	grad2X = [8]float32{1, -1, 1, -1, 1, -1, 0, 0}
	grad2Y = [8]float32{1, 1, -1, -1, 0, 0, 1, -1}
)

// 3D gradients: the twelve cube edges padded to sixteen entries.
var (
	grad3X = [16]float32{1, -1, 1, -1, 1, -1, 1, -1, 0, 0, 0, 0, 1, 0, -1, 0}
	grad3Y = [16]float32{1, 1, -1, -1, 0, 0, 0, 0, 1, -1, 1, -1, 1, -1, 1, -1}
	grad3Z = [16]float32{0, 0, 0, 0, 1, 1, -1, -1, 1, 1, -1, -1, 0, 1, 0, -1}
)

func gradDot2(h uint32, x, y float32) float32 {
	i := h & 7
	return x*grad2X[i] + y*grad2Y[i]
}

func gradDot3(h uint32, x, y, z float32) float32 {
	i := h & 15
	return x*grad3X[i] + y*grad3Y[i] + z*grad3Z[i]
}

// Perlin2 returns 2D gradient noise.
func Perlin2(seed int32, x, y float32, curve Curve) float32 {
	x0, y0 := Floor(x), Floor(y)
	x1, y1 := x0+1, y0+1
	xd0 := x - float32(x0)
	yd0 := y - float32(y0)
	xd1 := xd0 - 1
	yd1 := yd0 - 1
	xs := curve(xd0)
	ys := curve(yd0)

	xf0 := lerp(gradDot2(Hash2(seed, x0, y0), xd0, yd0), gradDot2(Hash2(seed, x1, y0), xd1, yd0), xs)
	xf1 := lerp(gradDot2(Hash2(seed, x0, y1), xd0, yd1), gradDot2(Hash2(seed, x1, y1), xd1, yd1), xs)
	return lerp(xf0, xf1, ys)
}

// Perlin3 returns 3D gradient noise.
func Perlin3(seed int32, x, y, z float32, curve Curve) float32 {
	x0, y0, z0 := Floor(x), Floor(y), Floor(z)
	x1, y1, z1 := x0+1, y0+1, z0+1
	xd0 := x - float32(x0)
	yd0 := y - float32(y0)
	zd0 := z - float32(z0)
	xd1 := xd0 - 1
	yd1 := yd0 - 1
	zd1 := zd0 - 1
	xs := curve(xd0)
	ys := curve(yd0)
	zs := curve(zd0)

	xf00 := lerp(gradDot3(Hash3(seed, x0, y0, z0), xd0, yd0, zd0), gradDot3(Hash3(seed, x1, y0, z0), xd1, yd0, zd0), xs)
	xf10 := lerp(gradDot3(Hash3(seed, x0, y1, z0), xd0, yd1, zd0), gradDot3(Hash3(seed, x1, y1, z0), xd1, yd1, zd0), xs)
	xf01 := lerp(gradDot3(Hash3(seed, x0, y0, z1), xd0, yd0, zd1), gradDot3(Hash3(seed, x1, y0, z1), xd1, yd0, zd1), xs)
	xf11 := lerp(gradDot3(Hash3(seed, x0, y1, z1), xd0, yd1, zd1), gradDot3(Hash3(seed, x1, y1, z1), xd1, yd1, zd1), xs)

	yf0 := lerp(xf00, xf10, ys)
	yf1 := lerp(xf01, xf11, ys)
	return lerp(yf0, yf1, zs)
}
