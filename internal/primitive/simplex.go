package primitive

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/gogpu/noise/internal/cache"
)

// SimplexCacheSize bounds the number of OpenSimplex generators kept alive.
// Fractal simplex uses seed..seed+octaves-1, so this covers many seeds at
// once; sweeping more seeds rebuilds evicted generators.
const SimplexCacheSize = 256

// simplexBySeed holds generators by seed. Generators are read-only after
// construction and safe to share between goroutines.
var simplexBySeed = cache.New[int32, opensimplex.Noise](SimplexCacheSize)

func simplexFor(seed int32) opensimplex.Noise {
	return simplexBySeed.GetOrCreate(seed, func() opensimplex.Noise {
		return opensimplex.New(int64(seed))
	})
}

// Simplex2 returns 2D OpenSimplex noise.
func Simplex2(seed int32, x, y float32) float32 {
	return float32(simplexFor(seed).Eval2(float64(x), float64(y)))
}

// Simplex3 returns 3D OpenSimplex noise.
func Simplex3(seed int32, x, y, z float32) float32 {
	return float32(simplexFor(seed).Eval3(float64(x), float64(y), float64(z)))
}

// Simplex4 returns 4D OpenSimplex noise.
func Simplex4(seed int32, x, y, z, w float32) float32 {
	return float32(simplexFor(seed).Eval4(float64(x), float64(y), float64(z), float64(w)))
}
