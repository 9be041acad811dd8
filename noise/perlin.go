package noise

import (
	"math"
	"math/rand"
)

// Perlin generates classic gradient noise from a seeded permutation table.
type Perlin struct {
	perm [512]int
}

// NewPerlin creates a Perlin noise generator.
func NewPerlin(seed int64) *Perlin {
	p := &Perlin{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}
	return p
}

// Sample returns noise at x remapped from [-1, 1] to [0, 1].
// The y offset keeps integer inputs off the lattice, where Perlin noise is 0.
func (p *Perlin) Sample(x float64) float64 {
	return clamp01((p.Noise2D(x, 0.5) + 1) / 2)
}

// Noise2D returns raw noise in roughly [-1, 1].
func (p *Perlin) Noise2D(x, y float64) float64 {
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)

	u := fade(x)
	v := fade(y)

	A := p.perm[X] + Y
	B := p.perm[X+1] + Y

	return lerp(v,
		lerp(u, grad2D(p.perm[A], x, y), grad2D(p.perm[B], x-1, y)),
		lerp(u, grad2D(p.perm[A+1], x, y-1), grad2D(p.perm[B+1], x-1, y-1)))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad2D picks one of eight gradient directions from the hash.
func grad2D(hash int, x, y float64) float64 {
	switch hash & 7 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return y
	default:
		return -y
	}
}
