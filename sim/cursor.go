package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/critters/vecmath"
)

// OrbitPeriod is the number of ticks for one lap of OrbitCursor.
const OrbitPeriod = 720

// OrbitCursor stands in for the mouse when there is no window: a point
// circling the centre of bounds at a third of its smaller dimension.
func OrbitCursor(bounds r2.Box, tick int) r2.Vec {
	size := bounds.Size()
	radius := min(size.X, size.Y) / 3
	angle := 2 * math.Pi * float64(tick%OrbitPeriod) / OrbitPeriod
	return r2.Add(bounds.Center(), vecmath.FromPolar(radius, angle))
}
