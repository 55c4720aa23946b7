package levelgen

import "math"

// Point is a sampled 2D position on the level plane.
type Point struct {
	X float64
	Z float64
}

const samplerAttempts = 30

// SamplePoints produces up to count points inside a square of side maxDist
// such that every pairwise distance is at least minDist, using Bridson-style
// active-list Poisson-disk sampling with a uniform acceleration grid.
//
// The first point sits at the square's center. Sampling can terminate with
// fewer than count points when the active list empties before the target is
// met; callers must size everything downstream off the returned slice, not
// the requested count.
func SamplePoints(rng *Rand, count int, minDist, maxDist float64) []Point {
	if count <= 0 {
		return nil
	}

	cellSize := minDist / math.Sqrt2
	gridW := int(math.Ceil(maxDist/cellSize)) + 1
	gridH := gridW
	grid := make([]int, gridW*gridH)
	for i := range grid {
		grid[i] = -1
	}

	cellOf := func(p Point) (int, int) {
		return int(p.X / cellSize), int(p.Z / cellSize)
	}

	points := make([]Point, 0, count)
	active := make([]int, 0, count)

	place := func(p Point) {
		cx, cz := cellOf(p)
		grid[cz*gridW+cx] = len(points)
		points = append(points, p)
		active = append(active, len(points)-1)
	}

	// A candidate is valid when no existing point within the 5x5 cell
	// neighborhood sits closer than minDist.
	valid := func(p Point) bool {
		if p.X < 0 || p.X >= maxDist || p.Z < 0 || p.Z >= maxDist {
			return false
		}
		cx, cz := cellOf(p)
		for dz := -2; dz <= 2; dz++ {
			for dx := -2; dx <= 2; dx++ {
				nx, nz := cx+dx, cz+dz
				if nx < 0 || nx >= gridW || nz < 0 || nz >= gridH {
					continue
				}
				idx := grid[nz*gridW+nx]
				if idx < 0 {
					continue
				}
				q := points[idx]
				ddx := p.X - q.X
				ddz := p.Z - q.Z
				if ddx*ddx+ddz*ddz < minDist*minDist {
					return false
				}
			}
		}
		return true
	}

	place(Point{X: maxDist / 2, Z: maxDist / 2})

	for len(active) > 0 && len(points) < count {
		activeIdx := rng.Pick(len(active))
		origin := points[active[activeIdx]]

		placed := false
		for attempt := 0; attempt < samplerAttempts; attempt++ {
			angle := rng.Next() * 2 * math.Pi
			dist := rng.Range(minDist, 2*minDist)
			candidate := Point{
				X: origin.X + math.Cos(angle)*dist,
				Z: origin.Z + math.Sin(angle)*dist,
			}
			if valid(candidate) {
				place(candidate)
				placed = true
				break
			}
		}
		if !placed {
			active = append(active[:activeIdx], active[activeIdx+1:]...)
		}
	}

	return points
}
