package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit is the first solid cell found by Raycast.
type Hit struct {
	X, Y, Z int
	Code    uint8
	// Before is the empty cell the ray passed through just before the hit,
	// where a new cell would be placed.
	BeforeX, BeforeY, BeforeZ int
}

// Raycast walks the cells crossed by the ray from origin along dir for up to
// maxDist cells and returns the first non-air one. Cell (x, y, z) spans
// [x, x+1) on each axis.
func (r *Registry) Raycast(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	var cell, step [3]int
	var tMax, tDelta [3]float32
	for i := 0; i < 3; i++ {
		cell[i] = int(math.Floor(float64(origin[i])))
		switch {
		case dir[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / dir[i]
			tMax[i] = (float32(cell[i]+1) - origin[i]) * tDelta[i]
		case dir[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / dir[i]
			tMax[i] = (origin[i] - float32(cell[i])) * tDelta[i]
		default:
			tDelta[i] = math.MaxFloat32
			tMax[i] = math.MaxFloat32
		}
	}

	prev := cell
	for t := float32(0); t <= maxDist; {
		if code := r.Block(cell[0], cell[1], cell[2]); code != 0 {
			return Hit{
				X: cell[0], Y: cell[1], Z: cell[2],
				Code:    code,
				BeforeX: prev[0], BeforeY: prev[1], BeforeZ: prev[2],
			}, true
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		prev = cell
		cell[axis] += step[axis]
		t = tMax[axis]
		tMax[axis] += tDelta[axis]
	}
	return Hit{}, false
}
