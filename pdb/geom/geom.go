// Calculate some geometries. Only distances are needed here.

package geom

import (
	"math"

	"github.com/andrew-torda/coevo/pdb/cmmn"
)

// xyzDiff gets the difference of two vectors
func xyzDiff(start, end cmmn.Xyz) (diff cmmn.Xyz) {
	diff.X = end.X - start.X
	diff.Y = end.Y - start.Y
	diff.Z = end.Z - start.Z
	return diff
}

// Dist2 is the distance squared. Comparisons can use this and skip
// the square root.
func Dist2(x1, x2 cmmn.Xyz) float32 {
	d := xyzDiff(x1, x2)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

// XyzDist gets the distance between two points.
func XyzDist(x1, x2 cmmn.Xyz) float32 {
	return float32(math.Sqrt(float64(Dist2(x1, x2))))
}

// MinDist is the smallest distance between any point in a and any
// point in b. With an empty set, it is +Inf.
func MinDist(a, b cmmn.XyzSl) float32 {
	best := float32(math.Inf(1))
	for _, x := range a {
		for _, y := range b {
			if d := Dist2(x, y); d < best {
				best = d
			}
		}
	}
	if math.IsInf(float64(best), 1) {
		return best
	}
	return float32(math.Sqrt(float64(best)))
}
