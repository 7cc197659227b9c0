package systems

import (
	"math"

	"github.com/pthm-cable/trails/components"
)

// Bounds represents the arena dimensions in cells.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether the position lies in [0, Width) x [0, Height).
func (b Bounds) Contains(p components.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Width && p.Y < b.Height
}

// ContainsCell reports whether the whole cell lies inside the arena.
func (b Bounds) ContainsCell(c components.CoarsePosition) bool {
	return c.X >= 0 && c.Y >= 0 && float64(c.X) < b.Width && float64(c.Y) < b.Height
}

// Neighbour offsets, row by row. Ties in gradient ranking keep this order.
var neighbourOffsets = [8]components.CoarsePosition{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Orthogonal offsets used by diffusion.
var orthogonalOffsets = [4]components.CoarsePosition{
	{X: 0, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
}

// round2 rounds to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// step returns the position one unit along angle, rounded to two decimals.
func step(p components.Position, angle float64) components.Position {
	return components.Position{
		X: round2(p.X + math.Cos(angle)),
		Y: round2(p.Y + math.Sin(angle)),
	}
}

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// turnBetween returns the absolute turn from heading a to heading b.
func turnBetween(a, b float64) float64 {
	return math.Abs(normalizeAngle(b - a))
}
