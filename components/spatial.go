package components

import "math"

// Position represents an entity's location in the arena.
type Position struct {
	X, Y float64
}

// Coarse returns the unit cell containing the position.
func (p Position) Coarse() CoarsePosition {
	return CoarsePosition{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Direction is the displacement of an entity's last move.
type Direction struct {
	X, Y float64
}

// IsZero reports whether the entity has not moved yet.
func (d Direction) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// Angle returns the heading in radians, in [-pi, pi].
func (d Direction) Angle() float64 {
	return math.Atan2(d.Y, d.X)
}

// CoarsePosition is a unit grid cell, the granularity of the spatial index.
type CoarsePosition struct {
	X, Y int
}

// Center returns the position at the middle of the cell.
func (c CoarsePosition) Center() Position {
	return Position{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5}
}

// Offset returns the cell shifted by (dx, dy).
func (c CoarsePosition) Offset(dx, dy int) CoarsePosition {
	return CoarsePosition{X: c.X + dx, Y: c.Y + dy}
}

// Less orders cells row-major, for deterministic iteration.
func (c CoarsePosition) Less(o CoarsePosition) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}
