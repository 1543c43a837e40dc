package services

import (
	"math"

	"routine-planner-service/internal/domain"
)

// HeadingDeg returns the heading in degrees the robot must face to travel
// from one waypoint to the next. The map's Y axis grows downward, so dy is
// inverted to keep positive headings counter-clockwise.
func HeadingDeg(from, to domain.Point) float64 {
	dy := float64(from.Y - to.Y)
	dx := float64(to.X - from.X)
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// NormalizeDeltaDeg maps a raw heading delta into (-180, 180] so the robot
// always takes the shorter rotation.
func NormalizeDeltaDeg(d float64) float64 {
	r := math.Mod(d+180, 360)
	if r <= 0 {
		r += 360
	}
	return r - 180
}
