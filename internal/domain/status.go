package domain

// RobotStatus is the most recent state report delivered by the robot.
// The controller only reads YawDeg from it; the rest is exposed for observers.
type RobotStatus struct {
	Position  Point
	DistanceM float64
	SpeedMS   float64
	ElapsedS  float64
	YawDeg    float64
	Moving    bool
}
