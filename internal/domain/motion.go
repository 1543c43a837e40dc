package domain

// MotionSample is one timestamped setpoint of a linear motion profile.
// Samples are immutable and consumed once by the actuation interface.
type MotionSample struct {
	Index    int
	Position Point
	TimeS    float64 // absolute time within the profile, first sample at StepS
	StepS    float64 // constant time step between samples
}

// TurnSample is one timestamped setpoint of a rotational motion profile.
type TurnSample struct {
	Index    int
	AngleDeg float64 // rounded to 1 decimal place
	TimeS    float64
	StepS    float64
}
