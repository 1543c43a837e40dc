package dto

// RobotStatusRequest is the status report the robot posts after each
// control cycle.
type RobotStatusRequest struct {
	PosX      int     `json:"pos_x"`
	PosY      int     `json:"pos_y"`
	DistanceM float64 `json:"dist"`
	SpeedMS   float64 `json:"speed"`
	ElapsedS  float64 `json:"time"`
	YawDeg    float64 `json:"yaw"`
	Moving    bool    `json:"moving"`
}

type ExecutionStatusResponse struct {
	InExecution bool   `json:"in_execution"`
	Paused      bool   `json:"paused"`
	RunID       string `json:"run_id,omitempty"`
	RoutineID   int    `json:"routine_id,omitempty"`

	Robot RobotStatusRequest `json:"robot"`
}
