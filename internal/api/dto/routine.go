package dto

type StartRoutineRequest struct {
	RoutineID int `json:"routine_id"`
}

type StartRoutineResponse struct {
	RunID     string `json:"run_id"`
	RoutineID int    `json:"routine_id"`
}

type StopResponse struct {
	ID   int `json:"id"`
	Code int `json:"code"`
}

type RoutineResponse struct {
	ID    int            `json:"id"`
	Stops []StopResponse `json:"stops"`
}

type ListRoutinesResponse struct {
	Routines []RoutineResponse `json:"routines"`
}
