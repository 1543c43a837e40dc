package events

// Topics published by the execution controller.
const (
	TopicRouteResolved   = "routine.resolved"
	TopicRecording       = "recording"
	TopicSpeaker         = "speaker"
	TopicRoutineFinished = "routine.finished"
	TopicRoutineStopped  = "routine.stopped"
)

// Speaker tones, values preserved from the robot's audio command set.
const (
	SpeakerRoutineStart = 2
	SpeakerRoutineEnd   = 3
)

// RunRef identifies a routine run in finished/stopped announcements.
type RunRef struct {
	RunID     string `json:"run_id"`
	RoutineID int    `json:"routine_id"`
	Reason    string `json:"reason,omitempty"`
}
