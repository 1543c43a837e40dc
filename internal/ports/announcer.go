package ports

// Port: a boundary for publishing execution events to observers.
// Publishing must never block the execution loop.
type Announcer interface {
	Announce(topic string, data any)
}
