package core

// EventType represents the type of change observed in the storage.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of the persisted collection made outside this process.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}
