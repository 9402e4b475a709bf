package model

// EventType tags the lifecycle events emitted to observers
type EventType string

const (
	// EventQueued is emitted once when a request is accepted
	EventQueued EventType = "queued"

	// EventProgress carries a partial update parsed from one engine output line
	EventProgress EventType = "progress"

	// EventCompleted is emitted after successful finalization
	EventCompleted EventType = "completed"

	// EventFailed is emitted on any failure or cancellation; Message is never empty
	EventFailed EventType = "failed"

	// EventRemoved is emitted when a task leaves the live registry
	EventRemoved EventType = "removed"
)

// Progress carries the fields extracted from a single engine output line.
// Nil fields were not present on that line; consumers must merge non-nil
// fields onto their previous snapshot, never replace it wholesale.
type Progress struct {
	Status     *Status
	Percent    *float64
	Speed      *string
	ETA        *string
	OutputPath *string
	Title      *string
}

// Event is the tagged union delivered to subscribers
type Event struct {
	Type   EventType
	TaskID string

	// Task is set for EventQueued
	Task *Task

	// Progress is set for EventProgress
	Progress *Progress

	// Completion fields, set for EventCompleted
	FilePath string
	Title    string
	Dir      string
	FileSize int64

	// Message is set for EventFailed
	Message string
}
