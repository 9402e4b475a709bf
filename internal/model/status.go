package model

// Status represents the lifecycle state of a download task
type Status string

const (
	// StatusQueued means the task is waiting for a free download slot
	StatusQueued Status = "queued"

	// StatusDownloading means the external engine is fetching media
	StatusDownloading Status = "downloading"

	// StatusProcessing means the engine is merging or remuxing the result
	StatusProcessing Status = "processing"

	// StatusCompleted means the task finished successfully
	StatusCompleted Status = "completed"

	// StatusFailed means the task failed with an error
	StatusFailed Status = "failed"

	// StatusCanceled means the task was canceled during shutdown
	StatusCanceled Status = "canceled"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsActive returns true if the task may still change state
func (s Status) IsActive() bool {
	return s == StatusQueued || s == StatusDownloading || s == StatusProcessing
}

// IsTerminal returns true if the task reached a final state
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCanceled
}
