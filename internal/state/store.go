// Package state records analysis run history in a local SQLite database,
// so a scientist can see which job combinations were already compared and
// where the outputs went.
package state

import "time"

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded invocation of the analysis pipeline.
type Run struct {
	ID          string
	Jobs        string // comma-separated job labels, e.g. "job001,job002"
	OutDir      string
	Status      RunStatus
	Pairs       int
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}
