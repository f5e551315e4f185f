// Package jobs runs background cleanup work that should not block request
// handlers, currently resume-file deletion after an applicant is removed.
package jobs

import (
	"context"
	"encoding/json"
	"time"
)

// TypeResumeDelete removes an uploaded resume file from storage.
const TypeResumeDelete = "resume.delete"

// ResumeDeletePayload names the stored file to remove.
type ResumeDeletePayload struct {
	Filename string `json:"filename"`
}

// Job represents one queued cleanup task.
type Job struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	Priority    int             `json:"priority"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	NextTryAt   *time.Time      `json:"next_try_at,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
	Created     time.Time       `json:"created"`
	Updated     time.Time       `json:"updated"`
}

// Handler is the function that processes a job
type Handler func(ctx context.Context, j *Job) error

// BackoffDuration returns exponential backoff duration for attempt n
func BackoffDuration(attempt int) time.Duration {
	if attempt <= 0 {
		return time.Second
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	max := 5 * time.Minute
	if d > max {
		return max
	}
	return d
}
