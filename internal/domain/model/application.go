package model

import (
	"strings"
	"time"
)

// ApplicationState tracks where a user's application to a job stands.
type ApplicationState string

const (
	ApplicationStateInterested ApplicationState = "interested"
	ApplicationStateApplied    ApplicationState = "applied"
	ApplicationStateAccepted   ApplicationState = "accepted"
	ApplicationStateRejected   ApplicationState = "rejected"
)

// Valid reports whether the application state is supported.
func (s ApplicationState) Valid() bool {
	switch s {
	case ApplicationStateInterested, ApplicationStateApplied,
		ApplicationStateAccepted, ApplicationStateRejected:
		return true
	default:
		return false
	}
}

// ParseApplicationState normalizes a state string and reports whether it is supported.
func ParseApplicationState(value string) (ApplicationState, bool) {
	state := ApplicationState(strings.ToLower(strings.TrimSpace(value)))
	if state.Valid() {
		return state, true
	}
	return "", false
}

// Application links a user to a job they applied to. The pair (username,
// job_id) is unique; applying twice is a conflict.
type Application struct {
	Username  string           `json:"username"   db:"username"`
	JobID     int64            `json:"job_id"     db:"job_id"`
	State     ApplicationState `json:"state"      db:"state"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
