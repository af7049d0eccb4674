package dto

import (
	"time"

	"cancerdetect/internal/detection"
	"cancerdetect/internal/session"
)

// SessionStatus is the view of a browser session sent by GET /api/session and over the event socket.
type SessionStatus struct {
	State     session.State `json:"state"`
	Image     string        `json:"image,omitempty"`
	Plugin    string        `json:"plugin,omitempty"`
	Result    string        `json:"result,omitempty"`
	ErrorKind string        `json:"errorKind,omitempty"`
	Error     string        `json:"error,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// NewSessionStatus converts a snapshot.
func NewSessionStatus(snap session.Snapshot) SessionStatus {
	status := SessionStatus{
		State:     snap.State,
		Plugin:    snap.Plugin,
		Result:    snap.Result,
		UpdatedAt: snap.UpdatedAt,
	}
	if snap.Image != nil {
		status.Image = snap.Image.Name()
	}
	if snap.Err != nil {
		status.ErrorKind = detection.Kind(snap.Err)
		status.Error = snap.Err.Error()
	}
	return status
}
