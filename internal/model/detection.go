package model

import "time"

// OutcomeResult marks a detection that returned a label. Failed detections store the error kind instead.
const OutcomeResult = "result"

// Detection is one run of a plugin, as kept in the history.
type Detection struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Plugin    string    `json:"plugin"`
	ImageName string    `json:"image_name"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
