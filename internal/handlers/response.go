package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cancerdetect/internal/detection"
	"cancerdetect/internal/dto"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/middleware"
	"cancerdetect/internal/session"
)

// EventPublisher delivers a payload to the event sockets of one session.
type EventPublisher interface {
	Publish(session string, payload []byte)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

// writeError renders err the way the dashboard shows it inline.
func writeError(w http.ResponseWriter, status int, err error, logger *logger.Logger) {
	writeJSON(w, status, dto.DetectionResponse{
		Status:  "error",
		Kind:    detection.Kind(err),
		Title:   detection.Title(err),
		Message: err.Error(),
	}, logger)
}

// currentSession returns the session of the request cookie.
func currentSession(store *session.Store, r *http.Request) (*session.Session, bool) {
	id := middleware.SessionID(r)
	if id == "" {
		return nil, false
	}
	return store.Get(id), true
}

// publishStatus pushes the session snapshot to its open dashboards.
func publishStatus(events EventPublisher, sess *session.Session, logger *logger.Logger) {
	if events == nil {
		return
	}
	payload, err := json.Marshal(dto.NewSessionStatus(sess.Snapshot()))
	if err != nil {
		logger.Error("Error encoding session event: %v", err)
		return
	}
	events.Publish(sess.ID, payload)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func isValidation(err error) bool {
	var v *detection.ValidationError
	return errors.As(err, &v)
}

// atoiDefault converts string to int or returns a default when conversion fails or value <= 0.
func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
