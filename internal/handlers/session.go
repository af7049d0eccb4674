package handlers

import (
	"net/http"

	"cancerdetect/internal/dto"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/session"
)

// SessionHandler returns the state of the caller's session.
func SessionHandler(store *session.Store, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := currentSession(store, r)
		if !ok {
			http.Error(w, "No session", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, dto.NewSessionStatus(sess.Snapshot()), logger)
	}
}

// AcknowledgeHandler dismisses the shown result or error. The selections stay.
func AcknowledgeHandler(store *session.Store, events EventPublisher, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		sess, ok := currentSession(store, r)
		if !ok {
			http.Error(w, "No session", http.StatusBadRequest)
			return
		}

		sess.Acknowledge()
		publishStatus(events, sess, logger)
		writeJSON(w, http.StatusOK, dto.NewSessionStatus(sess.Snapshot()), logger)
	}
}
