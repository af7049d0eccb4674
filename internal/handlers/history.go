package handlers

import (
	"net/http"

	"cancerdetect/internal/dto"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/repository"
	"cancerdetect/internal/session"
)

// HistoryHandler lists the newest detections of the caller's session.
// Answers 404 when history is disabled.
func HistoryHandler(store *session.Store, history repository.DetectionRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if history == nil {
			http.NotFound(w, r)
			return
		}
		sess, ok := currentSession(store, r)
		if !ok {
			http.Error(w, "No session", http.StatusBadRequest)
			return
		}

		limit := atoiDefault(r.URL.Query().Get("limit"), 24)
		detections, err := history.GetBySession(sess.ID, limit)
		if err != nil {
			logger.Error("Error querying detection history: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, dto.HistoryData{
			Detections: detections,
			Length:     len(detections),
			Limit:      limit,
		}, logger)
	}
}

// ClearHistoryHandler deletes the detections of the caller's session.
func ClearHistoryHandler(store *session.Store, history repository.DetectionRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if history == nil {
			http.NotFound(w, r)
			return
		}
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		sess, ok := currentSession(store, r)
		if !ok {
			http.Error(w, "No session", http.StatusBadRequest)
			return
		}

		if err := history.DeleteBySession(sess.ID); err != nil {
			logger.Error("Error clearing detection history: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
