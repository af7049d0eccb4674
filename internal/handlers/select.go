package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cancerdetect/internal/dto"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/session"
)

// SelectHandler stores the form field "plugin" as the session's cancer type.
func SelectHandler(store *session.Store, events EventPublisher, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		sess, ok := currentSession(store, r)
		if !ok {
			http.Error(w, "No session", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(r.FormValue("plugin"))
		if err := sess.SelectPlugin(name); err != nil {
			if errors.Is(err, session.ErrBusy) {
				writeError(w, http.StatusConflict, err, logger)
				return
			}
			writeError(w, http.StatusBadRequest, err, logger)
			return
		}

		publishStatus(events, sess, logger)
		writeJSON(w, http.StatusOK, dto.NewSessionStatus(sess.Snapshot()), logger)
	}
}
