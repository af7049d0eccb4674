package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"cancerdetect/internal/config"
	"cancerdetect/internal/detection"
	"cancerdetect/internal/dto"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/plugin"
	"cancerdetect/internal/session"
)

// UploadHandler stores the multipart "image" field in the caller's session.
func UploadHandler(store *session.Store, events EventPublisher, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		sess, ok := currentSession(store, r)
		if !ok {
			http.Error(w, "No session", http.StatusBadRequest)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes())
		file, header, err := r.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, &detection.ValidationError{Message: "Image is too large."}, logger)
				return
			}
			writeError(w, http.StatusBadRequest, &detection.ValidationError{Message: detection.MsgUploadImage}, logger)
			return
		}
		defer file.Close()

		name := filepath.Base(header.Filename)
		if !plugin.IsAllowedImage(name) {
			writeError(w, http.StatusBadRequest, &detection.ValidationError{Message: "Unsupported image type. Allowed: .png, .jpg, .jpeg"}, logger)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Error("Error reading upload %s: %v", name, err)
			http.Error(w, "Unable to read upload", http.StatusInternalServerError)
			return
		}

		if err := sess.SelectImage(&plugin.UploadedImage{Filename: name, Data: data}); err != nil {
			if errors.Is(err, session.ErrBusy) {
				writeError(w, http.StatusConflict, err, logger)
				return
			}
			writeError(w, http.StatusBadRequest, err, logger)
			return
		}

		logger.Info("Image %s (%d bytes) uploaded", name, len(data))
		publishStatus(events, sess, logger)
		writeJSON(w, http.StatusOK, dto.NewSessionStatus(sess.Snapshot()), logger)
	}
}
