package handlers

import (
	"context"
	"errors"
	"net/http"

	"cancerdetect/internal/detection"
	"cancerdetect/internal/dto"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/model"
	"cancerdetect/internal/plugin"
	"cancerdetect/internal/repository"
	"cancerdetect/internal/session"
)

// Detector runs one detection. Implemented by *detection.Dispatcher.
type Detector interface {
	RunDetection(ctx context.Context, pluginName string, image plugin.Image) (string, error)
}

// DetectHandler runs the selected plugin on the uploaded image of the caller's session.
// Dispatcher failures are answered with 200 so the dashboard renders them inline.
// history may be nil.
func DetectHandler(store *session.Store, detector Detector, history repository.DetectionRepository, events EventPublisher, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		sess, ok := currentSession(store, r)
		if !ok {
			http.Error(w, "No session", http.StatusBadRequest)
			return
		}

		name, image, err := sess.Begin()
		if err != nil {
			if errors.Is(err, session.ErrBusy) {
				writeError(w, http.StatusConflict, err, logger)
				return
			}
			sess.Fail(err)
			publishStatus(events, sess, logger)
			writeError(w, http.StatusBadRequest, err, logger)
			return
		}
		publishStatus(events, sess, logger)

		// A closed tab must not kill the plugin halfway and leave the session without its result.
		result, err := detector.RunDetection(context.WithoutCancel(r.Context()), name, image)
		sess.Finish(result, err)
		publishStatus(events, sess, logger)
		record(history, sess.ID, name, image, result, err, logger)

		if err != nil {
			status := http.StatusOK
			if isValidation(err) {
				status = http.StatusBadRequest
			}
			writeError(w, status, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, dto.DetectionResponse{
			Status:  "ok",
			Result:  result,
			Message: "Prediction: " + result,
		}, logger)
	}
}

func record(history repository.DetectionRepository, sessionID, pluginName string, image plugin.Image, result string, err error, logger *logger.Logger) {
	if history == nil {
		return
	}

	det := &model.Detection{
		SessionID: sessionID,
		Plugin:    pluginName,
		ImageName: image.Name(),
		Outcome:   model.OutcomeResult,
		Message:   result,
	}
	if err != nil {
		det.Outcome = detection.Kind(err)
		det.Message = err.Error()
	}

	if _, err := history.Insert(det); err != nil {
		logger.Error("Failed to record detection: %v", err)
	}
}
