package handlers

import (
	"net/http"

	"cancerdetect/internal/logger"
	"cancerdetect/internal/services/helix"
)

// HelixHandler returns the decorative helix animation. Query: points, connectors, frames.
func HelixHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		h := helix.Generate(
			atoiDefault(q.Get("points"), helix.DefaultPoints),
			atoiDefault(q.Get("connectors"), helix.DefaultConnectorEvery),
			atoiDefault(q.Get("frames"), helix.DefaultFrames),
		)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		writeJSON(w, http.StatusOK, h, logger)
	}
}
