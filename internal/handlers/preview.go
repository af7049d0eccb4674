package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"cancerdetect/internal/logger"
	"cancerdetect/internal/session"
)

// PreviewHandler serves the image uploaded to the caller's session.
func PreviewHandler(store *session.Store, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := currentSession(store, r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		image := sess.Snapshot().Image
		if image == nil {
			http.NotFound(w, r)
			return
		}

		rc, err := image.Open()
		if err != nil {
			logger.Error("Error opening preview %s: %v", image.Name(), err)
			http.Error(w, "Unable to open image", http.StatusInternalServerError)
			return
		}
		defer rc.Close()

		if ct := mime.TypeByExtension(filepath.Ext(image.Name())); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Cache-Control", "no-cache")
		io.Copy(w, rc)
	}
}
