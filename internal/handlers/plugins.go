package handlers

import (
	"net/http"

	"cancerdetect/internal/logger"
	"cancerdetect/internal/plugin"
)

// PluginsHandler lists the cancer types found in the plugin directory.
// Under the warn-and-continue policy an unreadable directory yields an empty list with a warning.
func PluginsHandler(registry *plugin.Registry, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}

		listing, err := registry.List()
		if err != nil {
			logger.Error("Error listing plugins: %v", err)
			http.Error(w, "Could not load cancer types", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, listing, logger)
	}
}
