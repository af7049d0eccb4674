package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"cancerdetect/internal/config"
	"cancerdetect/internal/logger"
)

// LogFiles are the level files written by the logger.
var LogFiles = []string{"info", "warning", "error"}

// ShowLogsHandler serves <level>.log from the log directory.
func ShowLogsHandler(cfg *config.Config, level string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveLogFile(w, r, cfg.LogDirectory, level+".log")
	}
}

// HELPER: Serve single log file
func serveLogFile(w http.ResponseWriter, r *http.Request, logDir, filename string) {
	filePath := filepath.Join(logDir, filename)

	// Check that the file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Log file not found: " + filename))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	http.ServeFile(w, r, filePath)
}

// ClearLogsHandler truncates <level>.log.
func ClearLogsHandler(logger *logger.Logger, level string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := logger.CleanLogs(level + ".log"); err != nil {
			logger.Error("Error clearing %s logs: %v", level, err)
			http.Error(w, "Unable to clear logs", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
