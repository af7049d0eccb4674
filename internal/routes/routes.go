package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"cancerdetect/internal/config"
	"cancerdetect/internal/handlers"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/middleware"
	"cancerdetect/internal/plugin"
	"cancerdetect/internal/repository"
	"cancerdetect/internal/services/websocket"
	"cancerdetect/internal/session"
)

// Services are the long lived components the web handlers close over.
type Services struct {
	Registry *plugin.Registry
	Detector handlers.Detector
	Sessions *session.Store
	Hub      *websocket.HubService
	// History is nil when detection history is disabled.
	History repository.DetectionRepository
}

// dynamicHTMLHandler serves /path as <static>/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path == "/" {
			path = "/index"
		}

		filePath := filepath.Join(staticDir, filepath.FromSlash(path)+".html")

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// SetupRoutes registers HTTP routes, static file serving, API endpoints,
// and wraps the mux with the session and authentication middleware.
func SetupRoutes(svc *Services, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDirectory))))

	// API endpoints
	mux.HandleFunc("/api/plugins", handlers.PluginsHandler(svc.Registry, logger))
	mux.HandleFunc("/api/upload", handlers.UploadHandler(svc.Sessions, svc.Hub, cfg, logger))
	mux.HandleFunc("/api/select", handlers.SelectHandler(svc.Sessions, svc.Hub, logger))
	mux.HandleFunc("/api/detect", handlers.DetectHandler(svc.Sessions, svc.Detector, svc.History, svc.Hub, logger))
	mux.HandleFunc("/api/session", handlers.SessionHandler(svc.Sessions, logger))
	mux.HandleFunc("/api/session/ack", handlers.AcknowledgeHandler(svc.Sessions, svc.Hub, logger))
	mux.HandleFunc("/api/preview", handlers.PreviewHandler(svc.Sessions, logger))
	mux.HandleFunc("/api/helix", handlers.HelixHandler(logger))
	mux.HandleFunc("/api/events", handlers.EventsWebsocketHandler(svc.Hub, logger))
	mux.HandleFunc("/api/history", handlers.HistoryHandler(svc.Sessions, svc.History, logger))
	mux.HandleFunc("/api/history/clear", handlers.ClearHistoryHandler(svc.Sessions, svc.History, logger))

	// Log endpoints
	for _, level := range handlers.LogFiles {
		mux.HandleFunc("/logs/"+level, handlers.ShowLogsHandler(cfg, level))
		mux.HandleFunc("/logs/"+level+"/clear", handlers.ClearLogsHandler(logger, level))
	}

	// Auth endpoints
	mux.HandleFunc("/auth/login", handlers.LoginHandler(cfg, logger))
	mux.HandleFunc("/auth/logout", handlers.LogoutHandler)

	// Automatic HTML handler mapping for example: /login -> /static/login.html
	mux.HandleFunc("/", dynamicHTMLHandler(cfg.StaticDirectory))

	// Apply middleware
	return middleware.AuthMiddleware(cfg)(middleware.SessionMiddleware(mux))
}
