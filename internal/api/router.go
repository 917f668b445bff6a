package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Get("/health", s.handleHealth)

	// Device registry endpoints
	r.Route("/devices", func(r chi.Router) {
		r.Get("/", s.handleListDevices)
		r.Get("/types", s.handleDeviceTypes)
		r.Get("/stats", s.handleDeviceStats)
		r.Get("/search", s.handleSearchDevices)
		r.Get("/by-type/{type}", s.handleDevicesByType)
		r.Get("/by-location/{location}", s.handleDevicesByLocation)
		r.Post("/add", s.handleAddDevice)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetDevice)
			r.Delete("/", s.handleRemoveDevice)
			r.Post("/control", s.handleControlDevice)
		})
	})

	// Voice assistant endpoints
	r.Route("/voice", func(r chi.Router) {
		r.Post("/start", s.handleVoiceStart)
		r.Post("/stop", s.handleVoiceStop)
		r.Get("/status", s.handleVoiceStatus)
		r.Get("/events", s.handleVoiceEvents)
		r.Post("/events/clear", s.handleVoiceEventsClear)
		r.Get("/config", s.handleVoiceConfig)
		r.Post("/test", s.handleVoiceTest)
	})

	// WebSocket event feed
	r.Get("/ws", s.handleWebSocket)

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
