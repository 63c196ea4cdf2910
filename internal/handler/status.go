package handler

import (
	"net/http"
)

// StatusHandler serves the informational and health endpoints.
type StatusHandler struct {
	name    string
	version string
}

// NewStatusHandler creates a status handler.
func NewStatusHandler(name, version string) *StatusHandler {
	return &StatusHandler{name: name, version: version}
}

// Status handles GET /
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    h.name,
		"version": h.version,
	})
}

// Health handles GET /health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready. The bot has no external dependencies on the
// inbound path, so serving requests at all means ready.
func (h *StatusHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
