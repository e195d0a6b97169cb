package handlers

import "net/http"

// SystemHandler serves the health and debug probes.
type SystemHandler struct {
	hasKey bool
}

func NewSystemHandler(hasKey bool) *SystemHandler {
	return &SystemHandler{hasKey: hasKey}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Debug reports whether the provider key is configured. It never echoes the
// key itself.
func (h *SystemHandler) Debug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true, "hasApiKey": h.hasKey})
}
