package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/typeflow/typeflow/internal/metrics"
	"github.com/typeflow/typeflow/internal/romaji"
)

type DisplayHandler struct {
	log *slog.Logger
}

func NewDisplayHandler(log *slog.Logger) *DisplayHandler {
	return &DisplayHandler{log: log}
}

type displayRequest struct {
	Romaji  string `json:"romaji" validate:"required,max=128,printascii"`
	Typed   string `json:"typed" validate:"max=256"`
	Display string `json:"display" validate:"max=128"`
}

type displayResponse struct {
	Input      string `json:"input"`
	Remaining  string `json:"remaining"`
	Normalized string `json:"normalized"`
	Display    string `json:"display"`
	Accepted   bool   `json:"accepted"`
	Complete   bool   `json:"complete"`
}

// Split reports how much of the prompt the typed keys have completed. When no
// display is given the word's own kunrei-shiki prompt is used, the same one
// the game shows.
func (h *DisplayHandler) Split(w http.ResponseWriter, r *http.Request) {
	var req displayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	normalized := romaji.Normalize(req.Romaji)
	display := req.Display
	if display == "" {
		display = romaji.NewAlignment(req.Romaji).Display()
	}

	a, aligned := romaji.Align(req.Romaji, display)
	metrics.DisplayRequests.WithLabelValues(strconv.FormatBool(aligned)).Inc()

	parts := romaji.Parts{Remaining: display}
	if aligned {
		parts = a.Parts(req.Typed)
	} else {
		h.log.DebugContext(r.Context(), "display does not align", "romaji", req.Romaji, "display", display)
	}
	writeJSON(w, http.StatusOK, displayResponse{
		Input:      parts.Input,
		Remaining:  parts.Remaining,
		Normalized: normalized,
		Display:    display,
		Accepted:   aligned && a.Accepts(req.Typed),
		Complete:   aligned && a.Complete(req.Typed),
	})
}
