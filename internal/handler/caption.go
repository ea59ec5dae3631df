package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/photostream/internal/captioner"
)

// CaptionHandler exposes the AI caption suggestion for a draft post.
//
// DEGRADATION CONTRACT:
// The collaborator may fail for any reason — missing credential, network
// error, remote 404, malformed reply. None of that may block or crash the
// creation flow, so this handler NEVER surfaces a collaborator failure as an
// error status: it answers 200 with the fixed fallback suggestion and marks
// it with "fallback": true so the frontend can mention manual mode. The only
// 400 here is a genuinely empty image payload, which the collaborator must
// not be invoked with.
//
// The suggestion only ever feeds the draft's text fields. The store is never
// touched by this handler, so an abandoned draft simply discards the result
// (request-context cancellation stops the upstream call).
type CaptionHandler struct {
	captioner captioner.Captioner // may be nil when no API key is configured
	logger    *slog.Logger
}

// NewCaptionHandler creates a new CaptionHandler. A nil captioner is valid:
// every suggestion then degrades to the fallback.
func NewCaptionHandler(c captioner.Captioner, logger *slog.Logger) *CaptionHandler {
	return &CaptionHandler{captioner: c, logger: logger}
}

// suggestionResponse wraps the suggestion with the fallback marker.
type suggestionResponse struct {
	Caption  string   `json:"caption"`
	Tags     []string `json:"tags"`
	Fallback bool     `json:"fallback"`
}

// HandleSuggest produces a caption and tag suggestion for an image.
//
// HTTP: POST /api/caption
// REQUEST BODY: {"imageData": "<base64 or data URI>"}
func (h *CaptionHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	var req captioner.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid caption request body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "request body must be valid JSON",
		})
		return
	}

	if strings.TrimSpace(req.Data) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "an image payload is required",
			Field:   "imageData",
		})
		return
	}

	if h.captioner == nil {
		h.logger.Warn("caption assistant not configured — using fallback")
		h.writeSuggestion(w, captioner.Fallback(), true)
		return
	}

	suggestion, err := h.captioner.Suggest(r.Context(), req)
	if err != nil {
		h.logger.Warn("caption assistant failed — using fallback", slog.String("error", err.Error()))
		h.writeSuggestion(w, captioner.Fallback(), true)
		return
	}

	h.writeSuggestion(w, *suggestion, false)
}

func (h *CaptionHandler) writeSuggestion(w http.ResponseWriter, s captioner.Suggestion, fallback bool) {
	writeJSON(w, http.StatusOK, suggestionResponse{
		Caption:  s.Caption,
		Tags:     s.Tags,
		Fallback: fallback,
	})
}
