package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/photostream/internal/model"
	"github.com/sakif/photostream/internal/service"
)

// ProfileHandler exposes the session user's profile.
type ProfileHandler struct {
	feed   *service.FeedService
	logger *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(feed *service.FeedService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{feed: feed, logger: logger}
}

// profileResponse bundles the user with the posts they authored, which is
// what a profile page renders in one request.
type profileResponse struct {
	User  model.User   `json:"user"`
	Posts []model.Post `json:"posts"`
}

// updateProfileRequest is the edit form's payload.
type updateProfileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// HandleGetProfile returns the current user and their posts.
//
// HTTP: GET /api/profile
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, posts, err := h.feed.Profile(r.Context())
	if err != nil {
		h.logger.Error("failed to load profile", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{User: *user, Posts: posts})
}

// HandleUpdateProfile edits the current user's name and bio. The store
// resyncs every authored post's author snapshot in the same step, so the
// next feed read already shows the new name.
//
// HTTP: PUT /api/profile
// REQUEST BODY: {"name": "New Name", "bio": "New bio"}
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid profile JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "request body must be valid JSON",
		})
		return
	}

	user, err := h.feed.EditProfile(r.Context(), req.Name, req.Bio)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
