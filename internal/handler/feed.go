package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/photostream/internal/model"
	"github.com/sakif/photostream/internal/service"
)

// FeedHandler exposes the feed and post operations over HTTP. It owns no
// state and no business rules — it parses requests, calls the service, and
// renders results or domain errors as JSON.
type FeedHandler struct {
	feed   *service.FeedService
	logger *slog.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feed *service.FeedService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, logger: logger}
}

// HandleFeed returns all posts, newest first.
//
// HTTP: GET /api/feed
func (h *FeedHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.feed.Feed(r.Context())
	if err != nil {
		h.logger.Error("failed to load feed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// HandleCreatePost creates a new post authored by the session user.
//
// HTTP: POST /api/posts
// REQUEST BODY: {"imageUrl": "...", "caption": "...", "tags": ["#x"]}
func (h *FeedHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var data model.CreatePostData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.logger.Warn("invalid create-post JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "request body must be valid JSON",
		})
		return
	}

	post, err := h.feed.CreatePost(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// HandleToggleLike flips the viewer's like on a post and returns the updated
// post. A missing post maps to 404; the frontend treats that as a stale
// reference and ignores it.
//
// HTTP: POST /api/posts/{id}/like
func (h *FeedHandler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	post, err := h.feed.ToggleLike(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}
