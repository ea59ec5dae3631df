// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → owns the session state
//
// The service accepts primitives and domain types, never HTTP types, and
// returns domain errors (apperror), never status codes. The handler layer
// translates both directions. Notice that FeedService takes a
// repository.FeedRepository (interface), NOT a *memory.Store (concrete type) —
// tests inject a mock, and the wiring in internal/server decides the real one.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/photostream/internal/apperror"
	"github.com/sakif/photostream/internal/model"
	"github.com/sakif/photostream/internal/repository"
)

// Validation constants. Defining these as constants (not magic numbers in
// code) keeps them easy to find, self-documenting, and referenceable in
// error messages.
const (
	MaxBioLength     = 160
	MaxCaptionLength = 2000
	MaxTagsPerPost   = 10
)

// FeedService handles business logic for the feed and the session profile.
type FeedService struct {
	repo   repository.FeedRepository
	logger *slog.Logger
}

// NewFeedService creates a new FeedService. This is where dependency
// injection happens — the caller decides WHICH repository implementation to
// use (the in-memory store, or a mock in tests).
func NewFeedService(repo repository.FeedRepository, logger *slog.Logger) *FeedService {
	return &FeedService{
		repo:   repo,
		logger: logger,
	}
}

// CreatePost validates the draft, stamps it with the current user as author,
// and inserts it at the head of the feed.
//
// VALIDATION:
// An empty (or whitespace-only) image URL or caption is a precondition
// violation — the presentation layer shouldn't submit such a draft, but the
// store defensively rejects it anyway, leaving state untouched.
//
// TAG NORMALIZATION:
// Tags are canonicalized at write time: trimmed, empties dropped, and a
// leading "#" added when missing. Storing the canonical form means no render
// path ever needs its own prefix check.
func (s *FeedService) CreatePost(ctx context.Context, data model.CreatePostData) (*model.Post, error) {
	if strings.TrimSpace(data.ImageURL) == "" {
		return nil, apperror.ValidationFailed("imageUrl", "an image is required")
	}

	caption := strings.TrimSpace(data.Caption)
	if caption == "" {
		return nil, apperror.ValidationFailed("caption", "a caption is required")
	}
	if len(caption) > MaxCaptionLength {
		return nil, apperror.ValidationFailed("caption",
			fmt.Sprintf("caption must be %d characters or less", MaxCaptionLength))
	}

	tags := normalizeTags(data.Tags)
	if len(tags) > MaxTagsPerPost {
		return nil, apperror.ValidationFailed("tags",
			fmt.Sprintf("a post may carry at most %d tags", MaxTagsPerPost))
	}

	author, err := s.repo.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving author: %w", err)
	}

	// New posts always start unliked with a zero count; the repository fills
	// in ID and CreatedAt and snapshots nothing — the snapshot is taken here,
	// at write time, from the author we just resolved.
	post := &model.Post{
		AuthorID: author.ID,
		Author:   *author,
		ImageURL: data.ImageURL,
		Caption:  caption,
		Tags:     tags,
	}

	if err := s.repo.InsertPost(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.String("authorId", author.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.String("id", post.ID),
		slog.String("authorId", post.AuthorID),
		slog.Int("tags", len(post.Tags)),
	)

	return post, nil
}

// ToggleLike flips the viewer's like on the given post.
// Returns apperror.ErrNotFound if the post doesn't exist — callers treat
// that as a benign no-op (a stale UI reference), not a failure.
func (s *FeedService) ToggleLike(ctx context.Context, postID string) (*model.Post, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, apperror.ValidationFailed("id", "post ID is required")
	}

	post, err := s.repo.ToggleLike(ctx, postID)
	if err != nil {
		// NotFound is a normal outcome here, not worth an error log.
		return nil, err
	}

	s.logger.Info("like toggled",
		slog.String("id", post.ID),
		slog.Bool("liked", post.LikedByCurrentUser),
		slog.Int("likeCount", post.LikeCount),
	)

	return post, nil
}

// EditProfile replaces the current user's name and bio. The repository
// resyncs the author snapshot on every post the user authored in the same
// atomic step, so no post can be observed with a stale snapshot afterwards.
func (s *FeedService) EditProfile(ctx context.Context, name, bio string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if len([]rune(bio)) > MaxBioLength {
		return nil, apperror.ValidationFailed("bio",
			fmt.Sprintf("bio must be %d characters or less", MaxBioLength))
	}

	user, err := s.repo.UpdateProfile(ctx, name, bio)
	if err != nil {
		s.logger.Error("failed to update profile", slog.String("error", err.Error()))
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	s.logger.Info("profile updated", slog.String("id", user.ID))
	return user, nil
}

// Feed returns all posts, newest-created first.
func (s *FeedService) Feed(ctx context.Context) ([]model.Post, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// Profile returns the current user together with the posts they authored,
// in feed order.
func (s *FeedService) Profile(ctx context.Context) (*model.User, []model.Post, error) {
	user, err := s.repo.CurrentUser(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving current user: %w", err)
	}

	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing posts: %w", err)
	}

	own := make([]model.Post, 0)
	for _, p := range posts {
		if p.AuthorID == user.ID {
			own = append(own, p)
		}
	}
	return user, own, nil
}

// normalizeTags canonicalizes a tag list: whitespace trimmed, empty entries
// dropped, and a leading "#" ensured. Order is preserved.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "#" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		out = append(out, tag)
	}
	return out
}
