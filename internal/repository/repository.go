package repository

import (
	"context"

	"github.com/sakif/photostream/internal/model"
)

// FeedRepository is the store's state-mutation surface: the single source of
// truth for the current user and the post collection. Every method leaves the
// collection invariants intact — unique post IDs, newest-first ordering, a
// non-negative like count in lockstep with the viewer's like flag, and author
// snapshots that match the current user after every profile update. Methods
// either fully apply or fully fail.
type FeedRepository interface {
	// InsertPost assigns the post's ID and CreatedAt and places it at the
	// head of the feed. The caller provides everything else.
	InsertPost(ctx context.Context, post *model.Post) error

	// GetPost returns a copy of the post, or apperror.ErrNotFound.
	GetPost(ctx context.Context, id string) (*model.Post, error)

	// ListPosts returns the feed, newest-created first.
	ListPosts(ctx context.Context) ([]model.Post, error)

	// ToggleLike atomically flips the viewer's like flag on the post and
	// adjusts its like count by ±1, returning the updated post.
	ToggleLike(ctx context.Context, id string) (*model.Post, error)

	// CurrentUser returns a copy of the session's user.
	CurrentUser(ctx context.Context) (*model.User, error)

	// UpdateProfile replaces the current user's name and bio (ID and avatar
	// are preserved) and resyncs the author snapshot on every post they
	// authored, in one atomic step. Returns the updated user.
	UpdateProfile(ctx context.Context, name, bio string) (*model.User, error)
}
