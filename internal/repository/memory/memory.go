// Package memory implements repository.FeedRepository entirely in memory.
//
// WHY IN-MEMORY?
// All state lives for a single session — there is no persistence layer, no
// server-side database, and no multi-user synchronization. The repository
// interface still exists so that the service layer never knows (or cares)
// where the state lives; a persistent implementation could be swapped in by
// changing one line in the server's wiring.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/photostream/internal/apperror"
	"github.com/sakif/photostream/internal/model"
	"github.com/sakif/photostream/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors immediately instead of at
// some distant call site. A standard Go trick for any interface implementation.
var _ repository.FeedRepository = (*Store)(nil)

// Store holds the session state: one current user and the ordered post
// collection, newest first.
//
// CONCURRENCY:
// The domain is a single logical thread of control (user-triggered intents),
// but the HTTP server serves requests on separate goroutines, so every
// operation takes the mutex. Each method is atomic — no operation can observe
// another's partial effect, and each either fully applies or fully fails.
//
// ALIASING:
// Values are copied on the way in and on the way out. Callers can never hold
// a pointer into the store's internal state, so the author-snapshot and
// like-count invariants cannot be broken from outside.
type Store struct {
	mu    sync.Mutex
	user  model.User
	posts []model.Post // index 0 is the newest post
}

// New creates a Store seeded with the session's user and starter posts.
// Seed posts are copied and ordered newest-first regardless of input order.
func New(user model.User, posts []model.Post) *Store {
	s := &Store{
		user:  user,
		posts: make([]model.Post, 0, len(posts)),
	}
	for _, p := range posts {
		s.posts = append(s.posts, clonePost(p))
	}
	// Stable sort: equal timestamps keep their given order.
	sort.SliceStable(s.posts, func(i, j int) bool {
		return s.posts[i].CreatedAt.After(s.posts[j].CreatedAt)
	})
	return s
}

// InsertPost assigns the post's identity and timestamp, then places it at the
// head of the feed.
//
// ID GENERATION WITH xid:
// xid generates 20-char, URL-safe IDs that start with a timestamp, so they
// are sortable by creation time and collision-free across the session —
// exactly what a post ID needs.
//
// ORDERING INVARIANT:
// CreatedAt comes from time.Now(), which is monotonically non-decreasing, and
// new posts always go to index 0. Together those keep the slice in reverse-
// chronological order with ties broken by insertion (later insert wins the
// head slot), so ListPosts never needs to re-sort.
func (s *Store) InsertPost(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = xid.New().String()
	post.CreatedAt = time.Now()

	s.posts = append([]model.Post{clonePost(*post)}, s.posts...)
	return nil
}

// GetPost returns a copy of the post with the given ID.
func (s *Store) GetPost(_ context.Context, id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, apperror.NotFound("post", id)
	}
	p := clonePost(s.posts[i])
	return &p, nil
}

// ListPosts returns the feed, newest-created first.
func (s *Store) ListPosts(_ context.Context) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	return out, nil
}

// ToggleLike flips the viewer's like flag and moves the like count with it:
// +1 when the flag goes false→true, -1 when it goes true→false. Toggling
// twice always returns the post to its pre-toggle (count, flag) pair, and the
// count can never go negative because it only decrements when the flag was set.
func (s *Store) ToggleLike(_ context.Context, id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, apperror.NotFound("post", id)
	}

	p := &s.posts[i]
	if p.LikedByCurrentUser {
		p.LikeCount--
	} else {
		p.LikeCount++
	}
	p.LikedByCurrentUser = !p.LikedByCurrentUser

	out := clonePost(*p)
	return &out, nil
}

// CurrentUser returns a copy of the session's user.
func (s *Store) CurrentUser(_ context.Context) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.user
	return &u, nil
}

// UpdateProfile replaces the current user's name and bio, keeping ID and
// avatar, then resyncs the denormalized author snapshot on every post the
// user authored. Posts by other authors are untouched.
//
// The resync runs inside the same critical section as the user update, so no
// reader can ever observe the new profile alongside a stale snapshot.
func (s *Store) UpdateProfile(_ context.Context, name, bio string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user.Name = name
	s.user.Bio = bio

	for i := range s.posts {
		if s.posts[i].AuthorID == s.user.ID {
			s.posts[i].Author = s.user
		}
	}

	u := s.user
	return &u, nil
}

// indexOf returns the position of the post with the given ID, or -1.
// Caller must hold s.mu.
func (s *Store) indexOf(id string) int {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return i
		}
	}
	return -1
}

// clonePost copies a post including its tag slice, so the copy shares no
// memory with the original.
func clonePost(p model.Post) model.Post {
	out := p
	if p.Tags != nil {
		out.Tags = make([]string, len(p.Tags))
		copy(out.Tags, p.Tags)
	}
	return out
}
