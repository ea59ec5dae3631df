package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"log/slog"
	"os"

	"github.com/sakif/photostream/internal/apperror"
	"github.com/sakif/photostream/internal/model"
)

// =========================================================================
// MOCK REPOSITORY
// =========================================================================
//
// mockFeedRepo implements repository.FeedRepository in a few lines of memory,
// so these tests exercise ONLY the service's validation and orchestration.
// The real invariants of the store (ordering, atomic resync, copies) are
// covered by the repository/memory package's own tests.

type mockFeedRepo struct {
	user   model.User
	posts  []model.Post // head is newest, same contract as the real store
	nextID int
	err    error // when set, every method fails with it
}

func newMockRepo() *mockFeedRepo {
	return &mockFeedRepo{
		user: model.User{ID: "u1", Name: "Alex Developer", Avatar: "img://alex", Bio: "hi"},
	}
}

func (m *mockFeedRepo) InsertPost(_ context.Context, post *model.Post) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	post.ID = fmt.Sprintf("mock-%d", m.nextID)
	post.CreatedAt = time.Now()
	stored := *post
	m.posts = append([]model.Post{stored}, m.posts...)
	return nil
}

func (m *mockFeedRepo) GetPost(_ context.Context, id string) (*model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.posts {
		if p.ID == id {
			result := p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("post", id)
}

func (m *mockFeedRepo) ListPosts(_ context.Context) ([]model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Post, len(m.posts))
	copy(out, m.posts)
	return out, nil
}

func (m *mockFeedRepo) ToggleLike(_ context.Context, id string) (*model.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.posts {
		if m.posts[i].ID == id {
			p := &m.posts[i]
			if p.LikedByCurrentUser {
				p.LikeCount--
			} else {
				p.LikeCount++
			}
			p.LikedByCurrentUser = !p.LikedByCurrentUser
			result := *p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("post", id)
}

func (m *mockFeedRepo) CurrentUser(_ context.Context) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u := m.user
	return &u, nil
}

func (m *mockFeedRepo) UpdateProfile(_ context.Context, name, bio string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.user.Name = name
	m.user.Bio = bio
	for i := range m.posts {
		if m.posts[i].AuthorID == m.user.ID {
			m.posts[i].Author = m.user
		}
	}
	u := m.user
	return &u, nil
}

// =========================================================================
// TEST HELPER
// =========================================================================

func newTestService(t *testing.T) (*FeedService, *mockFeedRepo) {
	t.Helper()
	repo := newMockRepo()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewFeedService(repo, logger)
	return svc, repo
}

// =========================================================================
// CREATE POST TESTS
// =========================================================================

func TestCreatePost_Success(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.CreatePost(context.Background(), model.CreatePostData{
		ImageURL: "img://a",
		Caption:  "hi",
		Tags:     []string{"#x"},
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if post.ID == "" {
		t.Error("expected post to have an ID")
	}
	if post.AuthorID != "u1" {
		t.Errorf("AuthorID = %q, want %q", post.AuthorID, "u1")
	}
	if post.Author.Name != "Alex Developer" {
		t.Errorf("Author snapshot = %+v, want the current user", post.Author)
	}
	if post.LikeCount != 0 || post.LikedByCurrentUser {
		t.Errorf("new post should start unliked, got count=%d liked=%v",
			post.LikeCount, post.LikedByCurrentUser)
	}
}

func TestCreatePost_InsertsAtHead(t *testing.T) {
	svc, repo := newTestService(t)

	svc.CreatePost(context.Background(), model.CreatePostData{ImageURL: "img://a", Caption: "first"})
	svc.CreatePost(context.Background(), model.CreatePostData{ImageURL: "img://b", Caption: "second"})

	if repo.posts[0].Caption != "second" {
		t.Errorf("head of feed = %q, want the newest post", repo.posts[0].Caption)
	}
}

func TestCreatePost_EmptyImage(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.CreatePost(context.Background(), model.CreatePostData{Caption: "hi"})
	if err == nil {
		t.Fatal("CreatePost() should error on empty image")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if len(repo.posts) != 0 {
		t.Error("failed create must not alter the collection")
	}
}

func TestCreatePost_EmptyCaption(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.CreatePost(context.Background(), model.CreatePostData{ImageURL: "img://a", Caption: "   "})
	if err == nil {
		t.Fatal("CreatePost() should error on whitespace-only caption")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if len(repo.posts) != 0 {
		t.Error("failed create must not alter the collection")
	}
}

func TestCreatePost_CaptionTooLong(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreatePost(context.Background(), model.CreatePostData{
		ImageURL: "img://a",
		Caption:  strings.Repeat("a", MaxCaptionLength+1),
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestCreatePost_NormalizesTags(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.CreatePost(context.Background(), model.CreatePostData{
		ImageURL: "img://a",
		Caption:  "tagged",
		Tags:     []string{"nature", " #hiking ", "", "#", "morning"},
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	want := []string{"#nature", "#hiking", "#morning"}
	if len(post.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", post.Tags, want)
	}
	for i := range want {
		if post.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %q, want %q", i, post.Tags[i], want[i])
		}
	}
}

// =========================================================================
// TOGGLE LIKE TESTS
// =========================================================================

func TestToggleLike_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	post, _ := svc.CreatePost(context.Background(), model.CreatePostData{ImageURL: "img://a", Caption: "hi"})

	liked, err := svc.ToggleLike(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if liked.LikeCount != 1 || !liked.LikedByCurrentUser {
		t.Errorf("after like: count=%d liked=%v, want 1/true", liked.LikeCount, liked.LikedByCurrentUser)
	}

	unliked, err := svc.ToggleLike(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if unliked.LikeCount != 0 || unliked.LikedByCurrentUser {
		t.Errorf("after unlike: count=%d liked=%v, want 0/false", unliked.LikeCount, unliked.LikedByCurrentUser)
	}
}

func TestToggleLike_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ToggleLike(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestToggleLike_EmptyID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ToggleLike(context.Background(), "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// EDIT PROFILE TESTS
// =========================================================================

func TestEditProfile_Success(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.EditProfile(context.Background(), "  New Name  ", "New bio")
	if err != nil {
		t.Fatalf("EditProfile() error = %v", err)
	}
	if user.Name != "New Name" {
		t.Errorf("Name = %q, want trimmed %q", user.Name, "New Name")
	}
	if user.Bio != "New bio" {
		t.Errorf("Bio = %q, want %q", user.Bio, "New bio")
	}
}

func TestEditProfile_ResyncsOwnPosts(t *testing.T) {
	svc, repo := newTestService(t)

	post, _ := svc.CreatePost(context.Background(), model.CreatePostData{ImageURL: "img://a", Caption: "hi"})

	if _, err := svc.EditProfile(context.Background(), "New Name", "New bio"); err != nil {
		t.Fatalf("EditProfile() error = %v", err)
	}

	got, _ := repo.GetPost(context.Background(), post.ID)
	if got.Author.Name != "New Name" {
		t.Errorf("author snapshot = %q, want %q", got.Author.Name, "New Name")
	}
}

func TestEditProfile_BlankName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.EditProfile(context.Background(), "   ", "bio")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestEditProfile_BioTooLong(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.EditProfile(context.Background(), "name", strings.Repeat("b", MaxBioLength+1))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestEditProfile_BioAtLimit(t *testing.T) {
	svc, _ := newTestService(t)

	// Exactly 160 characters is allowed.
	_, err := svc.EditProfile(context.Background(), "name", strings.Repeat("b", MaxBioLength))
	if err != nil {
		t.Fatalf("EditProfile() at the bio limit should succeed, got %v", err)
	}
}

// =========================================================================
// FEED / PROFILE READ TESTS
// =========================================================================

func TestProfile_FiltersOwnPosts(t *testing.T) {
	svc, repo := newTestService(t)

	// One post by someone else, one by the current user.
	repo.posts = append(repo.posts, model.Post{
		ID: "p-other", AuthorID: "u2",
		Author:  model.User{ID: "u2", Name: "Sarah Nature"},
		Caption: "theirs",
	})
	svc.CreatePost(context.Background(), model.CreatePostData{ImageURL: "img://a", Caption: "mine"})

	user, own, err := svc.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("user.ID = %q, want u1", user.ID)
	}
	if len(own) != 1 || own[0].Caption != "mine" {
		t.Errorf("own posts = %+v, want only the current user's post", own)
	}
}

// =========================================================================
// END-TO-END SCENARIO
// =========================================================================

// TestScenario walks the core flow in one sitting: create → like → unlike →
// edit profile, asserting the state the presentation layer would observe.
func TestScenario(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, model.CreatePostData{
		ImageURL: "img://a",
		Caption:  "hi",
		Tags:     []string{"#x"},
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if post.LikeCount != 0 || post.LikedByCurrentUser {
		t.Fatalf("fresh post: count=%d liked=%v, want 0/false", post.LikeCount, post.LikedByCurrentUser)
	}

	feed, _ := svc.Feed(ctx)
	if len(feed) == 0 || feed[0].ID != post.ID {
		t.Fatal("new post should appear at index 0 of the feed")
	}

	liked, _ := svc.ToggleLike(ctx, post.ID)
	if liked.LikeCount != 1 || !liked.LikedByCurrentUser {
		t.Fatalf("after like: count=%d liked=%v, want 1/true", liked.LikeCount, liked.LikedByCurrentUser)
	}

	unliked, _ := svc.ToggleLike(ctx, post.ID)
	if unliked.LikeCount != 0 || unliked.LikedByCurrentUser {
		t.Fatalf("after unlike: count=%d liked=%v, want 0/false", unliked.LikeCount, unliked.LikedByCurrentUser)
	}

	if _, err := svc.EditProfile(ctx, "New Name", "New bio"); err != nil {
		t.Fatalf("EditProfile() error = %v", err)
	}

	feed, _ = svc.Feed(ctx)
	if feed[0].Author.Name != "New Name" {
		t.Fatalf("author snapshot = %q, want %q", feed[0].Author.Name, "New Name")
	}
}
