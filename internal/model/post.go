package model

import "time"

// Post represents a single feed entry.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON. This is called a "struct tag" — metadata attached to fields.
//
// DENORMALIZED AUTHOR SNAPSHOT:
// Author is a full copy of the User at last write time, NOT a live reference.
// Embedding the copy lets the feed render without a join, but the copy can go
// stale — whenever the current user's profile changes, every post they
// authored must have its snapshot replaced. That resync is owned by the
// store's profile update; nothing else may touch it.
//
// WHY LikedByCurrentUser bool (not a set of liker IDs)?
// The session has exactly one implicit viewer, so "who liked this" collapses
// to a boolean scoped to that viewer. This is a scope decision, not an
// oversight: multi-user semantics would replace the flag with a liked-by set
// and compute the boolean by membership against the viewing user's ID.
type Post struct {
	ID                 string    `json:"id"`                 // Unique, assigned at creation, immutable
	AuthorID           string    `json:"authorId"`           // User.ID of the creator, immutable
	Author             User      `json:"author"`             // Denormalized snapshot (see above)
	ImageURL           string    `json:"imageUrl"`           // URI or data-URI of the photo, non-empty
	Caption            string    `json:"caption"`            // Free text, non-empty
	Tags               []string  `json:"tags"`               // Canonical form: each tag carries a leading "#"
	LikeCount          int       `json:"likeCount"`          // Never negative
	LikedByCurrentUser bool      `json:"likedByCurrentUser"` // Local viewer's like flag, moves in lockstep with LikeCount
	CreatedAt          time.Time `json:"createdAt"`
}

// CreatePostData is the input for creating a post. The store fills in
// everything else (ID, author snapshot, counters, timestamp).
type CreatePostData struct {
	ImageURL string   `json:"imageUrl"`
	Caption  string   `json:"caption"`
	Tags     []string `json:"tags"`
}
