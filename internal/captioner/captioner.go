// Package captioner defines the contract for the AI caption collaborator.
//
// The collaborator only ever feeds the pre-submission draft (the caption and
// tag fields the user is still editing) — its output never reaches the store
// directly, and its failure must never block post creation. Callers are
// required to degrade to Fallback() instead of propagating an error.
package captioner

import "context"

// Request carries the image payload to caption. Data is the image as a
// base64 string, with or without a "data:image/...;base64," prefix.
type Request struct {
	Data string `json:"imageData"`
}

// Suggestion is a proposed caption and tag list for a draft post.
type Suggestion struct {
	Caption string   `json:"caption"`
	Tags    []string `json:"tags"`
}

// Captioner produces a caption suggestion from an image. Implementations
// report real errors; degradation to the fallback is the caller's job.
type Captioner interface {
	Suggest(ctx context.Context, req Request) (*Suggestion, error)
}

// Fallback returns the fixed suggestion used whenever the collaborator is
// unavailable or fails. Both fields are non-empty so the draft is never left
// blank by a failed suggestion.
func Fallback() Suggestion {
	return Suggestion{
		Caption: "Check out this amazing photo! ✨",
		Tags:    []string{"#photo", "#moments", "#life"},
	}
}
