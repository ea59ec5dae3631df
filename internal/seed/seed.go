// Package seed provides the session's initial data: the current user and a
// few starter posts so the first feed render isn't an empty screen.
package seed

import (
	"time"

	"github.com/sakif/photostream/internal/model"
)

// CurrentUser returns the identity the session runs as. In a multi-user
// system this would come from an identity provider; here it is fixed for the
// session's single implicit viewer.
func CurrentUser() model.User {
	return model.User{
		ID:     "u1",
		Name:   "Alex Developer",
		Avatar: "https://picsum.photos/seed/alex/100/100",
		Bio: "Passionate engineer building innovative web experiences. " +
			"Loves photography, coffee, and open source.",
	}
}

// Posts returns the starter feed. The third post is authored by the current
// user, so a profile edit in a fresh session has a snapshot to resync.
func Posts() []model.Post {
	now := time.Now()
	sarah := model.User{ID: "u2", Name: "Sarah Nature", Avatar: "https://picsum.photos/seed/sarah/100/100"}
	tech := model.User{ID: "u3", Name: "Tech Daily", Avatar: "https://picsum.photos/seed/computer/100/100"}
	alex := CurrentUser()

	return []model.Post{
		{
			ID:        "p1",
			AuthorID:  sarah.ID,
			Author:    sarah,
			ImageURL:  "https://picsum.photos/seed/mountain/600/600",
			Caption:   "Nothing beats a morning hike in the mist!",
			Tags:      []string{"#nature", "#hiking", "#morning"},
			LikeCount: 42,
			CreatedAt: now.Add(-3 * time.Hour),
		},
		{
			ID:                 "p2",
			AuthorID:           tech.ID,
			Author:             tech,
			ImageURL:           "https://picsum.photos/seed/computer/600/600",
			Caption:            "Coding setup for the weekend. Dark mode always.",
			Tags:               []string{"#coding", "#setup", "#workspace"},
			LikeCount:          128,
			LikedByCurrentUser: true,
			CreatedAt:          now.Add(-90 * time.Minute),
		},
		{
			ID:        "p3",
			AuthorID:  alex.ID,
			Author:    alex,
			ImageURL:  "https://picsum.photos/seed/coffee/600/600",
			Caption:   "First coffee of the day is essential.",
			Tags:      []string{"#coffee", "#lifestyle"},
			LikeCount: 15,
			CreatedAt: now.Add(-30 * time.Minute),
		},
	}
}
