package model

import "time"

// Post is a user-authored text post from the `posts` table. The owning
// user id is immutable after creation; ownership checks compare it
// against the caller's identity.
type Post struct {
	ID          uint64    // posts.id
	UserID      uint64    // posts.user_id
	Title       string    // posts.title
	Content     string    // posts.content
	CreatedAt   time.Time // posts.created_at
	UpdatedAt   time.Time // posts.updated_at
	AuthorEmail string    // joined from users.email for feed responses
}
