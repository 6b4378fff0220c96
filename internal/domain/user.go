package domain

import "time"

// User is the domain entity for an account with its public profile.
// Не зависит от Gin, Postgres, Redis.
type User struct {
	ID           int64
	Handle       string
	Name         string
	Email        string
	PasswordHash string
	Bio          string
	Location     string
	Website      string
	Social       SocialLinks

	Followers []FollowEntry
	Following []FollowEntry

	CreatedAt time.Time
}

// SocialLinks holds optional links to external profiles.
type SocialLinks struct {
	YouTube   string
	Twitter   string
	Facebook  string
	LinkedIn  string
	Instagram string
}

// FollowEntry is the denormalized (handle, name) snapshot stored on a follow
// edge. The name is captured when the edge is created and does not track
// later renames.
type FollowEntry struct {
	Handle string
	Name   string
}
