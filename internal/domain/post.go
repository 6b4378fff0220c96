package domain

import "time"

// Post is a feed entry. Handle and Name are the author snapshot captured at
// creation time.
type Post struct {
	ID     int64
	Handle string
	Name   string
	Text   string
	Media  string

	Likes    []Like
	Comments []Comment

	CreatedAt time.Time
}

// Like is one (handle, name) snapshot on a post. A handle appears at most
// once per post.
type Like struct {
	Handle string
	Name   string
}

// Comment is one comment on a post.
type Comment struct {
	ID        int64
	Handle    string
	Name      string
	Text      string
	CreatedAt time.Time
}
