package dto

import (
	"time"

	dom "github.com/rakane/SocialMediaBackEnd/internal/domain"
)

// CreatePostRequest is the JSON body for POST /posts/create-post. Media is
// an opaque reference to already-hosted content.
type CreatePostRequest struct {
	Text  string `json:"text"`
	Media string `json:"media"`
}

// CommentRequest is the JSON body for POST /posts/comment/:id.
type CommentRequest struct {
	Text string `json:"text"`
}

// LikeEntry is one (handle, name) snapshot in a post's likes list.
type LikeEntry struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// CommentEntry is one comment on a post.
type CommentEntry struct {
	ID        int64     `json:"id"`
	Handle    string    `json:"handle"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"date"`
}

// PostResponse is the JSON shape of a post. Likes and comments are ordered
// most recent first.
type PostResponse struct {
	ID        int64          `json:"id"`
	Handle    string         `json:"handle"`
	Name      string         `json:"name"`
	Text      string         `json:"text"`
	Media     string         `json:"media,omitempty"`
	Likes     []LikeEntry    `json:"likes"`
	Comments  []CommentEntry `json:"comments"`
	CreatedAt time.Time      `json:"date"`
}

// ListPostsResponse wraps a list of posts.
type ListPostsResponse struct {
	Items []PostResponse `json:"items"`
}

// PostToResponse converts a domain post to its JSON shape.
func PostToResponse(p dom.Post) PostResponse {
	likes := make([]LikeEntry, len(p.Likes))
	for i, l := range p.Likes {
		likes[i] = LikeEntry{Handle: l.Handle, Name: l.Name}
	}
	comments := make([]CommentEntry, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = CommentEntry{ID: c.ID, Handle: c.Handle, Name: c.Name, Text: c.Text, CreatedAt: c.CreatedAt}
	}
	return PostResponse{
		ID:        p.ID,
		Handle:    p.Handle,
		Name:      p.Name,
		Text:      p.Text,
		Media:     p.Media,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}

// PostsToResponses converts a list of domain posts.
func PostsToResponses(list []dom.Post) []PostResponse {
	out := make([]PostResponse, len(list))
	for i := range list {
		out[i] = PostToResponse(list[i])
	}
	return out
}
