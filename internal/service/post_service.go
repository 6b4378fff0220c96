package service

import (
	"context"
	"errors"

	"github.com/rakane/SocialMediaBackEnd/internal/cache"
	dom "github.com/rakane/SocialMediaBackEnd/internal/domain"
	"github.com/rakane/SocialMediaBackEnd/internal/httperr"
	"github.com/rakane/SocialMediaBackEnd/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// PostService handles posts, likes, comments and feed assembly.
// If c is nil, caching is disabled.
type PostService struct {
	posts repo.PostRepo
	users repo.UserRepo
	cache *cache.PostCache
	sf    singleflight.Group
}

// NewPostService returns a new PostService.
func NewPostService(posts repo.PostRepo, users repo.UserRepo, c *cache.PostCache) *PostService {
	return &PostService{posts: posts, users: users, cache: c}
}

// Create persists a post. The author snapshot is re-resolved from the store
// by the token subject id, so a rename between login and posting stamps the
// current name, not the claim from login time.
func (s *PostService) Create(ctx context.Context, callerID int64, text, media string) (dom.Post, error) {
	author, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, httperr.Unauthorized("notauthorized", "User not authorized")
		}
		return dom.Post{}, err
	}
	p, err := s.posts.Create(ctx, dom.Post{
		Handle: author.Handle,
		Name:   author.Name,
		Text:   text,
		Media:  media,
	})
	if err != nil {
		return dom.Post{}, err
	}
	s.invalidateAuthor(ctx, author.Handle)
	return p, nil
}

// Get returns a post by id.
func (s *PostService) Get(ctx context.Context, id int64) (dom.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, httperr.NotFound("nopostfound", "No post found with that id")
		}
		return dom.Post{}, err
	}
	return p, nil
}

// Delete removes a post. Only the recorded author handle may delete; the
// check is a direct comparison with the caller's handle.
func (s *PostService) Delete(ctx context.Context, callerHandle string, id int64) error {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return httperr.NotFound("postnotfound", "No post found")
		}
		return err
	}
	if p.Handle != callerHandle {
		return httperr.Unauthorized("notauthorized", "User not authorized")
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAuthor(ctx, p.Handle)
	return nil
}

// Like records a like for the caller. Liking twice is rejected; the likes
// list holds a handle at most once regardless.
func (s *PostService) Like(ctx context.Context, callerID, postID int64) (dom.Post, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, httperr.Unauthorized("notauthorized", "User not authorized")
		}
		return dom.Post{}, err
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return dom.Post{}, err
	}
	inserted, err := s.posts.Like(ctx, postID, dom.Like{Handle: caller.Handle, Name: caller.Name})
	if err != nil {
		return dom.Post{}, err
	}
	if !inserted {
		return dom.Post{}, httperr.Validation(map[string]string{"alreadyliked": "User already liked this post"})
	}
	s.invalidateAuthor(ctx, p.Handle)
	return s.Get(ctx, postID)
}

// Unlike removes the caller's like. An absent like is an explicit error, and
// nothing else is ever removed in that case.
func (s *PostService) Unlike(ctx context.Context, callerID, postID int64) (dom.Post, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, httperr.Unauthorized("notauthorized", "User not authorized")
		}
		return dom.Post{}, err
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return dom.Post{}, err
	}
	removed, err := s.posts.Unlike(ctx, postID, caller.Handle)
	if err != nil {
		return dom.Post{}, err
	}
	if !removed {
		return dom.Post{}, httperr.Validation(map[string]string{"notliked": "You haven't liked this post"})
	}
	s.invalidateAuthor(ctx, p.Handle)
	return s.Get(ctx, postID)
}

// Comment appends a comment with a generated id and server timestamp and
// returns the updated post.
func (s *PostService) Comment(ctx context.Context, callerID, postID int64, text string) (dom.Post, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, httperr.Unauthorized("notauthorized", "User not authorized")
		}
		return dom.Post{}, err
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return dom.Post{}, err
	}
	_, err = s.posts.AddComment(ctx, postID, dom.Comment{
		Handle: caller.Handle,
		Name:   caller.Name,
		Text:   text,
	})
	if err != nil {
		return dom.Post{}, err
	}
	s.invalidateAuthor(ctx, p.Handle)
	return s.Get(ctx, postID)
}

// Uncomment deletes a comment by id and returns the updated post. A missing
// comment id is a 404, never a removal of some other comment.
func (s *PostService) Uncomment(ctx context.Context, postID, commentID int64) (dom.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, httperr.NotFound("postnotfound", "No post found")
		}
		return dom.Post{}, err
	}
	removed, err := s.posts.RemoveComment(ctx, postID, commentID)
	if err != nil {
		return dom.Post{}, err
	}
	if !removed {
		return dom.Post{}, httperr.NotFound("commentnotexists", "Comment does not exist")
	}
	s.invalidateAuthor(ctx, p.Handle)
	return s.Get(ctx, postID)
}

// ByAuthor returns all posts by one author, newest first, through the cache.
func (s *PostService) ByAuthor(ctx context.Context, handle string) ([]dom.Post, error) {
	if s.cache == nil {
		return s.posts.ListByHandle(ctx, handle)
	}
	v, err, _ := s.sf.Do("author:"+handle, func() (interface{}, error) {
		if list, err := s.cache.GetAuthor(ctx, handle); err == nil && list != nil {
			return list, nil
		}
		list, err := s.posts.ListByHandle(ctx, handle)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetAuthor(ctx, handle, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Post), nil
}

// Feed returns posts authored by the viewer or anyone in the viewer's
// following list, newest first: the follow list is loaded first, then posts
// are fetched with one set-membership query.
func (s *PostService) Feed(ctx context.Context, viewerHandle string) ([]dom.Post, error) {
	if s.cache == nil {
		return s.loadFeed(ctx, viewerHandle)
	}
	v, err, _ := s.sf.Do("feed:"+viewerHandle, func() (interface{}, error) {
		if list, err := s.cache.GetFeed(ctx, viewerHandle); err == nil && list != nil {
			return list, nil
		}
		list, err := s.loadFeed(ctx, viewerHandle)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetFeed(ctx, viewerHandle, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Post), nil
}

func (s *PostService) loadFeed(ctx context.Context, viewerHandle string) ([]dom.Post, error) {
	following, err := s.users.Following(ctx, viewerHandle)
	if err != nil {
		return nil, err
	}
	handles := make([]string, 0, len(following)+1)
	handles = append(handles, viewerHandle)
	for _, f := range following {
		handles = append(handles, f.Handle)
	}
	return s.posts.ListByHandles(ctx, handles)
}

func (s *PostService) invalidateAuthor(ctx context.Context, handle string) {
	if s.cache != nil {
		_ = s.cache.InvalidateAuthor(ctx, handle)
	}
}
