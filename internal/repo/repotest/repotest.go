// Package repotest provides in-memory UserRepo and PostRepo implementations
// for tests. They mirror the Postgres repos' observable behavior: missing
// rows surface as pgx.ErrNoRows, duplicate users as a 23505 pgconn error,
// likes and comments are ordered most recent first.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "github.com/rakane/SocialMediaBackEnd/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type followEdge struct {
	follower dom.FollowEntry
	followee dom.FollowEntry
	seq      int64
}

// MemUserRepo is an in-memory repo.UserRepo.
type MemUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	nextSeq int64
	users   map[int64]dom.User
	follows []followEdge
}

// NewMemUserRepo returns an empty MemUserRepo.
func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: map[int64]dom.User{}}
}

func (r *MemUserRepo) Create(_ context.Context, u dom.User) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
		if existing.Handle == u.Handle {
			return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_handle_key"}
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return u, nil
}

func (r *MemUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *MemUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *MemUserRepo) GetByHandle(ctx context.Context, handle string) (dom.User, error) {
	r.mu.Lock()
	var found *dom.User
	for _, u := range r.users {
		if u.Handle == handle {
			u := u
			found = &u
			break
		}
	}
	r.mu.Unlock()
	if found == nil {
		return dom.User{}, pgx.ErrNoRows
	}
	var err error
	if found.Followers, err = r.Followers(ctx, handle); err != nil {
		return dom.User{}, err
	}
	if found.Following, err = r.Following(ctx, handle); err != nil {
		return dom.User{}, err
	}
	return *found, nil
}

func (r *MemUserRepo) UpdateProfile(_ context.Context, id int64, patch dom.User) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	u.Name = patch.Name
	u.Bio = patch.Bio
	u.Location = patch.Location
	u.Website = patch.Website
	u.Social = patch.Social
	r.users[id] = u
	return u, nil
}

func (r *MemUserRepo) Follow(_ context.Context, follower, followee dom.FollowEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.follows {
		if e.follower.Handle == follower.Handle && e.followee.Handle == followee.Handle {
			return nil
		}
	}
	r.nextSeq++
	r.follows = append(r.follows, followEdge{follower: follower, followee: followee, seq: r.nextSeq})
	return nil
}

func (r *MemUserRepo) Unfollow(_ context.Context, followerHandle, followeeHandle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.follows {
		if e.follower.Handle == followerHandle && e.followee.Handle == followeeHandle {
			r.follows = append(r.follows[:i], r.follows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemUserRepo) Following(_ context.Context, handle string) ([]dom.FollowEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dom.FollowEntry
	for i := len(r.follows) - 1; i >= 0; i-- {
		if r.follows[i].follower.Handle == handle {
			out = append(out, r.follows[i].followee)
		}
	}
	return out, nil
}

func (r *MemUserRepo) Followers(_ context.Context, handle string) ([]dom.FollowEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dom.FollowEntry
	for i := len(r.follows) - 1; i >= 0; i-- {
		if r.follows[i].followee.Handle == handle {
			out = append(out, r.follows[i].follower)
		}
	}
	return out, nil
}

// MemPostRepo is an in-memory repo.PostRepo.
type MemPostRepo struct {
	mu            sync.Mutex
	nextID        int64
	nextCommentID int64
	posts         map[int64]dom.Post
	order         []int64 // insertion order, oldest first
}

// NewMemPostRepo returns an empty MemPostRepo.
func NewMemPostRepo() *MemPostRepo {
	return &MemPostRepo{posts: map[int64]dom.Post{}}
}

func (r *MemPostRepo) Create(_ context.Context, p dom.Post) (dom.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.Likes = []dom.Like{}
	p.Comments = []dom.Comment{}
	r.posts[p.ID] = p
	r.order = append(r.order, p.ID)
	return clonePost(p), nil
}

func (r *MemPostRepo) GetByID(_ context.Context, id int64) (dom.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return dom.Post{}, pgx.ErrNoRows
	}
	return clonePost(p), nil
}

func (r *MemPostRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemPostRepo) Like(_ context.Context, postID int64, like dom.Like) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return false, pgx.ErrNoRows
	}
	for _, l := range p.Likes {
		if l.Handle == like.Handle {
			return false, nil
		}
	}
	p.Likes = append([]dom.Like{like}, p.Likes...)
	r.posts[postID] = p
	return true, nil
}

func (r *MemPostRepo) Unlike(_ context.Context, postID int64, handle string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return false, pgx.ErrNoRows
	}
	for i, l := range p.Likes {
		if l.Handle == handle {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			r.posts[postID] = p
			return true, nil
		}
	}
	return false, nil
}

func (r *MemPostRepo) AddComment(_ context.Context, postID int64, c dom.Comment) (dom.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return dom.Comment{}, pgx.ErrNoRows
	}
	r.nextCommentID++
	c.ID = r.nextCommentID
	c.CreatedAt = time.Now()
	p.Comments = append([]dom.Comment{c}, p.Comments...)
	r.posts[postID] = p
	return c, nil
}

func (r *MemPostRepo) RemoveComment(_ context.Context, postID, commentID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return false, pgx.ErrNoRows
	}
	for i, c := range p.Comments {
		if c.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			r.posts[postID] = p
			return true, nil
		}
	}
	return false, nil
}

func (r *MemPostRepo) ListByHandle(ctx context.Context, handle string) ([]dom.Post, error) {
	return r.ListByHandles(ctx, []string{handle})
}

func (r *MemPostRepo) ListByHandles(_ context.Context, handles []string) ([]dom.Post, error) {
	set := map[string]bool{}
	for _, h := range handles {
		set[h] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dom.Post
	for _, id := range r.order {
		p := r.posts[id]
		if set[p.Handle] {
			out = append(out, clonePost(p))
		}
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func clonePost(p dom.Post) dom.Post {
	out := p
	out.Likes = append([]dom.Like{}, p.Likes...)
	out.Comments = append([]dom.Comment{}, p.Comments...)
	return out
}
