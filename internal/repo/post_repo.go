package repo

import (
	"context"

	dom "github.com/rakane/SocialMediaBackEnd/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepo provides post persistence including likes and comments.
type PostRepo interface {
	Create(ctx context.Context, p dom.Post) (dom.Post, error)
	GetByID(ctx context.Context, id int64) (dom.Post, error)
	Delete(ctx context.Context, id int64) error
	Like(ctx context.Context, postID int64, like dom.Like) (bool, error)
	Unlike(ctx context.Context, postID int64, handle string) (bool, error)
	AddComment(ctx context.Context, postID int64, c dom.Comment) (dom.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID int64) (bool, error)
	ListByHandle(ctx context.Context, handle string) ([]dom.Post, error)
	ListByHandles(ctx context.Context, handles []string) ([]dom.Post, error)
}

// PGPostRepo implements PostRepo with Postgres.
type PGPostRepo struct {
	db *pgxpool.Pool
}

// NewPGPostRepo returns a new PGPostRepo.
func NewPGPostRepo(db *pgxpool.Pool) *PGPostRepo {
	return &PGPostRepo{db: db}
}

const postColumns = `id, handle, name, text, media, created_at`

func scanPost(row interface{ Scan(...any) error }) (dom.Post, error) {
	var p dom.Post
	err := row.Scan(&p.ID, &p.Handle, &p.Name, &p.Text, &p.Media, &p.CreatedAt)
	return p, err
}

// Create inserts a post with the author snapshot captured by the caller.
func (r *PGPostRepo) Create(ctx context.Context, p dom.Post) (dom.Post, error) {
	query := `
		INSERT INTO posts (handle, name, text, media)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + postColumns
	out, err := scanPost(r.db.QueryRow(ctx, query, p.Handle, p.Name, p.Text, p.Media))
	if err != nil {
		return dom.Post{}, err
	}
	out.Likes = []dom.Like{}
	out.Comments = []dom.Comment{}
	return out, nil
}

// GetByID returns the post with likes and comments loaded, most recent
// first.
func (r *PGPostRepo) GetByID(ctx context.Context, id int64) (dom.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return dom.Post{}, err
	}
	posts := []dom.Post{p}
	if err := r.attachLikesAndComments(ctx, posts); err != nil {
		return dom.Post{}, err
	}
	return posts[0], nil
}

// Delete removes the post; likes and comments go with it via cascade.
func (r *PGPostRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

// Like records a like. The (post_id, handle) primary key makes the write
// idempotent; the return value reports whether a row was actually inserted,
// so a double like is detectable even when two requests race.
func (r *PGPostRepo) Like(ctx context.Context, postID int64, like dom.Like) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO post_likes (post_id, handle, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, handle) DO NOTHING`,
		postID, like.Handle, like.Name)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Unlike removes the caller's like. Returns false when there was no like to
// remove; nothing else is ever touched.
func (r *PGPostRepo) Unlike(ctx context.Context, postID int64, handle string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND handle = $2`, postID, handle)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// AddComment appends a comment and returns it with its generated id and
// server timestamp.
func (r *PGPostRepo) AddComment(ctx context.Context, postID int64, c dom.Comment) (dom.Comment, error) {
	var out dom.Comment
	err := r.db.QueryRow(ctx, `
		INSERT INTO post_comments (post_id, handle, name, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, handle, name, text, created_at`,
		postID, c.Handle, c.Name, c.Text,
	).Scan(&out.ID, &out.Handle, &out.Name, &out.Text, &out.CreatedAt)
	return out, err
}

// RemoveComment deletes the comment by id. Returns false when no such
// comment exists on that post.
func (r *PGPostRepo) RemoveComment(ctx context.Context, postID, commentID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM post_comments WHERE post_id = $1 AND id = $2`, postID, commentID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListByHandle returns all posts by one author, newest first.
func (r *PGPostRepo) ListByHandle(ctx context.Context, handle string) ([]dom.Post, error) {
	return r.ListByHandles(ctx, []string{handle})
}

// ListByHandles returns all posts whose author is in the given set, newest
// first. This is the feed query.
func (r *PGPostRepo) ListByHandles(ctx context.Context, handles []string) ([]dom.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE handle = ANY($1) ORDER BY created_at DESC, id DESC`, handles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLikesAndComments(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLikesAndComments batch-loads likes and comments for the given posts
// with one query each.
func (r *PGPostRepo) attachLikesAndComments(ctx context.Context, posts []dom.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	index := make(map[int64]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].Likes = []dom.Like{}
		posts[i].Comments = []dom.Comment{}
	}

	likeRows, err := r.db.Query(ctx, `
		SELECT post_id, handle, name FROM post_likes
		WHERE post_id = ANY($1) ORDER BY created_at DESC, handle`, ids)
	if err != nil {
		return err
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var postID int64
		var l dom.Like
		if err := likeRows.Scan(&postID, &l.Handle, &l.Name); err != nil {
			return err
		}
		i := index[postID]
		posts[i].Likes = append(posts[i].Likes, l)
	}
	if err := likeRows.Err(); err != nil {
		return err
	}

	commentRows, err := r.db.Query(ctx, `
		SELECT post_id, id, handle, name, text, created_at FROM post_comments
		WHERE post_id = ANY($1) ORDER BY created_at DESC, id DESC`, ids)
	if err != nil {
		return err
	}
	defer commentRows.Close()
	for commentRows.Next() {
		var postID int64
		var c dom.Comment
		if err := commentRows.Scan(&postID, &c.ID, &c.Handle, &c.Name, &c.Text, &c.CreatedAt); err != nil {
			return err
		}
		i := index[postID]
		posts[i].Comments = append(posts[i].Comments, c)
	}
	return commentRows.Err()
}
