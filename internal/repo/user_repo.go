package repo

import (
	"context"

	dom "github.com/rakane/SocialMediaBackEnd/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence. Records returned here still carry the
// password hash; redaction happens at the DTO boundary.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	GetByHandle(ctx context.Context, handle string) (dom.User, error)
	UpdateProfile(ctx context.Context, id int64, patch dom.User) (dom.User, error)
	Follow(ctx context.Context, follower, followee dom.FollowEntry) error
	Unfollow(ctx context.Context, followerHandle, followeeHandle string) error
	Following(ctx context.Context, handle string) ([]dom.FollowEntry, error)
	Followers(ctx context.Context, handle string) ([]dom.FollowEntry, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

const userColumns = `id, handle, name, email, password_hash, bio, location, website,
	social_youtube, social_twitter, social_facebook, social_linkedin, social_instagram, created_at`

func scanUser(row interface{ Scan(...any) error }) (dom.User, error) {
	var u dom.User
	err := row.Scan(
		&u.ID, &u.Handle, &u.Name, &u.Email, &u.PasswordHash, &u.Bio, &u.Location, &u.Website,
		&u.Social.YouTube, &u.Social.Twitter, &u.Social.Facebook, &u.Social.LinkedIn, &u.Social.Instagram,
		&u.CreatedAt,
	)
	return u, err
}

// Create inserts a new user and returns it. Handle and email uniqueness is
// enforced by unique indexes; a violation surfaces as a pgconn error with
// code 23505.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (handle, name, email, password_hash, bio, location, website,
			social_youtube, social_twitter, social_facebook, social_linkedin, social_instagram)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		u.Handle, u.Name, u.Email, u.PasswordHash, u.Bio, u.Location, u.Website,
		u.Social.YouTube, u.Social.Twitter, u.Social.Facebook, u.Social.LinkedIn, u.Social.Instagram,
	))
}

// GetByID returns the user by primary key, without follow lists.
func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail returns the user by email, without follow lists.
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByHandle returns the user by handle with followers and following
// loaded.
func (r *PGUserRepo) GetByHandle(ctx context.Context, handle string) (dom.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE handle = $1`, handle))
	if err != nil {
		return dom.User{}, err
	}
	if u.Followers, err = r.Followers(ctx, handle); err != nil {
		return dom.User{}, err
	}
	if u.Following, err = r.Following(ctx, handle); err != nil {
		return dom.User{}, err
	}
	return u, nil
}

// UpdateProfile writes the patched profile fields and returns the updated
// record. The caller decides which fields changed; this is a full-field
// write of the mutable profile columns.
func (r *PGUserRepo) UpdateProfile(ctx context.Context, id int64, patch dom.User) (dom.User, error) {
	query := `
		UPDATE users SET name = $2, bio = $3, location = $4, website = $5,
			social_youtube = $6, social_twitter = $7, social_facebook = $8,
			social_linkedin = $9, social_instagram = $10
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, id,
		patch.Name, patch.Bio, patch.Location, patch.Website,
		patch.Social.YouTube, patch.Social.Twitter, patch.Social.Facebook,
		patch.Social.LinkedIn, patch.Social.Instagram,
	))
}

// Follow records a follow edge as a single row keyed by both handles, so the
// write is atomic and idempotent: a repeated follow changes nothing and a
// one-sided edge cannot exist.
func (r *PGUserRepo) Follow(ctx context.Context, follower, followee dom.FollowEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO follows (follower_handle, follower_name, followee_handle, followee_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (follower_handle, followee_handle) DO NOTHING`,
		follower.Handle, follower.Name, followee.Handle, followee.Name)
	return err
}

// Unfollow removes the edge if present. Removing an edge that was never
// created is a no-op.
func (r *PGUserRepo) Unfollow(ctx context.Context, followerHandle, followeeHandle string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM follows WHERE follower_handle = $1 AND followee_handle = $2`,
		followerHandle, followeeHandle)
	return err
}

// Following returns the (handle, name) snapshots this user follows.
func (r *PGUserRepo) Following(ctx context.Context, handle string) ([]dom.FollowEntry, error) {
	return r.followEntries(ctx, `
		SELECT followee_handle, followee_name FROM follows
		WHERE follower_handle = $1 ORDER BY created_at DESC`, handle)
}

// Followers returns the (handle, name) snapshots following this user.
func (r *PGUserRepo) Followers(ctx context.Context, handle string) ([]dom.FollowEntry, error) {
	return r.followEntries(ctx, `
		SELECT follower_handle, follower_name FROM follows
		WHERE followee_handle = $1 ORDER BY created_at DESC`, handle)
}

func (r *PGUserRepo) followEntries(ctx context.Context, query, handle string) ([]dom.FollowEntry, error) {
	rows, err := r.db.Query(ctx, query, handle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.FollowEntry
	for rows.Next() {
		var e dom.FollowEntry
		if err := rows.Scan(&e.Handle, &e.Name); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
