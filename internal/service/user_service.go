package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rakane/SocialMediaBackEnd/internal/auth"
	"github.com/rakane/SocialMediaBackEnd/internal/cache"
	dom "github.com/rakane/SocialMediaBackEnd/internal/domain"
	"github.com/rakane/SocialMediaBackEnd/internal/dto"
	"github.com/rakane/SocialMediaBackEnd/internal/httperr"
	"github.com/rakane/SocialMediaBackEnd/internal/repo"
	"github.com/rakane/SocialMediaBackEnd/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, login, profiles and the follow graph.
// If cache is nil, feed invalidation on follow changes is skipped.
type UserService struct {
	repo   repo.UserRepo
	issuer *auth.Issuer
	cache  *cache.PostCache
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo, issuer *auth.Issuer, c *cache.PostCache) *UserService {
	return &UserService{repo: r, issuer: issuer, cache: c}
}

// Register creates a user with a hashed credential. Email and handle
// uniqueness is pre-checked for per-field errors, and backstopped by the
// unique indexes: a concurrent registration that slips past the pre-check
// still fails with the same conflict payload instead of a duplicate row.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (dom.User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return dom.User{}, httperr.Conflict("email", "Email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}
	if _, err := s.repo.GetByHandle(ctx, req.Handle); err == nil {
		return dom.User{}, httperr.Conflict("handle", "Handle already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Handle:       req.Handle,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Bio:          req.Bio,
		Location:     req.Location,
		Website:      req.Website,
		Social: dom.SocialLinks{
			YouTube:   req.Social.YouTube,
			Twitter:   req.Social.Twitter,
			Facebook:  req.Social.Facebook,
			LinkedIn:  req.Social.LinkedIn,
			Instagram: req.Social.Instagram,
		},
	})
	if err != nil {
		if constraint, ok := utils.PGUniqueConstraint(err); ok {
			if strings.Contains(constraint, "email") {
				return dom.User{}, httperr.Conflict("email", "Email already exists")
			}
			return dom.User{}, httperr.Conflict("handle", "Handle already exists")
		}
		return dom.User{}, err
	}
	u.Followers = []dom.FollowEntry{}
	u.Following = []dom.FollowEntry{}
	return u, nil
}

// Login checks the credential against the stored hash and issues a signed
// bearer token carrying {id, name, handle}. The email lookup discloses
// existence; the password failure message is generic.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", httperr.Validation(map[string]string{"email": "User not found"})
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", httperr.Validation(map[string]string{"password": "Password incorrect"})
	}
	token, err := s.issuer.Sign(auth.Identity{ID: u.ID, Name: u.Name, Handle: u.Handle})
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}

// Current returns the caller's own record.
func (s *UserService) Current(ctx context.Context, handle string) (dom.User, error) {
	u, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, httperr.NotFound("nouser", "There is no user for that handle")
		}
		return dom.User{}, err
	}
	return u, nil
}

// ByHandle returns a public profile.
func (s *UserService) ByHandle(ctx context.Context, handle string) (dom.User, error) {
	u, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, httperr.NotFound("noprofile", "There is no profile for this user")
		}
		return dom.User{}, err
	}
	return u, nil
}

// UpdateProfile applies the non-empty fields of the request on top of the
// stored record. Empty fields are left untouched, so a field cannot be
// cleared through this operation.
func (s *UserService) UpdateProfile(ctx context.Context, callerID int64, req dto.UpdateProfileRequest) (dom.User, error) {
	existing, err := s.repo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, httperr.NotFound("nouser", "There is no user for that handle")
		}
		return dom.User{}, err
	}
	patch := existing
	if v := strings.TrimSpace(req.Name); v != "" {
		patch.Name = v
	}
	if v := strings.TrimSpace(req.Bio); v != "" {
		patch.Bio = v
	}
	if v := strings.TrimSpace(req.Location); v != "" {
		patch.Location = v
	}
	if v := strings.TrimSpace(req.Website); v != "" {
		patch.Website = v
	}
	if v := req.Social.YouTube; v != "" {
		patch.Social.YouTube = v
	}
	if v := req.Social.Twitter; v != "" {
		patch.Social.Twitter = v
	}
	if v := req.Social.Facebook; v != "" {
		patch.Social.Facebook = v
	}
	if v := req.Social.LinkedIn; v != "" {
		patch.Social.LinkedIn = v
	}
	if v := req.Social.Instagram; v != "" {
		patch.Social.Instagram = v
	}
	if _, err := s.repo.UpdateProfile(ctx, callerID, patch); err != nil {
		return dom.User{}, err
	}
	return s.repo.GetByHandle(ctx, existing.Handle)
}

// Follow creates the follow edge from the caller to the target. The caller
// is re-resolved by id so the edge carries a fresh name snapshot rather than
// possibly stale token claims; the target's name comes from its current
// record, not the request body.
func (s *UserService) Follow(ctx context.Context, callerID int64, targetHandle string) (dom.User, error) {
	caller, err := s.repo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, httperr.Unauthorized("notauthorized", "User not authorized")
		}
		return dom.User{}, err
	}
	if caller.Handle == targetHandle {
		return dom.User{}, httperr.Validation(map[string]string{"handle": "Cannot follow yourself"})
	}
	target, err := s.repo.GetByHandle(ctx, targetHandle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, httperr.NotFound("noprofile", "There is no profile for this user")
		}
		return dom.User{}, err
	}
	err = s.repo.Follow(ctx,
		dom.FollowEntry{Handle: caller.Handle, Name: caller.Name},
		dom.FollowEntry{Handle: target.Handle, Name: target.Name},
	)
	if err != nil {
		return dom.User{}, err
	}
	s.invalidateFeed(ctx, caller.Handle)
	return s.repo.GetByHandle(ctx, caller.Handle)
}

// Unfollow removes the follow edge if present. Unfollowing a handle that
// was never followed changes nothing and is not an error.
func (s *UserService) Unfollow(ctx context.Context, callerID int64, targetHandle string) (dom.User, error) {
	caller, err := s.repo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, httperr.Unauthorized("notauthorized", "User not authorized")
		}
		return dom.User{}, err
	}
	if err := s.repo.Unfollow(ctx, caller.Handle, targetHandle); err != nil {
		return dom.User{}, err
	}
	s.invalidateFeed(ctx, caller.Handle)
	return s.repo.GetByHandle(ctx, caller.Handle)
}

func (s *UserService) invalidateFeed(ctx context.Context, viewer string) {
	if s.cache != nil {
		_ = s.cache.InvalidateFeed(ctx, viewer)
	}
}
