package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rakane/SocialMediaBackEnd/internal/auth"
	"github.com/rakane/SocialMediaBackEnd/internal/dto"
	"github.com/rakane/SocialMediaBackEnd/internal/httperr"
	"github.com/rakane/SocialMediaBackEnd/internal/repo/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() (*UserService, *repotest.MemUserRepo, *auth.Issuer) {
	users := repotest.NewMemUserRepo()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	return NewUserService(users, issuer, nil), users, issuer
}

func registerReq(handle, email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:      "User " + handle,
		Handle:    handle,
		Email:     email,
		Password:  "secret99",
		Password2: "secret99",
	}
}

func TestRegister_HashesCredential(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, registerReq("ada", "ada@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, "secret99", u.PasswordHash)
	assert.False(t, strings.Contains(u.PasswordHash, "secret99"))

	stored, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret99")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("ada", "shared@example.com"))
	require.NoError(t, err)

	// Same email, different handle: only the email collides.
	_, err = svc.Register(ctx, registerReq("grace", "shared@example.com"))
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, httperr.KindConflict, he.Kind)
	assert.Equal(t, "Email already exists", he.Details["email"])
}

func TestRegister_DuplicateHandle(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("ada", "ada@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("ada", "other@example.com"))
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, httperr.KindConflict, he.Kind)
	assert.Equal(t, "Handle already exists", he.Details["handle"])
}

func TestLogin(t *testing.T) {
	svc, _, issuer := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("ada", "ada@example.com"))
	require.NoError(t, err)

	token, err := svc.Login(ctx, "ada@example.com", "secret99")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, "Bearer "))

	id, err := issuer.Verify(strings.TrimPrefix(token, "Bearer "))
	require.NoError(t, err)
	assert.Equal(t, "ada", id.Handle)
	assert.Equal(t, "User ada", id.Name)

	_, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "Password incorrect", he.Details["password"])

	_, err = svc.Login(ctx, "nobody@example.com", "secret99")
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "User not found", he.Details["email"])
}

func TestUpdateProfile_OnlyTruthyFieldsApplied(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	req := registerReq("ada", "ada@example.com")
	req.Bio = "mathematician"
	req.Location = "London"
	u, err := svc.Register(ctx, req)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{
		Name:    "Augusta Ada King",
		Website: "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Augusta Ada King", updated.Name)
	assert.Equal(t, "https://example.com", updated.Website)
	// Absent fields stay as they were; the operation cannot clear them.
	assert.Equal(t, "mathematician", updated.Bio)
	assert.Equal(t, "London", updated.Location)
}

func TestFollow_BothDirectionsAndIdempotent(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	ada, err := svc.Register(ctx, registerReq("ada", "ada@example.com"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, registerReq("grace", "grace@example.com"))
	require.NoError(t, err)

	u, err := svc.Follow(ctx, ada.ID, "grace")
	require.NoError(t, err)
	require.Len(t, u.Following, 1)
	assert.Equal(t, "grace", u.Following[0].Handle)
	assert.Equal(t, "User grace", u.Following[0].Name)

	// Repeated follow changes nothing.
	u, err = svc.Follow(ctx, ada.ID, "grace")
	require.NoError(t, err)
	assert.Len(t, u.Following, 1)

	target, err := svc.ByHandle(ctx, "grace")
	require.NoError(t, err)
	require.Len(t, target.Followers, 1)
	assert.Equal(t, "ada", target.Followers[0].Handle)
}

func TestFollow_Self(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	ada, err := svc.Register(ctx, registerReq("ada", "ada@example.com"))
	require.NoError(t, err)

	_, err = svc.Follow(ctx, ada.ID, "ada")
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, httperr.KindValidation, he.Kind)
}

func TestFollow_UnknownTarget(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	ada, err := svc.Register(ctx, registerReq("ada", "ada@example.com"))
	require.NoError(t, err)

	_, err = svc.Follow(ctx, ada.ID, "ghost")
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, httperr.KindNotFound, he.Kind)
}

func TestUnfollow_NeverFollowedIsNoop(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	ada, err := svc.Register(ctx, registerReq("ada", "ada@example.com"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, registerReq("grace", "grace@example.com"))
	require.NoError(t, err)
	_, err = svc.Follow(ctx, ada.ID, "grace")
	require.NoError(t, err)

	// Unfollowing someone never followed must not touch the existing edge.
	u, err := svc.Unfollow(ctx, ada.ID, "ghost")
	require.NoError(t, err)
	require.Len(t, u.Following, 1)
	assert.Equal(t, "grace", u.Following[0].Handle)

	u, err = svc.Unfollow(ctx, ada.ID, "grace")
	require.NoError(t, err)
	assert.Empty(t, u.Following)
}

func TestFollow_SnapshotStaysStaleAfterRename(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	ada, err := svc.Register(ctx, registerReq("ada", "ada@example.com"))
	require.NoError(t, err)
	grace, err := svc.Register(ctx, registerReq("grace", "grace@example.com"))
	require.NoError(t, err)

	_, err = svc.Follow(ctx, ada.ID, "grace")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, grace.ID, dto.UpdateProfileRequest{Name: "Rear Admiral Grace"})
	require.NoError(t, err)

	// The edge keeps the name captured at follow time.
	u, err := svc.Current(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, u.Following, 1)
	assert.Equal(t, "User grace", u.Following[0].Name)
}
