package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rakane/SocialMediaBackEnd/internal/auth"
	dom "github.com/rakane/SocialMediaBackEnd/internal/domain"
	"github.com/rakane/SocialMediaBackEnd/internal/dto"
	"github.com/rakane/SocialMediaBackEnd/internal/httperr"
	"github.com/rakane/SocialMediaBackEnd/internal/repo/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	users    *UserService
	posts    *PostService
	userRepo *repotest.MemUserRepo
}

func newFixture() fixture {
	userRepo := repotest.NewMemUserRepo()
	postRepo := repotest.NewMemPostRepo()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	return fixture{
		users:    NewUserService(userRepo, issuer, nil),
		posts:    NewPostService(postRepo, userRepo, nil),
		userRepo: userRepo,
	}
}

func (f fixture) register(t *testing.T, handle string) dom.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), registerReq(handle, handle+"@example.com"))
	require.NoError(t, err)
	return u
}

func TestCreatePost_AuthorSnapshot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.register(t, "ada")

	p, err := f.posts.Create(ctx, ada.ID, "first post", "")
	require.NoError(t, err)
	assert.Equal(t, "ada", p.Handle)
	assert.Equal(t, "User ada", p.Name)
	assert.Equal(t, "first post", p.Text)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)
}

func TestCreatePost_UnknownCaller(t *testing.T) {
	f := newFixture()
	_, err := f.posts.Create(context.Background(), 999, "text", "")
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, httperr.KindUnauthorized, he.Kind)
}

func TestGetPost_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.posts.Get(context.Background(), 12345)
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, httperr.KindNotFound, he.Kind)
	assert.Equal(t, "No post found with that id", he.Details["nopostfound"])
}

func TestLike_Idempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.register(t, "ada")

	p, err := f.posts.Create(ctx, ada.ID, "like me", "")
	require.NoError(t, err)

	liked, err := f.posts.Like(ctx, ada.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, liked.Likes, 1)
	assert.Equal(t, "ada", liked.Likes[0].Handle)

	_, err = f.posts.Like(ctx, ada.ID, p.ID)
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "User already liked this post", he.Details["alreadyliked"])

	// The likes list still holds the handle exactly once.
	got, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	count := 0
	for _, l := range got.Likes {
		if l.Handle == "ada" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestUnlike_AbsentIsExplicitError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.register(t, "ada")
	grace := f.register(t, "grace")

	p, err := f.posts.Create(ctx, ada.ID, "post", "")
	require.NoError(t, err)
	_, err = f.posts.Like(ctx, ada.ID, p.ID)
	require.NoError(t, err)

	// grace never liked it; ada's like must survive untouched.
	_, err = f.posts.Unlike(ctx, grace.ID, p.ID)
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "You haven't liked this post", he.Details["notliked"])

	got, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Likes, 1)
	assert.Equal(t, "ada", got.Likes[0].Handle)

	unliked, err := f.posts.Unlike(ctx, ada.ID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.register(t, "ada")
	f.register(t, "grace")

	p, err := f.posts.Create(ctx, ada.ID, "mine", "")
	require.NoError(t, err)

	err = f.posts.Delete(ctx, "grace", p.ID)
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, httperr.KindUnauthorized, he.Kind)
	assert.Equal(t, "User not authorized", he.Details["notauthorized"])

	require.NoError(t, f.posts.Delete(ctx, "ada", p.ID))

	_, err = f.posts.Get(ctx, p.ID)
	require.True(t, errors.As(err, &he))
	assert.Equal(t, httperr.KindNotFound, he.Kind)
}

func TestCommentAndUncomment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.register(t, "ada")
	grace := f.register(t, "grace")

	p, err := f.posts.Create(ctx, ada.ID, "discuss", "")
	require.NoError(t, err)

	withComment, err := f.posts.Comment(ctx, grace.ID, p.ID, "nice post")
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	c := withComment.Comments[0]
	assert.Equal(t, "grace", c.Handle)
	assert.Equal(t, "nice post", c.Text)
	assert.NotZero(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	// Newest comment first.
	withSecond, err := f.posts.Comment(ctx, ada.ID, p.ID, "thanks")
	require.NoError(t, err)
	require.Len(t, withSecond.Comments, 2)
	assert.Equal(t, "thanks", withSecond.Comments[0].Text)

	_, err = f.posts.Uncomment(ctx, p.ID, 99999)
	var he *httperr.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "Comment does not exist", he.Details["commentnotexists"])

	after, err := f.posts.Uncomment(ctx, p.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, after.Comments, 1)
	assert.Equal(t, "thanks", after.Comments[0].Text)
}

func TestFeed_SelfPlusFollowedOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.register(t, "ada")
	grace := f.register(t, "grace")
	linus := f.register(t, "linus")

	_, err := f.users.Follow(ctx, ada.ID, "grace")
	require.NoError(t, err)

	_, err = f.posts.Create(ctx, ada.ID, "by ada", "")
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, grace.ID, "by grace", "")
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, linus.ID, "by linus", "")
	require.NoError(t, err)

	feed, err := f.posts.Feed(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	for _, p := range feed {
		assert.Contains(t, []string{"ada", "grace"}, p.Handle)
	}
	// Newest first.
	assert.Equal(t, "by grace", feed[0].Text)
	assert.Equal(t, "by ada", feed[1].Text)

	// linus follows nobody: only his own post.
	feed, err = f.posts.Feed(ctx, "linus")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "by linus", feed[0].Text)
}

func TestCreatePost_UsesCurrentNameNotLoginClaims(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.register(t, "ada")

	_, err := f.users.UpdateProfile(ctx, ada.ID, dto.UpdateProfileRequest{Name: "Augusta Ada King"})
	require.NoError(t, err)

	p, err := f.posts.Create(ctx, ada.ID, "after rename", "")
	require.NoError(t, err)
	assert.Equal(t, "Augusta Ada King", p.Name)
}
