package validation

import (
	"strings"
	"testing"

	"github.com/rakane/SocialMediaBackEnd/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:      "Ada Lovelace",
		Handle:    "ada",
		Email:     "ada@example.com",
		Password:  "secret99",
		Password2: "secret99",
	}
}

func TestRegister_Valid(t *testing.T) {
	req := validRegister()
	errs, ok := Register(&req)
	require.True(t, ok)
	assert.Empty(t, errs)
}

func TestRegister_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.RegisterRequest)
		field   string
		message string
	}{
		{"missing name", func(r *dto.RegisterRequest) { r.Name = "" }, "name", "Name field is required"},
		{"short name", func(r *dto.RegisterRequest) { r.Name = "A" }, "name", "Name must be between 2 and 30 characters"},
		{"long name", func(r *dto.RegisterRequest) { r.Name = strings.Repeat("a", 31) }, "name", "Name must be between 2 and 30 characters"},
		{"missing handle", func(r *dto.RegisterRequest) { r.Handle = "" }, "handle", "Handle field is required"},
		{"long handle", func(r *dto.RegisterRequest) { r.Handle = strings.Repeat("h", 31) }, "handle", "Handle must be between 1 and 30 characters"},
		{"missing email", func(r *dto.RegisterRequest) { r.Email = "" }, "email", "Email field is required"},
		{"bad email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }, "email", "Email is invalid"},
		{"missing password", func(r *dto.RegisterRequest) { r.Password = "" }, "password", "Password field is required"},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "abc"; r.Password2 = "abc" }, "password", "Password must be at least 6 characters"},
		{"missing confirm", func(r *dto.RegisterRequest) { r.Password2 = "" }, "password2", "Confirm password field is required"},
		{"mismatched confirm", func(r *dto.RegisterRequest) { r.Password2 = "different9" }, "password2", "Passwords must match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)
			errs, ok := Register(&req)
			assert.False(t, ok)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestRegister_NormalizesWhitespace(t *testing.T) {
	req := validRegister()
	req.Handle = "  ada  "
	_, ok := Register(&req)
	require.True(t, ok)
	assert.Equal(t, "ada", req.Handle)
}

func TestLogin(t *testing.T) {
	req := dto.LoginRequest{Email: "ada@example.com", Password: "secret99"}
	errs, ok := Login(&req)
	require.True(t, ok)
	assert.Empty(t, errs)

	req = dto.LoginRequest{}
	errs, ok = Login(&req)
	assert.False(t, ok)
	assert.Equal(t, "Email field is required", errs["email"])
	assert.Equal(t, "Password field is required", errs["password"])

	req = dto.LoginRequest{Email: "nope", Password: "x"}
	errs, ok = Login(&req)
	assert.False(t, ok)
	assert.Equal(t, "Email is invalid", errs["email"])
}

func TestPostText(t *testing.T) {
	_, ok := PostText("hello world")
	assert.True(t, ok)

	errs, ok := PostText("")
	assert.False(t, ok)
	assert.Equal(t, "Text field is required", errs["text"])

	errs, ok = PostText(strings.Repeat("x", 141))
	assert.False(t, ok)
	assert.Equal(t, "Post must be between 1 and 140 characters", errs["text"])

	_, ok = PostText(strings.Repeat("x", 140))
	assert.True(t, ok)
}

func TestFollow(t *testing.T) {
	req := dto.FollowRequest{Handle: "ada", Name: "Ada"}
	_, ok := Follow(&req)
	assert.True(t, ok)

	req = dto.FollowRequest{Name: "Ada"}
	errs, ok := Follow(&req)
	assert.False(t, ok)
	assert.Equal(t, "Handle field is required", errs["handle"])
}
