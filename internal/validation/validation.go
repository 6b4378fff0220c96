// Package validation holds the pure input validators that run before any
// store call. Each validator normalizes its input and returns a
// field→message map plus a validity flag; the flag is true iff the map is
// empty.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rakane/SocialMediaBackEnd/internal/dto"
)

// Errors is a field→message map. The first failing check for a field wins.
type Errors map[string]string

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register validates a registration payload.
func Register(req *dto.RegisterRequest) (Errors, bool) {
	req.Name = strings.TrimSpace(req.Name)
	req.Handle = strings.TrimSpace(req.Handle)
	req.Email = strings.TrimSpace(req.Email)

	errs := Errors{}
	if !lengthBetween(req.Name, 2, 30) {
		errs["name"] = "Name must be between 2 and 30 characters"
	}
	if req.Name == "" {
		errs["name"] = "Name field is required"
	}
	if !lengthBetween(req.Handle, 1, 30) {
		errs["handle"] = "Handle must be between 1 and 30 characters"
	}
	if req.Handle == "" {
		errs["handle"] = "Handle field is required"
	}
	if !emailRe.MatchString(req.Email) {
		errs["email"] = "Email is invalid"
	}
	if req.Email == "" {
		errs["email"] = "Email field is required"
	}
	if !lengthBetween(req.Password, 6, 30) {
		errs["password"] = "Password must be at least 6 characters"
	}
	if req.Password == "" {
		errs["password"] = "Password field is required"
	}
	if req.Password2 == "" {
		errs["password2"] = "Confirm password field is required"
	} else if req.Password != req.Password2 {
		errs["password2"] = "Passwords must match"
	}
	return errs, len(errs) == 0
}

// Login validates a login payload.
func Login(req *dto.LoginRequest) (Errors, bool) {
	req.Email = strings.TrimSpace(req.Email)

	errs := Errors{}
	if !emailRe.MatchString(req.Email) {
		errs["email"] = "Email is invalid"
	}
	if req.Email == "" {
		errs["email"] = "Email field is required"
	}
	if req.Password == "" {
		errs["password"] = "Password field is required"
	}
	return errs, len(errs) == 0
}

// PostText validates the text of a post or a comment.
func PostText(text string) (Errors, bool) {
	errs := Errors{}
	if !lengthBetween(text, 1, 140) {
		errs["text"] = "Post must be between 1 and 140 characters"
	}
	if text == "" {
		errs["text"] = "Text field is required"
	}
	return errs, len(errs) == 0
}

// Follow validates a follow/unfollow payload.
func Follow(req *dto.FollowRequest) (Errors, bool) {
	req.Handle = strings.TrimSpace(req.Handle)
	req.Name = strings.TrimSpace(req.Name)

	errs := Errors{}
	if req.Handle == "" {
		errs["handle"] = "Handle field is required"
	}
	return errs, len(errs) == 0
}

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
