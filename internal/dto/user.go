package dto

import (
	"time"

	dom "github.com/rakane/SocialMediaBackEnd/internal/domain"
)

// RegisterRequest is the JSON body for POST /users/register.
// Validation happens in internal/validation, not via binding tags, because
// the API contract is a field→message error map.
type RegisterRequest struct {
	Name      string      `json:"name"`
	Handle    string      `json:"handle"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Password2 string      `json:"password2"`
	Bio       string      `json:"bio"`
	Location  string      `json:"location"`
	Website   string      `json:"website"`
	Social    SocialLinks `json:"social"`
}

// LoginRequest is the JSON body for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the JSON body for POST /users/update. Only
// non-empty fields are applied; an empty field leaves the stored value
// untouched, so this endpoint cannot clear a field.
type UpdateProfileRequest struct {
	Name     string      `json:"name"`
	Bio      string      `json:"bio"`
	Location string      `json:"location"`
	Website  string      `json:"website"`
	Social   SocialLinks `json:"social"`
}

// FollowRequest is the JSON body for POST /users/follow and /users/unfollow.
type FollowRequest struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// SocialLinks mirrors domain.SocialLinks in JSON.
type SocialLinks struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// FollowEntry is one (handle, name) snapshot in a follower/following list.
type FollowEntry struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// UserResponse is the public shape of a user record. It never carries the
// password hash.
type UserResponse struct {
	ID        int64         `json:"id"`
	Handle    string        `json:"handle"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Bio       string        `json:"bio,omitempty"`
	Location  string        `json:"location,omitempty"`
	Website   string        `json:"website,omitempty"`
	Social    SocialLinks   `json:"social"`
	Followers []FollowEntry `json:"followers"`
	Following []FollowEntry `json:"following"`
	CreatedAt time.Time     `json:"date"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// UserToResponse converts a domain user to its public JSON shape.
func UserToResponse(u dom.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Handle:   u.Handle,
		Name:     u.Name,
		Email:    u.Email,
		Bio:      u.Bio,
		Location: u.Location,
		Website:  u.Website,
		Social: SocialLinks{
			YouTube:   u.Social.YouTube,
			Twitter:   u.Social.Twitter,
			Facebook:  u.Social.Facebook,
			LinkedIn:  u.Social.LinkedIn,
			Instagram: u.Social.Instagram,
		},
		Followers: followEntries(u.Followers),
		Following: followEntries(u.Following),
		CreatedAt: u.CreatedAt,
	}
}

func followEntries(list []dom.FollowEntry) []FollowEntry {
	out := make([]FollowEntry, len(list))
	for i, e := range list {
		out[i] = FollowEntry{Handle: e.Handle, Name: e.Name}
	}
	return out
}
