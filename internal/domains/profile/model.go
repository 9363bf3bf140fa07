package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public face of a studio member. Posts and comments embed
// it by author id; cart and auth never touch it.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	Specialty string    `json:"specialty"`
	IsArtist  bool      `json:"is_artist"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins first and last name, tolerating either being empty.
func (p Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// PlaceholderName stands in for authors that no longer resolve. Content is
// attributed to the studio rather than dropped.
const PlaceholderName = "Equipe 99Tattoo"

// Placeholder returns the studio fallback profile.
func Placeholder() Profile {
	return Profile{
		ID:        uuid.Nil,
		FirstName: "Equipe",
		LastName:  "99Tattoo",
	}
}

// Filter narrows profile listings.
type Filter struct {
	ArtistsOnly bool   `json:"artists_only"`
	Search      string `json:"search,omitempty"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
}
