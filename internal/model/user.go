package model

import "time"

// UserID uniquely identifies a user in the backend CMS
type UserID int

// UserProfile is the authenticated user's denormalized view.
//
// Two fidelity levels exist: the basic projection (identity fields only,
// returned by the login response) and the full projection (nested relations
// populated, fetched separately from the profile endpoint). Nested fields are
// pointers/slices so a basic profile is simply one with no relations set;
// consumers must tolerate partially-populated profiles.
type UserProfile struct {
	ID        UserID `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed,omitempty"`
	Blocked   bool   `json:"blocked,omitempty"`

	Category       *Category       `json:"category,omitempty"`
	Stats          *PlayerStats    `json:"playerStats,omitempty"`
	Teams          []Team          `json:"teams,omitempty"`
	ProfilePicture *Media          `json:"profilePicture,omitempty"`
	Plan           *MembershipPlan `json:"plan,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Basic returns the identity-only projection of the profile, dropping any
// nested relations. This is what gets persisted at sign-in time, before the
// full profile has been fetched.
func (u *UserProfile) Basic() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Confirmed: u.Confirmed,
		Blocked:   u.Blocked,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// IsFull reports whether any nested relation is populated, i.e. whether this
// is the full projection rather than the basic login-time one.
func (u *UserProfile) IsFull() bool {
	return u.Category != nil ||
		u.Stats != nil ||
		len(u.Teams) > 0 ||
		u.ProfilePicture != nil ||
		u.Plan != nil
}

// Category is the skill bracket a player competes in
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PlayerStats holds a player's aggregate match statistics
type PlayerStats struct {
	ID            int `json:"id"`
	MatchesPlayed int `json:"matchesPlayed"`
	MatchesWon    int `json:"matchesWon"`
	SetsWon       int `json:"setsWon"`
	Points        int `json:"points"`
}

// Team is a pair of players competing together
type Team struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Players []string `json:"players,omitempty"`
}

// Media is an uploaded asset reference (profile pictures)
type Media struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// MembershipPlan is the user's subscription tier.
// Price fields exist in the backend but are not used by this client.
type MembershipPlan struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
