package model

import "time"

// MatchID uniquely identifies a match in the backend CMS
type MatchID int

// Match status values as mirrored from the backend. The client never
// transitions these locally; they are display state only.
const (
	MatchStatusProposed  = "proposed"
	MatchStatusScheduled = "scheduled"
	MatchStatusPlayed    = "played"
	MatchStatusConfirmed = "confirmed"
	MatchStatusCancelled = "cancelled"
)

// Match is a scheduled or played fixture between two teams
type Match struct {
	ID        MatchID      `json:"id"`
	Status    string       `json:"status"`
	Date      time.Time    `json:"date"`
	Location  string       `json:"location,omitempty"`
	HomeTeam  *Team        `json:"homeTeam,omitempty"`
	AwayTeam  *Team        `json:"awayTeam,omitempty"`
	Result    *MatchResult `json:"result,omitempty"`
	CreatedAt time.Time    `json:"createdAt,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt,omitempty"`
}

// MatchResult is the recorded outcome of a played match
type MatchResult struct {
	Sets         []SetScore `json:"sets"`
	WinnerTeamID int        `json:"winnerTeam,omitempty"`
}

// SetScore is the game count of a single set
type SetScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// RankingEntry is one row of the league standings
type RankingEntry struct {
	Position int    `json:"position"`
	TeamID   int    `json:"teamId"`
	TeamName string `json:"teamName"`
	Points   int    `json:"points"`
	Played   int    `json:"played"`
	Won      int    `json:"won"`
}
