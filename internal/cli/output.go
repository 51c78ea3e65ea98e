package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.UserProfile:
		o.printProfile(v)
	case *model.Match:
		o.printMatch(v)
	case []model.Match:
		o.printMatches(v)
	case []model.RankingEntry:
		o.printRankings(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printProfile(p *model.UserProfile) {
	fmt.Fprintf(o.w, "User: %s (#%d)\n", p.Username, p.ID)
	fmt.Fprintf(o.w, "Email: %s\n", p.Email)
	if p.Category != nil {
		fmt.Fprintf(o.w, "Category: %s\n", p.Category.Name)
	}
	if p.Stats != nil {
		fmt.Fprintf(o.w, "Record: %d played, %d won, %d points\n",
			p.Stats.MatchesPlayed, p.Stats.MatchesWon, p.Stats.Points)
	}
	if len(p.Teams) > 0 {
		fmt.Fprintf(o.w, "Teams (%d):\n", len(p.Teams))
		for _, t := range p.Teams {
			fmt.Fprintf(o.w, "  - %s (#%d)\n", t.Name, t.ID)
		}
	}
	if p.Plan != nil {
		fmt.Fprintf(o.w, "Plan: %s\n", p.Plan.Name)
	}
}

func (o *Output) printMatch(m *model.Match) {
	fmt.Fprintf(o.w, "Match #%d [%s]\n", m.ID, m.Status)
	fmt.Fprintf(o.w, "Date: %s\n", m.Date.Format("2006-01-02 15:04"))
	if m.Location != "" {
		fmt.Fprintf(o.w, "Location: %s\n", m.Location)
	}
	if m.HomeTeam != nil && m.AwayTeam != nil {
		fmt.Fprintf(o.w, "Teams: %s vs %s\n", m.HomeTeam.Name, m.AwayTeam.Name)
	}
	if m.Result != nil {
		fmt.Fprint(o.w, "Sets:")
		for _, s := range m.Result.Sets {
			fmt.Fprintf(o.w, " %d-%d", s.Home, s.Away)
		}
		fmt.Fprintln(o.w)
	}
}

func (o *Output) printMatches(matches []model.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(o.w, "No matches")
		return
	}
	for i := range matches {
		if i > 0 {
			fmt.Fprintln(o.w)
		}
		o.printMatch(&matches[i])
	}
}

func (o *Output) printRankings(entries []model.RankingEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(o.w, "No standings")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(o.w, "%3d. %s - %d pts (%d played, %d won)\n",
			e.Position, e.TeamName, e.Points, e.Played, e.Won)
	}
}
