// Package model contains domain models passed between layers.
package model

import "time"

// NeutralWinRate is reported for players with no recorded matches.
const NeutralWinRate = 0.5

// Player is one row of the player pool. Rating, statistics and rank fields
// are mutated only by the rating engine; every other component reads a
// value snapshot.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at"`

	Rating        int `json:"rating"`
	InitialRating int `json:"initial_rating"`
	PeakRating    int `json:"peak_rating"`

	TotalMatches int `json:"total_matches"`
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`

	// RecentForm holds the outcomes of the last few matches, oldest first.
	// The window length is a configuration point of the rating engine.
	RecentForm []bool `json:"recent_form,omitempty"`

	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	// Rank fields are derived from the whole pool after every match and
	// are never hand-edited.
	CurrentRank  int `json:"current_rank"`
	PreviousRank int `json:"previous_rank"`
	RankChange   int `json:"rank_change"`
}

// WinRate returns wins over total matches, or the neutral default for a
// player with no recorded matches.
func (p Player) WinRate() float64 {
	if p.TotalMatches == 0 {
		return NeutralWinRate
	}
	return float64(p.Wins) / float64(p.TotalMatches)
}

// RecentWinRate returns the win rate over the bounded recent-form window,
// or the neutral default when the window is empty.
func (p Player) RecentWinRate() float64 {
	if len(p.RecentForm) == 0 {
		return NeutralWinRate
	}
	wins := 0
	for _, won := range p.RecentForm {
		if won {
			wins++
		}
	}
	return float64(wins) / float64(len(p.RecentForm))
}

// Clone returns a deep copy so staged transaction writes cannot alias the
// committed row.
func (p Player) Clone() Player {
	c := p
	if p.RecentForm != nil {
		c.RecentForm = make([]bool, len(p.RecentForm))
		copy(c.RecentForm, p.RecentForm)
	}
	return c
}
