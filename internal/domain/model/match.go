package model

import (
	"strings"
	"time"
)

// TeamSize is the number of players per side in a doubles match.
const TeamSize = 2

// MatchPlayers is the number of participants a doubles match requires.
const MatchPlayers = 2 * TeamSize

// Team is an ephemeral 2-player grouping produced by the partitioner for a
// single match. It is never persisted.
type Team struct {
	Players  []Player `json:"players"`
	Strength float64  `json:"strength"`
	WinRate  float64  `json:"win_rate"`
}

// IDs returns the member player ids in team order.
func (t Team) IDs() []string {
	ids := make([]string, len(t.Players))
	for i, p := range t.Players {
		ids[i] = p.ID
	}
	return ids
}

// MatchOutcome is the recorded result of one doubles match. It is consumed
// exactly once by the rating engine.
type MatchOutcome struct {
	MatchID  string    `json:"match_id"`
	TeamA    [2]string `json:"team_a"`
	TeamB    [2]string `json:"team_b"`
	ScoreA   int       `json:"score_a"`
	ScoreB   int       `json:"score_b"`
	PlayedAt time.Time `json:"played_at"`
}

// Validate checks that every player slot is filled with a distinct id and
// that the scores determine exactly one winner. A tie is not a valid
// terminal state.
func (o MatchOutcome) Validate() error {
	ids := []string{o.TeamA[0], o.TeamA[1], o.TeamB[0], o.TeamB[1]}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return ErrInvalidOutcome
		}
		if _, dup := seen[id]; dup {
			return ErrInvalidOutcome
		}
		seen[id] = struct{}{}
	}
	if o.ScoreA < 0 || o.ScoreB < 0 || o.ScoreA == o.ScoreB {
		return ErrInvalidOutcome
	}
	return nil
}

// AWon reports whether team A holds the higher score. Call only after
// Validate has ruled out a tie.
func (o MatchOutcome) AWon() bool {
	return o.ScoreA > o.ScoreB
}

// MatchRecord is one participant's append-only history entry for a single
// match: the only durable side effect of a rating update besides the player
// row itself.
type MatchRecord struct {
	MatchID      string    `json:"match_id"`
	PlayerID     string    `json:"player_id"`
	PartnerID    string    `json:"partner_id"`
	OpponentIDs  [2]string `json:"opponent_ids"`
	ScoreFor     int       `json:"score_for"`
	ScoreAgainst int       `json:"score_against"`
	Won          bool      `json:"won"`
	RatingBefore int       `json:"rating_before"`
	RatingAfter  int       `json:"rating_after"`
	RatingDelta  int       `json:"rating_delta"`
	PlayedAt     time.Time `json:"played_at"`
}
