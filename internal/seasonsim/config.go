// Package seasonsim drives a simulated season against a running service:
// it seeds a player pool over the HTTP API, plays randomized matches through
// the selection and partitioning endpoints, and verifies pool invariants
// from the API's own reads.
package seasonsim

import (
	"time"
)

// Config holds the simulation parameters.
type Config struct {
	// BaseURL of the running service, e.g. http://localhost:9080.
	BaseURL string

	// NumPlayers to seed before the season starts.
	NumPlayers int

	// NumMatches to play.
	NumMatches int

	// Seed for the deterministic random source.
	Seed int64

	// Timeout per HTTP request.
	Timeout time.Duration

	// Verbose enables per-match logging.
	Verbose bool
}

// Stats accumulates the simulation run.
type Stats struct {
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	PlayersCreated  int
	MatchesPlayed   int
	MatchesRejected int
	Violations      int
}
