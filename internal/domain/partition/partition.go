// Package partition implements the 2v2 team balancing search: given four
// candidates it returns the split with the smallest inter-team strength gap.
package partition

import (
	"fmt"
	"math"
	"sort"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/strength"
)

// Pairing is the result of one balancing search.
type Pairing struct {
	TeamA model.Team `json:"team_a"`
	TeamB model.Team `json:"team_b"`

	// Gap is the absolute strength difference of the chosen split.
	Gap float64 `json:"gap"`
}

// Option applies a configuration option to the Partitioner.
type Option func(*Partitioner)

// WithModel sets the strength model used to score candidates and teams.
func WithModel(m *strength.Model) Option {
	return func(p *Partitioner) {
		if m != nil {
			p.model = m
		}
	}
}

// Partitioner performs the bounded split search. It is pure: strengths are
// computed fresh from the input snapshot and nothing is cached or mutated.
type Partitioner struct {
	model *strength.Model
}

// New creates a Partitioner with a default strength model.
func New(opts ...Option) *Partitioner {
	p := &Partitioner{
		model: strength.New(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Split partitions exactly four players into two balanced teams.
//
// The search sorts candidates by strength descending (stable, so equal
// strengths keep their input order) and evaluates the three splits that pair
// the strongest player with each other candidate. Mirror splits are skipped:
// {A,B} vs {C,D} and {C,D} vs {A,B} are the same partition, so the three
// evaluated splits cover all distinct 2v2 partitions. The split with the
// smallest absolute strength gap wins; on a tie the first one evaluated is
// kept, deterministically.
func (p *Partitioner) Split(players []model.Player) (Pairing, error) {
	if len(players) != model.MatchPlayers {
		return Pairing{}, fmt.Errorf("%w: need exactly %d players, have %d",
			model.ErrInsufficientPlayers, model.MatchPlayers, len(players))
	}

	ranked := make([]model.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return p.model.Rate(ranked[i]) > p.model.Rate(ranked[j])
	})

	best := Pairing{Gap: math.Inf(1)}
	found := false
	for partner := 1; partner < len(ranked); partner++ {
		teamA, teamB := p.split(ranked, partner)
		gap := math.Abs(teamA.Strength - teamB.Strength)
		if gap < best.Gap {
			best = Pairing{TeamA: teamA, TeamB: teamB, Gap: gap}
			found = true
		}
	}

	if !found {
		// Defensive fallback: alternate assignment by sorted order. The
		// loop above always evaluates three splits, so this should never
		// trigger for valid input.
		teamA := p.team(ranked[0], ranked[2])
		teamB := p.team(ranked[1], ranked[3])
		best = Pairing{TeamA: teamA, TeamB: teamB, Gap: math.Abs(teamA.Strength - teamB.Strength)}
	}

	return best, nil
}

// split pairs the strongest player with ranked[partner] and the remaining
// two players with each other.
func (p *Partitioner) split(ranked []model.Player, partner int) (model.Team, model.Team) {
	var rest []model.Player
	for i := 1; i < len(ranked); i++ {
		if i != partner {
			rest = append(rest, ranked[i])
		}
	}
	return p.team(ranked[0], ranked[partner]), p.team(rest[0], rest[1])
}

func (p *Partitioner) team(a, b model.Player) model.Team {
	members := []model.Player{a, b}
	return model.Team{
		Players:  members,
		Strength: p.model.RateTeam(members),
		WinRate:  p.model.TeamWinRate(members),
	}
}
