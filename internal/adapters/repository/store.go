// Package repository defines the player record store interface and errors.
package repository

import (
	"context"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
)

// Store provides read/write access to the player pool and match history.
//
// Implementations must make Update transactional: every staged write in one
// call commits together or not at all, and concurrent Update calls are
// serialized so rating read-modify-write sequences never interleave.
type Store interface {
	// Create inserts a new player row. Returns ErrAlreadyExists when the
	// id is taken.
	Create(ctx context.Context, p model.Player) error

	// Get returns the player with the given id.
	// Returns ErrNotFound if the player is unknown.
	Get(ctx context.Context, id string) (model.Player, error)

	// List returns a snapshot of every player in insertion order.
	List(ctx context.Context) ([]model.Player, error)

	// Count returns the number of players tracked in the pool.
	Count(ctx context.Context) int

	// History returns a player's match records, most recent first,
	// capped at limit when limit > 0.
	History(ctx context.Context, playerID string, limit int) ([]model.MatchRecord, error)

	// Update runs fn against a transaction. Writes staged through the Tx
	// commit only when fn returns nil.
	Update(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the mutation surface available inside one Update call. It reads
// through staged writes, so a Get after a Save observes the saved row.
type Tx interface {
	// Get returns a player, preferring staged writes over committed state.
	// Returns ErrNotFound if the player is unknown.
	Get(id string) (model.Player, error)

	// Save stages a player row for commit.
	Save(p model.Player)

	// All returns every player in insertion order, with staged writes
	// applied.
	All() []model.Player

	// AppendHistory stages a match record for commit.
	AppendHistory(rec model.MatchRecord)
}
