package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/pkg/metrics"
)

// MemStore is the in-memory Store implementation.
//
// Players live in a map keyed by id plus an insertion-order index; that
// order is the stable tie-break for rank recomputation. One RWMutex guards
// everything: Update takes the write lock for its whole duration, which is
// the whole-pool serialization the rating engine relies on.
type MemStore struct {
	mu      sync.RWMutex
	players map[string]model.Player
	order   []string
	history map[string][]model.MatchRecord
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(_ context.Context) *MemStore {
	return &MemStore{
		players: make(map[string]model.Player),
		history: make(map[string][]model.MatchRecord),
	}
}

// Create inserts a new player row.
func (s *MemStore) Create(_ context.Context, p model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[p.ID]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, p.ID)
	}
	s.players[p.ID] = p.Clone()
	s.order = append(s.order, p.ID)
	metrics.UpdatePoolSize(len(s.order))
	return nil
}

// Get returns the player with the given id.
func (s *MemStore) Get(_ context.Context, id string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.Clone(), nil
}

// List returns a snapshot of every player in insertion order.
func (s *MemStore) List(_ context.Context) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Player, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.players[id].Clone())
	}
	return out, nil
}

// Count returns the number of players tracked in the pool.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// History returns a player's match records, most recent first.
func (s *MemStore) History(_ context.Context, playerID string, limit int) ([]model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.players[playerID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, playerID)
	}
	records := s.history[playerID]
	out := make([]model.MatchRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Update runs fn against a staged transaction under the write lock. Staged
// writes commit only when fn returns nil; any error leaves the store
// untouched.
func (s *MemStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("update aborted: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:  s,
		staged: make(map[string]model.Player),
	}
	if err := fn(tx); err != nil {
		return err
	}

	// Commit: all staged rows and history appends, or none.
	for id, p := range tx.staged {
		s.players[id] = p
	}
	for _, rec := range tx.appends {
		s.history[rec.PlayerID] = append(s.history[rec.PlayerID], rec)
	}
	return nil
}

// memTx stages writes for one Update call. It is only ever used while the
// store's write lock is held.
type memTx struct {
	store   *MemStore
	staged  map[string]model.Player
	appends []model.MatchRecord
}

func (tx *memTx) Get(id string) (model.Player, error) {
	if p, ok := tx.staged[id]; ok {
		return p.Clone(), nil
	}
	p, ok := tx.store.players[id]
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.Clone(), nil
}

func (tx *memTx) Save(p model.Player) {
	tx.staged[p.ID] = p.Clone()
}

func (tx *memTx) All() []model.Player {
	out := make([]model.Player, 0, len(tx.store.order))
	for _, id := range tx.store.order {
		if p, ok := tx.staged[id]; ok {
			out = append(out, p.Clone())
			continue
		}
		out = append(out, tx.store.players[id].Clone())
	}
	return out
}

func (tx *memTx) AppendHistory(rec model.MatchRecord) {
	tx.appends = append(tx.appends, rec)
}
