// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/leduyquang2003/badminton-team-selector/internal/adapters/repository"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/dedupe"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/partition"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/rating"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/review"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/selection"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/strength"
	"github.com/leduyquang2003/badminton-team-selector/pkg/logger"
)

// Service wires the engine components behind the operations the HTTP API
// consumes: player CRUD, fairness selection, team partitioning, match
// recording and the demotion advisory.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	model    *strength.Model
	policy   *selection.Policy
	splitter *partition.Partitioner
	engine   *rating.Engine
	advisor  *review.Advisor
	deduper  dedupe.Deduper

	// Configuration
	tiers          []model.Tier
	tierSet        *model.TierSet
	tierWeight     float64
	formWeight     float64
	ratingK        int
	minRating      int
	maxRating      int
	initialRating  int
	reviewMinGames int
	formWindow     int
	dedupeSize     int
	rng            *rand.Rand
	now            func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects the player record store. Defaults to the in-memory
// implementation.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRand injects the random source used for selection tie-breaks.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTiers sets the skill ladder, weakest first.
func WithTiers(tiers []model.Tier) Option {
	return func(s *Service) {
		if len(tiers) > 0 {
			s.tiers = tiers
		}
	}
}

// WithStrengthWeights sets the tier/form blend used for balancing.
func WithStrengthWeights(tierWeight, formWeight float64) Option {
	return func(s *Service) {
		if tierWeight >= 0 && formWeight >= 0 {
			s.tierWeight = tierWeight
			s.formWeight = formWeight
		}
	}
}

// WithRatingParams sets the fixed-K magnitude, clamp bounds and baseline.
func WithRatingParams(k, minRating, maxRating, initialRating int) Option {
	return func(s *Service) {
		if k > 0 && minRating < maxRating {
			s.ratingK = k
			s.minRating = minRating
			s.maxRating = maxRating
			s.initialRating = initialRating
		}
	}
}

// WithReviewMinGames sets the advisory's minimum sample size.
func WithReviewMinGames(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.reviewMinGames = n
		}
	}
}

// WithRecentFormWindow bounds the recent-form window on player rows.
func WithRecentFormWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.formWindow = n
		}
	}
}

// WithDedupeSize bounds the match-id idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		tiers:          model.DefaultTiers(),
		tierWeight:     0.6,
		formWeight:     0.4,
		ratingK:        16,
		minRating:      100,
		maxRating:      3000,
		initialRating:  1200,
		reviewMinGames: 10,
		formWindow:     10,
		dedupeSize:     50_000,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the engine components from the configured parameters.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting team selector service...")

	s.tierSet = model.NewTierSet(s.tiers)
	if s.store == nil {
		s.store = repository.NewMemStore(ctx)
		s.logger.Info(ctx, "using in-memory player store")
	}
	s.model = strength.New(
		strength.WithTierSet(s.tierSet),
		strength.WithWeights(s.tierWeight, s.formWeight),
	)
	policyOpts := []selection.Option{}
	if s.rng != nil {
		policyOpts = append(policyOpts, selection.WithRand(s.rng))
	}
	s.policy = selection.New(policyOpts...)
	s.splitter = partition.New(partition.WithModel(s.model))
	s.engine = rating.New(s.store,
		rating.WithK(s.ratingK),
		rating.WithRatingBounds(s.minRating, s.maxRating),
		rating.WithInitialRating(s.initialRating),
		rating.WithFormWindow(s.formWindow),
		rating.WithClock(s.now),
	)
	s.advisor = review.New(
		review.WithTierSet(s.tierSet),
		review.WithMinGames(s.reviewMinGames),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)

	s.started = true
	s.logger.Info(ctx, "team selector service started",
		logger.Int("ratingK", s.ratingK),
		logger.Int("initialRating", s.initialRating),
		logger.Int("tiers", len(s.tiers)),
	)

	return nil
}

// Stop shuts the service down. The in-memory components need no teardown;
// this exists for symmetry with Start and future store implementations.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "team selector service stopped")
	s.started = false
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"ratingK": s.ratingK,
	}

	if s.started {
		stats["poolSize"] = s.store.Count(context.Background())
		stats["trackedMatches"] = s.deduper.Size()
	}

	return stats
}
