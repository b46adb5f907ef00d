package seasonsim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/pkg/logger"
)

// Badminton games go to 21; the loser gets a plausible lower score.
const winningScore = 21

var firstNames = []string{
	"An", "Binh", "Chi", "Dung", "Giang", "Hanh", "Khanh", "Linh",
	"Minh", "Ngoc", "Phuong", "Quang", "Thao", "Trung", "Tuan", "Vy",
}

// Run executes the complete season simulation.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("seasonsim")
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // simulation randomness, not security-sensitive

	log.Info(ctx, "starting season simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("players", cfg.NumPlayers),
		logger.Int("matches", cfg.NumMatches),
	)

	api := newClient(cfg.BaseURL, cfg.Timeout)

	if err := api.checkHealth(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	if err := seedPlayers(ctx, api, cfg, rng, stats); err != nil {
		return fmt.Errorf("seeding players failed: %w", err)
	}

	if err := playSeason(ctx, api, cfg, rng, stats, log); err != nil {
		return fmt.Errorf("season play failed: %w", err)
	}

	if err := verifyPool(ctx, api, cfg, stats, log); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "season simulation finished",
		logger.Int("playersCreated", stats.PlayersCreated),
		logger.Int("matchesPlayed", stats.MatchesPlayed),
		logger.Int("matchesRejected", stats.MatchesRejected),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()),
	)

	if stats.Violations > 0 {
		return fmt.Errorf("%d invariant violations detected", stats.Violations)
	}
	return nil
}

// seedPlayers registers the pool with names and tiers drawn from the rng.
func seedPlayers(ctx context.Context, api *client, cfg *Config, rng *rand.Rand, stats *Stats) error {
	tiers := model.DefaultTiers()
	for i := 0; i < cfg.NumPlayers; i++ {
		name := fmt.Sprintf("%s %d", firstNames[rng.Intn(len(firstNames))], i+1)
		tier := tiers[rng.Intn(len(tiers))].Name
		if _, err := api.createPlayer(ctx, name, tier); err != nil {
			return err
		}
		stats.PlayersCreated++
	}
	return nil
}

// playSeason rotates through selection, partitioning and match recording.
func playSeason(ctx context.Context, api *client, cfg *Config, rng *rand.Rand, stats *Stats, log logger.Logger) error {
	for i := 0; i < cfg.NumMatches; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		picked, err := api.selectCandidates(ctx, model.MatchPlayers)
		if err != nil {
			return err
		}
		ids := make([]string, len(picked))
		for j, p := range picked {
			ids[j] = p.ID
		}

		pairing, err := api.partitionTeams(ctx, ids)
		if err != nil {
			return err
		}

		loserScore := rng.Intn(winningScore - 1)
		body := map[string]any{
			"match_id": uuid.NewString(),
			"team_a":   pairing.TeamA.IDs(),
			"team_b":   pairing.TeamB.IDs(),
			"score_a":  winningScore,
			"score_b":  loserScore,
		}
		if rng.Intn(2) == 0 {
			body["score_a"], body["score_b"] = loserScore, winningScore
		}

		res, err := api.recordMatch(ctx, body)
		if err != nil {
			stats.MatchesRejected++
			log.Warn(ctx, "match rejected", logger.Error(err))
			continue
		}
		stats.MatchesPlayed++

		if cfg.Verbose {
			log.Info(ctx, "match recorded",
				logger.String("matchID", res.MatchID),
				logger.Float64("gap", pairing.Gap),
			)
		}
	}
	return nil
}
