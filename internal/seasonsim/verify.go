package seasonsim

import (
	"context"

	"github.com/leduyquang2003/badminton-team-selector/pkg/logger"
)

// verifyPool checks pool invariants from the API's own reads after the
// season: rank order must be consistent with descending rating, counters
// must reconcile, and peaks must never fall below the baseline.
func verifyPool(ctx context.Context, api *client, cfg *Config, stats *Stats, log logger.Logger) error {
	entries, err := api.leaderboard(ctx, cfg.NumPlayers)
	if err != nil {
		return err
	}

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Rank != prev.Rank+1 {
			stats.Violations++
			log.Error(ctx, "leaderboard ranks are not contiguous",
				logger.Int("rank", cur.Rank),
				logger.Int("previousRank", prev.Rank),
			)
		}
		if cur.Rating > prev.Rating {
			stats.Violations++
			log.Error(ctx, "leaderboard order inconsistent with rating",
				logger.String("playerID", cur.PlayerID),
				logger.Int("rating", cur.Rating),
				logger.Int("aboveRating", prev.Rating),
			)
		}
	}

	players, err := api.listPlayers(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		if p.Wins+p.Losses != p.TotalMatches {
			stats.Violations++
			log.Error(ctx, "win/loss counters do not reconcile",
				logger.String("playerID", p.ID),
				logger.Int("wins", p.Wins),
				logger.Int("losses", p.Losses),
				logger.Int("totalMatches", p.TotalMatches),
			)
		}
		if p.PeakRating < p.InitialRating {
			stats.Violations++
			log.Error(ctx, "peak rating below initial baseline",
				logger.String("playerID", p.ID),
				logger.Int("peak", p.PeakRating),
				logger.Int("initial", p.InitialRating),
			)
		}
		if p.LongestStreak < p.CurrentStreak {
			stats.Violations++
			log.Error(ctx, "longest streak below current streak",
				logger.String("playerID", p.ID),
			)
		}
	}

	log.Info(ctx, "pool verified",
		logger.Int("entries", len(entries)),
		logger.Int("violations", stats.Violations),
	)
	return nil
}
