package rating_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leduyquang2003/badminton-team-selector/internal/adapters/repository"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

func newEngine(t *testing.T, opts ...rating.Option) (*rating.Engine, *repository.MemStore) {
	t.Helper()
	store := repository.NewMemStore(context.Background())
	opts = append([]rating.Option{rating.WithClock(func() time.Time { return fixedNow })}, opts...)
	return rating.New(store, opts...), store
}

func seed(t *testing.T, store *repository.MemStore, e *rating.Engine, ids ...string) {
	t.Helper()
	for _, id := range ids {
		p := e.NewPlayer(id, "Player "+id, "intermediate")
		if err := store.Create(context.Background(), p); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}
}

func outcome(matchID string) model.MatchOutcome {
	return model.MatchOutcome{
		MatchID: matchID,
		TeamA:   [2]string{"a1", "a2"},
		TeamB:   [2]string{"b1", "b2"},
		ScoreA:  21,
		ScoreB:  15,
	}
}

func TestEngine_Apply(t *testing.T) {
	Convey("Given four fresh players and a K=16 engine", t, func() {
		ctx := context.Background()
		engine, store := newEngine(t, rating.WithK(16))
		seed(t, store, engine, "a1", "a2", "b1", "b2")

		Convey("When team A wins 21-15", func() {
			res, err := engine.Apply(ctx, outcome("m-1"))

			Convey("Then winners gain K and losers lose K", func() {
				So(err, ShouldBeNil)
				So(res.WinnerIDs, ShouldResemble, [2]string{"a1", "a2"})

				a1, _ := store.Get(ctx, "a1")
				b1, _ := store.Get(ctx, "b1")
				So(a1.Rating, ShouldEqual, 1216)
				So(b1.Rating, ShouldEqual, 1184)
			})

			Convey("Then win/loss counters and match totals advance", func() {
				So(err, ShouldBeNil)
				a1, _ := store.Get(ctx, "a1")
				b2, _ := store.Get(ctx, "b2")
				So(a1.Wins, ShouldEqual, 1)
				So(a1.Losses, ShouldEqual, 0)
				So(a1.TotalMatches, ShouldEqual, 1)
				So(b2.Wins, ShouldEqual, 0)
				So(b2.Losses, ShouldEqual, 1)
				So(b2.TotalMatches, ShouldEqual, 1)
			})

			Convey("Then peak rating follows winners only", func() {
				So(err, ShouldBeNil)
				a1, _ := store.Get(ctx, "a1")
				b1, _ := store.Get(ctx, "b1")
				So(a1.PeakRating, ShouldEqual, 1216)
				So(b1.PeakRating, ShouldEqual, 1200)
			})

			Convey("Then recent form records the result", func() {
				So(err, ShouldBeNil)
				a1, _ := store.Get(ctx, "a1")
				b1, _ := store.Get(ctx, "b1")
				So(a1.RecentForm, ShouldResemble, []bool{true})
				So(b1.RecentForm, ShouldResemble, []bool{false})
			})

			Convey("Then the deltas report each participant's movement", func() {
				So(err, ShouldBeNil)
				So(len(res.Deltas), ShouldEqual, 4)
				byID := map[string]rating.Delta{}
				for _, d := range res.Deltas {
					byID[d.PlayerID] = d
				}
				So(byID["a2"].Delta, ShouldEqual, 16)
				So(byID["a2"].Won, ShouldBeTrue)
				So(byID["b1"].Delta, ShouldEqual, -16)
				So(byID["b1"].Won, ShouldBeFalse)
			})

			Convey("Then ranks cover the whole pool contiguously", func() {
				So(err, ShouldBeNil)
				// Winners tie at 1216 and losers at 1184; insertion order
				// breaks both ties.
				a1, _ := store.Get(ctx, "a1")
				a2, _ := store.Get(ctx, "a2")
				b1, _ := store.Get(ctx, "b1")
				b2, _ := store.Get(ctx, "b2")
				So(a1.CurrentRank, ShouldEqual, 1)
				So(a2.CurrentRank, ShouldEqual, 2)
				So(b1.CurrentRank, ShouldEqual, 3)
				So(b2.CurrentRank, ShouldEqual, 4)
			})

			Convey("Then every participant gains a history record", func() {
				So(err, ShouldBeNil)
				recs, herr := store.History(ctx, "a1", 0)
				So(herr, ShouldBeNil)
				So(len(recs), ShouldEqual, 1)
				So(recs[0].MatchID, ShouldEqual, "m-1")
				So(recs[0].PartnerID, ShouldEqual, "a2")
				So(recs[0].OpponentIDs, ShouldResemble, [2]string{"b1", "b2"})
				So(recs[0].ScoreFor, ShouldEqual, 21)
				So(recs[0].ScoreAgainst, ShouldEqual, 15)
				So(recs[0].Won, ShouldBeTrue)
				So(recs[0].RatingBefore, ShouldEqual, 1200)
				So(recs[0].RatingAfter, ShouldEqual, 1216)
				So(recs[0].PlayedAt, ShouldEqual, fixedNow)
			})
		})

		Convey("When team B holds the higher score", func() {
			o := outcome("m-2")
			o.ScoreA, o.ScoreB = 17, 21
			res, err := engine.Apply(ctx, o)

			Convey("Then team B is the winning side", func() {
				So(err, ShouldBeNil)
				So(res.WinnerIDs, ShouldResemble, [2]string{"b1", "b2"})
				b1, _ := store.Get(ctx, "b1")
				So(b1.Rating, ShouldEqual, 1216)
			})
		})

		Convey("When the outcome is a tie", func() {
			o := outcome("m-3")
			o.ScoreB = o.ScoreA
			_, err := engine.Apply(ctx, o)

			Convey("Then the invalid outcome error surfaces", func() {
				So(errors.Is(err, model.ErrInvalidOutcome), ShouldBeTrue)
			})
		})

		Convey("When a player appears on both teams", func() {
			o := outcome("m-4")
			o.TeamB[0] = "a1"
			_, err := engine.Apply(ctx, o)

			Convey("Then the invalid outcome error surfaces", func() {
				So(errors.Is(err, model.ErrInvalidOutcome), ShouldBeTrue)
			})
		})
	})
}

func TestEngine_ApplyAtomicity(t *testing.T) {
	Convey("Given a pool missing one participant", t, func() {
		ctx := context.Background()
		engine, store := newEngine(t)
		seed(t, store, engine, "a1", "a2", "b1")

		Convey("When a match referencing the unknown player is applied", func() {
			_, err := engine.Apply(ctx, outcome("m-5"))

			Convey("Then the player-not-found error surfaces", func() {
				So(errors.Is(err, model.ErrPlayerNotFound), ShouldBeTrue)
			})

			Convey("Then nothing was committed for the known players", func() {
				a1, _ := store.Get(ctx, "a1")
				So(a1.Rating, ShouldEqual, 1200)
				So(a1.TotalMatches, ShouldEqual, 0)
				recs, herr := store.History(ctx, "a1", 0)
				So(herr, ShouldBeNil)
				So(len(recs), ShouldEqual, 0)
			})
		})
	})
}

func TestEngine_RatingBounds(t *testing.T) {
	Convey("Given an engine with a tight clamp range", t, func() {
		ctx := context.Background()
		engine, store := newEngine(t, rating.WithK(16), rating.WithRatingBounds(1190, 1210))
		seed(t, store, engine, "a1", "a2", "b1", "b2")

		Convey("When a match is applied", func() {
			_, err := engine.Apply(ctx, outcome("m-6"))

			Convey("Then ratings never leave the configured range", func() {
				So(err, ShouldBeNil)
				a1, _ := store.Get(ctx, "a1")
				b1, _ := store.Get(ctx, "b1")
				So(a1.Rating, ShouldEqual, 1210)
				So(b1.Rating, ShouldEqual, 1190)
			})

			Convey("Then the delta reports the clamped movement", func() {
				So(err, ShouldBeNil)
				recs, _ := store.History(ctx, "a1", 0)
				So(recs[0].RatingDelta, ShouldEqual, 10)
			})
		})
	})
}

func TestEngine_Streaks(t *testing.T) {
	Convey("Given a pool playing three matches with a fixed winner pattern", t, func() {
		ctx := context.Background()
		engine, store := newEngine(t)
		seed(t, store, engine, "a1", "a2", "b1", "b2")

		win := func(id string) model.MatchOutcome {
			o := outcome(id)
			return o
		}
		loss := func(id string) model.MatchOutcome {
			o := outcome(id)
			o.ScoreA, o.ScoreB = 12, 21
			return o
		}

		Convey("When team A wins twice then loses", func() {
			for _, o := range []model.MatchOutcome{win("s-1"), win("s-2"), loss("s-3")} {
				_, err := engine.Apply(ctx, o)
				So(err, ShouldBeNil)
			}

			Convey("Then the loss resets the current streak but not the longest", func() {
				a1, _ := store.Get(ctx, "a1")
				So(a1.CurrentStreak, ShouldEqual, 0)
				So(a1.LongestStreak, ShouldEqual, 2)
				So(a1.RecentForm, ShouldResemble, []bool{true, true, false})
			})

			Convey("Then the losing side's streak counts its final win", func() {
				b1, _ := store.Get(ctx, "b1")
				So(b1.CurrentStreak, ShouldEqual, 1)
				So(b1.LongestStreak, ShouldEqual, 1)
			})
		})
	})

	Convey("Given an engine with a two-result form window", t, func() {
		ctx := context.Background()
		engine, store := newEngine(t, rating.WithFormWindow(2))
		seed(t, store, engine, "a1", "a2", "b1", "b2")

		Convey("When three matches are recorded", func() {
			for _, id := range []string{"w-1", "w-2", "w-3"} {
				_, err := engine.Apply(ctx, outcome(id))
				So(err, ShouldBeNil)
			}

			Convey("Then only the newest results stay in the window", func() {
				a1, _ := store.Get(ctx, "a1")
				So(len(a1.RecentForm), ShouldEqual, 2)
				So(a1.TotalMatches, ShouldEqual, 3)
			})
		})
	})
}

func TestEngine_RecomputeRanks(t *testing.T) {
	Convey("Given a pool whose order has shifted across matches", t, func() {
		ctx := context.Background()
		engine, store := newEngine(t)
		seed(t, store, engine, "a1", "a2", "b1", "b2")

		Convey("When the first match ranks the pool and the second flips it", func() {
			_, err := engine.Apply(ctx, outcome("r-1"))
			So(err, ShouldBeNil)

			flipped := outcome("r-2")
			flipped.ScoreA, flipped.ScoreB = 10, 21
			_, err = engine.Apply(ctx, flipped)
			So(err, ShouldBeNil)

			flipped2 := outcome("r-3")
			flipped2.ScoreA, flipped2.ScoreB = 10, 21
			_, err = engine.Apply(ctx, flipped2)
			So(err, ShouldBeNil)

			Convey("Then rank change tracks the previous standing", func() {
				// After r-3 the former winners sit at 1184 and the former
				// losers at 1216.
				b1, _ := store.Get(ctx, "b1")
				a1, _ := store.Get(ctx, "a1")
				So(b1.CurrentRank, ShouldEqual, 1)
				So(a1.CurrentRank, ShouldEqual, 3)
				So(a1.PreviousRank, ShouldEqual, 1)
				So(a1.RankChange, ShouldEqual, -2)
			})
		})

		Convey("When ranks are recomputed without a match", func() {
			err := engine.RecomputeRanks(ctx)

			Convey("Then every player holds a contiguous 1-based rank", func() {
				So(err, ShouldBeNil)
				players, _ := store.List(ctx)
				seen := map[int]bool{}
				for _, p := range players {
					seen[p.CurrentRank] = true
				}
				So(seen, ShouldResemble, map[int]bool{1: true, 2: true, 3: true, 4: true})
			})

			Convey("Then first-time ranking reports no movement", func() {
				So(err, ShouldBeNil)
				players, _ := store.List(ctx)
				for _, p := range players {
					So(p.RankChange, ShouldEqual, 0)
				}
			})
		})
	})
}

func TestEngine_NewPlayer(t *testing.T) {
	Convey("Given an engine with a custom baseline", t, func() {
		engine, _ := newEngine(t, rating.WithInitialRating(1500))

		Convey("When a player row is built", func() {
			p := engine.NewPlayer("id-1", "Sao La", "advanced")

			Convey("Then rating, baseline and peak start equal", func() {
				So(p.Rating, ShouldEqual, 1500)
				So(p.InitialRating, ShouldEqual, 1500)
				So(p.PeakRating, ShouldEqual, 1500)
				So(p.CreatedAt, ShouldEqual, fixedNow)
				So(p.TotalMatches, ShouldEqual, 0)
			})
		})
	})
}
