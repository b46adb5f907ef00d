package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/leduyquang2003/badminton-team-selector/internal/app"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func startedService(t *testing.T, opts ...app.Option) *app.Service {
	t.Helper()
	opts = append([]app.Option{
		app.WithRand(rand.New(rand.NewSource(1))),
		app.WithClock(func() time.Time { return time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC) }),
	}, opts...)
	svc := app.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	return svc
}

func mustCreate(svc *app.Service, name, tier string) model.Player {
	p, err := svc.CreatePlayer(context.Background(), name, tier)
	So(err, ShouldBeNil)
	return p
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()
		svc := app.New()

		Convey("When started twice", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then stats report the running state", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["ratingK"], ShouldEqual, 16)
				So(stats["poolSize"], ShouldEqual, 0)
			})

			Convey("And stopping is idempotent", func() {
				svc.Stop()
				svc.Stop()
				So(svc.GetStats()["started"], ShouldBeFalse)
			})
		})
	})
}

func TestService_CreatePlayer(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(t)

		Convey("When a player is created", func() {
			p, err := svc.CreatePlayer(ctx, "  Mai  ", "intermediate")

			Convey("Then the row carries the baseline and a rank", func() {
				So(err, ShouldBeNil)
				So(p.ID, ShouldNotBeBlank)
				So(p.Name, ShouldEqual, "Mai")
				So(p.Rating, ShouldEqual, 1200)
				So(p.PeakRating, ShouldEqual, 1200)
				So(p.TotalMatches, ShouldEqual, 0)
				So(p.CurrentRank, ShouldEqual, 1)
			})

			Convey("And the player is readable through the pool", func() {
				So(err, ShouldBeNil)
				got, gerr := svc.GetPlayer(ctx, p.ID)
				So(gerr, ShouldBeNil)
				So(got.Name, ShouldEqual, "Mai")
			})
		})

		Convey("When the name is blank", func() {
			_, err := svc.CreatePlayer(ctx, "   ", "intermediate")
			So(err, ShouldNotBeNil)
		})

		Convey("When the tier is unknown", func() {
			_, err := svc.CreatePlayer(ctx, "Mai", "legend")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown tier")
		})

		Convey("When an unknown player is fetched", func() {
			_, err := svc.GetPlayer(ctx, "ghost")
			So(errors.Is(err, model.ErrPlayerNotFound), ShouldBeTrue)
		})
	})
}

func TestService_SelectionAndPartition(t *testing.T) {
	Convey("Given a started service with a small pool", t, func() {
		ctx := context.Background()
		svc := startedService(t)
		p1 := mustCreate(svc, "An", "pro")
		p2 := mustCreate(svc, "Binh", "advanced")
		p3 := mustCreate(svc, "Chi", "intermediate")

		Convey("When four players are requested from three", func() {
			_, err := svc.SelectCandidates(ctx, 4)
			So(errors.Is(err, model.ErrInsufficientPlayers), ShouldBeTrue)
		})

		Convey("When a fourth player joins", func() {
			p4 := mustCreate(svc, "Dung", "beginner")

			Convey("And a full selection runs", func() {
				picked, err := svc.SelectCandidates(ctx, 4)
				So(err, ShouldBeNil)
				So(len(picked), ShouldEqual, 4)
			})

			Convey("And partitioning the four yields two disjoint teams", func() {
				pairing, err := svc.PartitionTeams(ctx, []string{p1.ID, p2.ID, p3.ID, p4.ID})
				So(err, ShouldBeNil)
				So(len(pairing.TeamA.Players), ShouldEqual, 2)
				So(len(pairing.TeamB.Players), ShouldEqual, 2)
				So(pairing.Gap, ShouldBeGreaterThanOrEqualTo, 0)

				ids := map[string]bool{}
				for _, id := range append(pairing.TeamA.IDs(), pairing.TeamB.IDs()...) {
					ids[id] = true
				}
				So(len(ids), ShouldEqual, 4)
			})
		})

		Convey("When partitioning references an unknown id", func() {
			_, err := svc.PartitionTeams(ctx, []string{p1.ID, p2.ID, p3.ID, "ghost"})
			So(errors.Is(err, model.ErrPlayerNotFound), ShouldBeTrue)
		})

		Convey("When partitioning with the wrong count", func() {
			_, err := svc.PartitionTeams(ctx, []string{p1.ID, p2.ID})
			So(errors.Is(err, model.ErrInsufficientPlayers), ShouldBeTrue)
		})
	})
}

func TestService_RecordMatch(t *testing.T) {
	Convey("Given a started service with four players", t, func() {
		ctx := context.Background()
		svc := startedService(t)
		a1 := mustCreate(svc, "An", "intermediate")
		a2 := mustCreate(svc, "Binh", "intermediate")
		b1 := mustCreate(svc, "Chi", "intermediate")
		b2 := mustCreate(svc, "Dung", "intermediate")

		outcome := model.MatchOutcome{
			MatchID: "m-1",
			TeamA:   [2]string{a1.ID, a2.ID},
			TeamB:   [2]string{b1.ID, b2.ID},
			ScoreA:  21,
			ScoreB:  18,
		}

		Convey("When the match is recorded", func() {
			res, err := svc.RecordMatch(ctx, outcome)

			Convey("Then ratings move by the fixed magnitude", func() {
				So(err, ShouldBeNil)
				So(res.MatchID, ShouldEqual, "m-1")
				winner, _ := svc.GetPlayer(ctx, a1.ID)
				loser, _ := svc.GetPlayer(ctx, b1.ID)
				So(winner.Rating, ShouldEqual, 1216)
				So(loser.Rating, ShouldEqual, 1184)
			})

			Convey("And replaying the same match id is refused", func() {
				So(err, ShouldBeNil)
				_, derr := svc.RecordMatch(ctx, outcome)
				So(errors.Is(derr, model.ErrDuplicateMatch), ShouldBeTrue)

				winner, _ := svc.GetPlayer(ctx, a1.ID)
				So(winner.Rating, ShouldEqual, 1216)
			})

			Convey("And the participants gained history", func() {
				So(err, ShouldBeNil)
				recs, herr := svc.PlayerHistory(ctx, a1.ID, 10)
				So(herr, ShouldBeNil)
				So(len(recs), ShouldEqual, 1)
				So(recs[0].Won, ShouldBeTrue)
			})
		})

		Convey("When the match id is left blank", func() {
			o := outcome
			o.MatchID = ""
			res, err := svc.RecordMatch(ctx, o)

			Convey("Then one is assigned", func() {
				So(err, ShouldBeNil)
				So(res.MatchID, ShouldNotBeBlank)
			})
		})

		Convey("When a participant does not exist", func() {
			o := outcome
			o.TeamB[1] = "ghost"
			_, err := svc.RecordMatch(ctx, o)

			Convey("Then the apply fails without burning the match id", func() {
				So(errors.Is(err, model.ErrPlayerNotFound), ShouldBeTrue)

				// The id stays retryable: the same submission fails the
				// same way, not as a duplicate.
				_, again := svc.RecordMatch(ctx, o)
				So(errors.Is(again, model.ErrPlayerNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Leaderboard(t *testing.T) {
	Convey("Given a pool with recorded results", t, func() {
		ctx := context.Background()
		svc := startedService(t)
		a1 := mustCreate(svc, "An", "intermediate")
		a2 := mustCreate(svc, "Binh", "intermediate")
		b1 := mustCreate(svc, "Chi", "intermediate")
		b2 := mustCreate(svc, "Dung", "intermediate")

		_, err := svc.RecordMatch(ctx, model.MatchOutcome{
			MatchID: "m-1",
			TeamA:   [2]string{a1.ID, a2.ID},
			TeamB:   [2]string{b1.ID, b2.ID},
			ScoreA:  21,
			ScoreB:  12,
		})
		So(err, ShouldBeNil)

		Convey("When the full leaderboard is read", func() {
			entries, lerr := svc.Leaderboard(ctx, 0)

			Convey("Then rows come back in rank order with stats attached", func() {
				So(lerr, ShouldBeNil)
				So(len(entries), ShouldEqual, 4)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[0].Rating, ShouldEqual, 1216)
				So(entries[0].Wins, ShouldEqual, 1)
				So(entries[0].WinRate, ShouldEqual, 1.0)
				So(entries[3].Rank, ShouldEqual, 4)
				So(entries[3].Rating, ShouldEqual, 1184)
				So(entries[0].Strength, ShouldBeGreaterThan, entries[3].Strength)
			})
		})

		Convey("When a limit applies", func() {
			entries, lerr := svc.Leaderboard(ctx, 2)

			Convey("Then only the top rows are returned", func() {
				So(lerr, ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Rank, ShouldEqual, 2)
			})
		})
	})
}

func TestService_NeedsReview(t *testing.T) {
	Convey("Given a service with a one-game review gate", t, func() {
		ctx := context.Background()
		svc := startedService(t, app.WithReviewMinGames(1))
		a1 := mustCreate(svc, "An", "pro")
		a2 := mustCreate(svc, "Binh", "pro")
		b1 := mustCreate(svc, "Chi", "pro")
		b2 := mustCreate(svc, "Dung", "pro")

		_, err := svc.RecordMatch(ctx, model.MatchOutcome{
			MatchID: "m-1",
			TeamA:   [2]string{a1.ID, a2.ID},
			TeamB:   [2]string{b1.ID, b2.ID},
			ScoreA:  21,
			ScoreB:  19,
		})
		So(err, ShouldBeNil)

		Convey("When the losing side is checked", func() {
			v, verr := svc.NeedsReview(ctx, b1.ID)

			Convey("Then the advisory flags the win rate below the pro threshold", func() {
				So(verr, ShouldBeNil)
				So(v.NeedsReview, ShouldBeTrue)
				So(v.Threshold, ShouldEqual, 0.50)
			})
		})

		Convey("When the winning side is checked", func() {
			v, verr := svc.NeedsReview(ctx, a1.ID)
			So(verr, ShouldBeNil)
			So(v.NeedsReview, ShouldBeFalse)
		})

		Convey("When an unknown player is checked", func() {
			_, verr := svc.NeedsReview(ctx, "ghost")
			So(errors.Is(verr, model.ErrPlayerNotFound), ShouldBeTrue)
		})
	})
}
