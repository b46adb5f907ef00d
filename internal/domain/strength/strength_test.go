package strength_test

import (
	"testing"

	"github.com/leduyquang2003/badminton-team-selector/internal/domain/model"
	"github.com/leduyquang2003/badminton-team-selector/internal/domain/strength"
	. "github.com/smartystreets/goconvey/convey"
)

func player(tier string, wins, losses int) model.Player {
	return model.Player{
		ID:           tier + "-player",
		Tier:         tier,
		Wins:         wins,
		Losses:       losses,
		TotalMatches: wins + losses,
	}
}

func TestModel_Rate(t *testing.T) {
	Convey("Given a strength model with default weights", t, func() {
		m := strength.New()

		Convey("When rating a pro with a neutral record", func() {
			p := player("pro", 0, 0)

			Convey("Then the score blends ordinal and scaled neutral form", func() {
				// 0.6*3.0 + 0.4*(0.5*3.0) = 2.4
				So(m.Rate(p), ShouldAlmostEqual, 2.4, 1e-9)
			})
		})

		Convey("When rating a beginner with a perfect record", func() {
			p := player("beginner", 5, 0)

			Convey("Then form lifts the score above the bare ordinal", func() {
				// 0.6*1.0 + 0.4*(1.0*3.0) = 1.8
				So(m.Rate(p), ShouldAlmostEqual, 1.8, 1e-9)
			})
		})

		Convey("When rating players of every tier with equal records", func() {
			beginner := m.Rate(player("beginner", 3, 3))
			intermediate := m.Rate(player("intermediate", 3, 3))
			advanced := m.Rate(player("advanced", 3, 3))
			pro := m.Rate(player("pro", 3, 3))

			Convey("Then scores respect the ladder order", func() {
				So(beginner, ShouldBeLessThan, intermediate)
				So(intermediate, ShouldBeLessThan, advanced)
				So(advanced, ShouldBeLessThan, pro)
			})
		})

		Convey("When rating a player with an unknown tier", func() {
			p := player("mystery", 2, 2)

			Convey("Then only the form component contributes", func() {
				So(m.Rate(p), ShouldAlmostEqual, 0.4*0.5*3.0, 1e-9)
			})
		})

		Convey("When the model is deterministic", func() {
			p := player("advanced", 7, 3)

			Convey("Then repeated calls agree", func() {
				So(m.Rate(p), ShouldEqual, m.Rate(p))
			})
		})
	})
}

func TestModel_RateTeam(t *testing.T) {
	Convey("Given a strength model with default weights", t, func() {
		m := strength.New()

		proPlayer := player("pro", 8, 2)
		beginnerPlayer := player("beginner", 2, 8)

		Convey("When rating a team in both member orders", func() {
			forward := m.RateTeam([]model.Player{proPlayer, beginnerPlayer})
			reversed := m.RateTeam([]model.Player{beginnerPlayer, proPlayer})

			Convey("Then the score is invariant under reordering", func() {
				So(forward, ShouldEqual, reversed)
			})
		})

		Convey("When rating a mixed team", func() {
			score := m.RateTeam([]model.Player{proPlayer, beginnerPlayer})

			Convey("Then the blend uses team-level averages", func() {
				// avg ordinal (3.0+1.0)/2 = 2.0; avg win rate (0.8+0.2)/2 = 0.5
				// 0.6*2.0 + 0.4*(0.5*3.0) = 1.8
				So(score, ShouldAlmostEqual, 1.8, 1e-9)
			})
		})

		Convey("When rating an empty team", func() {
			Convey("Then the defensive zero applies", func() {
				So(m.RateTeam(nil), ShouldEqual, 0)
			})
		})

		Convey("When comparing against the mean of member strengths", func() {
			teamScore := m.RateTeam([]model.Player{proPlayer, beginnerPlayer})
			meanOfMembers := (m.Rate(proPlayer) + m.Rate(beginnerPlayer)) / 2

			Convey("Then the two agree for a linear blend", func() {
				// With a linear blend the team-level recomputation matches
				// the mean; the contract is the team-level formula.
				So(teamScore, ShouldAlmostEqual, meanOfMembers, 1e-9)
			})
		})
	})
}

func TestModel_Options(t *testing.T) {
	Convey("Given a model with custom weights", t, func() {
		m := strength.New(strength.WithWeights(1.0, 0.0))

		Convey("When form is weighted zero", func() {
			strong := player("pro", 10, 0)
			weak := player("pro", 0, 10)

			Convey("Then only the tier ordinal matters", func() {
				So(m.Rate(strong), ShouldEqual, m.Rate(weak))
				So(m.Rate(strong), ShouldAlmostEqual, 3.0, 1e-9)
			})
		})
	})

	Convey("Given a model with a custom ladder", t, func() {
		ts := model.NewTierSet([]model.Tier{
			{Name: "casual", Ordinal: 1.0, DemotionThreshold: 0.3},
			{Name: "league", Ordinal: 5.0, DemotionThreshold: 0.5},
		})
		m := strength.New(strength.WithTierSet(ts))

		Convey("When rating against the custom scale", func() {
			p := player("league", 0, 0)

			Convey("Then the win rate is scaled to the new top ordinal", func() {
				// 0.6*5.0 + 0.4*(0.5*5.0) = 4.0
				So(m.Rate(p), ShouldAlmostEqual, 4.0, 1e-9)
			})
		})
	})
}
