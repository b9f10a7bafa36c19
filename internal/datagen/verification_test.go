package datagen

import (
	"testing"

	"github.com/okian/harmony/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func entry(total float64, members ...string) types.TeamEntry {
	return types.TeamEntry{Members: members, SkillScore: total, TotalScore: total}
}

func TestVerifyRanking(t *testing.T) {
	Convey("Given a ranking response", t, func() {
		r := types.TeamRanking{Task: "Data Entry", Teams: []types.TeamEntry{
			entry(27, "A", "B", "C"),
			entry(26, "A", "B", "D"),
		}}

		Convey("When it holds every invariant", func() {
			Convey("Then it verifies", func() {
				So(verifyRanking(r, 2), ShouldBeNil)
			})
		})

		Convey("When more teams than requested are returned", func() {
			Convey("Then it fails", func() {
				So(verifyRanking(r, 1), ShouldNotBeNil)
			})
		})

		Convey("When totals increase", func() {
			r.Teams[1].TotalScore, r.Teams[1].SkillScore = 30, 30

			Convey("Then the order is reported", func() {
				So(verifyRanking(r, 2), ShouldNotBeNil)
			})
		})

		Convey("When a member repeats in a different case", func() {
			r.Teams[1].Members = []string{"A", "B", "a "}

			Convey("Then the repeat is reported", func() {
				err := verifyRanking(r, 2)
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "repeats")
			})
		})

		Convey("When the total does not add up", func() {
			r.Teams[0].SynergyScore = 1

			Convey("Then the sum is reported", func() {
				So(verifyRanking(r, 2), ShouldNotBeNil)
			})
		})
	})
}
