package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/harmony/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTeamRankingJSON(t *testing.T) {
	Convey("Given a team ranking", t, func() {
		r := types.TeamRanking{
			RunID: "run-1",
			Task:  "Data Entry",
			TopN:  1,
			Teams: []types.TeamEntry{{
				Rank: 1, Team: "A, B, C", Members: []string{"A", "B", "C"},
				SkillScore: 24, SynergyScore: 3, TotalScore: 27,
			}},
		}

		Convey("When encoded", func() {
			b, err := json.Marshal(r)

			Convey("Then snake_case field names are used", func() {
				So(err, ShouldBeNil)
				s := string(b)
				So(s, ShouldContainSubstring, `"run_id":"run-1"`)
				So(s, ShouldContainSubstring, `"total_score":27`)
				So(s, ShouldContainSubstring, `"synergy_score":3`)
				So(s, ShouldContainSubstring, `"members":["A","B","C"]`)
			})
		})
	})
}
