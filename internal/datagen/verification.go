package datagen

import (
	"fmt"
	"math"

	"github.com/okian/harmony/internal/domain/model"
	"github.com/okian/harmony/internal/domain/types"
)

const scoreTolerance = 1e-9

// verifyRanking checks the invariants every ranking response must hold:
// at most topN teams, non-increasing totals, three distinct members per
// team, and total equal to skill plus synergy.
func verifyRanking(r types.TeamRanking, topN int) error {
	if len(r.Teams) > topN {
		return fmt.Errorf("%s: %d teams returned for top %d", r.Task, len(r.Teams), topN)
	}
	for i, t := range r.Teams {
		if i > 0 && t.TotalScore > r.Teams[i-1].TotalScore {
			return fmt.Errorf("%s: team %d scores %.3f above team %d (%.3f)",
				r.Task, i+1, t.TotalScore, i, r.Teams[i-1].TotalScore)
		}
		if len(t.Members) != model.TeamSize {
			return fmt.Errorf("%s: team %d has %d members", r.Task, i+1, len(t.Members))
		}
		team := model.NewTeam(t.Members[0], t.Members[1], t.Members[2])
		for _, p := range team.Pairs() {
			if model.NormalizeKey(p[0]) == model.NormalizeKey(p[1]) {
				return fmt.Errorf("%s: team %d repeats %s", r.Task, i+1, p[1])
			}
		}
		if math.Abs(t.SkillScore+t.SynergyScore-t.TotalScore) > scoreTolerance {
			return fmt.Errorf("%s: team %d total %.3f != %.3f + %.3f",
				r.Task, i+1, t.TotalScore, t.SkillScore, t.SynergyScore)
		}
	}
	return nil
}
