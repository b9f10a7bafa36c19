// Package scoring ranks candidate teams and solo performers for a task.
package scoring

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/okian/harmony/internal/domain/dataset"
	"github.com/okian/harmony/internal/domain/model"
)

// Option applies a configuration option to the TeamScorer.
type Option func(*TeamScorer)

// WithMaxCandidates bounds the candidate pool; 0 leaves it unbounded.
func WithMaxCandidates(n int) Option {
	return func(s *TeamScorer) {
		if n >= 0 {
			s.maxCandidates = n
		}
	}
}

// Source is the read-only data the scorer ranks from. *dataset.Snapshot
// satisfies it.
type Source interface {
	Candidates(task string) []dataset.Candidate
	Synergy(a, b string) float64
}

// TeamScore is one ranked team.
type TeamScore struct {
	Team         model.Team
	SkillScore   float64
	SynergyScore float64
	TotalScore   float64
	Explanation  string
}

// SoloScore is one ranked individual.
type SoloScore struct {
	Employee string
	Score    float64
}

// Scorer ranks teams and individuals for a task.
type Scorer interface {
	// RankTeams returns the best topN teams of three, total score descending.
	RankTeams(ctx context.Context, task string, topN int) ([]TeamScore, error)
	// BestSolo returns the n highest match scores for the task.
	BestSolo(ctx context.Context, task string, n int) ([]SoloScore, error)
}

// TeamScorer enumerates every team of three from a task's candidate pool.
// Cost grows as C(n,3), so it is meant for pools of a few dozen employees.
type TeamScorer struct {
	src           Source
	maxCandidates int
}

// NewTeamScorer creates a scorer over src.
func NewTeamScorer(src Source, opts ...Option) *TeamScorer {
	s := &TeamScorer{src: src}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CombinationCount returns C(n, 3), the number of teams a pool of n yields.
func CombinationCount(n int) int {
	if n < model.TeamSize {
		return 0
	}
	return n * (n - 1) * (n - 2) / 6
}

// RankTeams scores all 3-combinations of the task's candidates. Ties keep
// enumeration order. Fewer than three candidates yields
// ErrInsufficientCandidates rather than an empty result.
func (s *TeamScorer) RankTeams(ctx context.Context, task string, topN int) ([]TeamScore, error) {
	if topN < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}

	pool := s.src.Candidates(task)
	if len(pool) < model.TeamSize {
		return nil, fmt.Errorf("task %q has %d matching employees: %w", task, len(pool), ErrInsufficientCandidates)
	}
	if s.maxCandidates > 0 && len(pool) > s.maxCandidates {
		return nil, fmt.Errorf("task %q has %d matching employees, limit %d: %w",
			task, len(pool), s.maxCandidates, ErrCandidatePoolTooLarge)
	}

	results := make([]TeamScore, 0, CombinationCount(len(pool)))
	for i := 0; i < len(pool)-2; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("rank teams: %w", err)
		}
		for j := i + 1; j < len(pool)-1; j++ {
			ab := s.src.Synergy(pool[i].Name, pool[j].Name)
			for k := j + 1; k < len(pool); k++ {
				skill := pool[i].Score + pool[j].Score + pool[k].Score
				synergy := ab +
					s.src.Synergy(pool[i].Name, pool[k].Name) +
					s.src.Synergy(pool[j].Name, pool[k].Name)
				results = append(results, newTeamScore(
					model.NewTeam(pool[i].Name, pool[j].Name, pool[k].Name), skill, synergy))
			}
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].TotalScore > results[b].TotalScore
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

func newTeamScore(team model.Team, skill, synergy float64) TeamScore {
	total := skill + synergy
	return TeamScore{
		Team:         team,
		SkillScore:   skill,
		SynergyScore: synergy,
		TotalScore:   total,
		Explanation:  fmt.Sprintf("Skill: %s, Synergy: %s → Total: %s", fmtScore(skill), fmtScore(synergy), fmtScore(total)),
	}
}

func fmtScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BestSolo ranks the task's candidates by match score. An unknown task
// yields an empty result.
func (s *TeamScorer) BestSolo(ctx context.Context, task string, n int) ([]SoloScore, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("best solo: %w", err)
	}

	pool := s.src.Candidates(task)
	out := make([]SoloScore, len(pool))
	for i, c := range pool {
		out[i] = SoloScore{Employee: c.Name, Score: c.Score}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
