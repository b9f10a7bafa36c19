package datagen

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/harmony/internal/adapters/repository"
	"github.com/okian/harmony/internal/domain/dataset"
	"github.com/okian/harmony/internal/domain/model"
	"github.com/okian/harmony/internal/domain/scoring"
	"github.com/okian/harmony/pkg/logger"
)

var (
	firstNames  = []string{"Anurag", "Bea", "Chen", "Dara", "Elif", "Femi", "Gita", "Hugo", "Ines", "Jonas", "Kemal", "Lena", "Mateo", "Nia", "Omar", "Priya"}
	lastNames   = []string{"Rao", "Silva", "Tan", "Ueda", "Vos", "Wolfe", "Xu", "Young", "Zaman"}
	departments = []string{"Operations", "Engineering", "Design", "Finance", "Support"}
	roles       = []string{"Analyst", "Engineer", "Designer", "Coordinator", "Specialist"}
	taskNames   = []string{"Data Entry", "Market Research", "UI Redesign", "Budget Review", "Customer Onboarding", "Incident Triage", "Vendor Audit", "Release Planning"}
	taskSkills  = []string{"Accuracy", "Research", "Creativity", "Numeracy", "Communication", "Troubleshooting", "Compliance", "Planning"}
	priorities  = []string{"High", "Medium", "Low"}
	traitNames  = []string{"Communication", "Leadership", "Problem Solving", "Teamwork", "Adaptability"}
)

// generator carries the seeded randomness for one dataset.
type generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

func newGenerator(seed uint64) *generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &generator{src: src, rng: rand.New(src)}
}

// Generate writes a complete synthetic dataset to cfg.OutDir. The same seed
// always yields the same files. The two leaderboards are computed with the
// team scorer so they agree with live rankings.
func Generate(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.Employees < 1 || cfg.Tasks < 1 {
		return Summary{}, fmt.Errorf("%w: employees and tasks must be positive", ErrInvalidConfig)
	}
	if cfg.OutDir == "" {
		return Summary{}, fmt.Errorf("%w: output directory is empty", ErrInvalidConfig)
	}

	logger.Get().Info(ctx, "generating dataset",
		logger.String("outDir", cfg.OutDir),
		logger.Int("employees", cfg.Employees),
		logger.Int("tasks", cfg.Tasks),
	)

	g := newGenerator(cfg.Seed)
	names := employeeNames(cfg.Employees)
	tasks := taskList(cfg.Tasks)

	profiles, err := g.profiles(names)
	if err != nil {
		return Summary{}, err
	}
	taskTable := g.tasks(tasks)
	traits := g.traits(names)
	skills := g.skills(tasks, names)
	synergy := g.synergy(names)

	snap := dataset.New(dataset.Tables{Tasks: taskTable, Skills: skills, Synergy: synergy})
	topTeams, topSolo, err := recommendations(ctx, snap)
	if err != nil {
		return Summary{}, err
	}

	files := repository.DefaultFiles()
	out := map[string]dataset.Table{
		files.Profiles: profiles,
		files.Tasks:    taskTable,
		files.Traits:   traits,
		files.Skills:   skillTable(skills),
		files.Synergy:  synergyTable(synergy),
		files.TopTeams: topTeams,
		files.TopSolo:  topSolo,
	}

	summary := Summary{Dir: cfg.OutDir, Rows: make(map[string]int, len(out))}
	for name, table := range out {
		if err := writeTable(cfg.OutDir, name, table); err != nil {
			return Summary{}, err
		}
		summary.Rows[name] = table.Len()
	}

	logger.Get().Info(ctx, "dataset generated", logger.Any("rows", summary.Rows))
	return summary, nil
}

// employeeNames returns n unique display names.
func employeeNames(n int) []string {
	out := make([]string, n)
	combos := len(firstNames) * len(lastNames)
	for i := range out {
		name := firstNames[i%len(firstNames)] + " " + lastNames[(i/len(firstNames))%len(lastNames)]
		if i >= combos {
			name += " " + strconv.Itoa(i/combos+1)
		}
		out[i] = name
	}
	return out
}

// taskList returns n unique task names.
func taskList(n int) []string {
	out := make([]string, n)
	for i := range out {
		name := taskNames[i%len(taskNames)]
		if i >= len(taskNames) {
			name += " " + strconv.Itoa(i/len(taskNames)+1)
		}
		out[i] = name
	}
	return out
}

func (g *generator) pick(from []string) string {
	return from[g.rng.IntN(len(from))]
}

func (g *generator) profiles(names []string) (dataset.Table, error) {
	t := dataset.Table{Columns: []string{"Employee ID", "Name", "Department", "Role", "Experience (Years)"}}
	for _, name := range names {
		id, err := uuid.NewRandomFromReader(g.src)
		if err != nil {
			return dataset.Table{}, fmt.Errorf("employee id: %w", err)
		}
		t.Rows = append(t.Rows, []string{
			id.String(),
			name,
			g.pick(departments),
			g.pick(roles),
			strconv.Itoa(g.rng.IntN(maxExperience + 1)),
		})
	}
	return t, nil
}

func (g *generator) tasks(names []string) dataset.Table {
	t := dataset.Table{Columns: []string{repository.ColumnTaskName, "Required Skill", "Priority"}}
	for i, name := range names {
		t.Rows = append(t.Rows, []string{name, taskSkills[i%len(taskSkills)], g.pick(priorities)})
	}
	return t
}

func (g *generator) traits(names []string) dataset.Table {
	t := dataset.Table{Columns: append([]string{repository.ColumnEmployeeName}, traitNames...)}
	for _, name := range names {
		row := []string{name}
		for range traitNames {
			row = append(row, strconv.Itoa(1+g.rng.IntN(maxTraitScore)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// matchScore draws a 1..10 score skewed towards the middle, with rare
// standouts at both ends.
func (g *generator) matchScore() float64 {
	switch g.rng.IntN(8) {
	case 0:
		return float64(9 + g.rng.IntN(2)) // elite
	case 1:
		return float64(1 + g.rng.IntN(2)) // weak
	case 2, 3:
		return float64(7 + g.rng.IntN(2)) // strong
	default:
		return float64(3 + g.rng.IntN(4)) // average
	}
}

func (g *generator) skills(tasks, names []string) []model.SkillMatch {
	var out []model.SkillMatch
	for _, task := range tasks {
		for _, name := range names {
			if g.rng.Float64() < skillCoverage {
				out = append(out, model.SkillMatch{Task: task, Employee: name, Score: g.matchScore()})
			}
		}
	}
	return out
}

// synergy writes each sampled pair once, in a random order.
func (g *generator) synergy(names []string) []model.SynergyPair {
	var out []model.SynergyPair
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if g.rng.Float64() >= synergyCoverage {
				continue
			}
			a, b := names[i], names[j]
			if g.rng.IntN(2) == 0 {
				a, b = b, a
			}
			out = append(out, model.SynergyPair{A: a, B: b, Score: float64(minSynergyScore + g.rng.IntN(synergySpread))})
		}
	}
	return out
}

// recommendations computes the precomputed leaderboards from snap.
func recommendations(ctx context.Context, snap *dataset.Snapshot) (dataset.Table, dataset.Table, error) {
	scorer := scoring.NewTeamScorer(snap)
	teams := dataset.Table{Columns: []string{repository.ColumnTaskName, "Team", "Skill Score", "Synergy Score", "Total Score"}}
	solo := dataset.Table{Columns: []string{repository.ColumnTaskName, repository.ColumnEmployeeName, repository.ColumnMatchScore}}

	for _, task := range snap.Tasks() {
		ranked, err := scorer.RankTeams(ctx, task, recommendedTeams)
		switch {
		case errors.Is(err, scoring.ErrInsufficientCandidates):
			// no team can be formed for this task
		case err != nil:
			return dataset.Table{}, dataset.Table{}, fmt.Errorf("rank %q: %w", task, err)
		default:
			for _, ts := range ranked {
				teams.Rows = append(teams.Rows, []string{
					task, ts.Team.String(), formatScore(ts.SkillScore), formatScore(ts.SynergyScore), formatScore(ts.TotalScore),
				})
			}
		}

		best, err := scorer.BestSolo(ctx, task, 1)
		if err != nil {
			return dataset.Table{}, dataset.Table{}, fmt.Errorf("solo %q: %w", task, err)
		}
		for _, p := range best {
			solo.Rows = append(solo.Rows, []string{task, p.Employee, formatScore(p.Score)})
		}
	}
	return teams, solo, nil
}

func skillTable(skills []model.SkillMatch) dataset.Table {
	t := dataset.Table{Columns: []string{repository.ColumnTaskName, repository.ColumnEmployeeName, repository.ColumnMatchScore}}
	for _, s := range skills {
		t.Rows = append(t.Rows, []string{s.Task, s.Employee, formatScore(s.Score)})
	}
	return t
}

func synergyTable(pairs []model.SynergyPair) dataset.Table {
	t := dataset.Table{Columns: []string{repository.ColumnEmployee1, repository.ColumnEmployee2, repository.ColumnSynergyScore}}
	for _, p := range pairs {
		t.Rows = append(t.Rows, []string{p.A, p.B, formatScore(p.Score)})
	}
	return t
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
