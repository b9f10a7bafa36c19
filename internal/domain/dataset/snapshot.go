package dataset

import (
	"sort"

	"github.com/okian/harmony/internal/domain/model"
)

// Column names the snapshot reads from opaque tables.
const (
	ColumnTaskName    = "Task Name"
	ColumnProfileName = "Name"
)

// Table names, used for counts and metrics labels.
const (
	TableProfiles = "profiles"
	TableTasks    = "tasks"
	TableTraits   = "traits"
	TableSkills   = "skills"
	TableSynergy  = "synergy"
	TableTopTeams = "top_teams"
	TableTopSolo  = "top_solo"
)

// Tables is the raw input a Snapshot is built from.
type Tables struct {
	Profiles Table
	Tasks    Table
	Traits   Table
	TopTeams Table
	TopSolo  Table
	Skills   []model.SkillMatch
	Synergy  []model.SynergyPair
}

// Candidate is an employee with a match score for a task.
type Candidate struct {
	Name  string
	Score float64
}

type taskSkills struct {
	order  []string           // employee keys, first appearance
	names  map[string]string  // key -> first spelling seen
	scores map[string]float64 // key -> summed match score
}

// Snapshot is the immutable data context for a session. Build it once with
// New and share it; no method mutates it.
type Snapshot struct {
	tables  Tables
	tasks   []string
	skills  map[string]*taskSkills
	synergy *SynergyIndex
}

// New indexes tables into a Snapshot. Repeated (task, employee) skill rows
// are summed.
func New(t Tables) *Snapshot {
	s := &Snapshot{
		tables:  t,
		skills:  make(map[string]*taskSkills),
		synergy: NewSynergyIndex(t.Synergy),
	}

	for _, m := range t.Skills {
		tk := model.NormalizeKey(m.Task)
		ts, ok := s.skills[tk]
		if !ok {
			ts = &taskSkills{names: make(map[string]string), scores: make(map[string]float64)}
			s.skills[tk] = ts
		}
		ek := model.NormalizeKey(m.Employee)
		if _, seen := ts.names[ek]; !seen {
			ts.order = append(ts.order, ek)
			ts.names[ek] = m.Employee
		}
		ts.scores[ek] += m.Score
	}

	s.tasks = distinctSorted(t.Tasks, ColumnTaskName)
	return s
}

func distinctSorted(t Table, column string) []string {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(t.Rows))
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		if _, ok := seen[row[idx]]; ok {
			continue
		}
		seen[row[idx]] = struct{}{}
		out = append(out, row[idx])
	}
	sort.Strings(out)
	return out
}

// Tasks returns the distinct task names of the task table, sorted.
func (s *Snapshot) Tasks() []string {
	return append([]string(nil), s.tasks...)
}

// Candidates returns every employee with a score for task, in the order
// they first appear in the skill table.
func (s *Snapshot) Candidates(task string) []Candidate {
	ts, ok := s.skills[model.NormalizeKey(task)]
	if !ok {
		return nil
	}
	out := make([]Candidate, len(ts.order))
	for i, k := range ts.order {
		out[i] = Candidate{Name: ts.names[k], Score: ts.scores[k]}
	}
	return out
}

// SkillScore returns an employee's match score for a task.
func (s *Snapshot) SkillScore(task, employee string) (float64, bool) {
	ts, ok := s.skills[model.NormalizeKey(task)]
	if !ok {
		return 0, false
	}
	v, ok := ts.scores[model.NormalizeKey(employee)]
	return v, ok
}

// Synergy is the symmetric pairwise lookup; absent pairs score 0.
func (s *Snapshot) Synergy(a, b string) float64 {
	return s.synergy.Score(a, b)
}

// Profiles returns the full employee profile table.
func (s *Snapshot) Profiles() Table { return s.tables.Profiles.Clone() }

// ProfileByName returns the profile rows whose Name matches name.
func (s *Snapshot) ProfileByName(name string) Table {
	return s.tables.Profiles.Where(ColumnProfileName, name)
}

// Traits returns the trait scores table.
func (s *Snapshot) Traits() Table { return s.tables.Traits.Clone() }

// TopTeams returns the first limit rows of the precomputed team leaderboard.
func (s *Snapshot) TopTeams(limit int) Table { return s.tables.TopTeams.Head(limit) }

// TopSolo returns the first limit rows of the precomputed solo leaderboard.
func (s *Snapshot) TopSolo(limit int) Table { return s.tables.TopSolo.Head(limit) }

// Counts returns row counts per table.
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		TableProfiles: s.tables.Profiles.Len(),
		TableTasks:    s.tables.Tasks.Len(),
		TableTraits:   s.tables.Traits.Len(),
		TableSkills:   len(s.tables.Skills),
		TableSynergy:  len(s.tables.Synergy),
		TableTopTeams: s.tables.TopTeams.Len(),
		TableTopSolo:  s.tables.TopSolo.Len(),
	}
}
