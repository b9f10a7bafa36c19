// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/harmony/internal/adapters/repository"
	"github.com/okian/harmony/internal/config"
	"github.com/okian/harmony/internal/domain/dataset"
	"github.com/okian/harmony/internal/domain/scoring"
	"github.com/okian/harmony/internal/domain/types"
	"github.com/okian/harmony/pkg/logger"
	"github.com/okian/harmony/pkg/metrics"
)

// ErrNotStarted is returned by read operations before Start has loaded the data.
var ErrNotStarted = errors.New("service not started")

// Service serves team rankings and reference tables from one immutable
// snapshot loaded at Start.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	snap   *dataset.Snapshot
	scorer scoring.Scorer

	// Configuration
	dataDir       string
	files         repository.Files
	maxCandidates int
	insightsLimit int

	// State
	started  bool
	loadedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the CSV store, mainly for tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDataDir sets the directory the default CSV store reads from.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithFiles overrides table file names for the default CSV store.
func WithFiles(f repository.Files) Option {
	return func(s *Service) {
		s.files = f
	}
}

// WithMaxCandidates bounds the per-task candidate pool; 0 disables the bound.
func WithMaxCandidates(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxCandidates = n
		}
	}
}

// WithInsightsLimit sets the default number of leaderboard rows returned.
func WithInsightsLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.insightsLimit = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:       "data",
		insightsLimit: 5,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FromConfig builds a Service from loaded configuration; opts are applied last.
func FromConfig(cfg *config.Config, opts ...Option) *Service {
	base := []Option{
		WithDataDir(cfg.DataDir),
		WithFiles(repository.Files(cfg.Files)),
		WithMaxCandidates(cfg.MaxCandidates),
		WithInsightsLimit(cfg.InsightsLimit),
	}
	return New(append(base, opts...)...)
}

// Start loads the tables and builds the scorer. A load failure is fatal
// for the caller: the service has nothing to serve without its data.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewCSVStore(
			repository.WithDir(s.dataDir),
			repository.WithFiles(s.files),
			repository.WithLogger(s.logger),
		)
	}

	s.logger.Info(ctx, "starting harmony service...", logger.String("dataDir", s.dataDir))

	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	s.snap = snap
	s.scorer = scoring.NewTeamScorer(snap, scoring.WithMaxCandidates(s.maxCandidates))
	s.loadedAt = time.Now()
	s.started = true

	s.logger.Info(ctx, "harmony service started",
		logger.Int("tasks", len(snap.Tasks())),
		logger.Int("maxCandidates", s.maxCandidates),
	)
	return nil
}

// Stop releases the snapshot.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.snap = nil
	s.scorer = nil
	s.started = false
	s.logger.Info(context.Background(), "harmony service stopped")
}

// current returns the live snapshot and scorer under the read lock.
func (s *Service) current() (*dataset.Snapshot, scoring.Scorer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.snap, s.scorer, nil
}

// Tasks returns the selectable task names.
func (s *Service) Tasks(_ context.Context) ([]string, error) {
	snap, _, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.Tasks(), nil
}

// RankTeams ranks teams of three for task. An insufficient candidate pool
// is returned as scoring.ErrInsufficientCandidates for the caller to show
// as a warning.
func (s *Service) RankTeams(ctx context.Context, task string, topN int) (types.TeamRanking, error) {
	snap, scorer, err := s.current()
	if err != nil {
		return types.TeamRanking{}, err
	}

	runID := uuid.NewString()
	pool := len(snap.Candidates(task))
	start := time.Now()
	teams, err := scorer.RankTeams(ctx, task, topN)
	took := time.Since(start)

	switch {
	case errors.Is(err, scoring.ErrInsufficientCandidates):
		metrics.RecordRanking(metrics.OutcomeInsufficient, pool, 0, took)
		s.logger.Info(ctx, "not enough employees for a team",
			logger.String("runID", runID), logger.String("task", task), logger.Int("candidates", pool))
		return types.TeamRanking{}, err
	case err != nil:
		metrics.RecordRanking(metrics.OutcomeError, pool, 0, took)
		s.logger.Warn(ctx, "team ranking failed",
			logger.String("runID", runID), logger.String("task", task), logger.Error(err))
		return types.TeamRanking{}, err
	}

	evaluated := scoring.CombinationCount(pool)
	metrics.RecordRanking(metrics.OutcomeOK, pool, evaluated, took)
	s.logger.Debug(ctx, "teams ranked",
		logger.String("runID", runID),
		logger.String("task", task),
		logger.Int("candidates", pool),
		logger.Int("evaluated", evaluated),
		logger.Duration("took", took),
	)

	out := types.TeamRanking{RunID: runID, Task: task, TopN: topN, Teams: make([]types.TeamEntry, len(teams))}
	for i, t := range teams {
		out.Teams[i] = types.TeamEntry{
			Rank:         i + 1,
			Team:         t.Team.String(),
			Members:      append([]string(nil), t.Team.Members[:]...),
			SkillScore:   t.SkillScore,
			SynergyScore: t.SynergyScore,
			TotalScore:   t.TotalScore,
			Explanation:  t.Explanation,
		}
	}
	return out, nil
}

// BestSolo returns the top n individual performers for task.
func (s *Service) BestSolo(ctx context.Context, task string, n int) ([]types.SoloEntry, error) {
	_, scorer, err := s.current()
	if err != nil {
		return nil, err
	}
	metrics.RecordSoloRequest()

	solo, err := scorer.BestSolo(ctx, task, n)
	if err != nil {
		return nil, err
	}
	out := make([]types.SoloEntry, len(solo))
	for i, p := range solo {
		out[i] = types.SoloEntry{Rank: i + 1, Employee: p.Employee, Score: p.Score}
	}
	return out, nil
}

func (s *Service) limit(n int) int {
	if n < 1 {
		return s.insightsLimit
	}
	return n
}

// TopTeams returns the precomputed team leaderboard; limit < 1 uses the configured default.
func (s *Service) TopTeams(_ context.Context, limit int) (dataset.Table, error) {
	snap, _, err := s.current()
	if err != nil {
		return dataset.Table{}, err
	}
	return snap.TopTeams(s.limit(limit)), nil
}

// TopSolo returns the precomputed solo leaderboard; limit < 1 uses the configured default.
func (s *Service) TopSolo(_ context.Context, limit int) (dataset.Table, error) {
	snap, _, err := s.current()
	if err != nil {
		return dataset.Table{}, err
	}
	return snap.TopSolo(s.limit(limit)), nil
}

// Profiles returns every employee profile.
func (s *Service) Profiles(_ context.Context) (dataset.Table, error) {
	snap, _, err := s.current()
	if err != nil {
		return dataset.Table{}, err
	}
	return snap.Profiles(), nil
}

// Traits returns the trait scores table.
func (s *Service) Traits(_ context.Context) (dataset.Table, error) {
	snap, _, err := s.current()
	if err != nil {
		return dataset.Table{}, err
	}
	return snap.Traits(), nil
}

// Profile returns the profile rows for one employee name.
func (s *Service) Profile(_ context.Context, name string) (dataset.Table, error) {
	snap, _, err := s.current()
	if err != nil {
		return dataset.Table{}, err
	}
	return snap.ProfileByName(name), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"dataDir":       s.dataDir,
		"maxCandidates": s.maxCandidates,
		"insightsLimit": s.insightsLimit,
	}

	if s.started {
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
		stats["tasks"] = len(s.snap.Tasks())
		stats["rows"] = s.snap.Counts()
	}

	return stats
}
