package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okian/harmony/internal/domain/dataset"
	"github.com/okian/harmony/internal/domain/model"
	"github.com/okian/harmony/pkg/logger"
	"github.com/okian/harmony/pkg/metrics"
)

const utf8BOM = "\ufeff"

// CSVStore loads the seven input tables from CSV files.
type CSVStore struct {
	dir    string
	fsys   fs.FS
	files  Files
	logger logger.Logger
}

// NewCSVStore creates a store reading from the current directory by default.
func NewCSVStore(opts ...Option) *CSVStore {
	s := &CSVStore{
		dir:   ".",
		files: DefaultFiles(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fsys == nil {
		s.fsys = os.DirFS(s.dir)
	}
	return s
}

// Load reads and indexes every table.
func (s *CSVStore) Load(ctx context.Context) (*dataset.Snapshot, error) {
	start := time.Now()
	snap, err := s.load(ctx)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return nil, err
	}
	metrics.RecordDatasetLoad(time.Since(start))
	for table, rows := range snap.Counts() {
		metrics.UpdateDatasetRows(table, rows)
	}
	if s.logger != nil {
		s.logger.Info(ctx, "dataset loaded",
			logger.String("dir", s.dir),
			logger.Any("rows", snap.Counts()),
			logger.Duration("took", time.Since(start)),
		)
	}
	return snap, nil
}

func (s *CSVStore) load(ctx context.Context) (*dataset.Snapshot, error) {
	var t dataset.Tables
	opaque := []struct {
		name     string
		dst      *dataset.Table
		required []string
	}{
		{s.files.Profiles, &t.Profiles, []string{ColumnProfileName}},
		{s.files.Tasks, &t.Tasks, []string{ColumnTaskName}},
		{s.files.Traits, &t.Traits, nil},
		{s.files.TopTeams, &t.TopTeams, nil},
		{s.files.TopSolo, &t.TopSolo, nil},
	}
	for _, o := range opaque {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tbl, err := s.readTable(o.name, o.required...)
		if err != nil {
			return nil, err
		}
		*o.dst = tbl
	}

	skills, err := s.readTable(s.files.Skills, ColumnTaskName, ColumnEmployeeName, ColumnMatchScore)
	if err != nil {
		return nil, err
	}
	if t.Skills, err = parseSkills(s.files.Skills, skills); err != nil {
		return nil, err
	}

	synergy, err := s.readTable(s.files.Synergy, ColumnEmployee1, ColumnEmployee2, ColumnSynergyScore)
	if err != nil {
		return nil, err
	}
	if t.Synergy, err = parseSynergy(s.files.Synergy, synergy); err != nil {
		return nil, err
	}

	return dataset.New(t), nil
}

// readTable parses a CSV file with a header row and checks required columns.
func (s *CSVStore) readTable(name string, required ...string) (dataset.Table, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("%w: %s: %w", ErrLoadTable, name, err)
	}
	defer func() { _ = f.Close() }()

	tbl, err := decodeTable(f)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("%w: %s: %w", ErrLoadTable, name, err)
	}
	for _, col := range required {
		if tbl.ColumnIndex(col) < 0 {
			return dataset.Table{}, fmt.Errorf("%w: %s: %q", ErrMissingColumn, name, col)
		}
	}
	return tbl, nil
}

func decodeTable(r io.Reader) (dataset.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return dataset.Table{}, errors.New("empty file")
	}
	if err != nil {
		return dataset.Table{}, err
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	tbl := dataset.Table{Columns: header, Rows: [][]string{}}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dataset.Table{}, fmt.Errorf("%w: %w", ErrMalformedValue, err)
		}
		tbl.Rows = append(tbl.Rows, rec)
	}
	return tbl, nil
}

func parseScore(name string, line int, column, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s row %d column %q: %q", ErrMalformedValue, name, line, column, raw)
	}
	return v, nil
}

func parseSkills(name string, tbl dataset.Table) ([]model.SkillMatch, error) {
	ti, ei, si := tbl.ColumnIndex(ColumnTaskName), tbl.ColumnIndex(ColumnEmployeeName), tbl.ColumnIndex(ColumnMatchScore)
	out := make([]model.SkillMatch, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		score, err := parseScore(name, i+2, ColumnMatchScore, row[si])
		if err != nil {
			return nil, err
		}
		out = append(out, model.SkillMatch{
			Task:     strings.TrimSpace(row[ti]),
			Employee: strings.TrimSpace(row[ei]),
			Score:    score,
		})
	}
	return out, nil
}

func parseSynergy(name string, tbl dataset.Table) ([]model.SynergyPair, error) {
	ai, bi, si := tbl.ColumnIndex(ColumnEmployee1), tbl.ColumnIndex(ColumnEmployee2), tbl.ColumnIndex(ColumnSynergyScore)
	out := make([]model.SynergyPair, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		score, err := parseScore(name, i+2, ColumnSynergyScore, row[si])
		if err != nil {
			return nil, err
		}
		out = append(out, model.SynergyPair{
			A:     strings.TrimSpace(row[ai]),
			B:     strings.TrimSpace(row[bi]),
			Score: score,
		})
	}
	return out, nil
}
