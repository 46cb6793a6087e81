package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// StepOutcomeFailed marks a step that returned an error.
const StepOutcomeFailed = "failed"

// RunStart describes a run as it begins.
type RunStart struct {
	ID        string
	Episode   int
	Steps     []string
	Force     bool
	StartedAt time.Time
}

// StepRecord is the result of one executed step.
type StepRecord struct {
	Seq       int
	Name      string
	Outcome   string
	Error     string
	Duration  time.Duration
	StartedAt time.Time
}

// Run is a recorded pipeline run.
type Run struct {
	ID         string       `json:"id"`
	Episode    int          `json:"episode"`
	Steps      []string     `json:"steps"`
	Force      bool         `json:"force"`
	Status     RunStatus    `json:"status"`
	Error      string       `json:"error,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
	StepRuns   []StepRecord `json:"step_runs,omitempty"`
}

// ListOptions filters ListRuns. Episode 0 matches every episode.
type ListOptions struct {
	Episode int
	Limit   int
}

const defaultListLimit = 20

// StartRun inserts a run in the running state.
func (s *Store) StartRun(ctx context.Context, start RunStart) error {
	_, err := s.exec(ctx,
		`INSERT INTO runs (id, episode, steps, forced, status, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		start.ID,
		start.Episode,
		strings.Join(start.Steps, ","),
		boolToInt(start.Force),
		RunRunning,
		formatTime(start.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordStep appends a step result to a run.
func (s *Store) RecordStep(ctx context.Context, runID string, rec StepRecord) error {
	_, err := s.exec(ctx,
		`INSERT INTO step_runs (run_id, seq, step, outcome, error_message, duration_ms, started_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		rec.Seq,
		rec.Name,
		rec.Outcome,
		nullableString(rec.Error),
		rec.Duration.Milliseconds(),
		formatTime(rec.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("insert step run: %w", err)
	}
	return nil
}

// FinishRun sets the final status of a run.
func (s *Store) FinishRun(ctx context.Context, runID string, status RunStatus, errMsg string, finishedAt time.Time) error {
	res, err := s.exec(ctx,
		`UPDATE runs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		status,
		nullableString(errMsg),
		formatTime(finishedAt),
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: no such run", runID)
	}
	return nil
}

// ListRuns returns runs newest first, without step details.
func (s *Store) ListRuns(ctx context.Context, opts ListOptions) ([]Run, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT id, episode, steps, forced, status, error_message, started_at, finished_at FROM runs`
	args := []any{}
	if opts.Episode > 0 {
		query += ` WHERE episode = ?`
		args = append(args, opts.Episode)
	}
	query += ` ORDER BY started_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run with its step results, or nil when id is unknown.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, episode, steps, forced, status, error_message, started_at, finished_at FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, step, outcome, error_message, duration_ms, started_at FROM step_runs WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("list step runs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rec        StepRecord
			errMsg     sql.NullString
			durationMS int64
			startedRaw string
		)
		if err := rows.Scan(&rec.Seq, &rec.Name, &rec.Outcome, &errMsg, &durationMS, &startedRaw); err != nil {
			return nil, fmt.Errorf("scan step run: %w", err)
		}
		rec.Error = errMsg.String
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.StartedAt = parseTime(startedRaw)
		run.StepRuns = append(run.StepRuns, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate step runs: %w", err)
	}
	return &run, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		steps       string
		forced      int
		status      string
		errMsg      sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(&run.ID, &run.Episode, &steps, &forced, &status, &errMsg, &startedRaw, &finishedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Steps = splitSteps(steps)
	run.Force = forced != 0
	run.Status = RunStatus(status)
	run.Error = errMsg.String
	run.StartedAt = parseTime(startedRaw)
	if finishedRaw.Valid {
		t := parseTime(finishedRaw.String)
		run.FinishedAt = &t
	}
	return run, nil
}

func splitSteps(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
