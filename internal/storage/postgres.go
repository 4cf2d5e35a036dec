package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/dealdesk/internal/store"
)

var _ Dashboard = (*Postgres)(nil)

// PipelineStages is the fixed order of mandate stages on the dashboard.
var PipelineStages = []store.Stage{
	{Key: "prospect", Label: "Prospect"},
	{Key: "listed", Label: "Listed"},
	{Key: "offer", Label: "Under offer"},
	{Key: "sold", Label: "Sold"},
}

type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const statsQuery = `
SELECT
    COUNT(*) FILTER (WHERE l.created_at >= $2),
    COUNT(*) FILTER (WHERE l.created_at >= $3 AND l.created_at < $2),
    COALESCE(
        100.0 * COUNT(*) FILTER (WHERE l.created_at >= $2 AND l.responded_at IS NOT NULL)
        / NULLIF(COUNT(*) FILTER (WHERE l.created_at >= $2), 0),
        0
    )::float8,
    (SELECT COUNT(*) FROM mandates m WHERE m.org_id = $1 AND m.active),
    (SELECT COUNT(*) FROM viewings v WHERE v.org_id = $1 AND v.scheduled_at >= $2 AND v.scheduled_at < $4)
FROM leads l
WHERE l.org_id = $1`

func (p *Postgres) Stats(ctx context.Context, orgID string, now time.Time) (store.Stats, error) {
	this := WeekStart(now)
	last := this.AddDate(0, 0, -7)
	next := this.AddDate(0, 0, 7)

	var s store.Stats
	err := p.pool.QueryRow(ctx, statsQuery, orgID, this, last, next).Scan(
		&s.LeadsThisWeek,
		&s.LeadsLastWeek,
		&s.ResponseRate,
		&s.ActiveMandates,
		&s.ViewingsBooked,
	)
	if err != nil {
		return store.Stats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	return s, nil
}

const tasksQuery = `
SELECT id::text, title, due_at, done, priority
FROM tasks
WHERE org_id = $1 AND due_at >= $2 AND due_at < $3
ORDER BY done, due_at
LIMIT $4`

func (p *Postgres) Tasks(ctx context.Context, orgID string, day time.Time, limit int) ([]store.Task, error) {
	start := DayStart(day)
	rows, err := p.pool.Query(ctx, tasksQuery, orgID, start, start.AddDate(0, 0, 1), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}

	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.Task, error) {
		var (
			t        store.Task
			priority string
		)
		if err := row.Scan(&t.ID, &t.Title, &t.Due, &t.Done, &priority); err != nil {
			return store.Task{}, err
		}
		t.Priority = store.Priority(priority)
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tasks: %w", err)
	}
	return tasks, nil
}

const pipelineQuery = `
SELECT stage, COUNT(*)
FROM mandates
WHERE org_id = $1 AND active
GROUP BY stage`

func (p *Postgres) Pipeline(ctx context.Context, orgID string) ([]store.Stage, error) {
	rows, err := p.pool.Query(ctx, pipelineQuery, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pipeline: %w", err)
	}

	counts := make(map[string]int)
	for rows.Next() {
		var (
			stage string
			count int
		)
		if err := rows.Scan(&stage, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan pipeline: %w", err)
		}
		counts[stage] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pipeline: %w", err)
	}
	return MergeStages(counts), nil
}

const insightQuery = `
SELECT body
FROM insights
WHERE org_id = $1
ORDER BY created_at DESC
LIMIT 1`

// Insight returns the most recent assistant summary, or "" if there is none.
func (p *Postgres) Insight(ctx context.Context, orgID string) (string, error) {
	var body string
	err := p.pool.QueryRow(ctx, insightQuery, orgID).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query insight: %w", err)
	}
	return body, nil
}

// MergeStages lays counts over PipelineStages. Stages missing from counts
// report zero; unknown stages are dropped.
func MergeStages(counts map[string]int) []store.Stage {
	out := make([]store.Stage, len(PipelineStages))
	for i, s := range PipelineStages {
		s.Count = counts[s.Key]
		out[i] = s
	}
	return out
}

// WeekStart is midnight UTC on the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	d := DayStart(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
