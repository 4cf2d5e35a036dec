package storage

import (
	"context"
	"time"

	"github.com/garrettladley/dealdesk/internal/store"
)

var _ Dashboard = (*Demo)(nil)

// Demo serves fixed sample data for every organisation. The backend falls
// back to it when no database is configured.
type Demo struct{}

func (Demo) Stats(_ context.Context, _ string, _ time.Time) (store.Stats, error) {
	return store.Stats{
		LeadsThisWeek:  1284,
		LeadsLastWeek:  1107,
		ResponseRate:   87.4,
		ActiveMandates: 46,
		ViewingsBooked: 19,
	}, nil
}

func (Demo) Tasks(_ context.Context, _ string, day time.Time, limit int) ([]store.Task, error) {
	start := DayStart(day)
	tasks := []store.Task{
		{ID: "t-1", Title: "Call back Martin re. Rue Oberkampf", Due: start.Add(9*time.Hour + 30*time.Minute), Done: true, Priority: store.PriorityHigh},
		{ID: "t-2", Title: "Send valuation to the Duponts", Due: start.Add(11 * time.Hour), Priority: store.PriorityNormal},
		{ID: "t-3", Title: "Viewing: 3-bed, Canal St", Due: start.Add(14 * time.Hour), Priority: store.PriorityHigh},
		{ID: "t-4", Title: "Renew mandate #A-102", Due: start.Add(16*time.Hour + 15*time.Minute), Priority: store.PriorityLow},
	}
	if limit > 0 && limit < len(tasks) {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (Demo) Pipeline(_ context.Context, _ string) ([]store.Stage, error) {
	return MergeStages(map[string]int{
		"prospect": 18,
		"listed":   14,
		"offer":    9,
		"sold":     5,
	}), nil
}

func (Demo) Insight(_ context.Context, _ string) (string, error) {
	return "Lead volume is up 16% on last week, driven by portal enquiries. " +
		"Three offers are waiting on a response: prioritise Canal St before Friday.", nil
}

// DemoSnapshot assembles a full snapshot from Demo.
func DemoSnapshot(now time.Time) store.Snapshot {
	var (
		d   Demo
		ctx = context.Background()
	)
	stats, _ := d.Stats(ctx, "", now)
	tasks, _ := d.Tasks(ctx, "", now, 0)
	stages, _ := d.Pipeline(ctx, "")
	insight, _ := d.Insight(ctx, "")
	return store.Snapshot{
		Stats:     stats,
		Tasks:     tasks,
		Pipeline:  stages,
		Insight:   insight,
		UpdatedAt: now.UTC(),
	}
}
