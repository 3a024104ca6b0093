package repository

import (
	"context"
	"time"

	queries "focal/internal/database/generated"
	storeerrors "focal/internal/infrastructure/errors"
	"focal/internal/types"
)

// TodayAggregate computes per-application totals for the logical day
// starting at dayStart. The whole result is produced by a single
// grouped query.
func (r *SQLiteRepository) TodayAggregate(ctx context.Context, dayStart time.Time) (*types.TodayAggregate, error) {
	rows, err := r.queries.AppTotalsSince(ctx, dayStart)
	if err != nil {
		return nil, storeerrors.NewStoreError("TodayAggregate", err, r.classifyError(err))
	}

	apps := make([]types.AppAggregate, len(rows))
	for i, row := range rows {
		apps[i] = types.AppAggregate{
			ApplicationID: row.ApplicationID,
			AppName:       row.ApplicationName,
			CategoryID:    r.stringFromNullString(row.CategoryID),
			ActiveTime:    row.ActiveTotal,
			PassiveTime:   row.PassiveTotal,
			SessionCount:  row.SessionCount,
		}
	}

	return &types.TodayAggregate{
		DayStart: dayStart,
		Apps:     apps,
	}, nil
}

// HourlyBuckets distributes session active time into 24 hour-wide
// buckets for the logical day starting at dayStart. Bucket 0 covers the
// first hour after dayStart. A zero applicationID aggregates all
// applications; the application filter runs in SQL so a per-app query
// stays bounded by the windows(application_id) index. A session's whole
// active duration is attributed to the bucket its start time falls into.
func (r *SQLiteRepository) HourlyBuckets(ctx context.Context, applicationID int64, dayStart time.Time) (*types.HourlyBuckets, error) {
	rows, err := r.queries.ListSessionDurationsSince(ctx, queries.ListSessionDurationsSinceParams{
		StartTime:     dayStart,
		ApplicationID: applicationID,
	})
	if err != nil {
		return nil, storeerrors.NewStoreError("HourlyBuckets", err, r.classifyError(err))
	}

	result := &types.HourlyBuckets{
		ApplicationID: applicationID,
		DayStart:      dayStart,
	}

	dayEnd := dayStart.Add(24 * time.Hour)
	for _, row := range rows {
		if !row.StartTime.Before(dayEnd) {
			continue
		}

		bucket := int(row.StartTime.Sub(dayStart) / time.Hour)
		if bucket < 0 || bucket > 23 {
			continue
		}
		result.Buckets[bucket] += row.ActiveDuration
	}

	return result, nil
}

// CategoryTotals sums active time per category since the given cutoff.
// Applications without a category are folded into the default "other"
// category. Names and colors come from the categories table.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context, since time.Time) ([]types.CategoryTotal, error) {
	rows, err := r.queries.CategoryTotalsSince(ctx, since)
	if err != nil {
		return nil, storeerrors.NewStoreError("CategoryTotals", err, r.classifyError(err))
	}

	categories, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, storeerrors.NewStoreError("CategoryTotals", err, r.classifyError(err))
	}

	lookup := make(map[string]queries.Category, len(categories))
	for _, c := range categories {
		lookup[c.ID] = c
	}

	totals := make([]types.CategoryTotal, len(rows))
	for i, row := range rows {
		total := types.CategoryTotal{
			CategoryID: row.CategoryID,
			ActiveTime: row.ActiveTotal,
		}
		if c, ok := lookup[row.CategoryID]; ok {
			total.Name = c.Name
			total.Color = c.Color
		}
		totals[i] = total
	}

	return totals, nil
}

// TopApplications returns the top applications by total time since the
// given cutoff, limited to the requested count.
func (r *SQLiteRepository) TopApplications(ctx context.Context, since time.Time, limit int) ([]types.AppAggregate, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.queries.TopApplicationsSince(ctx, queries.TopApplicationsSinceParams{
		StartTime: since,
		Limit:     int64(limit),
	})
	if err != nil {
		return nil, storeerrors.NewStoreError("TopApplications", err, r.classifyError(err))
	}

	apps := make([]types.AppAggregate, len(rows))
	for i, row := range rows {
		apps[i] = types.AppAggregate{
			ApplicationID: row.ApplicationID,
			AppName:       row.ApplicationName,
			CategoryID:    r.stringFromNullString(row.CategoryID),
			ActiveTime:    row.ActiveTotal,
			PassiveTime:   row.PassiveTotal,
			SessionCount:  row.SessionCount,
		}
	}

	return apps, nil
}
