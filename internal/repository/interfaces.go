package repository

import (
	"context"
	"time"

	"focal/internal/types"
)

// UsageRepository defines the interface for session and usage persistence
type UsageRepository interface {
	// Session operations
	RecordSession(ctx context.Context, session *types.Session) error
	CloseOpenSessions(ctx context.Context, at time.Time) (int64, error)

	// Aggregate queries
	TodayAggregate(ctx context.Context, dayStart time.Time) (*types.TodayAggregate, error)
	HourlyBuckets(ctx context.Context, applicationID int64, dayStart time.Time) (*types.HourlyBuckets, error)
	CategoryTotals(ctx context.Context, since time.Time) ([]types.CategoryTotal, error)
	TopApplications(ctx context.Context, since time.Time, limit int) ([]types.AppAggregate, error)

	// Application operations
	ListApplications(ctx context.Context) ([]types.Application, error)
	AssignCategory(ctx context.Context, applicationID int64, categoryID string) error

	// Category operations
	ListCategories(ctx context.Context) ([]types.Category, error)
	CreateCategory(ctx context.Context, category *types.Category) error
	UpdateCategory(ctx context.Context, category *types.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Retention
	DeleteOldData(ctx context.Context, olderThan time.Time) error

	// Transaction support
	WithTransaction(ctx context.Context, fn func(repo UsageRepository) error) error
}
