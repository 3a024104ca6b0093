package app

import (
	"context"
	"time"

	"focal/internal/database"
	"focal/internal/infrastructure/logging"
	"focal/internal/platform"
	"focal/internal/repository"
	"focal/internal/services"
	"focal/internal/types"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// SnapshotEvent is the runtime event name the frontend subscribes to
// for live activity snapshots.
const SnapshotEvent = "activity:snapshot"

// App wires the database, the usage store and the activity coordinator
// together and exposes query methods to the frontend.
type App struct {
	ctx         context.Context
	environment string
	dbConfig    *database.Config
	dbService   database.Service
	store       *repository.UsageStore
	coordinator *services.ActivityCoordinator
	logger      logging.Logger

	maintenanceStop chan struct{}
}

// NewApp builds the full dependency graph for the given environment.
// A database that cannot be opened or migrated is a fatal error; the
// system has no degraded mode without persistence.
func NewApp(env string) (*App, error) {
	logger := logging.NewDefaultLogger()

	dbConfig := database.ConfigForEnvironment(env)
	dbService := database.NewSQLiteService(logger)
	if err := dbService.Connect(context.Background(), dbConfig); err != nil {
		return nil, err
	}
	if err := dbService.Migrate(context.Background()); err != nil {
		dbService.Close()
		return nil, err
	}

	repo := repository.NewSQLiteRepository(dbService, logger)
	store := repository.NewUsageStore(repo, logger)

	trackerConfig := services.TrackerConfigFromEnvironment()
	coordinator := services.NewActivityCoordinator(platform.NewWindowAPI(), store, trackerConfig, logger)

	return &App{
		environment:     env,
		dbConfig:        dbConfig,
		dbService:       dbService,
		store:           store,
		coordinator:     coordinator,
		logger:          logger,
		maintenanceStop: make(chan struct{}),
	}, nil
}

// Startup is called by the Wails runtime once the application context
// is available
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	a.coordinator.SetPublisher(func(snapshot types.Snapshot) {
		runtime.EventsEmit(a.ctx, SnapshotEvent, snapshot)
	})

	a.coordinator.Start(ctx)
	a.startMaintenanceLoop()

	a.logger.Info("Application started", "environment", a.environment)
}

// DomReady is called after front-end resources have been loaded
func (a *App) DomReady(ctx context.Context) {
}

// BeforeClose is called when the application is about to quit
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	return false
}

// Shutdown closes the open session, drains pending writes and releases
// the database
func (a *App) Shutdown(ctx context.Context) {
	a.logger.Info("Shutting down")

	close(a.maintenanceStop)

	// Coordinator first so the final session lands in the store queue,
	// then the store so that write is flushed before the database goes
	a.coordinator.Stop()
	a.store.Close()

	if err := a.dbService.Close(); err != nil {
		logging.LogError(a.logger, err, "shutdown", nil)
	}

	a.logger.Info("Shutdown complete")
}

// startMaintenanceLoop runs periodic retention cleanup and database
// optimization according to the database configuration. Disabled
// entirely when the config sets no vacuum interval.
func (a *App) startMaintenanceLoop() {
	interval := a.dbConfig.VacuumInterval
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				a.runMaintenance()
			case <-a.maintenanceStop:
				return
			}
		}
	}()
}

func (a *App) runMaintenance() {
	if a.dbConfig.RetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -a.dbConfig.RetentionDays)
		a.store.DeleteOldData(cutoff)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := a.dbService.Optimize(ctx); err != nil {
		logging.LogError(a.logger, err, "maintenance", nil)
	}
}

// GetSnapshot returns the latest published activity snapshot
func (a *App) GetSnapshot() types.Snapshot {
	return a.coordinator.Snapshot()
}

// GetTodayAggregate returns per-application totals for the current
// logical day
func (a *App) GetTodayAggregate() *types.TodayAggregate {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.coordinator.Today(ctx)
}

// GetHourlyBuckets returns hour-bucketed totals for one application on
// the current logical day. A zero id aggregates all applications.
func (a *App) GetHourlyBuckets(applicationID int64) *types.HourlyBuckets {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.coordinator.Hourly(ctx, applicationID)
}

// GetCategoryTotals returns per-category totals for the trailing week
func (a *App) GetCategoryTotals() []types.CategoryTotal {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.coordinator.CategoryTotals(ctx)
}

// GetTopApplications returns the top applications for the current
// logical day
func (a *App) GetTopApplications(limit int) []types.AppAggregate {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.coordinator.TopApplications(ctx, limit)
}

// ListApplications returns every tracked application
func (a *App) ListApplications() []types.Application {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.store.ListApplications(ctx)
}

// ListCategories returns all categories
func (a *App) ListCategories() []types.Category {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.store.ListCategories(ctx)
}

// CreateCategory creates a new category
func (a *App) CreateCategory(category *types.Category) error {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.store.CreateCategory(ctx, category)
}

// UpdateCategory updates a category's display fields
func (a *App) UpdateCategory(category *types.Category) error {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.store.UpdateCategory(ctx, category)
}

// DeleteCategory removes a non-default category
func (a *App) DeleteCategory(id string) error {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.store.DeleteCategory(ctx, id)
}

// AssignCategory links an application to a category; an empty category
// id clears the assignment
func (a *App) AssignCategory(applicationID int64, categoryID string) error {
	ctx, cancel := a.requestContext()
	defer cancel()
	return a.store.AssignCategory(ctx, applicationID, categoryID)
}

// CleanupOldData removes session data older than the given number of
// days
func (a *App) CleanupOldData(retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	a.store.DeleteOldData(time.Now().AddDate(0, 0, -retentionDays))
}

// GetLogger returns the application's structured logger
func (a *App) GetLogger() logging.Logger {
	return a.logger
}

// requestContext bounds frontend-originated queries so a wedged store
// can never hang the UI indefinitely
func (a *App) requestContext() (context.Context, context.CancelFunc) {
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 5*time.Second)
}
