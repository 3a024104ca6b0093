package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	queries "focal/internal/database/generated"
	storeerrors "focal/internal/infrastructure/errors"
	"focal/internal/infrastructure/logging"
	"focal/internal/types"

	"github.com/google/uuid"
)

// RecordSession persists a completed focus session and folds its
// durations into the owning window and application aggregates. The
// whole write happens in one transaction so a crash can never leave a
// session row without its aggregate update.
func (r *SQLiteRepository) RecordSession(ctx context.Context, session *types.Session) error {
	start := time.Now()

	if session == nil {
		err := storeerrors.NewStoreError("RecordSession", fmt.Errorf("session is nil"), storeerrors.ErrCodeValidation)
		logging.LogError(r.logger, err, "RecordSession", nil)
		return err
	}

	validationContext := map[string]string{
		"app_name": session.AppName,
		"start":    session.StartTime.Format(time.RFC3339),
	}

	if strings.TrimSpace(session.AppName) == "" {
		err := storeerrors.NewStoreErrorWithContext("RecordSession",
			fmt.Errorf("app name is empty or whitespace"), storeerrors.ErrCodeValidation, validationContext)
		logging.LogError(r.logger, err, "RecordSession", nil)
		return err
	}

	if session.StartTime.IsZero() {
		err := storeerrors.NewStoreErrorWithContext("RecordSession",
			fmt.Errorf("session start time is zero"), storeerrors.ErrCodeValidation, validationContext)
		logging.LogError(r.logger, err, "RecordSession", nil)
		return err
	}

	if !session.EndTime.IsZero() && session.EndTime.Before(session.StartTime) {
		err := storeerrors.NewStoreErrorWithContext("RecordSession",
			fmt.Errorf("session end time precedes start time"), storeerrors.ErrCodeValidation, validationContext)
		logging.LogError(r.logger, err, "RecordSession", nil)
		return err
	}

	if session.ActiveDuration < 0 || session.PassiveDuration < 0 {
		err := storeerrors.NewStoreErrorWithContext("RecordSession",
			fmt.Errorf("session durations are negative: active=%d passive=%d",
				session.ActiveDuration, session.PassiveDuration), storeerrors.ErrCodeValidation, validationContext)
		logging.LogError(r.logger, err, "RecordSession", nil)
		return err
	}

	sessionID := session.ID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	lastSeen := session.EndTime
	if lastSeen.IsZero() {
		lastSeen = session.StartTime
	}

	err := r.WithTransaction(ctx, func(repo UsageRepository) error {
		txRepo := repo.(*SQLiteRepository)

		app, err := txRepo.queries.UpsertApplication(ctx, queries.UpsertApplicationParams{
			Name:      session.AppName,
			FirstSeen: session.StartTime,
			LastSeen:  lastSeen,
		})
		if err != nil {
			return storeerrors.NewStoreErrorWithContext("RecordSession.UpsertApplication", err,
				txRepo.classifyError(err), validationContext)
		}

		window, err := txRepo.queries.UpsertWindow(ctx, queries.UpsertWindowParams{
			ApplicationID: app.ID,
			Title:         session.WindowTitle,
		})
		if err != nil {
			return storeerrors.NewStoreErrorWithContext("RecordSession.UpsertWindow", err,
				txRepo.classifyError(err), validationContext)
		}

		if err := txRepo.queries.InsertSession(ctx, queries.InsertSessionParams{
			ID:              sessionID,
			WindowID:        window.ID,
			StartTime:       session.StartTime,
			EndTime:         txRepo.nullTimeFromTime(session.EndTime),
			ActiveDuration:  session.ActiveDuration,
			PassiveDuration: session.PassiveDuration,
		}); err != nil {
			return storeerrors.NewStoreErrorWithContext("RecordSession.InsertSession", err,
				txRepo.classifyError(err), validationContext)
		}

		// Cumulative totals count active time only; passive (idle) time
		// stays on the session rows.
		if err := txRepo.queries.AddWindowUsage(ctx, queries.AddWindowUsageParams{
			TotalTime: session.ActiveDuration,
			ID:        window.ID,
		}); err != nil {
			return storeerrors.NewStoreErrorWithContext("RecordSession.AddWindowUsage", err,
				txRepo.classifyError(err), validationContext)
		}

		if err := txRepo.queries.AddApplicationUsage(ctx, queries.AddApplicationUsageParams{
			TotalTime: session.ActiveDuration,
			LastSeen:  lastSeen,
			ID:        app.ID,
		}); err != nil {
			return storeerrors.NewStoreErrorWithContext("RecordSession.AddApplicationUsage", err,
				txRepo.classifyError(err), validationContext)
		}

		return nil
	})

	if err == nil {
		logging.LogOperation(r.logger, "RecordSession", time.Since(start), map[string]interface{}{
			"app_name": session.AppName,
			"duration": session.TotalDuration(),
		})
	}

	return err
}

// CloseOpenSessions stamps an end time on any session left open by a
// previous run. Called once during startup recovery. At most one open
// session should ever exist, so the dangling one is logged before it
// is stamped.
func (r *SQLiteRepository) CloseOpenSessions(ctx context.Context, at time.Time) (int64, error) {
	var closed int64

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		if open, err := r.queries.GetOpenSession(ctx); err == nil {
			r.logger.Warn("Found dangling open session",
				"session_id", open.ID,
				"window_id", open.WindowID,
				"start_time", open.StartTime.Format(time.RFC3339))
		} else if !errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug("Failed to inspect open session", "error", err)
		}

		n, err := r.queries.CloseOpenSessions(ctx, r.nullTimeFromTime(at))
		if err != nil {
			storeErr := storeerrors.NewStoreError("CloseOpenSessions", err, r.classifyError(err))
			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error closing open sessions", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "CloseOpenSessions", nil)
			}
			return storeErr
		}
		closed = n
		return nil
	})

	if err == nil && closed > 0 {
		r.logger.Info("Closed dangling open sessions", "count", closed)
	}

	return closed, err
}

// DeleteOldData removes sessions older than the given cutoff
func (r *SQLiteRepository) DeleteOldData(ctx context.Context, olderThan time.Time) error {
	start := time.Now()

	err := storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		deleted, err := r.queries.DeleteSessionsBefore(ctx, olderThan)
		if err != nil {
			storeErr := storeerrors.NewStoreErrorWithContext("DeleteOldData", err, r.classifyError(err), map[string]string{
				"older_than": olderThan.Format(time.RFC3339),
			})
			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error deleting old data", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "DeleteOldData", nil)
			}
			return storeErr
		}

		if deleted > 0 {
			r.logger.Info("Deleted old session data", "count", deleted, "older_than", olderThan.Format(time.RFC3339))
		}
		return nil
	})

	if err == nil {
		logging.LogOperation(r.logger, "DeleteOldData", time.Since(start), nil)
	}

	return err
}
