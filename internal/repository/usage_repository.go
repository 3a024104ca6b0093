package repository

import (
	"context"
	"database/sql"
	"fmt"

	"focal/internal/database"
	queries "focal/internal/database/generated"
	storeerrors "focal/internal/infrastructure/errors"
	"focal/internal/infrastructure/logging"
)

// SQLiteRepository implements the UsageRepository interface using SQLite
type SQLiteRepository struct {
	db          *sql.DB
	queries     *queries.Queries
	dbService   database.Service
	retryConfig *storeerrors.RetryConfig
	logger      logging.Logger

	// inTx marks a repository instance already bound to a transaction.
	// WithTransaction on such an instance runs the function directly
	// instead of opening a second transaction on the same connection.
	inTx bool
}

// NewSQLiteRepository creates a new SQLite repository instance
func NewSQLiteRepository(dbService database.Service, logger logging.Logger) *SQLiteRepository {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &SQLiteRepository{
		db:          dbService.DB(),
		queries:     dbService.GetQueries(),
		dbService:   dbService,
		retryConfig: storeerrors.DefaultRetryConfig(),
		logger:      logger,
	}
}

// NewSQLiteRepositoryWithConfig creates a new SQLite repository instance with custom configuration
func NewSQLiteRepositoryWithConfig(dbService database.Service, retryConfig *storeerrors.RetryConfig, logger logging.Logger) *SQLiteRepository {
	if retryConfig == nil {
		retryConfig = storeerrors.DefaultRetryConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &SQLiteRepository{
		db:          dbService.DB(),
		queries:     dbService.GetQueries(),
		dbService:   dbService,
		retryConfig: retryConfig,
		logger:      logger,
	}
}

// NewSQLiteRepositoryWithPreparedQueries creates a repository with prepared statements for better performance
func NewSQLiteRepositoryWithPreparedQueries(ctx context.Context, dbService database.Service, logger logging.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	preparedQueries, err := dbService.GetPreparedQueries(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewSQLiteRepositoryWithPreparedQueries: failed to get prepared queries from database service: %w", err)
	}

	return &SQLiteRepository{
		db:          dbService.DB(),
		queries:     preparedQueries,
		dbService:   dbService,
		retryConfig: storeerrors.DefaultRetryConfig(),
		logger:      logger,
	}, nil
}
