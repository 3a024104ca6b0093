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
)

// ListCategories returns all categories ordered by sort order then name
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]types.Category, error) {
	rows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, storeerrors.NewStoreError("ListCategories", err, r.classifyError(err))
	}

	categories := make([]types.Category, len(rows))
	for i, row := range rows {
		categories[i] = r.convertCategoryFromDB(row)
	}

	return categories, nil
}

// CreateCategory inserts a new category. The identifier is normalized
// before storage so lookups stay case-insensitive.
func (r *SQLiteRepository) CreateCategory(ctx context.Context, category *types.Category) error {
	if category == nil {
		err := storeerrors.NewStoreError("CreateCategory", fmt.Errorf("category is nil"), storeerrors.ErrCodeValidation)
		logging.LogError(r.logger, err, "CreateCategory", nil)
		return err
	}

	id := types.NormalizeCategoryID(category.ID)
	if id == "" {
		err := storeerrors.NewStoreError("CreateCategory", fmt.Errorf("category id is empty"), storeerrors.ErrCodeValidation)
		logging.LogError(r.logger, err, "CreateCategory", nil)
		return err
	}

	if strings.TrimSpace(category.Name) == "" {
		err := storeerrors.NewStoreErrorWithContext("CreateCategory",
			fmt.Errorf("category name is empty"), storeerrors.ErrCodeValidation, map[string]string{"id": id})
		logging.LogError(r.logger, err, "CreateCategory", nil)
		return err
	}

	createdAt := category.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		err := r.queries.CreateCategory(ctx, queries.CreateCategoryParams{
			ID:        id,
			Name:      category.Name,
			Icon:      category.Icon,
			Color:     category.Color,
			SortOrder: int64(category.SortOrder),
			IsDefault: category.IsDefault,
			CreatedAt: createdAt,
		})
		if err != nil {
			storeErr := storeerrors.NewStoreErrorWithContext("CreateCategory", err, r.classifyError(err), map[string]string{
				"id": id,
			})
			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error creating category", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "CreateCategory", map[string]interface{}{"id": id})
			}
			return storeErr
		}
		return nil
	})
}

// UpdateCategory updates a category's display fields
func (r *SQLiteRepository) UpdateCategory(ctx context.Context, category *types.Category) error {
	if category == nil {
		err := storeerrors.NewStoreError("UpdateCategory", fmt.Errorf("category is nil"), storeerrors.ErrCodeValidation)
		logging.LogError(r.logger, err, "UpdateCategory", nil)
		return err
	}

	id := types.NormalizeCategoryID(category.ID)
	if id == "" {
		err := storeerrors.NewStoreError("UpdateCategory", fmt.Errorf("category id is empty"), storeerrors.ErrCodeValidation)
		logging.LogError(r.logger, err, "UpdateCategory", nil)
		return err
	}

	return storeerrors.WithRetry(ctx, r.retryConfig, func() error {
		err := r.queries.UpdateCategory(ctx, queries.UpdateCategoryParams{
			Name:      category.Name,
			Icon:      category.Icon,
			Color:     category.Color,
			SortOrder: int64(category.SortOrder),
			ID:        id,
		})
		if err != nil {
			storeErr := storeerrors.NewStoreErrorWithContext("UpdateCategory", err, r.classifyError(err), map[string]string{
				"id": id,
			})
			if storeErr.IsRetryable() {
				r.logger.Debug("Retryable error updating category", "error", err)
			} else {
				logging.LogError(r.logger, storeErr, "UpdateCategory", map[string]interface{}{"id": id})
			}
			return storeErr
		}
		return nil
	})
}

// DeleteCategory removes a non-default category. Deleting a default
// category is a validation error. Applications referencing the deleted
// category fall back to uncategorized via the schema's ON DELETE SET NULL.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	normalized := types.NormalizeCategoryID(id)
	if normalized == "" {
		err := storeerrors.NewStoreError("DeleteCategory", fmt.Errorf("category id is empty"), storeerrors.ErrCodeValidation)
		logging.LogError(r.logger, err, "DeleteCategory", nil)
		return err
	}

	deleted, err := r.queries.DeleteCategory(ctx, normalized)
	if err != nil {
		storeErr := storeerrors.NewStoreErrorWithContext("DeleteCategory", err, r.classifyError(err), map[string]string{
			"id": normalized,
		})
		logging.LogError(r.logger, storeErr, "DeleteCategory", nil)
		return storeErr
	}

	if deleted == 0 {
		return storeerrors.NewStoreErrorWithContext("DeleteCategory",
			fmt.Errorf("category not found or is a default category"), storeerrors.ErrCodeValidation,
			map[string]string{"id": normalized})
	}

	return nil
}

// ListApplications returns all tracked applications ordered by total time
func (r *SQLiteRepository) ListApplications(ctx context.Context) ([]types.Application, error) {
	rows, err := r.queries.ListApplications(ctx)
	if err != nil {
		return nil, storeerrors.NewStoreError("ListApplications", err, r.classifyError(err))
	}

	apps := make([]types.Application, len(rows))
	for i, row := range rows {
		apps[i] = r.convertApplicationFromDB(row)
	}

	return apps, nil
}

// AssignCategory links an application to a category. An empty category
// id clears the assignment. A non-empty id must reference an existing
// category.
func (r *SQLiteRepository) AssignCategory(ctx context.Context, applicationID int64, categoryID string) error {
	normalized := types.NormalizeCategoryID(categoryID)

	if normalized != "" {
		if _, err := r.queries.GetCategory(ctx, normalized); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storeerrors.NewStoreErrorWithContext("AssignCategory",
					fmt.Errorf("category does not exist"), storeerrors.ErrCodeNotFound,
					map[string]string{"category_id": normalized})
			}
			return storeerrors.NewStoreError("AssignCategory", err, r.classifyError(err))
		}
	}

	err := r.queries.SetApplicationCategory(ctx, queries.SetApplicationCategoryParams{
		CategoryID: r.nullStringFromString(normalized),
		ID:         applicationID,
	})
	if err != nil {
		storeErr := storeerrors.NewStoreErrorWithContext("AssignCategory", err, r.classifyError(err), map[string]string{
			"category_id": normalized,
		})
		logging.LogError(r.logger, storeErr, "AssignCategory", nil)
		return storeErr
	}

	return nil
}
