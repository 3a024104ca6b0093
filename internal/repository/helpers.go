package repository

import (
	"database/sql"
	"time"

	queries "focal/internal/database/generated"
	storeerrors "focal/internal/infrastructure/errors"
	"focal/internal/types"
)

// nullStringFromString converts string to sql.NullString
func (r *SQLiteRepository) nullStringFromString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// stringFromNullString converts sql.NullString to string
func (r *SQLiteRepository) stringFromNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullTimeFromTime converts time.Time to sql.NullTime, treating the
// zero value as NULL
func (r *SQLiteRepository) nullTimeFromTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// convertCategoryFromDB converts a database Category to types.Category
func (r *SQLiteRepository) convertCategoryFromDB(dbCat queries.Category) types.Category {
	return types.Category{
		ID:        dbCat.ID,
		Name:      dbCat.Name,
		Icon:      dbCat.Icon,
		Color:     dbCat.Color,
		SortOrder: int(dbCat.SortOrder),
		IsDefault: dbCat.IsDefault,
		CreatedAt: dbCat.CreatedAt,
	}
}

// convertApplicationFromDB converts a database Application to types.Application
func (r *SQLiteRepository) convertApplicationFromDB(dbApp queries.Application) types.Application {
	return types.Application{
		ID:         dbApp.ID,
		Name:       dbApp.Name,
		CategoryID: r.stringFromNullString(dbApp.CategoryID),
		FirstSeen:  dbApp.FirstSeen,
		LastSeen:   dbApp.LastSeen,
		TotalTime:  dbApp.TotalTime,
		VisitCount: dbApp.VisitCount,
	}
}

// classifyError classifies database errors into store error codes
func (r *SQLiteRepository) classifyError(err error) storeerrors.ErrorCode {
	return storeerrors.ClassifyError(err)
}
