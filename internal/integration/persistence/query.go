package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

// first loads the single M matching where, reporting a miss as notFound.
func first[M any](ctx context.Context, db *gorm.DB, notFound error, where string, args ...any) (*M, error) {
	var row M
	err := db.WithContext(ctx).Where(where, args...).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func exists[M any](ctx context.Context, db *gorm.DB, where string, args ...any) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(M)).Where(where, args...).Limit(1).Count(&count).Error
	return count > 0, err
}

// uniqueViolation reports whether err is a unique index violation and names
// the index (postgres) or table.column list (sqlite) that was hit.
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}
	const sqliteMarker = "UNIQUE constraint failed: "
	msg := err.Error()
	if i := strings.Index(msg, sqliteMarker); i >= 0 {
		return msg[i+len(sqliteMarker):], true
	}
	return "", false
}
