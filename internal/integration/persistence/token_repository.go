package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// TokenRepository stores refresh and password reset tokens. Callers pass raw
// tokens; only their hashes reach the database.
type TokenRepository interface {
	StoreRefresh(ctx context.Context, raw string, userID uuid.UUID, issuedAt, expiresAt time.Time) error

	// ConsumeRefresh revokes the token if it is still live and reports whether
	// it was. Two concurrent rotations of one token cannot both succeed.
	ConsumeRefresh(ctx context.Context, raw string, now time.Time) (bool, error)

	RevokeRefresh(ctx context.Context, raw string, now time.Time) error
	RevokeAllRefresh(ctx context.Context, userID uuid.UUID, now time.Time) error

	StoreReset(ctx context.Context, raw string, userID uuid.UUID, email string, issuedAt, expiresAt time.Time) error

	// FindReset returns the unconsumed reset token, or nil if there is none.
	// Expiry is left to the caller so it can be reported separately.
	FindReset(ctx context.Context, raw string) (*model.PasswordResetTokenModel, error)

	// ConsumeReset marks the token used, reporting false if it already was.
	ConsumeReset(ctx context.Context, raw string, now time.Time) (bool, error)

	// PurgeStale deletes every token that can no longer be used as of now and
	// returns how many rows went.
	PurgeStale(ctx context.Context, now time.Time) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) StoreRefresh(ctx context.Context, raw string, userID uuid.UUID, issuedAt, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		TokenHash: model.HashToken(raw),
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: issuedAt.UTC(),
	}).Error
}

func (r *tokenRepository) ConsumeRefresh(ctx context.Context, raw string, now time.Time) (bool, error) {
	now = now.UTC()
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", model.HashToken(raw), now).
		Update("revoked_at", now)
	return result.RowsAffected == 1, result.Error
}

func (r *tokenRepository) RevokeRefresh(ctx context.Context, raw string, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND revoked_at IS NULL", model.HashToken(raw)).
		Update("revoked_at", now.UTC()).Error
}

func (r *tokenRepository) RevokeAllRefresh(ctx context.Context, userID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now.UTC()).Error
}

func (r *tokenRepository) StoreReset(ctx context.Context, raw string, userID uuid.UUID, email string, issuedAt, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.PasswordResetTokenModel{
		ID:        uuid.New(),
		TokenHash: model.HashToken(raw),
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: issuedAt.UTC(),
	}).Error
}

func (r *tokenRepository) FindReset(ctx context.Context, raw string) (*model.PasswordResetTokenModel, error) {
	var token model.PasswordResetTokenModel
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND consumed_at IS NULL", model.HashToken(raw)).
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) ConsumeReset(ctx context.Context, raw string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.PasswordResetTokenModel{}).
		Where("token_hash = ? AND consumed_at IS NULL", model.HashToken(raw)).
		Update("consumed_at", now.UTC())
	return result.RowsAffected == 1, result.Error
}

func (r *tokenRepository) PurgeStale(ctx context.Context, now time.Time) (int64, error) {
	now = now.UTC()
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stale := range []struct {
			model any
			where string
		}{
			{&model.RefreshTokenModel{}, "revoked_at IS NOT NULL OR expires_at <= ?"},
			{&model.PasswordResetTokenModel{}, "consumed_at IS NOT NULL OR expires_at <= ?"},
		} {
			result := tx.Where(stale.where, now).Delete(stale.model)
			if result.Error != nil {
				return result.Error
			}
			removed += result.RowsAffected
		}
		return nil
	})
	return removed, err
}
