package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// HashToken is the form in which refresh and reset tokens are stored. A leaked
// table therefore holds nothing a client could present.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// RefreshTokenModel tracks an issued refresh token until it is rotated,
// revoked or expires.
type RefreshTokenModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TokenHash string     `gorm:"type:char(64);uniqueIndex;not null"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	RevokedAt *time.Time `gorm:"index"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// PasswordResetTokenModel is a one-time password reset grant.
type PasswordResetTokenModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TokenHash  string     `gorm:"type:char(64);uniqueIndex;not null"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	Email      string     `gorm:"type:varchar(255);not null"`
	ConsumedAt *time.Time `gorm:"index"`
	ExpiresAt  time.Time  `gorm:"not null"`
	CreatedAt  time.Time  `gorm:"not null"`
}

func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}
