// Package model defines database models for persistence layer.
package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// KeywordList stores category keywords as a Postgres text array.
// Other dialects keep the same array literal in a text column.
type KeywordList []string

// Value implements the driver.Valuer interface.
func (k KeywordList) Value() (driver.Value, error) {
	return pq.StringArray(k).Value()
}

// Scan implements the sql.Scanner interface.
func (k *KeywordList) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*k = KeywordList(arr)
	return nil
}

// GormDataType keeps the schema parser from reading the slice as a relation.
func (KeywordList) GormDataType() string {
	return "text"
}

// GormDBDataType picks the column type per dialect.
func (KeywordList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name"`
	Name      string      `gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_user_name"`
	Keywords  KeywordList `gorm:"not null"`
	IsDefault bool        `gorm:"default:false"`
	CreatedAt time.Time   `gorm:"not null;index"`
	UpdatedAt time.Time   `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	keywords := make([]string, len(m.Keywords))
	copy(keywords, m.Keywords)

	return &entity.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Keywords:  keywords,
		IsDefault: m.IsDefault,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	keywords := make(KeywordList, len(category.Keywords))
	copy(keywords, category.Keywords)

	return &CategoryModel{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		Keywords:  keywords,
		IsDefault: category.IsDefault,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
