// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"strings"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
// Keywords is a comma separated list.
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=50"`
	Keywords string `json:"keywords"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Keywords *string `json:"keywords,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Keywords   []string `json:"keywords"`
	KeywordCSV string   `json:"keywords_csv"`
	IsDefault  bool     `json:"is_default"`
	Limit      *string  `json:"limit"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	keywords := cat.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return CategoryResponse{
		ID:         cat.ID.String(),
		Name:       cat.Name,
		Keywords:   keywords,
		KeywordCSV: strings.Join(keywords, ","),
		IsDefault:  cat.IsDefault,
		CreatedAt:  FormatTimestamp(cat.CreatedAt),
		UpdatedAt:  FormatTimestamp(cat.UpdatedAt),
	}
}

// ToCategoryWithLimitResponse adds the configured spending limit.
func ToCategoryWithLimitResponse(c *entity.CategoryWithLimit) CategoryResponse {
	resp := ToCategoryResponse(c.Category)
	resp.Limit = FormatOptionalAmount(c.Limit)
	return resp
}

// ToCategoryListResponse converts categories with limits to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.CategoryWithLimit) CategoryListResponse {
	items := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		items[i] = ToCategoryWithLimitResponse(c)
	}
	return CategoryListResponse{Categories: items}
}
