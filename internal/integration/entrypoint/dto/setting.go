package dto

import (
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// UpsertSettingsRequest represents the request body for saving bank thresholds.
// Any combination of fields may be sent; at least one must be present.
type UpsertSettingsRequest struct {
	BankName      string           `json:"bank_name" binding:"required"`
	MinBalance    *decimal.Decimal `json:"min_balance,omitempty"`
	ActualBalance *decimal.Decimal `json:"actual_balance,omitempty"`
	Category      string           `json:"category,omitempty"`
	Limit         *decimal.Decimal `json:"limit,omitempty"`
}

// UpdateSettingRequest represents the request body for editing one settings row.
type UpdateSettingRequest struct {
	MinBalance    *decimal.Decimal `json:"min_balance,omitempty"`
	ActualBalance *decimal.Decimal `json:"actual_balance,omitempty"`
	Limit         *decimal.Decimal `json:"limit,omitempty"`
}

// SettingResponse represents one settings row.
type SettingResponse struct {
	ID            string  `json:"id"`
	BankName      string  `json:"bank_name"`
	MinBalance    *string `json:"min_balance"`
	ActualBalance *string `json:"actual_balance"`
	Category      string  `json:"category,omitempty"`
	Limit         *string `json:"limit"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// SettingListResponse represents rows written by an upsert.
type SettingListResponse struct {
	Settings []SettingResponse `json:"settings"`
}

// BankBalanceResponse is the grouped settings view of one bank.
type BankBalanceResponse struct {
	BankName          string            `json:"bank_name"`
	MinBalance        *SettingResponse  `json:"min_balance"`
	ActualBalance     string            `json:"actual_balance"`
	CalculatedBalance string            `json:"calculated_balance"`
	TotalBalance      string            `json:"total_balance"`
	CategoryLimits    []SettingResponse `json:"category_limits"`
}

// ToSettingResponse converts a domain Setting to a SettingResponse DTO.
func ToSettingResponse(s *entity.Setting) SettingResponse {
	return SettingResponse{
		ID:            s.ID.String(),
		BankName:      s.BankName,
		MinBalance:    FormatOptionalAmount(s.MinBalance),
		ActualBalance: FormatOptionalAmount(s.ActualBalance),
		Category:      s.Category,
		Limit:         FormatOptionalAmount(s.Limit),
		CreatedAt:     FormatTimestamp(s.CreatedAt),
		UpdatedAt:     FormatTimestamp(s.UpdatedAt),
	}
}

// ToSettingListResponse converts settings rows to a SettingListResponse.
func ToSettingListResponse(settings []*entity.Setting) SettingListResponse {
	items := make([]SettingResponse, len(settings))
	for i, s := range settings {
		items[i] = ToSettingResponse(s)
	}
	return SettingListResponse{Settings: items}
}

// ToBankBalanceResponse converts a BankBalanceView to its DTO.
func ToBankBalanceResponse(view *entity.BankBalanceView) BankBalanceResponse {
	resp := BankBalanceResponse{
		BankName:          view.BankName,
		ActualBalance:     FormatAmount(view.ActualBalance),
		CalculatedBalance: FormatAmount(view.CalculatedBalance),
		TotalBalance:      FormatAmount(view.TotalBalance),
		CategoryLimits:    make([]SettingResponse, len(view.CategoryLimits)),
	}
	if view.MinBalance != nil {
		minRow := ToSettingResponse(view.MinBalance)
		resp.MinBalance = &minRow
	}
	for i, s := range view.CategoryLimits {
		resp.CategoryLimits[i] = ToSettingResponse(s)
	}
	return resp
}
