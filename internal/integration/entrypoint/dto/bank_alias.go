package dto

import "github.com/personal-ledger/backend/internal/domain/entity"

// CreateAliasRequest represents the request body for adding a bank alias.
type CreateAliasRequest struct {
	Alias    string `json:"alias" binding:"required,max=100"`
	BankName string `json:"bank_name" binding:"required,max=100"`
}

// AliasResponse represents a bank alias in API responses.
type AliasResponse struct {
	ID        string `json:"id"`
	Alias     string `json:"alias"`
	BankName  string `json:"bank_name"`
	CreatedAt string `json:"created_at"`
}

// AliasListResponse represents the response for listing aliases.
type AliasListResponse struct {
	Aliases []AliasResponse `json:"aliases"`
}

// ToAliasResponse converts a domain BankAlias to an AliasResponse DTO.
func ToAliasResponse(a *entity.BankAlias) AliasResponse {
	return AliasResponse{
		ID:        a.ID.String(),
		Alias:     a.Alias,
		BankName:  a.BankName,
		CreatedAt: FormatTimestamp(a.CreatedAt),
	}
}

// ToAliasListResponse converts aliases to an AliasListResponse.
func ToAliasListResponse(aliases []*entity.BankAlias) AliasListResponse {
	items := make([]AliasResponse, len(aliases))
	for i, a := range aliases {
		items[i] = ToAliasResponse(a)
	}
	return AliasListResponse{Aliases: items}
}
