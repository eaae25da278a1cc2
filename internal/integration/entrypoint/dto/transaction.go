// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/usecase/transaction"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required"`
	Name        string          `json:"name" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=credit debit"`
	Description string          `json:"description,omitempty"`
	Source      string          `json:"source,omitempty" binding:"omitempty,oneof=manual gpay import"`
	Category    string          `json:"category,omitempty"`
	BankName    string          `json:"bank_name" binding:"required"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date        *string          `json:"date,omitempty"`
	Name        *string          `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty" binding:"omitempty,oneof=credit debit"`
	Description *string          `json:"description,omitempty"`
	Source      *string          `json:"source,omitempty" binding:"omitempty,oneof=manual gpay import"`
	Category    *string          `json:"category,omitempty"`
	BankName    *string          `json:"bank_name,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	BankName    string `json:"bank_name"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse     `json:"transactions"`
	Totals       TransactionTotalsResponse `json:"totals"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		Date:        FormatDate(t.Date),
		Name:        t.Name,
		Amount:      FormatAmount(t.Amount),
		Type:        string(t.Direction),
		Description: t.Description,
		Source:      string(t.Origin),
		Category:    t.Category,
		BankName:    t.BankName,
		CreatedAt:   FormatTimestamp(t.CreatedAt),
		UpdatedAt:   FormatTimestamp(t.UpdatedAt),
	}
}

// ToTransactionListResponse converts the list use case output to a TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, t := range output.Transactions {
		transactions[i] = ToTransactionResponse(t)
	}

	totals := TransactionTotalsResponse{
		IncomeTotal:  FormatAmount(decimal.Zero),
		ExpenseTotal: FormatAmount(decimal.Zero),
		NetTotal:     FormatAmount(decimal.Zero),
	}
	if output.Totals != nil {
		totals = TransactionTotalsResponse{
			IncomeTotal:  FormatAmount(output.Totals.IncomeTotal),
			ExpenseTotal: FormatAmount(output.Totals.ExpenseTotal),
			NetTotal:     FormatAmount(output.Totals.NetTotal),
		}
	}

	return TransactionListResponse{
		Transactions: transactions,
		Totals:       totals,
	}
}
