package dto

import "github.com/personal-ledger/backend/internal/domain/entity"

// AnalyticsSummaryResponse represents one period summary.
type AnalyticsSummaryResponse struct {
	ID           string `json:"id"`
	BankName     string `json:"bank_name"`
	Period       string `json:"period"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	NetBalance   string `json:"net_balance"`
	Status       string `json:"status"`
	GeneratedAt  string `json:"generated_at"`
}

// GenerateAnalyticsResponse holds the fresh summaries plus the stored history.
type GenerateAnalyticsResponse struct {
	Generated []AnalyticsSummaryResponse `json:"generated"`
	History   []AnalyticsSummaryResponse `json:"history"`
}

// AnalyticsListResponse represents the stored history.
type AnalyticsListResponse struct {
	Summaries []AnalyticsSummaryResponse `json:"summaries"`
}

// ToAnalyticsSummaryResponse converts a domain summary to its DTO.
func ToAnalyticsSummaryResponse(s *entity.AnalyticsSummary) AnalyticsSummaryResponse {
	return AnalyticsSummaryResponse{
		ID:           s.ID.String(),
		BankName:     s.BankName,
		Period:       string(s.Period),
		StartDate:    FormatDate(s.StartDate),
		EndDate:      FormatDate(s.EndDate),
		TotalIncome:  FormatAmount(s.TotalIncome),
		TotalExpense: FormatAmount(s.TotalExpense),
		NetBalance:   FormatAmount(s.NetBalance),
		Status:       string(s.Status),
		GeneratedAt:  FormatTimestamp(s.GeneratedAt),
	}
}

// ToAnalyticsSummaryResponses converts a list of summaries.
func ToAnalyticsSummaryResponses(summaries []*entity.AnalyticsSummary) []AnalyticsSummaryResponse {
	items := make([]AnalyticsSummaryResponse, len(summaries))
	for i, s := range summaries {
		items[i] = ToAnalyticsSummaryResponse(s)
	}
	return items
}
