package dto

import (
	"github.com/personal-ledger/backend/internal/application/usecase/sms"
)

// ParseSMSRequest represents a forwarded bank message.
type ParseSMSRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message" binding:"required"`
}

// ParseSMSResponse carries one of the four ingestion outcomes in Status.
// Fields not relevant to the outcome are omitted.
type ParseSMSResponse struct {
	Status           string               `json:"status"`
	SuggestedSender  string               `json:"suggested_sender,omitempty"`
	SuggestedMessage string               `json:"suggested_message,omitempty"`
	Hint             string               `json:"hint,omitempty"`
	Error            string               `json:"error,omitempty"`
	ID               string               `json:"id,omitempty"`
	BankName         string               `json:"bank_name,omitempty"`
	Alerts           *[]string            `json:"alerts,omitempty"`
	Transaction      *TransactionResponse `json:"transaction,omitempty"`
}

// ToParseSMSResponse converts the ingestion outcome to its DTO.
func ToParseSMSResponse(output *sms.ParseSMSOutput) ParseSMSResponse {
	resp := ParseSMSResponse{
		Status:           string(output.Outcome),
		SuggestedSender:  output.SuggestedSender,
		SuggestedMessage: output.SuggestedMessage,
		Hint:             output.Hint,
		Error:            output.Error,
		BankName:         output.BankName,
	}
	if output.Transaction != nil {
		t := ToTransactionResponse(output.Transaction)
		resp.ID = t.ID
		resp.Transaction = &t
	}
	if output.Outcome == sms.OutcomeSaved {
		alerts := output.Alerts
		if alerts == nil {
			alerts = []string{}
		}
		resp.Alerts = &alerts
	}
	return resp
}
