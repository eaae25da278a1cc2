package backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// ExportTransactionsInput represents the input for an export.
type ExportTransactionsInput struct {
	UserID uuid.UUID
	Format Format
}

// ExportTransactionsOutput holds the encoded dump.
type ExportTransactionsOutput struct {
	Data        []byte
	ContentType string
	Count       int
}

// ExportTransactionsUseCase dumps every transaction of a user.
type ExportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute performs the export. CSV is the default format.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	format := input.Format
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatJSON && format != FormatXLSX {
		return nil, unsupportedFormat()
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, input.UserID, entity.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	rows := make([]Row, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, rowFromTransaction(t))
	}

	switch format {
	case FormatJSON:
		data, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to encode backup: %w", err)
		}
		return &ExportTransactionsOutput{Data: data, ContentType: "application/json", Count: len(rows)}, nil
	case FormatXLSX:
		data, err := encodeXLSX(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to encode backup: %w", err)
		}
		return &ExportTransactionsOutput{Data: data, ContentType: xlsxContentType, Count: len(rows)}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.values()); err != nil {
			return nil, fmt.Errorf("failed to encode backup: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	return &ExportTransactionsOutput{Data: buf.Bytes(), ContentType: "text/csv", Count: len(rows)}, nil
}
