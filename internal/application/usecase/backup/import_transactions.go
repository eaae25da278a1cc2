package backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/application/usecase/category"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// ImportTransactionsInput represents an uploaded backup.
type ImportTransactionsInput struct {
	UserID uuid.UUID
	Format Format
	Data   []byte
}

// ImportTransactionsOutput reports how many rows were stored and how many were duplicates.
type ImportTransactionsOutput struct {
	Imported int
	Skipped  int
}

// ImportTransactionsUseCase restores a backup, skipping rows already in the ledger.
type ImportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	locker          adapter.IngestLocker
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	locker adapter.IngestLocker,
) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		locker:          locker,
	}
}

// Execute performs the import. Every row is validated before anything is written,
// so a malformed file stores nothing.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	rows, err := decodeRows(input.Format, input.Data)
	if err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, 0, len(rows))
	for i, r := range rows {
		t, err := toTransaction(input.UserID, r)
		if err != nil {
			return nil, domainerror.NewBackupError(
				domainerror.ErrCodeInvalidBackupRow,
				fmt.Sprintf("row %d: %s", i+1, err.Error()),
				domainerror.ErrInvalidBackupRow,
			)
		}
		transactions = append(transactions, t)
	}

	var categories []*entity.Category
	out := &ImportTransactionsOutput{}

	for _, t := range transactions {
		if t.Category == "" {
			if categories == nil {
				if categories, err = uc.categoryRepo.FindByUser(ctx, input.UserID); err != nil {
					return nil, fmt.Errorf("failed to load categories: %w", err)
				}
			}
			t.Category = category.StoredTag(t.Description, categories)
		}

		created, err := uc.insertOnce(ctx, t)
		if err != nil {
			return nil, err
		}
		if created {
			out.Imported++
		} else {
			out.Skipped++
		}
	}

	slog.Info("Backup imported", "userID", input.UserID, "imported", out.Imported, "skipped", out.Skipped)
	return out, nil
}

func (uc *ImportTransactionsUseCase) insertOnce(ctx context.Context, t *entity.Transaction) (bool, error) {
	unlock, err := uc.locker.Lock(ctx, t.DuplicateKey().String())
	if err != nil {
		return false, fmt.Errorf("failed to acquire ingest lock: %w", err)
	}
	defer unlock()

	_, created, err := uc.transactionRepo.CreateIfAbsent(ctx, t)
	if err != nil {
		return false, fmt.Errorf("failed to store transaction: %w", err)
	}
	return created, nil
}

func toTransaction(userID uuid.UUID, r Row) (*entity.Transaction, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", r.Date)
	}
	if !r.Amount.IsPositive() {
		return nil, errors.New("amount must be greater than zero")
	}
	direction := entity.Direction(strings.ToLower(strings.TrimSpace(r.Type)))
	if !direction.IsValid() {
		return nil, fmt.Errorf("invalid type %q", r.Type)
	}
	bank := strings.TrimSpace(r.BankName)
	if bank == "" {
		return nil, errors.New("bank_name is required")
	}

	origin := entity.Origin(strings.TrimSpace(r.Source))
	if origin == "" {
		origin = entity.OriginImport
	}

	return entity.NewTransaction(
		userID,
		date,
		strings.TrimSpace(r.Name),
		r.Amount,
		direction,
		r.Description,
		origin,
		strings.TrimSpace(r.Category),
		bank,
	), nil
}

func decodeRows(format Format, data []byte) ([]Row, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeEmptyBackup,
			"backup file is empty",
			nil,
		)
	}

	switch format {
	case FormatJSON, "":
		var rows []Row
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, invalidFile(err)
		}
		return rows, nil
	case FormatCSV:
		return decodeCSV(data)
	case FormatXLSX:
		return decodeXLSX(data)
	default:
		return nil, unsupportedFormat()
	}
}

func decodeCSV(data []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err != nil {
		return nil, invalidFile(err)
	}
	get := headerIndex(header)

	var rows []Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, invalidFile(err)
		}
		row, err := rowFromRecord(rec, get)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func invalidFile(err error) error {
	return domainerror.NewBackupError(
		domainerror.ErrCodeInvalidBackupRow,
		"could not read backup file",
		err,
	)
}
