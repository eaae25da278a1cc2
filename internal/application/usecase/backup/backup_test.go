package backup

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

type memoryLedger struct {
	mu           sync.Mutex
	transactions []*entity.Transaction
}

func (m *memoryLedger) Create(_ context.Context, t *entity.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, t)
	return nil
}

func (m *memoryLedger) CreateIfAbsent(_ context.Context, t *entity.Transaction) (*entity.Transaction, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.transactions {
		if existing.DuplicateKey().String() == t.DuplicateKey().String() {
			return existing, false, nil
		}
	}
	m.transactions = append(m.transactions, t)
	return t, true, nil
}

func (m *memoryLedger) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryLedger) FindByFilter(_ context.Context, userID uuid.UUID, _ entity.TransactionFilter) ([]*entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range m.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryLedger) FindByUserAndBank(context.Context, uuid.UUID, string) ([]*entity.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryLedger) GetTotals(context.Context, uuid.UUID, entity.TransactionFilter) (*entity.TransactionTotals, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryLedger) Update(context.Context, *entity.Transaction) error {
	return errors.New("not implemented")
}

func (m *memoryLedger) Delete(context.Context, uuid.UUID) error {
	return errors.New("not implemented")
}

type memoryCategories struct {
	categories []*entity.Category
}

func (m *memoryCategories) Create(context.Context, *entity.Category) error { return nil }

func (m *memoryCategories) CreateBatch(context.Context, []*entity.Category) error { return nil }

func (m *memoryCategories) FindByID(context.Context, uuid.UUID) (*entity.Category, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryCategories) FindByUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	return m.categories, nil
}

func (m *memoryCategories) FindByNameAndUser(context.Context, string, uuid.UUID) (*entity.Category, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryCategories) Update(context.Context, *entity.Category) error { return nil }

func (m *memoryCategories) Delete(context.Context, uuid.UUID) error { return nil }

func (m *memoryCategories) ExistsByNameAndUser(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

func seedLedger(userID uuid.UUID) *memoryLedger {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &memoryLedger{transactions: []*entity.Transaction{
		entity.NewTransaction(userID, date, "Salary", decimal.RequireFromString("5000.00"), entity.DirectionCredit, "march salary", entity.OriginManual, "salary", "HDFC"),
		entity.NewTransaction(userID, date.AddDate(0, 0, 1), "Dinner, friends", decimal.RequireFromString("850.25"), entity.DirectionDebit, "said \"thanks\"", entity.OriginGPay, "", "HDFC"),
	}}
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatJSON, FormatXLSX} {
		t.Run(string(format), func(t *testing.T) {
			userID := uuid.New()
			source := seedLedger(userID)

			exported, err := NewExportTransactionsUseCase(source).Execute(context.Background(), ExportTransactionsInput{UserID: userID, Format: format})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if exported.Count != 2 {
				t.Fatalf("expected 2 exported rows, got %d", exported.Count)
			}

			target := &memoryLedger{}
			importer := NewImportTransactionsUseCase(target, &memoryCategories{}, noopLocker{})
			out, err := importer.Execute(context.Background(), ImportTransactionsInput{UserID: userID, Format: format, Data: exported.Data})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if out.Imported != 2 || out.Skipped != 0 {
				t.Errorf("expected 2 imported and 0 skipped, got %d and %d", out.Imported, out.Skipped)
			}

			for i, want := range source.transactions {
				got := target.transactions[i]
				if got.DuplicateKey().String() != want.DuplicateKey().String() {
					t.Errorf("expected key %q, got %q", want.DuplicateKey().String(), got.DuplicateKey().String())
				}
				if got.Name != want.Name || got.Origin != want.Origin || got.Direction != want.Direction {
					t.Errorf("expected %+v, got %+v", want, got)
				}
			}

			// Importing the same dump again changes nothing.
			again, err := importer.Execute(context.Background(), ImportTransactionsInput{UserID: userID, Format: format, Data: exported.Data})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if again.Imported != 0 || again.Skipped != 2 {
				t.Errorf("expected 0 imported and 2 skipped, got %d and %d", again.Imported, again.Skipped)
			}
		})
	}
}

func TestExport_CSVHeader(t *testing.T) {
	userID := uuid.New()

	out, err := NewExportTransactionsUseCase(&memoryLedger{}).Execute(context.Background(), ExportTransactionsInput{UserID: userID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.ContentType != "text/csv" {
		t.Errorf("expected text/csv, got %s", out.ContentType)
	}
	expected := "id,date,name,amount,type,description,source,category,bank_name\n"
	if string(out.Data) != expected {
		t.Errorf("expected %q, got %q", expected, string(out.Data))
	}
}

func TestImport_Rejections(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		format       Format
		data         string
		expectedCode domainerror.BackupErrorCode
	}{
		{
			name:         "empty file",
			format:       FormatCSV,
			data:         "  \n",
			expectedCode: domainerror.ErrCodeEmptyBackup,
		},
		{
			name:         "unknown format",
			format:       Format("xml"),
			data:         "<rows/>",
			expectedCode: domainerror.ErrCodeUnsupportedFormat,
		},
		{
			name:         "broken json",
			format:       FormatJSON,
			data:         "[{",
			expectedCode: domainerror.ErrCodeInvalidBackupRow,
		},
		{
			name:         "bad csv amount",
			format:       FormatCSV,
			data:         "date,name,amount,type,bank_name\n2025-03-01,x,abc,debit,HDFC\n",
			expectedCode: domainerror.ErrCodeInvalidBackupRow,
		},
		{
			name:         "bad type in a later row",
			format:       FormatCSV,
			data:         "date,name,amount,type,bank_name\n2025-03-01,x,1.00,debit,HDFC\n2025-03-02,y,2.00,refund,HDFC\n",
			expectedCode: domainerror.ErrCodeInvalidBackupRow,
		},
		{
			name:         "not a workbook",
			format:       FormatXLSX,
			data:         "id,date\n",
			expectedCode: domainerror.ErrCodeInvalidBackupRow,
		},
		{
			name:         "missing bank",
			format:       FormatJSON,
			data:         `[{"date":"2025-03-01","name":"x","amount":"1.00","type":"debit"}]`,
			expectedCode: domainerror.ErrCodeInvalidBackupRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &memoryLedger{}
			importer := NewImportTransactionsUseCase(ledger, &memoryCategories{}, noopLocker{})

			_, err := importer.Execute(context.Background(), ImportTransactionsInput{UserID: userID, Format: tt.format, Data: []byte(tt.data)})

			var backupErr *domainerror.BackupError
			if !errors.As(err, &backupErr) {
				t.Fatalf("expected *BackupError, got %v", err)
			}
			if backupErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, backupErr.Code)
			}
			if len(ledger.transactions) != 0 {
				t.Errorf("expected nothing stored, got %d rows", len(ledger.transactions))
			}
		})
	}
}

func TestImport_Defaults(t *testing.T) {
	userID := uuid.New()
	ledger := &memoryLedger{}
	categories := &memoryCategories{categories: []*entity.Category{entity.NewCategory(userID, "rent", "landlord", true)}}
	data := "date,name,amount,type,description,bank_name\n2025-03-01T10:00:00Z,Rent,2000.00,DEBIT,paid landlord,SBI\n"

	out, err := NewImportTransactionsUseCase(ledger, categories, noopLocker{}).Execute(context.Background(), ImportTransactionsInput{UserID: userID, Format: FormatCSV, Data: []byte(data)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Imported != 1 {
		t.Fatalf("expected 1 imported row, got %d", out.Imported)
	}

	got := ledger.transactions[0]

	// Test missing source defaults to import.
	t.Run("source defaults to import", func(t *testing.T) {
		if got.Origin != entity.OriginImport {
			t.Errorf("expected origin %s, got %s", entity.OriginImport, got.Origin)
		}
	})

	// Test missing category is auto-tagged.
	t.Run("category is auto-tagged", func(t *testing.T) {
		if got.Category != "rent" {
			t.Errorf("expected category rent, got %q", got.Category)
		}
	})

	// Test timestamps keep only the calendar date.
	t.Run("timestamp is truncated to the date", func(t *testing.T) {
		want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		if !got.Date.Equal(want) {
			t.Errorf("expected date %s, got %s", want, got.Date)
		}
	})

	// Test the type is case-insensitive.
	t.Run("type is case-insensitive", func(t *testing.T) {
		if got.Direction != entity.DirectionDebit {
			t.Errorf("expected direction debit, got %s", got.Direction)
		}
	})
}

func TestImport_XLSX(t *testing.T) {
	userID := uuid.New()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Date", "Name", "Amount", "Type", "Bank_Name"},
		{"2025-03-01", "Groceries", "412.50", "debit", "ICICI"},
		{},
		{"2025-03-02", "Refund", "99.00", "credit", "ICICI"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("failed to build workbook: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to build workbook: %v", err)
	}

	ledger := &memoryLedger{}
	out, err := NewImportTransactionsUseCase(ledger, &memoryCategories{}, noopLocker{}).Execute(context.Background(), ImportTransactionsInput{UserID: userID, Format: FormatXLSX, Data: buf.Bytes()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Blank rows between records are ignored
	t.Run("blank rows skipped", func(t *testing.T) {
		if out.Imported != 2 {
			t.Errorf("expected 2 imported rows, got %d", out.Imported)
		}
	})

	// Header names match regardless of case
	t.Run("header is case-insensitive", func(t *testing.T) {
		if len(ledger.transactions) != 2 {
			t.Fatalf("expected 2 stored rows, got %d", len(ledger.transactions))
		}
		got := ledger.transactions[0]
		if got.BankName != "ICICI" || !got.Amount.Equal(decimal.RequireFromString("412.50")) {
			t.Errorf("unexpected transaction %+v", got)
		}
	})

	// Rows no category matches are stored without one
	t.Run("unmatched rows stay uncategorized", func(t *testing.T) {
		for _, got := range ledger.transactions {
			if got.Category != "" {
				t.Errorf("expected empty category, got %q", got.Category)
			}
		}
	})
}

func TestExport_XLSXSheet(t *testing.T) {
	userID := uuid.New()

	out, err := NewExportTransactionsUseCase(seedLedger(userID)).Execute(context.Background(), ExportTransactionsInput{UserID: userID, Format: FormatXLSX})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.ContentType != xlsxContentType {
		t.Errorf("expected %s, got %s", xlsxContentType, out.ContentType)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out.Data))
	if err != nil {
		t.Fatalf("expected a readable workbook, got %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("expected sheet %s, got %v", xlsxSheet, err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d rows", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(columns, ",") {
		t.Errorf("expected header %v, got %v", columns, rows[0])
	}
	if rows[2][3] != "850.25" {
		t.Errorf("expected amount kept as text 850.25, got %s", rows[2][3])
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("05/03/2025"); err == nil {
		t.Error("expected an error for a slash separated date")
	}
	got, err := parseDate(" 2025-03-05 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(got.String(), "2025-03-05 00:00:00") {
		t.Errorf("expected 2025-03-05 midnight, got %s", got)
	}
}
