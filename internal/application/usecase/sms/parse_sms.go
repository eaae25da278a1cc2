package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/application/usecase/category"
	"github.com/personal-ledger/backend/internal/application/usecase/setting"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// Outcome is the non-fatal result kind of an ingestion attempt.
type Outcome string

const (
	OutcomeUnknownBank Outcome = "unknown_bank"
	OutcomeUnparseable Outcome = "unparseable"
	OutcomeDuplicate   Outcome = "duplicate"
	OutcomeSaved       Outcome = "saved"
)

const unknownBankHint = "No match found. Please select the correct bank."

// ParseSMSInput represents an inbound notification.
type ParseSMSInput struct {
	UserID  uuid.UUID
	Sender  string
	Message string
}

// ParseSMSOutput carries the outcome and the payload relevant to it.
type ParseSMSOutput struct {
	Outcome Outcome

	// unknown_bank
	SuggestedSender  string
	SuggestedMessage string
	Hint             string

	// unparseable
	Error string

	// duplicate and saved
	Transaction *entity.Transaction

	// saved
	BankName string
	Alerts   []string
}

// ParseSMSUseCase ingests bank SMS notifications into the ledger.
type ParseSMSUseCase struct {
	aliasRepo       adapter.BankAliasRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	settingRepo     adapter.SettingRepository
	userRepo        adapter.UserRepository
	emailService    adapter.EmailService
	locker          adapter.IngestLocker
}

// NewParseSMSUseCase creates a new ParseSMSUseCase instance.
// emailService may be nil, in which case alerts are only returned to the caller.
func NewParseSMSUseCase(
	aliasRepo adapter.BankAliasRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	settingRepo adapter.SettingRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
	locker adapter.IngestLocker,
) *ParseSMSUseCase {
	return &ParseSMSUseCase{
		aliasRepo:       aliasRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		settingRepo:     settingRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		locker:          locker,
	}
}

// Execute identifies the bank, extracts the transaction, stores it unless it is a
// duplicate, and evaluates the bank's budget alerts against the updated ledger.
func (uc *ParseSMSUseCase) Execute(ctx context.Context, input ParseSMSInput) (*ParseSMSOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, domainerror.NewSMSError(
			domainerror.ErrCodeMissingSMSFields,
			"message is required",
			nil,
		)
	}

	aliases, err := uc.aliasRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank aliases: %w", err)
	}

	bank := IdentifyBank(input.Sender, input.Message, aliases)
	if bank == entity.UnknownBank {
		return &ParseSMSOutput{
			Outcome:          OutcomeUnknownBank,
			SuggestedSender:  input.Sender,
			SuggestedMessage: input.Message,
			Hint:             unknownBankHint,
		}, nil
	}

	extracted, err := ExtractTransaction(input.Message)
	if err != nil {
		if errors.Is(err, domainerror.ErrUnparseableSMS) {
			return &ParseSMSOutput{Outcome: OutcomeUnparseable, Error: err.Error()}, nil
		}
		return nil, err
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	tag := category.StoredTag(input.Message, categories)

	txn := entity.NewTransaction(
		input.UserID,
		extracted.Date,
		bank+" "+string(extracted.Direction),
		extracted.Amount,
		extracted.Direction,
		entity.TruncateDescription(input.Message),
		entity.OriginGPay,
		tag,
		bank,
	)

	stored, created, err := uc.insertOnce(ctx, txn)
	if err != nil {
		return nil, err
	}
	if !created {
		slog.Info("Duplicate SMS ignored", "userID", input.UserID, "transactionID", stored.ID, "bank", bank)
		return &ParseSMSOutput{Outcome: OutcomeDuplicate, Transaction: stored}, nil
	}

	alerts, err := uc.evaluateAlerts(ctx, input.UserID, bank)
	if err != nil {
		return nil, err
	}
	if len(alerts) > 0 {
		uc.notify(ctx, input.UserID, bank, alerts)
	}

	return &ParseSMSOutput{
		Outcome:     OutcomeSaved,
		Transaction: stored,
		BankName:    bank,
		Alerts:      alerts,
	}, nil
}

// insertOnce holds the ingest lock for the duplicate key around the check-and-insert.
func (uc *ParseSMSUseCase) insertOnce(ctx context.Context, txn *entity.Transaction) (*entity.Transaction, bool, error) {
	unlock, err := uc.locker.Lock(ctx, txn.DuplicateKey().String())
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire ingest lock: %w", err)
	}
	defer unlock()

	stored, created, err := uc.transactionRepo.CreateIfAbsent(ctx, txn)
	if err != nil {
		return nil, false, fmt.Errorf("failed to store transaction: %w", err)
	}
	return stored, created, nil
}

func (uc *ParseSMSUseCase) evaluateAlerts(ctx context.Context, userID uuid.UUID, bank string) ([]string, error) {
	transactions, err := uc.transactionRepo.FindByUserAndBank(ctx, userID, bank)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	settings, err := uc.settingRepo.FindByUserAndBank(ctx, userID, bank)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return setting.EvaluateAlerts(setting.BuildSpending(transactions), settings), nil
}

// notify queues an alert email. Failures are logged; the transaction is already stored.
func (uc *ParseSMSUseCase) notify(ctx context.Context, userID uuid.UUID, bank string, alerts []string) {
	if uc.emailService == nil {
		return
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		slog.Error("Failed to load user for budget alert", "userID", userID, "error", err)
		return
	}
	if !user.EmailNotifications {
		return
	}

	if err := uc.emailService.QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{
		UserEmail: user.Email,
		UserName:  user.FullName(),
		BankName:  bank,
		Alerts:    alerts,
	}); err != nil {
		slog.Error("Failed to queue budget alert email", "userID", userID, "error", err)
	}
}
