package sms

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

const hdfcDebit = "INR 600.00 debited from HDFC Bank A/c XX1234 on 05-03-2025 towards SWIGGY"

type parseFixture struct {
	userID       uuid.UUID
	aliases      *fakeAliasRepo
	categories   *fakeCategoryRepo
	transactions *fakeTransactionRepo
	settings     *fakeSettingRepo
	users        *fakeUserRepo
	email        *fakeEmailService
	locker       *keyLocker
	useCase      *ParseSMSUseCase
}

func newParseFixture() *parseFixture {
	user := entity.NewUser("alice", "alice@example.com", "Alice", "Doe", "hash")
	f := &parseFixture{
		userID:       user.ID,
		aliases:      &fakeAliasRepo{},
		categories:   &fakeCategoryRepo{},
		transactions: &fakeTransactionRepo{},
		settings:     &fakeSettingRepo{},
		users:        &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}},
		email:        &fakeEmailService{},
		locker:       newKeyLocker(),
	}
	f.useCase = NewParseSMSUseCase(f.aliases, f.categories, f.transactions, f.settings, f.users, f.email, f.locker)
	return f
}

func (f *parseFixture) parse(t *testing.T, sender, message string) *ParseSMSOutput {
	t.Helper()
	out, err := f.useCase.Execute(context.Background(), ParseSMSInput{UserID: f.userID, Sender: sender, Message: message})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return out
}

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestParseSMSUseCase_Execute(t *testing.T) {
	// Test a recognised message is stored with the derived fields.
	t.Run("saves a recognised message", func(t *testing.T) {
		f := newParseFixture()
		f.categories.categories = []*entity.Category{entity.NewCategory(f.userID, "food", "swiggy,zomato", false)}

		out := f.parse(t, "VM-HDFCBK", hdfcDebit)

		if out.Outcome != OutcomeSaved {
			t.Fatalf("expected outcome %s, got %s", OutcomeSaved, out.Outcome)
		}
		txn := out.Transaction
		if txn.Name != "HDFC debit" {
			t.Errorf("expected name 'HDFC debit', got %q", txn.Name)
		}
		if txn.Origin != entity.OriginGPay {
			t.Errorf("expected origin %s, got %s", entity.OriginGPay, txn.Origin)
		}
		if txn.Category != "food" {
			t.Errorf("expected category food, got %q", txn.Category)
		}
		if txn.Description != hdfcDebit {
			t.Errorf("expected the message as description, got %q", txn.Description)
		}
		if out.Alerts == nil || len(out.Alerts) != 0 {
			t.Errorf("expected an empty alert list, got %v", out.Alerts)
		}
		if f.transactions.count() != 1 {
			t.Errorf("expected 1 stored transaction, got %d", f.transactions.count())
		}
	})

	// Test an uncategorized message keeps an empty category.
	t.Run("no keyword leaves the category empty", func(t *testing.T) {
		f := newParseFixture()

		out := f.parse(t, "VM-HDFCBK", hdfcDebit)

		if out.Transaction.Category != "" {
			t.Errorf("expected empty category, got %q", out.Transaction.Category)
		}
	})

	// Test the second delivery of the same message is reported as duplicate.
	t.Run("duplicate message is not stored twice", func(t *testing.T) {
		f := newParseFixture()

		first := f.parse(t, "VM-HDFCBK", hdfcDebit)
		second := f.parse(t, "VM-HDFCBK", hdfcDebit)

		if second.Outcome != OutcomeDuplicate {
			t.Fatalf("expected outcome %s, got %s", OutcomeDuplicate, second.Outcome)
		}
		if second.Transaction.ID != first.Transaction.ID {
			t.Errorf("expected the stored transaction %s, got %s", first.Transaction.ID, second.Transaction.ID)
		}
		if f.transactions.count() != 1 {
			t.Errorf("expected 1 stored transaction, got %d", f.transactions.count())
		}
	})

	// Test concurrent deliveries of the same message insert once.
	t.Run("concurrent duplicates insert once", func(t *testing.T) {
		f := newParseFixture()

		var wg sync.WaitGroup
		outcomes := make([]Outcome, 8)
		for i := range outcomes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				out, err := f.useCase.Execute(context.Background(), ParseSMSInput{UserID: f.userID, Sender: "VM-HDFCBK", Message: hdfcDebit})
				if err != nil {
					t.Errorf("expected no error, got %v", err)
					return
				}
				outcomes[i] = out.Outcome
			}(i)
		}
		wg.Wait()

		saved := 0
		for _, o := range outcomes {
			if o == OutcomeSaved {
				saved++
			}
		}
		if saved != 1 {
			t.Errorf("expected exactly 1 saved outcome, got %d", saved)
		}
		if f.transactions.count() != 1 {
			t.Errorf("expected 1 stored transaction, got %d", f.transactions.count())
		}
	})

	// Test unknown banks are reported with the original payload.
	t.Run("unknown bank echoes the input", func(t *testing.T) {
		f := newParseFixture()

		out := f.parse(t, "VM-XYZBNK", "Your account was debited INR 100.00 on 01-01-2025")

		if out.Outcome != OutcomeUnknownBank {
			t.Fatalf("expected outcome %s, got %s", OutcomeUnknownBank, out.Outcome)
		}
		if out.SuggestedSender != "VM-XYZBNK" {
			t.Errorf("expected suggested sender VM-XYZBNK, got %q", out.SuggestedSender)
		}
		if out.Hint == "" {
			t.Error("expected a hint")
		}
		if f.transactions.count() != 0 {
			t.Errorf("expected no stored transaction, got %d", f.transactions.count())
		}
	})

	// Test a known bank with a non transactional body.
	t.Run("unparseable message stores nothing", func(t *testing.T) {
		f := newParseFixture()

		out := f.parse(t, "VM-HDFCBK", "Your HDFC Bank OTP is 482913")

		if out.Outcome != OutcomeUnparseable {
			t.Fatalf("expected outcome %s, got %s", OutcomeUnparseable, out.Outcome)
		}
		if out.Error == "" {
			t.Error("expected an error description")
		}
	})

	// Test a blank message is a validation error.
	t.Run("blank message is rejected", func(t *testing.T) {
		f := newParseFixture()

		_, err := f.useCase.Execute(context.Background(), ParseSMSInput{UserID: f.userID, Sender: "HDFC", Message: "   "})

		var smsErr *domainerror.SMSError
		if !errors.As(err, &smsErr) {
			t.Fatalf("expected *SMSError, got %v", err)
		}
		if smsErr.Code != domainerror.ErrCodeMissingSMSFields {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingSMSFields, smsErr.Code)
		}
	})

	// Test breached thresholds produce alerts and queue one email.
	t.Run("alerts are returned and emailed", func(t *testing.T) {
		f := newParseFixture()
		f.categories.categories = []*entity.Category{entity.NewCategory(f.userID, "food", "swiggy", false)}

		minRow := entity.NewSetting(f.userID, "HDFC")
		minRow.MinBalance = amountPtr("1000")
		limitRow := entity.NewSetting(f.userID, "HDFC")
		limitRow.Category = "food"
		limitRow.Limit = amountPtr("500")
		f.settings.settings = []*entity.Setting{limitRow, minRow}

		out := f.parse(t, "VM-HDFCBK", hdfcDebit)

		expected := []string{
			"⚠️ Balance ₹-600.00 is below minimum of ₹1000.00",
			"⚠️ Over budget in food: ₹600.00 > ₹500.00",
		}
		if len(out.Alerts) != len(expected) {
			t.Fatalf("expected %d alerts, got %v", len(expected), out.Alerts)
		}
		for i := range expected {
			if out.Alerts[i] != expected[i] {
				t.Errorf("expected alert %q, got %q", expected[i], out.Alerts[i])
			}
		}

		if len(f.email.alerts) != 1 {
			t.Fatalf("expected 1 queued alert email, got %d", len(f.email.alerts))
		}
		if f.email.alerts[0].UserEmail != "alice@example.com" {
			t.Errorf("expected recipient alice@example.com, got %s", f.email.alerts[0].UserEmail)
		}
		if f.email.alerts[0].BankName != "HDFC" {
			t.Errorf("expected bank HDFC, got %s", f.email.alerts[0].BankName)
		}
	})

	// Test users who opted out get alerts in the response only.
	t.Run("opted out user is not emailed", func(t *testing.T) {
		f := newParseFixture()
		f.users.users[f.userID].EmailNotifications = false

		minRow := entity.NewSetting(f.userID, "HDFC")
		minRow.MinBalance = amountPtr("1000")
		f.settings.settings = []*entity.Setting{minRow}

		out := f.parse(t, "VM-HDFCBK", hdfcDebit)

		if len(out.Alerts) != 1 {
			t.Fatalf("expected 1 alert, got %v", out.Alerts)
		}
		if len(f.email.alerts) != 0 {
			t.Errorf("expected no queued email, got %d", len(f.email.alerts))
		}
	})

	// Test the ingest lock is taken on the duplicate key.
	t.Run("locks on the duplicate key", func(t *testing.T) {
		f := newParseFixture()

		out := f.parse(t, "VM-HDFCBK", hdfcDebit)

		if len(f.locker.keys) != 1 {
			t.Fatalf("expected 1 lock acquisition, got %d", len(f.locker.keys))
		}
		if f.locker.keys[0] != out.Transaction.DuplicateKey().String() {
			t.Errorf("expected lock key %q, got %q", out.Transaction.DuplicateKey().String(), f.locker.keys[0])
		}
	})
}
