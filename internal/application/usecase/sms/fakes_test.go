package sms

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

var errNotImplemented = errors.New("not implemented")

type fakeAliasRepo struct {
	aliases []*entity.BankAlias
}

func (f *fakeAliasRepo) Create(_ context.Context, a *entity.BankAlias) error {
	f.aliases = append(f.aliases, a)
	return nil
}

func (f *fakeAliasRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.BankAlias, error) {
	var out []*entity.BankAlias
	for _, a := range f.aliases {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAliasRepo) ExistsByAlias(context.Context, uuid.UUID, string) (bool, error) {
	return false, errNotImplemented
}

func (f *fakeAliasRepo) DeleteByAlias(context.Context, uuid.UUID, string) (bool, error) {
	return false, errNotImplemented
}

type fakeCategoryRepo struct {
	categories []*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	f.categories = append(f.categories, c)
	return nil
}

func (f *fakeCategoryRepo) CreateBatch(context.Context, []*entity.Category) error {
	return errNotImplemented
}

func (f *fakeCategoryRepo) FindByID(context.Context, uuid.UUID) (*entity.Category, error) {
	return nil, errNotImplemented
}

func (f *fakeCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindByNameAndUser(context.Context, string, uuid.UUID) (*entity.Category, error) {
	return nil, errNotImplemented
}

func (f *fakeCategoryRepo) Update(context.Context, *entity.Category) error { return errNotImplemented }

func (f *fakeCategoryRepo) Delete(context.Context, uuid.UUID) error { return errNotImplemented }

func (f *fakeCategoryRepo) ExistsByNameAndUser(context.Context, string, uuid.UUID) (bool, error) {
	return false, errNotImplemented
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions []*entity.Transaction
}

func (f *fakeTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactions = append(f.transactions, t)
	return nil
}

func (f *fakeTransactionRepo) CreateIfAbsent(_ context.Context, t *entity.Transaction) (*entity.Transaction, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := t.DuplicateKey().String()
	for _, existing := range f.transactions {
		if existing.DuplicateKey().String() == key {
			return existing, false, nil
		}
	}
	f.transactions = append(f.transactions, t)
	return t, true, nil
}

func (f *fakeTransactionRepo) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, errNotImplemented
}

func (f *fakeTransactionRepo) FindByFilter(context.Context, uuid.UUID, entity.TransactionFilter) ([]*entity.Transaction, error) {
	return nil, errNotImplemented
}

func (f *fakeTransactionRepo) FindByUserAndBank(_ context.Context, userID uuid.UUID, bankName string) ([]*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range f.transactions {
		if t.UserID == userID && t.BankName == bankName {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) GetTotals(context.Context, uuid.UUID, entity.TransactionFilter) (*entity.TransactionTotals, error) {
	return nil, errNotImplemented
}

func (f *fakeTransactionRepo) Update(context.Context, *entity.Transaction) error {
	return errNotImplemented
}

func (f *fakeTransactionRepo) Delete(context.Context, uuid.UUID) error { return errNotImplemented }

func (f *fakeTransactionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transactions)
}

type fakeSettingRepo struct {
	settings []*entity.Setting
}

func (f *fakeSettingRepo) Upsert(context.Context, adapter.UpsertSettingsInput) ([]*entity.Setting, error) {
	return nil, errNotImplemented
}

func (f *fakeSettingRepo) FindByID(context.Context, uuid.UUID) (*entity.Setting, error) {
	return nil, errNotImplemented
}

func (f *fakeSettingRepo) FindByUserAndBank(_ context.Context, userID uuid.UUID, bankName string) ([]*entity.Setting, error) {
	var out []*entity.Setting
	for _, s := range f.settings {
		if s.UserID == userID && s.BankName == bankName {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSettingRepo) FindCategoryLimits(context.Context, uuid.UUID) ([]*entity.Setting, error) {
	return nil, errNotImplemented
}

func (f *fakeSettingRepo) Update(context.Context, *entity.Setting) error { return errNotImplemented }

func (f *fakeSettingRepo) Delete(context.Context, uuid.UUID) error { return errNotImplemented }

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, errNotImplemented
}

func (f *fakeUserRepo) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, errNotImplemented
}

func (f *fakeUserRepo) Update(context.Context, *entity.User) error { return errNotImplemented }

func (f *fakeUserRepo) DeleteWithData(context.Context, uuid.UUID) error { return errNotImplemented }

func (f *fakeUserRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return false, errNotImplemented
}

func (f *fakeUserRepo) ExistsByUsername(context.Context, string) (bool, error) {
	return false, errNotImplemented
}

type fakeEmailService struct {
	alerts []adapter.QueueBudgetAlertInput
}

func (f *fakeEmailService) QueuePasswordResetEmail(context.Context, adapter.QueuePasswordResetInput) error {
	return nil
}

func (f *fakeEmailService) QueueBudgetAlertEmail(_ context.Context, input adapter.QueueBudgetAlertInput) error {
	f.alerts = append(f.alerts, input)
	return nil
}

// keyLocker is a per-key mutex table.
type keyLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	keys  []string
}

func newKeyLocker() *keyLocker {
	return &keyLocker{locks: map[string]*sync.Mutex{}}
}

func (l *keyLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.keys = append(l.keys, key)
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
