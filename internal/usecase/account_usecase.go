package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasvsme/accountd/internal/domain"
	"github.com/lucasvsme/accountd/internal/infrastructure/metrics"
)

const accountCacheTTL = 30 * time.Second

// AccountUseCase handles account business logic: create, read and deposit.
type AccountUseCase struct {
	accountRepo AccountRepository
	txManager   TransactionManager
	idGen       IDGenerator
	retrier     Retrier
	cache       Cache
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. cache and metrics may be
// nil; without a cache, reads always hit the repository.
func NewAccountUseCase(
	accountRepo AccountRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		txManager:   txManager,
		idGen:       idGen,
		retrier:     retrier,
		cache:       cache,
		metrics:     metrics,
	}
}

// CreateAccount creates a new account with a zero balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, name string) (*domain.Account, error) {
	if err := domain.ValidateAccountName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Name:      name,
		Balance:   decimal.Zero,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID, consulting the cache first.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if cached := uc.cachedAccount(ctx, id); cached != nil {
		if uc.metrics != nil {
			uc.metrics.CacheHits.Inc()
		}

		return cached, nil
	}

	if uc.metrics != nil {
		uc.metrics.CacheMisses.Inc()
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.storeInCache(ctx, account)

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination and returns the total count.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, int64, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	accounts, err := uc.accountRepo.List(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.accountRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

// Deposit credits amount to the account and returns the updated account.
// The read-modify-write runs in a single store transaction with the account
// row locked; transient conflicts are retried.
func (uc *AccountUseCase) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var updated *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		account, err := uc.depositOnce(ctx, accountID, amount)
		if err != nil {
			return err
		}

		updated = account

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx, accountID)

	if uc.metrics != nil {
		uc.metrics.DepositsCreated.Inc()
		uc.metrics.DepositAmount.Observe(amount.InexactFloat64())
	}

	return updated, nil
}

func (uc *AccountUseCase) depositOnce(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := account.ApplyCredit(amount)

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.Balance = newBalance
	account.Version++
	account.UpdatedAt = now

	return account, nil
}

// cachedAccount is the JSON shape stored in the cache.
type cachedAccount struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func accountCacheKey(id string) string {
	return "account:" + id
}

// cachedAccount returns the cached account or nil. Cache failures are treated
// as misses so a degraded cache never fails a read.
func (uc *AccountUseCase) cachedAccount(ctx context.Context, id string) *domain.Account {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, accountCacheKey(id))
	if err != nil {
		return nil
	}

	var cached cachedAccount
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}

	return &domain.Account{
		ID:        cached.ID,
		Name:      cached.Name,
		Balance:   cached.Balance,
		Version:   cached.Version,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}
}

func (uc *AccountUseCase) storeInCache(ctx context.Context, account *domain.Account) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(cachedAccount{
		ID:        account.ID,
		Name:      account.Name,
		Balance:   account.Balance,
		Version:   account.Version,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	})
	if err != nil {
		return
	}

	_ = uc.cache.Set(ctx, accountCacheKey(account.ID), data, accountCacheTTL)
}

func (uc *AccountUseCase) invalidateCache(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, accountCacheKey(id))
}
