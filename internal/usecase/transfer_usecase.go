package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasvsme/accountd/internal/domain"
	"github.com/lucasvsme/accountd/internal/infrastructure/metrics"
)

// TransferUseCase handles transfer business logic.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	retrier     Retrier
	cache       Cache
	metrics     *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. cache and metrics may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	retrier Retrier,
	cache Cache,
	metrics *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		retrier:     retrier,
		cache:       cache,
		metrics:     metrics,
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	SourceAccountID string
	TargetAccountID string
	Amount          decimal.Decimal
}

// TransferResult holds both accounts after a committed transfer.
type TransferResult struct {
	SourceAccount *domain.Account
	TargetAccount *domain.Account
}

// Transfer moves amount from the source account to the target account.
// Both balance updates commit in one store transaction, so no other operation
// ever observes only one side applied. The sum of the two balances is
// unchanged by the operation.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	start := time.Now()

	if input.SourceAccountID == input.TargetAccountID {
		uc.countError(domain.ErrSameAccount)
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.countError(err)
		return nil, err
	}

	var (
		result   *TransferResult
		attempts int
	)

	err := uc.retrier.Retry(ctx, func() error {
		attempts++

		r, err := uc.transferOnce(ctx, input)
		if err != nil {
			return err
		}

		result = r

		return nil
	})

	if uc.metrics != nil && attempts > 1 {
		uc.metrics.TransferRetries.Add(float64(attempts - 1))
	}

	if err != nil {
		uc.countError(err)
		return nil, err
	}

	uc.invalidate(ctx, input.SourceAccountID, input.TargetAccountID)

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferAmount.Observe(input.Amount.InexactFloat64())
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func (uc *TransferUseCase) countError(err error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.TransferErrors.WithLabelValues(transferErrorType(err)).Inc()
}

func transferErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrAmountScale):
		return "invalid_amount"
	default:
		return "store"
	}
}

func (uc *TransferUseCase) transferOnce(ctx context.Context, input TransferInput) (*TransferResult, error) {
	// Lock both rows in ascending id order so two transfers over the same
	// pair in opposite directions cannot deadlock.
	ids := []string{input.SourceAccountID, input.TargetAccountID}
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	// The source id is reported before the target id.
	source, ok := byID[input.SourceAccountID]
	if !ok {
		return nil, &domain.AccountNotFoundError{AccountID: input.SourceAccountID}
	}

	target, ok := byID[input.TargetAccountID]
	if !ok {
		return nil, &domain.AccountNotFoundError{AccountID: input.TargetAccountID}
	}

	if !source.CanDebit(input.Amount) {
		return nil, &domain.InsufficientBalanceError{
			SourceAccountID: source.ID,
			TargetAccountID: target.ID,
		}
	}

	now := time.Now().UTC()

	newSource := source.ApplyDebit(input.Amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, source.ID, newSource, now); err != nil {
		return nil, err
	}

	newTarget := target.ApplyCredit(input.Amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, target.ID, newTarget, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	source.Balance = newSource
	source.Version++
	source.UpdatedAt = now

	target.Balance = newTarget
	target.Version++
	target.UpdatedAt = now

	return &TransferResult{SourceAccount: source, TargetAccount: target}, nil
}

func (uc *TransferUseCase) invalidate(ctx context.Context, ids ...string) {
	if uc.cache == nil {
		return
	}

	for _, id := range ids {
		_ = uc.cache.Delete(ctx, accountCacheKey(id))
	}
}
