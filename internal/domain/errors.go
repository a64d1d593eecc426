package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Transfer errors
	ErrInsufficientBalance = errors.New("insufficient balance in source account")
	ErrSameAccount         = errors.New("cannot transfer to same account")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

// AccountNotFoundError reports which account id failed to resolve.
type AccountNotFoundError struct {
	AccountID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.AccountID)
}

func (e *AccountNotFoundError) Unwrap() error {
	return ErrAccountNotFound
}

// InsufficientBalanceError reports a transfer rejected because the source
// account cannot cover the amount. Carries both account ids so callers can
// report the full context.
type InsufficientBalanceError struct {
	SourceAccountID string
	TargetAccountID string
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("account %s does not have enough balance to transfer to account %s",
		e.SourceAccountID, e.TargetAccountID)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
