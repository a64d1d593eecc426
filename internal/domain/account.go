package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a named monetary balance.
type Account struct {
	ID        string
	Name      string
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanDebit reports whether debiting amount keeps the balance non-negative.
// Debiting the exact balance is allowed and leaves the account at zero.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return !a.Balance.LessThan(amount)
}

// ApplyDebit returns the balance after subtracting amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after adding amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
