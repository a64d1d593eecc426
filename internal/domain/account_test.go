package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_CanDebit(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		amount  string
		want    bool
	}{
		{name: "amount below balance", balance: "100.00", amount: "50.00", want: true},
		{name: "amount equals balance", balance: "100.00", amount: "100.00", want: true},
		{name: "amount above balance", balance: "100.00", amount: "100.01", want: false},
		{name: "zero balance", balance: "0.00", amount: "0.01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: decimal.RequireFromString(tt.balance)}

			if got := acc.CanDebit(decimal.RequireFromString(tt.amount)); got != tt.want {
				t.Errorf("CanDebit(%s) with balance %s = %v, want %v", tt.amount, tt.balance, got, tt.want)
			}
		})
	}
}

func TestAccount_ApplyDebit(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("100.00")}
	newBalance := acc.ApplyDebit(decimal.RequireFromString("30.00"))

	expected := decimal.RequireFromString("70.00")
	if !newBalance.Equal(expected) {
		t.Errorf("expected balance %s, got %s", expected, newBalance)
	}
}

func TestAccount_ApplyDebit_FullBalance(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("42.50")}
	newBalance := acc.ApplyDebit(decimal.RequireFromString("42.50"))

	if !newBalance.IsZero() {
		t.Errorf("expected zero balance, got %s", newBalance)
	}
}

func TestAccount_ApplyCredit(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("100.00")}
	newBalance := acc.ApplyCredit(decimal.RequireFromString("30.00"))

	expected := decimal.RequireFromString("130.00")
	if !newBalance.Equal(expected) {
		t.Errorf("expected balance %s, got %s", expected, newBalance)
	}
}
