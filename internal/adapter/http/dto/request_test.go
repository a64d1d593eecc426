package dto

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccountRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateAccountRequest
		valid   bool
	}{
		{"valid", CreateAccountRequest{Name: "Main"}, true},
		{"empty", CreateAccountRequest{Name: ""}, false},
		{"digits", CreateAccountRequest{Name: "Main1"}, false},
		{"too long", CreateAccountRequest{Name: "Abcdefghijklmnop"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDepositRequestValidate(t *testing.T) {
	valid := DepositRequest{Amount: decimal.RequireFromString("10.00")}
	require.NoError(t, valid.Validate())

	missing := DepositRequest{}
	require.Error(t, missing.Validate())
}

func TestTransferRequestValidate(t *testing.T) {
	valid := TransferRequest{
		TargetAccountID: "acc-2",
		Amount:          decimal.RequireFromString("10.00"),
	}
	require.NoError(t, valid.Validate())

	missingTarget := TransferRequest{Amount: decimal.RequireFromString("10.00")}
	require.Error(t, missingTarget.Validate())
}
