package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name string `json:"name" validate:"required,alpha,max=15"`
}

// Validate checks the request shape. Domain rules are enforced again in the
// use case layer.
func (r *CreateAccountRequest) Validate() error {
	return validate.Struct(r)
}

// DepositRequest represents a request to deposit into an account.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// Validate checks the request shape.
func (r *DepositRequest) Validate() error {
	return validate.Struct(r)
}

// TransferRequest represents a request to transfer between accounts.
type TransferRequest struct {
	TargetAccountID string          `json:"target_account_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
}

// Validate checks the request shape.
func (r *TransferRequest) Validate() error {
	return validate.Struct(r)
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
