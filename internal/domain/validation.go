package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrAmountScale        = errors.New("amount has more than 2 decimal digits")
)

// Validation constants
const (
	MaxAccountNameLength = 15
	MinAccountNameLength = 1

	// Amounts are fixed-point with at most 7 integer digits and 2 fraction
	// digits, so the largest representable amount is 9999999.99.
	MaxAmountIntegerDigits = 7
	AmountScale            = 2
)

var accountNameRegex = regexp.MustCompile(`^[A-Za-z]+$`)

// ValidateAccountName validates an account name: letters only, 1-15 characters.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	if !accountNameRegex.MatchString(name) {
		return fmt.Errorf("%w: name must contain letters only", ErrInvalidAccountName)
	}

	return nil
}

// ValidateAmount validates a deposit/transfer amount: strictly positive, at
// most 2 fraction digits, at most 7 integer digits.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.Exponent() < -AmountScale {
		return ErrAmountScale
	}

	if len(amount.Truncate(0).String()) > MaxAmountIntegerDigits {
		return fmt.Errorf("%w: at most %d integer digits", ErrAmountTooLarge, MaxAmountIntegerDigits)
	}

	return nil
}
