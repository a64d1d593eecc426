package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucasvsme/accountd/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", &domain.AccountNotFoundError{AccountID: "x"}, http.StatusNotFound},
		{"insufficient balance", &domain.InsufficientBalanceError{SourceAccountID: "a", TargetAccountID: "b"}, http.StatusBadRequest},
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"amount too large", domain.ErrAmountTooLarge, http.StatusBadRequest},
		{"amount scale", domain.ErrAmountScale, http.StatusBadRequest},
		{"invalid name", domain.ErrInvalidAccountName, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=7&bad=x", nil)

	if got := parseIntQuery(req, "limit", 20); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Errorf("expected default for non-numeric, got %d", got)
	}
	if got := parseIntQuery(req, "absent", 20); got != 20 {
		t.Errorf("expected default for absent, got %d", got)
	}
}
