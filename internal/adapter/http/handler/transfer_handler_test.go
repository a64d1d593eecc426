package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lucasvsme/accountd/internal/adapter/http/dto"
	"github.com/lucasvsme/accountd/internal/domain"
	"github.com/lucasvsme/accountd/internal/usecase"
)

type transferServiceStub struct {
	transferFn func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
}

func (s *transferServiceStub) Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
	return s.transferFn(ctx, input)
}

func TestTransferHandler_Create_Success(t *testing.T) {
	var captured usecase.TransferInput
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
			captured = input
			return &usecase.TransferResult{
				SourceAccount: &domain.Account{ID: input.SourceAccountID, Balance: decimal.RequireFromString("60")},
				TargetAccount: &domain.Account{ID: input.TargetAccountID, Balance: decimal.RequireFromString("40")},
			}, nil
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{
		TargetAccountID: "acc-2",
		Amount:          decimal.RequireFromString("40.00"),
	})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/transfer", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.SourceAccountID != "acc-1" || captured.TargetAccountID != "acc-2" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.TransferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SourceAccountBalance != "60.00" || resp.TargetAccountBalance != "40.00" {
		t.Fatalf("expected balances 60.00/40.00, got %+v", resp)
	}
}

func TestTransferHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
			t.Fatal("Transfer should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/transfer", bytes.NewBufferString("{invalid"))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_MissingTarget(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
			t.Fatal("Transfer should not be called without a target account")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{Amount: decimal.RequireFromString("10.00")})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/transfer", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_InsufficientBalance(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
			return nil, &domain.InsufficientBalanceError{
				SourceAccountID: input.SourceAccountID,
				TargetAccountID: input.TargetAccountID,
			}
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{
		TargetAccountID: "acc-2",
		Amount:          decimal.RequireFromString("10.01"),
	})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/transfer", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message == "" {
		t.Fatal("expected error details with account ids")
	}
}

func TestTransferHandler_Create_SourceNotFound(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
			return nil, &domain.AccountNotFoundError{AccountID: input.SourceAccountID}
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{
		TargetAccountID: "acc-2",
		Amount:          decimal.RequireFromString("10.00"),
	})
	req := httptest.NewRequest(http.MethodPost, "/accounts/missing/transfer", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_SameAccount(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
			return nil, domain.ErrSameAccount
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{
		TargetAccountID: "acc-1",
		Amount:          decimal.RequireFromString("10.00"),
	})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/transfer", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
