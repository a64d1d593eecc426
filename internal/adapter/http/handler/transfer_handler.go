package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucasvsme/accountd/internal/adapter/http/dto"
	"github.com/lucasvsme/accountd/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves an amount from the source account to the target account and
// returns both resulting balances.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	sourceID := chi.URLParam(r, "id")
	if sourceID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid transfer request", err.Error())
		return
	}

	result, err := h.transferUC.Transfer(r.Context(), usecase.TransferInput{
		SourceAccountID: sourceID,
		TargetAccountID: req.TargetAccountID,
		Amount:          req.Amount,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransferResponse{
		SourceAccountBalance: result.SourceAccount.Balance.StringFixed(2),
		TargetAccountBalance: result.TargetAccount.Balance.StringFixed(2),
	})
}
