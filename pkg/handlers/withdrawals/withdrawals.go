package withdrawals

import (
	"net/http"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/handlers/respond"
	"github.com/chris/custodial-bridge/pkg/mapping"
	"github.com/chris/custodial-bridge/pkg/middleware"
	"github.com/chris/custodial-bridge/pkg/models"
)

// WithdrawalsHandler holds the dependencies for withdrawal-related handlers.
type WithdrawalsHandler struct {
	Bridge bridge.WithdrawalManager
}

// NewWithdrawalsHandler creates a new WithdrawalsHandler.
func NewWithdrawalsHandler(b bridge.WithdrawalManager) *WithdrawalsHandler {
	return &WithdrawalsHandler{Bridge: b}
}

// CreateWithdrawal debits the authenticated account and queues the withdrawal.
func (h *WithdrawalsHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request, chain string) {
	var req api.WithdrawalRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	accountID := middleware.AccountID(r.Context())
	withdrawal, err := h.Bridge.RequestWithdrawal(r.Context(), chain, accountID, req.DestinationAddress, req.Amount)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiWithdrawal(withdrawal, respond.Decimals(h.Bridge, chain)))
}

// GetWithdrawalById handles the logic for retrieving a withdrawal by its ID.
// Account holders only see their own withdrawals; the operator sees all.
func (h *WithdrawalsHandler) GetWithdrawalById(w http.ResponseWriter, r *http.Request, withdrawalId api.WithdrawalId) {
	withdrawal, err := h.Bridge.GetWithdrawal(r.Context(), withdrawalId.String())
	if err == nil && !middleware.IsOperator(r.Context()) && withdrawal.AccountID != middleware.AccountID(r.Context()) {
		err = &bridge.Error{Code: bridge.CodeNotFound, Message: "withdrawal not found"}
	}
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiWithdrawal(withdrawal, respond.Decimals(h.Bridge, withdrawal.Chain)))
}

// ListWithdrawals is the pull side of the signer hand-off. Status defaults to queued.
func (h *WithdrawalsHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request, params api.ListWithdrawalsParams) {
	status := models.QUEUED
	if params.Status != nil {
		status = models.WithdrawalStatus(*params.Status)
	}
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	domainWithdrawals, err := h.Bridge.ListWithdrawals(r.Context(), status, limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiWithdrawals := make([]*api.Withdrawal, len(domainWithdrawals))
	for i := range domainWithdrawals {
		wd := &domainWithdrawals[i]
		apiWithdrawals[i] = mapping.ToApiWithdrawal(wd, respond.Decimals(h.Bridge, wd.Chain))
	}
	respond.JSON(w, http.StatusOK, apiWithdrawals)
}

// ReportWithdrawalOutcome applies the signer's report. Repeating an already
// applied report returns the withdrawal unchanged.
func (h *WithdrawalsHandler) ReportWithdrawalOutcome(w http.ResponseWriter, r *http.Request, withdrawalId api.WithdrawalId) {
	var req api.OutcomeRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	withdrawal, err := h.Bridge.ReportOutcome(r.Context(), withdrawalId.String(), mapping.ToDomainOutcome(&req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiWithdrawal(withdrawal, respond.Decimals(h.Bridge, withdrawal.Chain)))
}
