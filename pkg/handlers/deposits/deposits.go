package deposits

import (
	"net/http"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/handlers/respond"
	"github.com/chris/custodial-bridge/pkg/mapping"
	"github.com/chris/custodial-bridge/pkg/middleware"
)

// DepositsHandler holds the dependencies for deposit-related handlers.
type DepositsHandler struct {
	Bridge bridge.DepositVerifier
}

// NewDepositsHandler creates a new DepositsHandler.
func NewDepositsHandler(b bridge.DepositVerifier) *DepositsHandler {
	return &DepositsHandler{Bridge: b}
}

// CreateDeposit verifies the submitted transaction and credits the
// authenticated account. A resubmitted signature returns the original credit.
func (h *DepositsHandler) CreateDeposit(w http.ResponseWriter, r *http.Request, chain string) {
	var req api.DepositRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	accountID := middleware.AccountID(r.Context())
	deposit, err := h.Bridge.VerifyAndCredit(r.Context(), chain, accountID, req.TxSignature)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiDeposit(deposit, respond.Decimals(h.Bridge, chain)))
}
