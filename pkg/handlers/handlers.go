package handlers

import (
	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/handlers/audit"
	"github.com/chris/custodial-bridge/pkg/handlers/bridges"
	"github.com/chris/custodial-bridge/pkg/handlers/deposits"
	"github.com/chris/custodial-bridge/pkg/handlers/history"
	"github.com/chris/custodial-bridge/pkg/handlers/withdrawals"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*bridges.BridgesHandler
	*deposits.DepositsHandler
	*withdrawals.WithdrawalsHandler
	*history.HistoryHandler
	*audit.AuditHandler
}

// NewApiHandler creates a new ApiHandler backed by the bridge service.
func NewApiHandler(b bridge.Bridge) *ApiHandler {
	return &ApiHandler{
		BridgesHandler:     bridges.NewBridgesHandler(b),
		DepositsHandler:    deposits.NewDepositsHandler(b),
		WithdrawalsHandler: withdrawals.NewWithdrawalsHandler(b),
		HistoryHandler:     history.NewHistoryHandler(b),
		AuditHandler:       audit.NewAuditHandler(b),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
