package audit

import (
	"net/http"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/handlers/respond"
	"github.com/chris/custodial-bridge/pkg/mapping"
	"github.com/chris/custodial-bridge/pkg/models"
)

type AuditHandler struct {
	Bridge bridge.LedgerReader
}

func NewAuditHandler(b bridge.LedgerReader) *AuditHandler {
	return &AuditHandler{Bridge: b}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// QueryAudit returns the audit events of exactly one account, transaction
// signature or withdrawal, oldest first.
func (h *AuditHandler) QueryAudit(w http.ResponseWriter, r *http.Request, params api.QueryAuditParams) {
	filter := models.AuditFilter{
		AccountID:    deref(params.AccountId),
		TxSignature:  deref(params.TxSignature),
		WithdrawalID: deref(params.WithdrawalId),
	}
	if params.Limit != nil {
		if *params.Limit < 0 {
			respond.BadRequest(w, "limit must not be negative")
			return
		}
		filter.Limit = int32(min(*params.Limit, bridge.MaxAuditLimit))
	}

	events, err := h.Bridge.QueryAudit(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiEvents := make([]api.AuditEvent, len(events))
	for i := range events {
		apiEvents[i] = mapping.ToApiAuditEvent(&events[i])
	}
	respond.JSON(w, http.StatusOK, apiEvents)
}
