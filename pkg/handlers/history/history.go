package history

import (
	"net/http"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/handlers/respond"
	"github.com/chris/custodial-bridge/pkg/mapping"
	"github.com/chris/custodial-bridge/pkg/middleware"
)

type HistoryHandler struct {
	Bridge bridge.LedgerReader
}

func NewHistoryHandler(b bridge.LedgerReader) *HistoryHandler {
	return &HistoryHandler{Bridge: b}
}

// GetHistory returns the most recent deposits and withdrawals of the
// authenticated account in the order they were recorded.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request, params api.GetHistoryParams) {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	entries, err := h.Bridge.GetHistory(r.Context(), middleware.AccountID(r.Context()), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	decimals := make(map[string]int32)
	apiEntries := make([]api.HistoryEntry, len(entries))
	for i, e := range entries {
		chain := e.Chain()
		d, ok := decimals[chain]
		if !ok {
			d = respond.Decimals(h.Bridge, chain)
			decimals[chain] = d
		}
		apiEntries[i] = mapping.ToApiHistoryEntry(e, d)
	}
	respond.JSON(w, http.StatusOK, apiEntries)
}
