package bridges

import (
	"net/http"

	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/handlers/respond"
	"github.com/chris/custodial-bridge/pkg/mapping"
)

// BridgesHandler serves the public configuration and ledger totals of each
// bridged chain.
type BridgesHandler struct {
	Bridge bridge.LedgerReader
}

// NewBridgesHandler creates a new BridgesHandler.
func NewBridgesHandler(b bridge.LedgerReader) *BridgesHandler {
	return &BridgesHandler{Bridge: b}
}

// GetBridge returns the mint, reserve address, limits and fee of a chain.
func (h *BridgesHandler) GetBridge(w http.ResponseWriter, r *http.Request, chain string) {
	cfg, err := h.Bridge.BridgeInfo(chain)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiBridgeInfo(cfg))
}

// GetBridgeStats returns the deposit and withdrawal totals of a chain.
func (h *BridgesHandler) GetBridgeStats(w http.ResponseWriter, r *http.Request, chain string) {
	stats, err := h.Bridge.BridgeStats(r.Context(), chain)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiBridgeStats(stats, respond.Decimals(h.Bridge, chain)))
}
