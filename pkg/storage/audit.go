package storage

import (
	"context"

	"github.com/chris/custodial-bridge/pkg/models"
)

// AuditReader defines the interface for reading the audit log.
// Audit events are only ever written inside the state changes they record.
type AuditReader interface {
	// QueryAudit retrieves events matching the filter, oldest first.
	QueryAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error)
}
