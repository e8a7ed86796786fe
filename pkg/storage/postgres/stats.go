package postgres

import (
	"context"
	"fmt"

	"github.com/chris/custodial-bridge/pkg/models"
)

func (s *Store) ChainStats(ctx context.Context, chain string) (*models.BridgeStats, error) {
	var stats models.BridgeStats
	err := s.db.GetContext(ctx, &stats, `
		SELECT
			$1::text AS chain,
			d.deposit_count,
			d.deposited_total,
			COUNT(w.withdrawal_id) AS withdrawal_count,
			COALESCE(SUM(w.amount), 0) AS withdrawn_total,
			COUNT(*) FILTER (WHERE w.status = 'queued') AS queued_withdrawals,
			COUNT(*) FILTER (WHERE w.status = 'sent') AS sent_withdrawals,
			COUNT(*) FILTER (WHERE w.status = 'failed') AS failed_withdrawals
		FROM (
			SELECT COUNT(*) AS deposit_count, COALESCE(SUM(amount), 0) AS deposited_total
			FROM deposits WHERE chain = $1
		) d
		LEFT JOIN withdrawals w ON w.chain = $1
		GROUP BY d.deposit_count, d.deposited_total`, chain)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate chain stats: %w", err)
	}
	return &stats, nil
}
