package dynamodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/custodial-bridge/pkg/models"
)

// ChainStats sums the deposits and withdrawals of a chain from the by-chain
// indexes, reading only the attributes it counts.
func (s *Store) ChainStats(ctx context.Context, chain string) (*models.BridgeStats, error) {
	stats := &models.BridgeStats{Chain: chain}

	var deposits []models.Deposit
	if err := s.queryChain(ctx, s.Deposits, depositsByChainIndex, chain, []string{"amount"}, &deposits); err != nil {
		return nil, fmt.Errorf("failed to sum deposits: %w", err)
	}
	for _, d := range deposits {
		stats.DepositCount++
		stats.DepositedTotal += d.Amount
	}

	var withdrawals []models.Withdrawal
	if err := s.queryChain(ctx, s.Withdrawals, withdrawalsByChainIndex, chain, []string{"amount", "status"}, &withdrawals); err != nil {
		return nil, fmt.Errorf("failed to sum withdrawals: %w", err)
	}
	for i := range withdrawals {
		stats.AddWithdrawal(&withdrawals[i])
	}
	return stats, nil
}

// queryChain reads every item of a chain from a by-chain index, projected to
// the given attributes.
func (s *Store) queryChain(ctx context.Context, table, index, chain string, attributes []string, out any) error {
	names := map[string]string{"#chain": "chain"}
	projection := make([]string, len(attributes))
	for i, attr := range attributes {
		projection[i] = "#" + attr
		names[projection[i]] = attr
	}

	input := &dynamodb.QueryInput{
		TableName:                aws.String(table),
		IndexName:                aws.String(index),
		KeyConditionExpression:   aws.String("#chain = :chain"),
		ProjectionExpression:     aws.String(strings.Join(projection, ", ")),
		ExpressionAttributeNames: names,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":chain": &types.AttributeValueMemberS{Value: chain},
		},
	}

	items, err := s.queryPages(ctx, input, 0)
	if err != nil {
		return err
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal items: %w", err)
	}
	return nil
}
