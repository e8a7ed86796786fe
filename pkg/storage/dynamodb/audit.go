package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/custodial-bridge/pkg/models"
)

// auditPut builds the transaction item that appends an audit event.
func (s *Store) auditPut(event models.AuditEvent) (types.TransactWriteItem, error) {
	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal audit event: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.Audit),
			Item:                eventAV,
			ConditionExpression: aws.String("attribute_not_exists(event_id)"),
		},
	}, nil
}

// QueryAudit retrieves audit events by account, transaction signature or withdrawal.
func (s *Store) QueryAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error) {
	var index, attr, value string
	switch {
	case filter.AccountID != "":
		index, attr, value = auditByAccountIndex, "account_id", filter.AccountID
	case filter.TxSignature != "":
		index, attr, value = auditBySignatureIndex, "tx_signature", filter.TxSignature
	case filter.WithdrawalID != "":
		index, attr, value = auditByWithdrawalIndex, "withdrawal_id", filter.WithdrawalID
	default:
		return nil, errors.New("audit query requires an account, signature or withdrawal filter")
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Audit),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#key = :value"),
		ExpressionAttributeNames: map[string]string{
			"#key": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		},
		ScanIndexForward: aws.Bool(true),
	}

	items, err := s.queryPages(ctx, input, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}

	var events []models.AuditEvent
	if err := attributevalue.UnmarshalListOfMaps(items, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit events: %w", err)
	}
	return events, nil
}
