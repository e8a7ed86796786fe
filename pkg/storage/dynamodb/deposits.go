package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage"
	"github.com/google/uuid"
)

// GetDeposit retrieves a deposit from DynamoDB by its transaction signature.
func (s *Store) GetDeposit(ctx context.Context, txSignature string) (*models.Deposit, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"tx_signature": txSignature})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction signature: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.Deposits),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var deposit models.Deposit
	if err := attributevalue.UnmarshalMap(result.Item, &deposit); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deposit: %w", err)
	}
	return &deposit, nil
}

// ListDepositsByAccount retrieves the most recent deposits of an account, oldest first.
func (s *Store) ListDepositsByAccount(ctx context.Context, accountID string, limit int32) ([]models.Deposit, error) {
	var deposits []models.Deposit
	if err := s.queryRecent(ctx, s.Deposits, depositsByAccountIndex, accountID, limit, &deposits); err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, nil
}

// CreditDeposit atomically records the deposit, binds or checks the sender
// wallet, credits the account and appends the audit event.
func (s *Store) CreditDeposit(ctx context.Context, deposit *models.Deposit) error {
	now := time.Now().UTC()
	if deposit.DepositID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate deposit ID: %w", err)
		}
		deposit.DepositID = id.String()
	}
	if deposit.CreditedAt.IsZero() {
		deposit.CreditedAt = now
	}

	depositAV, err := attributevalue.MarshalMap(deposit)
	if err != nil {
		return fmt.Errorf("failed to marshal deposit: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for deposit: %w", err)
	}

	eventID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate audit event ID: %w", err)
	}
	auditItem, err := s.auditPut(models.AuditEvent{
		EventID:     eventID.String(),
		Type:        models.DepositCredited,
		AccountID:   deposit.AccountID,
		Chain:       deposit.Chain,
		TxSignature: deposit.TxSignature,
		Credit:      deposit.Amount,
		Note:        fmt.Sprintf("Deposit from %s", deposit.SenderAddress),
		CreatedAt:   now,
	})
	if err != nil {
		return err
	}

	walletValues := map[string]types.AttributeValue{
		":account": &types.AttributeValueMemberS{Value: deposit.AccountID},
		":chain":   &types.AttributeValueMemberS{Value: deposit.Chain},
		":address": &types.AttributeValueMemberS{Value: deposit.SenderAddress},
		":now":     nowAV,
	}
	walletNames := map[string]string{
		"#account": "account_id",
		"#chain":   "chain",
		"#address": "address",
	}
	bindExpression := aws.String("SET #account = :account, #chain = :chain, #address = :address, bound_at = if_not_exists(bound_at, :now)")

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Record the deposit. The signature is the uniqueness key.
				Put: &types.Put{
					TableName:           aws.String(s.Deposits),
					Item:                depositAV,
					ConditionExpression: aws.String("attribute_not_exists(tx_signature)"),
				},
			},
			{
				// Operation 2: Bind the account to the sender on this chain, or check the existing binding.
				Update: &types.Update{
					TableName:                 aws.String(s.Wallets),
					Key:                       accountWalletKey(deposit.AccountID, deposit.Chain),
					UpdateExpression:          bindExpression,
					ConditionExpression:       aws.String("attribute_not_exists(#address) OR #address = :address"),
					ExpressionAttributeNames:  walletNames,
					ExpressionAttributeValues: walletValues,
				},
			},
			{
				// Operation 3: Claim the sender address for this account.
				Update: &types.Update{
					TableName:                 aws.String(s.Wallets),
					Key:                       addressWalletKey(deposit.Chain, deposit.SenderAddress),
					UpdateExpression:          bindExpression,
					ConditionExpression:       aws.String("attribute_not_exists(#account) OR #account = :account"),
					ExpressionAttributeNames:  walletNames,
					ExpressionAttributeValues: walletValues,
				},
			},
			{
				// Operation 4: Credit the account, creating it on first deposit.
				Update: &types.Update{
					TableName: aws.String(s.Accounts),
					Key: map[string]types.AttributeValue{
						"account_id": &types.AttributeValueMemberS{Value: deposit.AccountID},
					},
					UpdateExpression: aws.String("SET balance = if_not_exists(balance, :zero) + :amount, version = if_not_exists(version, :zero) + :inc, created_at = if_not_exists(created_at, :now), updated_at = :now"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", deposit.Amount)},
						":zero":   &types.AttributeValueMemberN{Value: "0"},
						":inc":    &types.AttributeValueMemberN{Value: "1"},
						":now":    nowAV,
					},
				},
			},
			// Operation 5: Append the audit event.
			auditItem,
		},
	}

	if err := s.transactWrite(ctx, input); err != nil {
		reasons := cancellationReasons(err)
		switch {
		case conditionFailed(reasons, 0):
			return storage.ErrDuplicateDeposit
		case conditionFailed(reasons, 1):
			return storage.ErrWalletMismatch
		case conditionFailed(reasons, 2):
			return storage.ErrWalletClaimed
		}
		return fmt.Errorf("failed to execute deposit transaction: %w", err)
	}
	return nil
}

// queryRecent loads the newest items of an account from a by-account index
// whose sort key is a time-ordered ID, and returns them oldest first.
func (s *Store) queryRecent(ctx context.Context, table, index, accountID string, limit int32, out any) error {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("account_id = :account_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account_id": &types.AttributeValueMemberS{Value: accountID},
		},
		ScanIndexForward: aws.Bool(limit <= 0),
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	items, err := s.queryPages(ctx, input, limit)
	if err != nil {
		return err
	}
	if limit > 0 {
		reverse(items)
	}

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal items: %w", err)
	}
	return nil
}
