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

// GetWithdrawal retrieves a withdrawal from DynamoDB by its ID.
func (s *Store) GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"withdrawal_id": withdrawalID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal withdrawal ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.Withdrawals),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var withdrawal models.Withdrawal
	if err := attributevalue.UnmarshalMap(result.Item, &withdrawal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal withdrawal: %w", err)
	}
	return &withdrawal, nil
}

// ListWithdrawalsByAccount retrieves the most recent withdrawals of an account, oldest first.
func (s *Store) ListWithdrawalsByAccount(ctx context.Context, accountID string, limit int32) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	if err := s.queryRecent(ctx, s.Withdrawals, withdrawalsByAccountIndex, accountID, limit, &withdrawals); err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}

// ListWithdrawalsByStatus retrieves withdrawals in a status created before the cutoff.
func (s *Store) ListWithdrawalsByStatus(ctx context.Context, status models.WithdrawalStatus, createdBefore time.Time, limit int32) ([]models.Withdrawal, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Withdrawals),
		IndexName:              aws.String(withdrawalsByStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
		ScanIndexForward: aws.Bool(true),
	}
	if !createdBefore.IsZero() {
		input.KeyConditionExpression = aws.String("#status = :status AND created_at < :cutoff")
		input.ExpressionAttributeValues[":cutoff"] = timeValue(createdBefore)
	}

	items, err := s.queryPages(ctx, input, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals by status: %w", err)
	}

	var withdrawals []models.Withdrawal
	if err := attributevalue.UnmarshalListOfMaps(items, &withdrawals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal withdrawals: %w", err)
	}
	return withdrawals, nil
}

// CreateWithdrawal atomically debits the account and creates a queued withdrawal.
func (s *Store) CreateWithdrawal(ctx context.Context, w *models.Withdrawal, cooldown time.Duration) error {
	now := time.Now().UTC()
	if w.WithdrawalID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate withdrawal ID: %w", err)
		}
		w.WithdrawalID = id.String()
	}
	w.Status = models.QUEUED
	w.CreatedAt = now
	w.UpdatedAt = now

	withdrawalAV, err := attributevalue.MarshalMap(w)
	if err != nil {
		return fmt.Errorf("failed to marshal withdrawal: %w", err)
	}
	withdrawalAV["created_at"] = timeValue(now)
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for withdrawal: %w", err)
	}

	eventID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate audit event ID: %w", err)
	}
	auditItem, err := s.auditPut(models.AuditEvent{
		EventID:      eventID.String(),
		Type:         models.WithdrawalQueued,
		AccountID:    w.AccountID,
		Chain:        w.Chain,
		WithdrawalID: w.WithdrawalID,
		Debit:        w.Amount,
		Note:         fmt.Sprintf("Withdrawal to %s", w.DestinationAddress),
		CreatedAt:    now,
	})
	if err != nil {
		return err
	}

	condition := "attribute_exists(account_id) AND balance >= :amount"
	values := map[string]types.AttributeValue{
		":amount":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", w.Amount)},
		":inc":      &types.AttributeValueMemberN{Value: "1"},
		":now":      nowAV,
		":now_unix": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Unix())},
	}
	if cooldown > 0 {
		condition += " AND (attribute_not_exists(last_withdrawal_at) OR last_withdrawal_at <= :cutoff)"
		values[":cutoff"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Add(-cooldown).Unix())}
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Debit the full amount from the account.
				Update: &types.Update{
					TableName: aws.String(s.Accounts),
					Key: map[string]types.AttributeValue{
						"account_id": &types.AttributeValueMemberS{Value: w.AccountID},
					},
					UpdateExpression:                    aws.String("SET balance = balance - :amount, version = version + :inc, updated_at = :now, last_withdrawal_at = :now_unix"),
					ConditionExpression:                 aws.String(condition),
					ExpressionAttributeValues:           values,
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			{
				// Operation 2: Create the queued withdrawal.
				Put: &types.Put{
					TableName:           aws.String(s.Withdrawals),
					Item:                withdrawalAV,
					ConditionExpression: aws.String("attribute_not_exists(withdrawal_id)"),
				},
			},
			// Operation 3: Append the audit event.
			auditItem,
		},
	}

	if err := s.transactWrite(ctx, input); err != nil {
		reasons := cancellationReasons(err)
		if conditionFailed(reasons, 0) {
			return classifyDebitFailure(reasons[0].Item, w.Amount)
		}
		return fmt.Errorf("failed to execute withdrawal transaction: %w", err)
	}
	return nil
}

// classifyDebitFailure tells a short balance from an active cooldown using the
// account image returned with the failed condition.
func classifyDebitFailure(item map[string]types.AttributeValue, amount int64) error {
	if item == nil {
		return storage.ErrInsufficientFunds
	}
	var account models.Account
	if err := attributevalue.UnmarshalMap(item, &account); err != nil {
		return fmt.Errorf("failed to unmarshal account after failed debit: %w", err)
	}
	if account.Balance < amount {
		return storage.ErrInsufficientFunds
	}
	return storage.ErrCooldownActive
}

// CompleteWithdrawal moves a queued withdrawal to sent and records the chain signature.
func (s *Store) CompleteWithdrawal(ctx context.Context, withdrawalID, txSignature string) (*models.Withdrawal, error) {
	w, err := s.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if w.Status != models.QUEUED {
		return nil, storage.ErrWithdrawalNotQueued
	}

	now := time.Now().UTC()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for status update: %w", err)
	}
	eventID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate audit event ID: %w", err)
	}
	auditItem, err := s.auditPut(models.AuditEvent{
		EventID:      eventID.String(),
		Type:         models.WithdrawalSent,
		AccountID:    w.AccountID,
		Chain:        w.Chain,
		TxSignature:  txSignature,
		WithdrawalID: w.WithdrawalID,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:           aws.String(s.Withdrawals),
					Key:                 map[string]types.AttributeValue{"withdrawal_id": &types.AttributeValueMemberS{Value: w.WithdrawalID}},
					UpdateExpression:    aws.String("SET #status = :sent_status, tx_signature = :signature, updated_at = :now"),
					ConditionExpression: aws.String("#status = :queued_status"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":sent_status":   &types.AttributeValueMemberS{Value: string(models.SENT)},
						":queued_status": &types.AttributeValueMemberS{Value: string(models.QUEUED)},
						":signature":     &types.AttributeValueMemberS{Value: txSignature},
						":now":           nowAV,
					},
				},
			},
			auditItem,
		},
	}

	if err := s.transactWrite(ctx, input); err != nil {
		if conditionFailed(cancellationReasons(err), 0) {
			return nil, storage.ErrWithdrawalNotQueued
		}
		return nil, fmt.Errorf("failed to execute completion transaction: %w", err)
	}

	w.Status = models.SENT
	w.TxSignature = txSignature
	w.UpdatedAt = now
	return w, nil
}

// FailWithdrawal moves a queued withdrawal to failed and credits the amount back to the account.
func (s *Store) FailWithdrawal(ctx context.Context, withdrawalID, note string) (*models.Withdrawal, error) {
	w, err := s.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if w.Status != models.QUEUED {
		return nil, storage.ErrWithdrawalNotQueued
	}

	now := time.Now().UTC()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for status update: %w", err)
	}
	eventID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate audit event ID: %w", err)
	}
	auditItem, err := s.auditPut(models.AuditEvent{
		EventID:      eventID.String(),
		Type:         models.WithdrawalFailed,
		AccountID:    w.AccountID,
		Chain:        w.Chain,
		WithdrawalID: w.WithdrawalID,
		Credit:       w.Amount,
		Note:         note,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Mark the withdrawal failed.
				Update: &types.Update{
					TableName:           aws.String(s.Withdrawals),
					Key:                 map[string]types.AttributeValue{"withdrawal_id": &types.AttributeValueMemberS{Value: w.WithdrawalID}},
					UpdateExpression:    aws.String("SET #status = :failed_status, #note = :note, updated_at = :now"),
					ConditionExpression: aws.String("#status = :queued_status"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
						"#note":   "note",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":failed_status": &types.AttributeValueMemberS{Value: string(models.FAILED)},
						":queued_status": &types.AttributeValueMemberS{Value: string(models.QUEUED)},
						":note":          &types.AttributeValueMemberS{Value: note},
						":now":           nowAV,
					},
				},
			},
			{
				// Operation 2: Credit the full amount back.
				Update: &types.Update{
					TableName: aws.String(s.Accounts),
					Key: map[string]types.AttributeValue{
						"account_id": &types.AttributeValueMemberS{Value: w.AccountID},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(account_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", w.Amount)},
						":inc":    &types.AttributeValueMemberN{Value: "1"},
						":now":    nowAV,
					},
				},
			},
			// Operation 3: Append the audit event.
			auditItem,
		},
	}

	if err := s.transactWrite(ctx, input); err != nil {
		if conditionFailed(cancellationReasons(err), 0) {
			return nil, storage.ErrWithdrawalNotQueued
		}
		return nil, fmt.Errorf("failed to execute failure transaction: %w", err)
	}

	w.Status = models.FAILED
	w.Note = note
	w.UpdatedAt = now
	return w, nil
}
