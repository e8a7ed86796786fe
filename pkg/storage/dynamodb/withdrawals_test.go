package dynamodb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage"
	"github.com/chris/custodial-bridge/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func debitRejected(account map[string]types.AttributeValue) error {
	return &types.TransactionCanceledException{
		Message: aws.String("Transaction cancelled"),
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed"), Item: account},
			{Code: aws.String("None")},
			{Code: aws.String("None")},
		},
	}
}

func TestCreateWithdrawal(t *testing.T) {
	newWithdrawal := func() *models.Withdrawal {
		return &models.Withdrawal{AccountID: "acct-x", Chain: "solana", DestinationAddress: "W1", Amount: 30, Fee: 1}
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		var captured *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*dynamodb.TransactWriteItemsInput) }).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		w := newWithdrawal()
		err := store.CreateWithdrawal(context.Background(), w, 0)

		require.NoError(t, err)
		assert.NotEmpty(t, w.WithdrawalID)
		assert.Equal(t, models.QUEUED, w.Status)
		require.Len(t, captured.TransactItems, 3)

		debit := captured.TransactItems[0].Update
		assert.Equal(t, "attribute_exists(account_id) AND balance >= :amount", *debit.ConditionExpression)
		assert.Equal(t, &types.AttributeValueMemberN{Value: "30"}, debit.ExpressionAttributeValues[":amount"])
		assert.Equal(t, types.ReturnValuesOnConditionCheckFailureAllOld, debit.ReturnValuesOnConditionCheckFailure)

		createdAt := captured.TransactItems[1].Put.Item["created_at"].(*types.AttributeValueMemberS).Value
		assert.Equal(t, w.CreatedAt.Format(timeFormat), createdAt)
		assert.Len(t, createdAt, len("2026-03-01T12:00:00.000000000Z"))

		var event models.AuditEvent
		require.NoError(t, attributevalue.UnmarshalMap(captured.TransactItems[2].Put.Item, &event))
		assert.Equal(t, models.WithdrawalQueued, event.Type)
		assert.Equal(t, int64(30), event.Debit)
		assert.Equal(t, w.WithdrawalID, event.WithdrawalID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Cooldown Adds Condition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
			update := in.TransactItems[0].Update
			_, hasCutoff := update.ExpressionAttributeValues[":cutoff"]
			return hasCutoff && strings.Contains(*update.ConditionExpression, "last_withdrawal_at <= :cutoff")
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		err := store.CreateWithdrawal(context.Background(), newWithdrawal(), time.Hour)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		accountAV, _ := attributevalue.MarshalMap(models.Account{AccountID: "acct-x", Balance: 20})
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, debitRejected(accountAV)).Once()

		err := store.CreateWithdrawal(context.Background(), newWithdrawal(), time.Hour)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, debitRejected(nil)).Once()

		err := store.CreateWithdrawal(context.Background(), newWithdrawal(), 0)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
	})

	t.Run("Cooldown Active", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		accountAV, _ := attributevalue.MarshalMap(models.Account{AccountID: "acct-x", Balance: 500})
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, debitRejected(accountAV)).Once()

		err := store.CreateWithdrawal(context.Background(), newWithdrawal(), time.Hour)

		assert.ErrorIs(t, err, storage.ErrCooldownActive)
	})

	t.Run("Conflict Retried", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		store.retryDelay = 0

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conflictAt(0, 3)).Twice()
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		w := newWithdrawal()
		err := store.CreateWithdrawal(context.Background(), w, time.Hour)

		require.NoError(t, err)
		assert.Equal(t, models.QUEUED, w.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Conflict Persists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		store.retryDelay = 0

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conflictAt(0, 3)).Times(transactAttempts)

		err := store.CreateWithdrawal(context.Background(), newWithdrawal(), time.Hour)

		assert.ErrorIs(t, err, storage.ErrConflict)
		assert.NotErrorIs(t, err, storage.ErrInsufficientFunds)
		mockClient.AssertExpectations(t)
	})

	t.Run("Cancelled Context Stops Retrying", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		ctx, cancel := context.WithCancel(context.Background())
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(nil, conflictAt(0, 3)).Once()

		err := store.CreateWithdrawal(ctx, newWithdrawal(), time.Hour)

		assert.ErrorIs(t, err, context.Canceled)
		mockClient.AssertExpectations(t)
	})
}

func TestCompleteWithdrawal(t *testing.T) {
	queued := &models.Withdrawal{WithdrawalID: "wd-1", AccountID: "acct-x", Chain: "solana", Amount: 30, Fee: 1, Status: models.QUEUED}
	queuedAV, _ := attributevalue.MarshalMap(queued)

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: queuedAV}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
			update := in.TransactItems[0].Update
			return *update.ConditionExpression == "#status = :queued_status" &&
				len(in.TransactItems) == 2
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		result, err := store.CompleteWithdrawal(context.Background(), "wd-1", "out-sig")

		require.NoError(t, err)
		assert.Equal(t, models.SENT, result.Status)
		assert.Equal(t, "out-sig", result.TxSignature)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Terminal", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		sent := *queued
		sent.Status = models.SENT
		sentAV, _ := attributevalue.MarshalMap(sent)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: sentAV}, nil).Once()

		_, err := store.CompleteWithdrawal(context.Background(), "wd-1", "out-sig")

		assert.ErrorIs(t, err, storage.ErrWithdrawalNotQueued)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Lost Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: queuedAV}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelledAt(0, 2)).Once()

		_, err := store.CompleteWithdrawal(context.Background(), "wd-1", "out-sig")

		assert.ErrorIs(t, err, storage.ErrWithdrawalNotQueued)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

		_, err := store.CompleteWithdrawal(context.Background(), "wd-404", "out-sig")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestFailWithdrawal(t *testing.T) {
	queued := &models.Withdrawal{WithdrawalID: "wd-1", AccountID: "acct-x", Chain: "solana", Amount: 30, Fee: 1, Status: models.QUEUED}
	queuedAV, _ := attributevalue.MarshalMap(queued)

	t.Run("Success Credits Amount Back", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		var captured *dynamodb.TransactWriteItemsInput
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: queuedAV}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*dynamodb.TransactWriteItemsInput) }).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		result, err := store.FailWithdrawal(context.Background(), "wd-1", "rpc rejected")

		require.NoError(t, err)
		assert.Equal(t, models.FAILED, result.Status)
		assert.Equal(t, "rpc rejected", result.Note)
		require.Len(t, captured.TransactItems, 3)

		credit := captured.TransactItems[1].Update
		assert.Equal(t, "accounts", *credit.TableName)
		assert.Equal(t, &types.AttributeValueMemberN{Value: "30"}, credit.ExpressionAttributeValues[":amount"])

		var event models.AuditEvent
		require.NoError(t, attributevalue.UnmarshalMap(captured.TransactItems[2].Put.Item, &event))
		assert.Equal(t, models.WithdrawalFailed, event.Type)
		assert.Equal(t, int64(30), event.Credit)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: queuedAV}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		_, err := store.FailWithdrawal(context.Background(), "wd-1", "rpc rejected")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute failure transaction")
	})
}

func TestListWithdrawalsByStatus(t *testing.T) {
	w := models.Withdrawal{WithdrawalID: "wd-1", AccountID: "acct-x", Status: models.QUEUED, Amount: 30}
	wAV, _ := attributevalue.MarshalMap(w)

	t.Run("With Cutoff", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		// Whole seconds keep all nine fraction digits.
		cutoff := time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == withdrawalsByStatusIndex &&
				assert.ObjectsAreEqual(&types.AttributeValueMemberS{Value: "2026-03-01T12:00:01.000000000Z"}, in.ExpressionAttributeValues[":cutoff"])
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{wAV}}, nil).Once()

		result, err := store.ListWithdrawalsByStatus(context.Background(), models.QUEUED, cutoff, 10)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "wd-1", result[0].WithdrawalID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Query Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed")).Once()

		_, err := store.ListWithdrawalsByStatus(context.Background(), models.QUEUED, time.Time{}, 0)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query withdrawals by status")
	})
}
