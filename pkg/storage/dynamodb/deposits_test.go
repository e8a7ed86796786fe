package dynamodb

import (
	"context"
	"errors"
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

func cancelledAt(index, size int) error {
	reasons := make([]types.CancellationReason, size)
	for i := range reasons {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
	}
	reasons[index] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
	return &types.TransactionCanceledException{Message: aws.String("Transaction cancelled"), CancellationReasons: reasons}
}

func conflictAt(index, size int) error {
	reasons := make([]types.CancellationReason, size)
	for i := range reasons {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
	}
	reasons[index] = types.CancellationReason{Code: aws.String("TransactionConflict")}
	return &types.TransactionCanceledException{Message: aws.String("Transaction cancelled"), CancellationReasons: reasons}
}

func newDeposit() *models.Deposit {
	return &models.Deposit{
		TxSignature:   "sig1",
		Chain:         "solana",
		AccountID:     "acct-x",
		Amount:        100,
		Mint:          "MINT",
		SenderAddress: "W1",
		Slot:          42,
		BlockTime:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreditDeposit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		var captured *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*dynamodb.TransactWriteItemsInput) }).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		deposit := newDeposit()
		err := store.CreditDeposit(context.Background(), deposit)

		require.NoError(t, err)
		assert.NotEmpty(t, deposit.DepositID)
		assert.False(t, deposit.CreditedAt.IsZero())
		require.Len(t, captured.TransactItems, 5)

		put := captured.TransactItems[0].Put
		assert.Equal(t, "deposits", *put.TableName)
		assert.Equal(t, "attribute_not_exists(tx_signature)", *put.ConditionExpression)

		accountWallet := captured.TransactItems[1].Update
		assert.Equal(t, "wallets", *accountWallet.TableName)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "ACCOUNT#acct-x#solana"}, accountWallet.Key["pk"])

		addressWallet := captured.TransactItems[2].Update
		assert.Equal(t, &types.AttributeValueMemberS{Value: "ADDRESS#solana#W1"}, addressWallet.Key["pk"])

		credit := captured.TransactItems[3].Update
		assert.Equal(t, "accounts", *credit.TableName)
		assert.Equal(t, &types.AttributeValueMemberN{Value: "100"}, credit.ExpressionAttributeValues[":amount"])

		var event models.AuditEvent
		require.NoError(t, attributevalue.UnmarshalMap(captured.TransactItems[4].Put.Item, &event))
		assert.Equal(t, models.DepositCredited, event.Type)
		assert.Equal(t, int64(100), event.Credit)
		assert.Equal(t, "sig1", event.TxSignature)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Signature", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelledAt(0, 5)).Once()

		err := store.CreditDeposit(context.Background(), newDeposit())

		assert.ErrorIs(t, err, storage.ErrDuplicateDeposit)
		mockClient.AssertExpectations(t)
	})

	t.Run("Account Bound Elsewhere", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelledAt(1, 5)).Once()

		err := store.CreditDeposit(context.Background(), newDeposit())

		assert.ErrorIs(t, err, storage.ErrWalletMismatch)
	})

	t.Run("Wallet Claimed By Another Account", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelledAt(2, 5)).Once()

		err := store.CreditDeposit(context.Background(), newDeposit())

		assert.ErrorIs(t, err, storage.ErrWalletClaimed)
	})

	t.Run("Conflict Retried", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		store.retryDelay = 0

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conflictAt(3, 5)).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		err := store.CreditDeposit(context.Background(), newDeposit())

		require.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Conflict Persists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		store.retryDelay = 0

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conflictAt(1, 5)).Times(transactAttempts)

		err := store.CreditDeposit(context.Background(), newDeposit())

		assert.ErrorIs(t, err, storage.ErrConflict)
		assert.NotErrorIs(t, err, storage.ErrWalletMismatch)
		mockClient.AssertExpectations(t)
	})

	t.Run("Condition Failure Beside Conflict Not Retried", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		cancelled := cancelledAt(0, 5).(*types.TransactionCanceledException)
		cancelled.CancellationReasons[3] = types.CancellationReason{Code: aws.String("TransactionConflict")}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled).Once()

		err := store.CreditDeposit(context.Background(), newDeposit())

		assert.ErrorIs(t, err, storage.ErrDuplicateDeposit)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		err := store.CreditDeposit(context.Background(), newDeposit())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute deposit transaction")
	})
}

func TestGetDeposit(t *testing.T) {
	deposit := newDeposit()
	deposit.DepositID = "dep-1"
	deposit.CreditedAt = time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		depositAV, _ := attributevalue.MarshalMap(deposit)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: depositAV}, nil)

		result, err := store.GetDeposit(context.Background(), "sig1")

		assert.NoError(t, err)
		assert.Equal(t, deposit, result)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetDeposit(context.Background(), "sig1")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestListDepositsByAccount(t *testing.T) {
	older := models.Deposit{DepositID: "0001", TxSignature: "sig1", AccountID: "acct-x", Amount: 10}
	newer := models.Deposit{DepositID: "0002", TxSignature: "sig2", AccountID: "acct-x", Amount: 20}
	olderAV, _ := attributevalue.MarshalMap(older)
	newerAV, _ := attributevalue.MarshalMap(newer)

	t.Run("Most Recent Returned Oldest First", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == depositsByAccountIndex && !*in.ScanIndexForward && *in.Limit == 2
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{newerAV, olderAV}}, nil).Once()

		result, err := store.ListDepositsByAccount(context.Background(), "acct-x", 2)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "sig1", result[0].TxSignature)
		assert.Equal(t, "sig2", result[1].TxSignature)
		mockClient.AssertExpectations(t)
	})

	t.Run("Unlimited Reads Every Page", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		lastKey := map[string]types.AttributeValue{"tx_signature": &types.AttributeValueMemberS{Value: "sig1"}}
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{
			Items:            []map[string]types.AttributeValue{olderAV},
			LastEvaluatedKey: lastKey,
		}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{newerAV},
		}, nil).Once()

		result, err := store.ListDepositsByAccount(context.Background(), "acct-x", 0)

		require.NoError(t, err)
		assert.Len(t, result, 2)
		mockClient.AssertExpectations(t)
	})
}
