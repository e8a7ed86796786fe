package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChainStats(t *testing.T) {
	items := func(values ...any) []map[string]types.AttributeValue {
		out := make([]map[string]types.AttributeValue, len(values))
		for i, v := range values {
			out[i], _ = attributevalue.MarshalMap(v)
		}
		return out
	}
	onIndex := func(index string) any {
		return mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == index &&
				assert.ObjectsAreEqual(&types.AttributeValueMemberS{Value: "solana"}, in.ExpressionAttributeValues[":chain"])
		})
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		var withdrawalQuery *dynamodb.QueryInput
		mockClient.On("Query", mock.Anything, onIndex(depositsByChainIndex)).Return(&dynamodb.QueryOutput{
			Items: items(map[string]int64{"amount": 100}, map[string]int64{"amount": 40}),
		}, nil).Once()
		mockClient.On("Query", mock.Anything, onIndex(withdrawalsByChainIndex)).
			Run(func(args mock.Arguments) { withdrawalQuery = args.Get(1).(*dynamodb.QueryInput) }).
			Return(&dynamodb.QueryOutput{Items: items(
				map[string]any{"amount": 30, "status": "queued"},
				map[string]any{"amount": 20, "status": "failed"},
			)}, nil).Once()

		stats, err := store.ChainStats(context.Background(), "solana")

		require.NoError(t, err)
		assert.Equal(t, models.BridgeStats{
			Chain: "solana", DepositCount: 2, DepositedTotal: 140,
			WithdrawalCount: 2, WithdrawnTotal: 50, QueuedWithdrawals: 1, FailedWithdrawals: 1,
		}, *stats)
		assert.Equal(t, "#amount, #status", *withdrawalQuery.ProjectionExpression)
		assert.Equal(t, map[string]string{"#chain": "chain", "#amount": "amount", "#status": "status"}, withdrawalQuery.ExpressionAttributeNames)
		mockClient.AssertExpectations(t)
	})

	t.Run("Empty Chain", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil).Twice()

		stats, err := store.ChainStats(context.Background(), "solana")

		require.NoError(t, err)
		assert.Equal(t, models.BridgeStats{Chain: "solana"}, *stats)
	})

	t.Run("Query Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed")).Once()

		_, err := store.ChainStats(context.Background(), "solana")

		assert.ErrorContains(t, err, "failed to sum deposits")
	})
}
