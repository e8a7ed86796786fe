package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/custodial-bridge/pkg/storage"
)

//go:generate mockery --name DynamoDBAPI --output ./mocks --outpkg mocks

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

const (
	depositsByAccountIndex    = "account_id-deposit_id-index"
	withdrawalsByAccountIndex = "account_id-withdrawal_id-index"
	withdrawalsByStatusIndex  = "status-created_at-index"
	depositsByChainIndex      = "chain-deposit_id-index"
	withdrawalsByChainIndex   = "chain-withdrawal_id-index"
	auditByAccountIndex       = "account_id-event_id-index"
	auditBySignatureIndex     = "tx_signature-event_id-index"
	auditByWithdrawalIndex    = "withdrawal_id-event_id-index"
)

// transactAttempts bounds how often a transaction cancelled only by
// conflicting concurrent writes is resubmitted.
const transactAttempts = 3

// timeFormat renders timestamps used as sort keys. The fixed-width fraction
// keeps lexical and chronological order in agreement.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Tables holds the table names the store writes to.
type Tables struct {
	Accounts    string
	Wallets     string
	Deposits    string
	Withdrawals string
	Audit       string
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client DynamoDBAPI
	Tables

	retryDelay time.Duration
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client:     client,
		Tables:     tables,
		retryDelay: 25 * time.Millisecond,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// cancellationReasons returns the per-item reasons of a cancelled transaction,
// or nil when err is something else.
func cancellationReasons(err error) []types.CancellationReason {
	var txc *types.TransactionCanceledException
	if errors.As(err, &txc) {
		return txc.CancellationReasons
	}
	return nil
}

// conditionFailed reports whether the item at index failed its condition check.
func conditionFailed(reasons []types.CancellationReason, index int) bool {
	if index >= len(reasons) || reasons[index].Code == nil {
		return false
	}
	return *reasons[index].Code == "ConditionalCheckFailed"
}

// transactionConflict reports whether the transaction was cancelled only
// because another transaction was writing one of its items.
func transactionConflict(reasons []types.CancellationReason) bool {
	conflict := false
	for _, r := range reasons {
		if r.Code == nil {
			continue
		}
		switch *r.Code {
		case "TransactionConflict":
			conflict = true
		case "None":
		default:
			return false
		}
	}
	return conflict
}

// transactWrite submits the transaction and resubmits it while it is
// cancelled by conflicts alone. A cancelled transaction applies nothing, so
// the same input is safe to send again. When the attempts run out the error
// wraps storage.ErrConflict.
func (s *Store) transactWrite(ctx context.Context, input *dynamodb.TransactWriteItemsInput) error {
	for attempt := 1; ; attempt++ {
		_, err := s.Client.TransactWriteItems(ctx, input)
		if err == nil || !transactionConflict(cancellationReasons(err)) {
			return err
		}
		if attempt == transactAttempts {
			return fmt.Errorf("%w: %w", storage.ErrConflict, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.retryDelay):
		}
	}
}

// timeValue renders t in timeFormat.
func timeValue(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: t.UTC().Format(timeFormat)}
}

// queryPages runs the query page by page until it is exhausted or at least
// limit items were read. A non-positive limit reads every page.
func (s *Store) queryPages(ctx context.Context, input *dynamodb.QueryInput, limit int32) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		page, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if limit > 0 && len(items) >= int(limit) {
			return items[:limit], nil
		}
		if len(page.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
