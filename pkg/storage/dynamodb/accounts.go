package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/custodial-bridge/pkg/models"
	"github.com/chris/custodial-bridge/pkg/storage"
)

// The wallets table holds two items per binding so that both directions are unique:
// one keyed by account and chain, one keyed by chain and address.
func accountWalletKey(accountID, chain string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("ACCOUNT#%s#%s", accountID, chain)},
	}
}

func addressWalletKey(chain, address string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("ADDRESS#%s#%s", chain, address)},
	}
}

// GetAccount retrieves an account from DynamoDB by its ID.
func (s *Store) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"account_id": accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.Accounts),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return &account, nil
}

// GetWalletBinding retrieves the wallet bound to the account on the chain.
func (s *Store) GetWalletBinding(ctx context.Context, accountID, chain string) (*models.WalletBinding, error) {
	return s.getWallet(ctx, accountWalletKey(accountID, chain))
}

// FindWalletOwner retrieves the binding that owns the address on the chain.
func (s *Store) FindWalletOwner(ctx context.Context, chain, address string) (*models.WalletBinding, error) {
	return s.getWallet(ctx, addressWalletKey(chain, address))
}

func (s *Store) getWallet(ctx context.Context, key map[string]types.AttributeValue) (*models.WalletBinding, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.Wallets),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet binding from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var binding models.WalletBinding
	if err := attributevalue.UnmarshalMap(result.Item, &binding); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet binding: %w", err)
	}
	return &binding, nil
}
