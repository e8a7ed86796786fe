package evm

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/custodial-bridge/pkg/chain"
)

var (
	testContract = common.HexToAddress("0x5683C10596AaA09AD7F4eF13CAB94b9b74A669c6")
	testReserve  = common.HexToAddress("0x9A4F2c8E2B7f6aF3a1b8E4fD3c2E1b0A9f8e7d6C")
	testSender   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testOther    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testTxHash   = "0x" + strings.Repeat("ab", 32)
)

type mockRPC struct {
	mock.Mock
}

func (m *mockRPC) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	args := m.Called(ctx, txHash)
	r, _ := args.Get(0).(*types.Receipt)
	return r, args.Error(1)
}

func (m *mockRPC) BlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockRPC) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	args := m.Called(ctx, number)
	h, _ := args.Get(0).(*types.Header)
	return h, args.Error(1)
}

func newTransferLog(contract, from, to common.Address, amount int64) *types.Log {
	return &types.Log{
		Address: contract,
		Topics: []common.Hash{
			TransferTopic,
			common.BytesToHash(from.Bytes()),
			common.BytesToHash(to.Bytes()),
		},
		Data: common.LeftPadBytes(big.NewInt(amount).Bytes(), 32),
	}
}

func receipt(logs ...*types.Log) *types.Receipt {
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(1000),
		Logs:        logs,
	}
}

func newTestAdapter(t *testing.T) (*Adapter, *mockRPC) {
	t.Helper()
	client := new(mockRPC)
	a, err := New("base", client, testContract.Hex(), testReserve.Hex(), 12)
	require.NoError(t, err)
	return a, client
}

func TestLookup(t *testing.T) {
	hash := common.HexToHash(testTxHash)

	t.Run("Token Transfer To Reserve", func(t *testing.T) {
		a, client := newTestAdapter(t)
		client.On("TransactionReceipt", mock.Anything, hash).Return(receipt(
			newTransferLog(testOther, testSender, testOther, 7),
			newTransferLog(testContract, testSender, testReserve, 2_500_000),
		), nil).Once()
		client.On("BlockNumber", mock.Anything).Return(uint64(1012), nil).Once()
		client.On("HeaderByNumber", mock.Anything, big.NewInt(1000)).Return(&types.Header{Time: 1700000000}, nil).Once()

		res := a.Lookup(context.Background(), testTxHash)

		require.Equal(t, chain.Found, res.Status)
		assert.Equal(t, strings.ToLower(testContract.Hex()), res.Transfer.MintID)
		assert.Equal(t, strings.ToLower(testReserve.Hex()), res.Transfer.RecipientAddress)
		assert.Equal(t, strings.ToLower(testSender.Hex()), res.Transfer.SenderAddress)
		assert.Equal(t, int64(2_500_000), res.Transfer.Amount)
		assert.Equal(t, uint64(1000), res.Transfer.Slot)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), res.Transfer.FinalizedAt)
		assert.Equal(t, "base", res.Transfer.Chain)
		client.AssertExpectations(t)
	})

	t.Run("Too Few Confirmations", func(t *testing.T) {
		a, client := newTestAdapter(t)
		client.On("TransactionReceipt", mock.Anything, hash).Return(receipt(
			newTransferLog(testContract, testSender, testReserve, 10),
		), nil).Once()
		client.On("BlockNumber", mock.Anything).Return(uint64(1011), nil).Once()

		res := a.Lookup(context.Background(), testTxHash)

		assert.Equal(t, chain.NotFinalized, res.Status)
		assert.Contains(t, res.Reason, "11/12")
	})

	t.Run("Reverted", func(t *testing.T) {
		a, client := newTestAdapter(t)
		r := receipt()
		r.Status = types.ReceiptStatusFailed
		client.On("TransactionReceipt", mock.Anything, hash).Return(r, nil).Once()

		res := a.Lookup(context.Background(), testTxHash)

		assert.Equal(t, chain.Failed, res.Status)
	})

	t.Run("Not Found", func(t *testing.T) {
		a, client := newTestAdapter(t)
		client.On("TransactionReceipt", mock.Anything, hash).Return(nil, ethereum.NotFound).Once()

		res := a.Lookup(context.Background(), testTxHash)

		assert.Equal(t, chain.NotFound, res.Status)
	})

	t.Run("Node Unreachable", func(t *testing.T) {
		a, client := newTestAdapter(t)
		client.On("TransactionReceipt", mock.Anything, hash).Return(nil, errors.New("i/o timeout")).Once()

		res := a.Lookup(context.Background(), testTxHash)

		assert.Equal(t, chain.Unavailable, res.Status)
	})

	t.Run("Token Sent Elsewhere", func(t *testing.T) {
		a, client := newTestAdapter(t)
		client.On("TransactionReceipt", mock.Anything, hash).Return(receipt(
			newTransferLog(testContract, testSender, testOther, 10),
		), nil).Once()
		client.On("BlockNumber", mock.Anything).Return(uint64(2000), nil).Once()
		client.On("HeaderByNumber", mock.Anything, big.NewInt(1000)).Return(&types.Header{Time: 1}, nil).Once()

		res := a.Lookup(context.Background(), testTxHash)

		require.Equal(t, chain.Found, res.Status)
		assert.Equal(t, strings.ToLower(testOther.Hex()), res.Transfer.RecipientAddress)
	})

	t.Run("Amount Overflow", func(t *testing.T) {
		a, client := newTestAdapter(t)
		huge := newTransferLog(testContract, testSender, testReserve, 0)
		huge.Data = common.LeftPadBytes(new(big.Int).Lsh(big.NewInt(1), 80).Bytes(), 32)
		client.On("TransactionReceipt", mock.Anything, hash).Return(receipt(huge), nil).Once()
		client.On("BlockNumber", mock.Anything).Return(uint64(2000), nil).Once()

		res := a.Lookup(context.Background(), testTxHash)

		assert.Equal(t, chain.Failed, res.Status)
	})
}

func TestValidation(t *testing.T) {
	a, _ := newTestAdapter(t)

	sig, err := a.NormalizeSignature(strings.ToUpper(testTxHash[2:]))
	assert.Error(t, err)
	assert.Empty(t, sig)

	sig, err = a.NormalizeSignature("0x" + strings.ToUpper(testTxHash[2:]))
	require.NoError(t, err)
	assert.Equal(t, testTxHash, sig)

	_, err = a.NormalizeSignature("0x1234")
	assert.Error(t, err)

	addr, err := a.NormalizeAddress(testReserve.Hex())
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(testReserve.Hex()), addr)

	_, err = a.NormalizeAddress("3n7RJanhRghRzW2PBg1UbkV9syiod8iUMugTvLzwTRkW")
	assert.Error(t, err)
}
