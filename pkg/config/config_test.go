package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

func TestDecode(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := decode(newViper(t, ""))
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.HTTP.Port)
		assert.Equal(t, "dynamodb", cfg.Storage.Backend)
		assert.Equal(t, 10*time.Minute, cfg.Signer.StaleAfter)
		assert.Empty(t, cfg.Operator.APIKey)
		require.Len(t, cfg.Chains, 1)

		bc, err := cfg.Chains[0].Bridge()
		require.NoError(t, err)
		assert.Equal(t, int64(50_000), bc.WithdrawalFee)
		assert.Equal(t, int64(1_000_000), bc.MinWithdrawal)
		assert.Equal(t, int64(100_000_000_000), bc.MaxWithdrawal)
	})

	t.Run("Chains From File", func(t *testing.T) {
		cfg, err := decode(newViper(t, `
storage:
  backend: memory
chains:
  - name: base
    kind: evm
    rpc_url: https://mainnet.base.org
    mint: "0x5683C10596AaA09AD7F4eF13CAB94b9b74A669c6"
    reserve_address: "0x9A4F2c8E2B7f6aF3a1b8E4fD3c2E1b0A9f8e7d6C"
    decimals: 6
    min_withdrawal: "1"
    max_withdrawal: "10000"
    withdrawal_fee: "0.1"
    min_deposit: "0.5"
    withdrawal_cooldown: 1h
    confirmations: 12
    query_timeout: 10s
    query_retries: 1
`))
		require.NoError(t, err)
		require.Len(t, cfg.Chains, 1)

		ch := cfg.Chains[0]
		assert.Equal(t, KindEVM, ch.Kind)
		assert.Equal(t, time.Hour, ch.WithdrawalCooldown)
		bc, err := ch.Bridge()
		require.NoError(t, err)
		assert.Equal(t, int64(100_000), bc.WithdrawalFee)
		assert.Equal(t, int64(500_000), bc.MinDeposit)
		assert.Equal(t, uint64(12), bc.Confirmations)
	})

	t.Run("Operator Key From File", func(t *testing.T) {
		cfg, err := decode(newViper(t, "operator:\n  api_key: s3cret\n"))
		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.Operator.APIKey)
	})

	t.Run("Invalid Backend", func(t *testing.T) {
		_, err := decode(newViper(t, "storage:\n  backend: sqlite\n"))
		assert.Error(t, err)
	})

	t.Run("Postgres Needs DSN", func(t *testing.T) {
		_, err := decode(newViper(t, "storage:\n  backend: postgres\n"))
		assert.ErrorContains(t, err, "dsn")
	})

	t.Run("Fee Above Max", func(t *testing.T) {
		_, err := decode(newViper(t, `
chains:
  - name: solana
    kind: solana
    rpc_url: https://api.mainnet-beta.solana.com
    mint: 12TAdKXxcGf6oCv4rqDz2NkgxjyHq6HQKoxKZYGf5i4X
    reserve_address: 3n7RJanhRghRzW2PBg1UbkV9syiod8iUMugTvLzwTRkW
    decimals: 6
    min_withdrawal: "1"
    max_withdrawal: "2"
    withdrawal_fee: "5"
    query_timeout: 15s
`))
		assert.Error(t, err)
	})
}

func TestToBaseUnits(t *testing.T) {
	cases := []struct {
		in       string
		decimals int32
		want     int64
		wantErr  bool
	}{
		{"0.05", 6, 50_000, false},
		{"1", 6, 1_000_000, false},
		{"", 6, 0, false},
		{"100000", 6, 100_000_000_000, false},
		{"0.0000001", 6, 0, true},
		{"abc", 6, 0, true},
		{"99999999999999999999", 6, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ToBaseUnits(tc.in, tc.decimals)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
