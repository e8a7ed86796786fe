// Package config loads the bridge configuration from an optional .env file,
// an optional bridge.yaml and BRIDGE_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/chris/custodial-bridge/pkg/bridge"
)

const (
	KindSolana = "solana"
	KindEVM    = "evm"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Signer   SignerConfig   `mapstructure:"signer"`
	Operator OperatorConfig `mapstructure:"operator"`
	Chains   []ChainConfig  `mapstructure:"chains" validate:"dive"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port" validate:"required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type StorageConfig struct {
	Backend  string         `mapstructure:"backend" validate:"oneof=dynamodb postgres memory"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type DynamoDBConfig struct {
	AccountsTable    string `mapstructure:"accounts_table" validate:"required"`
	WalletsTable     string `mapstructure:"wallets_table" validate:"required"`
	DepositsTable    string `mapstructure:"deposits_table" validate:"required"`
	WithdrawalsTable string `mapstructure:"withdrawals_table" validate:"required"`
	AuditTable       string `mapstructure:"audit_table" validate:"required"`
}

type PostgresConfig struct {
	DSN     string `mapstructure:"dsn"`
	Migrate bool   `mapstructure:"migrate"`
}

// SignerConfig describes the hand-off to the offline signer. An empty queue
// URL leaves the signer to pull queued withdrawals over HTTP.
type SignerConfig struct {
	QueueURL   string        `mapstructure:"queue_url"`
	StaleAfter time.Duration `mapstructure:"stale_after" validate:"gt=0"`
}

// OperatorConfig holds the credential of the signer and operator tooling.
// An empty key disables the operator routes.
type OperatorConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// ChainConfig is one bridged chain. Amounts are decimal token units.
type ChainConfig struct {
	Name               string        `mapstructure:"name" validate:"required"`
	Kind               string        `mapstructure:"kind" validate:"oneof=solana evm"`
	RPCURL             string        `mapstructure:"rpc_url" validate:"required,url"`
	Mint               string        `mapstructure:"mint" validate:"required"`
	ReserveAddress     string        `mapstructure:"reserve_address" validate:"required"`
	Decimals           int32         `mapstructure:"decimals" validate:"gte=0,lte=18"`
	MinWithdrawal      string        `mapstructure:"min_withdrawal" validate:"required"`
	MaxWithdrawal      string        `mapstructure:"max_withdrawal" validate:"required"`
	WithdrawalFee      string        `mapstructure:"withdrawal_fee"`
	MinDeposit         string        `mapstructure:"min_deposit"`
	WithdrawalCooldown time.Duration `mapstructure:"withdrawal_cooldown" validate:"gte=0"`
	Confirmations      uint64        `mapstructure:"confirmations"`
	QueryTimeout       time.Duration `mapstructure:"query_timeout" validate:"gt=0"`
	QueryRetries       int           `mapstructure:"query_retries" validate:"gte=0,lte=10"`
	RateLimitPerSecond float64       `mapstructure:"rate_limit_per_second" validate:"gte=0"`
	BreakerFailures    uint32        `mapstructure:"breaker_failures"`
}

// DefaultChain is the Solana bridge used when no chains are configured.
func DefaultChain() ChainConfig {
	return ChainConfig{
		Name:               "solana",
		Kind:               KindSolana,
		RPCURL:             "https://api.mainnet-beta.solana.com",
		Mint:               "12TAdKXxcGf6oCv4rqDz2NkgxjyHq6HQKoxKZYGf5i4X",
		ReserveAddress:     "3n7RJanhRghRzW2PBg1UbkV9syiod8iUMugTvLzwTRkW",
		Decimals:           6,
		MinWithdrawal:      "1",
		MaxWithdrawal:      "100000",
		WithdrawalFee:      "0.05",
		MinDeposit:         "0",
		QueryTimeout:       15 * time.Second,
		QueryRetries:       2,
		RateLimitPerSecond: 5,
		BreakerFailures:    5,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("storage.backend", "dynamodb")
	v.SetDefault("storage.dynamodb.accounts_table", "bridge-accounts")
	v.SetDefault("storage.dynamodb.wallets_table", "bridge-wallets")
	v.SetDefault("storage.dynamodb.deposits_table", "bridge-deposits")
	v.SetDefault("storage.dynamodb.withdrawals_table", "bridge-withdrawals")
	v.SetDefault("storage.dynamodb.audit_table", "bridge-audit")
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.migrate", true)
	v.SetDefault("signer.queue_url", "")
	v.SetDefault("signer.stale_after", 10*time.Minute)
	v.SetDefault("operator.api_key", "")
}

// Load reads the configuration. A missing .env or bridge.yaml is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("bridge")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if len(cfg.Chains) == 0 {
		cfg.Chains = []ChainConfig{DefaultChain()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the chain limits.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Backend == "postgres" && c.Storage.Postgres.DSN == "" {
		return errors.New("invalid config: storage.postgres.dsn is required for the postgres backend")
	}
	seen := make(map[string]bool, len(c.Chains))
	for _, ch := range c.Chains {
		if seen[ch.Name] {
			return fmt.Errorf("invalid config: chain %s configured twice", ch.Name)
		}
		seen[ch.Name] = true
		bc, err := ch.Bridge()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := bc.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	return nil
}

// Bridge converts the decimal amounts to base units.
func (c ChainConfig) Bridge() (bridge.ChainConfig, error) {
	out := bridge.ChainConfig{
		Name:               c.Name,
		Kind:               c.Kind,
		Mint:               c.Mint,
		ReserveAddress:     c.ReserveAddress,
		Decimals:           c.Decimals,
		WithdrawalCooldown: c.WithdrawalCooldown,
		Confirmations:      c.Confirmations,
	}
	amounts := []struct {
		name  string
		value string
		dst   *int64
	}{
		{"min_withdrawal", c.MinWithdrawal, &out.MinWithdrawal},
		{"max_withdrawal", c.MaxWithdrawal, &out.MaxWithdrawal},
		{"withdrawal_fee", c.WithdrawalFee, &out.WithdrawalFee},
		{"min_deposit", c.MinDeposit, &out.MinDeposit},
	}
	for _, a := range amounts {
		units, err := ToBaseUnits(a.value, c.Decimals)
		if err != nil {
			return bridge.ChainConfig{}, fmt.Errorf("chain %s: %s: %w", c.Name, a.name, err)
		}
		*a.dst = units
	}
	return out, nil
}

// ToBaseUnits converts a decimal token amount such as "0.05" to integer base
// units. An empty amount is zero.
func ToBaseUnits(amount string, decimals int32) (int64, error) {
	if amount == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	units := d.Shift(decimals)
	if !units.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimals", amount, decimals)
	}
	if !units.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %q is out of range", amount)
	}
	return units.IntPart(), nil
}
