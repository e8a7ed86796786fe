// Package solana looks up SPL token transfers on a Solana cluster.
package solana

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"golang.org/x/time/rate"

	"github.com/chris/custodial-bridge/pkg/chain"
	"github.com/chris/custodial-bridge/pkg/models"
)

// RPC is the subset of *rpc.Client the adapter uses.
type RPC interface {
	GetTransaction(ctx context.Context, txSig solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error)
}

// Adapter reads finalized transactions and derives the token movement into
// the reserve from the pre/post token balances of the transaction meta.
type Adapter struct {
	name    string
	mint    solana.PublicKey
	reserve solana.PublicKey
	client  RPC
}

var _ chain.Adapter = (*Adapter)(nil)

// New returns an adapter for the given canonical mint and reserve owner.
func New(name string, client RPC, mint, reserve string) (*Adapter, error) {
	m, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return nil, fmt.Errorf("invalid mint %q: %w", mint, err)
	}
	r, err := solana.PublicKeyFromBase58(reserve)
	if err != nil {
		return nil, fmt.Errorf("invalid reserve address %q: %w", reserve, err)
	}
	return &Adapter{name: name, mint: m, reserve: r, client: client}, nil
}

// NewClient builds a rate limited JSON-RPC client for endpoint.
func NewClient(endpoint string, perSecond float64, burst int) *rpc.Client {
	if perSecond <= 0 {
		return rpc.New(endpoint)
	}
	if burst < 1 {
		burst = 1
	}
	return rpc.NewWithCustomRPCClient(rpc.NewWithLimiter(endpoint, rate.Limit(perSecond), burst))
}

func (a *Adapter) NormalizeSignature(signature string) (string, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return "", fmt.Errorf("invalid solana signature: %w", err)
	}
	return sig.String(), nil
}

func (a *Adapter) NormalizeAddress(address string) (string, error) {
	pk, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return "", fmt.Errorf("invalid solana address: %w", err)
	}
	return pk.String(), nil
}

func (a *Adapter) Lookup(ctx context.Context, signature string) chain.Result {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return chain.Result{Status: chain.NotFound, Reason: "malformed signature"}
	}

	maxVersion := uint64(0)
	tx, err := a.client.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentFinalized,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && tx == nil) {
		return chain.Result{Status: chain.NotFound, Reason: "transaction not found or not finalized yet"}
	}
	if err != nil {
		return chain.UnavailableResult(fmt.Errorf("getTransaction: %w", err))
	}
	if tx.Meta == nil {
		return chain.Result{Status: chain.NotFinalized, Reason: "transaction meta not available yet"}
	}
	if tx.Meta.Err != nil {
		return chain.Result{Status: chain.Failed, Reason: fmt.Sprintf("transaction failed on-chain: %v", tx.Meta.Err)}
	}

	transfer, reason := a.extract(tx.Meta.PreTokenBalances, tx.Meta.PostTokenBalances)
	if transfer == nil {
		return chain.Result{Status: chain.Failed, Reason: reason}
	}
	transfer.Signature = signature
	transfer.Chain = a.name
	transfer.Slot = tx.Slot
	if tx.BlockTime != nil {
		transfer.FinalizedAt = tx.BlockTime.Time().UTC()
	}
	return chain.FoundResult(transfer)
}

type balance struct {
	owner  string
	mint   string
	amount int64
}

func index(balances []rpc.TokenBalance) (map[uint16]balance, error) {
	out := make(map[uint16]balance, len(balances))
	for _, b := range balances {
		var amount int64
		if b.UiTokenAmount != nil && b.UiTokenAmount.Amount != "" {
			v, err := strconv.ParseInt(b.UiTokenAmount.Amount, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("token amount %q: %w", b.UiTokenAmount.Amount, err)
			}
			amount = v
		}
		owner := ""
		if b.Owner != nil {
			owner = b.Owner.String()
		}
		out[b.AccountIndex] = balance{owner: owner, mint: b.Mint.String(), amount: amount}
	}
	return out, nil
}

// extract picks the credited token account: the largest canonical increase
// owned by the reserve, else the largest canonical increase, else the largest
// increase of any mint. The verifier rejects the latter two by mint and
// recipient. The sender is the owner with the largest summed decrease of the
// same mint.
func (a *Adapter) extract(preBalances, postBalances []rpc.TokenBalance) (*models.ChainTransfer, string) {
	pre, err := index(preBalances)
	if err != nil {
		return nil, err.Error()
	}
	post, err := index(postBalances)
	if err != nil {
		return nil, err.Error()
	}

	mint := a.mint.String()
	reserve := a.reserve.String()

	type credit struct {
		idx   uint16
		delta int64
	}
	var toReserve, canonical, anyMint credit
	for idx, p := range post {
		delta := p.amount - pre[idx].amount
		if delta <= 0 {
			continue
		}
		if delta > anyMint.delta {
			anyMint = credit{idx, delta}
		}
		if p.mint != mint {
			continue
		}
		if delta > canonical.delta {
			canonical = credit{idx, delta}
		}
		if p.owner == reserve && delta > toReserve.delta {
			toReserve = credit{idx, delta}
		}
	}

	picked := toReserve
	if picked.delta == 0 {
		picked = canonical
	}
	if picked.delta == 0 {
		picked = anyMint
	}
	if picked.delta == 0 {
		// no token moved in; the empty mint fails the asset check
		return &models.ChainTransfer{}, ""
	}
	recv := post[picked.idx]

	decreases := make(map[string]int64)
	for idx, p := range pre {
		if p.mint != recv.mint || p.owner == "" || p.owner == recv.owner {
			continue
		}
		if dec := p.amount - post[idx].amount; dec > 0 {
			decreases[p.owner] += dec
		}
	}
	sender, largest := "", int64(0)
	for owner, dec := range decreases {
		if dec > largest || (dec == largest && owner < sender) {
			sender, largest = owner, dec
		}
	}
	if sender == "" {
		return nil, "sender could not be determined"
	}

	return &models.ChainTransfer{
		MintID:           recv.mint,
		SenderAddress:    sender,
		RecipientAddress: recv.owner,
		Amount:           picked.delta,
	}, ""
}
