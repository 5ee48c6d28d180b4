package provider

import (
	"context"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
)

var (
	// ErrProviderUnavailable means no wallet is injected or the wallet could
	// not be reached. Fatal for the session until the user retries.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrUserRejected means the user declined the authorization request.
	ErrUserRejected = errors.New("user rejected")
)

// Wallet is the injected capability brokering account access and network
// identity. A go-ethereum *rpc.Client satisfies it.
type Wallet interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// NetworkNamer gives chain ids a display name.
type NetworkNamer interface {
	NameFor(chainID uint64) string
}

// NetworkIdentity is the network the wallet reported at connection time.
type NetworkIdentity struct {
	ChainID uint64 `json:"chainId"`
	Name    string `json:"name"`
}

type Provider struct {
	wallet Wallet
	names  NetworkNamer
}

// NewProvider wraps an injected wallet. wallet may be nil, in which case the
// provider reports itself unavailable.
func NewProvider(wallet Wallet, names NetworkNamer) *Provider {
	if isNil(wallet) {
		wallet = nil
	}
	return &Provider{wallet: wallet, names: names}
}

// IsAvailable reports whether a wallet was injected.
func (p *Provider) IsAvailable() bool {
	return p != nil && p.wallet != nil
}

// RequestAccounts asks the wallet for account access. It blocks until the
// user answers the wallet's own prompt.
func (p *Provider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if !p.IsAvailable() {
		return nil, errors.Wrap(ErrProviderUnavailable, "no wallet injected")
	}

	var accounts []common.Address
	if err := p.wallet.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, classify(err, "eth_requestAccounts")
	}
	if len(accounts) == 0 {
		return nil, errors.Mark(errors.New("wallet returned no accounts"), ErrUserRejected)
	}

	log.Info("wallet accounts authorized", "count", len(accounts), "first", accounts[0].Hex())
	return accounts, nil
}

// Revoke drops a remembered account approval on wallets that keep one.
// Remote wallets manage their own approvals and are left alone.
func (p *Provider) Revoke() {
	if !p.IsAvailable() {
		return
	}
	if r, ok := p.wallet.(interface{ Revoke() }); ok {
		r.Revoke()
		log.Info("wallet account approval revoked")
	}
}

// NetworkIdentity reads the chain id the wallet is currently on.
func (p *Provider) NetworkIdentity(ctx context.Context) (NetworkIdentity, error) {
	if !p.IsAvailable() {
		return NetworkIdentity{}, errors.Wrap(ErrProviderUnavailable, "no wallet injected")
	}

	var chainID hexutil.Uint64
	if err := p.wallet.CallContext(ctx, &chainID, "eth_chainId"); err != nil {
		return NetworkIdentity{}, errors.Mark(errors.Wrap(err, "eth_chainId"), ErrProviderUnavailable)
	}

	id := uint64(chainID)
	name := ""
	if p.names != nil {
		name = p.names.NameFor(id)
	}
	return NetworkIdentity{ChainID: id, Name: name}, nil
}

// classify maps a wallet error onto the provider taxonomy.
func classify(err error, method string) error {
	wrapped := errors.Wrap(err, method)

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == constants.UserRejectedCode {
		return errors.Mark(wrapped, ErrUserRejected)
	}
	if strings.Contains(strings.ToLower(err.Error()), "user rejected") {
		return errors.Mark(wrapped, ErrUserRejected)
	}
	return errors.Mark(wrapped, ErrProviderUnavailable)
}

func isNil(w Wallet) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
