package wallet

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
)

// Caller is the node side of the wallet. *rpc.Client satisfies it.
type Caller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// RejectedError is returned when the user declines an account request. It
// carries the EIP-1193 user-rejected code so it classifies like a browser
// wallet rejection.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "user rejected the request"
	}
	return e.Message
}

func (e *RejectedError) ErrorCode() int { return constants.UserRejectedCode }

// Local is an in-process wallet: account methods are answered here after
// approval, everything else goes to the node.
type Local struct {
	node     Caller
	accounts []common.Address
	approver Approver

	mu         sync.Mutex
	authorized bool
}

func NewLocal(node Caller, accounts []common.Address, approver Approver) (*Local, error) {
	if node == nil {
		return nil, errors.New("wallet: nil node client")
	}
	if len(accounts) == 0 {
		return nil, errors.New("wallet: no accounts configured")
	}
	if approver == nil {
		approver = AutoApprove
	}
	return &Local{
		node:     node,
		accounts: append([]common.Address(nil), accounts...),
		approver: approver,
	}, nil
}

func (w *Local) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	switch method {
	case "eth_requestAccounts":
		ok, err := w.approver.Approve(ctx, Request{Method: method, Accounts: w.accounts})
		if err != nil {
			return errors.Wrap(err, "approval prompt")
		}
		if !ok {
			log.Warn("account request rejected", "method", method)
			w.setAuthorized(false)
			return &RejectedError{}
		}
		w.setAuthorized(true)
		return assign(result, w.accounts)

	case "eth_accounts":
		if !w.isAuthorized() {
			return assign(result, []common.Address{})
		}
		return assign(result, w.accounts)

	default:
		return w.node.CallContext(ctx, result, method, args...)
	}
}

// Revoke forgets a previous approval.
func (w *Local) Revoke() { w.setAuthorized(false) }

func (w *Local) setAuthorized(v bool) {
	w.mu.Lock()
	w.authorized = v
	w.mu.Unlock()
}

func (w *Local) isAuthorized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.authorized
}

// assign mirrors the JSON-RPC decoding path so callers see the same result
// types as from a remote wallet.
func assign(result interface{}, v interface{}) error {
	if result == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode wallet result")
	}
	return json.Unmarshal(raw, result)
}
