package connection

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"

	"github.com/quantumauth-io/quantum-oracle-client/internal/provider"
)

var (
	// ErrWrongNetwork means the wallet is on a chain other than the expected
	// one. Recoverable by switching networks and connecting again.
	ErrWrongNetwork = errors.New("wrong network")

	ErrConnectInProgress = errors.New("connect already in progress")
)

// State is the connection state. Failed carries a reason in Status.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateFailed       State = "failed"
)

// AllStates lists every state, for metrics.
var AllStates = []string{
	string(StateDisconnected),
	string(StateConnecting),
	string(StateConnected),
	string(StateFailed),
}

// Status is a copy of the manager's state at one instant.
type Status struct {
	State    State                    `json:"state"`
	Reason   string                   `json:"reason,omitempty"`
	Network  provider.NetworkIdentity `json:"network"`
	Accounts []common.Address         `json:"accounts,omitempty"`
}

// WalletProvider is what the manager needs from the provider adapter.
type WalletProvider interface {
	IsAvailable() bool
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	NetworkIdentity(ctx context.Context) (provider.NetworkIdentity, error)
}

// Listener observes transitions. OnConnected runs after the manager is
// Connected; OnDisconnected runs after it leaves Connected for any reason.
type Listener interface {
	OnConnected(ctx context.Context, st Status)
	OnDisconnected(st Status)
}
