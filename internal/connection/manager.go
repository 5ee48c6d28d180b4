package connection

import (
	"context"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/quantum-oracle-client/internal/metrics"
	"github.com/quantumauth-io/quantum-oracle-client/internal/notify"
	"github.com/quantumauth-io/quantum-oracle-client/internal/provider"
)

const connectErrorTitle = "Connection Error"

type Manager struct {
	provider        WalletProvider
	expectedChainID uint64
	expectedName    string
	notifier        notify.Sink
	listener        Listener

	mu     sync.Mutex
	status Status
	// attempt is bumped by every Connect and Disconnect; a connect attempt
	// only commits its result if no newer transition happened meanwhile.
	attempt uint64
}

func NewManager(p WalletProvider, expectedChainID uint64, expectedName string, notifier notify.Sink) *Manager {
	if notifier == nil {
		notifier = notify.LogSink{}
	}
	m := &Manager{
		provider:        p,
		expectedChainID: expectedChainID,
		expectedName:    expectedName,
		notifier:        notifier,
		status:          Status{State: StateDisconnected},
	}
	metrics.SetConnectionState(string(StateDisconnected), AllStates)
	return m
}

// SetListener registers the observer of connect/disconnect transitions.
// Call before the first Connect.
func (m *Manager) SetListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = l
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Connect runs one connection attempt. It is a no-op when already connected
// and returns ErrConnectInProgress while another attempt is running. Every
// failure is notified and leaves the manager in Failed, from which Connect
// may be called again.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	switch m.status.State {
	case StateConnected:
		m.mu.Unlock()
		return nil
	case StateConnecting:
		m.mu.Unlock()
		return ErrConnectInProgress
	}
	m.attempt++
	attempt := m.attempt
	m.setLocked(Status{State: StateConnecting})
	m.mu.Unlock()

	log.Info("connecting wallet", "expected_chain_id", m.expectedChainID)

	st, err := m.dial(ctx)
	if err != nil {
		m.fail(ctx, attempt, err)
		metrics.ConnectAttempts.WithLabelValues(Reason(err)).Inc()
		return err
	}

	m.mu.Lock()
	if m.attempt != attempt {
		// Disconnected while the wallet was answering.
		m.mu.Unlock()
		log.Info("connect attempt superseded", "network", st.Network.Name)
		return context.Canceled
	}
	m.setLocked(st)
	listener := m.listener
	m.mu.Unlock()

	metrics.ConnectAttempts.WithLabelValues("connected").Inc()
	log.Info("wallet connected", "network", st.Network.Name, "chain_id", st.Network.ChainID)

	if listener != nil {
		listener.OnConnected(ctx, st)
	}
	return nil
}

func (m *Manager) dial(ctx context.Context) (Status, error) {
	if m.provider == nil || !m.provider.IsAvailable() {
		return Status{}, errors.Wrap(provider.ErrProviderUnavailable, "please install a wallet")
	}

	accounts, err := m.provider.RequestAccounts(ctx)
	if err != nil {
		return Status{}, err
	}

	network, err := m.provider.NetworkIdentity(ctx)
	if err != nil {
		return Status{}, err
	}
	if err := m.checkChain(network); err != nil {
		return Status{}, err
	}

	return Status{State: StateConnected, Network: network, Accounts: accounts}, nil
}

func (m *Manager) checkChain(network provider.NetworkIdentity) error {
	if network.ChainID == m.expectedChainID {
		return nil
	}
	return errors.Mark(
		fmt.Errorf("please connect to %s (chain %d), wallet is on %s (chain %d)",
			m.expectedName, m.expectedChainID, network.Name, network.ChainID),
		ErrWrongNetwork)
}

// HandleChainChanged re-validates the chain after the wallet reports a
// switch. Leaving the expected chain drops the connection to Failed.
func (m *Manager) HandleChainChanged(ctx context.Context, network provider.NetworkIdentity) {
	m.mu.Lock()
	if m.status.State != StateConnected {
		m.mu.Unlock()
		return
	}
	if network.ChainID == m.expectedChainID {
		m.status.Network = network
		m.mu.Unlock()
		return
	}
	attempt := m.attempt
	m.mu.Unlock()

	m.fail(ctx, attempt, m.checkChain(network))
}

// Disconnect resets the manager to Disconnected. An attempt still in flight
// is abandoned.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	prev := m.status
	m.attempt++
	m.setLocked(Status{State: StateDisconnected})
	listener := m.listener
	m.mu.Unlock()

	log.Info("wallet disconnected", "previous_state", string(prev.State))
	if prev.State == StateConnected && listener != nil {
		listener.OnDisconnected(m.Status())
	}
}

func (m *Manager) fail(ctx context.Context, attempt uint64, err error) {
	reason := Reason(err)

	m.mu.Lock()
	if m.attempt != attempt {
		m.mu.Unlock()
		return
	}
	wasConnected := m.status.State == StateConnected
	st := Status{State: StateFailed, Reason: reason}
	m.setLocked(st)
	listener := m.listener
	m.mu.Unlock()

	log.Warn("wallet connection failed", "reason", reason, "error", err)
	m.notifier.Notify(ctx, notify.Notification{
		Title:       connectErrorTitle,
		Description: err.Error(),
		Severity:    notify.SeverityDestructive,
	})

	if wasConnected && listener != nil {
		listener.OnDisconnected(st)
	}
}

func (m *Manager) setLocked(st Status) {
	m.status = st
	metrics.SetConnectionState(string(st.State), AllStates)
}

// Reason is the short failure reason carried by the Failed state.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrWrongNetwork):
		return "wrong network"
	case errors.Is(err, provider.ErrUserRejected):
		return "user rejected"
	case errors.Is(err, provider.ErrProviderUnavailable):
		return "provider unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "connection error"
	}
}
