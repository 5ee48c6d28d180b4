package connection

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/quantum-oracle-client/internal/notify"
	"github.com/quantumauth-io/quantum-oracle-client/internal/provider"
)

const sepolia = 11155111

type fakeProvider struct {
	available  bool
	accounts   []common.Address
	accountErr error
	network    provider.NetworkIdentity
	networkErr error

	// gate, when set, blocks RequestAccounts until closed.
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeProvider) IsAvailable() bool { return f.available }

func (f *fakeProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.accounts, f.accountErr
}

func (f *fakeProvider) NetworkIdentity(context.Context) (provider.NetworkIdentity, error) {
	return f.network, f.networkErr
}

type captured struct {
	mu    sync.Mutex
	items []notify.Notification
}

func (c *captured) Notify(_ context.Context, n notify.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

func (c *captured) all() []notify.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notify.Notification(nil), c.items...)
}

type listener struct {
	connected    int
	disconnected int
}

func (l *listener) OnConnected(context.Context, Status) { l.connected++ }
func (l *listener) OnDisconnected(Status)                { l.disconnected++ }

func okProvider() *fakeProvider {
	return &fakeProvider{
		available: true,
		accounts:  []common.Address{common.HexToAddress("0x1")},
		network:   provider.NetworkIdentity{ChainID: sepolia, Name: "sepolia"},
	}
}

func TestConnect_Success(t *testing.T) {
	sink := &captured{}
	l := &listener{}
	m := NewManager(okProvider(), sepolia, "sepolia", sink)
	m.SetListener(l)

	require.NoError(t, m.Connect(context.Background()))

	st := m.Status()
	assert.Equal(t, StateConnected, st.State)
	assert.Equal(t, "sepolia", st.Network.Name)
	assert.Len(t, st.Accounts, 1)
	assert.Equal(t, 1, l.connected)
	assert.Empty(t, sink.all())
}

func TestConnect_WrongNetworkNeverConnects(t *testing.T) {
	p := okProvider()
	p.network = provider.NetworkIdentity{ChainID: 1, Name: "mainnet"}
	sink := &captured{}
	l := &listener{}
	m := NewManager(p, sepolia, "sepolia", sink)
	m.SetListener(l)

	err := m.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrongNetwork))

	st := m.Status()
	assert.Equal(t, StateFailed, st.State)
	assert.Equal(t, "wrong network", st.Reason)
	assert.Zero(t, l.connected)

	got := sink.all()
	require.Len(t, got, 1)
	assert.Equal(t, "Connection Error", got[0].Title)
	assert.Equal(t, notify.SeverityDestructive, got[0].Severity)
	assert.Contains(t, got[0].Description, "sepolia")
}

func TestConnect_NoProvider(t *testing.T) {
	p := okProvider()
	p.available = false
	sink := &captured{}
	m := NewManager(p, sepolia, "sepolia", sink)

	err := m.Connect(context.Background())
	assert.True(t, errors.Is(err, provider.ErrProviderUnavailable))
	assert.Equal(t, "provider unavailable", m.Status().Reason)
	require.Len(t, sink.all(), 1)
	assert.Contains(t, sink.all()[0].Description, "install a wallet")
}

func TestConnect_UserRejectedThenRetry(t *testing.T) {
	p := okProvider()
	p.accountErr = errors.Mark(errors.New("denied"), provider.ErrUserRejected)
	m := NewManager(p, sepolia, "sepolia", &captured{})

	require.Error(t, m.Connect(context.Background()))
	assert.Equal(t, StateFailed, m.Status().State)
	assert.Equal(t, "user rejected", m.Status().Reason)

	p.accountErr = nil
	require.NoError(t, m.Connect(context.Background()))
	assert.Equal(t, StateConnected, m.Status().State)
}

func TestConnect_WhileConnectedIsNoop(t *testing.T) {
	l := &listener{}
	m := NewManager(okProvider(), sepolia, "sepolia", &captured{})
	m.SetListener(l)

	require.NoError(t, m.Connect(context.Background()))
	require.NoError(t, m.Connect(context.Background()))
	assert.Equal(t, 1, l.connected)
}

func TestConnect_InProgress(t *testing.T) {
	p := okProvider()
	p.gate = make(chan struct{})
	p.entered = make(chan struct{})
	m := NewManager(p, sepolia, "sepolia", &captured{})

	done := make(chan error, 1)
	go func() { done <- m.Connect(context.Background()) }()
	<-p.entered

	assert.Equal(t, StateConnecting, m.Status().State)
	assert.ErrorIs(t, m.Connect(context.Background()), ErrConnectInProgress)

	close(p.gate)
	require.NoError(t, <-done)
	assert.Equal(t, StateConnected, m.Status().State)
}

func TestDisconnect_DuringConnectAbandonsAttempt(t *testing.T) {
	p := okProvider()
	p.gate = make(chan struct{})
	p.entered = make(chan struct{})
	l := &listener{}
	m := NewManager(p, sepolia, "sepolia", &captured{})
	m.SetListener(l)

	done := make(chan error, 1)
	go func() { done <- m.Connect(context.Background()) }()
	<-p.entered

	m.Disconnect()
	close(p.gate)

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, StateDisconnected, m.Status().State)
	assert.Zero(t, l.connected)
}

func TestDisconnect_FromConnected(t *testing.T) {
	l := &listener{}
	m := NewManager(okProvider(), sepolia, "sepolia", &captured{})
	m.SetListener(l)
	require.NoError(t, m.Connect(context.Background()))

	m.Disconnect()
	assert.Equal(t, StateDisconnected, m.Status().State)
	assert.Equal(t, 1, l.disconnected)
	assert.Empty(t, m.Status().Network.Name)
}

func TestHandleChainChanged(t *testing.T) {
	sink := &captured{}
	l := &listener{}
	m := NewManager(okProvider(), sepolia, "sepolia", sink)
	m.SetListener(l)
	require.NoError(t, m.Connect(context.Background()))

	m.HandleChainChanged(context.Background(), provider.NetworkIdentity{ChainID: sepolia, Name: "sepolia"})
	assert.Equal(t, StateConnected, m.Status().State)

	m.HandleChainChanged(context.Background(), provider.NetworkIdentity{ChainID: 1, Name: "mainnet"})
	assert.Equal(t, StateFailed, m.Status().State)
	assert.Equal(t, "wrong network", m.Status().Reason)
	assert.Equal(t, 1, l.disconnected)
	assert.Len(t, sink.all(), 1)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "", Reason(nil))
	assert.Equal(t, "wrong network", Reason(errors.Wrap(ErrWrongNetwork, "x")))
	assert.Equal(t, "user rejected", Reason(provider.ErrUserRejected))
	assert.Equal(t, "provider unavailable", Reason(provider.ErrProviderUnavailable))
	assert.Equal(t, "connection error", Reason(errors.New("boom")))
}
