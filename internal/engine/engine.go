package engine

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/quantum-oracle-client/internal/assets"
	"github.com/quantumauth-io/quantum-oracle-client/internal/connection"
	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
	"github.com/quantumauth-io/quantum-oracle-client/internal/dashboard"
	"github.com/quantumauth-io/quantum-oracle-client/internal/notify"
	"github.com/quantumauth-io/quantum-oracle-client/internal/oracle"
	"github.com/quantumauth-io/quantum-oracle-client/internal/poller"
)

const (
	fetchErrorTitle = "Error fetching prices"
	stopTimeout     = 5 * time.Second
)

type Config struct {
	Poll               poller.Config
	ChainCheckInterval time.Duration
	ExpectedChainID    uint64
	ExpectedNetwork    string
}

func DefaultConfig() Config {
	return Config{
		Poll:               poller.DefaultConfig(),
		ChainCheckInterval: constants.DefaultChainCheckInterval,
		ExpectedChainID:    constants.ExpectedChainID,
		ExpectedNetwork:    constants.ExpectedNetworkName,
	}
}

// Engine connects the wallet, keeps the connection on the expected chain and
// polls prices while connected.
type Engine struct {
	cfg       Config
	provider  connection.WalletProvider
	reader    oracle.Reader
	assets    []assets.Descriptor
	notifier  notify.Sink
	manager   *connection.Manager
	scheduler *poller.Scheduler
	board     *dashboard.Board

	// transMu orders the reaction to connection transitions so that a late
	// OnConnected never restarts polling after the manager left Connected.
	transMu sync.Mutex
	closed  bool

	mu          sync.Mutex
	base        context.Context
	cancelBase  context.CancelFunc
	cancelWatch context.CancelFunc
	watchWG     sync.WaitGroup
}

func New(cfg Config, p connection.WalletProvider, reader oracle.Reader, list []assets.Descriptor, sink notify.Sink) (*Engine, error) {
	if reader == nil {
		return nil, errors.New("engine: nil price reader")
	}
	if len(list) == 0 {
		return nil, errors.New("engine: no assets")
	}
	if sink == nil {
		sink = notify.LogSink{}
	}
	def := DefaultConfig()
	if cfg.Poll.Interval <= 0 {
		cfg.Poll.Interval = def.Poll.Interval
	}
	if cfg.Poll.Timeout <= 0 {
		cfg.Poll.Timeout = def.Poll.Timeout
	}
	if cfg.ChainCheckInterval <= 0 {
		cfg.ChainCheckInterval = def.ChainCheckInterval
	}
	if cfg.ExpectedChainID == 0 {
		cfg.ExpectedChainID = def.ExpectedChainID
		cfg.ExpectedNetwork = def.ExpectedNetwork
	}

	e := &Engine{
		cfg:      cfg,
		provider: p,
		reader:   reader,
		assets:   append([]assets.Descriptor(nil), list...),
		notifier: sink,
		board:    dashboard.NewBoard(list),
	}
	e.base, e.cancelBase = context.WithCancel(context.Background())
	e.manager = connection.NewManager(p, cfg.ExpectedChainID, cfg.ExpectedNetwork, sink)
	e.manager.SetListener(e)
	e.scheduler = poller.New(cfg.Poll, e.fetch, e)
	return e, nil
}

// Start mounts the engine: it attempts one connection. A failed attempt is
// notified and left for the user to retry.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	e.cancelBase()
	e.base, e.cancelBase = context.WithCancel(ctx)
	e.mu.Unlock()

	log.Info("engine started", "strategy", e.reader.Strategy(), "assets", assets.Symbols(e.assets))
	if err := e.Connect(ctx); err != nil && !errors.Is(err, connection.ErrConnectInProgress) {
		log.Warn("initial connection failed", "error", err)
	}
	return nil
}

func (e *Engine) Connect(ctx context.Context) error {
	return e.manager.Connect(ctx)
}

// Disconnect resets the connection. A wallet that remembers approvals
// forgets them, so the next Connect asks the user again.
func (e *Engine) Disconnect() {
	if r, ok := e.provider.(revoker); ok {
		r.Revoke()
	}
	e.manager.Disconnect()
}

type revoker interface {
	Revoke()
}

// Refresh runs a cycle now. It reports false when not connected or when a
// cycle is already in flight.
func (e *Engine) Refresh() bool {
	if e.manager.Status().State != connection.StateConnected {
		return false
	}
	return e.scheduler.Trigger()
}

func (e *Engine) Status() connection.Status { return e.manager.Status() }

func (e *Engine) Stats() poller.Stats { return e.scheduler.Stats() }

func (e *Engine) View() dashboard.View {
	st := e.manager.Status()
	conn := dashboard.Connection{
		State:       string(st.State),
		Reason:      st.Reason,
		NetworkName: st.Network.Name,
	}
	return e.board.View(conn, e.scheduler.IsLoading())
}

// Close tears the engine down. No snapshot is published after it returns.
func (e *Engine) Close(ctx context.Context) error {
	e.transMu.Lock()
	e.closed = true
	err := e.scheduler.Stop(ctx)
	e.stopWatcher()
	e.transMu.Unlock()

	e.mu.Lock()
	e.cancelBase()
	e.mu.Unlock()

	e.manager.Disconnect()
	e.watchWG.Wait()
	e.board.Reset()
	log.Info("engine closed")
	return err
}

func (e *Engine) OnConnected(context.Context, connection.Status) {
	e.transMu.Lock()
	defer e.transMu.Unlock()

	if e.closed || e.manager.Status().State != connection.StateConnected {
		log.Info("connection left connected state before polling started")
		return
	}

	base := e.baseContext()
	e.startWatcher(base)
	if err := e.scheduler.Start(base); err != nil {
		log.Error("failed to start price poller", "error", err)
	}
}

func (e *Engine) OnDisconnected(st connection.Status) {
	e.transMu.Lock()
	defer e.transMu.Unlock()

	e.stopWatcher()
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := e.scheduler.Stop(ctx); err != nil {
		log.Warn("price poller did not stop in time", "error", err)
	}
	log.Info("polling halted", "state", string(st.State), "reason", st.Reason)
}

func (e *Engine) HandleSnapshot(_ context.Context, snap *oracle.Snapshot) {
	e.board.Publish(snap)
}

func (e *Engine) HandleError(ctx context.Context, err error) {
	e.notifier.Notify(ctx, notify.Notification{
		Title:       fetchErrorTitle,
		Description: err.Error(),
		Severity:    notify.SeverityDestructive,
	})
}

func (e *Engine) fetch(ctx context.Context) (*oracle.Snapshot, error) {
	return e.reader.FetchAll(ctx, e.assets)
}

func (e *Engine) baseContext() context.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.base
}
