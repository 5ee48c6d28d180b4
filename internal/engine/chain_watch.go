package engine

import (
	"context"
	"time"

	"github.com/quantumauth-io/quantum-go-utils/log"
)

func (e *Engine) startWatcher(parent context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancelWatch != nil {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	e.cancelWatch = cancel
	e.watchWG.Add(1)
	go e.maintainChainFromWallet(ctx, e.cfg.ChainCheckInterval)
}

// stopWatcher does not wait for the watcher: it may be the caller.
func (e *Engine) stopWatcher() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancelWatch != nil {
		e.cancelWatch()
		e.cancelWatch = nil
	}
}

// maintainChainFromWallet re-reads the wallet's chain while connected so a
// network switch drops the connection.
func (e *Engine) maintainChainFromWallet(ctx context.Context, duration time.Duration) {
	defer e.watchWG.Done()

	timer := time.NewTimer(duration)
	defer timer.Stop()
	numChecks := 0
	for {
		timer.Reset(duration)
		select {
		case <-ctx.Done():
			log.Info("chain watcher exiting", "numChecks", numChecks)
			return
		case <-timer.C:
			numChecks++
			e.checkChain(ctx)
		}
	}
}

func (e *Engine) checkChain(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, e.cfg.Poll.Timeout)
	defer cancel()

	network, err := e.provider.NetworkIdentity(cctx)
	if err != nil {
		log.Warn("chain check failed", "error", err)
		return
	}
	e.manager.HandleChainChanged(ctx, network)
}
