package server

import (
	"context"
	"time"
)

// ShutdownCoordinator drains in-flight requests before the HTTP server stops.
type ShutdownCoordinator struct {
	baseCtx     context.Context
	cancel      context.CancelFunc
	gracePeriod time.Duration
}

func NewShutdownCoordinator(gracePeriod time.Duration) *ShutdownCoordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &ShutdownCoordinator{
		baseCtx:     ctx,
		cancel:      cancel,
		gracePeriod: gracePeriod,
	}
}

// BaseContext is the parent of every request context. It is cancelled when
// shutdown begins, so slow snapshot assembly stops early.
func (sc *ShutdownCoordinator) BaseContext() context.Context {
	return sc.baseCtx
}

// InitiateShutdown cancels the base context and blocks for the grace period.
func (sc *ShutdownCoordinator) InitiateShutdown() {
	sc.cancel()
	time.Sleep(sc.gracePeriod)
}
