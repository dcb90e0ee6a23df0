// Package background runs work that must not hold up the request that started it.
package background

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"hackathon-backend/log"
)

// Timeout bounds every task, since tasks no longer share their request's deadline.
const Timeout = 30 * time.Second

type Group struct {
	wg sync.WaitGroup
}

// Go runs f detached from the caller's context. Failures are logged, never returned.
func (g *Group) Go(name string, f func(ctx context.Context) error, fields ...zap.Field) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()

		if err := f(ctx); err != nil {
			log.Logger.Error("background task failed", append(fields, zap.String("task", name), zap.Error(err))...)
		}
	}()
}

// Wait blocks until every task has finished or ctx is done.
func (g *Group) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
