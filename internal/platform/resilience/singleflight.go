package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// SingleFlight collapses concurrent loads of one key into a single call.
type SingleFlight struct {
	group singleflight.Group
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	return g.group.Do(key, fn)
}

// DoContext is Do with a waiter that gives up when ctx ends. The shared call
// keeps running for the other waiters.
func (g *SingleFlight) DoContext(ctx context.Context, key string, fn func() (any, error)) (any, error, bool) {
	ch := g.group.DoChan(key, fn)
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-ch:
		return res.Val, res.Err, res.Shared
	}
}

func (g *SingleFlight) Forget(key string) {
	g.group.Forget(key)
}
