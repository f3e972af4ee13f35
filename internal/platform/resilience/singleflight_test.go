package resilience

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleFlight_CollapsesConcurrentLoads(t *testing.T) {
	var g SingleFlight
	var loads atomic.Int32
	release := make(chan struct{})

	const waiters = 8
	var wg sync.WaitGroup
	wg.Add(waiters)
	for range waiters {
		go func() {
			defer wg.Done()
			v, err, _ := g.DoContext(context.Background(), "specialization:list:creator:c1", func() (any, error) {
				loads.Add(1)
				<-release
				return "loaded", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "loaded", v)
		}()
	}

	require.Eventually(t, func() bool { return loads.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
}

func TestSingleFlight_DoContextStopsWaiting(t *testing.T) {
	var g SingleFlight
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _, _ = g.Do("slow", func() (any, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err, _ := g.DoContext(ctx, "slow", func() (any, error) {
		return "second", nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
