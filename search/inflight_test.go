package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testKey(origin, destination string) SearchKey {
	return SearchKey{
		Origin:      origin,
		Destination: destination,
		Date:        "2026-09-01",
		Cabin:       Economy,
		Passengers:  1,
		Stops:       AnyStops,
	}
}

func TestInflight_SingleOwnerPerKey(t *testing.T) {
	reg := newInflightRegistry()
	key := testKey("SFO", "JFK")

	first, owner := reg.register(key)
	require.True(t, owner)

	second, owner := reg.register(key)
	require.False(t, owner)
	require.Same(t, first, second, "joiners share the owner's future")

	other, owner := reg.register(testKey("SFO", "LAX"))
	require.True(t, owner, "a different key gets its own owner")
	require.NotSame(t, first, other)
	require.Equal(t, 2, reg.len())
}

func TestInflight_SettleWakesAllWaiters(t *testing.T) {
	reg := newInflightRegistry()
	key := testKey("SFO", "JFK")
	p, owner := reg.register(key)
	require.True(t, owner)

	want := []ScoredFlight{{EnrichedFlight: EnrichedFlight{RawFlight: RawFlight{ID: "f1"}}, Score: 9.5}}

	var wg sync.WaitGroup
	results := make([][]ScoredFlight, 4)
	for i := 0; i < 4; i++ {
		joined, joinedOwner := reg.register(key)
		require.False(t, joinedOwner)
		wg.Add(1)
		go func(i int, p *pendingResult) {
			defer wg.Done()
			flights, err := p.wait(context.Background())
			require.NoError(t, err)
			results[i] = flights
		}(i, joined)
	}

	p.settle(want, nil)
	reg.release(key)
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
	require.Zero(t, reg.len())
}

func TestInflight_SettleIsOnce(t *testing.T) {
	p := newPendingResult()
	p.settle(nil, errors.New("first"))
	p.settle([]ScoredFlight{{Score: 1}}, nil) // ignored

	flights, err := p.wait(context.Background())
	require.Nil(t, flights)
	require.EqualError(t, err, "first")
}

func TestInflight_WaitHonoursContext(t *testing.T) {
	p := newPendingResult()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := p.wait(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("wait did not observe cancellation")
	}
}

func TestInflight_ReleaseAllowsReissue(t *testing.T) {
	reg := newInflightRegistry()
	key := testKey("SFO", "JFK")

	p, owner := reg.register(key)
	require.True(t, owner)
	p.settle(nil, errors.New("provider down"))
	reg.release(key)

	// The failed call must not pin the key; the next caller owns a fresh one.
	next, owner := reg.register(key)
	require.True(t, owner)
	require.NotSame(t, p, next)
}

func TestInflight_ReleaseAll(t *testing.T) {
	reg := newInflightRegistry()
	a, _ := reg.register(testKey("SFO", "JFK"))
	b, _ := reg.register(testKey("SFO", "LAX"))

	reg.releaseAll()
	require.Zero(t, reg.len())

	// Stranded owners still settle; waiters attached before the wipe resolve.
	a.settle(nil, context.Canceled)
	b.settle(nil, context.Canceled)
	_, err := a.wait(context.Background())
	require.ErrorIs(t, err, context.Canceled)
}
