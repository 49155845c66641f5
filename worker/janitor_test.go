package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	mu    sync.Mutex
	calls int
	n     int
}

func (f *fakePruner) Prune() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.n
}

type fakePurger struct {
	mu        sync.Mutex
	calls     int
	retention time.Duration
	removed   int64
	err       error
	done      chan struct{}
}

func (f *fakePurger) PurgeOlderThan(_ context.Context, retention time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.retention = retention
	if f.done != nil && f.calls == 1 {
		close(f.done)
	}
	return f.removed, f.err
}

func TestJanitorRun(t *testing.T) {
	pruner := &fakePruner{n: 3}
	purger := &fakePurger{removed: 5}
	j := NewJanitor(pruner, purger, 720*time.Hour, nil)

	j.run()

	require.Equal(t, 1, pruner.calls)
	require.Equal(t, 1, purger.calls)
	require.Equal(t, 720*time.Hour, purger.retention)
}

func TestJanitorRun_NilCollaborators(t *testing.T) {
	j := NewJanitor(nil, nil, time.Hour, nil)
	require.NotPanics(t, j.run)
}

func TestJanitorRun_PurgeErrorIsNonFatal(t *testing.T) {
	purger := &fakePurger{err: errors.New("db down")}
	j := NewJanitor(nil, purger, time.Hour, nil)
	require.NotPanics(t, j.run)
	require.Equal(t, 1, purger.calls)
}

func TestJanitorStart_BadSchedule(t *testing.T) {
	j := NewJanitor(&fakePruner{}, nil, time.Hour, nil)
	require.Error(t, j.Start("not a schedule"))
}

func TestJanitorStartStop(t *testing.T) {
	purger := &fakePurger{done: make(chan struct{})}
	j := NewJanitor(&fakePruner{}, purger, time.Hour, nil)

	require.NoError(t, j.Start("@every 10ms"))
	select {
	case <-purger.done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor never ran")
	}
	j.Stop()
}
