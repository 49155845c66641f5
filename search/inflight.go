package search

import (
	"context"
	"sync"
)

// pendingResult is a settle-once future for one in-flight provider call.
// Any number of goroutines may wait on it without re-issuing the call.
type pendingResult struct {
	done    chan struct{}
	once    sync.Once
	flights []ScoredFlight
	err     error
}

func newPendingResult() *pendingResult {
	return &pendingResult{done: make(chan struct{})}
}

func (p *pendingResult) settle(flights []ScoredFlight, err error) {
	p.once.Do(func() {
		p.flights = flights
		p.err = err
		close(p.done)
	})
}

// wait blocks until the result settles or ctx is cancelled.
func (p *pendingResult) wait(ctx context.Context) ([]ScoredFlight, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.flights, p.err
	}
}

// inflightRegistry collapses concurrent identical searches into one pending
// call. register is check-and-set under one lock, so exactly one caller per
// key becomes the owner that issues the provider call.
type inflightRegistry struct {
	mu      sync.Mutex
	pending map[SearchKey]*pendingResult
}

func newInflightRegistry() *inflightRegistry {
	return &inflightRegistry{pending: make(map[SearchKey]*pendingResult)}
}

// register returns the pending result for key. owner is true when the caller
// created the entry and is responsible for executing the call, settling the
// result, and releasing the key.
func (r *inflightRegistry) register(key SearchKey) (p *pendingResult, owner bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.pending[key]; ok {
		return existing, false
	}
	p = newPendingResult()
	r.pending[key] = p
	return p, true
}

// release removes the key. It must run exactly once per owned entry, on
// success and failure alike, so a failed call never blocks future retries of
// the same key.
func (r *inflightRegistry) release(key SearchKey) {
	r.mu.Lock()
	delete(r.pending, key)
	r.mu.Unlock()
}

// releaseAll drops every entry. Owners still settle their futures, so
// waiters are not stranded.
func (r *inflightRegistry) releaseAll() {
	r.mu.Lock()
	r.pending = make(map[SearchKey]*pendingResult)
	r.mu.Unlock()
}

func (r *inflightRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
