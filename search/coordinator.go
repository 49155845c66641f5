package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kmorales/wayfarer/duration"
	"github.com/kmorales/wayfarer/pkg/cache"
	"github.com/kmorales/wayfarer/pkg/logger"
)

// MaxConcurrency bounds how many multi-city legs search the provider at
// once.
const MaxConcurrency = 3

var (
	// ErrNoActiveSession is returned by operations that need a session.
	ErrNoActiveSession = errors.New("no active search session")
	// ErrReturnNotPending is returned when the return leg cannot be
	// searched yet: no round trip, outbound not finished, or the return
	// leg already has activity.
	ErrReturnNotPending = errors.New("return leg is not pending")
	// ErrUnknownLeg is returned when a retry names a leg the session does
	// not have.
	ErrUnknownLeg = errors.New("unknown leg")
)

// Options configure a Coordinator. Zero values fall back to sane defaults.
type Options struct {
	Retry             RetryOptions
	MaxConcurrency    int
	CacheTTL          time.Duration
	Preferences       Preferences
	Passengers        PassengerCount
	Cabin             CabinClass
	Stops             StopsFilter
	AlternateAirports bool
}

// Coordinator owns flight-search orchestration: it runs per-leg searches
// through the cache, the in-flight registry, and the retry policy, and it
// publishes per-leg state for the UI to observe. Exactly one search session
// is active at a time; starting a new one invalidates the old one before any
// new work is scheduled.
type Coordinator struct {
	provider  Provider
	validator Validator
	scorer    Scorer
	results   *resultCache
	inflight  *inflightRegistry
	log       *logger.Logger

	retry             RetryOptions
	maxConcurrency    int
	prefs             Preferences
	passengers        PassengerCount
	cabin             CabinClass
	stops             StopsFilter
	alternateAirports bool

	mu       sync.Mutex
	sess     *session
	legs     map[string]*LegResult
	legOrder []string

	wg sync.WaitGroup
}

// NewCoordinator wires a coordinator around a provider and its collaborators.
func NewCoordinator(provider Provider, validator Validator, scorer Scorer, backend cache.Cache, log *logger.Logger, opts Options) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	if validator == nil {
		validator = AcceptAllValidator()
	}
	if scorer == nil {
		scorer = PriceAscendingScorer()
	}
	retry := opts.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryOptions()
	}
	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = MaxConcurrency
	}
	passengers := opts.Passengers
	if passengers.Total() == 0 {
		passengers = PassengerCount{Adults: 1}
	}
	cabin := opts.Cabin
	if cabin == "" {
		cabin = Economy
	}
	stops := opts.Stops
	if stops == "" {
		stops = AnyStops
	}

	return &Coordinator{
		provider:          provider,
		validator:         validator,
		scorer:            scorer,
		results:           newResultCache(backend, opts.CacheTTL, log),
		inflight:          newInflightRegistry(),
		log:               log,
		retry:             retry,
		maxConcurrency:    maxConcurrency,
		prefs:             opts.Preferences,
		passengers:        passengers,
		cabin:             cabin,
		stops:             stops,
		alternateAirports: opts.AlternateAirports,
		legs:              make(map[string]*LegResult),
	}
}

// MultiCityLeg is one hop of a multi-city search request.
type MultiCityLeg struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Date        time.Time `json:"date"`
}

// SearchOneWay starts a new session with a single outbound leg.
func (c *Coordinator) SearchOneWay(ctx context.Context, origin, destination string, date time.Time) uuid.UUID {
	req := LegSearchRequest{LegID: LegOutbound, Origin: origin, Destination: destination, Date: date}
	sess := c.beginSession(ctx, TripOneWay, []LegSearchRequest{req}, nil)
	c.spawn(func() { c.runLeg(sess, req) })
	return sess.id
}

// SearchRoundTrip starts a new session and searches only the outbound leg.
// The return leg is deliberately left idle: provider calls are costly and
// the return search benefits from knowing which outbound flight was chosen,
// so it waits for an explicit SearchReturnLeg.
func (c *Coordinator) SearchRoundTrip(ctx context.Context, origin, destination string, departDate, returnDate time.Time) uuid.UUID {
	outbound := LegSearchRequest{LegID: LegOutbound, Origin: origin, Destination: destination, Date: departDate}
	returnLeg := LegSearchRequest{LegID: LegReturn, Origin: destination, Destination: origin, Date: returnDate}
	sess := c.beginSession(ctx, TripRoundTrip, []LegSearchRequest{outbound}, &returnLeg)
	c.spawn(func() { c.runLeg(sess, outbound) })
	return sess.id
}

// SearchReturnLeg searches the pending return leg of the active round-trip
// session. It runs inside the same session and scope; the outbound result
// stays untouched.
func (c *Coordinator) SearchReturnLeg() error {
	c.mu.Lock()
	sess := c.sess
	if sess == nil {
		c.mu.Unlock()
		return ErrNoActiveSession
	}
	if !c.returnPendingLocked() {
		c.mu.Unlock()
		return ErrReturnNotPending
	}
	req := *sess.returnLeg
	leg := c.legs[LegReturn]
	leg.IsLoading = true
	leg.Err = ""
	c.mu.Unlock()

	c.spawn(func() { c.runLeg(sess, req) })
	return nil
}

// SearchMultiCity starts a new session and searches every leg with at most
// maxConcurrency provider calls in flight. Legs settle independently: one
// leg's failure never cancels its siblings.
func (c *Coordinator) SearchMultiCity(ctx context.Context, legs []MultiCityLeg) uuid.UUID {
	reqs := make([]LegSearchRequest, len(legs))
	for i, leg := range legs {
		reqs[i] = LegSearchRequest{
			LegID:       SegmentLegID(i + 1),
			Origin:      leg.Origin,
			Destination: leg.Destination,
			Date:        leg.Date,
		}
	}
	sess := c.beginSession(ctx, TripMultiCity, reqs, nil)
	c.spawn(func() {
		g := new(errgroup.Group)
		g.SetLimit(c.maxConcurrency)
		for _, req := range reqs {
			req := req
			g.Go(func() error {
				c.runLeg(sess, req)
				return nil
			})
		}
		_ = g.Wait()
	})
	return sess.id
}

// RetryLeg re-searches exactly one leg of the active session. It is a
// narrow, explicit user retry: the rest of the session's state and the
// session's scope stay as they are.
func (c *Coordinator) RetryLeg(legID, origin, destination string, date time.Time) error {
	c.mu.Lock()
	sess := c.sess
	if sess == nil {
		c.mu.Unlock()
		return ErrNoActiveSession
	}
	leg, ok := c.legs[legID]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownLeg
	}
	leg.IsLoading = true
	leg.Err = ""
	leg.Flights = nil
	c.mu.Unlock()

	req := LegSearchRequest{LegID: legID, Origin: origin, Destination: destination, Date: date}
	c.spawn(func() { c.runLeg(sess, req) })
	return nil
}

// ClearResults cancels the active scope, releases every in-flight registry
// entry, and resets all leg state. Cached provider responses stay; the TTL
// alone governs their visibility.
func (c *Coordinator) ClearResults() {
	c.mu.Lock()
	if c.sess != nil {
		c.sess.scope.Cancel()
	}
	c.sess = nil
	c.legs = make(map[string]*LegResult)
	c.legOrder = nil
	c.mu.Unlock()

	c.inflight.releaseAll()
	c.log.Info("search results cleared")
}

// FlushCache drops every memoized provider response.
func (c *Coordinator) FlushCache(ctx context.Context) {
	c.results.clear(ctx)
}

// IsReturnPending reports whether a round-trip session is waiting for its
// return leg: the outbound succeeded and the return leg has seen zero
// activity.
func (c *Coordinator) IsReturnPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.returnPendingLocked()
}

func (c *Coordinator) returnPendingLocked() bool {
	sess := c.sess
	if sess == nil || sess.tripType != TripRoundTrip || sess.returnLeg == nil {
		return false
	}
	outbound, ok := c.legs[LegOutbound]
	if !ok || outbound.State() != LegSuccess {
		return false
	}
	ret, ok := c.legs[LegReturn]
	if !ok {
		return false
	}
	return len(ret.Flights) == 0 && !ret.IsLoading && ret.Err == ""
}

// SessionID returns the active session's id.
func (c *Coordinator) SessionID() (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return uuid.Nil, false
	}
	return c.sess.id, true
}

// Snapshot returns a copy of every leg's current state, in leg order.
func (c *Coordinator) Snapshot() []LegResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LegResult, 0, len(c.legOrder))
	for _, id := range c.legOrder {
		leg, ok := c.legs[id]
		if !ok {
			continue
		}
		cp := *leg
		cp.Flights = append([]ScoredFlight(nil), leg.Flights...)
		out = append(out, cp)
	}
	return out
}

// WaitIdle blocks until every spawned search goroutine has finished. Meant
// for tests and the synchronous MCP surface, not the HTTP path.
func (c *Coordinator) WaitIdle() {
	c.wg.Wait()
}

// beginSession atomically supersedes the previous session: the old scope is
// cancelled and the leg table replaced before any new work is scheduled, so
// no result derived from the old session can ever surface.
func (c *Coordinator) beginSession(parent context.Context, tripType TripType, requests []LegSearchRequest, returnLeg *LegSearchRequest) *session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess != nil {
		c.sess.scope.Cancel()
	}

	sess := &session{
		id:        uuid.New(),
		scope:     newScope(parent),
		tripType:  tripType,
		returnLeg: returnLeg,
	}
	c.sess = sess
	c.legs = make(map[string]*LegResult, len(requests)+1)
	c.legOrder = c.legOrder[:0]

	for _, req := range requests {
		c.legs[req.LegID] = &LegResult{LegID: req.LegID, IsLoading: true}
		c.legOrder = append(c.legOrder, req.LegID)
	}
	if returnLeg != nil {
		c.legs[returnLeg.LegID] = &LegResult{LegID: returnLeg.LegID}
		c.legOrder = append(c.legOrder, returnLeg.LegID)
	}

	c.log.Info("search session started",
		"session", sess.id.String(),
		"trip", string(tripType),
		"legs", len(requests),
	)
	return sess
}

func (c *Coordinator) spawn(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

func (c *Coordinator) keyFor(req LegSearchRequest) SearchKey {
	return SearchKey{
		Origin:      req.Origin,
		Destination: req.Destination,
		Date:        req.Date.Format(time.DateOnly),
		Cabin:       c.cabin,
		Passengers:  c.passengers.Total(),
		Stops:       c.stops,
	}
}

// runLeg is the per-leg pipeline: cache, dedup, retried provider call,
// validation, duration enrichment, scoring, cache store, publish.
func (c *Coordinator) runLeg(sess *session, req LegSearchRequest) {
	scope := sess.scope
	key := c.keyFor(req)
	log := c.log.WithFields(map[string]interface{}{
		"session": sess.id.String(),
		"leg":     req.LegID,
		"key":     key.String(),
	})

	if scope.Cancelled() {
		c.publish(sess, req.LegID, nil, scope.Err())
		return
	}

	if flights, ok := c.results.get(scope.Context(), key); ok {
		log.Debug("serving leg from cache", "flights", len(flights))
		c.publish(sess, req.LegID, flights, nil)
		return
	}

	flights, err := c.fetchDeduped(sess, key, req, log)
	c.publish(sess, req.LegID, flights, err)
}

// fetchDeduped collapses concurrent identical searches: the first caller per
// key owns the provider call, everyone else awaits the shared pending
// result. If the shared result settles with a cancellation that is not our
// own (the owner's session was superseded mid-flight), a live session
// re-registers and issues its own call.
func (c *Coordinator) fetchDeduped(sess *session, key SearchKey, req LegSearchRequest, log *logger.Logger) ([]ScoredFlight, error) {
	scope := sess.scope
	for {
		pending, owner := c.inflight.register(key)
		if owner {
			return c.executeOwned(scope, key, req, pending, log)
		}

		log.Debug("joining in-flight search")
		flights, err := pending.wait(scope.Context())
		if err != nil && Classify(err) == KindCancelled && scope.Err() == nil {
			continue
		}
		return flights, err
	}
}

func (c *Coordinator) executeOwned(scope *Scope, key SearchKey, req LegSearchRequest, pending *pendingResult, log *logger.Logger) (flights []ScoredFlight, err error) {
	// Settle and release exactly once, success or failure, so a failed
	// call never blocks future searches of the same key.
	defer func() {
		pending.settle(flights, err)
		c.inflight.release(key)
	}()
	flights, err = c.executeSearch(scope.Context(), key, req, log)
	return flights, err
}

func (c *Coordinator) executeSearch(ctx context.Context, key SearchKey, req LegSearchRequest, log *logger.Logger) ([]ScoredFlight, error) {
	preq := ProviderRequest{
		Origin:            req.Origin,
		Destination:       req.Destination,
		Date:              key.Date,
		Passengers:        c.passengers,
		Cabin:             c.cabin,
		Stops:             c.stops,
		AlternateAirports: c.alternateAirports,
	}

	raw, err := RetryWithBackoff(ctx, c.retry, func(ctx context.Context) ([]RawFlight, error) {
		return c.provider.Search(ctx, preq)
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := c.validator.Validate(raw)
	if len(report.Invalid) > 0 {
		log.Warn("provider returned invalid flights", "invalid", len(report.Invalid))
	}
	for _, w := range report.Warnings {
		log.Warn("flight validation warning", "warning", w)
	}

	enriched := make([]EnrichedFlight, 0, len(report.Valid))
	for _, f := range report.Valid {
		ef := EnrichedFlight{RawFlight: f}
		if minutes, ok := duration.TotalDuration(f.Segments, f.Layovers, req.Date); ok {
			m := minutes
			ef.TotalMinutes = &m
		}
		enriched = append(enriched, ef)
	}

	scored := c.scorer.Score(enriched, c.prefs, c.passengers, c.cabin)
	c.results.set(ctx, key, scored)
	return scored, nil
}

// publish writes a leg outcome. It re-checks session identity under the
// lock: results from a superseded session are dropped, and cancellation is
// discarded silently rather than surfaced as an error.
func (c *Coordinator) publish(sess *session, legID string, flights []ScoredFlight, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess != sess {
		return
	}
	leg, ok := c.legs[legID]
	if !ok {
		return
	}

	leg.IsLoading = false
	if err != nil {
		kind := Classify(err)
		if kind == KindCancelled {
			return
		}
		leg.Flights = nil
		leg.Err = UserMessage(err)
		c.log.Error(err, "leg search failed", "leg", legID, "kind", kind.String())
		return
	}

	leg.Err = ""
	leg.Flights = flights
	c.log.Info("leg search completed", "leg", legID, "flights", len(flights))
}
