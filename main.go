package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kmorales/wayfarer/api"
	"github.com/kmorales/wayfarer/config"
	"github.com/kmorales/wayfarer/db"
	"github.com/kmorales/wayfarer/pkg/buildinfo"
	"github.com/kmorales/wayfarer/pkg/cache"
	"github.com/kmorales/wayfarer/pkg/logger"
	"github.com/kmorales/wayfarer/provider"
	"github.com/kmorales/wayfarer/search"
	"github.com/kmorales/wayfarer/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Config{Level: "info", Format: "text"})
		logger.Fatal(err, "Failed to load configuration")
	}

	logger.Init(logger.Config{
		Level:  cfg.LoggingConfig.Level,
		Format: cfg.LoggingConfig.Format,
	})
	log := logger.New(logger.Config{
		Level:  cfg.LoggingConfig.Level,
		Format: cfg.LoggingConfig.Format,
	})
	log.Info("starting wayfarer",
		"version", buildinfo.Version,
		"environment", cfg.Environment,
	)

	// Result cache: Redis when configured, in-process memory otherwise.
	var backend cache.Cache
	var pruner worker.Pruner
	if cfg.RedisConfig.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisConfig.Host, cfg.RedisConfig.Port),
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal(err, "Failed to connect to Redis")
		}
		backend = cache.NewRedisCache(client, "wayfarer")
		log.Info("using Redis result cache", "addr", client.Options().Addr)
	} else {
		mem := cache.NewMemoryCache()
		backend = mem
		pruner = mem
		log.Info("using in-process result cache")
	}

	// Search history is optional; the app runs fine without Postgres.
	var historyStore *db.HistoryStore
	var historyReader api.HistoryReader
	if cfg.HistoryEnabled {
		pg, err := db.NewPostgresDB(context.Background(), cfg.PostgresConfig)
		if err != nil {
			log.Warn("search history disabled, PostgreSQL unavailable", "error", err)
		} else {
			defer pg.Close()
			if cfg.InitSchema {
				if err := pg.InitSchema(context.Background()); err != nil {
					log.Fatal(err, "Failed to initialize PostgreSQL schema")
				}
			}
			historyStore = db.NewHistoryStore(pg.Pool())
			historyReader = historyStore
		}
	}

	providerClient := provider.New(provider.Config{
		BaseURL: cfg.ProviderConfig.BaseURL,
		APIKey:  cfg.ProviderConfig.APIKey,
		Timeout: cfg.ProviderConfig.Timeout,
	}, log)

	coordinator := search.NewCoordinator(providerClient, nil, nil, backend, log, search.Options{
		Retry: search.RetryOptions{
			MaxAttempts:  cfg.SearchConfig.RetryMaxAttempts,
			InitialDelay: cfg.SearchConfig.RetryInitialDelay,
			MaxDelay:     cfg.SearchConfig.RetryMaxDelay,
			ShouldRetry:  search.ShouldRetry,
		},
		MaxConcurrency:    cfg.SearchConfig.MaxConcurrency,
		CacheTTL:          cfg.SearchConfig.CacheTTL,
		AlternateAirports: cfg.SearchConfig.AlternateAirports,
	})

	var searcher api.Searcher = coordinator
	if historyStore != nil {
		searcher = &recordingSearcher{Coordinator: coordinator, store: historyStore, log: log}
	}

	// Background housekeeping.
	if cfg.JanitorConfig.Enabled && (pruner != nil || historyStore != nil) {
		var purger worker.HistoryPurger
		if historyStore != nil {
			purger = historyStore
		}
		janitor := worker.NewJanitor(pruner, purger, cfg.JanitorConfig.HistoryRetention, log)
		if err := janitor.Start(cfg.JanitorConfig.PruneSchedule); err != nil {
			log.Fatal(err, "Failed to start janitor")
		}
		defer janitor.Stop()
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.RegisterRoutes(router, searcher, historyReader)

	srv := &http.Server{
		Addr:    cfg.HTTPBindAddr + ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	coordinator.ClearResults()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}

	log.Info("server exited")
}

// recordingSearcher wraps the coordinator and writes one history row per leg
// once its search settles. Recording is best effort and never blocks or
// fails a search.
type recordingSearcher struct {
	*search.Coordinator
	store *db.HistoryStore
	log   *logger.Logger

	mu        sync.Mutex
	returnLeg legRoute // pending return leg of the active round trip
	sessionID uuid.UUID
}

func (r *recordingSearcher) SearchOneWay(ctx context.Context, origin, destination string, date time.Time) uuid.UUID {
	id := r.Coordinator.SearchOneWay(ctx, origin, destination, date)
	r.recordAfter(id, string(search.TripOneWay), legRoute{search.LegOutbound, origin, destination, date})
	return id
}

func (r *recordingSearcher) SearchRoundTrip(ctx context.Context, origin, destination string, departDate, returnDate time.Time) uuid.UUID {
	id := r.Coordinator.SearchRoundTrip(ctx, origin, destination, departDate, returnDate)
	r.mu.Lock()
	r.sessionID = id
	r.returnLeg = legRoute{search.LegReturn, destination, origin, returnDate}
	r.mu.Unlock()
	r.recordAfter(id, string(search.TripRoundTrip), legRoute{search.LegOutbound, origin, destination, departDate})
	return id
}

func (r *recordingSearcher) SearchReturnLeg() error {
	if err := r.Coordinator.SearchReturnLeg(); err != nil {
		return err
	}
	r.mu.Lock()
	id, route := r.sessionID, r.returnLeg
	r.mu.Unlock()
	r.recordAfter(id, string(search.TripRoundTrip), route)
	return nil
}

func (r *recordingSearcher) SearchMultiCity(ctx context.Context, legs []search.MultiCityLeg) uuid.UUID {
	id := r.Coordinator.SearchMultiCity(ctx, legs)
	routes := make([]legRoute, len(legs))
	for i, leg := range legs {
		routes[i] = legRoute{search.SegmentLegID(i + 1), leg.Origin, leg.Destination, leg.Date}
	}
	r.recordAfter(id, string(search.TripMultiCity), routes...)
	return id
}

type legRoute struct {
	legID       string
	origin      string
	destination string
	date        time.Time
}

func (r *recordingSearcher) recordAfter(sessionID uuid.UUID, tripType string, routes ...legRoute) {
	go func() {
		r.WaitIdle()

		// A newer session may have superseded this one while we waited;
		// its legs are not ours to record.
		if current, ok := r.SessionID(); !ok || current != sessionID {
			return
		}

		byLeg := make(map[string]search.LegResult)
		for _, leg := range r.Snapshot() {
			byLeg[leg.LegID] = leg
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, route := range routes {
			leg, ok := byLeg[route.legID]
			if !ok {
				continue
			}
			rec := db.LegSearchRecord{
				SessionID:     sessionID.String(),
				LegID:         route.legID,
				Origin:        route.origin,
				Destination:   route.destination,
				DepartureDate: route.date,
				TripType:      tripType,
				CabinClass:    string(search.Economy),
				Stops:         string(search.AnyStops),
				Passengers:    1,
				FlightCount:   len(leg.Flights),
				Status:        string(leg.State()),
				ErrorMessage:  leg.Err,
			}
			if err := r.store.RecordLegSearch(ctx, rec); err != nil {
				r.log.Warn("failed to record search history", "leg", route.legID, "error", err)
			}
		}
	}()
}
