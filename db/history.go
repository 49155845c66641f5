package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier abstracts the subset of pgxpool.Pool used by HistoryStore.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LegSearchRecord is one completed (or failed) leg search.
type LegSearchRecord struct {
	ID            int       `json:"id"`
	SessionID     string    `json:"sessionId"`
	LegID         string    `json:"legId"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureDate time.Time `json:"departureDate"`
	TripType      string    `json:"tripType"`
	CabinClass    string    `json:"cabinClass"`
	Stops         string    `json:"stops"`
	Passengers    int       `json:"passengers"`
	FlightCount   int       `json:"flightCount"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"errorMessage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HistoryStore records leg searches for later analysis.
type HistoryStore struct {
	q Querier
}

// NewHistoryStore constructs a HistoryStore backed by the given pool.
func NewHistoryStore(pool *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{q: pool}
}

// NewHistoryStoreWithQuerier constructs a HistoryStore with a custom Querier (for tests).
func NewHistoryStoreWithQuerier(q Querier) *HistoryStore {
	return &HistoryStore{q: q}
}

// RecordLegSearch inserts one leg search outcome.
func (s *HistoryStore) RecordLegSearch(ctx context.Context, rec LegSearchRecord) error {
	const q = `
		INSERT INTO search_history
			(session_id, leg_id, origin, destination, departure_date,
			 trip_type, cabin_class, stops, passengers, flight_count,
			 status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := s.q.Exec(ctx, q,
		rec.SessionID, rec.LegID, rec.Origin, rec.Destination, rec.DepartureDate,
		rec.TripType, rec.CabinClass, rec.Stops, rec.Passengers, rec.FlightCount,
		rec.Status, rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("recording leg search %s %s-%s: %w", rec.LegID, rec.Origin, rec.Destination, err)
	}
	return nil
}

// RecentSearches returns the newest records, most recent first.
func (s *HistoryStore) RecentSearches(ctx context.Context, limit int) ([]LegSearchRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
		SELECT id, session_id, leg_id, origin, destination, departure_date,
		       trip_type, cabin_class, stops, passengers, flight_count,
		       status, COALESCE(error_message, ''), created_at
		FROM search_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.q.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent searches: %w", err)
	}
	defer rows.Close()

	var out []LegSearchRecord
	for rows.Next() {
		var rec LegSearchRecord
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.LegID, &rec.Origin, &rec.Destination,
			&rec.DepartureDate, &rec.TripType, &rec.CabinClass, &rec.Stops,
			&rec.Passengers, &rec.FlightCount, &rec.Status, &rec.ErrorMessage,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning search history row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search history rows: %w", err)
	}
	return out, nil
}

// PurgeOlderThan deletes records older than the retention window and reports
// how many were removed.
func (s *HistoryStore) PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	const q = `DELETE FROM search_history WHERE created_at < NOW() - make_interval(secs => $1)`

	tag, err := s.q.Exec(ctx, q, retention.Seconds())
	if err != nil {
		return 0, fmt.Errorf("purging search history: %w", err)
	}
	return tag.RowsAffected(), nil
}
