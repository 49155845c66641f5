package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorales/wayfarer/db"
)

// ---- mock Querier ----

type mockQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.queryRowFn(ctx, sql, args...)
}
func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.queryFn(ctx, sql, args...)
}
func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.execFn(ctx, sql, args...)
}

// ---- mock pgx.Rows ----

type fakeRows struct {
	rows    [][]any
	idx     int
	rowErr  error
	scanErr error
}

func (f *fakeRows) Next() bool                                   { f.idx++; return f.idx <= len(f.rows) }
func (f *fakeRows) Err() error                                   { return f.rowErr }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.rows[f.idx-1]
	for i, d := range dest {
		if i >= len(row) {
			break
		}
		switch v := d.(type) {
		case *int:
			*v = row[i].(int)
		case *string:
			*v = row[i].(string)
		case *time.Time:
			*v = row[i].(time.Time)
		}
	}
	return nil
}

func sampleRecord() db.LegSearchRecord {
	return db.LegSearchRecord{
		SessionID:     "0b6a7f2e-0000-0000-0000-000000000001",
		LegID:         "outbound",
		Origin:        "LAX",
		Destination:   "JFK",
		DepartureDate: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		TripType:      "oneway",
		CabinClass:    "economy",
		Stops:         "any",
		Passengers:    2,
		FlightCount:   14,
		Status:        "success",
	}
}

// ---- RecordLegSearch ----

func TestRecordLegSearch_Success(t *testing.T) {
	var capturedArgs []any
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
			capturedArgs = args
			return pgconn.CommandTag{}, nil
		},
	}

	store := db.NewHistoryStoreWithQuerier(q)
	require.NoError(t, store.RecordLegSearch(context.Background(), sampleRecord()))

	require.Len(t, capturedArgs, 12)
	assert.Equal(t, "outbound", capturedArgs[1])
	assert.Equal(t, "LAX", capturedArgs[2])
	assert.Equal(t, "JFK", capturedArgs[3])
	assert.Equal(t, "success", capturedArgs[10])
}

func TestRecordLegSearch_DBError(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("db error")
		},
	}

	store := db.NewHistoryStoreWithQuerier(q)
	err := store.RecordLegSearch(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recording leg search")
}

// ---- RecentSearches ----

func TestRecentSearches_Found(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	depart := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	rows := &fakeRows{
		rows: [][]any{{
			1, "0b6a7f2e-0000-0000-0000-000000000001", "outbound", "LAX", "JFK",
			depart, "oneway", "economy", "any", 2, 14, "success", "", now,
		}},
	}

	var capturedLimit any
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
			capturedLimit = args[0]
			return rows, nil
		},
	}

	store := db.NewHistoryStoreWithQuerier(q)
	got, err := store.RecentSearches(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10, capturedLimit)
	assert.Equal(t, "LAX", got[0].Origin)
	assert.Equal(t, 14, got[0].FlightCount)
	assert.Equal(t, depart, got[0].DepartureDate)
}

func TestRecentSearches_DefaultLimit(t *testing.T) {
	var capturedLimit any
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
			capturedLimit = args[0]
			return &fakeRows{}, nil
		},
	}

	store := db.NewHistoryStoreWithQuerier(q)
	got, err := store.RecentSearches(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 50, capturedLimit)
}

func TestRecentSearches_QueryError(t *testing.T) {
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
			return nil, fmt.Errorf("query failed")
		},
	}

	store := db.NewHistoryStoreWithQuerier(q)
	_, err := store.RecentSearches(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying recent searches")
}

func TestRecentSearches_ScanError(t *testing.T) {
	rows := &fakeRows{
		rows:    [][]any{{1}},
		scanErr: fmt.Errorf("scan failed"),
	}
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	store := db.NewHistoryStoreWithQuerier(q)
	_, err := store.RecentSearches(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning")
}

func TestRecentSearches_RowsErr(t *testing.T) {
	rows := &fakeRows{rowErr: fmt.Errorf("rows iteration error")}
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	store := db.NewHistoryStoreWithQuerier(q)
	_, err := store.RecentSearches(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterating")
}

// ---- PurgeOlderThan ----

func TestPurgeOlderThan(t *testing.T) {
	var capturedArgs []any
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
			capturedArgs = args
			return pgconn.NewCommandTag("DELETE 7"), nil
		},
	}

	store := db.NewHistoryStoreWithQuerier(q)
	removed, err := store.PurgeOlderThan(context.Background(), 720*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 7, removed)
	require.Len(t, capturedArgs, 1)
	assert.Equal(t, (720 * time.Hour).Seconds(), capturedArgs[0])
}

func TestPurgeOlderThan_DBError(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("db error")
		},
	}

	store := db.NewHistoryStoreWithQuerier(q)
	_, err := store.PurgeOlderThan(context.Background(), time.Hour)
	require.Error(t, err)
}
