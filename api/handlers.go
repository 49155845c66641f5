// Package api exposes the search coordinator over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kmorales/wayfarer/db"
	"github.com/kmorales/wayfarer/iata"
	"github.com/kmorales/wayfarer/search"
)

// Searcher is the subset of the search coordinator the HTTP surface drives.
type Searcher interface {
	SearchOneWay(ctx context.Context, origin, destination string, date time.Time) uuid.UUID
	SearchRoundTrip(ctx context.Context, origin, destination string, departDate, returnDate time.Time) uuid.UUID
	SearchReturnLeg() error
	SearchMultiCity(ctx context.Context, legs []search.MultiCityLeg) uuid.UUID
	RetryLeg(legID, origin, destination string, date time.Time) error
	ClearResults()
	FlushCache(ctx context.Context)
	IsReturnPending() bool
	SessionID() (uuid.UUID, bool)
	Snapshot() []search.LegResult
}

// HistoryReader lists past leg searches.
type HistoryReader interface {
	RecentSearches(ctx context.Context, limit int) ([]db.LegSearchRecord, error)
}

// OneWaySearchRequest represents a one-way search request
type OneWaySearchRequest struct {
	Origin        string `json:"origin" binding:"required,len=3"`
	Destination   string `json:"destination" binding:"required,len=3"`
	DepartureDate string `json:"departure_date" binding:"required"`
}

// RoundTripSearchRequest represents a round-trip search request
type RoundTripSearchRequest struct {
	Origin        string `json:"origin" binding:"required,len=3"`
	Destination   string `json:"destination" binding:"required,len=3"`
	DepartureDate string `json:"departure_date" binding:"required"`
	ReturnDate    string `json:"return_date" binding:"required"`
}

// MultiCityLegRequest is one hop of a multi-city search request
type MultiCityLegRequest struct {
	Origin      string `json:"origin" binding:"required,len=3"`
	Destination string `json:"destination" binding:"required,len=3"`
	Date        string `json:"date" binding:"required"`
}

// MultiCitySearchRequest represents a multi-city search request
type MultiCitySearchRequest struct {
	Legs []MultiCityLegRequest `json:"legs" binding:"required,min=1,max=6,dive"`
}

// RetryLegRequest re-searches a single leg of the active session
type RetryLegRequest struct {
	LegID         string `json:"leg_id" binding:"required"`
	Origin        string `json:"origin" binding:"required,len=3"`
	Destination   string `json:"destination" binding:"required,len=3"`
	DepartureDate string `json:"departure_date" binding:"required"`
}

func parseDate(c *gin.Context, value string) (time.Time, bool) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD: " + value})
		return time.Time{}, false
	}
	return date, true
}

// Search sessions outlive the HTTP request that started them, so handlers
// deliberately detach from the request context. Cancellation happens through
// the coordinator (a new search or an explicit clear), not through the
// client hanging up.

// CreateOneWaySearch returns a handler that starts a one-way search session
func CreateOneWaySearch(s Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OneWaySearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date, ok := parseDate(c, req.DepartureDate)
		if !ok {
			return
		}

		sessionID := s.SearchOneWay(context.Background(), req.Origin, req.Destination, date)
		c.JSON(http.StatusAccepted, gin.H{"session_id": sessionID.String(), "legs": s.Snapshot()})
	}
}

// CreateRoundTripSearch returns a handler that starts a round-trip session.
// Only the outbound leg is searched; the return leg stays pending until the
// client asks for it.
func CreateRoundTripSearch(s Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RoundTripSearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		departDate, ok := parseDate(c, req.DepartureDate)
		if !ok {
			return
		}
		returnDate, ok := parseDate(c, req.ReturnDate)
		if !ok {
			return
		}
		if returnDate.Before(departDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "return date is before departure date"})
			return
		}

		sessionID := s.SearchRoundTrip(context.Background(), req.Origin, req.Destination, departDate, returnDate)
		c.JSON(http.StatusAccepted, gin.H{"session_id": sessionID.String(), "legs": s.Snapshot()})
	}
}

// SearchReturnLeg returns a handler that searches the pending return leg
func SearchReturnLeg(s Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.SearchReturnLeg(); err != nil {
			status := http.StatusConflict
			if errors.Is(err, search.ErrNoActiveSession) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"legs": s.Snapshot()})
	}
}

// CreateMultiCitySearch returns a handler that starts a multi-city session
func CreateMultiCitySearch(s Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MultiCitySearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		legs := make([]search.MultiCityLeg, 0, len(req.Legs))
		for _, leg := range req.Legs {
			date, ok := parseDate(c, leg.Date)
			if !ok {
				return
			}
			legs = append(legs, search.MultiCityLeg{Origin: leg.Origin, Destination: leg.Destination, Date: date})
		}

		sessionID := s.SearchMultiCity(context.Background(), legs)
		c.JSON(http.StatusAccepted, gin.H{"session_id": sessionID.String(), "legs": s.Snapshot()})
	}
}

// RetryLeg returns a handler that re-searches one leg of the active session
func RetryLeg(s Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RetryLegRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date, ok := parseDate(c, req.DepartureDate)
		if !ok {
			return
		}

		if err := s.RetryLeg(req.LegID, req.Origin, req.Destination, date); err != nil {
			status := http.StatusConflict
			if errors.Is(err, search.ErrUnknownLeg) || errors.Is(err, search.ErrNoActiveSession) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"legs": s.Snapshot()})
	}
}

// GetSearchState returns a handler that reports the active session's legs
func GetSearchState(s Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"is_return_pending": s.IsReturnPending(),
			"legs":              s.Snapshot(),
		}
		if id, ok := s.SessionID(); ok {
			resp["session_id"] = id.String()
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ClearSearch returns a handler that cancels the active session and resets
// all leg state
func ClearSearch(s Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.ClearResults()
		c.Status(http.StatusNoContent)
	}
}

// FlushCache returns a handler that drops all memoized provider responses
func FlushCache(s Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.FlushCache(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
}

// GetAirport returns a handler for airport metadata lookups
func GetAirport() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(c.Param("code"))
		loc, ok := iata.Lookup(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown airport code: " + code})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": code, "city": loc.City, "timezone": loc.Tz})
	}
}

// ListRecentSearches returns a handler for the search history
func ListRecentSearches(h HistoryReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		records, err := h.RecentSearches(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query search history: " + err.Error()})
			return
		}
		if records == nil {
			records = []db.LegSearchRecord{}
		}
		c.JSON(http.StatusOK, records)
	}
}
