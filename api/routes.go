package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmorales/wayfarer/pkg/buildinfo"
	"github.com/kmorales/wayfarer/pkg/middleware"
)

// RegisterRoutes registers all API routes. history may be nil, in which case
// the history endpoint is not exposed.
func RegisterRoutes(router *gin.Engine, searcher Searcher, history HistoryReader) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": buildinfo.Version})
	})

	v1 := router.Group("/api/v1")
	{
		// Search sessions
		v1.POST("/search/oneway", CreateOneWaySearch(searcher))
		v1.POST("/search/roundtrip", CreateRoundTripSearch(searcher))
		v1.POST("/search/return", SearchReturnLeg(searcher))
		v1.POST("/search/multicity", CreateMultiCitySearch(searcher))
		v1.POST("/search/retry", RetryLeg(searcher))
		v1.GET("/search", GetSearchState(searcher))
		v1.DELETE("/search", ClearSearch(searcher))

		// Live per-leg state stream
		v1.GET("/search/events", SearchEvents(searcher))

		// Airport metadata
		v1.GET("/airports/:code", GetAirport())

		if history != nil {
			v1.GET("/history", ListRecentSearches(history))
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/cache/flush", FlushCache(searcher))
		}
	}
}
