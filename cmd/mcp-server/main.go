package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kmorales/wayfarer/config"
	"github.com/kmorales/wayfarer/iata"
	"github.com/kmorales/wayfarer/pkg/buildinfo"
	"github.com/kmorales/wayfarer/pkg/cache"
	"github.com/kmorales/wayfarer/pkg/logger"
	"github.com/kmorales/wayfarer/provider"
	"github.com/kmorales/wayfarer/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// MCP talks over stdout, so logs must stay off it.
	log := logger.Nop()

	providerClient := provider.New(provider.Config{
		BaseURL: cfg.ProviderConfig.BaseURL,
		APIKey:  cfg.ProviderConfig.APIKey,
		Timeout: cfg.ProviderConfig.Timeout,
	}, log)

	coordinator := search.NewCoordinator(providerClient, nil, nil, cache.NewMemoryCache(), log, search.Options{
		CacheTTL:       cfg.SearchConfig.CacheTTL,
		MaxConcurrency: cfg.SearchConfig.MaxConcurrency,
	})

	s := server.NewMCPServer(
		"wayfarer-mcp",
		buildinfo.Version,
		server.WithLogging(),
	)

	searchTool := mcp.NewTool("search_flights",
		mcp.WithDescription("Search for flights: one-way, round-trip, or multi-city"),
		mcp.WithString("origin",
			mcp.Description("Origin airport code (e.g., SFO, LHR)"),
		),
		mcp.WithString("destination",
			mcp.Description("Destination airport code (e.g., JFK, CDG)"),
		),
		mcp.WithString("date",
			mcp.Description("Departure date (YYYY-MM-DD)"),
		),
		mcp.WithString("return_date",
			mcp.Description("Return date (YYYY-MM-DD). Makes the search a round trip; both legs are searched."),
		),
		mcp.WithString("segments",
			mcp.Description("JSON array of segments for multi-city trips. Each segment has 'origin', 'destination', 'date'. Example: '[{\"origin\":\"SFO\",\"destination\":\"JFK\",\"date\":\"2026-09-01\"}]'"),
		),
	)

	s.AddTool(searchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("Invalid arguments format"), nil
		}

		origin, _ := argsMap["origin"].(string)
		destination, _ := argsMap["destination"].(string)
		dateStr, _ := argsMap["date"].(string)
		returnDateStr, _ := argsMap["return_date"].(string)
		segmentsStr, _ := argsMap["segments"].(string)

		if segmentsStr != "" {
			return runMultiCity(coordinator, segmentsStr)
		}

		if origin == "" || destination == "" || dateStr == "" {
			return mcp.NewToolResultError("origin, destination, and date are required"), nil
		}
		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid date format: %v", err)), nil
		}

		origin = strings.ToUpper(origin)
		destination = strings.ToUpper(destination)

		if returnDateStr != "" {
			returnDate, err := time.Parse(time.DateOnly, returnDateStr)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid return_date format: %v", err)), nil
			}
			coordinator.SearchRoundTrip(context.Background(), origin, destination, date, returnDate)
			coordinator.WaitIdle()
			// An MCP caller gets no second round trip, so the return leg is
			// searched immediately instead of staying pending.
			if err := coordinator.SearchReturnLeg(); err == nil {
				coordinator.WaitIdle()
			}
		} else {
			coordinator.SearchOneWay(context.Background(), origin, destination, date)
			coordinator.WaitIdle()
		}

		return formatLegs(coordinator.Snapshot())
	})

	airportTool := mcp.NewTool("lookup_airport",
		mcp.WithDescription("Look up city and timezone for an IATA airport code"),
		mcp.WithString("code",
			mcp.Description("IATA airport code (e.g., LAX)"),
		),
	)

	s.AddTool(airportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("Invalid arguments format"), nil
		}
		code, _ := argsMap["code"].(string)
		code = strings.ToUpper(code)

		loc, ok := iata.Lookup(code)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown airport code: %s", code)), nil
		}

		jsonBytes, err := json.MarshalIndent(map[string]string{
			"code":     code,
			"city":     loc.City,
			"timezone": loc.Tz,
		}, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error marshaling response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}

func runMultiCity(coordinator *search.Coordinator, segmentsStr string) (*mcp.CallToolResult, error) {
	var segments []struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
		Date        string `json:"date"`
	}
	if err := json.Unmarshal([]byte(segmentsStr), &segments); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid segments JSON: %v", err)), nil
	}
	if len(segments) == 0 {
		return mcp.NewToolResultError("segments must not be empty"), nil
	}

	legs := make([]search.MultiCityLeg, 0, len(segments))
	for _, seg := range segments {
		date, err := time.Parse(time.DateOnly, seg.Date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid date in segment: %v", err)), nil
		}
		legs = append(legs, search.MultiCityLeg{
			Origin:      strings.ToUpper(seg.Origin),
			Destination: strings.ToUpper(seg.Destination),
			Date:        date,
		})
	}

	coordinator.SearchMultiCity(context.Background(), legs)
	coordinator.WaitIdle()
	return formatLegs(coordinator.Snapshot())
}

type formattedLeg struct {
	LegID   string                `json:"leg_id"`
	State   string                `json:"state"`
	Error   string                `json:"error,omitempty"`
	Flights []search.ScoredFlight `json:"flights,omitempty"`
}

func formatLegs(legs []search.LegResult) (*mcp.CallToolResult, error) {
	out := make([]formattedLeg, 0, len(legs))
	for _, leg := range legs {
		out = append(out, formattedLeg{
			LegID:   leg.LegID,
			State:   string(leg.State()),
			Error:   leg.Err,
			Flights: leg.Flights,
		})
	}

	jsonBytes, err := json.MarshalIndent(map[string]interface{}{"legs": out}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error marshaling response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
