// Package provider implements the HTTP client for the external flight-data
// service.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/text/currency"

	"github.com/kmorales/wayfarer/pkg/logger"
	"github.com/kmorales/wayfarer/search"
)

// Config holds the connection settings for the flight-data service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the provider's search endpoint. Retrying is owned by the
// search layer, which knows which failures are worth another attempt, so the
// transport itself never retries.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
	log     *logger.Logger
}

// New builds a provider client.
func New(cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.CheckRetry = noRetryPolicy()
	client.Logger = nil
	client.HTTPClient.Timeout = timeout

	return &Client{
		http:    client,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		log:     log,
	}
}

// noRetryPolicy hands every response straight back to the caller. The default
// policy turns retryable statuses into opaque "giving up" errors, which would
// hide the status code the search layer classifies on.
func noRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		return false, err
	}
}

type passengersPayload struct {
	Adults      int `json:"adults"`
	Children    int `json:"children"`
	InfantsLap  int `json:"infantsLap"`
	InfantsSeat int `json:"infantsSeat"`
}

// searchPayload is the provider's request shape. Every leg goes out as an
// independent one-way search, so tripType is fixed and returnDate is always
// null.
type searchPayload struct {
	Origin            string            `json:"origin"`
	Destination       string            `json:"destination"`
	DepartureDate     string            `json:"departureDate"`
	ReturnDate        *string           `json:"returnDate"`
	Passengers        passengersPayload `json:"passengers"`
	TripType          string            `json:"tripType"`
	CabinClass        string            `json:"cabinClass"`
	AlternateAirports bool              `json:"alternateAirports"`
	StopsFilter       string            `json:"stopsFilter"`
}

type searchResponse struct {
	Flights []search.RawFlight `json:"flights"`
	Error   string             `json:"error,omitempty"`
}

// Search posts one directional query and returns the provider's raw flights.
func (c *Client) Search(ctx context.Context, req search.ProviderRequest) ([]search.RawFlight, error) {
	payload := searchPayload{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.Date,
		Passengers: passengersPayload{
			Adults:      req.Passengers.Adults,
			Children:    req.Passengers.Children,
			InfantsLap:  req.Passengers.InfantsLap,
			InfantsSeat: req.Passengers.InfantsSeat,
		},
		TripType:          "oneway",
		CabinClass:        string(req.Cabin),
		AlternateAirports: req.AlternateAirports,
		StopsFilter:       string(req.Stops),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("provider search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return nil, &search.ProviderStatusError{StatusCode: res.StatusCode, Status: res.Status}
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if sr.Error != "" {
		return nil, fmt.Errorf("provider rejected search: %s", sr.Error)
	}

	c.normalizeCurrencies(sr.Flights)
	return sr.Flights, nil
}

// normalizeCurrencies validates each flight's currency code, defaulting to
// USD when the provider sends something unparseable.
func (c *Client) normalizeCurrencies(flights []search.RawFlight) {
	for i := range flights {
		cur, err := currency.ParseISO(flights[i].Currency)
		if err != nil {
			c.log.Warn("invalid currency from provider, defaulting to USD",
				"flight", flights[i].ID,
				"currency", flights[i].Currency,
			)
			cur = currency.USD
		}
		flights[i].Currency = cur.String()
	}
}
