package search

import (
	"context"
	"sort"
)

// ProviderRequest is one directional provider query. Every leg, including
// both halves of a round trip, goes out as an independent one-way search.
type ProviderRequest struct {
	Origin            string
	Destination       string
	Date              string // YYYY-MM-DD
	Passengers        PassengerCount
	Cabin             CabinClass
	Stops             StopsFilter
	AlternateAirports bool
}

// Provider is the network boundary to the external flight-data service.
type Provider interface {
	Search(ctx context.Context, req ProviderRequest) ([]RawFlight, error)
}

// ValidationReport separates usable provider results from rejects.
type ValidationReport struct {
	Valid    []RawFlight
	Invalid  []RawFlight
	Warnings []string
}

// Validator screens raw provider results. The coordinator consumes only
// Valid; Invalid and Warnings are logged, not acted on.
type Validator interface {
	Validate(flights []RawFlight) ValidationReport
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(flights []RawFlight) ValidationReport

func (f ValidatorFunc) Validate(flights []RawFlight) ValidationReport { return f(flights) }

// Scorer ranks duration-enriched flights. Ranking policy is owned by the
// caller; the coordinator only sequences the call.
type Scorer interface {
	Score(flights []EnrichedFlight, prefs Preferences, passengers PassengerCount, cabin CabinClass) []ScoredFlight
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(flights []EnrichedFlight, prefs Preferences, passengers PassengerCount, cabin CabinClass) []ScoredFlight

func (f ScorerFunc) Score(flights []EnrichedFlight, prefs Preferences, passengers PassengerCount, cabin CabinClass) []ScoredFlight {
	return f(flights, prefs, passengers, cabin)
}

// AcceptAllValidator passes every flight through. The app wires its real
// validation upstream of the coordinator.
func AcceptAllValidator() Validator {
	return ValidatorFunc(func(flights []RawFlight) ValidationReport {
		return ValidationReport{Valid: flights}
	})
}

// PriceAscendingScorer is the minimal default ranking: cheapest first, score
// inversely proportional to price.
func PriceAscendingScorer() Scorer {
	return ScorerFunc(func(flights []EnrichedFlight, _ Preferences, _ PassengerCount, _ CabinClass) []ScoredFlight {
		out := make([]ScoredFlight, 0, len(flights))
		for _, f := range flights {
			score := 0.0
			if f.Price > 0 {
				score = 1000 / f.Price
			}
			out = append(out, ScoredFlight{EnrichedFlight: f, Score: score})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
		return out
	})
}
