package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Provider identifies the ride-hailing service an option came from
type Provider string

const (
	ProviderUber Provider = "Uber"
	ProviderLyft Provider = "Lyft"
)

// Trip holds the pickup and dropoff coordinates of a requested ride
type Trip struct {
	PickupLat  float64 `json:"pickup_lat"`
	PickupLng  float64 `json:"pickup_lng"`
	DropoffLat float64 `json:"dropoff_lat"`
	DropoffLng float64 `json:"dropoff_lng"`
}

// Surge is the degree of surge pricing applied to an option.
// Uber reports a multiplier (1.0 = none), Lyft a percentage string ("0%").
// Exactly one form is set; the percentage is kept verbatim.
type Surge struct {
	multiplier *float64
	percentage string
}

// NewMultiplierSurge returns a surge expressed as a price multiplier
func NewMultiplierSurge(multiplier float64) Surge {
	return Surge{multiplier: &multiplier}
}

// NewPercentageSurge returns a surge expressed as a percentage string
func NewPercentageSurge(percentage string) Surge {
	return Surge{percentage: percentage}
}

// Multiplier reports the multiplier form, if that is the form in use
func (s Surge) Multiplier() (float64, bool) {
	if s.multiplier == nil {
		return 0, false
	}
	return *s.multiplier, true
}

// Percentage reports the percentage form, if that is the form in use
func (s Surge) Percentage() (string, bool) {
	if s.multiplier != nil {
		return "", false
	}
	return s.percentage, true
}

// Degree returns the fractional price increase: 0.25 for both 1.25x and "25%".
// A percentage that does not parse reads as no surge.
func (s Surge) Degree() float64 {
	if s.multiplier != nil {
		return *s.multiplier - 1
	}
	raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s.percentage), "%"))
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return pct / 100
}

// IsSurging reports whether any surge is in effect
func (s Surge) IsSurging() bool {
	return s.Degree() > 0
}

func (s Surge) String() string {
	if s.multiplier != nil {
		return strconv.FormatFloat(*s.multiplier, 'f', -1, 64) + "x"
	}
	return s.percentage
}

// MarshalJSON writes the multiplier as a number and the percentage as a string
func (s Surge) MarshalJSON() ([]byte, error) {
	if s.multiplier != nil {
		return json.Marshal(*s.multiplier)
	}
	return json.Marshal(s.percentage)
}

// UnmarshalJSON accepts either a number or a string
func (s *Surge) UnmarshalJSON(data []byte) error {
	var multiplier float64
	if err := json.Unmarshal(data, &multiplier); err == nil {
		*s = NewMultiplierSurge(multiplier)
		return nil
	}
	var percentage string
	if err := json.Unmarshal(data, &percentage); err != nil {
		return fmt.Errorf("surge must be a number or a string: %w", err)
	}
	*s = NewPercentageSurge(percentage)
	return nil
}

// RideOption is one normalized fare choice offered by a provider
type RideOption struct {
	Service         Provider `json:"service"`
	RideType        string   `json:"ride_type"`
	PriceMin        float64  `json:"price_min"`
	PriceMax        float64  `json:"price_max"`
	EstimateDisplay string   `json:"estimate_display"`
	DurationMinutes float64  `json:"duration_minutes"` // 0 means unknown
	DistanceMiles   float64  `json:"distance_miles"`
	Surge           Surge    `json:"surge"`
	AvgPrice        float64  `json:"avg_price"`
}

// NewRideOption builds a RideOption and derives its average price
func NewRideOption(
	service Provider,
	rideType string,
	priceMin, priceMax float64,
	display string,
	durationMinutes, distanceMiles float64,
	surge Surge,
) RideOption {
	return RideOption{
		Service:         service,
		RideType:        rideType,
		PriceMin:        priceMin,
		PriceMax:        priceMax,
		EstimateDisplay: display,
		DurationMinutes: durationMinutes,
		DistanceMiles:   distanceMiles,
		Surge:           surge,
		AvgPrice:        (priceMin + priceMax) / 2,
	}
}

// Recommendations holds the engine's picks; a nil field means no candidate
type Recommendations struct {
	BestValue *RideOption `json:"best_value"`
	Fastest   *RideOption `json:"fastest"`
	Luxury    *RideOption `json:"luxury"`
}

// ComparisonResult is the unified view of both providers for one trip
type ComparisonResult struct {
	ID              string          `json:"id"`
	Trip            Trip            `json:"trip"`
	Uber            []RideOption    `json:"uber"`
	Lyft            []RideOption    `json:"lyft"`
	Recommendations Recommendations `json:"recommendations"`
	Summary         string          `json:"comparison_summary"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OptionsFor returns the options a provider returned, in provider order
func (r *ComparisonResult) OptionsFor(provider Provider) []RideOption {
	switch provider {
	case ProviderUber:
		return r.Uber
	case ProviderLyft:
		return r.Lyft
	default:
		return nil
	}
}

// AllOptions returns Uber's options followed by Lyft's
func (r *ComparisonResult) AllOptions() []RideOption {
	all := make([]RideOption, 0, len(r.Uber)+len(r.Lyft))
	all = append(all, r.Uber...)
	return append(all, r.Lyft...)
}

// PickupETA is how long until a ride type can pick the rider up
type PickupETA struct {
	Service    Provider `json:"service"`
	RideType   string   `json:"ride_type"`
	ETASeconds int      `json:"eta_seconds"`
	ETAMinutes float64  `json:"eta_minutes"`
}

// Message roles used in conversation history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation, owned by the caller
type Message struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content"`
}
