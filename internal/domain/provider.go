package domain

// Raw provider payloads. Pointer fields distinguish "absent" from zero so the
// mappers can apply defaults to optional fields and reject missing prices.

// UberPriceResponse represents the response from Uber's /estimates/price
type UberPriceResponse struct {
	Prices []UberPrice `json:"prices"`
}

// UberPrice is one product's price estimate; amounts are in dollars
type UberPrice struct {
	LocalizedDisplayName *string  `json:"localized_display_name"`
	Estimate             string   `json:"estimate"`
	LowEstimate          *float64 `json:"low_estimate"`
	HighEstimate         *float64 `json:"high_estimate"`
	SurgeMultiplier      *float64 `json:"surge_multiplier,omitempty"`
	Duration             *float64 `json:"duration,omitempty"` // minutes
	Distance             *float64 `json:"distance,omitempty"` // miles
}

// UberTimeResponse represents the response from Uber's /estimates/time
type UberTimeResponse struct {
	Times []UberTime `json:"times"`
}

// UberTime is one product's pickup estimate in seconds
type UberTime struct {
	LocalizedDisplayName *string `json:"localized_display_name"`
	Estimate             *int    `json:"estimate"`
}

// LyftCostResponse represents the response from Lyft's /cost
type LyftCostResponse struct {
	CostEstimates []LyftCost `json:"cost_estimates"`
}

// LyftCost is one ride type's cost estimate; amounts are in cents
type LyftCost struct {
	DisplayName              *string  `json:"display_name"`
	EstimatedCostCentsMin    *int64   `json:"estimated_cost_cents_min"`
	EstimatedCostCentsMax    *int64   `json:"estimated_cost_cents_max"`
	EstimatedDurationSeconds *float64 `json:"estimated_duration_seconds,omitempty"`
	EstimatedDistanceMiles   *float64 `json:"estimated_distance_miles,omitempty"`
	PrimetimePercentage      *string  `json:"primetime_percentage,omitempty"`
}

// LyftETAResponse represents the response from Lyft's /eta
type LyftETAResponse struct {
	ETAEstimates []LyftETA `json:"eta_estimates"`
}

// LyftETA is one ride type's pickup estimate in seconds
type LyftETA struct {
	DisplayName *string `json:"display_name"`
	ETASeconds  *int    `json:"eta_seconds"`
}
