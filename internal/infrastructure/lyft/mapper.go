package lyft

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cabfare/backend/internal/domain"
)

// defaultPrimetime applies when Lyft omits primetime_percentage
const defaultPrimetime = "0%"

// MapCostEstimates converts a Lyft cost response into ride options, keeping
// Lyft's order. Cents become dollars exactly; the display rounds each bound
// to whole dollars (half to even). Primetime is passed through untouched.
func MapCostEstimates(resp *domain.LyftCostResponse) ([]domain.RideOption, error) {
	if resp == nil {
		return []domain.RideOption{}, nil
	}

	options := make([]domain.RideOption, 0, len(resp.CostEstimates))
	for i, cost := range resp.CostEstimates {
		if cost.DisplayName == nil {
			return nil, fmt.Errorf("%w: lyft cost_estimates[%d]: missing display_name", domain.ErrMalformedPayload, i)
		}
		if cost.EstimatedCostCentsMin == nil || cost.EstimatedCostCentsMax == nil {
			return nil, fmt.Errorf("%w: lyft cost_estimates[%d]: missing estimated_cost_cents_min/max", domain.ErrMalformedPayload, i)
		}
		minCents, maxCents := *cost.EstimatedCostCentsMin, *cost.EstimatedCostCentsMax
		if minCents < 0 || maxCents < minCents {
			return nil, fmt.Errorf("%w: lyft cost_estimates[%d]: invalid range %d-%d", domain.ErrMalformedPayload, i, minCents, maxCents)
		}

		minDollars := CentsToDollars(minCents)
		maxDollars := CentsToDollars(maxCents)
		low, _ := minDollars.Float64()
		high, _ := maxDollars.Float64()

		primetime := defaultPrimetime
		if cost.PrimetimePercentage != nil {
			primetime = *cost.PrimetimePercentage
		}

		var durationMinutes float64
		if cost.EstimatedDurationSeconds != nil {
			durationMinutes = *cost.EstimatedDurationSeconds / 60
		}
		var distance float64
		if cost.EstimatedDistanceMiles != nil {
			distance = *cost.EstimatedDistanceMiles
		}

		options = append(options, domain.NewRideOption(
			domain.ProviderLyft,
			*cost.DisplayName,
			low,
			high,
			FormatDollarRange(minDollars, maxDollars),
			durationMinutes,
			distance,
			domain.NewPercentageSurge(primetime),
		))
	}

	return options, nil
}

// MapETAEstimates converts a Lyft ETA response into pickup ETAs
func MapETAEstimates(resp *domain.LyftETAResponse) ([]domain.PickupETA, error) {
	if resp == nil {
		return []domain.PickupETA{}, nil
	}

	etas := make([]domain.PickupETA, 0, len(resp.ETAEstimates))
	for i, eta := range resp.ETAEstimates {
		if eta.DisplayName == nil || eta.ETASeconds == nil {
			return nil, fmt.Errorf("%w: lyft eta_estimates[%d]: missing display_name/eta_seconds", domain.ErrMalformedPayload, i)
		}
		etas = append(etas, domain.PickupETA{
			Service:    domain.ProviderLyft,
			RideType:   *eta.DisplayName,
			ETASeconds: *eta.ETASeconds,
			ETAMinutes: float64(*eta.ETASeconds) / 60,
		})
	}
	return etas, nil
}

// CentsToDollars converts an integer cent amount without float rounding
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatDollarRange renders "$14-18" from two dollar amounts
func FormatDollarRange(low, high decimal.Decimal) string {
	return fmt.Sprintf("$%s-%s", low.RoundBank(0).String(), high.RoundBank(0).String())
}
