package uber

import (
	"fmt"

	"github.com/cabfare/backend/internal/domain"
)

// defaultSurgeMultiplier applies when Uber omits surge_multiplier
const defaultSurgeMultiplier = 1.0

// MapPriceEstimates converts an Uber price response into ride options,
// keeping Uber's product order. A product without a name or price bounds
// fails the whole response.
func MapPriceEstimates(resp *domain.UberPriceResponse) ([]domain.RideOption, error) {
	if resp == nil {
		return []domain.RideOption{}, nil
	}

	options := make([]domain.RideOption, 0, len(resp.Prices))
	for i, price := range resp.Prices {
		if price.LocalizedDisplayName == nil {
			return nil, fmt.Errorf("%w: uber prices[%d]: missing localized_display_name", domain.ErrMalformedPayload, i)
		}
		if price.LowEstimate == nil || price.HighEstimate == nil {
			return nil, fmt.Errorf("%w: uber prices[%d]: missing low_estimate/high_estimate", domain.ErrMalformedPayload, i)
		}
		low, high := *price.LowEstimate, *price.HighEstimate
		if low < 0 || high < low {
			return nil, fmt.Errorf("%w: uber prices[%d]: invalid range %v-%v", domain.ErrMalformedPayload, i, low, high)
		}

		display := price.Estimate
		if display == "" {
			display = fmt.Sprintf("$%.0f-%.0f", low, high)
		}

		surge := defaultSurgeMultiplier
		if price.SurgeMultiplier != nil {
			surge = *price.SurgeMultiplier
		}

		options = append(options, domain.NewRideOption(
			domain.ProviderUber,
			*price.LocalizedDisplayName,
			low,
			high,
			display,
			valueOrZero(price.Duration),
			valueOrZero(price.Distance),
			domain.NewMultiplierSurge(surge),
		))
	}

	return options, nil
}

// MapTimeEstimates converts an Uber time response into pickup ETAs
func MapTimeEstimates(resp *domain.UberTimeResponse) ([]domain.PickupETA, error) {
	if resp == nil {
		return []domain.PickupETA{}, nil
	}

	etas := make([]domain.PickupETA, 0, len(resp.Times))
	for i, t := range resp.Times {
		if t.LocalizedDisplayName == nil || t.Estimate == nil {
			return nil, fmt.Errorf("%w: uber times[%d]: missing localized_display_name/estimate", domain.ErrMalformedPayload, i)
		}
		etas = append(etas, domain.PickupETA{
			Service:    domain.ProviderUber,
			RideType:   *t.LocalizedDisplayName,
			ETASeconds: *t.Estimate,
			ETAMinutes: float64(*t.Estimate) / 60,
		})
	}
	return etas, nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
