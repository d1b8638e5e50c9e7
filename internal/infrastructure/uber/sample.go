package uber

import "github.com/cabfare/backend/internal/domain"

// SamplePriceResponse is served when the Uber API cannot be reached
func SamplePriceResponse() *domain.UberPriceResponse {
	return &domain.UberPriceResponse{
		Prices: []domain.UberPrice{
			samplePrice("UberX", "$15-20", 15, 20),
			samplePrice("UberXL", "$22-28", 22, 28),
			samplePrice("Uber Comfort", "$18-24", 18, 24),
		},
	}
}

func samplePrice(name, estimate string, low, high float64) domain.UberPrice {
	surge, duration, distance := 1.0, 12.0, 5.2
	return domain.UberPrice{
		LocalizedDisplayName: &name,
		Estimate:             estimate,
		LowEstimate:          &low,
		HighEstimate:         &high,
		SurgeMultiplier:      &surge,
		Duration:             &duration,
		Distance:             &distance,
	}
}
