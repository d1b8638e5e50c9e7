package lyft

import "github.com/cabfare/backend/internal/domain"

// SampleCostResponse is served when the Lyft API cannot be reached
func SampleCostResponse() *domain.LyftCostResponse {
	return &domain.LyftCostResponse{
		CostEstimates: []domain.LyftCost{
			sampleCost("Lyft", 1400, 1800),
			sampleCost("Lyft XL", 2000, 2600),
			sampleCost("Lux", 2200, 2800),
		},
	}
}

func sampleCost(name string, minCents, maxCents int64) domain.LyftCost {
	duration, distance, primetime := 720.0, 5.2, "0%"
	return domain.LyftCost{
		DisplayName:              &name,
		EstimatedCostCentsMin:    &minCents,
		EstimatedCostCentsMax:    &maxCents,
		EstimatedDurationSeconds: &duration,
		EstimatedDistanceMiles:   &distance,
		PrimetimePercentage:      &primetime,
	}
}
