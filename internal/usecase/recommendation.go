package usecase

import (
	"fmt"
	"strings"

	"github.com/cabfare/backend/internal/domain"
)

// luxuryKeywords mark premium ride types. "xl" is a capacity tier, not a
// premium one, and is matched anyway.
var luxuryKeywords = []string{"xl", "lux", "comfort", "black"}

// Summary texts
const (
	summaryMissingData = "Unable to compare - missing data from one or both services."
	summarySimilar     = "Prices are similar between %s and %s."
	summaryCheaper     = "%s is cheaper by $%.2f on average. Best option: %s"
)

// Recommend picks best value, fastest and luxury options from the merged
// list (Uber first, then Lyft). Ties go to the earlier option.
func Recommend(options []domain.RideOption) domain.Recommendations {
	return domain.Recommendations{
		BestValue: cheapest(options),
		Fastest:   fastest(options),
		Luxury:    cheapest(filterLuxury(options)),
	}
}

// Summarize compares the cheapest option of each provider. a is reported
// as Uber and b as Lyft.
func Summarize(a, b []domain.RideOption) string {
	return summarizeProviders(domain.ProviderUber, a, domain.ProviderLyft, b)
}

func summarizeProviders(nameA domain.Provider, a []domain.RideOption, nameB domain.Provider, b []domain.RideOption) string {
	cheapestA := cheapest(a)
	cheapestB := cheapest(b)
	if cheapestA == nil || cheapestB == nil {
		return summaryMissingData
	}

	switch {
	case cheapestA.AvgPrice < cheapestB.AvgPrice:
		return fmt.Sprintf(summaryCheaper, nameA, cheapestB.AvgPrice-cheapestA.AvgPrice, cheapestA.RideType)
	case cheapestB.AvgPrice < cheapestA.AvgPrice:
		return fmt.Sprintf(summaryCheaper, nameB, cheapestA.AvgPrice-cheapestB.AvgPrice, cheapestB.RideType)
	default:
		return fmt.Sprintf(summarySimilar, nameA, nameB)
	}
}

// IsLuxury reports whether a ride type name matches a premium keyword
func IsLuxury(rideType string) bool {
	lower := strings.ToLower(rideType)
	for _, kw := range luxuryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// cheapest returns a copy of the first option with the lowest average price
func cheapest(options []domain.RideOption) *domain.RideOption {
	var best *domain.RideOption
	for i := range options {
		if best == nil || options[i].AvgPrice < best.AvgPrice {
			best = &options[i]
		}
	}
	return clone(best)
}

// fastest ignores options whose duration is unknown (zero)
func fastest(options []domain.RideOption) *domain.RideOption {
	var best *domain.RideOption
	for i := range options {
		if options[i].DurationMinutes <= 0 {
			continue
		}
		if best == nil || options[i].DurationMinutes < best.DurationMinutes {
			best = &options[i]
		}
	}
	return clone(best)
}

func filterLuxury(options []domain.RideOption) []domain.RideOption {
	var matches []domain.RideOption
	for _, opt := range options {
		if IsLuxury(opt.RideType) {
			matches = append(matches, opt)
		}
	}
	return matches
}

func clone(opt *domain.RideOption) *domain.RideOption {
	if opt == nil {
		return nil
	}
	c := *opt
	return &c
}
