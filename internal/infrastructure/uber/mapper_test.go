package uber

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabfare/backend/internal/domain"
)

func decodePrices(t *testing.T, payload string) *domain.UberPriceResponse {
	t.Helper()
	var resp domain.UberPriceResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	return &resp
}

func TestMapPriceEstimates(t *testing.T) {
	t.Run("maps products in order", func(t *testing.T) {
		resp := decodePrices(t, `{"prices":[
			{"localized_display_name":"UberX","estimate":"$15-20","low_estimate":15,"high_estimate":20,"surge_multiplier":1.0,"duration":12,"distance":5.2},
			{"localized_display_name":"UberXL","estimate":"$22-28","low_estimate":22,"high_estimate":28,"surge_multiplier":1.5,"duration":14,"distance":5.2}
		]}`)

		options, err := MapPriceEstimates(resp)
		require.NoError(t, err)
		require.Len(t, options, 2)

		first := options[0]
		assert.Equal(t, domain.ProviderUber, first.Service)
		assert.Equal(t, "UberX", first.RideType)
		assert.Equal(t, 15.0, first.PriceMin)
		assert.Equal(t, 20.0, first.PriceMax)
		assert.Equal(t, 17.5, first.AvgPrice)
		assert.Equal(t, "$15-20", first.EstimateDisplay)
		assert.Equal(t, 12.0, first.DurationMinutes)
		assert.Equal(t, 5.2, first.DistanceMiles)
		assert.False(t, first.Surge.IsSurging())

		assert.Equal(t, "UberXL", options[1].RideType)
		mult, ok := options[1].Surge.Multiplier()
		assert.True(t, ok)
		assert.Equal(t, 1.5, mult)
	})

	t.Run("applies defaults for optional fields", func(t *testing.T) {
		resp := decodePrices(t, `{"prices":[{"localized_display_name":"UberX","low_estimate":15,"high_estimate":20}]}`)

		options, err := MapPriceEstimates(resp)
		require.NoError(t, err)
		require.Len(t, options, 1)

		opt := options[0]
		assert.Equal(t, "$15-20", opt.EstimateDisplay)
		assert.Equal(t, 0.0, opt.DurationMinutes)
		assert.Equal(t, 0.0, opt.DistanceMiles)
		mult, ok := opt.Surge.Multiplier()
		assert.True(t, ok)
		assert.Equal(t, 1.0, mult)
	})

	t.Run("nil and empty responses give empty list", func(t *testing.T) {
		options, err := MapPriceEstimates(nil)
		require.NoError(t, err)
		assert.Empty(t, options)

		options, err = MapPriceEstimates(decodePrices(t, `{}`))
		require.NoError(t, err)
		assert.Empty(t, options)
	})

	malformed := []struct {
		name    string
		payload string
	}{
		{"missing name", `{"prices":[{"low_estimate":15,"high_estimate":20}]}`},
		{"missing low estimate", `{"prices":[{"localized_display_name":"UberX","high_estimate":20}]}`},
		{"missing high estimate", `{"prices":[{"localized_display_name":"UberX","low_estimate":15}]}`},
		{"inverted range", `{"prices":[{"localized_display_name":"UberX","low_estimate":20,"high_estimate":15}]}`},
		{"negative price", `{"prices":[{"localized_display_name":"UberX","low_estimate":-1,"high_estimate":15}]}`},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			options, err := MapPriceEstimates(decodePrices(t, tt.payload))
			assert.Nil(t, options)
			assert.True(t, errors.Is(err, domain.ErrMalformedPayload), "got %v", err)
		})
	}
}

func TestMapTimeEstimates(t *testing.T) {
	var resp domain.UberTimeResponse
	require.NoError(t, json.Unmarshal([]byte(`{"times":[{"localized_display_name":"UberX","estimate":180}]}`), &resp))

	etas, err := MapTimeEstimates(&resp)
	require.NoError(t, err)
	require.Len(t, etas, 1)
	assert.Equal(t, domain.ProviderUber, etas[0].Service)
	assert.Equal(t, "UberX", etas[0].RideType)
	assert.Equal(t, 180, etas[0].ETASeconds)
	assert.Equal(t, 3.0, etas[0].ETAMinutes)

	malformed := []struct {
		name    string
		payload string
	}{
		{"missing estimate", `{"times":[{"localized_display_name":"UberX"}]}`},
		{"missing name", `{"times":[{"estimate":180}]}`},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			var resp domain.UberTimeResponse
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &resp))

			etas, err := MapTimeEstimates(&resp)
			assert.Nil(t, etas)
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}
}

func TestSamplePriceResponseMaps(t *testing.T) {
	options, err := MapPriceEstimates(SamplePriceResponse())
	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, "UberX", options[0].RideType)
	assert.Equal(t, 17.5, options[0].AvgPrice)
}
