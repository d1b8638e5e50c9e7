package lyft

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabfare/backend/internal/domain"
	"github.com/cabfare/backend/internal/infrastructure/fareapi"
)

func transport(baseURL string) fareapi.Config {
	return fareapi.Config{
		BaseURL:       baseURL,
		APIKey:        "lyft-token",
		Timeout:       time.Second,
		MaxRetries:    2,
		RetryBackoff:  time.Millisecond,
		RatePerSecond: 1000,
	}
}

func TestGetCostEstimate(t *testing.T) {
	trip := domain.Trip{PickupLat: 37.7749, PickupLng: -122.4194, DropoffLat: 37.6213, DropoffLng: -122.379}

	tests := []struct {
		name      string
		status    int
		body      string
		fallback  bool
		wantErr   error
		wantCount int
		wantFirst string
	}{
		{
			name:      "successful response",
			status:    http.StatusOK,
			body:      `{"cost_estimates":[{"display_name":"Lyft","estimated_cost_cents_min":1500,"estimated_cost_cents_max":1900}]}`,
			fallback:  true,
			wantCount: 1,
			wantFirst: "Lyft",
		},
		{
			name:      "server error falls back to sample data",
			status:    http.StatusServiceUnavailable,
			fallback:  true,
			wantCount: 3,
			wantFirst: "Lyft",
		},
		{
			name:     "server error without fallback",
			status:   http.StatusServiceUnavailable,
			fallback: false,
			wantErr:  domain.ErrProviderUnavailable,
		},
		{
			name:     "mistyped cost is rejected even with fallback",
			status:   http.StatusOK,
			body:     `{"cost_estimates":[{"display_name":"Lyft","estimated_cost_cents_min":"1500","estimated_cost_cents_max":1900}]}`,
			fallback: true,
			wantErr:  domain.ErrMalformedPayload,
		},
		{
			name:      "non-json body falls back to sample data",
			status:    http.StatusOK,
			body:      `<html>maintenance</html>`,
			fallback:  true,
			wantCount: 3,
			wantFirst: "Lyft",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/cost", r.URL.Path)
				q := r.URL.Query()
				assert.Equal(t, "37.7749", q.Get("start_lat"))
				assert.Equal(t, "-122.4194", q.Get("start_lng"))
				assert.Equal(t, "37.6213", q.Get("end_lat"))
				assert.Equal(t, "-122.379", q.Get("end_lng"))
				assert.Equal(t, "Bearer lyft-token", r.Header.Get("Authorization"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(transport(server.URL), tt.fallback, nil, nil)

			resp, err := client.GetCostEstimate(context.Background(), trip)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			require.Len(t, resp.CostEstimates, tt.wantCount)
			assert.Equal(t, tt.wantFirst, *resp.CostEstimates[0].DisplayName)
		})
	}
}

func TestGetCostEstimate_RecoversAfterRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"cost_estimates":[{"display_name":"Lyft XL","estimated_cost_cents_min":2500,"estimated_cost_cents_max":3100}]}`))
	}))
	defer server.Close()

	client := NewClient(transport(server.URL), true, nil, nil)

	resp, err := client.GetCostEstimate(context.Background(), domain.Trip{})
	require.NoError(t, err)
	require.Len(t, resp.CostEstimates, 1)
	assert.Equal(t, "Lyft XL", *resp.CostEstimates[0].DisplayName)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetETA(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/eta", r.URL.Path)
			assert.Equal(t, "37.7749", r.URL.Query().Get("lat"))
			assert.Equal(t, "-122.4194", r.URL.Query().Get("lng"))
			_, _ = w.Write([]byte(`{"eta_estimates":[{"display_name":"Lyft","eta_seconds":300}]}`))
		}))
		defer server.Close()

		client := NewClient(transport(server.URL), true, nil, nil)

		resp, err := client.GetETA(context.Background(), 37.7749, -122.4194)
		require.NoError(t, err)
		require.Len(t, resp.ETAEstimates, 1)
		assert.Equal(t, 300, *resp.ETAEstimates[0].ETASeconds)
	})

	t.Run("error without fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient(transport(server.URL), false, nil, nil)

		_, err := client.GetETA(context.Background(), 37.7749, -122.4194)
		assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	})
}
