package fareapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabfare/backend/internal/domain"
)

func testConfig(baseURL string) Config {
	return Config{
		Name:          "Test",
		BaseURL:       baseURL,
		APIKey:        "test-token",
		Timeout:       2 * time.Second,
		MaxRetries:    2,
		RetryBackoff:  time.Millisecond,
		RatePerSecond: 1000,
		Burst:         100,
	}
}

func isStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}

type payload struct {
	Value string `json:"value"`
}

func TestNewClient(t *testing.T) {
	client := NewClient(Config{Name: "Uber", BaseURL: "https://api.example.com", MaxRetries: -1}, nil, nil)

	assert.NotNil(t, client)
	assert.Equal(t, "Uber", client.name)
	assert.Equal(t, 0, client.maxRetries)
	assert.Equal(t, 200*time.Millisecond, client.backoff)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.http.Debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient(testConfig("https://api.example.com"), nil, nil)

	client.SetDebug(true)
	assert.True(t, client.http.Debug)

	client.SetDebug(false)
	assert.False(t, client.http.Debug)
}

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/estimates/price", r.URL.Path)
		assert.Equal(t, "37.7749", r.URL.Query().Get("start_latitude"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "Cabfare/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)

	var result payload
	err := client.Get(context.Background(), "/estimates/price", map[string]string{"start_latitude": "37.7749"}, &result)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Value)
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"value":"recovered"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)

	var result payload
	err := client.Get(context.Background(), "/cost", nil, &result)
	require.NoError(t, err)
	assert.Equal(t, "recovered", result.Value)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGet_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)

	err := client.Get(context.Background(), "/cost", nil, &payload{})
	require.Error(t, err)
	assert.True(t, isStatus(err, http.StatusInternalServerError))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGet_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)

	err := client.Get(context.Background(), "/cost", nil, &payload{})
	require.Error(t, err)
	assert.True(t, isStatus(err, http.StatusUnauthorized))
	assert.False(t, isStatus(err, http.StatusNotFound))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)

	err := client.Get(context.Background(), "/cost", nil, &payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode Test response")
	assert.NotErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestGet_MistypedFields(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"value":31}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)

	err := client.Get(context.Background(), "/cost", nil, &payload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
	assert.Contains(t, err.Error(), "decode Test response")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":"late"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Get(ctx, "/cost", nil, &payload{})
	assert.Error(t, err)
}

func TestStatusErrorRetryable(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusNotFound, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := &StatusError{Provider: "Lyft", StatusCode: tt.code}
			assert.Equal(t, tt.want, err.Retryable())
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
