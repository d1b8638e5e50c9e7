package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveComparison(OutcomeOK)
	m.ObserveComparison(OutcomeOK)
	m.ObserveComparison(OutcomePartial)
	m.IncFallback("Uber")
	m.ObserveRequest("Lyft", "/cost", 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.comparisons.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.comparisons.WithLabelValues(OutcomePartial)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("Uber")))

	count, err := testutil.GatherAndCount(m.Registry(), "cabfare_provider_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveComparison(OutcomeFailed)
		m.IncFallback("Lyft")
		m.ObserveRequest("Uber", "/estimates/price", time.Second)
		m.WatchSessions(func() int { return 1 })
	})
}

func TestWatchSessions(t *testing.T) {
	m := New()
	size := 3
	m.WatchSessions(func() int { return size })

	want := `
# HELP cabfare_sessions_stored Comparisons held by the in-memory session store.
# TYPE cabfare_sessions_stored gauge
cabfare_sessions_stored 3
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(want), "cabfare_sessions_stored"))

	size = 0
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(),
		strings.NewReader(strings.Replace(want, "stored 3", "stored 0", 1)), "cabfare_sessions_stored"))
}

func TestHandler(t *testing.T) {
	m := New()
	m.IncFallback("Lyft")

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `cabfare_provider_fallbacks_total{provider="Lyft"} 1`)
}
