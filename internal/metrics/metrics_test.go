package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTP(t *testing.T) {
	m := New()

	m.ObserveHTTP("GET", "/v1/tasks/{id}", 200, 15*time.Millisecond)
	m.ObserveHTTP("GET", "/v1/tasks/{id}", 200, 5*time.Millisecond)
	m.ObserveHTTP("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/v1/tasks/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))
}

func TestStoreOpAndToolCall(t *testing.T) {
	m := New()

	m.StoreOp("create", OutcomeOK)
	m.StoreOp("find_by_id", OutcomeNotFound)
	m.StoreOp("find_by_id", OutcomeNotFound)
	m.ToolCall("create_new_task", OutcomeError)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("create", OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.storeOps.WithLabelValues("find_by_id", OutcomeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("create_new_task", OutcomeError)))
}

func TestHandler_ExposesInstruments(t *testing.T) {
	m := New()
	m.StoreOp("search", OutcomeOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mindvault_store_operations_total{op="search",outcome="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/", 200, time.Second)
		m.StoreOp("create", OutcomeOK)
		m.ToolCall("x", OutcomeOK)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
