package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.InflightInc()
	m.InflightDec()
	m.ObserveHTTP("GET", "/x", "200", time.Millisecond)
	m.ObserveGraphBuild(1, 1, time.Millisecond)
	m.GoalsCompleted(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/api/v1/certifications/graph", "200", 5*time.Millisecond)
	m.ObserveGraphBuild(3, 2, time.Millisecond)
	m.GoalsCompleted(2)
	m.GoalsCompleted(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/certifications/graph", "200")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.graphNodes))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.graphEdges))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.goalsCompleted))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "speclab_techtree_nodes 3"))
}
