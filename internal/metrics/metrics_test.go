package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDecision(t *testing.T) {
	m := New()
	m.ObserveDecision("served", "bypass")
	m.ObserveDecision("served", "bypass")
	m.ObserveDecision("denied", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Decisions.WithLabelValues("served", "bypass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("denied", "none")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveDecision("denied", "") })
}

func TestMiddlewareCountsRoutes(t *testing.T) {
	m := New()
	h := m.Middleware("/view")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/view" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "ok")
	}))

	for _, p := range []string{"/view", "/view", "/nope"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("/view", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("other", "404")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveDecision("not_found", "fallback")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `flagviewer_view_decisions_total{outcome="not_found",source="fallback"} 1`), body)
}
