package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveMatch("ambulance", "nearby_eligible")
	m.ObserveMatch("ambulance", "nearby_eligible")
	m.ObserveReassignment("timeout", false)
	m.ObserveDelivery("websocket", "status-update", nil)
	m.ObserveDelivery("websocket", "status-update", errors.New("slow"))
	m.SetPending(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DispatchOutcomes.WithLabelValues("ambulance", "nearby_eligible")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reassignments.WithLabelValues("timeout", "unassigned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Deliveries.WithLabelValues("websocket", "status-update", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Deliveries.WithLabelValues("websocket", "status-update", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PendingConfirmations))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveMatch("hospital", "any_eligible")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `dispatch_match_outcomes_total{resource="hospital",tier="any_eligible"} 1`)
}
