package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_LedgerOperations(t *testing.T) {
	p := NewPrometheus()
	p.LedgerOperation("reserve", "success")
	p.LedgerOperation("reserve", "success")
	p.LedgerOperation("decrease", "rejected")

	assert.Equal(t, 2.0, testutil.ToFloat64(p.ledgerOps.WithLabelValues("reserve", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.ledgerOps.WithLabelValues("decrease", "rejected")))
}

func TestPrometheus_HandlerExposesSeries(t *testing.T) {
	p := NewPrometheus()
	p.LedgerOperation("increase", "success")
	p.OptimizerRequest(150*time.Millisecond, errors.New("boom"))
	p.HTTPRequest("PUT", "/api/inv/:id/reserve", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `gridaura_ledger_operations_total{operation="increase",outcome="success"} 1`)
	assert.Contains(t, string(body), `gridaura_optimizer_request_seconds_count{result="error"} 1`)
	assert.Contains(t, string(body), `gridaura_http_requests_total{method="PUT",route="/api/inv/:id/reserve",status="200"} 1`)
}
