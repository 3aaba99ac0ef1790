package mymetrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/soartravel/soar/internal/mymetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := mymetrics.NewCollector()

	c.ObserveStatementWrite(true)
	c.ObserveStatementWrite(false)
	c.ObserveStatementWrite(false)
	c.ObserveSyncItem("trip", mymetrics.ResultSuccess)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.StatementWrites.WithLabelValues(mymetrics.ResultSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.StatementWrites.WithLabelValues(mymetrics.ResultFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SyncItems.WithLabelValues("trip", mymetrics.ResultSuccess)))

	count, err := testutil.GatherAndCount(c.Registry(), "soar_sync_items_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "soar_statement_writes_total")
}

func TestNilCollector(t *testing.T) {
	var c *mymetrics.Collector
	assert.NotPanics(t, func() {
		c.ObserveStatementWrite(true)
		c.ObserveSyncItem("trip", mymetrics.ResultFailure)
		c.ObserveChatMessage("QUERY")
	})
}
