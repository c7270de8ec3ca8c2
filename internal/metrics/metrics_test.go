package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsRecord(t *testing.T) {
	before := testutil.ToFloat64(CyclesTotal.WithLabelValues("test"))
	CyclesTotal.WithLabelValues("test").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(CyclesTotal.WithLabelValues("test")))

	ClosestDistanceMiles.Set(1.25)
	assert.Equal(t, 1.25, testutil.ToFloat64(ClosestDistanceMiles))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ChangesTotal.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "closest_arcade_changes_total"))
	assert.True(t, strings.Contains(string(body), "closest_arcade_distance_miles"))
}
