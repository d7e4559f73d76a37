package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "error", Result(errors.New("boom")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	Redemptions.WithLabelValues("stream", "allow").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "fdl_redemptions_total"))
}

func TestCounterIncrements(t *testing.T) {
	before := testutil.ToFloat64(LinksIssued.WithLabelValues("video"))
	LinksIssued.WithLabelValues("video").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(LinksIssued.WithLabelValues("video")))
}

func TestCollectorsPassLint(t *testing.T) {
	LinksIssued.WithLabelValues("audio").Add(0)
	IssueFailures.WithLabelValues("archive").Add(0)
	Redemptions.WithLabelValues("dl", "missing").Add(0)
	BytesServed.WithLabelValues("dl").Add(0)
	ArchiveOperations.WithLabelValues("fetch", "ok").Add(0)

	for _, c := range []prometheus.Collector{LinksIssued, IssueFailures, Redemptions, BytesServed, ArchiveOperations, RecordsReaped} {
		problems, err := testutil.CollectAndLint(c)
		require.NoError(t, err)
		assert.Empty(t, problems)
	}
}
