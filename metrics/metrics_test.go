package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCountersExposed(t *testing.T) {
	before := testutil.ToFloat64(CrackResults.WithLabelValues(ResultFound))
	CrackResults.WithLabelValues(ResultFound).Inc()
	require.Equal(t, before+1, testutil.ToFloat64(CrackResults.WithLabelValues(ResultFound)))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.True(t, strings.Contains(body, "cryptolab_crack_results_total"))
	require.True(t, strings.Contains(body, "cryptolab_keygen_attempts_total"))
}
