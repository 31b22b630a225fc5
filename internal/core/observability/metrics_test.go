package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestMetricsHandler_Smoke(t *testing.T) {
	ObserveHTTP("GET", "/api/individuals", 200, 0.001)
	ObserveBeaconQuery("individual", "record", nil)
	ObserveCacheOp("get", nil, 0.0002)
	AddCacheHits(1)
	AddCacheMisses(1)
	ObserveInvalidation("update", "individual", 3, nil)
	IncKafkaConsumerError("decode")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{
		"http_requests_total",
		"beacon_queries_total",
		"cache_results_total",
		"invalidations_total",
		"kafka_consumer_errors_total",
	} {
		if !strings.Contains(body, name) {
			t.Fatalf("metrics payload missing %q", name)
		}
	}
}

func TestObserveBeaconQuery_Outcomes(t *testing.T) {
	ObserveBeaconQuery("biosample", "count", nil)
	ObserveBeaconQuery("biosample", "count", errors.New("backend down"))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, `outcome="ok"`) || !strings.Contains(body, `outcome="error"`) {
		t.Fatalf("expected both ok and error outcome series, got:\n%s", body)
	}
}
