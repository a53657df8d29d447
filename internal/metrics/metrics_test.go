package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/movies", "200"))
	RecordAPIRequest(http.MethodGet, "/api/movies", http.StatusOK, 10*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/movies", "200"))
	if after != before+1 {
		t.Fatalf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestObserveAggregateWrite(t *testing.T) {
	before := testutil.CollectAndCount(AggregateWriteDuration)
	ObserveAggregateWrite(time.Now())
	if got := testutil.CollectAndCount(AggregateWriteDuration); got != before {
		t.Fatalf("histogram series = %d, want %d", got, before)
	}
}
