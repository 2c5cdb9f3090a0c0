package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveQueryLatency_LabelsBySQLVerb(t *testing.T) {
	ObserveQueryLatency(`SELECT * FROM "novels" LIMIT 20`, 3*time.Millisecond)
	ObserveQueryLatency(`insert into "reviews" (user_id) values (1)`, time.Millisecond)
	ObserveQueryLatency("BEGIN", time.Microsecond)

	// select, insert and other must each have their own series.
	if got := testutil.CollectAndCount(DatabaseQueryLatency); got < 3 {
		t.Fatalf("expected at least 3 latency series, got %d", got)
	}
}
