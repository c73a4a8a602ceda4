package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingsCreated.WithLabelValues(ResultConflict))
	IncBookingRequest(ResultConflict)
	assert.Equal(t, before+1, testutil.ToFloat64(bookingsCreated.WithLabelValues(ResultConflict)))

	before = testutil.ToFloat64(notifications.WithLabelValues("email", StatusDropped))
	IncNotification("email", StatusDropped)
	assert.Equal(t, before+1, testutil.ToFloat64(notifications.WithLabelValues("email", StatusDropped)))

	SetNotifyQueueDepth(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(notifyQueueDepth))
}

func TestObserveHTTPRequest(t *testing.T) {
	ObserveHTTPRequest("POST", "/api/bookings", 409, 15*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(httpDuration, "salonbook_http_request_duration_seconds"), 1)
}
