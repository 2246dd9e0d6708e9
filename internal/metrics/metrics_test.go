package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/book_slot", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/book_slot", "200"))
	assert.Equal(t, float64(1), count)
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/cancel_booking", "200", 0.1)
	RecordHTTPRequest("POST", "/cancel_booking", "200", 0.2)
	RecordHTTPRequest("POST", "/cancel_booking", "404", 0.05)

	okCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/cancel_booking", "200"))
	notFound := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/cancel_booking", "404"))

	assert.Equal(t, float64(2), okCount)
	assert.Equal(t, float64(1), notFound)
}

func TestRecordBooking(t *testing.T) {
	BookingsTotal.Reset()

	RecordBooking("confirmed")
	RecordBooking("confirmed")
	RecordBooking("waitlisted")

	assert.Equal(t, float64(2), testutil.ToFloat64(BookingsTotal.WithLabelValues("confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingsTotal.WithLabelValues("waitlisted")))
}

func TestRecordBookingCancellation(t *testing.T) {
	BookingCancellationsTotal.Reset()

	RecordBookingCancellation("cancelled")
	RecordBookingCancellation("cancelled_with_promotion")

	assert.Equal(t, float64(1), testutil.ToFloat64(BookingCancellationsTotal.WithLabelValues("cancelled")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingCancellationsTotal.WithLabelValues("cancelled_with_promotion")))
}

func TestRecordPromotion(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "slotbooking_waitlist_promotions_total_test",
			Help: "Total number of waitlist entries promoted to confirmed",
		},
	)

	oldCounter := WaitlistPromotionsTotal
	WaitlistPromotionsTotal = testCounter
	defer func() { WaitlistPromotionsTotal = oldCounter }()

	RecordPromotion()
	RecordPromotion()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCounter))
}

func TestRecordInvariantViolation(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "slotbooking_invariant_violations_total_test",
			Help: "test",
		},
	)

	oldCounter := InvariantViolationsTotal
	InvariantViolationsTotal = testCounter
	defer func() { InvariantViolationsTotal = oldCounter }()

	RecordInvariantViolation()

	assert.Equal(t, float64(1), testutil.ToFloat64(testCounter))
}

func TestRecordRoadmapSave(t *testing.T) {
	RoadmapsSavedTotal.Reset()

	RecordRoadmapSave("created")
	RecordRoadmapSave("updated")
	RecordRoadmapSave("updated")

	assert.Equal(t, float64(1), testutil.ToFloat64(RoadmapsSavedTotal.WithLabelValues("created")))
	assert.Equal(t, float64(2), testutil.ToFloat64(RoadmapsSavedTotal.WithLabelValues("updated")))
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("booking_confirmation", "sent")
	RecordEmail("booking_confirmation", "failed")
	RecordEmail("waitlist_promotion", "sent")

	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("waitlist_promotion", "sent")))
}

func TestEmailQueueLength(t *testing.T) {
	EmailQueueLength.Set(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(EmailQueueLength))
}
