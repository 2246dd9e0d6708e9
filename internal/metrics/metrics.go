package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotbooking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slotbooking_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ClassesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slotbooking_classes_created_total",
			Help: "Total number of classes created",
		},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotbooking_bookings_total",
			Help: "Total number of slot requests by resulting status",
		},
		[]string{"status"},
	)

	BookingCancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotbooking_booking_cancellations_total",
			Help: "Total number of booking cancellations by outcome",
		},
		[]string{"outcome"},
	)

	WaitlistPromotionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slotbooking_waitlist_promotions_total",
			Help: "Total number of waitlist entries promoted to confirmed",
		},
	)

	InvariantViolationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slotbooking_invariant_violations_total",
			Help: "Total number of rosters found with counters disagreeing with their lists",
		},
	)

	RoadmapsSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotbooking_roadmaps_saved_total",
			Help: "Total number of roadmap saves",
		},
		[]string{"result"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotbooking_emails_sent_total",
			Help: "Total number of emails processed",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slotbooking_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordClassCreated() {
	ClassesCreatedTotal.Inc()
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

func RecordBookingCancellation(outcome string) {
	BookingCancellationsTotal.WithLabelValues(outcome).Inc()
}

func RecordPromotion() {
	WaitlistPromotionsTotal.Inc()
}

func RecordInvariantViolation() {
	InvariantViolationsTotal.Inc()
}

// RecordRoadmapSave labels the save as "created" or "updated".
func RecordRoadmapSave(result string) {
	RoadmapsSavedTotal.WithLabelValues(result).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
