package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_manager_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gym_manager_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionsBookedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_manager_sessions_booked_total",
			Help: "Total number of sessions booked, by session kind",
		},
		[]string{"kind"},
	)

	BookingRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_manager_booking_rejections_total",
			Help: "Total number of rejected booking attempts, by validation code",
		},
		[]string{"code"},
	)

	PersistenceConflictsTotal prometheus.Counter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_manager_persistence_conflicts_total",
			Help: "Total number of bookings that lost a commit-time race",
		},
	)

	SessionCancellationsTotal prometheus.Counter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_manager_session_cancellations_total",
			Help: "Total number of cancelled sessions",
		},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_manager_notifications_sent_total",
			Help: "Total number of booking notifications sent",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gym_manager_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSessionBooked(kind string) {
	SessionsBookedTotal.WithLabelValues(kind).Inc()
}

func RecordBookingRejection(code string) {
	BookingRejectionsTotal.WithLabelValues(code).Inc()
}

func RecordPersistenceConflict() {
	PersistenceConflictsTotal.Inc()
}

func RecordSessionCancellation() {
	SessionCancellationsTotal.Inc()
}

func RecordNotification(notificationType, status string) {
	NotificationsSentTotal.WithLabelValues(notificationType, status).Inc()
}
