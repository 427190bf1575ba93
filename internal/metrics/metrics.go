package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photobooth_bookings_created_total",
		Help: "Total number of bookings successfully created.",
	})

	InquiriesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photobooth_inquiries_created_total",
		Help: "Total number of contact inquiries successfully created.",
	})

	StatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photobooth_status_updates_total",
		Help: "Total number of accepted status update requests.",
	},
		[]string{"entity"},
	)

	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photobooth_validation_failures_total",
		Help: "Total number of submissions rejected by validation.",
	},
		[]string{"entity"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photobooth_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	StoredRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "photobooth_stored_records",
		Help: "Current number of records held in memory.",
	},
		[]string{"entity"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "photobooth_http_request_duration_seconds",
		Help:    "Duration of API requests.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route", "status"},
	)

	AuditEntriesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photobooth_audit_entries_dropped_total",
		Help: "Audit entries logged directly because they could not be queued or published.",
	})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photobooth_rate_limited_total",
		Help: "Total number of submissions rejected by the rate limiter.",
	})
)
