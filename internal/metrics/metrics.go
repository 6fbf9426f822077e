package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	HTTPRequestsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsThrottled,
			Help: HelpTextHTTPRequestsThrottled,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Slot Machine Metrics
var (
	RoundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsTotal,
			Help: HelpTextRoundsTotal,
		},
		[]string{LabelOutcome},
	)

	WageredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWageredTotal,
			Help: HelpTextWageredTotal,
		},
	)

	PaidTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePaidTotal,
			Help: HelpTextPaidTotal,
		},
	)

	WagersRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWagersRejected,
			Help: HelpTextWagersRejected,
		},
		[]string{LabelKind},
	)

	Balance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameBalance,
			Help: HelpTextBalance,
		},
	)

	DepletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDepletedTotal,
			Help: HelpTextDepletedTotal,
		},
	)

	LiveConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameLiveConnections,
			Help: HelpTextLiveConnections,
		},
		[]string{LabelTransport},
	)
)
