package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal     = "http_requests_total"
	MetricNameHTTPRequestDuration   = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight  = "http_requests_in_flight"
	MetricNameHTTPRequestsThrottled = "http_requests_throttled_total"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Slot machine metric names
const (
	MetricNameRoundsTotal     = "slots_rounds_total"
	MetricNameWageredTotal    = "slots_wagered_total"
	MetricNamePaidTotal       = "slots_paid_total"
	MetricNameWagersRejected  = "slots_wagers_rejected_total"
	MetricNameBalance         = "slots_balance"
	MetricNameDepletedTotal   = "slots_depleted_total"
	MetricNameLiveConnections = "slots_live_connections"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal     = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration   = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight  = "Current number of HTTP requests being served"
	HelpTextHTTPRequestsThrottled = "Total number of HTTP requests refused by the per-IP rate limit"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Slot machine metric help text
const (
	HelpTextRoundsTotal     = "Total number of settled rounds by outcome"
	HelpTextWageredTotal    = "Total amount wagered on accepted rounds"
	HelpTextPaidTotal       = "Total amount paid out on winning rounds"
	HelpTextWagersRejected  = "Total number of rejected wager submissions by kind"
	HelpTextBalance         = "Current balance held by the machine"
	HelpTextDepletedTotal   = "Number of times the balance reached zero"
	HelpTextLiveConnections = "Current number of live presentation connections by transport"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelOutcome   = "outcome"
	LabelKind      = "kind"
	LabelTransport = "transport"
)

// Round outcome label values
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomeVoid = "void"
)

// Transport label values
const (
	TransportWebSocket = "websocket"
	TransportSSE       = "sse"
)

// PathUnmatched labels requests that did not match any route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s. Spin requests wait out the spin delay so the
// upper buckets matter here.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
