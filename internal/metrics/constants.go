package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Progression metric names
const (
	MetricNameXPAwards      = "xp_awards_total"
	MetricNameXPAwarded     = "xp_awarded_points_total"
	MetricNameLevelUps      = "level_ups_total"
	MetricNameRewardUnlocks = "reward_unlocks_total"
	MetricNameAwardFailures = "award_failures_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Progression metric help text
const (
	HelpTextXPAwards      = "Total number of XP awards"
	HelpTextXPAwarded     = "Total XP points awarded"
	HelpTextLevelUps      = "Total number of level ups"
	HelpTextRewardUnlocks = "Total number of rewards unlocked"
	HelpTextAwardFailures = "Total number of failed XP awards"
)

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelActionType = "action_type"
	LabelReason     = "reason"
)

// HTTPLatencyBuckets are the histogram buckets for request latency in seconds
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Log message constants
const (
	LogMsgMetricsRecorded       = "Metrics recorded for event"
	LogMsgEventPayloadDecodeErr = "Failed to decode event payload for metrics"
)
