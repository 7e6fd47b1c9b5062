package observability

// Metric keys resolved through Metrics. Label sets are fixed per key.
const (
	// HTTP layer, labels {method, route, status}; route is the mux template, e.g. "GET /plants/{id}".
	MHTTPRequests        MetricKey = "http_requests_total"
	MHTTPRequestDuration MetricKey = "http_request_duration_seconds"

	// Application services: requests {use_case, outcome}, duration {use_case}.
	MUsecaseRequests MetricKey = "usecase_requests_total"
	MUsecaseDuration MetricKey = "usecase_duration_seconds"

	// Document store calls: requests {peer, endpoint, outcome}, duration {peer, endpoint}.
	// endpoint is "<collection>.<operation>", e.g. "plants.inc".
	MExternalRequests        MetricKey = "external_requests_total"
	MExternalRequestDuration MetricKey = "external_request_duration_seconds"
)
