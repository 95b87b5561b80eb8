package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordPattern records one pattern computation on the request transaction
func (m *SentryMetrics) RecordPattern(ctx context.Context, algorithm string, positions, degradedStrings int) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("pattern.algorithm", algorithm)
		transaction.SetData("pattern.positions", positions)
		transaction.SetData("pattern.degraded_strings", degradedStrings)
	}

	span := sentry.StartSpan(ctx, "pattern.generate")
	defer span.Finish()

	span.SetTag("algorithm", algorithm)
	span.SetTag("degraded", fmt.Sprintf("%t", degradedStrings > 0))
	span.SetData("positions", positions)
	span.SetData("degraded_strings", degradedStrings)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Pattern: %s", algorithm)
}

// RecordCustomMetric sends a custom metric with arbitrary data
func (m *SentryMetrics) RecordCustomMetric(metricName string, data map[string]interface{}) {
	if !m.enabled {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("metric_type", "custom")
		scope.SetTag("metric_name", metricName)

		scope.SetContext("custom_metric", data)

		sentry.CaptureMessage("Custom Metric: " + metricName)
	})
}
