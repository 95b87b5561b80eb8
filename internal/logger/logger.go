package logger

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// Fields represents structured log fields
type Fields map[string]interface{}

// PatternStats describes one pattern computation for logging
type PatternStats struct {
	Algorithm string
	Key       string
	Mode      string
	Tuning    string
	Strings   int
	Positions int
	Degraded  []int // strings that came back short
}

// WithContext extracts request context for logging
func WithContext(c *gin.Context) Fields {
	fields := Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}

	if userID, exists := c.Get("user_id"); exists {
		fields["user_id"] = userID
	}

	return fields
}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	log.Printf("[INFO] %s %v", msg, formatFields(fields))
	breadcrumb("info", msg, fields, sentry.LevelInfo)
}

// Error logs an error message with structured fields and sends to Sentry
func Error(msg string, err error, fields Fields) {
	log.Printf("[ERROR] %s: %v %v", msg, err, formatFields(fields))

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			applyScope(scope, fields)
			hub.CaptureException(err)
		})
	}
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	log.Printf("[WARN] %s %v", msg, formatFields(fields))
	breadcrumb("warning", msg, fields, sentry.LevelWarning)
}

// Debug logs a debug message with structured fields
func Debug(msg string, fields Fields) {
	log.Printf("[DEBUG] %s %v", msg, formatFields(fields))
	breadcrumb("debug", msg, fields, sentry.LevelDebug)
}

func breadcrumb(kind, msg string, fields Fields, level sentry.Level) {
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		sentry.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     kind,
			Category: "log",
			Message:  msg,
			Data:     convertFieldsToMap(fields),
			Level:    level,
		})
	}
}

func applyScope(scope *sentry.Scope, fields Fields) {
	for key, value := range fields {
		scope.SetContext(key, map[string]interface{}{
			"value": value,
		})
	}

	// Tags for filtering in Sentry
	for _, tag := range []string{"request_id", "algorithm", "tuning"} {
		if v, ok := fields[tag].(string); ok && v != "" {
			scope.SetTag(tag, v)
		}
	}
}

// LogAPIRequest logs API request metrics
func LogAPIRequest(c *gin.Context, duration time.Duration, statusCode int, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}

	fields["duration_ms"] = duration.Milliseconds()
	fields["status_code"] = statusCode
	fields["request_id"] = c.GetString("request_id")
	fields["method"] = c.Request.Method
	fields["path"] = c.Request.URL.Path
	fields["client_ip"] = c.ClientIP()

	Info("API request completed", fields)

	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:     "http",
		Category: "api",
		Message:  "API request",
		Data:     convertFieldsToMap(fields),
		Level:    sentry.LevelInfo,
	})
}

// LogPatternRequest logs a pattern computation. Short strings are logged as a
// warning since they mean the search had to give up somewhere on the neck.
func LogPatternRequest(ctx context.Context, stats PatternStats, duration time.Duration, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}

	fields["algorithm"] = stats.Algorithm
	fields["key"] = stats.Key
	fields["mode"] = stats.Mode
	fields["tuning"] = stats.Tuning
	fields["strings"] = stats.Strings
	fields["positions"] = stats.Positions
	fields["duration_us"] = duration.Microseconds()

	switch {
	case stats.Positions == 0:
		Warn("Pattern computed with no positions", fields)
		LogToSentry(sentry.LevelWarning, "Empty pattern", fields)
	case len(stats.Degraded) > 0:
		fields["degraded_strings"] = stats.Degraded
		Warn("Pattern computed with short strings", fields)
	default:
		Info("Pattern computed", fields)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		span := sentry.StartSpan(ctx, "pattern."+stats.Algorithm)
		span.Description = stats.Key + " " + stats.Mode
		span.SetData("positions", stats.Positions)
		span.SetData("degraded_strings", len(stats.Degraded))
		span.Finish()
	}
}

// formatFields renders fields as {k=v, ...} with keys sorted
func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(formatValue(fields[k]))
	}
	b.WriteString("}")
	return b.String()
}

// LogToSentry sends a log message directly to Sentry as an event
func LogToSentry(level sentry.Level, msg string, fields Fields) {
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetLevel(level)
			applyScope(scope, fields)
			hub.CaptureMessage(msg)
		})
	}
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func convertFieldsToMap(fields Fields) map[string]interface{} {
	result := make(map[string]interface{})
	for k, v := range fields {
		result[k] = v
	}
	return result
}
