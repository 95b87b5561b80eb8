package logger

import (
	"bytes"
	"context"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestFormatFields_SortedKeys(t *testing.T) {
	got := formatFields(Fields{
		"positions": 18,
		"key":       "A",
		"ratio":     0.5,
		"degraded":  []int{2},
	})
	assert.Equal(t, "{degraded=[2], key=A, positions=18, ratio=0.50}", got)
	assert.Equal(t, "", formatFields(nil))
}

func TestLogPatternRequest(t *testing.T) {
	buf := captureLog(t)

	LogPatternRequest(context.Background(), PatternStats{
		Algorithm: "three-nps",
		Key:       "A",
		Mode:      "dorian",
		Tuning:    "guitar",
		Strings:   6,
		Positions: 18,
	}, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "[INFO] Pattern computed")
	assert.Contains(t, buf.String(), "algorithm=three-nps")

	buf.Reset()
	LogPatternRequest(context.Background(), PatternStats{
		Algorithm: "two-nps",
		Key:       "C",
		Mode:      "x",
		Strings:   6,
		Positions: 8,
		Degraded:  []int{0, 1},
	}, time.Millisecond, Fields{"request_id": "abc"})
	assert.Contains(t, buf.String(), "[WARN] Pattern computed with short strings")
	assert.Contains(t, buf.String(), "degraded_strings=[0 1]")
	assert.Contains(t, buf.String(), "request_id=abc")

	buf.Reset()
	LogPatternRequest(context.Background(), PatternStats{
		Algorithm: "pentatonic-box",
		Key:       "C",
		Mode:      "minor",
		Strings:   6,
	}, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "[WARN] Pattern computed with no positions")
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/modes", nil)
	c.Set("request_id", "req-1")
	c.Set("user_id", "user-9")

	fields := WithContext(c)
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/modes", fields["path"])
	assert.Equal(t, "user-9", fields["user_id"])
}
