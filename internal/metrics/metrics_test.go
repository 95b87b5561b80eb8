package metrics

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudWatchDisabledOutsideProduction(t *testing.T) {
	cw, err := NewClient(context.Background(), "development")
	require.NoError(t, err)
	assert.False(t, cw.Enabled())

	// no-ops when disabled
	cw.RecordAPIRequest("/api/v1/tunings", http.StatusOK, time.Millisecond)
	cw.RecordPattern("3-nps", 1)
}

func TestNilClient(t *testing.T) {
	var cw *Client
	assert.False(t, cw.Enabled())
	assert.NotPanics(t, func() {
		cw.RecordAPIRequest("/health", http.StatusOK, time.Millisecond)
		cw.RecordPattern("pentatonic-box", 0)
	})
}

func TestSentryMetricsWithoutClient(t *testing.T) {
	m := NewSentryMetrics()
	assert.NotPanics(t, func() {
		m.RecordAPIRequest(context.Background(), "/api/v1/modes", http.StatusNotFound, time.Millisecond)
		m.RecordPattern(context.Background(), "3-nps", 18, 0)
		m.RecordCustomMetric("voicing_unfit", map[string]interface{}{"shape": "major-triad-dgb-root"})
	})
}
