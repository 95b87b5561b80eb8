package handlers

import (
	"net/http"

	"github.com/filipedeo/fretboard-api/internal/catalog"
	"github.com/filipedeo/fretboard-api/internal/config"
	"github.com/filipedeo/fretboard-api/internal/logger"
	"github.com/filipedeo/fretboard-api/internal/metrics"
	"github.com/filipedeo/fretboard-api/internal/models"
	"github.com/filipedeo/fretboard-api/internal/theory"
	"github.com/filipedeo/fretboard-api/internal/voicing"
	"github.com/gin-gonic/gin"
)

type VoicingHandler struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	sentry  *metrics.SentryMetrics
}

func NewVoicingHandler(cfg *config.Config, cat *catalog.Catalog) *VoicingHandler {
	return &VoicingHandler{
		cfg:     cfg,
		catalog: cat,
		sentry:  metrics.NewSentryMetrics(),
	}
}

// Resolve anchors a voicing shape in a key on the requested instrument
// POST /api/v1/voicings/resolve
func (h *VoicingHandler) Resolve(c *gin.Context) {
	var req models.VoicingResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if theory.Chroma(req.Key) < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key"})
		return
	}
	shape, ok := h.catalog.Shape(req.Shape)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown voicing shape"})
		return
	}
	t, err := resolveTuning(req.TuningSelector, h.cfg.DefaultInstrument)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, ok := voicing.Resolve(req.Key, shape, t, t.StringMap())
	if !ok {
		fields := logger.WithContext(c)
		fields["shape"] = shape.Name
		fields["tuning"] = t.Name()
		logger.Warn("Voicing does not fit the instrument", fields)
		h.sentry.RecordCustomMetric("voicing_unfit", map[string]interface{}{
			"shape":   shape.Name,
			"tuning":  t.Name(),
			"strings": t.Len(),
		})

		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Voicing does not fit the instrument",
			"string_set": shape.StringSet,
		})
		return
	}

	c.JSON(http.StatusOK, models.VoicingResponse{
		Tuning:  t.Name(),
		Voicing: v,
	})
}
