package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/filipedeo/fretboard-api/internal/config"
	"github.com/filipedeo/fretboard-api/internal/export"
	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/logger"
	"github.com/filipedeo/fretboard-api/internal/metrics"
	"github.com/filipedeo/fretboard-api/internal/models"
	"github.com/filipedeo/fretboard-api/internal/patterns"
	"github.com/filipedeo/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
)

type PatternHandler struct {
	cfg       *config.Config
	generator *patterns.Generator
	cw        *metrics.Client
	sentry    *metrics.SentryMetrics
}

func NewPatternHandler(cfg *config.Config, generator *patterns.Generator, cw *metrics.Client) *PatternHandler {
	return &PatternHandler{
		cfg:       cfg,
		generator: generator,
		cw:        cw,
		sentry:    metrics.NewSentryMetrics(),
	}
}

// NotesPerString computes a K-notes-per-string scale pattern
// POST /api/v1/patterns/notes-per-string
func (h *PatternHandler) NotesPerString(c *gin.Context) {
	var req models.NotesPerStringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	k, t, err := h.validateNotesPerString(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	count := t.ClampStrings(req.Strings)
	positions := h.generator.KNotesPerString(req.Key, req.Mode, t, count, req.SeedFret, k)
	if positions == nil {
		positions = []fretboard.Position{}
	}

	resp := models.PatternResponse{
		Key:             req.Key,
		Mode:            theory.NormalizeScaleName(req.Mode),
		Tuning:          t.Name(),
		Strings:         count,
		Positions:       positions,
		DegradedStrings: patterns.ShortStrings(positions, count, k),
	}
	if req.Characteristic {
		resp.Characteristic = h.generator.CharacteristicPositions(req.Key, req.Mode, positions, t)
	}

	h.record(c, fmt.Sprintf("%d-nps", k), req.Key, resp.Mode, t, count, len(positions), resp.DegradedStrings, time.Since(start))
	c.JSON(http.StatusOK, resp)
}

// PentatonicBox computes one pentatonic box, or all five when no box is given
// POST /api/v1/patterns/pentatonic-box
func (h *PatternHandler) PentatonicBox(c *gin.Context) {
	var req models.PentatonicBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !patterns.IsPentatonicType(req.ScaleType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scale_type must be minor or major"})
		return
	}
	if theory.Chroma(req.Key) < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key"})
		return
	}
	if req.Box != nil && (*req.Box < 0 || *req.Box >= patterns.BoxCount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("box must be between 0 and %d", patterns.BoxCount-1)})
		return
	}
	if req.ExtendTo != "" && !theory.HasScale(req.ExtendTo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown extend_to mode"})
		return
	}
	t, err := resolveTuning(req.TuningSelector, h.cfg.DefaultInstrument)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	indexes := []int{0, 1, 2, 3, 4}
	if req.Box != nil {
		indexes = []int{*req.Box}
	}

	start := time.Now()
	count := t.ClampStrings(req.Strings)
	resp := models.PentatonicResponse{
		Key:       req.Key,
		ScaleType: req.ScaleType,
		Tuning:    t.Name(),
		Strings:   count,
		Boxes:     make([]models.BoxResponse, 0, len(indexes)),
	}

	total := 0
	var degraded []int
	for _, i := range indexes {
		positions := h.generator.PentatonicBox(req.Key, req.ScaleType, i, t, count)
		if positions == nil {
			positions = []fretboard.Position{}
		}
		ref, _ := h.generator.BoxReferenceFret(req.Key, req.ScaleType, i, t)
		box := models.BoxResponse{
			Box:             i,
			ReferenceFret:   ref,
			Positions:       positions,
			DegradedStrings: patterns.ShortStrings(positions, count, 2),
		}

		switch {
		case req.ExtendTo != "":
			box.Extension = h.generator.ExtensionToMode(positions, req.Key, req.ScaleType, req.ExtendTo, t, count)
		case req.Extend:
			box.Extension = h.generator.ExtensionPositions(positions, req.Key, req.ScaleType, t, count)
		}

		total += len(positions)
		degraded = append(degraded, box.DegradedStrings...)
		resp.Boxes = append(resp.Boxes, box)
	}

	h.record(c, "pentatonic-box", req.Key, req.ScaleType, t, count, total, degraded, time.Since(start))
	c.JSON(http.StatusOK, resp)
}

// PatternMIDI renders a K-notes-per-string pattern as ascending single notes
// POST /api/v1/patterns/midi
func (h *PatternHandler) PatternMIDI(c *gin.Context) {
	var req models.PatternMIDIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	k, t, err := h.validateNotesPerString(req.NotesPerStringRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count := t.ClampStrings(req.Strings)
	positions := h.generator.KNotesPerString(req.Key, req.Mode, t, count, req.SeedFret, k)
	name := fmt.Sprintf("%s-%s", theory.PitchClassName(theory.Chroma(req.Key)), strings.ReplaceAll(theory.NormalizeScaleName(req.Mode), " ", "-"))
	file, err := export.PatternSMF(positions, t, export.Options{BPM: req.BPM, Name: name})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	data, err := export.Bytes(file)
	if err != nil {
		logger.Error("Failed to encode MIDI", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode MIDI"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.mid"`, name))
	c.Data(http.StatusOK, midiContentType, data)
}

// validateNotesPerString checks a pattern request and resolves its tuning
func (h *PatternHandler) validateNotesPerString(req models.NotesPerStringRequest) (int, fretboard.Tuning, error) {
	k := req.NotesPerString
	if k == 0 {
		k = defaultNotesPerString
	}
	if k < 1 || k > maxNotesPerString {
		return 0, fretboard.Tuning{}, fmt.Errorf("notes_per_string must be between 1 and %d", maxNotesPerString)
	}
	if req.SeedFret < 0 || req.SeedFret > maxSeedFret {
		return 0, fretboard.Tuning{}, fmt.Errorf("seed_fret must be between 0 and %d", maxSeedFret)
	}
	if theory.Chroma(req.Key) < 0 {
		return 0, fretboard.Tuning{}, errInvalidKey
	}
	if !theory.HasScale(req.Mode) {
		return 0, fretboard.Tuning{}, fmt.Errorf("unknown mode %q", req.Mode)
	}
	t, err := resolveTuning(req.TuningSelector, h.cfg.DefaultInstrument)
	if err != nil {
		return 0, fretboard.Tuning{}, err
	}
	return k, t, nil
}

func (h *PatternHandler) record(c *gin.Context, algorithm, key, mode string, t fretboard.Tuning, count, positions int, degraded []int, duration time.Duration) {
	logger.LogPatternRequest(c.Request.Context(), logger.PatternStats{
		Algorithm: algorithm,
		Key:       key,
		Mode:      mode,
		Tuning:    t.Name(),
		Strings:   count,
		Positions: positions,
		Degraded:  degraded,
	}, duration, logger.WithContext(c))

	h.sentry.RecordPattern(c.Request.Context(), algorithm, positions, len(degraded))
	h.cw.RecordPattern(algorithm, len(degraded))
}
