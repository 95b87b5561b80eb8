package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/filipedeo/fretboard-api/internal/catalog"
	"github.com/filipedeo/fretboard-api/internal/config"
	"github.com/filipedeo/fretboard-api/internal/export"
	"github.com/filipedeo/fretboard-api/internal/logger"
	"github.com/filipedeo/fretboard-api/internal/models"
	"github.com/filipedeo/fretboard-api/internal/progression"
	"github.com/filipedeo/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
)

var (
	errNoDegrees     = errors.New("degrees or preset is required")
	errUnknownPreset = errors.New("unknown progression preset")
)

type ProgressionHandler struct {
	cfg     *config.Config
	catalog *catalog.Catalog
}

func NewProgressionHandler(cfg *config.Config, cat *catalog.Catalog) *ProgressionHandler {
	return &ProgressionHandler{cfg: cfg, catalog: cat}
}

// degrees picks explicit degrees over a named preset
func (h *ProgressionHandler) degrees(explicit []progression.Degree, preset string) ([]progression.Degree, error) {
	if len(explicit) > 0 {
		if len(explicit) > maxProgressionLength {
			return nil, fmt.Errorf("progression is limited to %d chords", maxProgressionLength)
		}
		return explicit, nil
	}
	if preset == "" {
		return nil, errNoDegrees
	}
	p, ok := h.catalog.Progression(preset)
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownPreset, preset)
	}
	return progression.ParseDegrees(p.Degrees), nil
}

func (h *ProgressionHandler) warnUnknown(c *gin.Context, degrees []progression.Degree) {
	for _, d := range degrees {
		if !progression.IsKnown(d) {
			fields := logger.WithContext(c)
			fields["degree"] = string(d)
			logger.Warn("Unrecognized degree, using tonic triad", fields)
		}
	}
}

func degreeStatus(err error) int {
	if errors.Is(err, errUnknownPreset) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// Chords resolves a progression into triads, optionally with fretboard tones
// POST /api/v1/progressions/chords
func (h *ProgressionHandler) Chords(c *gin.Context) {
	var req models.ProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if theory.Chroma(req.Key) < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key"})
		return
	}
	degrees, err := h.degrees(req.Degrees, req.Preset)
	if err != nil {
		c.JSON(degreeStatus(err), gin.H{"error": err.Error()})
		return
	}
	h.warnUnknown(c, degrees)

	chords := progression.BuildProgressionChords(req.Key, degrees)
	resp := models.ProgressionResponse{
		Key:    req.Key,
		Chords: make([]models.ChordResponse, len(chords)),
	}

	if req.ChordTones {
		t, err := resolveTuning(req.TuningSelector, h.cfg.DefaultInstrument)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		limit := maxFret(req.MaxFret, h.cfg)
		for i, chord := range chords {
			resp.Chords[i] = models.ChordResponse{
				Chord: chord,
				Tones: progression.ChordTones(chord, t, req.Strings, limit),
			}
		}
	} else {
		for i, chord := range chords {
			resp.Chords[i] = models.ChordResponse{Chord: chord}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// MIDI renders a progression as a Standard MIDI File download
// POST /api/v1/progressions/midi
func (h *ProgressionHandler) MIDI(c *gin.Context) {
	var req models.ProgressionMIDIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if theory.Chroma(req.Key) < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key"})
		return
	}
	degrees, err := h.degrees(req.Degrees, req.Preset)
	if err != nil {
		c.JSON(degreeStatus(err), gin.H{"error": err.Error()})
		return
	}
	h.warnUnknown(c, degrees)

	name := req.Preset
	if name == "" {
		name = "progression"
	}
	chords := progression.BuildProgressionChords(req.Key, degrees)
	file, err := export.ProgressionSMF(chords, export.Options{
		BPM:           req.BPM,
		Octave:        req.Octave,
		BeatsPerChord: req.BeatsPerChord,
		Name:          name,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	data, err := export.Bytes(file)
	if err != nil {
		logger.Error("Failed to encode MIDI", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode MIDI"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.mid"`, name, theory.PitchClassName(theory.Chroma(req.Key))))
	c.Data(http.StatusOK, midiContentType, data)
}
