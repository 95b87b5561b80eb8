package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/filipedeo/fretboard-api/internal/config"
	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/models"
	"github.com/gin-gonic/gin"
)

var (
	errUnknownInstrument = errors.New("unknown instrument")
	errInvalidKey        = errors.New("invalid key")
)

type TuningHandler struct {
	cfg *config.Config
}

func NewTuningHandler(cfg *config.Config) *TuningHandler {
	return &TuningHandler{cfg: cfg}
}

// ListTunings returns the tuning presets
// GET /api/v1/tunings
func (h *TuningHandler) ListTunings(c *gin.Context) {
	names := fretboard.PresetNames()
	tunings := make([]models.TuningInfo, 0, len(names))
	for _, name := range names {
		t, _ := fretboard.Lookup(name)
		tunings = append(tunings, tuningInfo(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"default": h.cfg.DefaultInstrument,
		"tunings": tunings,
	})
}

func tuningInfo(t fretboard.Tuning) models.TuningInfo {
	return models.TuningInfo{
		Name:      t.Name(),
		Notes:     t.Notes(),
		Strings:   t.Len(),
		LowEIndex: t.StringMap().Offset(),
	}
}

// resolveTuning turns a request's selector into a tuning. Explicit pitches win;
// a single comma-separated entry is accepted for query strings.
func resolveTuning(sel models.TuningSelector, fallback string) (fretboard.Tuning, error) {
	notes := sel.Tuning
	if len(notes) == 1 && strings.Contains(notes[0], ",") {
		notes = strings.Split(notes[0], ",")
	}
	if len(notes) > 0 {
		for i := range notes {
			notes[i] = strings.TrimSpace(notes[i])
		}
		return fretboard.NewTuning("custom", notes...)
	}

	name := sel.Instrument
	if name == "" {
		name = fallback
	}
	t, ok := fretboard.Lookup(name)
	if !ok {
		return fretboard.Tuning{}, fmt.Errorf("%w %q", errUnknownInstrument, name)
	}
	return t, nil
}

// maxFret defaults to the configured neck length
func maxFret(requested int, cfg *config.Config) int {
	if requested <= 0 || requested > cfg.MaxFret {
		return cfg.MaxFret
	}
	return requested
}
