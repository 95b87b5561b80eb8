package handlers

import (
	"net/http"

	"github.com/filipedeo/fretboard-api/internal/config"
	"github.com/filipedeo/fretboard-api/internal/fretboard"
	"github.com/filipedeo/fretboard-api/internal/models"
	"github.com/filipedeo/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
)

type FretboardHandler struct {
	cfg *config.Config
}

func NewFretboardHandler(cfg *config.Config) *FretboardHandler {
	return &FretboardHandler{cfg: cfg}
}

// Note resolves the pitch at one position
// GET /api/v1/fretboard/note?string=0&fret=5
func (h *FretboardHandler) Note(c *gin.Context) {
	var q models.NoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := resolveTuning(q.TuningSelector, h.cfg.DefaultInstrument)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos := fretboard.At(q.String, q.Fret)
	note := fretboard.NoteAt(pos, t)
	if note == "" || q.Fret > h.cfg.MaxFret {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Position is off the fretboard"})
		return
	}
	pos.Note = note
	m, _ := theory.MIDI(note)

	c.JSON(http.StatusOK, models.NoteResponse{
		Position: pos,
		MIDI:     m,
		Chroma:   theory.Chroma(note),
	})
}

// Positions finds every position of a pitch class
// GET /api/v1/fretboard/positions?note=A&strings=6&max_fret=12
func (h *FretboardHandler) Positions(c *gin.Context) {
	var q models.PositionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := resolveTuning(q.TuningSelector, h.cfg.DefaultInstrument)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pc := theory.Chroma(q.Note)
	if pc < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note"})
		return
	}

	positions := fretboard.PositionsFor(pc, t, q.Strings, maxFret(q.MaxFret, h.cfg))
	if positions == nil {
		positions = []fretboard.Position{}
	}
	c.JSON(http.StatusOK, models.PositionsResponse{
		Note:      theory.PitchClassName(pc),
		Chroma:    pc,
		Positions: positions,
	})
}

// Interval labels the distance between two positions
// GET /api/v1/fretboard/interval?from_string=0&from_fret=5&to_string=2&to_fret=7
func (h *FretboardHandler) Interval(c *gin.Context) {
	var q models.IntervalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := resolveTuning(q.TuningSelector, h.cfg.DefaultInstrument)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from := fretboard.At(q.FromString, q.FromFret)
	to := fretboard.At(q.ToString, q.ToFret)
	label := fretboard.IntervalBetween(from, to, t)
	if label == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Position is off the fretboard"})
		return
	}

	c.JSON(http.StatusOK, models.IntervalResponse{
		From:     fretboard.Annotate([]fretboard.Position{from}, t)[0],
		To:       fretboard.Annotate([]fretboard.Position{to}, t)[0],
		Interval: label,
	})
}
