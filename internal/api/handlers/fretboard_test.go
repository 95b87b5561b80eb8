package handlers

import (
	"net/http"
	"testing"

	"github.com/filipedeo/fretboard-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTunings(t *testing.T) {
	router := setupTestRouter()

	w := doGet(t, router, "/api/v1/tunings")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Default string              `json:"default"`
		Tunings []models.TuningInfo `json:"tunings"`
	}
	decode(t, w, &resp)

	assert.Equal(t, "guitar", resp.Default)
	require.Len(t, resp.Tunings, 7)

	byName := map[string]models.TuningInfo{}
	for _, info := range resp.Tunings {
		byName[info.Name] = info
	}
	assert.Equal(t, 6, byName["guitar"].Strings)
	assert.Equal(t, 0, byName["guitar"].LowEIndex)
	assert.Equal(t, 1, byName["guitar-7"].LowEIndex)
	assert.Equal(t, []string{"E1", "A1", "D2", "G2"}, byName["bass"].Notes)
}

func TestFretboardNote(t *testing.T) {
	router := setupTestRouter()

	t.Run("standard tuning", func(t *testing.T) {
		w := doGet(t, router, "/api/v1/fretboard/note?string=0&fret=5")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.NoteResponse
		decode(t, w, &resp)
		assert.Equal(t, 45, resp.MIDI)
		assert.Equal(t, 9, resp.Chroma)
		assert.Equal(t, 5, resp.Position.Fret)
	})

	t.Run("custom tuning in query", func(t *testing.T) {
		w := doGet(t, router, "/api/v1/fretboard/note?string=0&fret=0&tuning=D2,A2,D3,G3,B3,E4")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.NoteResponse
		decode(t, w, &resp)
		assert.Equal(t, 38, resp.MIDI)
		assert.Equal(t, "D2", resp.Position.Note)
	})

	t.Run("preset instrument", func(t *testing.T) {
		w := doGet(t, router, "/api/v1/fretboard/note?string=0&fret=0&instrument=bass")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.NoteResponse
		decode(t, w, &resp)
		assert.Equal(t, 28, resp.MIDI)
	})

	badPaths := map[string]string{
		"string out of range": "/api/v1/fretboard/note?string=9&fret=0",
		"fret past the neck":  "/api/v1/fretboard/note?string=0&fret=30",
		"unknown instrument":  "/api/v1/fretboard/note?string=0&fret=0&instrument=banjo",
		"bad tuning pitch":    "/api/v1/fretboard/note?string=0&fret=0&tuning=X2,A2",
		"non-numeric fret":    "/api/v1/fretboard/note?string=0&fret=high",
	}
	for name, path := range badPaths {
		t.Run(name, func(t *testing.T) {
			w := doGet(t, router, path)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestFretboardPositions(t *testing.T) {
	router := setupTestRouter()

	w := doGet(t, router, "/api/v1/fretboard/positions?note=A&max_fret=12")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.PositionsResponse
	decode(t, w, &resp)
	assert.Equal(t, "A", resp.Note)
	assert.Equal(t, 9, resp.Chroma)
	// E:5, A:0 and 12, D:7, G:2, B:10, E:5
	assert.Len(t, resp.Positions, 7)

	w = doGet(t, router, "/api/v1/fretboard/positions?note=Bb&strings=1&max_fret=12")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, "A#", resp.Note)
	require.Len(t, resp.Positions, 1)
	assert.Equal(t, 6, resp.Positions[0].Fret)

	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/api/v1/fretboard/positions?note=H").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/api/v1/fretboard/positions").Code)
}

func TestFretboardInterval(t *testing.T) {
	router := setupTestRouter()

	w := doGet(t, router, "/api/v1/fretboard/interval?from_string=0&from_fret=5&to_string=2&to_fret=4")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.IntervalResponse
	decode(t, w, &resp)
	assert.Equal(t, "6", resp.Interval)
	assert.Equal(t, "A2", resp.From.Note)

	w = doGet(t, router, "/api/v1/fretboard/interval?from_string=0&from_fret=5&to_string=2&to_fret=7")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, "R", resp.Interval)

	w = doGet(t, router, "/api/v1/fretboard/interval?from_string=0&from_fret=5&to_string=8&to_fret=7")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
