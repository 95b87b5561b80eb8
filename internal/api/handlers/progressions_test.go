package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/filipedeo/fretboard-api/internal/models"
	"github.com/filipedeo/fretboard-api/internal/progression"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVoicing(t *testing.T) {
	router := setupTestRouter()

	t.Run("major triad on the middle strings", func(t *testing.T) {
		w := doPost(t, router, "/api/v1/voicings/resolve", gin.H{
			"key":   "C",
			"shape": "major-triad-dgb-root",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.VoicingResponse
		decode(t, w, &resp)
		assert.Equal(t, "guitar", resp.Tuning)
		assert.Equal(t, 10, resp.Voicing.RootFret)
		assert.Len(t, resp.Voicing.Positions, 3)
	})

	t.Run("seven string shifts the string indices", func(t *testing.T) {
		w := doPost(t, router, "/api/v1/voicings/resolve", gin.H{
			"key":        "C",
			"shape":      "major-triad-dgb-root",
			"instrument": "guitar-7",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.VoicingResponse
		decode(t, w, &resp)
		assert.Equal(t, 10, resp.Voicing.RootFret)
		for _, p := range resp.Voicing.Positions {
			assert.GreaterOrEqual(t, p.String, 3)
		}
	})

	t.Run("bass has no B string", func(t *testing.T) {
		w := doPost(t, router, "/api/v1/voicings/resolve", gin.H{
			"key":        "C",
			"shape":      "major-triad-dgb-root",
			"instrument": "bass",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	t.Run("unknown shape", func(t *testing.T) {
		w := doPost(t, router, "/api/v1/voicings/resolve", gin.H{"key": "C", "shape": "banana"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid key", func(t *testing.T) {
		w := doPost(t, router, "/api/v1/voicings/resolve", gin.H{"key": "Z", "shape": "major-triad-dgb-root"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProgressionChords(t *testing.T) {
	router := setupTestRouter()

	t.Run("preset", func(t *testing.T) {
		w := doPost(t, router, "/api/v1/progressions/chords", gin.H{"key": "C", "preset": "pop"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.ProgressionResponse
		decode(t, w, &resp)
		require.Len(t, resp.Chords, 4)

		roots := make([]string, len(resp.Chords))
		for i, c := range resp.Chords {
			roots[i] = c.Root
			assert.Empty(t, c.Tones)
		}
		assert.Equal(t, []string{"C", "G", "A", "F"}, roots)
		assert.Equal(t, progression.Minor, resp.Chords[2].Quality)
	})

	t.Run("numeric and borrowed degrees", func(t *testing.T) {
		w := doPost(t, router, "/api/v1/progressions/chords", gin.H{
			"key":     "G",
			"degrees": []interface{}{1, "b7", "4"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.ProgressionResponse
		decode(t, w, &resp)
		require.Len(t, resp.Chords, 3)
		assert.Equal(t, "F", resp.Chords[1].Root)
		assert.Equal(t, progression.Major, resp.Chords[1].Quality)
	})

	t.Run("chord tones", func(t *testing.T) {
		w := doPost(t, router, "/api/v1/progressions/chords", gin.H{
			"key":         "A",
			"degrees":     []string{"1"},
			"chord_tones": true,
			"max_fret":    5,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.ProgressionResponse
		decode(t, w, &resp)
		require.Len(t, resp.Chords, 1)
		require.NotEmpty(t, resp.Chords[0].Tones)
		for _, tone := range resp.Chords[0].Tones {
			assert.LessOrEqual(t, tone.Fret, 5)
			assert.Contains(t, []string{"R", "3", "5"}, tone.Interval)
		}
	})

	t.Run("unknown degree falls back to the tonic", func(t *testing.T) {
		w := doPost(t, router, "/api/v1/progressions/chords", gin.H{"key": "D", "degrees": []string{"9"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.ProgressionResponse
		decode(t, w, &resp)
		require.Len(t, resp.Chords, 1)
		assert.Equal(t, "D", resp.Chords[0].Root)
	})
}

func TestProgressionValidation(t *testing.T) {
	router := setupTestRouter()

	tooLong := make([]int, maxProgressionLength+1)
	for i := range tooLong {
		tooLong[i] = 1
	}

	cases := []struct {
		name   string
		body   gin.H
		status int
	}{
		{"no degrees or preset", gin.H{"key": "C"}, http.StatusBadRequest},
		{"unknown preset", gin.H{"key": "C", "preset": "nope"}, http.StatusNotFound},
		{"invalid key", gin.H{"key": "X", "preset": "pop"}, http.StatusBadRequest},
		{"too many chords", gin.H{"key": "C", "degrees": tooLong}, http.StatusBadRequest},
		{"unknown instrument for tones", gin.H{"key": "C", "preset": "pop", "chord_tones": true, "instrument": "oud"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doPost(t, router, "/api/v1/progressions/chords", tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestProgressionMIDI(t *testing.T) {
	router := setupTestRouter()

	w := doPost(t, router, "/api/v1/progressions/midi", gin.H{"key": "C", "preset": "pop", "bpm": 90})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, midiContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="pop-C.mid"`)
	assert.True(t, strings.HasPrefix(w.Body.String(), "MThd"))

	w = doPost(t, router, "/api/v1/progressions/midi", gin.H{"key": "C", "degrees": []int{1, 4}, "octave": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doPost(t, router, "/api/v1/progressions/midi", gin.H{"key": "C", "preset": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
