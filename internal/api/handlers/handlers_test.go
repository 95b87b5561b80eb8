package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apimiddleware "github.com/filipedeo/fretboard-api/internal/api/middleware"
	"github.com/filipedeo/fretboard-api/internal/catalog"
	"github.com/filipedeo/fretboard-api/internal/config"
	"github.com/filipedeo/fretboard-api/internal/patterns"
	"github.com/filipedeo/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		Port:              "8080",
		AuthMode:          "none",
		DefaultInstrument: "guitar",
		MaxFret:           22,
	}
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cat := catalog.Default()
	generator := patterns.NewGenerator(theory.NewLibrary(), cat)

	router := gin.New()
	router.Use(apimiddleware.NoAuth())

	router.GET("/health", NewHealthHandler(cat).HealthCheck)
	router.GET("/api/metrics", NewMetricsHandler("test").GetMetrics)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/tunings", NewTuningHandler(cfg).ListTunings)

		catalogHandler := NewCatalogHandler(cat)
		v1.GET("/modes", catalogHandler.ListModes)
		v1.GET("/modes/:name", catalogHandler.GetMode)
		v1.GET("/voicings", catalogHandler.ListVoicings)
		v1.GET("/progressions", catalogHandler.ListProgressions)

		fretboardHandler := NewFretboardHandler(cfg)
		v1.GET("/fretboard/note", fretboardHandler.Note)
		v1.GET("/fretboard/positions", fretboardHandler.Positions)
		v1.GET("/fretboard/interval", fretboardHandler.Interval)

		patternHandler := NewPatternHandler(cfg, generator, nil)
		v1.POST("/patterns/notes-per-string", patternHandler.NotesPerString)
		v1.POST("/patterns/pentatonic-box", patternHandler.PentatonicBox)
		v1.POST("/patterns/midi", patternHandler.PatternMIDI)

		v1.POST("/voicings/resolve", NewVoicingHandler(cfg, cat).Resolve)

		progressionHandler := NewProgressionHandler(cfg, cat)
		v1.POST("/progressions/chords", progressionHandler.Chords)
		v1.POST("/progressions/midi", progressionHandler.MIDI)
	}

	return router
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doPost(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
