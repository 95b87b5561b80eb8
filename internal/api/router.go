package api

import (
	"github.com/filipedeo/fretboard-api/internal/api/handlers"
	apimiddleware "github.com/filipedeo/fretboard-api/internal/api/middleware"
	"github.com/filipedeo/fretboard-api/internal/catalog"
	"github.com/filipedeo/fretboard-api/internal/config"
	"github.com/filipedeo/fretboard-api/internal/metrics"
	"github.com/filipedeo/fretboard-api/internal/middleware"
	"github.com/filipedeo/fretboard-api/internal/patterns"
	"github.com/filipedeo/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// authMiddleware selects the auth layer for the configured AUTH_MODE
func authMiddleware(cfg *config.Config) gin.HandlerFunc {
	switch {
	case cfg.IsGatewayMode():
		return apimiddleware.GatewayAuth()
	case cfg.IsJWTMode():
		return middleware.JWTAuth(cfg)
	default:
		return apimiddleware.NoAuth()
	}
}

func SetupRouter(cfg *config.Config, cw *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	cat := catalog.Default()
	generator := patterns.NewGenerator(theory.NewLibrary(), cat)

	// Health check
	healthHandler := handlers.NewHealthHandler(cat)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware(cfg))
	{
		// Reference data
		tuningHandler := handlers.NewTuningHandler(cfg)
		v1.GET("/tunings", tuningHandler.ListTunings)

		catalogHandler := handlers.NewCatalogHandler(cat)
		v1.GET("/modes", catalogHandler.ListModes)
		v1.GET("/modes/:name", catalogHandler.GetMode)
		v1.GET("/voicings", catalogHandler.ListVoicings)
		v1.GET("/progressions", catalogHandler.ListProgressions)

		// Pitch lookups
		fretboardHandler := handlers.NewFretboardHandler(cfg)
		v1.GET("/fretboard/note", fretboardHandler.Note)
		v1.GET("/fretboard/positions", fretboardHandler.Positions)
		v1.GET("/fretboard/interval", fretboardHandler.Interval)

		// Patterns
		patternHandler := handlers.NewPatternHandler(cfg, generator, cw)
		v1.POST("/patterns/notes-per-string", patternHandler.NotesPerString)
		v1.POST("/patterns/pentatonic-box", patternHandler.PentatonicBox)
		v1.POST("/patterns/midi", patternHandler.PatternMIDI)

		// Voicings
		voicingHandler := handlers.NewVoicingHandler(cfg, cat)
		v1.POST("/voicings/resolve", voicingHandler.Resolve)

		// Progressions
		progressionHandler := handlers.NewProgressionHandler(cfg, cat)
		v1.POST("/progressions/chords", progressionHandler.Chords)
		v1.POST("/progressions/midi", progressionHandler.MIDI)
	}

	return router
}
