package handlers

import (
	"net/http"

	"github.com/filipedeo/fretboard-api/internal/catalog"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// ListModes returns the supported modes, optionally filtered by category
// GET /api/v1/modes?category=diatonic
func (h *CatalogHandler) ListModes(c *gin.Context) {
	modes := h.catalog.Modes()
	if category := c.Query("category"); category != "" {
		modes = h.catalog.ModesByCategory(catalog.Category(category))
	}
	if modes == nil {
		modes = []catalog.Mode{}
	}
	c.JSON(http.StatusOK, gin.H{"modes": modes})
}

// GetMode returns one mode by name or alias
// GET /api/v1/modes/:name
func (h *CatalogHandler) GetMode(c *gin.Context) {
	mode, ok := h.catalog.Mode(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown mode"})
		return
	}
	c.JSON(http.StatusOK, mode)
}

// ListVoicings returns the voicing shape table
// GET /api/v1/voicings?quality=major
func (h *CatalogHandler) ListVoicings(c *gin.Context) {
	quality := c.Query("quality")
	shapes := h.catalog.Shapes()
	filtered := shapes[:0]
	for _, s := range shapes {
		if quality == "" || s.Quality == quality {
			filtered = append(filtered, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{"voicings": filtered})
}

// ListProgressions returns the progression presets
// GET /api/v1/progressions
func (h *CatalogHandler) ListProgressions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"progressions": h.catalog.Progressions()})
}
